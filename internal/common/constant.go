package common

// AuthorizationHeaderName carries the bearer access token on inbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName is echoed back on every response.
const RequestIDHeaderName = "X-Request-ID"
