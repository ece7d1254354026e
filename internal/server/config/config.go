// Package config handles configuration for the server, layering defaults,
// an optional JSON file, environment variables and command-line flags.
package config

import (
	"net"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the advboard server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DBHost / DBPort / DBUser / DBPassword / DBName / DBSSLMode: PostgreSQL connection parameters.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - LogLevel: minimum level written by the logger.
type Config struct {
	EndpointAddrHTTP            string
	DBHost                      string
	DBPort                      string
	DBUser                      string
	DBPassword                  string
	DBName                      string
	DBSSLMode                   string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogLevel                    string
}

// DefaultSecretKey is the development signing secret. A server running with
// it accepts tokens anyone can mint.
const DefaultSecretKey = "secretKey"

// UsesDefaultSecret reports whether SecretKey was left at, or set back to,
// the development value or is empty.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == "" || c.SecretKey == DefaultSecretKey
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DBHost = "127.0.0.1"
	c.DBPort = "5432"
	c.DBUser = "postgres"
	c.DBPassword = "12345"
	c.DBName = "adv_db"
	c.DBSSLMode = "disable"
	c.SecretKey = DefaultSecretKey
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.LogLevel = "info"
}

// DatabaseDSN renders the connection parameters as a pgx-compatible URL.
func (c *Config) DatabaseDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	if c.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.DBSSLMode}}.Encode()
	}
	return u.String()
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg, os.LookupEnv)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
