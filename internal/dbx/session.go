package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

type sessionKey struct{}

// ContextWithSession returns a copy of ctx carrying s.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the request session stored in ctx, or fallback
// when the context carries none.
func SessionFromContext(ctx context.Context, fallback Session) Session {
	if s, ok := ctx.Value(sessionKey{}).(Session); ok && s != nil {
		return s
	}
	return fallback
}

// WithSession acquires one connection from db, exposes it to fn through the
// context and returns it to the pool on every exit path, panics included.
func WithSession(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire session: %w", err)
	}
	defer conn.Close()

	return fn(ContextWithSession(ctx, conn))
}
