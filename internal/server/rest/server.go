// Package rest exposes the server operations over HTTP/JSON.
package rest

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/advboard/internal/logging"
	"github.com/dmitrijs2005/advboard/internal/server/models"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

// UserService is the authentication surface the handlers rely on.
type UserService interface {
	Register(ctx context.Context, in models.RegisterInput) (string, error)
	Login(ctx context.Context, in models.LoginInput) (string, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	VerifyToken(token string) (int64, error)
}

// AdvertService is the advertisement surface the handlers rely on.
type AdvertService interface {
	List(ctx context.Context) ([]*models.Advertisement, error)
	Get(ctx context.Context, id int64) (*models.Advertisement, error)
	Create(ctx context.Context, ownerID int64, in models.AdvertisementInput) (*models.Advertisement, error)
	Update(ctx context.Context, ownerID, id int64, patch models.AdvertisementPatch) (*models.Advertisement, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type Server struct {
	address  string
	db       *sql.DB
	users    UserService
	adverts  AdvertService
	logger   logging.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

// NewServer wires the HTTP server. db backs the per-request sessions and the
// health check; registry receives the HTTP metrics and is served on /metrics.
func NewServer(address string, l logging.Logger, db *sql.DB, us UserService, as AdvertService, registry *prometheus.Registry) *Server {
	return &Server{
		address:  address,
		db:       db,
		users:    us,
		adverts:  as,
		logger:   l.With("module", "rest_server"),
		registry: registry,
		metrics:  newMetrics(registry),
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(s.withRecover(s.routes()))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
