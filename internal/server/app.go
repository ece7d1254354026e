// Package server initializes and runs the advboard application: it opens the
// database, applies migrations, wires services and serves the HTTP API until
// a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/advboard/internal/logging"
	"github.com/dmitrijs2005/advboard/internal/server/auth"
	"github.com/dmitrijs2005/advboard/internal/server/config"
	"github.com/dmitrijs2005/advboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/advboard/internal/server/rest"
	"github.com/dmitrijs2005/advboard/internal/server/services"
	"github.com/dmitrijs2005/advboard/internal/server/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	advertService *services.AdvertService
	registry      *prometheus.Registry
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	warnInsecureDefaults(ctx, logger, c)

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	v := validation.New()
	us := services.NewUserService(db, rm, auth.NewBcryptHasher(0), v, c)
	as := services.NewAdvertService(db, rm, v)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, c.DBName),
	)

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		userService:   us,
		advertService: as,
		registry:      registry,
	}, nil
}

func warnInsecureDefaults(ctx context.Context, l logging.Logger, c *config.Config) {
	if c.UsesDefaultSecret() {
		l.Warn(ctx, "token signing secret is not configured, using the development default; set SECRET_KEY or -s")
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.db, app.userService, app.advertService, app.registry)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal is received,
// then closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
