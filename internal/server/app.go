// Package server composes the login server: configuration, logging, the user
// store, the authentication core and the HTTP host. It also owns signal
// handling and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bumbitzu/cheatsheet/internal/logging"
	"github.com/bumbitzu/cheatsheet/internal/server/auth"
	"github.com/bumbitzu/cheatsheet/internal/server/config"
	"github.com/bumbitzu/cheatsheet/internal/server/httpapi"
	"github.com/bumbitzu/cheatsheet/internal/server/repositories/repomanager"
	"github.com/bumbitzu/cheatsheet/internal/server/repositories/users"
	"github.com/bumbitzu/cheatsheet/internal/server/services"
)

const dbInitTimeout = 30 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	warnDefaultSecret(context.Background(), c, logger)

	db, rm, err := openStore(c, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher := auth.NewBcryptHasher(c.BcryptCost)
	finder := users.NewFinder(rm.Users(db))

	verifier := auth.NewVerifier(finder, hasher, logger)
	mapper := auth.NewSessionMapper(finder)
	us := services.NewUserService(db, rm, hasher)

	srv := httpapi.NewServer(httpapi.Options{
		Address:      c.EndpointAddrHTTP,
		AuthTimeout:  c.AuthTimeout,
		SecureCookie: c.SecureCookie,
	}, logger, verifier, mapper, httpapi.NewCookieSigner(c.SecretKey, c.SessionTTL), us)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// warnDefaultSecret logs a warning when the development cookie secret is
// combined with a persistent store, and reports whether it did.
func warnDefaultSecret(ctx context.Context, c *config.Config, logger logging.Logger) bool {
	if c.DatabaseDSN == "" || !c.UsesDefaultSecret() {
		return false
	}
	logger.Warn(ctx, "session cookies are signed with the default secret key, set CHEATSHEET_SECRET_KEY or -s")
	return true
}

// openStore selects the Postgres store when a DSN is configured and the
// in-memory store otherwise. The returned db is nil for the memory store.
func openStore(c *config.Config, logger logging.Logger) (*sql.DB, repomanager.RepositoryManager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbInitTimeout)
	defer cancel()

	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, using in-memory user store")
		return nil, repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return db, rm, nil
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
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
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

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "closing database", "error", err)
		}
	}
	app.logger.Info(context.Background(), "App stopped")
}
