// Package server wires storage, services and transports into the
// CreatorHub server and runs the HTTP and gRPC listeners until shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/logging"
	"github.com/dmitrijs2005/creatorhub/internal/server/config"
	gs "github.com/dmitrijs2005/creatorhub/internal/server/grpc"
	"github.com/dmitrijs2005/creatorhub/internal/server/httpapi"
	"github.com/dmitrijs2005/creatorhub/internal/server/media"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/feed"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/creatorhub/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	http   *httpapi.Server
	grpc   *gs.GRPCServer
}

// openStorage returns the repository manager for the configured backend.
// Postgres storage is migrated before use.
func openStorage(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	switch c.Storage {
	case config.StorageMemory:
		return repomanager.NewSeededMemoryRepositoryManager(time.Now())
	case config.StoragePostgres:
		m, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := m.RunMigrations(ctx); err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", c.Storage)
	}
}

func newSigner(c *config.Config) media.Signer {
	if c.S3Bucket == "" {
		return media.Passthrough{}
	}
	return media.NewS3Signer(media.S3Config{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	})
}

// newCatalog serves feed images from the bucket when one is configured.
func newCatalog(c *config.Config, start time.Time) *feed.Catalog {
	catalog := feed.NewCatalog(start)
	if c.S3Bucket == "" {
		return catalog
	}
	return catalog.WithObjectImages(c.S3ImagePrefix)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogBackend, c.LogLevel, os.Stdout)

	repos, err := openStorage(ctx, c)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "storage ready", "backend", c.Storage)

	userSvc := services.NewUserService(repos, c.SecretKey, c.TokenValidity, logger)
	ledgerSvc := services.NewLedgerService(repos, logger)
	feedSvc := services.NewFeedService(repos, newCatalog(c, time.Now()), newSigner(c), logger)

	metrics := httpapi.NewMetrics()
	router := httpapi.NewRouter(httpapi.NewHandler(userSvc, c.SecretKey, metrics, logger), metrics, logger)

	return &App{
		config: c,
		logger: logger,
		repos:  repos,
		http:   httpapi.NewServer(c.HTTPAddr, router, logger),
		grpc:   gs.NewGRPCServer(c.GRPCAddr, logger, userSvc, ledgerSvc, feedSvc, c.SecretKey),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// serve runs one listener. A listener that fails takes the whole app down.
func (app *App) serve(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves HTTP and gRPC until ctx is cancelled or a signal arrives,
// then closes storage.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "http", app.http.Run)
	}()
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "grpc", app.grpc.Run)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return app.repos.Close()
}
