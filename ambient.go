// Package ambient is a toolchain for entity-component-system content
// packages: it parses declarative package manifests, resolves them against
// their dependencies, validates the result, and serves the resolved schemas
// to engine and editor integrations.
package ambient

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/aldzban/ambient/config"
	"github.com/aldzban/ambient/log"
	"github.com/aldzban/ambient/registry"
	"github.com/aldzban/ambient/semantic"
	"github.com/aldzban/ambient/server"
)

// App wires the toolchain together: configuration, the deployment store, the
// package loader and the HTTP server.
type App struct {
	cancel context.CancelFunc
	config *config.Config

	sem    *semantic.Semantic
	store  *registry.DeploymentStore
	loader *registry.Loader
	server *server.Server

	root   *semantic.Package
	source registry.Source
}

// New loads configuration and builds the app. The root package and its
// dependency graph are not loaded until Start.
func New(opts ...Option) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, eris.Wrap(err, "failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, eris.Wrap(err, "failed to parse log level")
	}
	zerolog.SetGlobalLevel(level)

	sem := semantic.New()

	a := &App{
		config: cfg,
		sem:    sem,
		source: registry.NewDiskSource(cfg.PackagePath),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.store == nil {
		a.store = registry.NewDeploymentStore(registry.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       0, // use default DB
		}, cfg.Namespace)
	}
	a.loader = registry.NewLoader(sem, registry.WithDeploymentStore(a.store))

	a.server, err = server.New(sem, cfg.Port)
	if err != nil {
		return nil, eris.Wrap(err, "failed to create server")
	}

	return a, nil
}

// Load resolves the root package and everything it depends on.
func (a *App) Load(ctx context.Context) (*semantic.Package, error) {
	pkg, err := a.loader.Load(ctx, a.source)
	if err != nil {
		return nil, err
	}
	a.root = pkg

	logger := log.CreatePackageLogger(&zlog.Logger, string(pkg.ID))
	log.Package(logger, pkg, zerolog.InfoLevel)
	return pkg, nil
}

// Start loads the root package and serves until the context is canceled or a
// SIGINT/SIGTERM arrives.
func (a *App) Start() error {
	var ctx context.Context
	ctx, a.cancel = context.WithCancel(context.Background())

	if _, err := a.Load(ctx); err != nil {
		return eris.Wrap(err, "failed to load packages")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return a.server.Serve(ctx)
	})
	if err := eg.Wait(); err != nil {
		return eris.Wrap(err, "server stopped with an error")
	}
	return nil
}

// Stop cancels the serving context and closes the deployment store.
func (a *App) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	if err := a.store.Close(); err != nil {
		zlog.Warn().Err(err).Msg("failed to close deployment store")
	}
}

// Semantic returns the loaded package universe.
func (a *App) Semantic() *semantic.Semantic { return a.sem }

// Root returns the root package once Load or Start has run.
func (a *App) Root() *semantic.Package { return a.root }

// Deployments returns the deployment store.
func (a *App) Deployments() *registry.DeploymentStore { return a.store }

// Server returns the HTTP server.
func (a *App) Server() *server.Server { return a.server }
