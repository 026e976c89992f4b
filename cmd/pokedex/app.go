package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pokedex-cli/pokedex/pkg/cache"
	"github.com/pokedex-cli/pokedex/pkg/cache/memory"
	cachepkg "github.com/pokedex-cli/pokedex/pkg/cache/sqlite"
	"github.com/pokedex-cli/pokedex/pkg/catalog"
	"github.com/pokedex-cli/pokedex/pkg/config"
	"github.com/pokedex-cli/pokedex/pkg/favorites"
	"github.com/pokedex-cli/pokedex/pkg/logging"
	"github.com/pokedex-cli/pokedex/pkg/metrics"
	"github.com/pokedex-cli/pokedex/pkg/render"
	storagepkg "github.com/pokedex-cli/pokedex/pkg/storage/sqlite"
	"github.com/pokedex-cli/pokedex/pkg/view"
)

// appOptions are the flags shared by every command that opens the app.
type appOptions struct {
	configPath string
	verbose    bool
}

func (o *appOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "path to config file (defaults when empty)")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "log at debug level")
}

// app is the wired object graph of one command invocation.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	loc      *render.Localization
	term     *render.Terminal
	favs     *favorites.Store
	client   *catalog.Client
	ctrl     *view.Controller
	registry *prometheus.Registry
	closers  []func() error
}

func openApp(o *appOptions, out io.Writer, fields ...zap.Field) (*app, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Log.Level
	if o.verbose {
		level = "debug"
	}
	log, err := logging.New("pokedex", level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log = log.With(fields...)

	a := &app{cfg: cfg, log: log, registry: prometheus.NewRegistry()}
	a.closers = append(a.closers, func() error {
		_ = log.Sync()
		return nil
	})

	local, err := storagepkg.New(cfg.Storage.DBPath)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	a.closers = append(a.closers, local.Close)
	a.favs = favorites.Load(local, log)

	var store cache.Store = memory.New()
	if cfg.Cache.Persist {
		back, err := cachepkg.New(cfg.Cache.DBPath, cfg.Cache.TTL)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("init cache: %w", err)
		}
		a.closers = append(a.closers, back.Close)
		store = cache.NewTiered(store, back, log)
	}

	m := metrics.New(a.registry)
	a.client = catalog.New(cfg.Catalog.BaseURL, store,
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}),
		catalog.WithLogger(log),
		catalog.WithMetrics(m),
		catalog.WithMaxConcurrency(cfg.Catalog.MaxConcurrency),
	)

	a.loc = render.NewLocalization(cfg.Language)
	a.term = render.NewTerminal(out, a.loc)
	a.ctrl = view.New(a.client, a.favs, a.term,
		view.WithLogger(log),
		view.WithMetrics(m),
		view.WithInitialLimit(cfg.Catalog.InitialLimit),
	)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
