package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pokedex-cli/pokedex/pkg/metrics"
	"github.com/pokedex-cli/pokedex/pkg/session"
)

func newBrowseCmd() *cobra.Command {
	var (
		opts        appOptions
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: "Shows the first page of the catalog and reads commands from stdin.\n" +
			"Type help inside the session for the list of commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(&opts, cmd.OutOrStdout(), zap.String("session", uuid.NewString()))
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if metricsAddr == "" {
				metricsAddr = a.cfg.MetricsAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.log.Info("browse session started", zap.String("base_url", a.cfg.Catalog.BaseURL))
			defer a.log.Info("browse session ended")

			g, gctx := errgroup.WithContext(ctx)
			if metricsAddr != "" {
				g.Go(func() error {
					return serveMetrics(gctx, metricsAddr, metrics.Handler(a.registry), a.log)
				})
			}
			g.Go(func() error {
				// Ending the session also stops the metrics server.
				defer stop()
				_ = a.ctrl.LoadInitial(gctx)

				sess := session.New(a.ctrl, a.term, a.loc, a.log)
				done := make(chan error, 1)
				go func() { done <- sess.Run(gctx, cmd.InOrStdin()) }()
				select {
				case err := <-done:
					return err
				case <-gctx.Done():
					return nil
				}
			})
			return g.Wait()
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	return cmd
}

// serveMetrics serves h until ctx is cancelled, then shuts down gracefully.
func serveMetrics(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
