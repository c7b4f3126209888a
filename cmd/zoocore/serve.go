package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"zoocore/internal/adapters/httpapi"
	"zoocore/internal/blob"
	"zoocore/internal/suncalc"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	_ = opts.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func serve(ctx context.Context, opts *options) error {
	cfg := opts.cfg
	rt, err := newApp(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.close(); err != nil {
			rt.logger.Error("close store", "error", err)
		}
	}()

	store, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}
	handlerOpts := []httpapi.Option{
		httpapi.WithLogger(rt.logger),
		httpapi.WithArchive(blob.NewArchive(store)),
		httpapi.WithMetricsHandler(promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{})),
	}
	if cfg.Location.Enabled() {
		loc, err := cfg.Location.TimeLocation()
		if err != nil {
			return err
		}
		handlerOpts = append(handlerOpts, httpapi.WithSunCalc(suncalc.NewSunCalc(cfg.Location.Latitude, cfg.Location.Longitude, loc)))
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.New(rt.svc, handlerOpts...).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.logger.Info("listening", "addr", cfg.Server.Addr, "blob_driver", store.Driver())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		rt.logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
