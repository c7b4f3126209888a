package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"zoocore/internal/config"
	"zoocore/internal/core"
	"zoocore/internal/logging"
	"zoocore/internal/observability"
)

type options struct {
	v          *viper.Viper
	configFile string
	cfg        config.Config
}

func newRootCommand() *cobra.Command {
	opts := &options{v: config.New()}
	root := &cobra.Command{
		Use:          "zoocore",
		Short:        "Zoo rule evaluation service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.v, opts.configFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "path to a YAML config file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("storage-driver", "sqlite", "storage backend (memory, sqlite, postgres)")
	flags.String("sqlite-path", "zoocore.db", "sqlite database file")
	flags.String("postgres-dsn", "", "postgres connection string")
	for key, flag := range map[string]string{
		"log.level":            "log-level",
		"log.format":           "log-format",
		"storage.driver":       "storage-driver",
		"storage.sqlite_path":  "sqlite-path",
		"storage.postgres_dsn": "postgres-dsn",
	} {
		_ = opts.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newServeCommand(opts),
		newSeedCommand(opts),
		newCheckCommand(opts),
	)
	return root
}

// app holds the wired service and the resources to release with it.
type app struct {
	logger   *slog.Logger
	svc      *core.Service
	registry *prometheus.Registry
	close    func() error
}

func newApp(ctx context.Context, cfg config.Config, logOut io.Writer) (*app, error) {
	logger, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	provider, shutdownTracing, err := observability.NewTracerProvider(ctx, cfg.Tracing, logOut)
	if err != nil {
		return nil, err
	}
	store, closeStore, err := core.OpenPersistentStore(ctx, cfg.CoreStorage(), core.NewDefaultRulesEngine())
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	svc := core.NewService(store,
		core.WithLogger(logger),
		core.WithMetricsRecorder(metrics),
		core.WithTracer(observability.NewTracer(provider)),
		core.WithAuditRecorder(observability.NewAuditLogger(logger)),
	)
	logger.Info("storage ready", "driver", cfg.Storage.Driver, "tracing", cfg.Tracing.Exporter)
	closeAll := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return errors.Join(shutdownTracing(ctx), closeStore())
	}
	return &app{logger: logger, svc: svc, registry: registry, close: closeAll}, nil
}
