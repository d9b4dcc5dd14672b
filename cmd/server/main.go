package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"swipetree/internal/annotation/handler"
	"swipetree/internal/annotation/labelcache"
	"swipetree/internal/annotation/service"
	"swipetree/internal/annotation/store/label"
	httpapi "swipetree/internal/http"
	"swipetree/internal/imagery"
	"swipetree/internal/platform/config"
	"swipetree/internal/platform/httpserver"
	"swipetree/internal/platform/logger"
	"swipetree/internal/platform/metrics"
	"swipetree/internal/platform/postgres"
	"swipetree/internal/platform/redis"
	"swipetree/internal/relatives"
	"swipetree/internal/session"
	"swipetree/pkg/lineage"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	configPath := flag.String("config", os.Getenv("SWIPETREE_CONFIG"), "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	resolver, err := newResolver(cfg.Lineage)
	if err != nil {
		return err
	}

	store, health, closeStore, err := newLabelStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	labelSvc := service.New(store, service.WithLogger(log), service.WithMetrics(m))
	images := imagery.New(cfg.ImageBases(), cfg.Images.Placeholder,
		imagery.WithHTTPClient(&http.Client{Timeout: cfg.Images.Timeout}),
		imagery.WithLogger(log),
		imagery.WithMetrics(m),
	)

	router := httpapi.NewRouter(
		httpapi.Options{Logger: log, Gatherer: reg, Health: health},
		handler.New(labelSvc, log, m, cfg.Server.AllowedOrigin),
		relatives.New(resolver, labelSvc, images, log, m),
		session.NewHandler(session.Deps{
			Resolver: resolver,
			Gesture:  cfg.GestureConfig(),
			Labels:   labelcache.New(labelSvc.AsLabels()),
			Images:   images,
			Logger:   log,
			Metrics:  m,
		}, cfg.Server.AllowedOrigin),
	)

	srv := httpserver.New(cfg.Server.Addr, router)
	errc := make(chan error, 1)
	go func() {
		log.Info("starting swipetree", "addr", cfg.Server.Addr, "label_store", cfg.Labels.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newResolver(cfg config.Lineage) (*lineage.Resolver, error) {
	opts := []lineage.Option{lineage.WithMaxFanOut(cfg.MaxFanOut)}
	if cfg.OverridesFile != "" {
		f, err := os.Open(cfg.OverridesFile)
		if err != nil {
			return nil, fmt.Errorf("open overrides: %w", err)
		}
		defer f.Close()
		overrides, err := lineage.LoadOverrides(f)
		if err != nil {
			return nil, fmt.Errorf("load overrides: %w", err)
		}
		opts = append(opts, lineage.WithOverrides(overrides))
	}
	return lineage.NewResolver(opts...), nil
}

func newLabelStore(ctx context.Context, cfg config.Config) (service.LabelStore, map[string]httpapi.HealthCheck, func(), error) {
	noop := func() {}
	switch cfg.Labels.Store {
	case "redis":
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		health := map[string]httpapi.HealthCheck{"redis": client.Health}
		return label.NewRedis(client.Client), health, func() { _ = client.Close() }, nil
	case "postgres":
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, noop, err
		}
		store := label.NewPostgres(db)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, noop, err
		}
		health := map[string]httpapi.HealthCheck{"postgres": pinger(db)}
		return store, health, func() { _ = db.Close() }, nil
	default:
		return label.NewInMemory(), nil, noop, nil
	}
}

func pinger(db *sql.DB) httpapi.HealthCheck {
	return db.PingContext
}
