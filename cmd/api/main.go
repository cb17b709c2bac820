package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/harvestlink-app/harvestlink-backend/api/controllers"
	"github.com/harvestlink-app/harvestlink-backend/api/routes"
	cartsvc "github.com/harvestlink-app/harvestlink-backend/internal/cart"
	checkoutsvc "github.com/harvestlink-app/harvestlink-backend/internal/checkout"
	"github.com/harvestlink-app/harvestlink-backend/internal/ordersync"
	"github.com/harvestlink-app/harvestlink-backend/pkg/config"
	"github.com/harvestlink-app/harvestlink-backend/pkg/db"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
	"github.com/harvestlink-app/harvestlink-backend/pkg/metrics"
	"github.com/harvestlink-app/harvestlink-backend/pkg/migrate"
	"github.com/harvestlink-app/harvestlink-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	cartMetrics := metrics.NewCartMetrics(registry)

	var snapshots cartsvc.SnapshotRepository
	if cfg.Snapshot.UsesRedis() {
		snapshots, err = cartsvc.NewRedisSnapshotRepository(redisClient, cfg.Snapshot.TTL, logg, cartMetrics)
	} else {
		snapshots, err = cartsvc.NewDBSnapshotRepository(dbClient.DB(), logg, cartMetrics)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to create snapshot repository", err)
		os.Exit(1)
	}

	var mirror cartsvc.Mirror = cartsvc.NopMirror{}
	var dispatcher *ordersync.Dispatcher
	var orderClient *ordersync.Client
	if cfg.OrderSync.Enabled() {
		orderClient, err = ordersync.NewClient(cfg.OrderSync, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create order sync client", err)
			os.Exit(1)
		}
		dispatcher = ordersync.NewDispatcher(orderClient, cfg.OrderSync.QueueSize, cfg.OrderSync.Timeout, logg, cartMetrics)
		mirror = dispatcher
	} else {
		logg.Warn(context.Background(), "order sync base url not set, cart mirror disabled")
	}

	cartService, err := cartsvc.NewService(snapshots, mirror, logg, cartMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	var checkoutService checkoutsvc.Service
	if orderClient != nil {
		checkoutService, err = checkoutsvc.NewService(cartService, orderClient, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create checkout service", err)
			os.Exit(1)
		}
	}

	readyChecks := []controllers.Pinger{dbClient}
	if redisClient != nil {
		readyChecks = append(readyChecks, redisClient)
	}

	handler := routes.NewRouter(routes.Deps{
		Config:          cfg,
		Logger:          logg,
		CartService:     cartService,
		CheckoutService: checkoutService,
		Registry:        registry,
		ReadyChecks:     readyChecks,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var closeErr error
	if err := server.Shutdown(drainCtx); err != nil {
		closeErr = multierr.Append(closeErr, err)
	}
	if dispatcher != nil {
		// Flush the mirror queue before the process exits.
		dispatcher.Close()
	}
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	closeErr = multierr.Append(closeErr, dbClient.Close())

	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}
