package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/storefront-api/api/routes"
	cartsvc "github.com/angelmondragon/storefront-api/internal/cart"
	"github.com/angelmondragon/storefront-api/internal/catalog"
	"github.com/angelmondragon/storefront-api/pkg/config"
	"github.com/angelmondragon/storefront-api/pkg/currency"
	"github.com/angelmondragon/storefront-api/pkg/logger"
	"github.com/angelmondragon/storefront-api/pkg/metrics"
	"github.com/angelmondragon/storefront-api/pkg/redis"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storeMetrics := metrics.NewStorefrontMetrics(registry)

	var sessionStore redis.Pinger
	cartRepo := cartsvc.Repository(cartsvc.NewMemoryRepository())
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()

		redisRepo, err := cartsvc.NewRedisRepository(redisClient, cfg.Cart.SessionTTL)
		if err != nil {
			logg.Error(context.Background(), "failed to create redis cart repository", err)
			os.Exit(1)
		}
		cartRepo = redisRepo
		sessionStore = redisClient
	}

	converter := currency.NewConverter(cfg.Currency.USDToINRRate)
	upstream := catalog.NewClient(cfg.Upstream, storeMetrics)

	provider := catalog.NewProvider(upstream, converter, cfg.Search.DebounceDelay, logg)
	defer provider.Close()

	catalogService, err := catalog.NewService(provider, upstream)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Repo:           cartRepo,
		Products:       catalogService,
		Metrics:        storeMetrics,
		TaxRatePercent: cfg.Cart.TaxRatePercent,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	// Warm the catalog without blocking startup. The listing endpoint
	// reports loading state until this completes.
	go provider.Load(context.Background())

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, sessionStore, registry, catalogService, cartService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
