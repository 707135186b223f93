package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/adamacoulibaly/orderdesk/api/routes"
	"github.com/adamacoulibaly/orderdesk/internal/cart"
	"github.com/adamacoulibaly/orderdesk/internal/catalog"
	"github.com/adamacoulibaly/orderdesk/internal/orders"
	"github.com/adamacoulibaly/orderdesk/pkg/config"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
	"github.com/adamacoulibaly/orderdesk/pkg/metrics"
	"github.com/adamacoulibaly/orderdesk/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	catalogClient := catalog.NewCachedClient(
		catalog.NewClient(cfg.Catalog, logg),
		redisClient,
		cfg.Catalog.CacheTTL,
		logg,
	)
	orderClient := orders.NewClient(cfg.OrderAPI, logg)

	cartService, err := cart.NewService(
		cart.NewStore(redisClient, cfg.Cart.TTL),
		catalogClient,
		orderClient,
		logg,
		cfg.Catalog.FallbackUnit,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

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
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Logger:        logg,
			Redis:         redisClient,
			CatalogClient: catalogClient,
			OrderClient:   orderClient,
			CartService:   cartService,
			ServerMetrics: metrics.NewServerMetrics("api"),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
