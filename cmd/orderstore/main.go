package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/adamacoulibaly/orderdesk/internal/orderstore"
	"github.com/adamacoulibaly/orderdesk/pkg/config"
	"github.com/adamacoulibaly/orderdesk/pkg/db"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "orderstore"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "orderstore",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := orderstore.Migrate(dbClient.DB()); err != nil {
		logg.Error(context.Background(), "failed to migrate order tables", err)
		os.Exit(1)
	}

	handler := orderstore.NewHandler(
		orderstore.NewRepository(dbClient),
		cfg.Store,
		logg,
	)

	addr := ":" + cfg.Store.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting order store")

	server := &http.Server{
		Addr:    addr,
		Handler: handler.Routes(),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "order store stopped unexpectedly", err)
		os.Exit(1)
	}
}
