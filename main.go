package main

import (
	"context"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"

	"app/backend"
	"app/config"
	"app/handlers"
	"app/logger"
	"app/screens"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	client := backend.New(cfg.BackendURL, cfg.RequestTimeout, zlog)

	// Wait for the forecast backend to come up before serving screens. This
	// is the only retry loop in the app; individual requests are never
	// retried and every failure needs an explicit user refresh.
	waitForBackend(client, zlog)

	h := &handlers.Handlers{
		Dashboard: screens.NewDashboardScreen(client, zlog),
		Forecast:  screens.NewForecastScreen(client, zlog, cfg.DefaultHorizon),
		Reorder:   screens.NewReorderScreen(client, zlog, cfg.DefaultHorizon),
		Upload:    screens.NewUploadScreen(client, zlog),
		Settings:  screens.NewSettingsScreen(client, zlog),
	}

	app := newServer(h, zlog)

	zlog.Info("serving", "addr", cfg.ListenAddr, "backend", cfg.BackendURL)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		zlog.Fatal("server stopped", "error", err)
	}
}

func waitForBackend(client *backend.Client, zlog *logger.Logger) {
	probe := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := client.Health(ctx)
		return err
	}
	err := backoff.Retry(probe, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		// Not fatal: screens will surface the unreachable state themselves.
		zlog.Warn("forecast backend not reachable at startup", "backend", client.BaseURL(), "error", err)
	}
}
