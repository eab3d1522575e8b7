package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/weather-gateway/internal/api"
	"github.com/neexbeast/weather-gateway/internal/config"
	"github.com/neexbeast/weather-gateway/internal/gateway"
	"github.com/neexbeast/weather-gateway/internal/weatherapi"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.APIKey == config.DefaultAPIKey {
		log.Warn("WEATHER_API_KEY not set, upstream will reject requests")
	}

	// Wire dependencies.
	client := weatherapi.NewClient(weatherapi.NewHTTPFetcher(), cfg.BaseURL, cfg.APIKey, cfg.UpstreamTimeout)
	svc := gateway.NewService(client, log)
	handlers := api.NewHandlers(svc, log)
	router := api.NewRouter(handlers, cfg.AllowedOrigins, log)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting",
			"port", cfg.Port,
			"upstream", cfg.BaseURL,
			"upstream_timeout", cfg.UpstreamTimeout.String(),
			"allowed_origins", cfg.AllowedOrigins,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("server shut down cleanly")
	return nil
}
