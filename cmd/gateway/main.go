package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/perfpulse/perfpulse-go/internal/config"
	"github.com/perfpulse/perfpulse-go/internal/gateway"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	g := gateway.New(cfg.BackendURL, cfg.ProxyTimeout)

	srv := &http.Server{
		Addr:    ":" + cfg.GatewayPort,
		Handler: g.Routes(),
	}

	go func() {
		slog.Info("gateway starting", "port", cfg.GatewayPort, "backend", cfg.BackendURL, "timeout", cfg.ProxyTimeout)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gateway")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("gateway stopped")
}
