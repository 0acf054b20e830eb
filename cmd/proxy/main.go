package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pennywise/internal/config"
	"github.com/MrJamesThe3rd/pennywise/internal/gateway"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(cfg.Logger())

	origin, err := url.Parse(cfg.Gateway.Upstream)
	if err != nil {
		slog.Error("invalid upstream", "error", err, "upstream", cfg.Gateway.Upstream)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage := gateway.NewStorage(cfg.Gateway.MaxEntries, cfg.Gateway.MaxAge)

	gw := gateway.New(gateway.Config{
		CacheName: cfg.Gateway.CacheName,
		Origin:    origin,
		Manifest:  cfg.Gateway.Manifest,
		Bypass:    cfg.Gateway.Bypass,
	}, storage, http.DefaultTransport)

	installCtx, cancel := context.WithTimeout(ctx, cfg.Server.Timeout)
	err = gw.Install(installCtx)
	cancel()

	if err != nil {
		slog.Error("failed to install application shell", "error", err, "upstream", origin)
		os.Exit(1)
	}

	gw.Activate()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Gateway.Port),
		Handler:           gw.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Gateway.MaxAge > 0 {
		go sweep(ctx, storage, cfg.Gateway.MaxAge)
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("gateway shutdown failed", "error", err)
		}

		gw.Wait()
	}()

	slog.Info("starting gateway", "addr", srv.Addr, "upstream", origin, "cache", cfg.Gateway.CacheName)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("gateway failed", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("gateway stopped")
}

func sweep(ctx context.Context, storage *gateway.Storage, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := storage.Sweep(); n > 0 {
				slog.Debug("swept expired responses", "count", n)
			}
		}
	}
}
