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

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pennywise/internal/backup"
	"github.com/MrJamesThe3rd/pennywise/internal/config"
	pennyHttp "github.com/MrJamesThe3rd/pennywise/internal/http"
	backupHandler "github.com/MrJamesThe3rd/pennywise/internal/http/backup"
	categoryHandler "github.com/MrJamesThe3rd/pennywise/internal/http/category"
	reportHandler "github.com/MrJamesThe3rd/pennywise/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/pennywise/internal/http/transaction"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
	txStore "github.com/MrJamesThe3rd/pennywise/internal/transaction/store"
	"github.com/MrJamesThe3rd/pennywise/web"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(cfg.Logger())

	slot, closeSlot, err := txStore.Open(cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err, "backend", cfg.Storage.Backend)
		os.Exit(1)
	}
	defer closeSlot()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		transactionService = transaction.NewService(slot)
		backupService      = backup.NewService(transactionService)
	)

	transactionService.Load(ctx)

	var (
		categoryH    = categoryHandler.NewHandler()
		transactionH = txHandler.NewHandler(transactionService)
		reportH      = reportHandler.NewHandler(transactionService, time.Now)
		backupH      = backupHandler.NewHandler(backupService)
	)

	router := pennyHttp.New(cfg.CORS.AllowedOrigins, web.Handler(), categoryH, transactionH, reportH, backupH)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.App.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.Timeout,
		WriteTimeout:   cfg.Server.Timeout,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr, "backend", cfg.Storage.Backend)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
