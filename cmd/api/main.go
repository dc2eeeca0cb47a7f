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
	"github.com/samvitchoudhary/bucketlist/internal/auth"
	"github.com/samvitchoudhary/bucketlist/internal/config"
	"github.com/samvitchoudhary/bucketlist/internal/item"
	"github.com/samvitchoudhary/bucketlist/internal/list"
	"github.com/samvitchoudhary/bucketlist/internal/server"
	"github.com/samvitchoudhary/bucketlist/internal/storage"
	"github.com/samvitchoudhary/bucketlist/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		slog.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := storage.Migrate(ctx, dbPool); err != nil {
		slog.Error("run migrations", "error", err)
		os.Exit(1)
	}

	authRepo := auth.NewRepository(dbPool)
	authService := auth.NewService(authRepo, cfg.Auth)

	listRepo := list.NewRepository(dbPool)
	listService := list.NewService(listRepo)

	itemRepo := item.NewRepository(dbPool)
	itemService := item.NewService(itemRepo, listRepo)

	router := server.NewRouter(server.Dependencies{
		Config:      cfg,
		DB:          dbPool,
		AuthService: authService,
		ListService: listService,
		ItemService: itemService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("BucketList API listening", "address", cfg.Server.Address())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
