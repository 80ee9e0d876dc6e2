package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"readiness/internal/app"
	"readiness/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := cfg.NewLogger()
	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := app.ConnectMongo(ctx, cfg)
	if err != nil {
		logger.Error("mongo unavailable", "error", err)
		os.Exit(1)
	}
	defer mongoClient.Disconnect(ctx)
	logger.Info("connected to MongoDB", "database", cfg.MongoDatabase)

	// Redis connection
	rdb, err := app.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()
	logger.Info("connected to Redis", "addr", cfg.RedisAddress())

	a, err := app.New(cfg, logger, mongoClient.Database(cfg.MongoDatabase), rdb)
	if err != nil {
		logger.Error("failed to build app", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Info("server starting",
			"port", cfg.Port,
			"variants", cfg.VariantsEnabled,
			"admin", cfg.AdminUsername,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
