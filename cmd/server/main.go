package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"palantir/internal/commons"
	"palantir/internal/config"
	"palantir/internal/egis"
	"palantir/internal/infrastructure/auth"
	"palantir/internal/infrastructure/logger"
	"palantir/internal/infrastructure/mysql"
	"palantir/internal/item"
	"palantir/internal/order"
	"palantir/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	client := egis.NewClient(cfg.EGIS, zapLogger)
	authz := auth.New(cfg.Auth.JWTSecret)
	if !authz.Enabled() {
		zapLogger.Warn("authentication disabled, no JWT secret configured")
	}

	catalogCtrl := item.NewModule(db, client, cfg.EGIS, zapLogger)
	refreshCtrl := order.NewModule(db, client, authz, zapLogger)

	router := server.NewRouter(catalogCtrl, refreshCtrl, authz, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

// loadConfig prefers an explicit YAML file when CONFIG_FILE is set and falls
// back to environment variables otherwise.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
