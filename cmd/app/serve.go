package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"streamflix/config"
	"streamflix/internal/app"
	"streamflix/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the gRPC health endpoint",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Конфиг
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Логгер
	log := logger.SetupLogger(cfg.Debug)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. База, redis, хендлеры
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	// 4. Запуск до сигнала
	log.Info("starting streamflix", "version", Version, "db_driver", cfg.DBDriver)
	if err := a.Run(ctx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

