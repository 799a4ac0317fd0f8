// Package app собирает сервис из конфигурации и управляет его жизненным циклом.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"streamflix/config"
	"streamflix/internal/application/usecase"
	"streamflix/internal/infrastructure/cache"
	"streamflix/internal/infrastructure/database"
	"streamflix/internal/infrastructure/repository"
	"streamflix/internal/infrastructure/security"
	"streamflix/internal/logger"
	grpc_server "streamflix/internal/transport/grpc"
	handlers "streamflix/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg    config.Config
	log    *slog.Logger
	db     *gorm.DB
	rdb    *redis.Client
	http   *http.Server
	health *grpc_server.HealthServer
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = closeDB(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		_ = closeDB(db)
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	log.Info("connected to redis", "addr", cfg.RedisAddr)

	store := repository.NewStore(db)
	authUC, err := usecase.NewAuthUseCase(log, store,
		security.NewPasswordHasher(),
		security.NewTokenManager(cfg.AccessSecret, cfg.AccessTokenTTL),
		cache.NewTokenCache(rdb),
	)
	if err != nil {
		_ = rdb.Close()
		_ = closeDB(db)
		return nil, err
	}

	h := handlers.Handlers{
		Auth:         handlers.NewAuthHandler(log, authUC),
		Profile:      handlers.NewProfileHandler(log, usecase.NewProfileUseCase(log, store)),
		Watchlist:    handlers.NewWatchlistHandler(log, usecase.NewWatchlistUseCase(log, store)),
		History:      handlers.NewHistoryHandler(log, usecase.NewHistoryUseCase(log, store)),
		Subscription: handlers.NewSubscriptionHandler(log, usecase.NewSubscriptionUseCase(log, store)),
		Avatar: handlers.NewAvatarHandler(log,
			usecase.NewAvatarUseCase(log, store, cache.NewAvatarCache(rdb, cfg.AvatarCacheTTL))),
	}
	router := handlers.NewRouter(log, h, authUC, cfg.Origins())

	a := &App{
		cfg: cfg,
		log: log,
		db:  db,
		rdb: rdb,
		http: &http.Server{
			Addr:         cfg.HTTPPort,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
			ErrorLog:     logger.LogAdapter(log),
		},
	}
	if cfg.GRPCPort != "" {
		a.health = grpc_server.NewHealthServer(log)
	}
	return a, nil
}

func (a *App) Handler() http.Handler {
	return a.http.Handler
}

// Run слушает порты из конфигурации и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	httpLis, err := net.Listen("tcp", a.cfg.HTTPPort)
	if err != nil {
		return fmt.Errorf("listen http: %w", err)
	}
	var grpcLis net.Listener
	if a.health != nil {
		if grpcLis, err = net.Listen("tcp", a.cfg.GRPCPort); err != nil {
			_ = httpLis.Close()
			return fmt.Errorf("listen grpc: %w", err)
		}
	}
	return a.serve(ctx, httpLis, grpcLis)
}

func (a *App) serve(ctx context.Context, httpLis, grpcLis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("HTTP server listening", "addr", httpLis.Addr().String())
		if err := a.http.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if a.health != nil && grpcLis != nil {
		g.Go(func() error {
			return a.health.Serve(grpcLis)
		})
		a.health.SetServing(true)
	}

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down")
		if a.health != nil {
			a.health.GracefulStop()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.http.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	a.close()
	return err
}

func (a *App) close() {
	if err := a.rdb.Close(); err != nil {
		a.log.Warn("close redis", "err", err)
	}
	if err := closeDB(a.db); err != nil {
		a.log.Warn("close database", "err", err)
	}
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
