package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/litreview/config"
	"github.com/d60-Lab/litreview/internal/api/handler"
	"github.com/d60-Lab/litreview/internal/api/router"
	"github.com/d60-Lab/litreview/internal/cache"
	"github.com/d60-Lab/litreview/internal/repository"
	"github.com/d60-Lab/litreview/internal/service"
	"github.com/d60-Lab/litreview/pkg/database"
	"github.com/d60-Lab/litreview/pkg/logger"
	"github.com/d60-Lab/litreview/pkg/token"
	"github.com/d60-Lab/litreview/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()
	if cfg.Otel.Enabled {
		shutdown, err := tracing.Init(ctx, "litreview", cfg.Otel.Endpoint)
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer func() {
				c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(c)
			}()
		}
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("init database", zap.Error(err))
		os.Exit(1)
	}

	var followCache *cache.FollowCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, follow cache disabled", zap.Error(err))
		} else {
			followCache = cache.NewFollowCache(rdb, cfg.Redis.TTL)
		}
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	tokenMaker := token.NewMaker(cfg.JWT.Secret, cfg.JWT.Expire)
	authSvc := service.NewAuthService(userRepo, tokenMaker)
	relSvc := service.NewRelationshipService(userRepo, followRepo, blockRepo, followCache)
	contentSvc := service.NewContentService(db, ticketRepo, reviewRepo)
	feedSvc := service.NewFeedService(relSvc, ticketRepo, reviewRepo)

	h := handler.New(authSvc, relSvc, contentSvc, feedSvc)
	engine := router.New(cfg, h, tokenMaker)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
