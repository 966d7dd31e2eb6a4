package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"csv-chat/internal/app"
	"csv-chat/internal/config"
	apihttp "csv-chat/internal/http"
	"csv-chat/internal/service"
	"csv-chat/internal/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	seed, err := app.LoadSeed(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("load seed", zap.Error(err))
	}

	var (
		tokenStore  service.ViewerTokenStore
		limiter     service.SendLimiter
		redisClient *redis.Client
	)
	window := time.Duration(cfg.SendRateWindowSeconds) * time.Second
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			tokenStore = service.NewRedisViewerTokenStore(redisClient)
			if cfg.SendRateMax > 0 {
				limiter = service.NewRedisSendLimiter(redisClient, window, cfg.SendRateMax)
			}
		}
		cancel()
	}
	if limiter == nil && cfg.SendRateMax > 0 {
		limiter = service.NewMemorySendLimiter(window, cfg.SendRateMax)
	}

	secret := cfg.SessionSecret
	if secret == "" {
		// Sin secreto fijo las cookies dejan de valer al reiniciar, igual que el estado.
		secret = uuid.NewString()
		logger.Warn("session secret not configured, using ephemeral secret")
	}
	tokens := service.NewViewerTokenService(secret, time.Duration(cfg.SessionTTLHours)*time.Hour, tokenStore)

	viewers := service.NewViewerRegistry(logger, seed, service.ViewModelOptions{
		DefaultConversationID: cfg.DefaultConversationID,
		SidebarOpen:           cfg.SidebarOpen,
	}, tokens.TTL())
	chatHandler := apihttp.NewChatHandler(logger, viewers, tokens, limiter, view.NewDateFormatter(cfg.DateLocale))
	router := apihttp.NewRouter(logger, chatHandler, apihttp.ViewerSessionMiddleware(logger, tokens))

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("seed_source", cfg.SeedSource),
		zap.Int("conversations", len(seed.Conversations)),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
