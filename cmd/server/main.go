package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/app"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/config"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/gemini"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/logging"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/redis"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/results"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/server"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/twitter"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/websocket"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
)

func setupConfig() *config.Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupResultStore(cfg *config.Config, clock clockwork.Clock) (results.Store, *goredis.Client) {
	if cfg.RedisURL == "" {
		slog.Info("No REDIS_URL configured, using in-memory result store")
		return results.NewMemoryStore(clock, cfg.ResultTTL), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return results.NewRedisStore(client, cfg.ResultTTL), client
}

func runGracefulShutdown(srv *server.Server, hub *websocket.Hub) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()
		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	store, redisClient := setupResultStore(cfg, clock)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	fetcher := twitter.NewClient(cfg.TwitterBearerToken, cfg.TwitterBaseURL, cfg.MaxPosts)
	scorer := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)

	hub := websocket.NewHub()
	appSvc := app.NewService(fetcher, scorer, store, hub, clock)

	srv, err := server.NewServer(cfg, appSvc, hub, redisClient)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv, hub)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
