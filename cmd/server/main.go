// NH Buddy - Conversational FAQ and Agent Handoff Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/shakauthossain/nh-buddy/internal/api"
	"github.com/shakauthossain/nh-buddy/internal/chat"
	"github.com/shakauthossain/nh-buddy/internal/config"
	"github.com/shakauthossain/nh-buddy/internal/handoff"
	"github.com/shakauthossain/nh-buddy/internal/intent"
	"github.com/shakauthossain/nh-buddy/internal/llm"
	"github.com/shakauthossain/nh-buddy/internal/middleware"
	"github.com/shakauthossain/nh-buddy/internal/retrieval"
	"github.com/shakauthossain/nh-buddy/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Session storage: Redis when configured, with an in-memory fallback
	// that also absorbs Redis outages at runtime.
	fallback := session.NewMemory(cfg.MaxHistory, cfg.SessionTTL)
	var durable session.Store
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedis(ctx, cfg.RedisURL, cfg.MaxHistory, cfg.SessionTTL, cfg.CallTimeout)
		if err != nil {
			slog.Warn("Redis unavailable, sessions will be in-memory only", "error", err)
		} else {
			defer func() {
				if closeErr := redisStore.Close(); closeErr != nil {
					slog.Error("Failed to close Redis client", "error", closeErr)
				}
			}()
			durable = redisStore
			slog.Info("Redis connected")
		}
	} else {
		slog.Info("REDIS_URL not set, sessions will be in-memory only")
	}
	sessions := session.NewFailover(durable, fallback)

	// Operator channel (optional).
	var gateway handoff.Gateway
	var gatewayHealth api.HealthReporter
	if cfg.TelegramToken != "" {
		tg, err := handoff.NewTelegramGateway(cfg.TelegramToken, cfg.AgentChatID, cfg.CallTimeout)
		if err != nil {
			slog.Warn("Telegram unavailable, agent forwarding disabled", "error", err)
		} else {
			gateway = tg
			gatewayHealth = tg
			slog.Info("Telegram gateway ready")
		}
	} else {
		slog.Info("TELEGRAM_BOT_TOKEN not set, agent forwarding disabled")
	}
	correlator := handoff.NewCorrelator(gateway, cfg.ReplyQueueCap)

	// Answer generation (optional).
	var generator llm.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.CallTimeout)
		if err != nil {
			slog.Warn("Gemini unavailable, answers will use the fallback response", "error", err)
		} else {
			generator = gemini
			slog.Info("Gemini client ready", "model", cfg.GeminiModel)
		}
	} else {
		slog.Info("GEMINI_API_KEY not set, answers will use the fallback response")
	}

	// FAQ index. A missing corpus file yields an empty index, not a
	// startup failure.
	index, err := retrieval.NewHolder(cfg.FAQCSVPath)
	if err != nil {
		slog.Error("Failed to load FAQ corpus", "path", cfg.FAQCSVPath, "error", err)
		os.Exit(1)
	}
	slog.Info("FAQ index loaded", "path", cfg.FAQCSVPath)

	chatSvc := chat.NewService(sessions, correlator, intent.NewRouter(generator), index, generator, cfg.ContactEmail)
	handler := api.NewHandler(chatSvc, correlator, gatewayHealth, index.Rebuild)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	session.StartSweeper(ctx, fallback)
	slog.Info("Session sweeper started", "session_ttl", cfg.SessionTTL)

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
