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

	"github.com/joho/godotenv"

	"github.com/incidentchat/incidentchat/internal/api"
	"github.com/incidentchat/incidentchat/internal/api/uistatic"
	"github.com/incidentchat/incidentchat/internal/auth"
	"github.com/incidentchat/incidentchat/internal/chat"
	"github.com/incidentchat/incidentchat/internal/chatlog"
	"github.com/incidentchat/incidentchat/internal/config"
	"github.com/incidentchat/incidentchat/internal/llm"
	"github.com/incidentchat/incidentchat/internal/observability"
	"github.com/incidentchat/incidentchat/internal/schema"
	"github.com/incidentchat/incidentchat/internal/sqlgen"
	"github.com/incidentchat/incidentchat/internal/tickets"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv("incidentchat-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	db, err := tickets.Open(context.Background(), tickets.DBConfig{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to open ticket db", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	llmClient, err := llm.NewOllamaClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		KeepAlive:   cfg.LLM.KeepAlive,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize llm client", slog.Any("error", err))
		os.Exit(1)
	}

	generator := sqlgen.New(llmClient, schema.Tickets(), sqlgen.Config{
		RowCap:       cfg.SQLGen.RowCap,
		CacheEntries: cfg.SQLGen.CacheEntries,
	}, logger)

	executor := tickets.NewDBExecutor(db, cfg.Database.QueryTimeout)
	chatService := chat.NewService(generator, executor, cfg.Chat.SampleRows, logger)

	deps := api.Dependencies{
		Logger:            logger,
		Readiness:         executor.HealthCheck,
		DependencyTimeout: time.Second,
		Chat:              chatService,
		Generator:         generator,
		Analytics:         tickets.NewAnalytics(db),
		History:           chatlog.NewRepository(db),
		HistoryLimit:      cfg.Chat.HistoryLimit,
		UI:                uistatic.Handler(),
	}
	if cfg.Auth.Required {
		validator, err := auth.NewStaticAPIKeyValidator(cfg.Auth.StaticKeys)
		if err != nil {
			logger.Error("failed to parse static auth keys", slog.Any("error", err))
			os.Exit(1)
		}
		deps.AuthMiddleware = auth.Middleware(logger, validator)
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}
