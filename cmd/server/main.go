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

	"github.com/ErlanBelekov/pdf-transparency/config"
	"github.com/ErlanBelekov/pdf-transparency/internal/email"
	"github.com/ErlanBelekov/pdf-transparency/internal/extract"
	"github.com/ErlanBelekov/pdf-transparency/internal/health"
	"github.com/ErlanBelekov/pdf-transparency/internal/inference"
	"github.com/ErlanBelekov/pdf-transparency/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/pdf-transparency/internal/log"
	"github.com/ErlanBelekov/pdf-transparency/internal/metrics"
	"github.com/ErlanBelekov/pdf-transparency/internal/otp"
	"github.com/ErlanBelekov/pdf-transparency/internal/reaper"
	"github.com/ErlanBelekov/pdf-transparency/internal/session"
	httptransport "github.com/ErlanBelekov/pdf-transparency/internal/transport/http"
	"github.com/ErlanBelekov/pdf-transparency/internal/transport/http/handler"
	"github.com/ErlanBelekov/pdf-transparency/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.Migrate(ctx, cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	challengeRepo := postgres.NewChallengeRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	conversationRepo := postgres.NewConversationRepository(pool)

	sessions := session.NewIssuer([]byte(cfg.JWTSecret))
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	codes := otp.NewCryptoGenerator()
	extractor := extract.NewPDFExtractor(logger)
	model := inference.NewClient(cfg.HFAPIKey, cfg.HFModelURL, time.Duration(cfg.InferenceTimeoutSec)*time.Second)

	authUsecase := usecase.NewAuthUsecase(userRepo, challengeRepo, sender, sessions, codes, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger, cfg.Env != "local")

	documentUsecase := usecase.NewDocumentUsecase(documentRepo, extractor, logger, cfg.MaxUploadMB<<20)
	documentHandler := handler.NewDocumentHandler(documentUsecase, logger)

	qaUsecase := usecase.NewQAUsecase(documentRepo, conversationRepo, model, logger)
	qaHandler := handler.NewQAHandler(qaUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, documentHandler, qaHandler, sessions),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	challengeReaper := reaper.New(challengeRepo, logger, cfg.ReapSchedule)
	go func() {
		if err := challengeReaper.Start(ctx); err != nil {
			logger.Error("challenge reaper", "error", err)
		}
	}()

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
