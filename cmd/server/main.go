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

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tarjamli/backend/config"
	"github.com/tarjamli/backend/internal/email"
	"github.com/tarjamli/backend/internal/health"
	"github.com/tarjamli/backend/internal/infrastructure/postgres"
	ctxlog "github.com/tarjamli/backend/internal/log"
	"github.com/tarjamli/backend/internal/metrics"
	"github.com/tarjamli/backend/internal/token"
	httptransport "github.com/tarjamli/backend/internal/transport/http"
	"github.com/tarjamli/backend/internal/transport/http/handler"
	"github.com/tarjamli/backend/internal/usecase"
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

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	// Auth
	userRepo := postgres.NewUserRepository(pool)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	issuer := token.NewIssuer([]byte(cfg.JWTSecret), cfg.SessionTTL)
	authUsecase := usecase.NewAuthUsecase(userRepo, sender, issuer, logger, usecase.AuthOptions{
		RequireVerification: cfg.RequireEmailVerification,
		VerificationTTL:     cfg.VerificationTokenTTL,
		ResetTTL:            cfg.ResetTokenTTL,
		WebBaseURL:          cfg.WebBaseURL,
	})
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Translation history
	translationRepo := postgres.NewTranslationRepository(pool)
	translationUsecase := usecase.NewTranslationUsecase(translationRepo)
	translationHandler := handler.NewTranslationHandler(translationUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, translationHandler, issuer),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

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
