package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nadit/nadit-backend/config"
	"github.com/nadit/nadit-backend/db"
	"github.com/nadit/nadit-backend/handlers"
	"github.com/nadit/nadit-backend/logger"
	"github.com/nadit/nadit-backend/router"
	"github.com/nadit/nadit-backend/services"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env has to be loaded before the logger reads LOG_LEVEL and LOG_FILE
	dotEnvErr := config.LoadDotEnv()

	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	if dotEnvErr != nil {
		log.Warnw("Ignoring unreadable .env file", "error", dotEnvErr)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Database is optional: Open never fails and the handlers degrade
	conn := db.Open(ctx, cfg.Database)

	emailMetrics := services.NewEmailMetrics(prometheus.DefaultRegisterer)
	feedbackMetrics := services.NewFeedbackMetrics(prometheus.DefaultRegisterer)

	notifier := services.NewNotifier(cfg, emailMetrics)
	feedbackService := services.NewFeedbackService(conn, notifier, feedbackMetrics)
	diagnosticService := services.NewDiagnosticService(conn, cfg)

	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		RootHandler:     handlers.NewRootHandler(),
		HealthHandler:   handlers.NewHealthHandler(diagnosticService),
		FeedbackHandler: handlers.NewFeedbackHandler(feedbackService),
		Gatherer:        prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Starting server",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"version", cfg.Server.Version,
			"database_driver", conn.Driver())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}
	if err := conn.Close(shutdownCtx); err != nil {
		log.Errorw("Database close error", "error", err)
	}
	log.Info("Server stopped")
}
