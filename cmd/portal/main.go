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

	"groupstays/internal/app"
	"groupstays/internal/client/propertyapi"
	"groupstays/internal/config"
	"groupstays/internal/database"
	"groupstays/internal/domain"
	jwtsvc "groupstays/internal/pkg/jwt"
	"groupstays/internal/pkg/logger"
	"groupstays/internal/repository"
	"groupstays/internal/task"
)

func main() {
	cfg, err := config.Load(":8090")
	if err != nil {
		logger.New(logger.Config{}).Fatal("config load failed", "error", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "owner-portal"})
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("db connect failed", "error", err)
	}
	if err := database.Migrate(db, &domain.PlanMark{}); err != nil {
		log.Fatal("migrate failed", "error", err)
	}
	queue := repository.NewPlanMarkRepository(db)

	client := propertyapi.New(cfg.PropertyAPIURL, cfg.PropertyAPITimeout)
	portal := app.NewPortal(app.PortalConfig{
		SessionTTL:       cfg.SessionTTL,
		SessionCacheSize: cfg.SessionCacheSize,
		CORSOrigins:      cfg.CORSOrigins,
	}, client, queue, jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL), log)
	defer portal.Close()

	retry := task.NewPlanMarkTask(queue, client, cfg.InternalAPIToken, cfg.PlanRetrySchedule, cfg.PlanRetryMaxAttempts, log)
	if cfg.InternalAPIToken != "" {
		if err := retry.Start(); err != nil {
			log.Fatal("plan mark task", "error", err)
		}
		defer retry.Stop()
	} else {
		log.Warn("INTERNAL_API_TOKEN not set, plan mark retries disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           portal.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("owner portal listening", "addr", cfg.HTTPAddr, "property_api", cfg.PropertyAPIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
	log.Info("owner portal stopped")
}
