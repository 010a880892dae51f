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
	"groupstays/internal/config"
	"groupstays/internal/database"
	jwtsvc "groupstays/internal/pkg/jwt"
	"groupstays/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load(":8080")
	if err != nil {
		logger.New(logger.Config{}).Fatal("config load failed", "error", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "property-api"})
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("db connect failed", "error", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("upload dir", "dir", cfg.UploadDir, "error", err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	api := app.NewAPI(app.APIConfig{
		UploadDir:         cfg.UploadDir,
		UploadURLBase:     cfg.UploadURLBase,
		InternalTokenHash: cfg.InternalTokenHash,
		CORSOrigins:       cfg.CORSOrigins,
	}, db, j, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.Migrate(ctx, db); err != nil {
		log.Fatal("migrate failed", "error", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("property api listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
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
	log.Info("property api stopped")
}
