package main

import (
	"context"
	"time"

	"groupstays/internal/client/propertyapi"
	"groupstays/internal/config"
	"groupstays/internal/database"
	"groupstays/internal/domain"
	"groupstays/internal/pkg/logger"
	"groupstays/internal/repository"
	"groupstays/internal/task"
)

// plan_sweep runs one pass of the plan-mark retry queue and exits.
func main() {
	cfg, err := config.Load(":0")
	if err != nil {
		logger.New(logger.Config{}).Fatal("config load failed", "error", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "plan-sweep"})

	if cfg.InternalAPIToken == "" {
		log.Fatal("INTERNAL_API_TOKEN is required")
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("db connect failed", "error", err)
	}
	if err := database.Migrate(db, &domain.PlanMark{}); err != nil {
		log.Fatal("migrate failed", "error", err)
	}

	client := propertyapi.New(cfg.PropertyAPIURL, cfg.PropertyAPITimeout)
	sweep := task.NewPlanMarkTask(repository.NewPlanMarkRepository(db), client,
		cfg.InternalAPIToken, cfg.PlanRetrySchedule, cfg.PlanRetryMaxAttempts, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	stats, err := sweep.RunOnce(ctx)
	if err != nil {
		log.Fatal("plan sweep failed", "error", err)
	}
	log.Info("plan sweep completed", "done", stats.Done, "failed", stats.Failed, "cleaned", stats.Cleaned)
}
