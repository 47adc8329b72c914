package jobs

import (
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"RevTrackSaas/internal/logger"
	"RevTrackSaas/internal/serviceiface"
)

type CronService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewCronService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &CronService{
		config: cfg,
		db:     db,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	refreshConfig := NewDefaultRefreshConfig()

	// Override schedule from services.yaml if provided
	if s.config != nil {
		if schedule, ok := s.config["rollup_schedule"].(string); ok && schedule != "" {
			refreshConfig.Schedule = schedule
		}
		if tz, ok := s.config["timezone"].(string); ok && tz != "" {
			refreshConfig.TimeZone = tz
		}
	}

	if err := RunRollupRefresher(refreshConfig, s.db); err != nil {
		return fmt.Errorf("failed to start rollup refresher: %v", err)
	}

	logger.GlobalLogger.LogAudit("Cron service started with rollup refresher")
	log.Println("Cron service started — Rollup Refresher scheduled")

	return nil
}

func (s *CronService) Stop() error {
	log.Println("Cron service stopped.")
	return nil
}
