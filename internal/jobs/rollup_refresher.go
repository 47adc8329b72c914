package jobs

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"RevTrackSaas/internal/config"
	"RevTrackSaas/internal/logger"
	"RevTrackSaas/internal/store"
)

type RefreshConfig struct {
	Schedule   string
	TimeZone   string
	MaxRetries int
	RetryDelay time.Duration
}

func NewDefaultRefreshConfig() *RefreshConfig {
	return &RefreshConfig{
		Schedule:   config.DefaultRollupSchedule,
		TimeZone:   config.DefaultTimeZone,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

// RetryWithBackoff executes a function with exponential backoff retry logic
func RetryWithBackoff(maxRetries int, initialDelay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * initialDelay
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Retrying after %v (attempt %d/%d)", delay, attempt, maxRetries))
			time.Sleep(delay)
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		logger.GlobalLogger.LogAudit(fmt.Sprintf("Attempt %d failed: %v", attempt+1, lastErr))
	}

	return fmt.Errorf("failed after %d attempts: %v", maxRetries+1, lastErr)
}

// RunRollupRefresher schedules the nightly job that folds unapproved lead
// counts and costs into the rollup table, so page loads never have to
// recompute them.
func RunRollupRefresher(cfg *RefreshConfig, db *pgxpool.Pool) error {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultRollupSchedule
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid timezone for rollup refresher: %v", err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.Schedule, func() {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Running rollup refresh at %s", time.Now().In(loc)))

		refreshErr := RetryWithBackoff(cfg.MaxRetries, cfg.RetryDelay, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			rows, err := store.RefreshLeadRollups(ctx, db)
			if err != nil {
				return err
			}
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Rollup refresh updated %d rows", rows))
			return nil
		})

		if refreshErr != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Rollup refresh failed: %v", refreshErr))
		} else {
			logger.GlobalLogger.LogAudit("Rollup refresh completed at " + time.Now().In(loc).String())
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule rollup refresh: %v", err)
	}

	c.Start()
	logger.GlobalLogger.LogAudit("Rollup refresh scheduled for " + cfg.Schedule + " (" + cfg.TimeZone + ")")
	return nil
}
