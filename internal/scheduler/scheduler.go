package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

// ExpiredDeleter is the slice of a token store the sweep needs.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

var scheduler *gocron.Scheduler

// Initialize starts the background sweep that bounds storage growth by
// purging expired refresh tokens and blacklist entries.
func Initialize(interval time.Duration, refreshTokens, blacklist ExpiredDeleter) error {
	scheduler = gocron.NewScheduler(time.Local)

	_, err := scheduler.Every(interval).Do(func() {
		SweepExpired(context.Background(), refreshTokens, blacklist)
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to schedule token sweep")
		return err
	}

	scheduler.StartAsync()
	return nil
}

// SweepExpired runs one cleanup pass over both stores.
func SweepExpired(ctx context.Context, refreshTokens, blacklist ExpiredDeleter) {
	removed, err := refreshTokens.DeleteExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep expired refresh tokens")
	} else if removed > 0 {
		log.Info().Int64("removed", removed).Msg("Swept expired refresh tokens")
	}

	removed, err = blacklist.DeleteExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep expired blacklist entries")
	} else if removed > 0 {
		log.Info().Int64("removed", removed).Msg("Swept expired blacklist entries")
	}
}

// Stop gracefully shuts down the scheduler
func Stop() {
	if scheduler != nil {
		scheduler.Stop()
	}
}
