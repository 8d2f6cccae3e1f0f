package main

import (
	"agromap-backend/internal/config"
	"agromap-backend/internal/infrastructure/queue"

	"github.com/rs/zerolog/log"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler registers the cron jobs and starts the scheduler
func setupScheduler(cfg *config.Config) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.Redis, cfg.Jobs, cfg.Location())

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatal().Err(err).Msg("[SCHEDULER] failed to register jobs")
	}

	go func() {
		log.Info().Str("timezone", cfg.App.Timezone).Msg("[SCHEDULER] starting")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("[SCHEDULER] failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[SCHEDULER] shutting down")
	s.Scheduler.Shutdown()
	log.Info().Msg("[SCHEDULER] stopped")
}
