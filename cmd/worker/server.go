package main

import (
	"context"

	"agromap-backend/internal/config"
	"agromap-backend/internal/infrastructure/queue"
	"agromap-backend/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

// queuePriorities weights image deletions above the nightly sweep
func queuePriorities() map[string]int {
	return map[string]int{
		shared.QueueDefault: 10,
		shared.QueueLow:     2,
	}
}

// setupAsynqServer creates and starts the Asynq server
func setupAsynqServer(cfg *config.Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		queue.RedisOpt(cfg.Redis),
		asynq.Config{
			Queues:      queuePriorities(),
			Concurrency: cfg.Jobs.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("task", task.Type()).Msg("[WORKER] task failed")
			}),
		},
	)

	go func() {
		log.Info().Int("concurrency", cfg.Jobs.Concurrency).Msg("[WORKER] starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[WORKER] failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to asynq's shutdown timeout
func (s *asynqServer) Shutdown() {
	log.Info().Msg("[WORKER] shutting down")
	s.Server.Shutdown()
	log.Info().Msg("[WORKER] stopped")
}
