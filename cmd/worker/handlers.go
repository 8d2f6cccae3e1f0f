package main

import (
	"github.com/hibiken/asynq"

	mediaJob "agromap-backend/internal/domains/media/job"
	mediaRepo "agromap-backend/internal/domains/media/repository"
	"agromap-backend/internal/shared"
	"agromap-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Media handlers
	deleteObjects *mediaJob.DeleteObjectsHandler
	sweepOrphans  *mediaJob.SweepOrphansHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return newHandlerRegistry(c.Storage, mediaRepo.NewPostgresRepository(c.DB.Pool))
}

func newHandlerRegistry(bucket mediaJob.Bucket, repo mediaRepo.Repository) *HandlerRegistry {
	return &HandlerRegistry{
		deleteObjects: mediaJob.NewDeleteObjectsHandler(bucket),
		sweepOrphans:  mediaJob.NewSweepOrphansHandler(repo, bucket),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeDeleteMediaObjects, h.deleteObjects.ProcessTask)
	mux.HandleFunc(shared.TypeSweepOrphanMedia, h.sweepOrphans.ProcessTask)
}
