package job

import (
	"context"
	"fmt"
	"time"

	"agromap-backend/internal/domains/media/model"
	"agromap-backend/internal/domains/media/repository"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Objects younger than this may belong to a request still in flight
const defaultGracePeriod = 24 * time.Hour

type SweepOrphansHandler struct {
	repo   repository.Repository
	bucket Bucket
	grace  time.Duration
	now    func() time.Time
}

func NewSweepOrphansHandler(repo repository.Repository, bucket Bucket) *SweepOrphansHandler {
	return &SweepOrphansHandler{
		repo:   repo,
		bucket: bucket,
		grace:  defaultGracePeriod,
		now:    time.Now,
	}
}

// ProcessTask deletes stored images that no row references any more
func (h *SweepOrphansHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	// Step 1: everything the database still points at
	urls, err := h.repo.ReferencedURLs(ctx)
	if err != nil {
		return err
	}
	referenced := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		if key, ok := h.bucket.KeyFromURL(url); ok {
			referenced[key] = struct{}{}
		}
	}

	// Step 2: walk every folder and collect old unreferenced objects
	cutoff := h.now().Add(-h.grace)
	var orphans []string
	for _, folder := range model.Folders {
		objects, err := h.bucket.ListObjects(ctx, string(folder)+"/")
		if err != nil {
			return fmt.Errorf("list %s: %w", folder, err)
		}
		for _, obj := range objects {
			if _, ok := referenced[obj.Key]; ok {
				continue
			}
			if obj.LastModified.After(cutoff) {
				continue
			}
			orphans = append(orphans, obj.Key)
		}
	}

	// Step 3: remove
	if len(orphans) == 0 {
		log.Info().Int("referenced", len(referenced)).Msg("[MEDIA] sweep found no orphans")
		return nil
	}
	if err := h.bucket.RemoveObjects(ctx, orphans); err != nil {
		return err
	}

	log.Info().Int("referenced", len(referenced)).Int("removed", len(orphans)).Msg("[MEDIA] orphan sweep done")
	return nil
}
