package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agromap-backend/internal/infrastructure/storage"
	"agromap-backend/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Bucket is the part of the object store the media jobs use; *storage.MinIOStorage satisfies it
type Bucket interface {
	KeyFromURL(raw string) (string, bool)
	ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error)
	RemoveObjects(ctx context.Context, keys []string) error
}

type DeleteObjectsHandler struct {
	bucket Bucket
}

func NewDeleteObjectsHandler(bucket Bucket) *DeleteObjectsHandler {
	return &DeleteObjectsHandler{bucket: bucket}
}

// ProcessTask removes the objects behind the payload URLs.
// URLs outside the bucket are skipped.
func (h *DeleteObjectsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteMediaObjectsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid %s payload: %v: %w", shared.TypeDeleteMediaObjects, err, asynq.SkipRetry)
	}

	start := time.Now()
	keys := make([]string, 0, len(payload.URLs))
	for _, url := range payload.URLs {
		key, ok := h.bucket.KeyFromURL(url)
		if !ok {
			log.Debug().Str("url", url).Msg("[MEDIA] skipping foreign url")
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := h.bucket.RemoveObjects(ctx, keys); err != nil {
		return err
	}

	log.Info().
		Int("removed", len(keys)).
		Str("reason", payload.Reason).
		Dur("duration", time.Since(start)).
		Msg("[MEDIA] objects removed")
	return nil
}
