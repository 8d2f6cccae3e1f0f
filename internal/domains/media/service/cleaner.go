package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agromap-backend/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// TaskEnqueuer is satisfied by *asynq.Client
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Cleaner schedules removal of images that are no longer referenced
type Cleaner interface {
	Enqueue(ctx context.Context, urls []string, reason string) error
}

type queueCleaner struct {
	client TaskEnqueuer
}

func NewCleaner(client TaskEnqueuer) Cleaner {
	return &queueCleaner{client: client}
}

func (c *queueCleaner) Enqueue(ctx context.Context, urls []string, reason string) error {
	urls = dedupe(urls)
	if len(urls) == 0 {
		return nil
	}

	payload, err := json.Marshal(shared.DeleteMediaObjectsPayload{URLs: urls, Reason: reason})
	if err != nil {
		return fmt.Errorf("marshal media payload: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx,
		asynq.NewTask(shared.TypeDeleteMediaObjects, payload),
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue media cleanup: %w", err)
	}

	log.Debug().Str("task_id", info.ID).Int("count", len(urls)).Str("reason", reason).Msg("[MEDIA] cleanup enqueued")
	return nil
}

// EnqueueQuietly logs instead of failing; the nightly sweep removes whatever is missed.
func EnqueueQuietly(ctx context.Context, c Cleaner, urls []string, reason string) {
	if c == nil {
		return
	}
	if err := c.Enqueue(ctx, urls, reason); err != nil {
		log.Warn().Err(err).Str("reason", reason).Int("count", len(urls)).Msg("[MEDIA] failed to enqueue cleanup")
	}
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
