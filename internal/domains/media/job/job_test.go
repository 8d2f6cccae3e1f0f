package job

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"agromap-backend/internal/infrastructure/storage"
	"agromap-backend/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "http://minio/agromap/"

type fakeBucket struct {
	objects []storage.ObjectInfo
	removed []string
}

func (b *fakeBucket) KeyFromURL(raw string) (string, bool) {
	if !strings.HasPrefix(raw, base) {
		return "", false
	}
	return strings.TrimPrefix(raw, base), true
}

func (b *fakeBucket) ListObjects(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for _, o := range b.objects {
		if strings.HasPrefix(o.Key, prefix) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (b *fakeBucket) RemoveObjects(_ context.Context, keys []string) error {
	b.removed = append(b.removed, keys...)
	return nil
}

type fakeRepo struct {
	urls []string
	err  error
}

func (r *fakeRepo) ReferencedURLs(context.Context) ([]string, error) { return r.urls, r.err }

func TestDeleteObjectsHandler(t *testing.T) {
	bucket := &fakeBucket{}
	h := NewDeleteObjectsHandler(bucket)

	payload, _ := json.Marshal(shared.DeleteMediaObjectsPayload{
		URLs:   []string{base + "markets/a.jpg", "https://elsewhere/x.jpg", base + "products/b.jpg"},
		Reason: "market deleted",
	})
	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeDeleteMediaObjects, payload)))

	assert.Equal(t, []string{"markets/a.jpg", "products/b.jpg"}, bucket.removed)
}

func TestDeleteObjectsHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewDeleteObjectsHandler(&fakeBucket{})

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeDeleteMediaObjects, []byte("{")))

	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestSweepOrphansHandler(t *testing.T) {
	now := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
	old := now.Add(-48 * time.Hour)

	bucket := &fakeBucket{objects: []storage.ObjectInfo{
		{Key: "markets/kept.jpg", LastModified: old},
		{Key: "markets/orphan.jpg", LastModified: old},
		{Key: "profiles/orphan.jpg", LastModified: old},
		{Key: "products/fresh.jpg", LastModified: now.Add(-time.Hour)},
	}}
	repo := &fakeRepo{urls: []string{base + "markets/kept.jpg", "https://elsewhere/x.jpg"}}

	h := NewSweepOrphansHandler(repo, bucket)
	h.now = func() time.Time { return now }

	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSweepOrphanMedia, nil)))

	sort.Strings(bucket.removed)
	assert.Equal(t, []string{"markets/orphan.jpg", "profiles/orphan.jpg"}, bucket.removed)
}

func TestSweepOrphansHandler_RepoFailureRemovesNothing(t *testing.T) {
	bucket := &fakeBucket{objects: []storage.ObjectInfo{{Key: "markets/a.jpg"}}}
	h := NewSweepOrphansHandler(&fakeRepo{err: errors.New("db down")}, bucket)

	require.Error(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSweepOrphanMedia, nil)))
	assert.Empty(t, bucket.removed)
}
