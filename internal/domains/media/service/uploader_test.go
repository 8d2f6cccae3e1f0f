package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"agromap-backend/internal/domains/media/model"
	"agromap-backend/internal/infrastructure/storage"
	"agromap-backend/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	objects map[string][]byte
	failOn  int
	calls   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (s *memoryStore) Upload(_ context.Context, key string, data []byte, contentType string) (string, error) {
	s.calls++
	if s.failOn > 0 && s.calls == s.failOn {
		return "", errors.New("bucket unavailable")
	}
	s.objects[key] = data
	return "http://minio/agromap/" + key, nil
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploader_Upload(t *testing.T) {
	store := newMemoryStore()
	u := NewUploader(store, storage.NewImageProcessor(0))

	url, err := u.Upload(context.Background(), model.FolderMarkets, model.File{Name: "stall.png", Data: pngImage(t, 40, 30)})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://minio/agromap/markets/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))
	require.Len(t, store.objects, 1)
}

func TestUploader_RejectsNonImage(t *testing.T) {
	u := NewUploader(newMemoryStore(), storage.NewImageProcessor(0))

	_, err := u.Upload(context.Background(), model.FolderProducts, model.File{Name: "notes.txt", Data: []byte("hello")})

	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUploader_RejectsOversized(t *testing.T) {
	u := NewUploader(newMemoryStore(), storage.NewImageProcessor(16))

	_, err := u.Upload(context.Background(), model.FolderProfiles, model.File{Data: pngImage(t, 10, 10)})

	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "too large")
}

func TestUploader_UploadAllStopsOnFailure(t *testing.T) {
	store := newMemoryStore()
	store.failOn = 2
	u := NewUploader(store, storage.NewImageProcessor(0))

	files := []model.File{{Data: pngImage(t, 5, 5)}, {Data: pngImage(t, 5, 5)}, {Data: pngImage(t, 5, 5)}}
	urls, err := u.UploadAll(context.Background(), model.FolderProducts, files)

	require.Error(t, err)
	assert.Nil(t, urls)
	assert.Equal(t, apperror.KindUnexpected, apperror.KindOf(err))
	assert.Equal(t, 2, store.calls)
}
