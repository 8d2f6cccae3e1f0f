package service

import (
	"context"
	"errors"
	"fmt"

	"agromap-backend/internal/domains/media/model"
	"agromap-backend/internal/infrastructure/storage"
	"agromap-backend/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ObjectStore is the write side of the bucket
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ImageNormalizer checks and re-encodes images before they are stored
type ImageNormalizer interface {
	ValidateImage(data []byte) error
	Normalize(data []byte) ([]byte, error)
}

type Uploader interface {
	// Upload stores one image under folder and returns its public URL
	Upload(ctx context.Context, folder model.Folder, file model.File) (string, error)
	// UploadAll stores files in order. Images stored before a failure are left
	// for the orphan sweep.
	UploadAll(ctx context.Context, folder model.Folder, files []model.File) ([]string, error)
}

type uploader struct {
	store     ObjectStore
	processor ImageNormalizer
}

func NewUploader(store ObjectStore, processor ImageNormalizer) Uploader {
	return &uploader{store: store, processor: processor}
}

func (u *uploader) Upload(ctx context.Context, folder model.Folder, file model.File) (string, error) {
	// Step 1: type and size
	if err := u.processor.ValidateImage(file.Data); err != nil {
		switch {
		case errors.Is(err, storage.ErrImageTooLarge):
			return "", apperror.Invalid(model.ErrImageTooLarge.Message, err)
		default:
			return "", apperror.Invalid(model.ErrInvalidImage.Message, err)
		}
	}

	// Step 2: resize and re-encode
	data, err := u.processor.Normalize(file.Data)
	if err != nil {
		return "", apperror.Invalid(model.ErrInvalidImage.Message, err)
	}

	// Step 3: store
	key := fmt.Sprintf("%s/%s.jpg", folder, uuid.New())
	url, err := u.store.Upload(ctx, key, data, "image/jpeg")
	if err != nil {
		return "", apperror.Unexpected("failed to store image", err)
	}

	log.Debug().Str("key", key).Str("original", file.Name).Int("bytes", len(data)).Msg("[MEDIA] image stored")
	return url, nil
}

func (u *uploader) UploadAll(ctx context.Context, folder model.Folder, files []model.File) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := u.Upload(ctx, folder, f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
