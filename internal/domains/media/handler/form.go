package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"agromap-backend/internal/domains/media/model"
	"agromap-backend/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// MaxImagesPerRequest caps how many files a single form field may carry
const MaxImagesPerRequest = 10

// FormFiles reads every file sent under field. Non multipart requests yield no files.
func FormFiles(c *gin.Context, field string) ([]model.File, error) {
	form, err := c.MultipartForm()
	if errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Invalid(model.ErrUploadRejected.Message, err)
	}

	headers := form.File[field]
	if len(headers) > MaxImagesPerRequest {
		return nil, apperror.WithDetails(model.ErrTooManyImages, fmt.Sprintf("at most %d images", MaxImagesPerRequest))
	}

	files := make([]model.File, 0, len(headers))
	for _, fh := range headers {
		f, err := readFile(fh)
		if err != nil {
			return nil, apperror.Invalid(model.ErrUploadRejected.Message, err)
		}
		files = append(files, f)
	}
	return files, nil
}

// FormFile reads the first file under field, nil when none was sent
func FormFile(c *gin.Context, field string) (*model.File, error) {
	files, err := FormFiles(c, field)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	return &files[0], nil
}

func readFile(fh *multipart.FileHeader) (model.File, error) {
	src, err := fh.Open()
	if err != nil {
		return model.File{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return model.File{}, err
	}
	return model.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
