package media

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"

	"CourseHub/internal/app_errors"
	"CourseHub/pkg/logger"
)

type mediaStorage interface {
	Upload(ctx context.Context, userID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (objectKey string, err error)
	URL(ctx context.Context, objectKey string) (string, error)
}

type MediaService struct {
	log         logger.Log
	storage     mediaStorage
	maxFileSize int64
}

func NewMediaService(l logger.Log, storage mediaStorage, maxFileSize int64) *MediaService {
	return &MediaService{log: l, storage: storage, maxFileSize: maxFileSize}
}

// Upload stores one media object for the user and returns a URL the client
// can commit into a profile or course field.
func (s *MediaService) Upload(ctx context.Context, userID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.maxFileSize > 0 && size > s.maxFileSize {
		return "", app_errors.ErrFileSize
	}
	if !allowedContentType(contentType) {
		return "", app_errors.ErrNotImage
	}

	key, err := s.storage.Upload(ctx, userID, filename, reader, size, contentType)
	if err != nil {
		return "", err
	}
	return s.storage.URL(ctx, key)
}

func allowedContentType(ct string) bool {
	return strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/")
}
