package imagestore

import (
	"context"
	"errors"
)

// ErrUploadFailed means the image host rejected or never received the upload.
var ErrUploadFailed = errors.New("image_upload_failed")

// Provider stores a raw image and returns its durable URL.
type Provider interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	return "", ErrUploadFailed
}
