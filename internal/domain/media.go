package domain

import (
	"context"
	"errors"
)

// ErrUploadFailed is returned when the media uploader cannot store an image.
var ErrUploadFailed = errors.New("media upload failed")

// MediaUploader stores an image and returns a durable public URL for it
// (infrastructure port).
type MediaUploader interface {
	Upload(ctx context.Context, data []byte, folder string) (url string, err error)
}
