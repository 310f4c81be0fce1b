package media

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"eventboard/internal/domain"
)

// S3Config holds configuration for S3-backed uploads.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// BaseURL is the public base URL for uploaded objects. Defaults to the
	// bucket's virtual-hosted S3 URL.
	BaseURL string
}

// UploaderConfig holds configuration for creating an uploader.
type UploaderConfig struct {
	Provider string
	S3       S3Config
}

// NewUploader creates a media uploader from config. Provider "s3" stores objects
// in S3; "noop" or unknown uses a no-op uploader that returns placeholder URLs.
func NewUploader(config UploaderConfig) (domain.MediaUploader, error) {
	switch config.Provider {
	case "s3":
		s3Config := config.S3
		if s3Config.Bucket == "" {
			return nil, fmt.Errorf("s3 uploader requires a bucket")
		}
		awsCfg := aws.Config{
			Region: s3Config.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					s3Config.AccessKeyID,
					s3Config.SecretAccessKey,
					"",
				),
			),
		}
		baseURL := s3Config.BaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s3Config.Bucket, s3Config.Region)
		}
		return &s3Uploader{
			client:  s3.NewFromConfig(awsCfg),
			bucket:  s3Config.Bucket,
			baseURL: baseURL,
		}, nil
	case "noop":
		return &noopUploader{}, nil
	default:
		log.Printf("[MEDIA] Unknown media provider %q, using noop", config.Provider)
		return &noopUploader{}, nil
	}
}

type s3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// extByContentType maps sniffed image types to object key extensions.
var extByContentType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (u *s3Uploader) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", domain.ErrUploadFailed)
	}
	contentType := http.DetectContentType(data)
	ext, ok := extByContentType[contentType]
	if !ok {
		ext = ".bin"
	}
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return u.baseURL + "/" + key, nil
}

type noopUploader struct{}

func (n *noopUploader) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	url := fmt.Sprintf("https://media.invalid/%s/%s", folder, uuid.NewString())
	log.Println("[MEDIA] Image would be uploaded (noop)", "bytes", len(data), "url", url)
	return url, nil
}
