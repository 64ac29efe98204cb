package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/config"
	"skilltwin/internal/models"
)

const (
	blogImageFolder = "blog-images"
	presignExpiry   = 15 * time.Minute
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// UploadService hands out presigned S3 PUT URLs for blog images.
type UploadService interface {
	PresignImageUpload(ctx context.Context, req *models.PresignRequest) (*models.PresignResponse, error)
}

type s3UploadService struct {
	presigner *s3.PresignClient
	bucket    string
	region    string
	baseURL   string
}

// NewUploadService returns an UploadService that reports Unavailable when no
// bucket is configured.
func NewUploadService(ctx context.Context, cfg config.S3Config) UploadService {
	if cfg.Bucket == "" {
		log.Info().Msg("S3 bucket not set, image uploads disabled")
		return &s3UploadService{}
	}

	var awsCfg aws.Config
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region:      cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		}
	} else {
		var err error
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load default AWS config, falling back to region only")
			awsCfg = aws.Config{Region: cfg.Region}
		}
	}

	return &s3UploadService{
		presigner: s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

func (s *s3UploadService) PresignImageUpload(ctx context.Context, req *models.PresignRequest) (*models.PresignResponse, error) {
	if s.presigner == nil {
		return nil, apperrors.Unavailable("Image uploads are not configured")
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if _, ok := allowedImageTypes[contentType]; !ok {
		return nil, apperrors.Validation("contentType must be an image (jpeg, png, webp or gif)")
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	key := fmt.Sprintf("%s/%s%s", blogImageFolder, uuid.NewString(), ext)

	presigned, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	if s.baseURL != "" {
		fileURL = s.baseURL + "/" + key
	}

	log.Debug().Str("key", key).Msg("Presigned image upload")
	return &models.PresignResponse{UploadURL: presigned.URL, FileURL: fileURL, Key: key}, nil
}
