package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophcards/internal/netx"
)

// S3Config points at an S3-compatible bucket (AWS, MinIO, ...).
type S3Config struct {
	Endpoint   string
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	PresignTTL time.Duration
}

type presigner interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newPresigner = func(cfg aws.Config, endpoint string) presigner {
		client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			if endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
				o.UsePathStyle = true
			}
		})
		return s3.NewPresignClient(client)
	}
)

// S3Store uploads through a presigned PUT and returns a presigned GET URL
// valid for PresignTTL.
type S3Store struct {
	cfg     S3Config
	presign presigner
	http    *http.Client
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 media store: bucket is required")
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 24 * time.Hour
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 media store: %w", err)
	}

	return &S3Store{
		cfg:     cfg,
		presign: newPresigner(awsCfg, cfg.Endpoint),
		http:    &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

func (s *S3Store) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	put, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(name),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", name, err)
	}

	if err := netx.PutPresigned(ctx, s.http, put.URL, data, contentType); err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}

	get, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(name),
	}, s3.WithPresignExpires(s.cfg.PresignTTL))
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", name, err)
	}

	return get.URL, nil
}
