package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrS3Config indicates the AWS configuration could not be loaded.
var ErrS3Config = errors.New("failed to load AWS configuration")

// ContentTypePDF is stored on uploaded objects.
const ContentTypePDF = "application/pdf"

// Uploader is the part of manager.Uploader the sink uses.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

var _ Uploader = (*manager.Uploader)(nil)

// S3Options configures the S3 client. Credentials always come from the
// default AWS chain (environment, shared files, instance roles).
type S3Options struct {
	Region    string
	Endpoint  string // S3-compatible stores (MinIO, R2)
	PathStyle bool
}

// NewS3Uploader loads the default AWS configuration and returns a
// multipart-capable uploader.
func NewS3Uploader(ctx context.Context, opts S3Options) (*manager.Uploader, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrS3Config, err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	})
	return manager.NewUploader(client), nil
}

// putInput builds the upload request for one PDF.
func putInput(t Target, body *bytes.Reader) *s3.PutObjectInput {
	return &s3.PutObjectInput{
		Bucket:      aws.String(t.Bucket),
		Key:         aws.String(t.Key),
		Body:        body,
		ContentType: aws.String(ContentTypePDF),
	}
}
