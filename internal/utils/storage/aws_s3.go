package storage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type (
	// AwsS3 wraps the two object-storage operations the pipeline needs:
	// issuing a time-limited upload credential and checking an object exists.
	AwsS3 interface {
		PresignPutObject(ctx context.Context, key string, contentType string, expires time.Duration) (string, error)
		ObjectExists(ctx context.Context, bucket string, key string) error
		Bucket() string
	}

	awsS3 struct {
		client  *s3.Client
		presign *s3.PresignClient
		bucket  string
	}
)

func NewAwsS3(cfg aws.Config, bucket string) AwsS3 {
	client := s3.NewFromConfig(cfg)
	return &awsS3{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}
}

// PresignPutObject authorizes exactly one write of the given content type to
// the given key; the URL expires after the window regardless of use.
func (s *awsS3) PresignPutObject(ctx context.Context, key string, contentType string, expires time.Duration) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *awsS3) ObjectExists(ctx context.Context, bucket string, key string) error {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *awsS3) Bucket() string {
	return s.bucket
}
