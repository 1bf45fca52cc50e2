package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectPutter is the slice of the S3 client the upload flow needs; tests
// substitute a recording fake.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type UploadService struct {
	client ObjectPutter
	bucket string
	region string
}

func NewUploadService(client ObjectPutter, bucket, region string) *UploadService {
	return &UploadService{
		client: client,
		bucket: bucket,
		region: region,
	}
}

// UploadImage stores the image under a random key and returns its public URL.
func (s *UploadService) UploadImage(ctx context.Context, data []byte) (string, error) {
	key := fmt.Sprintf("books/%s.webp", uuid.New())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
