package itemsource

import (
	"context"
	"fmt"

	"Pickme/api/bracket"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// GetObjectAPI is the slice of the S3 client the source needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a link list stored as an S3 object.
type S3Source struct {
	Client GetObjectAPI
	Bucket string
	Key    string
}

// NewS3Client loads the default AWS credential chain for region and returns
// a path-style S3 client.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("itemsource: load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	}), nil
}

func (s S3Source) Load(ctx context.Context) ([]bracket.Item, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("itemsource: get s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	defer out.Body.Close()

	items, err := ParseItems(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	return items, nil
}
