// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package sink

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3manager "github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"

	"github.com/qordoba/qordoba-go/internal/common"
)

// S3API is the part of the S3 client the sink uses.
type S3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Uploader is the part of the S3 upload manager the sink uses.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// S3Sink writes translations to an S3 bucket under
// prefix/language/file.
type S3Sink struct {
	client   S3API
	uploader Uploader
	bucket   string
	prefix   string
}

// NewS3Sink creates an S3Sink using the shared AWS configuration.
func NewS3Sink(ctx context.Context, region, bucket, prefix string) (*S3Sink, error) {
	awsConfig, err := common.NewAWSConfig(ctx, region)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS configuration")
	}

	client := s3.NewFromConfig(awsConfig)

	return NewS3SinkWithClients(client, s3manager.NewUploader(client), bucket, prefix), nil
}

// NewS3SinkWithClients creates an S3Sink on top of the given clients.
func NewS3SinkWithClients(client S3API, uploader Uploader, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client:   client,
		uploader: uploader,
		bucket:   bucket,
		prefix:   prefix,
	}
}

// CheckBucket returns an error unless the bucket exists and is
// reachable.
func (s *S3Sink) CheckBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		// HeadBucket has no body, so a missing bucket surfaces as a bare NotFound.
		case "NotFound", "NoSuchBucket":
			return errors.Errorf("bucket %s does not exist", s.bucket)
		case "Forbidden", "AccessDenied":
			return errors.Errorf("access to bucket %s denied", s.bucket)
		}
	}

	return errors.Wrapf(err, "failed to check bucket %s", s.bucket)
}

// Write satisfies the Sink interface.
func (s *S3Sink) Write(ctx context.Context, languageCode, fileName string, body []byte) (string, error) {
	key, err := objectPath(s.prefix, languageCode, fileName)
	if err != nil {
		return "", err
	}

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(http.DetectContentType(body)),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to upload %s to bucket %s", key, s.bucket)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
