// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package mock_aws

import (
	"context"
	"io"
	"sync"

	s3manager "github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// MockS3 is an in-memory bucket satisfying the S3 client and upload
// manager calls used by the sink.
type MockS3 struct {
	BucketName   string
	BucketExists bool

	// HeadErrorCode, when set, is returned as an API error by HeadBucket.
	HeadErrorCode string

	// UploadErr fails every upload.
	UploadErr error

	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (m *MockS3) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if m.HeadErrorCode != "" {
		return nil, &smithy.GenericAPIError{Code: m.HeadErrorCode, Message: m.HeadErrorCode}
	}
	if !m.BucketExists || params.Bucket == nil || *params.Bucket != m.BucketName {
		return nil, &smithy.GenericAPIError{Code: "NotFound", Message: "Not Found"}
	}

	return &s3.HeadBucketOutput{}, nil
}

func (m *MockS3) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}

	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = make(map[string][]byte)
		m.types = make(map[string]string)
	}
	m.objects[*input.Key] = body
	if input.ContentType != nil {
		m.types[*input.Key] = *input.ContentType
	}

	return &s3manager.UploadOutput{Location: "https://" + *input.Bucket + ".s3.amazonaws.com/" + *input.Key}, nil
}

// Object returns a stored object and whether it exists.
func (m *MockS3) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.objects[key]
	return body, ok
}

// ContentType returns the content type an object was stored with.
func (m *MockS3) ContentType(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.types[key]
}
