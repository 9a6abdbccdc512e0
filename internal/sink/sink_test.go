// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package sink_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mock_aws "github.com/qordoba/qordoba-go/internal/mocks/aws"
	"github.com/qordoba/qordoba-go/internal/sink"
)

func TestDirSink(t *testing.T) {
	fs := afero.NewMemMapFs()
	dirSink := sink.NewDirSink(fs, "/out")

	destination, err := dirSink.Write(context.Background(), "fr-fr", "example.json", []byte(`{"a":"b"}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "fr-fr", "example.json"), destination)

	body, err := afero.ReadFile(fs, destination)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"b"}`, string(body))

	t.Run("overwrite", func(t *testing.T) {
		_, err := dirSink.Write(context.Background(), "fr-fr", "example.json", []byte(`{}`))
		require.NoError(t, err)
		body, err := afero.ReadFile(fs, destination)
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(body))
	})

	t.Run("path traversal", func(t *testing.T) {
		_, err := dirSink.Write(context.Background(), "../etc", "example.json", nil)
		assert.Error(t, err)
		_, err = dirSink.Write(context.Background(), "fr-fr", "..", nil)
		assert.Error(t, err)
		_, err = dirSink.Write(context.Background(), "", "example.json", nil)
		assert.Error(t, err)
	})
}

func TestS3Sink(t *testing.T) {
	mock := &mock_aws.MockS3{BucketName: "translations", BucketExists: true}
	s3Sink := sink.NewS3SinkWithClients(mock, mock, "translations", "releases/v1")

	require.NoError(t, s3Sink.CheckBucket(context.Background()))

	destination, err := s3Sink.Write(context.Background(), "de-de", "landing.html", []byte("<h1>Willkommen</h1>"))
	require.NoError(t, err)
	assert.Equal(t, "s3://translations/releases/v1/de-de/landing.html", destination)

	body, ok := mock.Object("releases/v1/de-de/landing.html")
	require.True(t, ok)
	assert.Equal(t, "<h1>Willkommen</h1>", string(body))
	assert.Contains(t, mock.ContentType("releases/v1/de-de/landing.html"), "text/html")

	t.Run("upload failure", func(t *testing.T) {
		failing := &mock_aws.MockS3{BucketName: "translations", BucketExists: true, UploadErr: errors.New("boom")}
		_, err := sink.NewS3SinkWithClients(failing, failing, "translations", "").Write(context.Background(), "de-de", "a.json", []byte("{}"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestS3SinkCheckBucket(t *testing.T) {
	t.Run("missing bucket", func(t *testing.T) {
		mock := &mock_aws.MockS3{BucketName: "translations"}
		err := sink.NewS3SinkWithClients(mock, mock, "translations", "").CheckBucket(context.Background())
		require.Error(t, err)
		assert.Equal(t, "bucket translations does not exist", err.Error())
	})

	t.Run("forbidden", func(t *testing.T) {
		mock := &mock_aws.MockS3{BucketName: "translations", HeadErrorCode: "Forbidden"}
		err := sink.NewS3SinkWithClients(mock, mock, "translations", "").CheckBucket(context.Background())
		require.Error(t, err)
		assert.Equal(t, "access to bucket translations denied", err.Error())
	})

	t.Run("other api errors are wrapped", func(t *testing.T) {
		mock := &mock_aws.MockS3{BucketName: "translations", HeadErrorCode: "SlowDown"}
		err := sink.NewS3SinkWithClients(mock, mock, "translations", "").CheckBucket(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check bucket translations")
	})
}
