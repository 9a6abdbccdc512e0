// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model_test

import (
	"io"
	"os"
	"regexp"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mock_model "github.com/qordoba/qordoba-go/internal/mocks/model"
	"github.com/qordoba/qordoba-go/model"
)

var validFileName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func TestUploadFileNameProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("valid names are accepted unchanged", prop.ForAll(
		func(name string) bool {
			upload := model.NewUpload(nil, 1, 2)
			if err := upload.SetFileName(name); err != nil {
				return false
			}
			return upload.FileName() == name
		},
		gen.RegexMatch(`^[A-Za-z0-9._-]{1,40}$`),
	))

	properties.Property("names with other characters are rejected", prop.ForAll(
		func(name string) bool {
			upload := model.NewUpload(nil, 1, 2)
			err := upload.SetFileName(name)
			return model.IsKind(err, model.KindUpload) &&
				model.HasCode(err, model.CodeWrongFileName) &&
				upload.FileName() == ""
		},
		gen.AnyString().SuchThat(func(s string) bool { return !validFileName.MatchString(s) }),
	))

	properties.TestingRun(t)
}

func countFiles(t *testing.T, fs afero.Fs) int {
	count := 0
	err := afero.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
		}
		return nil
	})
	require.NoError(t, err)
	return count
}

func TestUploadSendFile(t *testing.T) {
	mockController := gomock.NewController(t)
	client := mock_model.NewMockClient(mockController)
	fs := afero.NewMemMapFs()

	upload := model.NewUpload(client, 10, 20)
	upload.SetFs(fs)

	t.Run("new file", func(t *testing.T) {
		client.EXPECT().
			RequestFileUpload("doc.json", gomock.Any(), int64(10), int64(20)).
			DoAndReturn(func(fileName string, file io.Reader, projectID, organizationID int64) (string, error) {
				b, err := io.ReadAll(file)
				require.NoError(t, err)
				assert.Equal(t, `{"a":"b"}`, string(b))
				assert.Equal(t, 1, countFiles(t, fs))
				return "55", nil
			}).
			Times(1)

		uploadID, err := upload.SendFile("doc.json", `{"a":"b"}`, false, 0)
		require.NoError(t, err)
		assert.Equal(t, "55", uploadID)
		assert.Equal(t, "55", upload.UploadID())
		assert.Equal(t, 0, countFiles(t, fs))
	})

	t.Run("update without a document id uploads a new file", func(t *testing.T) {
		client.EXPECT().
			RequestFileUpload("doc.json", gomock.Any(), int64(10), int64(20)).
			Return("56", nil).
			Times(1)

		uploadID, err := upload.SendFile("doc.json", "{}", true, 0)
		require.NoError(t, err)
		assert.Equal(t, "56", uploadID)
	})

	t.Run("update", func(t *testing.T) {
		client.EXPECT().
			RequestFileUploadUpdate("doc.json", gomock.Any(), int64(10), int64(99)).
			Return("57", nil).
			Times(1)

		uploadID, err := upload.SendFile("doc.json", "{}", true, 99)
		require.NoError(t, err)
		assert.Equal(t, "57", uploadID)
	})

	t.Run("failed upload still removes the blob", func(t *testing.T) {
		client.EXPECT().
			RequestFileUpload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("boom")).
			Times(1)

		_, err := upload.SendFile("doc.json", "{}", false, 0)
		require.Error(t, err)
		assert.Equal(t, 0, countFiles(t, fs))
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := upload.SendFile("doc name.json", "{}", false, 0)
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.CodeWrongFileName))
	})
}

func TestUploadProjectCalls(t *testing.T) {
	mockController := gomock.NewController(t)
	client := mock_model.NewMockClient(mockController)

	upload := model.NewUpload(client, 10, 20)
	upload.SetFs(afero.NewMemMapFs())

	t.Run("nothing sent yet", func(t *testing.T) {
		_, err := upload.AppendToProject("New")
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.CodeUploadNotSent))

		_, err = upload.UpdateProject(5, "")
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.CodeUploadNotSent))
	})

	client.EXPECT().
		RequestFileUpload("doc.json", gomock.Any(), int64(10), int64(20)).
		Return("77", nil).
		Times(1)
	_, err := upload.SendFile("doc.json", "{}", false, 0)
	require.NoError(t, err)

	t.Run("append", func(t *testing.T) {
		client.EXPECT().
			RequestAppendToProject("doc.json", "77", "v2", int64(10)).
			Return(int64(400), nil).
			Times(1)

		fileID, err := upload.AppendToProject("v2")
		require.NoError(t, err)
		assert.Equal(t, int64(400), fileID)
	})

	t.Run("update with the last upload", func(t *testing.T) {
		client.EXPECT().
			RequestUpdateProject("77", int64(400), int64(10)).
			Return(int64(400), nil).
			Times(1)

		fileID, err := upload.UpdateProject(400, "")
		require.NoError(t, err)
		assert.Equal(t, int64(400), fileID)
	})

	t.Run("update with an explicit upload", func(t *testing.T) {
		client.EXPECT().
			RequestUpdateProject("88", int64(400), int64(10)).
			Return(int64(401), nil).
			Times(1)

		fileID, err := upload.UpdateProject(400, "88")
		require.NoError(t, err)
		assert.Equal(t, int64(401), fileID)
	})
}
