// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qordoba/qordoba-go/internal/bundle"
	"github.com/qordoba/qordoba-go/internal/config"
	"github.com/qordoba/qordoba-go/internal/sink"
	"github.com/qordoba/qordoba-go/internal/store"
	"github.com/qordoba/qordoba-go/internal/testlib"
	"github.com/qordoba/qordoba-go/model"
)

func testConfig(server *testlib.Server) *config.Config {
	return &config.Config{
		APIURL:         server.URL,
		Username:       server.Username,
		Password:       server.Password,
		ProjectID:      server.Project.ID,
		OrganizationID: server.Project.OrganizationID,
		HTTPTimeout:    5 * time.Second,
	}
}

func TestPushDocument(t *testing.T) {
	server := testlib.NewServer(t, nil)
	cfg := testConfig(server)

	document := newDocument(cfg)
	document.SetName("strings")
	require.NoError(t, bundle.LoadJSON([]byte(`{"title":"Hello","buttons":{"ok":"OK"}}`), document))

	fileID, action, err := pushDocument(document, nil, false)
	require.NoError(t, err)
	assert.Equal(t, store.ActionCreate, action)
	assert.NotZero(t, fileID)
	require.Len(t, server.Files(), 1)

	t.Run("update resolves the file by name", func(t *testing.T) {
		update := newDocument(cfg)
		update.SetName("strings")
		require.NoError(t, bundle.LoadJSON([]byte(`{"title":"Hello again"}`), update))

		updatedID, action, err := pushDocument(update, nil, true)
		require.NoError(t, err)
		assert.Equal(t, store.ActionUpdate, action)
		assert.Equal(t, fileID, updatedID)
		assert.Equal(t, `{"title":"Hello again"}`, string(server.Files()[0].Content))
	})

	t.Run("language check against the project source language", func(t *testing.T) {
		_, err := warnOnLanguageMismatch(document, "")
		assert.NoError(t, err)
	})
}

func TestWarnOnLanguageMismatchSourceOverride(t *testing.T) {
	server := testlib.NewServer(t, nil)
	cfg := testConfig(server)

	document := newDocument(cfg)
	document.SetName("strings")
	require.NoError(t, bundle.LoadJSON([]byte(`{"intro":"The quick brown fox jumps over the lazy dog and runs back home."}`), document))

	mismatch, err := warnOnLanguageMismatch(document, "de-de")
	require.NoError(t, err)
	assert.True(t, mismatch)

	mismatch, err = warnOnLanguageMismatch(document, "en-us")
	require.NoError(t, err)
	assert.False(t, mismatch)

	// An explicit source language never needs the project metadata.
	assert.Equal(t, 0, server.Requests())
}

func TestDocumentText(t *testing.T) {
	document := model.NewDocument("", "user", "pass", 1, 2)
	require.NoError(t, bundle.LoadJSON([]byte(`{"title":"Hello","buttons":{"ok":"OK","cancel":"Cancel"}}`), document))

	text, err := documentText(document)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nOK\nCancel\n", text)

	html := model.NewDocument("", "user", "pass", 1, 2)
	require.NoError(t, bundle.LoadHTML([]byte("<p>Hi</p>"), html))
	text, err = documentText(html)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi</p>", text)
}

func TestNewSinkDefaultsToDirectory(t *testing.T) {
	destination, err := newSink(context.Background(), &config.Config{Output: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &sink.DirSink{}, destination)
}
