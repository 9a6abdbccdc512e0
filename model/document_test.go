// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model_test

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qordoba/qordoba-go/internal/testlib"
	"github.com/qordoba/qordoba-go/model"
)

func newTestDocument(t *testing.T, server *testlib.Server) *model.Document {
	document := model.NewDocument(server.URL, server.Username, server.Password, server.Project.ID, server.Project.OrganizationID)
	document.SetLogger(testlib.MakeLogger(t))
	document.Project().Uploader().SetFs(afero.NewMemMapFs())
	return document
}

func TestDocumentDefaults(t *testing.T) {
	document := model.NewDocument("", "user", "pass", 1, 2)
	assert.Equal(t, model.TypeJSON, document.Type())
	assert.Equal(t, model.DefaultTag, document.Tag())
	assert.Equal(t, model.DefaultAPIURL, document.Connection().APIURL())
	assert.Equal(t, int64(0), document.ID())

	document.SetTag(2)
	assert.Equal(t, "2", document.Tag())
	document.SetName("  example ")
	assert.Equal(t, "example", document.Name())
}

func TestDocumentTypeSplit(t *testing.T) {
	t.Run("html operations on a json document", func(t *testing.T) {
		document := model.NewDocument("", "user", "pass", 1, 2)

		err := document.AddTranslationContent("<p>hi</p>")
		assert.True(t, model.HasCode(err, model.CodeWrongType))
		err = document.UpdateTranslationContent("<p>hi</p>")
		assert.True(t, model.HasCode(err, model.CodeWrongType))
		err = document.RemoveTranslationContent()
		assert.True(t, model.HasCode(err, model.CodeWrongType))
		_, err = document.TranslationContent()
		require.Error(t, err)
		assert.True(t, model.IsKind(err, model.KindDocument))
		assert.Contains(t, err.Error(), "'html'")
	})

	t.Run("json operations on an html document", func(t *testing.T) {
		document := model.NewDocument("", "user", "pass", 1, 2)
		document.SetType(model.TypeHTML)

		_, err := document.AddSection("buttons")
		assert.True(t, model.HasCode(err, model.CodeWrongType))
		err = document.AddTranslationString("k", "v")
		assert.True(t, model.HasCode(err, model.CodeWrongType))
		err = document.UpdateTranslationString("k", "v")
		assert.True(t, model.HasCode(err, model.CodeWrongType))
		_, err = document.RemoveTranslationString("k")
		assert.True(t, model.HasCode(err, model.CodeWrongType))
		_, _, err = document.TranslationString("k")
		assert.True(t, model.HasCode(err, model.CodeWrongType))
		_, err = document.TranslationStrings()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'json'")
	})
}

func TestDocumentStrings(t *testing.T) {
	document := model.NewDocument("", "user", "pass", 1, 2)

	require.NoError(t, document.AddTranslationString("title", "Hello"))
	require.NoError(t, document.AddTranslationString("subtitle", "World"))
	require.NoError(t, document.AddTranslationString("footer", "World"))
	_, err := document.AddSection("buttons")
	require.NoError(t, err)

	t.Run("duplicate", func(t *testing.T) {
		err := document.AddTranslationString("title", "Hi")
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.CodeStringExists))
	})

	t.Run("update missing", func(t *testing.T) {
		err := document.UpdateTranslationString("missing", "x")
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.CodeStringNotExists))
	})

	t.Run("update a section key", func(t *testing.T) {
		err := document.UpdateTranslationString("buttons", "x")
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.CodeStringNotExists))
	})

	t.Run("lookup", func(t *testing.T) {
		require.NoError(t, document.UpdateTranslationString("title", "Hi"))
		str, ok, err := document.TranslationString("title")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Hi", str.Value())
		assert.Nil(t, str.Section())

		_, ok, err = document.TranslationString("buttons")
		require.NoError(t, err)
		assert.False(t, ok)

		strs, err := document.TranslationStrings()
		require.NoError(t, err)
		assert.Len(t, strs, 3)
	})

	t.Run("remove", func(t *testing.T) {
		removed, err := document.RemoveTranslationString("buttons")
		require.NoError(t, err)
		assert.False(t, removed)

		removed, err = document.RemoveTranslationString("title")
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = document.RemoveTranslationString("title")
		require.NoError(t, err)
		assert.False(t, removed)

		removed, err = document.RemoveTranslationString("World")
		require.NoError(t, err)
		assert.True(t, removed)

		strs, err := document.TranslationStrings()
		require.NoError(t, err)
		assert.Empty(t, strs)
		assert.Len(t, document.Sections(), 1)
	})
}

func TestDocumentRemoveByValueAdjacent(t *testing.T) {
	document := model.NewDocument("", "user", "pass", 1, 2)
	require.NoError(t, document.AddTranslationString("a", "X"))
	require.NoError(t, document.AddTranslationString("b", "X"))
	require.NoError(t, document.AddTranslationString("c", "X"))
	require.NoError(t, document.AddTranslationString("d", "Y"))

	removed, err := document.RemoveTranslationString("X")
	require.NoError(t, err)
	assert.True(t, removed)

	strs, err := document.TranslationStrings()
	require.NoError(t, err)
	require.Len(t, strs, 1)
	assert.Equal(t, "d", strs[0].Key())
}

func TestDocumentAddSectionCollisions(t *testing.T) {
	document := model.NewDocument("", "user", "pass", 1, 2)
	section, err := document.AddSection("buttons")
	require.NoError(t, err)
	require.NoError(t, section.AddTranslationString("ok", "OK"))
	require.NoError(t, document.AddTranslationString("title", "Hello"))

	t.Run("section twice", func(t *testing.T) {
		_, err := document.AddSection("buttons")
		require.Error(t, err)
		assert.True(t, model.IsKind(err, model.KindDocument))
		assert.True(t, model.HasCode(err, model.CodeStringExists))

		kept, ok := document.Section("buttons")
		require.True(t, ok)
		assert.Equal(t, 1, kept.Len())
	})

	t.Run("section over a flat string", func(t *testing.T) {
		_, err := document.AddSection("title")
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.CodeStringExists))

		str, ok, err := document.TranslationString("title")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Hello", str.Value())
	})
}

func TestDocumentContent(t *testing.T) {
	document := model.NewDocument("", "user", "pass", 1, 2)
	document.SetType(model.TypeHTML)

	err := document.UpdateTranslationContent("<p>x</p>")
	assert.True(t, model.HasCode(err, model.CodeStringNotExists))
	err = document.RemoveTranslationContent()
	assert.True(t, model.HasCode(err, model.CodeStringNotExists))

	require.NoError(t, document.AddTranslationContent(" <p>Hello</p> "))
	err = document.AddTranslationContent("<p>Again</p>")
	assert.True(t, model.HasCode(err, model.CodeStringExists))

	content, err := document.TranslationContent()
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello</p>", content)

	require.NoError(t, document.UpdateTranslationContent("<p>Bye</p>"))
	content, err = document.TranslationContent()
	require.NoError(t, err)
	assert.Equal(t, "<p>Bye</p>", content)

	require.NoError(t, document.RemoveTranslationContent())
	content, err = document.TranslationContent()
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestDocumentEmptyContent(t *testing.T) {
	server := testlib.NewServer(t, nil)

	t.Run("json", func(t *testing.T) {
		document := newTestDocument(t, server)
		document.SetName("empty")
		_, err := document.CreateTranslation()
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.CodeEmptyContent))
	})

	t.Run("html", func(t *testing.T) {
		document := newTestDocument(t, server)
		document.SetType(model.TypeHTML)
		document.SetName("empty")
		_, err := document.CreateTranslation()
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.CodeEmptyContent))
	})

	assert.Equal(t, 0, server.Requests())
}

func TestDocumentLifecycle(t *testing.T) {
	server := testlib.NewServer(t, nil)

	document := newTestDocument(t, server)
	document.SetTag(1)
	document.SetName("example")
	section, err := document.AddSection("buttons")
	require.NoError(t, err)
	require.NoError(t, section.AddTranslationString("ok", "OK"))
	require.NoError(t, section.AddTranslationString("cancel", "Cancel"))

	id, err := document.CreateTranslation()
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, id, document.ID())
	// login, project metadata, upload, append
	assert.Equal(t, 4, document.Connection().RequestCount())

	files := server.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "example.json", files[0].Title)
	assert.Equal(t, "1", files[0].VersionTag)
	assert.Equal(t, `{"buttons":{"ok":"OK","cancel":"Cancel"}}`, string(files[0].Content))

	t.Run("check finds the page in every language", func(t *testing.T) {
		results, err := document.Project().Check("example", "", "", model.StatusNone, model.TypeJSON)
		require.NoError(t, err)
		require.Len(t, results, len(server.Project.TargetLanguages))
		for _, result := range results {
			assert.Greater(t, result.Meta.Paging.TotalResults, 0)
			assert.Equal(t, id, result.Pages[0].PageID)
		}
	})

	t.Run("nothing is complete yet", func(t *testing.T) {
		results, err := document.CheckTranslation("fr-fr")
		require.NoError(t, err)
		assert.Equal(t, 0, results["fr-fr"].Meta.Paging.TotalResults)

		translations, err := document.FetchTranslation("")
		require.NoError(t, err)
		assert.Empty(t, translations)
	})

	t.Run("saved translations", func(t *testing.T) {
		translations, err := document.FetchSavedTranslation("de-de")
		require.NoError(t, err)
		require.Len(t, translations, 1)
		assert.True(t, translations["de-de"].IsJSON)
	})

	t.Run("completed translations", func(t *testing.T) {
		server.Complete("example.json")
		server.SetTranslation("example.json", "fr-fr", []byte(`{"buttons":{"ok":"D'accord","cancel":"Annuler"}}`))

		translations, err := document.FetchTranslation("")
		require.NoError(t, err)
		require.Len(t, translations, 2)

		var fr map[string]map[string]string
		require.NoError(t, json.Unmarshal(translations["fr-fr"].Raw, &fr))
		assert.Equal(t, "Annuler", fr["buttons"]["cancel"])
	})

	t.Run("unknown language", func(t *testing.T) {
		translations, err := document.FetchTranslation("ja-jp")
		require.NoError(t, err)
		assert.Empty(t, translations)

		_, err = document.CheckTranslation("ja-jp")
		require.Error(t, err)
		assert.True(t, model.IsKind(err, model.KindProject))
	})

	t.Run("update resolves the id by name", func(t *testing.T) {
		update := newTestDocument(t, server)
		update.SetName("example")
		require.NoError(t, update.AddTranslationString("title", "Hello"))

		updatedID, err := update.UpdateTranslation()
		require.NoError(t, err)
		assert.Equal(t, id, updatedID)
		assert.Equal(t, `{"title":"Hello"}`, string(server.Files()[0].Content))
	})

	t.Run("update of a document never created", func(t *testing.T) {
		update := newTestDocument(t, server)
		update.SetName("missing")
		require.NoError(t, update.AddTranslationString("title", "Hello"))

		_, err := update.UpdateTranslation()
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.CodeNotCreated))
	})

	t.Run("metadata", func(t *testing.T) {
		metadata, err := document.Metadata()
		require.NoError(t, err)
		assert.Len(t, metadata.Languages, len(server.Project.TargetLanguages))
		assert.Len(t, document.Languages(), len(server.Languages))

		codes, err := document.ProjectLanguageCodes()
		require.NoError(t, err)
		require.Len(t, codes, 2)
		assert.Equal(t, "fr-fr", codes[0].Code)
		assert.Equal(t, "de-de", codes[1].Code)
	})
}

func TestDocumentHTML(t *testing.T) {
	server := testlib.NewServer(t, nil)

	document := newTestDocument(t, server)
	document.SetType(model.TypeHTML)
	document.SetName("landing")
	require.NoError(t, document.AddTranslationContent("<h1>Welcome</h1>"))

	id, err := document.CreateTranslation()
	require.NoError(t, err)

	files := server.Files()
	require.Len(t, files, 1)
	assert.Equal(t, id, files[0].PageID)
	assert.Equal(t, "landing.html", files[0].Title)
	assert.Equal(t, "<h1>Welcome</h1>", string(files[0].Content))

	require.NoError(t, document.UpdateTranslationContent("<h1>Welcome back</h1>"))
	updatedID, err := document.UpdateTranslation()
	require.NoError(t, err)
	assert.Equal(t, id, updatedID)
	assert.Equal(t, "<h1>Welcome back</h1>", string(server.Files()[0].Content))
}
