// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qordoba/qordoba-go/model"
)

func TestTranslateSection(t *testing.T) {
	section := model.NewTranslateSection("buttons")
	require.NoError(t, section.AddTranslationString("ok", "OK"))
	require.NoError(t, section.AddTranslationString("cancel", "Cancel"))
	require.NoError(t, section.AddTranslationString("apply", "Apply"))

	t.Run("duplicate key", func(t *testing.T) {
		err := section.AddTranslationString("ok", "Okay")
		require.Error(t, err)
		assert.True(t, model.IsKind(err, model.KindDocument))
		assert.True(t, model.HasCode(err, model.CodeStringExists))
	})

	t.Run("update a missing key", func(t *testing.T) {
		err := section.UpdateTranslationString("close", "Close")
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.CodeStringNotExists))
	})

	t.Run("update keeps the position", func(t *testing.T) {
		require.NoError(t, section.UpdateTranslationString("ok", "Okay"))
		b, err := json.Marshal(section)
		require.NoError(t, err)
		assert.Equal(t, `{"ok":"Okay","cancel":"Cancel","apply":"Apply"}`, string(b))
	})

	t.Run("strings point back at the section", func(t *testing.T) {
		str, ok := section.TranslationString("cancel")
		require.True(t, ok)
		assert.Equal(t, "Cancel", str.Value())
		assert.Same(t, section, str.Section())
	})

	t.Run("remove by key then by value", func(t *testing.T) {
		assert.True(t, section.RemoveTranslationString("cancel"))
		assert.False(t, section.RemoveTranslationString("cancel"))

		assert.True(t, section.RemoveTranslationString("Apply"))
		assert.False(t, section.RemoveTranslationString("Apply"))

		strs := section.Strings()
		require.Len(t, strs, 1)
		assert.Equal(t, "ok", strs[0].Key())
		assert.Equal(t, 1, section.Len())
	})
}

func TestTranslateString(t *testing.T) {
	str := model.NewTranslateString("title", `Say "hi"`, nil)
	assert.Nil(t, str.Section())

	b, err := json.Marshal(str)
	require.NoError(t, err)
	assert.Equal(t, `"Say \"hi\""`, string(b))
}

func TestTranslateContent(t *testing.T) {
	content := model.NewTranslateContent()

	_, ok := content.Content()
	assert.False(t, ok)

	require.NoError(t, content.AddContent("  <p>Hello</p>\n"))
	value, ok := content.Content()
	require.True(t, ok)
	assert.Equal(t, "<p>Hello</p>", value)

	err := content.AddContent("<p>Again</p>")
	require.Error(t, err)
	assert.True(t, model.HasCode(err, model.CodeStringExists))

	err = content.UpdateContent("")
	require.Error(t, err)
	assert.True(t, model.HasCode(err, model.CodeStringNotExists))

	require.NoError(t, content.UpdateContent("<p>Bye</p>"))
	b, err := json.Marshal(content)
	require.NoError(t, err)
	var decoded string
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "<p>Bye</p>", decoded)

	content.RemoveContent()
	_, ok = content.Content()
	assert.False(t, ok)
}
