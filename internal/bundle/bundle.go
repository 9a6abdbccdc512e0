// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

// Package bundle loads source files from disk into documents.
package bundle

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/frontmatter"

	"github.com/qordoba/qordoba-go/model"
)

// FrontMatter is the metadata accepted at the top of a Markdown file.
type FrontMatter struct {
	Name string      `yaml:"name"`
	Tag  interface{} `yaml:"tag"`
}

// LoadFile fills document from the file at path. The file extension picks
// the format: .json bundles, .html content or .md Markdown rendered to
// HTML. The document name defaults to the file's base name.
func LoadFile(fs afero.Fs, path string, document *model.Document) error {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	if document.Name() == "" {
		document.SetName(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	switch ext {
	case ".json":
		err = LoadJSON(b, document)
	case ".html", ".htm":
		err = LoadHTML(b, document)
	case ".md", ".markdown":
		err = LoadMarkdown(b, document)
	default:
		return errors.Errorf("unsupported file extension %q", ext)
	}

	return errors.Wrapf(err, "failed to load %s", path)
}

// LoadJSON validates b and adds its strings and sections to document in
// file order.
func LoadJSON(b []byte, document *model.Document) error {
	if err := Validate(b); err != nil {
		return err
	}

	entries := orderedmap.New()
	if err := entries.UnmarshalJSON(b); err != nil {
		return errors.Wrap(err, "failed to decode bundle")
	}

	document.SetType(model.TypeJSON)
	for _, key := range entries.Keys() {
		value, _ := entries.Get(key)

		switch v := value.(type) {
		case string:
			if err := document.AddTranslationString(key, v); err != nil {
				return err
			}
		case orderedmap.OrderedMap:
			if err := addSection(document, key, &v); err != nil {
				return err
			}
		case *orderedmap.OrderedMap:
			if err := addSection(document, key, v); err != nil {
				return err
			}
		default:
			return errors.Errorf("unexpected value for %q", key)
		}
	}

	return nil
}

func addSection(document *model.Document, key string, entries *orderedmap.OrderedMap) error {
	section, err := document.AddSection(key)
	if err != nil {
		return err
	}

	for _, stringKey := range entries.Keys() {
		value, _ := entries.Get(stringKey)
		str, ok := value.(string)
		if !ok {
			return errors.Errorf("unexpected value for %q in section %q", stringKey, key)
		}
		if err = section.AddTranslationString(stringKey, str); err != nil {
			return err
		}
	}

	return nil
}

// LoadHTML sets b as the content of an HTML document.
func LoadHTML(b []byte, document *model.Document) error {
	document.SetType(model.TypeHTML)
	return document.AddTranslationContent(string(b))
}

// LoadMarkdown renders b to HTML and sets it as the document content.
// Front matter may override the document name and tag.
func LoadMarkdown(b []byte, document *model.Document) error {
	md := goldmark.New(
		goldmark.WithExtensions(
			&frontmatter.Extender{},
		),
	)

	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := md.Convert(b, &buf, parser.WithContext(ctx)); err != nil {
		return errors.Wrap(err, "failed to render markdown")
	}

	if data := frontmatter.Get(ctx); data != nil {
		var fm FrontMatter
		if err := data.Decode(&fm); err != nil {
			return errors.Wrap(err, "failed to decode front matter")
		}
		if fm.Name != "" {
			document.SetName(fm.Name)
		}
		if fm.Tag != nil {
			document.SetTag(fm.Tag)
		}
	}

	return LoadHTML(buf.Bytes(), document)
}
