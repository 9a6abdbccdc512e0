// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model

import (
	"encoding/json"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// SectionEntry is one top-level entry of a JSON document: either a
// named section of strings or a single flat string.
type SectionEntry interface {
	json.Marshaler
	EntryKey() string
}

// TranslateString is an immutable key/value pair. Section is nil for
// strings added directly to a document.
type TranslateString struct {
	key     string
	value   string
	section *TranslateSection
}

// NewTranslateString creates a string owned by section, which may be nil.
func NewTranslateString(key, value string, section *TranslateSection) *TranslateString {
	return &TranslateString{key: key, value: value, section: section}
}

func (s *TranslateString) Key() string { return s.key }
func (s *TranslateString) Value() string { return s.value }
func (s *TranslateString) Section() *TranslateSection { return s.section }
func (s *TranslateString) EntryKey() string { return s.key }
func (s *TranslateString) MarshalJSON() ([]byte, error) { return json.Marshal(s.value) }

// TranslateSection is a named, ordered group of strings.
type TranslateSection struct {
	key     string
	strings *orderedmap.OrderedMap
}

// NewTranslateSection creates an empty section.
func NewTranslateSection(key string) *TranslateSection {
	return &TranslateSection{
		key:     key,
		strings: orderedmap.New(),
	}
}

func (s *TranslateSection) Key() string { return s.key }
func (s *TranslateSection) EntryKey() string { return s.key }

// AddTranslationString adds a new string. The key must not exist yet.
func (s *TranslateSection) AddTranslationString(key, value string) error {
	if _, ok := s.strings.Get(key); ok {
		return newError(KindDocument, CodeStringExists, "String already exists. Please use method to edit it.")
	}
	s.strings.Set(key, NewTranslateString(key, value, s))
	return nil
}

// UpdateTranslationString replaces the value of an existing string.
func (s *TranslateSection) UpdateTranslationString(key, value string) error {
	if _, ok := s.strings.Get(key); !ok {
		return newError(KindDocument, CodeStringNotExists, "String not exists. Please use method to edit it.")
	}
	s.strings.Set(key, NewTranslateString(key, value, s))
	return nil
}

// RemoveTranslationString removes the string with the given key or,
// failing that, the first string whose value equals search.
func (s *TranslateSection) RemoveTranslationString(search string) bool {
	if _, ok := s.strings.Get(search); ok {
		s.strings.Delete(search)
		return true
	}

	for _, key := range s.strings.Keys() {
		entry, _ := s.strings.Get(key)
		if entry.(*TranslateString).value == search {
			s.strings.Delete(key)
			return true
		}
	}
	return false
}

// TranslationString returns the string stored under key.
func (s *TranslateSection) TranslationString(key string) (*TranslateString, bool) {
	entry, ok := s.strings.Get(key)
	if !ok {
		return nil, false
	}
	return entry.(*TranslateString), true
}

// Strings returns the strings in insertion order.
func (s *TranslateSection) Strings() []*TranslateString {
	keys := s.strings.Keys()
	strs := make([]*TranslateString, 0, len(keys))
	for _, key := range keys {
		entry, _ := s.strings.Get(key)
		strs = append(strs, entry.(*TranslateString))
	}
	return strs
}

// Len returns the number of strings.
func (s *TranslateSection) Len() int {
	return len(s.strings.Keys())
}

// MarshalJSON writes the section as an object of key/value pairs in
// insertion order.
func (s *TranslateSection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.strings)
}

// TranslateContent holds the single blob of an HTML document.
type TranslateContent struct {
	content string
}

// NewTranslateContent creates empty content.
func NewTranslateContent() *TranslateContent {
	return &TranslateContent{}
}

// AddContent sets the content, trimmed. Content may only be added once.
func (c *TranslateContent) AddContent(value string) error {
	if c.content != "" {
		return newError(KindDocument, CodeStringExists, "Content already exists. Please use method to edit it.")
	}
	c.content = strings.TrimSpace(value)
	return nil
}

// UpdateContent replaces the content with a non-empty value.
func (c *TranslateContent) UpdateContent(value string) error {
	if value == "" {
		return newError(KindDocument, CodeStringNotExists, "Content not exists. Please use method to edit it.")
	}
	c.content = value
	return nil
}

func (c *TranslateContent) RemoveContent() {
	c.content = ""
}

// Content returns the content and whether any is set.
func (c *TranslateContent) Content() (string, bool) {
	return c.content, c.content != ""
}

func (c *TranslateContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.content)
}
