// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package testlib

import (
	"sync"
)

// Language is a language served by the fake API.
type Language struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Direction string `json:"direction"`
}

// ContentType is a content type accepted by the fake project.
type ContentType struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// Project is the workspace served by the fake API.
type Project struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	OrganizationID   int64         `json:"organization_id"`
	SourceLanguage   Language      `json:"source_language"`
	TargetLanguages  []Language    `json:"target_languages"`
	ContentTypeCodes []ContentType `json:"content_type_codes"`
}

// File is a project file, one page per target language.
type File struct {
	PageID     int64
	Title      string
	VersionTag string
	Content    []byte

	// Translations holds the body served per language code. Languages
	// without an entry serve Content.
	Translations map[string][]byte
	// Completed marks the languages whose translation is complete.
	Completed map[string]bool
}

type upload struct {
	id       int64
	fileName string
	content  []byte
}

type export struct {
	pageID   int64
	language string
}

// State is the mutable data behind the fake API.
type State struct {
	mu sync.Mutex

	Username string
	Password string
	Token    string

	Languages []Language
	Project   Project

	nextID   int64
	uploads  map[int64]*upload
	files    []*File
	exports  map[string]export
	requests int
}

// DefaultState returns a project with two target languages accepting
// json and html documents.
func DefaultState() *State {
	french := Language{ID: 222, Name: "French - France", Code: "fr-fr", Direction: "ltr"}
	german := Language{ID: 333, Name: "German - Germany", Code: "de-de", Direction: "ltr"}
	english := Language{ID: 94, Name: "English - United States", Code: "en-us", Direction: "ltr"}

	return &State{
		Username:  "user@example.com",
		Password:  "secret",
		Token:     "a8a1f4a4-5d3c-4b55-9d7b-1a1a1a1a1a1a",
		Languages: []Language{english, french, german},
		Project: Project{
			ID:              3693,
			Name:            "Example",
			OrganizationID:  3036,
			SourceLanguage:  english,
			TargetLanguages: []Language{french, german},
			ContentTypeCodes: []ContentType{
				{Name: "JSON", Extensions: []string{"json"}},
				{Name: "HTML", Extensions: []string{"html", "htm"}},
			},
		},
		nextID:  1000,
		uploads: make(map[int64]*upload),
		exports: make(map[string]export),
	}
}

func (s *State) newID() int64 {
	s.nextID++
	return s.nextID
}

// Files returns a snapshot of the project files.
func (s *State) Files() []File {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := make([]File, 0, len(s.files))
	for _, f := range s.files {
		files = append(files, *f)
	}
	return files
}

// Complete marks every file titled fileName complete in every target
// language.
func (s *State) Complete(fileName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.files {
		if f.Title != fileName {
			continue
		}
		for _, lang := range s.Project.TargetLanguages {
			f.Completed[lang.Code] = true
		}
	}
}

// SetTranslation sets the body served for fileName in one language.
func (s *State) SetTranslation(fileName, languageCode string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.files {
		if f.Title == fileName {
			f.Translations[languageCode] = body
		}
	}
}

// Requests returns the number of requests served.
func (s *State) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.requests
}

func (s *State) targetLanguage(id int64) (Language, bool) {
	for _, lang := range s.Project.TargetLanguages {
		if lang.ID == id {
			return lang, true
		}
	}
	return Language{}, false
}

func (s *State) file(pageID int64) *File {
	for _, f := range s.files {
		if f.PageID == pageID {
			return f
		}
	}
	return nil
}
