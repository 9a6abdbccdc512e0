// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DocumentType is the content type of a Document.
type DocumentType string

const (
	// TypeJSON documents hold sections of key/value strings.
	TypeJSON DocumentType = "json"
	// TypeHTML documents hold a single HTML blob.
	TypeHTML DocumentType = "html"
)

// Status filters a page search.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusEnabled   Status = "enabled"
	StatusNone      Status = "none"
)

// DefaultTag is the version tag of a new Document.
const DefaultTag = "New"

// DocumentMetadata is what Document.Metadata reports.
type DocumentMetadata struct {
	Languages []Language `json:"languages"`
}

// LanguageCode pairs a language id with its code.
type LanguageCode struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

// Document is a translatable document in a project. A document of
// TypeJSON holds sections and flat strings; a document of TypeHTML
// holds one content blob.
type Document struct {
	docType DocumentType
	tag     string
	name    string
	id      int64

	sections  *orderedmap.OrderedMap
	content   *TranslateContent
	languages []Language

	connection *Connection
	project    *Project
}

// NewDocument creates a Document with its own Connection and Project.
func NewDocument(apiURL, username, password string, projectID, organizationID int64) *Document {
	connection := NewConnection(apiURL, username, password)

	return &Document{
		docType:    TypeJSON,
		tag:        DefaultTag,
		sections:   orderedmap.New(),
		connection: connection,
		project:    NewProject(projectID, organizationID, connection),
	}
}

// SetLogger replaces the logger of the document's Connection and Project.
func (d *Document) SetLogger(logger log.FieldLogger) {
	d.connection.SetLogger(logger)
	d.project.SetLogger(logger)
}

func (d *Document) Connection() *Connection { return d.connection }
func (d *Document) Project() *Project { return d.project }

func (d *Document) Type() DocumentType { return d.docType }
func (d *Document) SetType(docType DocumentType) { d.docType = docType }

func (d *Document) Tag() string { return d.tag }

// SetTag sets the version tag. Any value is stored as its string form.
func (d *Document) SetTag(tag interface{}) {
	d.tag = fmt.Sprint(tag)
}

func (d *Document) Name() string { return d.name }
func (d *Document) SetName(name string) { d.name = strings.TrimSpace(name) }

func (d *Document) ID() int64 { return d.id }
func (d *Document) SetID(id int64) { d.id = id }

func (d *Document) requireType(docType DocumentType) error {
	if d.docType == docType {
		return nil
	}
	if docType == TypeHTML {
		return newError(KindDocument, CodeWrongType, fmt.Sprintf("HTML content can be added only to appropriate project. Please set type to '%s'.", docType))
	}
	return newError(KindDocument, CodeWrongType, fmt.Sprintf("Strings can be added only to appropriate project. Please set type to '%s'.", docType))
}

// AddSection creates an empty section under key. The key must not hold
// a section or a flat string yet.
func (d *Document) AddSection(key string) (*TranslateSection, error) {
	if err := d.requireType(TypeJSON); err != nil {
		return nil, err
	}
	if _, ok := d.sections.Get(key); ok {
		return nil, newError(KindDocument, CodeStringExists, "Section already exists. Please use method to edit it.")
	}
	section := NewTranslateSection(key)
	d.sections.Set(key, section)
	return section, nil
}

// Section returns the section stored under key.
func (d *Document) Section(key string) (*TranslateSection, bool) {
	entry, ok := d.sections.Get(key)
	if !ok {
		return nil, false
	}
	section, ok := entry.(*TranslateSection)
	return section, ok
}

// Sections returns every top-level entry in insertion order.
func (d *Document) Sections() []SectionEntry {
	keys := d.sections.Keys()
	entries := make([]SectionEntry, 0, len(keys))
	for _, key := range keys {
		entry, _ := d.sections.Get(key)
		entries = append(entries, entry.(SectionEntry))
	}
	return entries
}

// AddTranslationString adds a flat string at the top level.
func (d *Document) AddTranslationString(key, value string) error {
	if err := d.requireType(TypeJSON); err != nil {
		return err
	}
	if _, ok := d.sections.Get(key); ok {
		return newError(KindDocument, CodeStringExists, "String already exists. Please use method to edit it.")
	}
	d.sections.Set(key, NewTranslateString(key, value, nil))
	return nil
}

// UpdateTranslationString replaces the value of a flat string.
func (d *Document) UpdateTranslationString(key, value string) error {
	if err := d.requireType(TypeJSON); err != nil {
		return err
	}
	entry, ok := d.sections.Get(key)
	if !ok {
		return newError(KindDocument, CodeStringNotExists, "String not exists. Please use method to edit it.")
	}
	if _, isString := entry.(*TranslateString); !isString {
		return newError(KindDocument, CodeStringNotExists, "String not exists. Please use method to edit it.")
	}
	d.sections.Set(key, NewTranslateString(key, value, nil))
	return nil
}

// RemoveTranslationString removes the flat string stored under search.
// When no entry has that key, every flat string whose value equals
// search is removed instead. Sections are never removed.
func (d *Document) RemoveTranslationString(search string) (bool, error) {
	if err := d.requireType(TypeJSON); err != nil {
		return false, err
	}

	if entry, ok := d.sections.Get(search); ok {
		if _, isString := entry.(*TranslateString); !isString {
			return false, nil
		}
		d.sections.Delete(search)
		return true, nil
	}

	var matches []string
	for _, key := range d.sections.Keys() {
		entry, _ := d.sections.Get(key)
		if str, isString := entry.(*TranslateString); isString && str.value == search {
			matches = append(matches, key)
		}
	}
	// Delete shifts the slice returned by Keys, so it runs after the scan.
	for _, key := range matches {
		d.sections.Delete(key)
	}
	return len(matches) > 0, nil
}

// TranslationString returns the flat string stored under key.
func (d *Document) TranslationString(key string) (*TranslateString, bool, error) {
	if err := d.requireType(TypeJSON); err != nil {
		return nil, false, err
	}
	entry, ok := d.sections.Get(key)
	if !ok {
		return nil, false, nil
	}
	str, ok := entry.(*TranslateString)
	return str, ok, nil
}

// TranslationStrings returns the flat strings in insertion order.
func (d *Document) TranslationStrings() ([]*TranslateString, error) {
	if err := d.requireType(TypeJSON); err != nil {
		return nil, err
	}
	var strs []*TranslateString
	for _, key := range d.sections.Keys() {
		entry, _ := d.sections.Get(key)
		if str, ok := entry.(*TranslateString); ok {
			strs = append(strs, str)
		}
	}
	return strs, nil
}

// AddTranslationContent sets the HTML content.
func (d *Document) AddTranslationContent(value string) error {
	if err := d.requireType(TypeHTML); err != nil {
		return err
	}
	if d.content == nil {
		d.content = NewTranslateContent()
	}
	return d.content.AddContent(value)
}

// UpdateTranslationContent replaces existing HTML content.
func (d *Document) UpdateTranslationContent(value string) error {
	if err := d.requireType(TypeHTML); err != nil {
		return err
	}
	if d.content == nil {
		return newError(KindDocument, CodeStringNotExists, "Cannot update not existing content.")
	}
	return d.content.UpdateContent(value)
}

// RemoveTranslationContent drops the HTML content.
func (d *Document) RemoveTranslationContent() error {
	if err := d.requireType(TypeHTML); err != nil {
		return err
	}
	if d.content == nil {
		return newError(KindDocument, CodeStringNotExists, "Cannot remove not existing content.")
	}
	d.content = nil
	return nil
}

// TranslationContent returns the HTML content, empty when none is set.
func (d *Document) TranslationContent() (string, error) {
	if err := d.requireType(TypeHTML); err != nil {
		return "", err
	}
	if d.content == nil {
		return "", nil
	}
	content, _ := d.content.Content()
	return content, nil
}

// serialize renders the document the way it is uploaded.
func (d *Document) serialize() (string, error) {
	switch d.docType {
	case TypeJSON:
		if len(d.sections.Keys()) == 0 {
			return "", nil
		}
		b, err := json.Marshal(d.sections)
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal document sections")
		}
		return string(b), nil
	case TypeHTML:
		return d.TranslationContent()
	default:
		return "", nil
	}
}

// CreateTranslation uploads the document as a new file of the project
// and returns its id.
func (d *Document) CreateTranslation() (int64, error) {
	contents, err := d.serialize()
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(contents) == "" {
		return 0, newError(KindDocument, CodeEmptyContent, "Contents for upload can't be empty")
	}

	id, err := d.project.Upload(d.name, contents, d.tag, d.docType)
	if err != nil {
		return 0, err
	}
	d.id = id

	return d.id, nil
}

// UpdateTranslation uploads the document as a new revision of an existing
// file. Without an id, the id of the first page found for the document
// name is used.
func (d *Document) UpdateTranslation() (int64, error) {
	if d.id == 0 {
		id, err := d.resolveID()
		if err != nil {
			return 0, err
		}
		d.id = id
	}

	contents, err := d.serialize()
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(contents) == "" {
		return 0, newError(KindDocument, CodeEmptyContent, "Contents for upload is empty")
	}

	if _, err = d.project.Update(d.name, contents, d.tag, d.id, d.docType); err != nil {
		return 0, err
	}

	return d.id, nil
}

// resolveID looks up the first page of the document, scanning target
// languages in project order.
func (d *Document) resolveID() (int64, error) {
	searches, err := d.project.Check(d.name, "", "", StatusNone, d.docType)
	if err != nil {
		return 0, err
	}
	metadata, err := d.project.Metadata()
	if err != nil {
		return 0, err
	}

	for _, lang := range metadata.Project.TargetLanguages {
		search, ok := searches[lang.Code]
		if !ok || len(search.Pages) == 0 {
			continue
		}
		return search.Pages[0].PageID, nil
	}

	return 0, newError(KindDocument, CodeNotCreated, "You must create file before updating.")
}

// CheckTranslation searches the completed pages of the document. An empty
// languageCode searches every target language.
func (d *Document) CheckTranslation(languageCode string) (map[string]*PageSearchResult, error) {
	return d.project.Check(d.name, languageCode, d.tag, StatusCompleted, d.docType)
}

// FetchTranslation downloads completed translations of the document.
func (d *Document) FetchTranslation(languageCode string) (map[string]*TranslationFile, error) {
	return d.project.Fetch(d.name, languageCode, d.tag, d.docType)
}

// FetchSavedTranslation downloads saved translations of the document.
func (d *Document) FetchSavedTranslation(languageCode string) (map[string]*TranslationFile, error) {
	return d.project.FetchSaved(d.name, languageCode, d.tag, d.docType)
}

// FetchMetadata loads the list of languages known to the API once.
func (d *Document) FetchMetadata() error {
	if d.languages != nil {
		return nil
	}
	languages, err := d.connection.FetchLanguages()
	if err != nil {
		return err
	}
	if languages == nil {
		languages = []Language{}
	}
	d.languages = languages
	return nil
}

// Languages returns the API-wide language list loaded by FetchMetadata.
func (d *Document) Languages() []Language {
	return d.languages
}

// Metadata returns the target languages of the project.
func (d *Document) Metadata() (*DocumentMetadata, error) {
	if err := d.FetchMetadata(); err != nil {
		return nil, err
	}
	languages, err := d.ProjectLanguages()
	if err != nil {
		return nil, err
	}
	return &DocumentMetadata{Languages: languages}, nil
}

// ProjectLanguages returns the target languages of the project in
// project order.
func (d *Document) ProjectLanguages() ([]Language, error) {
	metadata, err := d.project.Metadata()
	if err != nil {
		return nil, err
	}
	return metadata.Project.TargetLanguages, nil
}

// ProjectLanguageCodes returns the id and code of every target language
// that has both.
func (d *Document) ProjectLanguageCodes() ([]LanguageCode, error) {
	languages, err := d.ProjectLanguages()
	if err != nil {
		return nil, err
	}

	codes := make([]LanguageCode, 0, len(languages))
	for _, lang := range languages {
		if lang.ID == 0 || lang.Code == "" {
			continue
		}
		codes = append(codes, LanguageCode{ID: lang.ID, Code: lang.Code})
	}
	return codes, nil
}
