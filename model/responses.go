// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// ID is an identifier the API returns either as a JSON number or a
// JSON string.
type ID string

// UnmarshalJSON accepts both numbers and strings.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrap(err, "id is neither a string nor a number")
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Truthy reports whether the id would count as set.
func (id ID) Truthy() bool {
	return id != "" && id != "0" && id != "false"
}

// Language is a language as described by the API.
type Language struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Code       string      `json:"code"`
	Direction  string      `json:"direction,omitempty"`
	TMID       interface{} `json:"tm_id,omitempty"`
	GlossaryID interface{} `json:"glossary_id,omitempty"`
}

// ContentTypeCode is one content type a project accepts.
type ContentTypeCode struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// ProjectDescriptor holds the workspace fields the SDK reads.
type ProjectDescriptor struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	OrganizationID   int64             `json:"organization_id"`
	SourceLanguage   Language          `json:"source_language"`
	TargetLanguages  []Language        `json:"target_languages"`
	ContentTypeCodes []ContentTypeCode `json:"content_type_codes"`
	Timezone         string            `json:"timezone,omitempty"`
}

// ProjectMetadata is the response of the project endpoint, plus the
// target languages indexed by language id.
type ProjectMetadata struct {
	Project ProjectDescriptor `json:"project"`

	TargetLanguagesByID map[int64]Language `json:"-"`
}

// indexLanguages rebuilds TargetLanguagesByID from the ordered list.
func (m *ProjectMetadata) indexLanguages() {
	m.TargetLanguagesByID = make(map[int64]Language, len(m.Project.TargetLanguages))
	for _, lang := range m.Project.TargetLanguages {
		m.TargetLanguagesByID[lang.ID] = lang
	}
}

// Paging is the paging block of a page search.
type Paging struct {
	TotalResults int `json:"total_results"`
	TotalEnabled int `json:"total_enabled"`
}

// SearchMeta is the meta block of a page search.
type SearchMeta struct {
	Paging Paging `json:"paging"`
}

// Page is one remote file version found by a page search.
type Page struct {
	PageID     int64  `json:"page_id"`
	Title      string `json:"title,omitempty"`
	URL        string `json:"url,omitempty"`
	VersionTag string `json:"version_tag,omitempty"`
	Status     string `json:"status,omitempty"`
	Completed  bool   `json:"completed,omitempty"`
}

// PageSearchResult is the response of a page search.
type PageSearchResult struct {
	Meta  SearchMeta `json:"meta"`
	Pages []Page     `json:"pages"`
}

// TranslationFile is a downloaded translation. Data holds the decoded
// body when the body is JSON.
type TranslationFile struct {
	Raw    []byte
	Data   interface{}
	IsJSON bool
}

// String returns the body as text.
func (f *TranslationFile) String() string {
	return string(f.Raw)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type uploadResponse struct {
	Result   string `json:"result"`
	UploadID ID     `json:"upload_id"`
}

type uploadUpdateResponse struct {
	ID ID `json:"id"`
}

type appendFileRequest struct {
	SourceColumns []string `json:"source_columns"`
	FileName      string   `json:"file_name"`
	VersionTag    string   `json:"version_tag"`
	ID            ID       `json:"id"`
}

type applyUpdateRequest struct {
	KeepInProject bool `json:"keep_in_project"`
	NewFileID     ID   `json:"new_file_id"`
}

type filesResponse struct {
	FilesIDs []int64 `json:"files_ids"`
}

type searchRequest struct {
	Status []string `json:"status,omitempty"`
	Title  string   `json:"title,omitempty"`
}

type exportResponse struct {
	Filename string `json:"filename"`
	Token    string `json:"token"`
}

// decodeResponse decodes a required JSON body into v.
func decodeResponse(reader io.Reader, v interface{}, what string) error {
	err := json.NewDecoder(reader).Decode(v)
	if err == io.EOF {
		return newError(KindConnection, CodeBadResponse, "Empty "+what+" response from API.")
	}
	if err != nil {
		return wrapError(err, KindConnection, CodeBadResponse, "failed to decode "+what)
	}
	return nil
}

// NewProjectMetadataFromReader decodes a project descriptor response.
func NewProjectMetadataFromReader(reader io.Reader) (*ProjectMetadata, error) {
	var metadata ProjectMetadata
	if err := decodeResponse(reader, &metadata, "project metadata"); err != nil {
		return nil, err
	}
	metadata.indexLanguages()
	return &metadata, nil
}

// NewLanguageListFromReader decodes a language list response.
func NewLanguageListFromReader(reader io.Reader) ([]Language, error) {
	var languages []Language
	if err := decodeResponse(reader, &languages, "language list"); err != nil {
		return nil, err
	}
	return languages, nil
}

// NewPageSearchResultFromReader decodes a page search response. The
// meta block is required.
func NewPageSearchResultFromReader(reader io.Reader) (*PageSearchResult, error) {
	var raw struct {
		Meta  *SearchMeta `json:"meta"`
		Pages []Page      `json:"pages"`
	}
	if err := decodeResponse(reader, &raw, "page search result"); err != nil {
		return nil, err
	}
	if raw.Meta == nil {
		return nil, newError(KindConnection, CodeBadResponse, "Page search response has no meta.")
	}
	return &PageSearchResult{Meta: *raw.Meta, Pages: raw.Pages}, nil
}

func newTranslationFile(body []byte) *TranslationFile {
	file := &TranslationFile{Raw: body}
	var data interface{}
	if err := json.Unmarshal(body, &data); err == nil {
		file.Data = data
		file.IsJSON = true
	}
	return file
}
