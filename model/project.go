// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// searchPageLimit is the page size used for every page search.
const searchPageLimit = 100

// Project is a remote workspace identified by a project id and an
// organization id.
type Project struct {
	projectID      int64
	organizationID int64

	client   Client
	upload   *Upload
	metadata *ProjectMetadata
	logger   log.FieldLogger
}

// NewProject creates a Project that talks to the API through client.
func NewProject(projectID, organizationID int64, client Client) *Project {
	return &Project{
		projectID:      projectID,
		organizationID: organizationID,
		client:         client,
		upload:         NewUpload(client, projectID, organizationID),
		logger:         newDefaultLogger(),
	}
}

// SetLogger replaces the logger.
func (p *Project) SetLogger(logger log.FieldLogger) {
	p.logger = logger
}

func (p *Project) ProjectID() int64 {
	return p.projectID
}

func (p *Project) OrganizationID() int64 {
	return p.organizationID
}

// Uploader returns the Upload owned by the project.
func (p *Project) Uploader() *Upload {
	return p.upload
}

// FetchMetadata refreshes the cached project descriptor.
func (p *Project) FetchMetadata() (*ProjectMetadata, error) {
	metadata, err := p.client.FetchProject(p.projectID)
	if err != nil {
		return nil, err
	}
	metadata.indexLanguages()
	p.metadata = metadata

	return p.metadata, nil
}

// Metadata returns the cached project descriptor, fetching it first if
// needed.
func (p *Project) Metadata() (*ProjectMetadata, error) {
	if p.metadata == nil {
		return p.FetchMetadata()
	}
	return p.metadata, nil
}

// CheckProjectType returns an error unless the project accepts documents
// of docType.
func (p *Project) CheckProjectType(docType DocumentType) error {
	metadata, err := p.Metadata()
	if err != nil {
		return err
	}

	for _, contentType := range metadata.Project.ContentTypeCodes {
		if len(contentType.Extensions) > 0 && contentType.Extensions[0] == string(docType) {
			return nil
		}
	}

	return newError(KindDocument, CodeUnsupportedType, "Sorry, this type of documents is not supported by the project.")
}

// Upload sends a new document and attaches it to the project under tag.
// It returns the new file id.
func (p *Project) Upload(name, content, tag string, docType DocumentType) (int64, error) {
	if _, err := p.FetchMetadata(); err != nil {
		return 0, err
	}
	if err := p.CheckProjectType(docType); err != nil {
		return 0, err
	}

	fileName := documentFileName(name, docType)
	if _, err := p.upload.SendFile(fileName, content, false, 0); err != nil {
		return 0, err
	}
	fileID, err := p.upload.AppendToProject(tag)
	if err != nil {
		return 0, err
	}

	p.logger.WithFields(log.Fields{
		"document": fileName,
		"tag":      tag,
		"type":     docType,
		"file-id":  fileID,
	}).Info("Document uploaded")

	return fileID, nil
}

// Update sends a new revision of fileID and applies it. The tag is only
// logged.
func (p *Project) Update(name, content, tag string, fileID int64, docType DocumentType) (int64, error) {
	if _, err := p.FetchMetadata(); err != nil {
		return 0, err
	}
	if err := p.CheckProjectType(docType); err != nil {
		return 0, err
	}

	fileName := documentFileName(name, docType)
	uploadID, err := p.upload.SendFile(fileName, content, true, fileID)
	if err != nil {
		return 0, err
	}
	newFileID, err := p.upload.UpdateProject(fileID, uploadID)
	if err != nil {
		return 0, err
	}

	p.logger.WithFields(log.Fields{
		"document": fileName,
		"tag":      tag,
		"type":     docType,
		"file-id":  newFileID,
	}).Info("Document updated")

	return newFileID, nil
}

// Check searches the pages of a document per target language. With a
// language code only that language is searched, and a code that is not
// a target language of the project is an error.
func (p *Project) Check(name, languageCode, tag string, status Status, docType DocumentType) (map[string]*PageSearchResult, error) {
	if name == "" {
		return nil, newError(KindProject, CodeNameNotDefined, "Document name is not defined.")
	}

	metadata, err := p.FetchMetadata()
	if err != nil {
		return nil, err
	}

	results := make(map[string]*PageSearchResult)
	fileName := documentFileName(name, docType)
	for _, lang := range metadata.Project.TargetLanguages {
		if languageCode != "" && languageCode != lang.Code {
			continue
		}

		result, err := p.client.FetchProjectSearch(p.projectID, lang.ID, fileName, string(status), 0, searchPageLimit)
		if err != nil {
			return nil, err
		}
		results[lang.Code] = result

		if languageCode != "" {
			break
		}
	}

	if languageCode != "" {
		if _, ok := results[languageCode]; !ok {
			return nil, newError(KindProject, CodeLanguageNotFound, "Checked language ID not found in the project")
		}
	}

	return results, nil
}

// Fetch downloads the completed translations of a document, keyed by
// language code.
func (p *Project) Fetch(name, languageCode, tag string, docType DocumentType) (map[string]*TranslationFile, error) {
	return p.fetchWithStatus(name, languageCode, tag, StatusCompleted, docType)
}

// FetchSaved downloads the saved, possibly incomplete, translations of a
// document, keyed by language code.
func (p *Project) FetchSaved(name, languageCode, tag string, docType DocumentType) (map[string]*TranslationFile, error) {
	return p.fetchWithStatus(name, languageCode, tag, StatusEnabled, docType)
}

func (p *Project) fetchWithStatus(name, languageCode, tag string, status Status, docType DocumentType) (map[string]*TranslationFile, error) {
	if name == "" {
		return nil, newError(KindProject, CodeNameNotDefined, "Document name is not defined.")
	}

	files := make(map[string]*TranslationFile)

	searches, err := p.Check(name, languageCode, "", status, docType)
	if HasCode(err, CodeLanguageNotFound) {
		return files, nil
	}
	if err != nil {
		return nil, err
	}

	for _, lang := range p.metadata.Project.TargetLanguages {
		search, ok := searches[lang.Code]
		if !ok || search.Meta.Paging.TotalResults == 0 {
			continue
		}

		page, found := selectPage(search.Pages, tag)
		if !found {
			continue
		}

		file, err := p.client.FetchTranslationFile(p.projectID, lang.ID, page.PageID)
		if err != nil {
			return nil, err
		}
		files[lang.Code] = file
	}

	return files, nil
}

// selectPage picks the page carrying tag, or the first page when tag is
// empty.
func selectPage(pages []Page, tag string) (Page, bool) {
	if tag == "" {
		if len(pages) == 0 {
			return Page{}, false
		}
		return pages[0], true
	}

	for _, page := range pages {
		if page.VersionTag == tag {
			return page, true
		}
	}
	return Page{}, false
}

func documentFileName(name string, docType DocumentType) string {
	return fmt.Sprintf("%s.%s", name, docType)
}
