// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model

import (
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var fileNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Upload writes document content to a temporary blob and submits it to
// the API.
type Upload struct {
	fileName       string
	projectID      int64
	organizationID int64
	uploadID       string

	client Client
	fs     afero.Fs
}

// NewUpload creates an Upload bound to one project.
func NewUpload(client Client, projectID, organizationID int64) *Upload {
	return &Upload{
		projectID:      projectID,
		organizationID: organizationID,
		client:         client,
		fs:             afero.NewOsFs(),
	}
}

// SetFs replaces the filesystem used for temporary blobs.
func (u *Upload) SetFs(fs afero.Fs) {
	u.fs = fs
}

func (u *Upload) FileName() string {
	return u.fileName
}

// SetFileName validates and stores the name the file is uploaded under.
func (u *Upload) SetFileName(fileName string) error {
	if !fileNamePattern.MatchString(fileName) {
		return newError(KindUpload, CodeWrongFileName, "Upload file name not valid.")
	}
	u.fileName = strings.TrimSpace(fileName)
	return nil
}

// UploadID returns the id assigned by the last SendFile.
func (u *Upload) UploadID() string {
	return u.uploadID
}

// SendFile uploads content under name. With isUpdate set and a non-zero
// documentID the content is sent as a new revision of that document.
func (u *Upload) SendFile(name, content string, isUpdate bool, documentID int64) (string, error) {
	if err := u.SetFileName(name); err != nil {
		return "", err
	}

	tmpFile, err := afero.TempFile(u.fs, "", u.fileName)
	if err != nil {
		return "", errors.Wrap(err, "failed to create temporary file")
	}
	defer func() {
		_ = tmpFile.Close()
		_ = u.fs.Remove(tmpFile.Name())
	}()

	if _, err = tmpFile.WriteString(content); err != nil {
		return "", errors.Wrapf(err, "failed to write temporary file %s", tmpFile.Name())
	}
	if _, err = tmpFile.Seek(0, io.SeekStart); err != nil {
		return "", errors.Wrapf(err, "failed to rewind temporary file %s", tmpFile.Name())
	}

	var uploadID string
	if isUpdate && documentID != 0 {
		uploadID, err = u.client.RequestFileUploadUpdate(u.fileName, tmpFile, u.projectID, documentID)
	} else {
		uploadID, err = u.client.RequestFileUpload(u.fileName, tmpFile, u.projectID, u.organizationID)
	}
	if err != nil {
		return "", err
	}
	u.uploadID = uploadID

	return uploadID, nil
}

// AppendToProject attaches the last upload to the project under tag and
// returns the new file id.
func (u *Upload) AppendToProject(tag string) (int64, error) {
	if u.uploadID == "" {
		return 0, newError(KindUpload, CodeUploadNotSent, "No file has been uploaded.")
	}
	return u.client.RequestAppendToProject(u.fileName, u.uploadID, tag, u.projectID)
}

// UpdateProject replaces documentID with an upload. An empty uploadID
// selects the last upload.
func (u *Upload) UpdateProject(documentID int64, uploadID string) (int64, error) {
	if uploadID == "" {
		uploadID = u.uploadID
	}
	if uploadID == "" {
		return 0, newError(KindUpload, CodeUploadNotSent, "No file has been uploaded.")
	}
	return u.client.RequestUpdateProject(uploadID, documentID, u.projectID)
}
