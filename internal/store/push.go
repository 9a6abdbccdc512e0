// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package store

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PushTableName is the table holding Push records.
const PushTableName = "Push"

// Push actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// Push records one document sent to a project.
type Push struct {
	ID             string
	CreateAt       int64
	ProjectID      int64
	OrganizationID int64
	DocumentName   string
	DocumentType   string
	Tag            string
	Action         string
	FileID         int64
	Error          string
}

// PushFilter narrows GetPushes. Zero values match everything.
type PushFilter struct {
	ProjectID    int64
	DocumentName string
	Limit        uint64
}

var pushSelect sq.SelectBuilder

func init() {
	pushSelect = sq.
		Select(
			"ID",
			"CreateAt",
			"ProjectID",
			"OrganizationID",
			"DocumentName",
			"DocumentType",
			"Tag",
			"Action",
			"FileID",
			"COALESCE(Error, '') AS Error",
		).
		From(PushTableName)
}

// Timestamp returns the current time in milliseconds.
func Timestamp() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// CreatePush stores a new Push, assigning its ID and CreateAt.
func (sqlStore *SQLStore) CreatePush(push *Push) error {
	push.ID = uuid.NewString()
	push.CreateAt = Timestamp()

	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Insert(PushTableName).
		SetMap(map[string]interface{}{
			"ID":             push.ID,
			"CreateAt":       push.CreateAt,
			"ProjectID":      push.ProjectID,
			"OrganizationID": push.OrganizationID,
			"DocumentName":   push.DocumentName,
			"DocumentType":   push.DocumentType,
			"Tag":            push.Tag,
			"Action":         push.Action,
			"FileID":         push.FileID,
			"Error":          push.Error,
		}),
	)
	if err != nil {
		return errors.Wrap(err, "failed to store push")
	}

	return nil
}

// GetPush returns the Push with the given ID, or nil if there is none.
func (sqlStore *SQLStore) GetPush(id string) (*Push, error) {
	push := new(Push)

	err := sqlStore.getBuilder(sqlStore.db, push,
		pushSelect.Where("ID = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get push by id")
	}

	return push, nil
}

// GetPushes returns the pushes matching filter, newest first.
func (sqlStore *SQLStore) GetPushes(filter *PushFilter) ([]*Push, error) {
	query := pushSelect.OrderBy("CreateAt DESC")
	if filter.ProjectID != 0 {
		query = query.Where("ProjectID = ?", filter.ProjectID)
	}
	if filter.DocumentName != "" {
		query = query.Where("DocumentName = ?", filter.DocumentName)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	pushes := []*Push{}
	err := sqlStore.selectBuilder(sqlStore.db, &pushes, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query pushes")
	}

	return pushes, nil
}

// LastFileID returns the file id of the newest successful push of a
// document, or 0 when the document was never pushed.
func (sqlStore *SQLStore) LastFileID(projectID int64, documentName string) (int64, error) {
	var fileID int64
	err := sqlStore.getBuilder(sqlStore.db, &fileID, sq.
		Select("FileID").
		From(PushTableName).
		Where(sq.Eq{"ProjectID": projectID, "DocumentName": documentName}).
		Where("COALESCE(Error, '') = ''").
		OrderBy("CreateAt DESC").
		Limit(1),
	)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to query last file id")
	}

	return fileID, nil
}
