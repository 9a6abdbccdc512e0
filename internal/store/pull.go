// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PullTableName is the table holding Pull records.
const PullTableName = "Pull"

// Pull records one translation written to a sink.
type Pull struct {
	ID           string
	CreateAt     int64
	ProjectID    int64
	DocumentName string
	LanguageCode string
	Saved        bool
	Destination  string
}

// CreatePull stores a new Pull, assigning its ID and CreateAt.
func (sqlStore *SQLStore) CreatePull(pull *Pull) error {
	pull.ID = uuid.NewString()
	pull.CreateAt = Timestamp()

	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Insert(PullTableName).
		SetMap(map[string]interface{}{
			"ID":           pull.ID,
			"CreateAt":     pull.CreateAt,
			"ProjectID":    pull.ProjectID,
			"DocumentName": pull.DocumentName,
			"LanguageCode": pull.LanguageCode,
			"Saved":        pull.Saved,
			"Destination":  pull.Destination,
		}),
	)
	if err != nil {
		return errors.Wrap(err, "failed to store pull")
	}

	return nil
}

// GetPulls returns the pulls of a document, newest first.
func (sqlStore *SQLStore) GetPulls(projectID int64, documentName string) ([]*Pull, error) {
	pulls := []*Pull{}
	err := sqlStore.selectBuilder(sqlStore.db, &pulls, sq.
		Select("ID", "CreateAt", "ProjectID", "DocumentName", "LanguageCode", "Saved", "Destination").
		From(PullTableName).
		Where(sq.Eq{"ProjectID": projectID, "DocumentName": documentName}).
		OrderBy("CreateAt DESC"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query pulls")
	}

	return pulls, nil
}
