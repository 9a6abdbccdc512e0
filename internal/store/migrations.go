// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package store

import (
	"github.com/blang/semver"
)

type migration struct {
	fromVersion   semver.Version
	toVersion     semver.Version
	migrationFunc func(execer) error
}

// migrations defines the set of migrations necessary to advance the database to the latest
// expected version.
//
// Note that the canonical schema is currently obtained by applying all migrations to an empty
// database.
var migrations = []migration{
	{semver.MustParse("0.0.0"), semver.MustParse("0.1.0"),
		func(e execer) error {
			_, err := e.Exec(`
				CREATE TABLE System (
						Key    VARCHAR(64) PRIMARY KEY,
						Value  VARCHAR(1024) NULL
				);
		`)
			if err != nil {
				return err
			}

			_, err = e.Exec(`
				CREATE TABLE Push (
						ID              TEXT PRIMARY KEY NOT NULL,
						CreateAt        BigInt NOT NULL,
						ProjectID       BigInt NOT NULL,
						OrganizationID  BigInt NOT NULL,
						DocumentName    TEXT NOT NULL,
						DocumentType    TEXT NOT NULL,
						Tag             TEXT NOT NULL,
						Action          TEXT NOT NULL,
						FileID          BigInt NOT NULL,
						Error           TEXT
				);

				CREATE INDEX ix_Push_Document ON Push (ProjectID, DocumentName);
		`)
			return err
		},
	},
	{semver.MustParse("0.1.0"), semver.MustParse("0.2.0"),
		func(e execer) error {
			_, err := e.Exec(`
				CREATE TABLE Pull (
						ID            TEXT PRIMARY KEY NOT NULL,
						CreateAt      BigInt NOT NULL,
						ProjectID     BigInt NOT NULL,
						DocumentName  TEXT NOT NULL,
						LanguageCode  TEXT NOT NULL,
						Saved         BOOLEAN NOT NULL DEFAULT FALSE,
						Destination   TEXT NOT NULL
				);
		`)
			return err
		},
	},
}
