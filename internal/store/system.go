// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/blang/semver"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const currentVersionKey = "CurrentVersion"

// LatestVersion is the schema version reached after every migration.
func LatestVersion() semver.Version {
	return migrations[len(migrations)-1].toVersion
}

func (sqlStore *SQLStore) getSystemValue(q sqlx.Queryer, key string) (string, error) {
	var value string
	err := sqlStore.getBuilder(q, &value,
		sq.Select("Value").From("System").Where("Key = ?", key),
	)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to query system value %s", key)
	}

	return value, nil
}

func (sqlStore *SQLStore) setSystemValue(e execer, key, value string) error {
	result, err := sqlStore.execBuilder(e, sq.
		Update("System").
		Set("Value", value).
		Where("Key = ?", key),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to update system value %s", key)
	}
	if rows, _ := result.RowsAffected(); rows > 0 {
		return nil
	}

	_, err = sqlStore.execBuilder(e, sq.
		Insert("System").
		Columns("Key", "Value").
		Values(key, value),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to insert system value %s", key)
	}

	return nil
}

// CurrentVersion returns the schema version of the database. A database
// without the System table is at 0.0.0.
func (sqlStore *SQLStore) CurrentVersion() (semver.Version, error) {
	exists, err := sqlStore.tableExists("System")
	if err != nil {
		return semver.Version{}, err
	}
	if !exists {
		return semver.MustParse("0.0.0"), nil
	}

	value, err := sqlStore.getSystemValue(sqlStore.db, currentVersionKey)
	if err != nil {
		return semver.Version{}, err
	}
	if value == "" {
		return semver.MustParse("0.0.0"), nil
	}

	version, err := semver.Parse(value)
	if err != nil {
		return semver.Version{}, errors.Wrapf(err, "failed to parse schema version %s", value)
	}

	return version, nil
}

// Migrate advances the schema to LatestVersion. Each migration runs in
// its own transaction.
func (sqlStore *SQLStore) Migrate() error {
	currentVersion, err := sqlStore.CurrentVersion()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if !currentVersion.EQ(m.fromVersion) {
			continue
		}

		if err := sqlStore.applyMigration(m); err != nil {
			return errors.Wrapf(err, "failed to migrate from %s to %s", m.fromVersion, m.toVersion)
		}
		sqlStore.logger.WithField("version", m.toVersion.String()).Info("Schema migrated")
		currentVersion = m.toVersion
	}

	return nil
}

func (sqlStore *SQLStore) applyMigration(m migration) error {
	tx, err := sqlStore.beginTransaction()
	if err != nil {
		return err
	}
	defer tx.RollbackUnlessCommitted()

	if err = m.migrationFunc(tx); err != nil {
		return err
	}
	if err = sqlStore.setSystemValue(tx, currentVersionKey, m.toVersion.String()); err != nil {
		return err
	}

	return tx.Commit()
}
