// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package store

import (
	"context"
	"database/sql"
	"net/url"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	// enable the pq driver
	_ "github.com/lib/pq"
)

// SQLStore is the journal of pushes and pulls made by the CLI.
type SQLStore struct {
	db     *sqlx.DB
	logger logrus.FieldLogger
}

// New connects to the postgres database at dsn.
func New(dsn string, logger logrus.FieldLogger) (*SQLStore, error) {
	dbURL, err := url.Parse(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse dsn as an url")
	}
	if dbURL.Scheme != "postgres" && dbURL.Scheme != "postgresql" {
		return nil, errors.Errorf("unsupported database scheme %q", dbURL.Scheme)
	}

	db, err := sqlx.Connect("postgres", dbURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to the journal database")
	}
	// The CLI runs one command at a time.
	db.SetMaxOpenConns(2)

	return &SQLStore{
		db:     db,
		logger: logger.WithField("store", "postgres"),
	}, nil
}

// Close closes the database connection.
func (sqlStore *SQLStore) Close() error {
	return sqlStore.db.Close()
}

// builder is any squirrel builder.
type builder interface {
	ToSql() (string, []interface{}, error)
}

func (sqlStore *SQLStore) toSQL(b builder) (string, []interface{}, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to build sql")
	}

	return sqlStore.db.Rebind(query), args, nil
}

// getBuilder scans a single row into dest, which may be a pointer to a
// simple type or to a struct.
func (sqlStore *SQLStore) getBuilder(q sqlx.Queryer, dest interface{}, b builder) error {
	query, args, err := sqlStore.toSQL(b)
	if err != nil {
		return err
	}

	return sqlx.Get(q, dest, query, args...)
}

// selectBuilder scans every row into dest, a pointer to a slice.
func (sqlStore *SQLStore) selectBuilder(q sqlx.Queryer, dest interface{}, b builder) error {
	query, args, err := sqlStore.toSQL(b)
	if err != nil {
		return err
	}

	return sqlx.Select(q, dest, query, args...)
}

// execer is satisfied by both *sqlx.DB and *sqlx.Tx.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func (sqlStore *SQLStore) execBuilder(e execer, b builder) (sql.Result, error) {
	query, args, err := sqlStore.toSQL(b)
	if err != nil {
		return nil, err
	}

	return e.Exec(query, args...)
}

// Transaction wraps *sqlx.Tx to roll back on early return.
type Transaction struct {
	*sqlx.Tx
	sqlStore  *SQLStore
	committed bool
}

func (sqlStore *SQLStore) beginTransaction() (*Transaction, error) {
	tx, err := sqlStore.db.BeginTxx(context.Background(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}

	return &Transaction{Tx: tx, sqlStore: sqlStore}, nil
}

// Commit commits the pending transaction.
func (t *Transaction) Commit() error {
	if err := t.Tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit the transaction")
	}
	t.committed = true
	return nil
}

// RollbackUnlessCommitted is meant to be deferred right after
// beginTransaction.
func (t *Transaction) RollbackUnlessCommitted() {
	if t.committed {
		return
	}
	if err := t.Tx.Rollback(); err != nil {
		t.sqlStore.logger.WithError(err).Error("failed to rollback uncommitted transaction")
	}
}

func (sqlStore *SQLStore) tableExists(tableName string) (bool, error) {
	var exists bool

	err := sqlStore.getBuilder(sqlStore.db, &exists, sq.
		Select("COUNT(*) > 0").
		From("information_schema.tables").
		Where("table_schema = current_schema()").
		Where(sq.Eq{"table_name": strings.ToLower(tableName)}),
	)
	if err != nil {
		return false, errors.Wrapf(err, "failed to check if %s table exists", tableName)
	}

	return exists, nil
}
