// Package sqldb implements storage.Repository over database/sql for both the
// SQLite and PostgreSQL providers. Queries are built with squirrel and
// scanned with sqlx; only the placeholder format differs between drivers.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
)

// DefaultMaxAttempts bounds how often a transaction is retried after a
// serialization failure.
const DefaultMaxAttempts = 3

// DB runs repository transactions against an open *sqlx.DB.
type DB struct {
	db          *sqlx.DB
	sb          sq.StatementBuilderType
	txOpts      *sql.TxOptions
	maxAttempts int
}

// Options configures transactions.
type Options struct {
	Isolation   sql.IsolationLevel
	MaxAttempts int
}

// New wraps db. The placeholder format follows the driver name db was opened with.
func New(db *sqlx.DB, opts Options) *DB {
	var format sq.PlaceholderFormat = sq.Question
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		format = sq.Dollar
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &DB{
		db:          db,
		sb:          sq.StatementBuilder.PlaceholderFormat(format),
		txOpts:      &sql.TxOptions{Isolation: opts.Isolation},
		maxAttempts: opts.MaxAttempts,
	}
}

// Tx runs fn inside a database transaction. Serialization failures are retried
// up to the configured number of attempts; every other error rolls back and is
// returned as is.
func (d *DB) Tx(ctx context.Context, fn func(storage.Repository) error) error {
	var err error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		err = d.runTx(ctx, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
		logger.Debug("Retrying transaction after serialization failure", "attempt", attempt, "error", err)
	}
	return apperrors.WrapStorage("transaction", err)
}

func (d *DB) runTx(ctx context.Context, fn func(storage.Repository) error) error {
	tx, err := d.db.BeginTxx(ctx, d.txOpts)
	if err != nil {
		return apperrors.WrapStorage("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&repo{tx: tx, sb: d.sb}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return err
		}
		return apperrors.WrapStorage("commit", err)
	}
	return nil
}

// repo is the Repository bound to one transaction.
type repo struct {
	tx *sqlx.Tx
	sb sq.StatementBuilderType
}

func (r *repo) get(ctx context.Context, dest interface{}, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return r.tx.GetContext(ctx, dest, query, args...)
}

func (r *repo) selectAll(ctx context.Context, dest interface{}, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return r.tx.SelectContext(ctx, dest, query, args...)
}

func (r *repo) exec(ctx context.Context, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repo) count(ctx context.Context, table string, where sq.Sqlizer) (int, error) {
	var n int
	err := r.get(ctx, &n, r.sb.Select("COUNT(*)").From(table).Where(where))
	return n, err
}

func (r *repo) exists(ctx context.Context, table, column string, key int64) (bool, error) {
	n, err := r.count(ctx, table, sq.Eq{column: key})
	return n > 0, err
}
