package sqldb

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
)

// PostgreSQL SQLSTATE codes.
const (
	pqUniqueViolation      = "23505"
	pqForeignKeyViolation  = "23503"
	pqSerializationFailure = "40001"
)

func pqCode(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}
	return "", false
}

func isUniqueViolation(err error) bool {
	if code, ok := pqCode(err); ok {
		return code == pqUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if code, ok := pqCode(err); ok {
		return code == pqForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isSerializationFailure(err error) bool {
	code, ok := pqCode(err)
	return ok && code == pqSerializationFailure
}

// translate maps a driver error to the error taxonomy. Constraint failures
// that slipped past the explicit checks (a concurrent writer) become dup or
// fk; anything else is a storage failure.
func translate(op string, err error, dup, fk error) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsDomain(err):
		return err
	case dup != nil && isUniqueViolation(err):
		return dup
	case fk != nil && isForeignKeyViolation(err):
		return fk
	case isSerializationFailure(err):
		return err
	}
	return apperrors.WrapStorage(op, err)
}

// notFound converts sql.ErrNoRows into a NotFoundError for entity/key.
func notFound(op, entity string, key int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &apperrors.NotFoundError{Entity: entity, Key: key}
	}
	return apperrors.WrapStorage(op, err)
}
