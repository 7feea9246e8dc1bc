package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitlog/internal/logger"
)

// Sentinels for each error category. Typed errors below match them with errors.Is.
var (
	ErrValidation           = errors.New("validation failed")
	ErrReferentialIntegrity = errors.New("referenced entity does not exist")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrNotFound             = errors.New("not found")
	ErrConstraintViolation  = errors.New("constraint violation")
	ErrStorage              = errors.New("storage unavailable")
)

// ValidationError reports bad input shape or value. The caller can re-prompt.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidation creates a ValidationError for field.
func NewValidation(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// ReferentialIntegrityError reports a reference to a parent row that does not exist.
type ReferentialIntegrityError struct {
	Entity    string
	Key       int64
	Parent    string
	ParentKey int64
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %d references unknown %s %d", e.Entity, e.Key, e.Parent, e.ParentKey)
}

func (e *ReferentialIntegrityError) Is(target error) bool { return target == ErrReferentialIntegrity }

// DuplicateKeyError reports a primary-key collision on insert.
type DuplicateKeyError struct {
	Entity string
	Key    int64
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %d already exists", e.Entity, e.Key)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// NotFoundError reports an operation targeting a row that does not exist.
type NotFoundError struct {
	Entity string
	Key    int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConstraintViolation reports a delete blocked by dependent rows.
type ConstraintViolation struct {
	Entity string
	Key    int64
	Reason string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("cannot delete %s %d: %s", e.Entity, e.Key, e.Reason)
}

func (e *ConstraintViolation) Is(target error) bool { return target == ErrConstraintViolation }

// StorageError wraps a failure of the storage engine itself (connectivity, I/O).
// It is not recoverable at the service layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// WrapStorage wraps err as a StorageError unless it already belongs to the taxonomy.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) || errors.Is(err, ErrStorage) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsDomain reports whether err is one of the recoverable domain categories.
func IsDomain(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrReferentialIntegrity) ||
		errors.Is(err, ErrDuplicateKey) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConstraintViolation)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
