package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      errors.New("failed to connect: connection refused"),
			expected: "Error: failed to connect: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "simple message",
			format:   "something went wrong",
			args:     nil,
			expected: "Error: something went wrong",
		},
		{
			name:     "formatted message with string",
			format:   "failed to load %s",
			args:     []interface{}{"database"},
			expected: "Error: failed to load database",
		},
		{
			name:     "formatted message with multiple args",
			format:   "connection to %s:%d failed",
			args:     []interface{}{"localhost", 5432},
			expected: "Error: connection to localhost:5432 failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Formatf(tt.format, tt.args...)
			if result != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, result, tt.expected)
			}
		})
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		// This is the subprocess - call Fatal
		Fatal(errors.New("test error"))
		return
	}

	// Run the test in a subprocess
	cmd := exec.Command(os.Args[0], "-test.run=TestFatal")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		// Check that exit code is 1
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		// Check that stderr contains the error message
		stderrStr := stderr.String()
		if !strings.Contains(stderrStr, "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderrStr, "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		// This is the subprocess - call Fatal with nil
		Fatal(nil)
		// If we get here, the function returned normally (which is correct)
		os.Exit(0)
	}

	// Run the test in a subprocess
	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	err := cmd.Run()
	if err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

// TestFatalf tests the Fatalf function using exec helper process
func TestFatalf(t *testing.T) {
	if os.Getenv("GO_TEST_FATALF") == "1" {
		// This is the subprocess - call Fatalf
		Fatalf("connection to %s:%d failed", "localhost", 5432)
		return
	}

	// Run the test in a subprocess
	cmd := exec.Command(os.Args[0], "-test.run=TestFatalf")
	cmd.Env = append(os.Environ(), "GO_TEST_FATALF=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		// Check that exit code is 1
		if e.ExitCode() != 1 {
			t.Errorf("Fatalf() exit code = %d, want 1", e.ExitCode())
		}
		// Check that stderr contains the formatted error message
		stderrStr := stderr.String()
		if !strings.Contains(stderrStr, "Error: connection to localhost:5432 failed") {
			t.Errorf("Fatalf() stderr = %q, want to contain %q", stderrStr, "Error: connection to localhost:5432 failed")
		}
	} else {
		t.Errorf("Fatalf() did not exit with error: %v", err)
	}
}

func TestTaxonomyMatchesSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "validation with value",
			err:      NewValidation("email", "not-an-email", "must look like local@domain.tld"),
			sentinel: ErrValidation,
			message:  `invalid email "not-an-email": must look like local@domain.tld`,
		},
		{
			name:     "validation without field",
			err:      &ValidationError{Reason: "log date precedes habit start"},
			sentinel: ErrValidation,
			message:  "log date precedes habit start",
		},
		{
			name:     "referential integrity",
			err:      &ReferentialIntegrityError{Entity: "habit", Key: 201, Parent: "customer", ParentKey: 9},
			sentinel: ErrReferentialIntegrity,
			message:  "habit 201 references unknown customer 9",
		},
		{
			name:     "duplicate key",
			err:      &DuplicateKeyError{Entity: "customer", Key: 1},
			sentinel: ErrDuplicateKey,
			message:  "customer 1 already exists",
		},
		{
			name:     "not found",
			err:      &NotFoundError{Entity: "goal", Key: 3},
			sentinel: ErrNotFound,
			message:  "goal 3 not found",
		},
		{
			name:     "constraint violation",
			err:      &ConstraintViolation{Entity: "habit", Key: 4, Reason: "it has unachieved goals"},
			sentinel: ErrConstraintViolation,
			message:  "cannot delete habit 4: it has unachieved goals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
			wrapped := fmt.Errorf("adding row: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("wrapped error lost its category: %v", wrapped)
			}
			if tt.err.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.message)
			}
			if !IsDomain(tt.err) {
				t.Errorf("IsDomain(%v) = false, want true", tt.err)
			}
		})
	}
}

func TestWrapStorage(t *testing.T) {
	if WrapStorage("insert", nil) != nil {
		t.Error("WrapStorage(nil) should return nil")
	}

	cause := errors.New("connection refused")
	err := WrapStorage("insert customer", cause)
	if !errors.Is(err, ErrStorage) {
		t.Errorf("expected storage category, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("storage error should unwrap to its cause")
	}
	if IsDomain(err) {
		t.Errorf("storage error must not be a domain error")
	}

	notFound := &NotFoundError{Entity: "log", Key: 2}
	if got := WrapStorage("get log", notFound); got != notFound {
		t.Errorf("WrapStorage changed a domain error: %v", got)
	}

	twice := WrapStorage("outer", err)
	var se *StorageError
	if !errors.As(twice, &se) || se.Op != "insert customer" {
		t.Errorf("WrapStorage double-wrapped a storage error: %v", twice)
	}
}
