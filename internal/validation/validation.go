package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/habitlog/internal/constants"
	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// ValidateEmail checks the local@domain.tld shape.
func ValidateEmail(s string) error {
	if !emailPattern.MatchString(s) {
		return apperrors.NewValidation("email", s, "must look like local@domain.tld")
	}
	return nil
}

// ValidatePhone requires exactly ten ASCII digits.
func ValidatePhone(s string) error {
	if !phonePattern.MatchString(s) {
		return apperrors.NewValidation("phone", s, "must be exactly 10 digits")
	}
	return nil
}

// ValidateLogDate rejects a log dated before its habit started. Both values are
// compared as calendar days.
func ValidateLogDate(logDate, habitStart time.Time) error {
	if Day(logDate).Before(Day(habitStart)) {
		return &apperrors.ValidationError{
			Field:  "log_date",
			Value:  logDate.Format(constants.DateFormat),
			Reason: "log date precedes habit start",
		}
	}
	return nil
}

// ValidateName requires a non-blank name of bounded length.
func ValidateName(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return apperrors.NewValidation(field, "", "cannot be empty")
	}
	if utf8.RuneCountInString(s) > constants.MaxNameLength {
		return apperrors.NewValidation(field, "", "must be 255 characters or fewer")
	}
	return nil
}

// ValidateNotes bounds free-text notes. Empty notes are allowed.
func ValidateNotes(s string) error {
	if utf8.RuneCountInString(s) > constants.MaxNotesLength {
		return apperrors.NewValidation("notes", "", "must be 4096 characters or fewer")
	}
	return nil
}

func ValidateFrequency(f models.Frequency) error {
	for _, known := range models.Frequencies {
		if f == known {
			return nil
		}
	}
	return apperrors.NewValidation("frequency", string(f), "must be Daily, Weekly or Monthly")
}

func ValidateStatus(s models.LogStatus) error {
	for _, known := range models.Statuses {
		if s == known {
			return nil
		}
	}
	return apperrors.NewValidation("status", string(s), "must be Completed, Pending or Skipped")
}

// ValidateID rejects non-positive identifiers.
func ValidateID(field string, id int64) error {
	if id <= 0 {
		return apperrors.NewValidation(field, "", "must be a positive integer")
	}
	return nil
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
