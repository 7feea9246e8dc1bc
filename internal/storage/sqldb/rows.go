package sqldb

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/validation"
)

// Dates travel as strings so the same row types scan SQLite TEXT columns and
// PostgreSQL DATE/TIMESTAMPTZ columns (database/sql formats time.Time as RFC 3339).

var (
	customerColumns = []string{"user_id", "name", "email", "phone_no", "password", "created_at"}
	habitColumns    = []string{"habit_id", "user_id", "name", "start_date", "frequency", "is_active"}
	goalColumns     = []string{"goal_id", "habit_id", "description", "deadline", "is_achieved"}
	logColumns      = []string{"log_id", "habit_id", "log_date", "status", "notes"}
)

type customerRow struct {
	UserID    int64  `db:"user_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Phone     string `db:"phone_no"`
	Password  string `db:"password"`
	CreatedAt string `db:"created_at"`
}

func (r customerRow) model() (models.Customer, error) {
	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return models.Customer{}, fmt.Errorf("customer %d: %w", r.UserID, err)
	}
	return models.Customer{
		UserID:    r.UserID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Password:  r.Password,
		CreatedAt: createdAt,
	}, nil
}

type habitRow struct {
	HabitID   int64  `db:"habit_id"`
	UserID    int64  `db:"user_id"`
	Name      string `db:"name"`
	StartDate string `db:"start_date"`
	Frequency string `db:"frequency"`
	IsActive  bool   `db:"is_active"`
}

func (r habitRow) model() (models.Habit, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %d: %w", r.HabitID, err)
	}
	return models.Habit{
		HabitID:   r.HabitID,
		UserID:    r.UserID,
		Name:      r.Name,
		StartDate: start,
		Frequency: models.Frequency(r.Frequency),
		IsActive:  r.IsActive,
	}, nil
}

type goalRow struct {
	GoalID      int64  `db:"goal_id"`
	HabitID     int64  `db:"habit_id"`
	Description string `db:"description"`
	Deadline    string `db:"deadline"`
	IsAchieved  bool   `db:"is_achieved"`
}

func (r goalRow) model() (models.Goal, error) {
	deadline, err := parseDate(r.Deadline)
	if err != nil {
		return models.Goal{}, fmt.Errorf("goal %d: %w", r.GoalID, err)
	}
	return models.Goal{
		GoalID:      r.GoalID,
		HabitID:     r.HabitID,
		Description: r.Description,
		Deadline:    deadline,
		IsAchieved:  r.IsAchieved,
	}, nil
}

type logRow struct {
	LogID   int64  `db:"log_id"`
	HabitID int64  `db:"habit_id"`
	LogDate string `db:"log_date"`
	Status  string `db:"status"`
	Notes   string `db:"notes"`
}

func (r logRow) model() (models.Log, error) {
	date, err := parseDate(r.LogDate)
	if err != nil {
		return models.Log{}, fmt.Errorf("log %d: %w", r.LogID, err)
	}
	return models.Log{
		LogID:   r.LogID,
		HabitID: r.HabitID,
		LogDate: date,
		Status:  models.LogStatus(r.Status),
		Notes:   r.Notes,
	}, nil
}

func formatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return validation.Day(t), nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
