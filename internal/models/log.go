package models

import (
	"fmt"
	"strings"
	"time"
)

type LogStatus string

const (
	StatusCompleted LogStatus = "Completed"
	StatusPending   LogStatus = "Pending"
	StatusSkipped   LogStatus = "Skipped"
)

// Statuses lists the accepted statuses in menu order.
var Statuses = []LogStatus{StatusCompleted, StatusPending, StatusSkipped}

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (LogStatus, error) {
	for _, st := range Statuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (expected Completed, Pending or Skipped)", s)
}

// Log is a dated record of a habit's status on a given day
type Log struct {
	LogID   int64     `json:"log_id"`
	HabitID int64     `json:"habit_id"`
	LogDate time.Time `json:"log_date"`
	Status  LogStatus `json:"status"`
	Notes   string    `json:"notes,omitempty"`
}

// LogView is a log joined with its habit's name.
type LogView struct {
	Log
	HabitName string `json:"habit_name"`
}
