package models

import (
	"fmt"
	"strings"
	"time"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

// Frequencies lists the accepted frequencies in menu order.
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

// ParseFrequency accepts a frequency name in any case.
func ParseFrequency(s string) (Frequency, error) {
	for _, f := range Frequencies {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown frequency %q (expected Daily, Weekly or Monthly)", s)
}

// Habit represents a recurring activity a customer tracks
type Habit struct {
	HabitID   int64     `json:"habit_id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	Frequency Frequency `json:"frequency"`
	IsActive  bool      `json:"is_active"`
}

// HabitView is a habit joined with its owner's name.
type HabitView struct {
	Habit
	OwnerName string `json:"owner_name"`
}
