package models

import "time"

type UserPerformance struct {
	UserID         int64
	Name           string
	TotalHabits    int
	TotalLogs      int
	CompletedLogs  int
	SkippedLogs    int
	CompletionRate float64
}

type HabitPerformance struct {
	HabitID        int64
	HabitName      string
	TotalLogs      int
	Completed      int
	Skipped        int
	Pending        int
	CompletionRate float64
}

type UserCompletion struct {
	UserID        int64
	Name          string
	CompletedLogs int
}

// HabitGoalRow is one habit paired with one of its goals. Goal is nil for
// habits without goals.
type HabitGoalRow struct {
	UserName  string
	HabitName string
	Frequency Frequency
	Goal      *Goal
}

type OverdueGoal struct {
	UserID      int64
	Name        string
	GoalID      int64
	Description string
	Deadline    time.Time
	DaysOverdue int
}
