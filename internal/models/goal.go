package models

import "time"

// Goal is a target tied to a habit. IsAchieved only ever moves from false to true.
type Goal struct {
	GoalID      int64     `json:"goal_id"`
	HabitID     int64     `json:"habit_id"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	IsAchieved  bool      `json:"is_achieved"`
}

// GoalView is a goal joined with its habit's name.
type GoalView struct {
	Goal
	HabitName string `json:"habit_name"`
}
