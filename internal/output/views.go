package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
)

// Tabular is anything that renders as a table.
type Tabular interface {
	Headers() []string
	Rows() [][]string
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

// Date formats a calendar day as YYYY-MM-DD.
func Date(t time.Time) string { return t.Format(constants.DateFormat) }

// Rate formats a completion percentage with two decimals.
func Rate(r float64) string { return fmt.Sprintf("%.2f%%", r) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

type Customers []models.Customer

func (c Customers) Headers() []string {
	return []string{"ID", "Name", "Email", "Phone", "Created"}
}

func (c Customers) Rows() [][]string {
	rows := make([][]string, 0, len(c))
	for _, x := range c {
		rows = append(rows, []string{id(x.UserID), x.Name, x.Email, x.Phone, Date(x.CreatedAt)})
	}
	return rows
}

type Habits []models.HabitView

func (h Habits) Headers() []string {
	return []string{"ID", "Name", "Owner", "Start", "Frequency", "Active"}
}

func (h Habits) Rows() [][]string {
	rows := make([][]string, 0, len(h))
	for _, x := range h {
		rows = append(rows, []string{
			id(x.HabitID), x.Name, x.OwnerName, Date(x.StartDate), string(x.Frequency), yesNo(x.IsActive),
		})
	}
	return rows
}

type Goals []models.GoalView

func (g Goals) Headers() []string {
	return []string{"ID", "Habit", "Description", "Deadline", "Achieved"}
}

func (g Goals) Rows() [][]string {
	rows := make([][]string, 0, len(g))
	for _, x := range g {
		rows = append(rows, []string{id(x.GoalID), x.HabitName, x.Description, Date(x.Deadline), yesNo(x.IsAchieved)})
	}
	return rows
}

type Logs []models.LogView

func (l Logs) Headers() []string {
	return []string{"ID", "Habit", "Date", "Status", "Notes"}
}

func (l Logs) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, x := range l {
		rows = append(rows, []string{id(x.LogID), x.HabitName, Date(x.LogDate), string(x.Status), x.Notes})
	}
	return rows
}

type UserPerformance []models.UserPerformance

func (u UserPerformance) Headers() []string {
	return []string{"User", "Name", "Habits", "Logs", "Completed", "Skipped", "Rate"}
}

func (u UserPerformance) Rows() [][]string {
	rows := make([][]string, 0, len(u))
	for _, x := range u {
		rows = append(rows, []string{
			id(x.UserID), x.Name, strconv.Itoa(x.TotalHabits), strconv.Itoa(x.TotalLogs),
			strconv.Itoa(x.CompletedLogs), strconv.Itoa(x.SkippedLogs), Rate(x.CompletionRate),
		})
	}
	return rows
}

type HabitPerformance []models.HabitPerformance

func (h HabitPerformance) Headers() []string {
	return []string{"Habit", "Name", "Logs", "Completed", "Skipped", "Pending", "Rate"}
}

func (h HabitPerformance) Rows() [][]string {
	rows := make([][]string, 0, len(h))
	for _, x := range h {
		rows = append(rows, []string{
			id(x.HabitID), x.HabitName, strconv.Itoa(x.TotalLogs), strconv.Itoa(x.Completed),
			strconv.Itoa(x.Skipped), strconv.Itoa(x.Pending), Rate(x.CompletionRate),
		})
	}
	return rows
}

type UserCompletions []models.UserCompletion

func (u UserCompletions) Headers() []string {
	return []string{"User", "Name", "Completed"}
}

func (u UserCompletions) Rows() [][]string {
	rows := make([][]string, 0, len(u))
	for _, x := range u {
		rows = append(rows, []string{id(x.UserID), x.Name, strconv.Itoa(x.CompletedLogs)})
	}
	return rows
}

type HabitGoals []models.HabitGoalRow

func (h HabitGoals) Headers() []string {
	return []string{"Customer", "Habit", "Frequency", "Goal", "Deadline", "Achieved"}
}

// Rows leaves the goal columns blank for habits without goals.
func (h HabitGoals) Rows() [][]string {
	rows := make([][]string, 0, len(h))
	for _, x := range h {
		row := []string{x.UserName, x.HabitName, string(x.Frequency), "", "", ""}
		if x.Goal != nil {
			row[3], row[4], row[5] = x.Goal.Description, Date(x.Goal.Deadline), yesNo(x.Goal.IsAchieved)
		}
		rows = append(rows, row)
	}
	return rows
}

type OverdueGoals []models.OverdueGoal

func (o OverdueGoals) Headers() []string {
	return []string{"User", "Name", "Goal", "Description", "Deadline", "Days Overdue"}
}

func (o OverdueGoals) Rows() [][]string {
	rows := make([][]string, 0, len(o))
	for _, x := range o {
		rows = append(rows, []string{
			id(x.UserID), x.Name, id(x.GoalID), x.Description, Date(x.Deadline), strconv.Itoa(x.DaysOverdue),
		})
	}
	return rows
}
