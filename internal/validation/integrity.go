package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
)

// IssueType represents the type of integrity issue
type IssueType string

const (
	IssueLogBeforeStart   IssueType = "log_before_start"
	IssueOrphanHabit      IssueType = "orphan_habit"
	IssueOrphanGoal       IssueType = "orphan_goal"
	IssueOrphanLog        IssueType = "orphan_log"
	IssueInvalidEmail     IssueType = "invalid_email"
	IssueInvalidPhone     IssueType = "invalid_phone"
	IssueInvalidFrequency IssueType = "invalid_frequency"
	IssueInvalidStatus    IssueType = "invalid_status"
)

// Issue is a single integrity problem found in stored data
type Issue struct {
	Type        IssueType
	Description string
	Entity      string
	Key         int64
}

// Dataset is a full snapshot of the four relations
type Dataset struct {
	Customers []models.Customer
	Habits    []models.Habit
	Goals     []models.Goal
	Logs      []models.Log
}

// Result contains all detected issues
type Result struct {
	Issues []Issue
}

// HasIssues returns true if there are any issues
func (r *Result) HasIssues() bool {
	return len(r.Issues) > 0
}

// FormatReport returns a human-readable report of all issues
func (r *Result) FormatReport() string {
	if !r.HasIssues() {
		return "No integrity issues detected."
	}

	report := "Integrity issues detected:\n"
	for _, issue := range r.Issues {
		report += fmt.Sprintf("- %s\n", issue.Description)
	}
	return report
}

// Validator checks stored rows against the same rules enforced on insert.
// Rows written by other tools, or before a rule existed, can still break them.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Check runs every rule over the dataset. Issues are ordered by entity then key.
func (v *Validator) Check(ds Dataset) Result {
	result := Result{Issues: []Issue{}}

	customers := make(map[int64]bool, len(ds.Customers))
	for _, c := range ds.Customers {
		customers[c.UserID] = true
		if err := ValidateEmail(c.Email); err != nil {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueInvalidEmail,
				Description: fmt.Sprintf("Customer %d has an invalid email: %q", c.UserID, c.Email),
				Entity:      "customer",
				Key:         c.UserID,
			})
		}
		if err := ValidatePhone(c.Phone); err != nil {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueInvalidPhone,
				Description: fmt.Sprintf("Customer %d has an invalid phone: %q", c.UserID, c.Phone),
				Entity:      "customer",
				Key:         c.UserID,
			})
		}
	}

	habits := make(map[int64]models.Habit, len(ds.Habits))
	for _, h := range ds.Habits {
		habits[h.HabitID] = h
		if !customers[h.UserID] {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueOrphanHabit,
				Description: fmt.Sprintf("Habit %d (%s) belongs to missing customer %d", h.HabitID, h.Name, h.UserID),
				Entity:      "habit",
				Key:         h.HabitID,
			})
		}
		if err := ValidateFrequency(h.Frequency); err != nil {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueInvalidFrequency,
				Description: fmt.Sprintf("Habit %d has an unknown frequency: %q", h.HabitID, h.Frequency),
				Entity:      "habit",
				Key:         h.HabitID,
			})
		}
	}

	for _, g := range ds.Goals {
		if _, ok := habits[g.HabitID]; !ok {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueOrphanGoal,
				Description: fmt.Sprintf("Goal %d belongs to missing habit %d", g.GoalID, g.HabitID),
				Entity:      "goal",
				Key:         g.GoalID,
			})
		}
	}

	for _, l := range ds.Logs {
		h, ok := habits[l.HabitID]
		if !ok {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueOrphanLog,
				Description: fmt.Sprintf("Log %d belongs to missing habit %d", l.LogID, l.HabitID),
				Entity:      "log",
				Key:         l.LogID,
			})
		} else if err := ValidateLogDate(l.LogDate, h.StartDate); err != nil {
			result.Issues = append(result.Issues, Issue{
				Type: IssueLogBeforeStart,
				Description: fmt.Sprintf("Log %d is dated %s, before habit %d started on %s",
					l.LogID, l.LogDate.Format(constants.DateFormat), h.HabitID, h.StartDate.Format(constants.DateFormat)),
				Entity: "log",
				Key:    l.LogID,
			})
		}
		if err := ValidateStatus(l.Status); err != nil {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueInvalidStatus,
				Description: fmt.Sprintf("Log %d has an unknown status: %q", l.LogID, l.Status),
				Entity:      "log",
				Key:         l.LogID,
			})
		}
	}

	order := map[string]int{"customer": 0, "habit": 1, "goal": 2, "log": 3}
	sort.SliceStable(result.Issues, func(i, j int) bool {
		a, b := result.Issues[i], result.Issues[j]
		if order[a.Entity] != order[b.Entity] {
			return order[a.Entity] < order[b.Entity]
		}
		return a.Key < b.Key
	})

	return result
}
