package tracker

import (
	"context"
	"errors"
	"sort"
	"time"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/validation"
)

// unknownHabit turns a missing parent habit into a referential integrity error.
func unknownHabit(entity string, key, habitID int64, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return &apperrors.ReferentialIntegrityError{Entity: entity, Key: key, Parent: "habit", ParentKey: habitID}
	}
	return err
}

type tally struct {
	total, completed, skipped, pending int
}

func (t *tally) add(status models.LogStatus) {
	t.total++
	switch status {
	case models.StatusCompleted:
		t.completed++
	case models.StatusSkipped:
		t.skipped++
	case models.StatusPending:
		t.pending++
	}
}

// UserPerformanceSummary aggregates logs per customer. Customers without any
// log are left out; habits without logs still count toward TotalHabits.
func (s *Service) UserPerformanceSummary(ctx context.Context) ([]models.UserPerformance, error) {
	ds, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	habitOwner := make(map[int64]int64, len(ds.Habits))
	habitCount := make(map[int64]int)
	for _, h := range ds.Habits {
		habitOwner[h.HabitID] = h.UserID
		habitCount[h.UserID]++
	}
	perUser := make(map[int64]*tally)
	for _, l := range ds.Logs {
		owner, ok := habitOwner[l.HabitID]
		if !ok {
			continue
		}
		if perUser[owner] == nil {
			perUser[owner] = &tally{}
		}
		perUser[owner].add(l.Status)
	}

	var rows []models.UserPerformance
	for _, c := range ds.Customers {
		t := perUser[c.UserID]
		if t == nil {
			continue
		}
		rows = append(rows, models.UserPerformance{
			UserID:         c.UserID,
			Name:           c.Name,
			TotalHabits:    habitCount[c.UserID],
			TotalLogs:      t.total,
			CompletedLogs:  t.completed,
			SkippedLogs:    t.skipped,
			CompletionRate: percent(t.completed, t.total),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CompletionRate != rows[j].CompletionRate {
			return rows[i].CompletionRate > rows[j].CompletionRate
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows, nil
}

// HabitPerformanceReport aggregates logs per habit, skipping habits without logs.
func (s *Service) HabitPerformanceReport(ctx context.Context) ([]models.HabitPerformance, error) {
	ds, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	perHabit := make(map[int64]*tally)
	for _, l := range ds.Logs {
		if perHabit[l.HabitID] == nil {
			perHabit[l.HabitID] = &tally{}
		}
		perHabit[l.HabitID].add(l.Status)
	}

	var rows []models.HabitPerformance
	for _, h := range ds.Habits {
		t := perHabit[h.HabitID]
		if t == nil {
			continue
		}
		rows = append(rows, models.HabitPerformance{
			HabitID:        h.HabitID,
			HabitName:      h.Name,
			TotalLogs:      t.total,
			Completed:      t.completed,
			Skipped:        t.skipped,
			Pending:        t.pending,
			CompletionRate: percent(t.completed, t.total),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CompletionRate != rows[j].CompletionRate {
			return rows[i].CompletionRate > rows[j].CompletionRate
		}
		return rows[i].HabitID < rows[j].HabitID
	})
	return rows, nil
}

// UsersAboveAverage lists customers whose completed-log count is strictly
// greater than the mean completed count per habit. The mean is taken over
// habits that have at least one log.
func (s *Service) UsersAboveAverage(ctx context.Context) ([]models.UserCompletion, error) {
	ds, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	habitOwner := make(map[int64]int64, len(ds.Habits))
	for _, h := range ds.Habits {
		habitOwner[h.HabitID] = h.UserID
	}

	// completedPerHabit has a key for every habit with at least one log.
	completedPerHabit := make(map[int64]int)
	completedPerUser := make(map[int64]int)
	hasLogs := make(map[int64]bool)
	for _, l := range ds.Logs {
		done := 0
		if l.Status == models.StatusCompleted {
			done = 1
		}
		completedPerHabit[l.HabitID] += done

		owner, ok := habitOwner[l.HabitID]
		if !ok {
			continue
		}
		hasLogs[owner] = true
		completedPerUser[owner] += done
	}
	if len(completedPerHabit) == 0 {
		return nil, nil
	}

	sum := 0
	for _, n := range completedPerHabit {
		sum += n
	}
	mean := float64(sum) / float64(len(completedPerHabit))

	var rows []models.UserCompletion
	for _, c := range ds.Customers {
		if !hasLogs[c.UserID] {
			continue
		}
		if n := completedPerUser[c.UserID]; float64(n) > mean {
			rows = append(rows, models.UserCompletion{UserID: c.UserID, Name: c.Name, CompletedLogs: n})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CompletedLogs != rows[j].CompletedLogs {
			return rows[i].CompletedLogs > rows[j].CompletedLogs
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows, nil
}

// HabitsWithGoals pairs every habit with each of its goals. Habits without
// goals appear once with a nil Goal.
func (s *Service) HabitsWithGoals(ctx context.Context) ([]models.HabitGoalRow, error) {
	ds, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	owners := make(map[int64]string, len(ds.Customers))
	for _, c := range ds.Customers {
		owners[c.UserID] = c.Name
	}
	goalsByHabit := make(map[int64][]models.Goal)
	for _, g := range ds.Goals {
		goalsByHabit[g.HabitID] = append(goalsByHabit[g.HabitID], g)
	}

	var rows []models.HabitGoalRow
	for _, h := range ds.Habits {
		owner, ok := owners[h.UserID]
		if !ok {
			continue
		}
		goals := goalsByHabit[h.HabitID]
		if len(goals) == 0 {
			rows = append(rows, models.HabitGoalRow{UserName: owner, HabitName: h.Name, Frequency: h.Frequency})
			continue
		}
		for i := range goals {
			g := goals[i]
			rows = append(rows, models.HabitGoalRow{UserName: owner, HabitName: h.Name, Frequency: h.Frequency, Goal: &g})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].UserName != rows[j].UserName {
			return rows[i].UserName < rows[j].UserName
		}
		return rows[i].HabitName < rows[j].HabitName
	})
	return rows, nil
}

// OverdueGoals lists unachieved goals whose deadline is before today, most
// overdue first.
func (s *Service) OverdueGoals(ctx context.Context, today time.Time) ([]models.OverdueGoal, error) {
	ds, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	today = validation.Day(today)

	customers := make(map[int64]models.Customer, len(ds.Customers))
	for _, c := range ds.Customers {
		customers[c.UserID] = c
	}
	habits := make(map[int64]models.Habit, len(ds.Habits))
	for _, h := range ds.Habits {
		habits[h.HabitID] = h
	}

	var rows []models.OverdueGoal
	for _, g := range ds.Goals {
		deadline := validation.Day(g.Deadline)
		if g.IsAchieved || !deadline.Before(today) {
			continue
		}
		h, ok := habits[g.HabitID]
		if !ok {
			continue
		}
		c, ok := customers[h.UserID]
		if !ok {
			continue
		}
		rows = append(rows, models.OverdueGoal{
			UserID:      c.UserID,
			Name:        c.Name,
			GoalID:      g.GoalID,
			Description: g.Description,
			Deadline:    deadline,
			DaysOverdue: int(today.Sub(deadline).Hours() / 24),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DaysOverdue != rows[j].DaysOverdue {
			return rows[i].DaysOverdue > rows[j].DaysOverdue
		}
		return rows[i].GoalID < rows[j].GoalID
	})
	return rows, nil
}
