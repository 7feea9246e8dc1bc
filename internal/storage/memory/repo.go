package memory

import (
	"context"
	"fmt"
	"sort"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

type repo struct {
	data *snapshot
}

func (r *repo) InsertCustomer(ctx context.Context, c models.Customer) error {
	if _, ok := r.data.Customers[c.UserID]; ok {
		return &apperrors.DuplicateKeyError{Entity: "customer", Key: c.UserID}
	}
	r.data.Customers[c.UserID] = c
	return nil
}

func (r *repo) UpdateCustomer(ctx context.Context, c models.Customer) error {
	existing, ok := r.data.Customers[c.UserID]
	if !ok {
		return &apperrors.NotFoundError{Entity: "customer", Key: c.UserID}
	}
	c.CreatedAt = existing.CreatedAt
	r.data.Customers[c.UserID] = c
	return nil
}

func (r *repo) DeleteCustomer(ctx context.Context, userID int64) error {
	if _, ok := r.data.Customers[userID]; !ok {
		return &apperrors.NotFoundError{Entity: "customer", Key: userID}
	}
	owned := 0
	for _, h := range r.data.Habits {
		if h.UserID == userID {
			owned++
		}
	}
	if owned > 0 {
		return &apperrors.ConstraintViolation{
			Entity: "customer",
			Key:    userID,
			Reason: fmt.Sprintf("customer still owns %d habit(s)", owned),
		}
	}
	delete(r.data.Customers, userID)
	return nil
}

func (r *repo) GetCustomer(ctx context.Context, userID int64) (models.Customer, error) {
	c, ok := r.data.Customers[userID]
	if !ok {
		return models.Customer{}, &apperrors.NotFoundError{Entity: "customer", Key: userID}
	}
	return c, nil
}

func (r *repo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := make([]models.Customer, 0, len(r.data.Customers))
	for _, c := range r.data.Customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].UserID < customers[j].UserID })
	return customers, nil
}

func (r *repo) InsertHabit(ctx context.Context, h models.Habit) error {
	if _, ok := r.data.Habits[h.HabitID]; ok {
		return &apperrors.DuplicateKeyError{Entity: "habit", Key: h.HabitID}
	}
	if _, ok := r.data.Customers[h.UserID]; !ok {
		return &apperrors.ReferentialIntegrityError{Entity: "habit", Key: h.HabitID, Parent: "customer", ParentKey: h.UserID}
	}
	r.data.Habits[h.HabitID] = h
	return nil
}

func (r *repo) DeleteHabit(ctx context.Context, habitID int64) error {
	if _, ok := r.data.Habits[habitID]; !ok {
		return &apperrors.NotFoundError{Entity: "habit", Key: habitID}
	}

	open := 0
	for _, g := range r.data.Goals {
		if g.HabitID == habitID && !g.IsAchieved {
			open++
		}
	}
	if open > 0 {
		return &apperrors.ConstraintViolation{
			Entity: "habit",
			Key:    habitID,
			Reason: fmt.Sprintf("habit has %d unachieved goal(s)", open),
		}
	}

	for id, g := range r.data.Goals {
		if g.HabitID == habitID {
			delete(r.data.Goals, id)
		}
	}
	for id, l := range r.data.Logs {
		if l.HabitID == habitID {
			delete(r.data.Logs, id)
		}
	}
	delete(r.data.Habits, habitID)
	return nil
}

func (r *repo) GetHabit(ctx context.Context, habitID int64) (models.Habit, error) {
	h, ok := r.data.Habits[habitID]
	if !ok {
		return models.Habit{}, &apperrors.NotFoundError{Entity: "habit", Key: habitID}
	}
	return h, nil
}

func (r *repo) ListHabits(ctx context.Context, f storage.HabitFilter) ([]models.Habit, error) {
	var habits []models.Habit
	for _, h := range r.data.Habits {
		if f.Match(h) {
			habits = append(habits, h)
		}
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].HabitID < habits[j].HabitID })
	return habits, nil
}

func (r *repo) InsertGoal(ctx context.Context, g models.Goal) error {
	if _, ok := r.data.Goals[g.GoalID]; ok {
		return &apperrors.DuplicateKeyError{Entity: "goal", Key: g.GoalID}
	}
	if _, ok := r.data.Habits[g.HabitID]; !ok {
		return &apperrors.ReferentialIntegrityError{Entity: "goal", Key: g.GoalID, Parent: "habit", ParentKey: g.HabitID}
	}
	r.data.Goals[g.GoalID] = g
	return nil
}

func (r *repo) UpdateGoal(ctx context.Context, g models.Goal) error {
	if _, ok := r.data.Goals[g.GoalID]; !ok {
		return &apperrors.NotFoundError{Entity: "goal", Key: g.GoalID}
	}
	if _, ok := r.data.Habits[g.HabitID]; !ok {
		return &apperrors.ReferentialIntegrityError{Entity: "goal", Key: g.GoalID, Parent: "habit", ParentKey: g.HabitID}
	}
	r.data.Goals[g.GoalID] = g
	return nil
}

func (r *repo) GetGoal(ctx context.Context, goalID int64) (models.Goal, error) {
	g, ok := r.data.Goals[goalID]
	if !ok {
		return models.Goal{}, &apperrors.NotFoundError{Entity: "goal", Key: goalID}
	}
	return g, nil
}

func (r *repo) ListGoals(ctx context.Context, f storage.GoalFilter) ([]models.Goal, error) {
	var goals []models.Goal
	for _, g := range r.data.Goals {
		if f.Match(g) {
			goals = append(goals, g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].GoalID < goals[j].GoalID })
	return goals, nil
}

func (r *repo) InsertLog(ctx context.Context, l models.Log) error {
	if _, ok := r.data.Logs[l.LogID]; ok {
		return &apperrors.DuplicateKeyError{Entity: "log", Key: l.LogID}
	}
	if _, ok := r.data.Habits[l.HabitID]; !ok {
		return &apperrors.ReferentialIntegrityError{Entity: "log", Key: l.LogID, Parent: "habit", ParentKey: l.HabitID}
	}
	r.data.Logs[l.LogID] = l
	return nil
}

func (r *repo) UpdateLog(ctx context.Context, l models.Log) error {
	if _, ok := r.data.Logs[l.LogID]; !ok {
		return &apperrors.NotFoundError{Entity: "log", Key: l.LogID}
	}
	if _, ok := r.data.Habits[l.HabitID]; !ok {
		return &apperrors.ReferentialIntegrityError{Entity: "log", Key: l.LogID, Parent: "habit", ParentKey: l.HabitID}
	}
	r.data.Logs[l.LogID] = l
	return nil
}

func (r *repo) GetLog(ctx context.Context, logID int64) (models.Log, error) {
	l, ok := r.data.Logs[logID]
	if !ok {
		return models.Log{}, &apperrors.NotFoundError{Entity: "log", Key: logID}
	}
	return l, nil
}

func (r *repo) ListLogs(ctx context.Context, f storage.LogFilter) ([]models.Log, error) {
	var logs []models.Log
	for _, l := range r.data.Logs {
		if f.Match(l) {
			logs = append(logs, l)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].LogDate.Equal(logs[j].LogDate) {
			return logs[i].LogDate.After(logs[j].LogDate)
		}
		return logs[i].LogID > logs[j].LogID
	})
	if f.Limit > 0 && len(logs) > f.Limit {
		logs = logs[:f.Limit]
	}
	return logs, nil
}

func (r *repo) CountLogs(ctx context.Context, f storage.LogFilter) (int, error) {
	n := 0
	for _, l := range r.data.Logs {
		if f.Match(l) {
			n++
		}
	}
	return n, nil
}
