package tracker

import (
	"context"
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/validation"
)

type HabitInput struct {
	HabitID   int64
	UserID    int64
	Name      string
	StartDate time.Time
	Frequency models.Frequency
}

// AddHabit inserts an active habit for an existing customer.
func (s *Service) AddHabit(ctx context.Context, in HabitInput) (models.Habit, error) {
	h := models.Habit{
		HabitID:   in.HabitID,
		UserID:    in.UserID,
		Name:      strings.TrimSpace(in.Name),
		StartDate: validation.Day(in.StartDate),
		Frequency: in.Frequency,
		IsActive:  true,
	}

	err := validateHabit(h)
	if err == nil {
		err = s.store.Tx(ctx, func(r storage.Repository) error {
			return r.InsertHabit(ctx, h)
		})
	}
	if err := record("Add habit", err, "habit_id", h.HabitID, "user_id", h.UserID); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func validateHabit(h models.Habit) error {
	if err := validation.ValidateID("habit_id", h.HabitID); err != nil {
		return err
	}
	if err := validation.ValidateID("user_id", h.UserID); err != nil {
		return err
	}
	if err := validation.ValidateName("name", h.Name); err != nil {
		return err
	}
	return validation.ValidateFrequency(h.Frequency)
}

func (s *Service) GetHabit(ctx context.Context, habitID int64) (models.Habit, error) {
	var h models.Habit
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		var err error
		h, err = r.GetHabit(ctx, habitID)
		return err
	})
	return h, err
}

// ListHabits returns habits joined with their owner's name. A zero userID lists all.
func (s *Service) ListHabits(ctx context.Context, userID int64) ([]models.HabitView, error) {
	var views []models.HabitView
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		habits, err := r.ListHabits(ctx, storage.HabitFilter{UserID: userID})
		if err != nil {
			return err
		}
		owners, err := customerNames(ctx, r)
		if err != nil {
			return err
		}
		views = make([]models.HabitView, 0, len(habits))
		for _, h := range habits {
			views = append(views, models.HabitView{Habit: h, OwnerName: owners[h.UserID]})
		}
		return nil
	})
	return views, err
}

// DeleteHabit removes a habit with no unachieved goals, along with its goals and logs.
func (s *Service) DeleteHabit(ctx context.Context, habitID int64) error {
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		return r.DeleteHabit(ctx, habitID)
	})
	return record("Delete habit", err, "habit_id", habitID)
}

// HabitCompletionRate is the percentage of the habit's logs marked Completed,
// rounded to two decimals. A habit without logs has a rate of 0.
func (s *Service) HabitCompletionRate(ctx context.Context, habitID int64) (float64, error) {
	var total, completed int
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		if _, err := r.GetHabit(ctx, habitID); err != nil {
			return err
		}
		var err error
		if total, err = r.CountLogs(ctx, storage.LogFilter{HabitID: habitID}); err != nil {
			return err
		}
		completed, err = r.CountLogs(ctx, storage.LogFilter{HabitID: habitID, Status: models.StatusCompleted})
		return err
	})
	if err != nil {
		return 0, err
	}
	return percent(completed, total), nil
}

func customerNames(ctx context.Context, r storage.Repository) (map[int64]string, error) {
	customers, err := r.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(customers))
	for _, c := range customers {
		names[c.UserID] = c.Name
	}
	return names, nil
}

func habitNames(ctx context.Context, r storage.Repository) (map[int64]string, error) {
	habits, err := r.ListHabits(ctx, storage.HabitFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(habits))
	for _, h := range habits {
		names[h.HabitID] = h.Name
	}
	return names, nil
}
