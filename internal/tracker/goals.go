package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/validation"
)

type GoalInput struct {
	GoalID      int64
	HabitID     int64
	Description string
	Deadline    time.Time
}

// AddGoal inserts an unachieved goal for an existing habit.
func (s *Service) AddGoal(ctx context.Context, in GoalInput) (models.Goal, error) {
	g := models.Goal{
		GoalID:      in.GoalID,
		HabitID:     in.HabitID,
		Description: strings.TrimSpace(in.Description),
		Deadline:    validation.Day(in.Deadline),
	}

	err := validation.ValidateID("goal_id", g.GoalID)
	if err == nil {
		err = validation.ValidateName("description", g.Description)
	}
	if err == nil {
		err = s.store.Tx(ctx, func(r storage.Repository) error {
			return r.InsertGoal(ctx, g)
		})
	}
	if err := record("Add goal", err, "goal_id", g.GoalID, "habit_id", g.HabitID); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

// MarkGoalAchieved sets is_achieved and returns a confirmation message.
// Marking an achieved goal again changes nothing and still succeeds.
func (s *Service) MarkGoalAchieved(ctx context.Context, goalID int64) (string, error) {
	var msg string
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		g, err := r.GetGoal(ctx, goalID)
		if err != nil {
			return err
		}
		if g.IsAchieved {
			msg = fmt.Sprintf("Goal %d is already marked as achieved.", goalID)
			return nil
		}
		g.IsAchieved = true
		if err := r.UpdateGoal(ctx, g); err != nil {
			return err
		}
		msg = fmt.Sprintf("Goal %d marked as achieved.", goalID)
		return nil
	})
	if err := record("Mark goal achieved", err, "goal_id", goalID); err != nil {
		return "", err
	}
	return msg, nil
}

func (s *Service) GetGoal(ctx context.Context, goalID int64) (models.Goal, error) {
	var g models.Goal
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		var err error
		g, err = r.GetGoal(ctx, goalID)
		return err
	})
	return g, err
}

// ListGoals returns goals joined with their habit's name. A zero habitID lists all.
func (s *Service) ListGoals(ctx context.Context, habitID int64) ([]models.GoalView, error) {
	var views []models.GoalView
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		goals, err := r.ListGoals(ctx, storage.GoalFilter{HabitID: habitID})
		if err != nil {
			return err
		}
		names, err := habitNames(ctx, r)
		if err != nil {
			return err
		}
		views = make([]models.GoalView, 0, len(goals))
		for _, g := range goals {
			views = append(views, models.GoalView{Goal: g, HabitName: names[g.HabitID]})
		}
		return nil
	})
	return views, err
}
