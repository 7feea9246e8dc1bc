package sqldb

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

func (r *repo) checkGoalParent(ctx context.Context, op string, g models.Goal) error {
	parent, err := r.exists(ctx, "habits", "habit_id", g.HabitID)
	if err != nil {
		return apperrors.WrapStorage(op, err)
	}
	if !parent {
		return &apperrors.ReferentialIntegrityError{Entity: "goal", Key: g.GoalID, Parent: "habit", ParentKey: g.HabitID}
	}
	return nil
}

func (r *repo) InsertGoal(ctx context.Context, g models.Goal) error {
	dup := &apperrors.DuplicateKeyError{Entity: "goal", Key: g.GoalID}

	found, err := r.exists(ctx, "goals", "goal_id", g.GoalID)
	if err != nil {
		return apperrors.WrapStorage("insert goal", err)
	}
	if found {
		return dup
	}
	if err := r.checkGoalParent(ctx, "insert goal", g); err != nil {
		return err
	}

	_, err = r.exec(ctx, r.sb.Insert("goals").
		Columns(goalColumns...).
		Values(g.GoalID, g.HabitID, g.Description, formatDate(g.Deadline), g.IsAchieved))
	return translate("insert goal", err, dup, &apperrors.ReferentialIntegrityError{
		Entity: "goal", Key: g.GoalID, Parent: "habit", ParentKey: g.HabitID,
	})
}

func (r *repo) UpdateGoal(ctx context.Context, g models.Goal) error {
	found, err := r.exists(ctx, "goals", "goal_id", g.GoalID)
	if err != nil {
		return apperrors.WrapStorage("update goal", err)
	}
	if !found {
		return &apperrors.NotFoundError{Entity: "goal", Key: g.GoalID}
	}
	if err := r.checkGoalParent(ctx, "update goal", g); err != nil {
		return err
	}

	_, err = r.exec(ctx, r.sb.Update("goals").
		Set("habit_id", g.HabitID).
		Set("description", g.Description).
		Set("deadline", formatDate(g.Deadline)).
		Set("is_achieved", g.IsAchieved).
		Where(sq.Eq{"goal_id": g.GoalID}))
	return translate("update goal", err, nil, nil)
}

func (r *repo) GetGoal(ctx context.Context, goalID int64) (models.Goal, error) {
	var row goalRow
	err := r.get(ctx, &row, r.sb.Select(goalColumns...).From("goals").Where(sq.Eq{"goal_id": goalID}))
	if err != nil {
		return models.Goal{}, notFound("get goal", "goal", goalID, err)
	}
	return row.model()
}

func (r *repo) ListGoals(ctx context.Context, f storage.GoalFilter) ([]models.Goal, error) {
	q := r.sb.Select(goalColumns...).From("goals").OrderBy("goal_id")
	if f.HabitID != 0 {
		q = q.Where(sq.Eq{"habit_id": f.HabitID})
	}
	if f.OnlyUnachieved {
		q = q.Where(sq.Eq{"is_achieved": false})
	}

	var rows []goalRow
	if err := r.selectAll(ctx, &rows, q); err != nil {
		return nil, apperrors.WrapStorage("list goals", err)
	}

	goals := make([]models.Goal, 0, len(rows))
	for _, row := range rows {
		g, err := row.model()
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}
