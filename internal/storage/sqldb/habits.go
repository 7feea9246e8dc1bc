package sqldb

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

func (r *repo) InsertHabit(ctx context.Context, h models.Habit) error {
	dup := &apperrors.DuplicateKeyError{Entity: "habit", Key: h.HabitID}
	fk := &apperrors.ReferentialIntegrityError{Entity: "habit", Key: h.HabitID, Parent: "customer", ParentKey: h.UserID}

	found, err := r.exists(ctx, "habits", "habit_id", h.HabitID)
	if err != nil {
		return apperrors.WrapStorage("insert habit", err)
	}
	if found {
		return dup
	}
	parent, err := r.exists(ctx, "customers", "user_id", h.UserID)
	if err != nil {
		return apperrors.WrapStorage("insert habit", err)
	}
	if !parent {
		return fk
	}

	_, err = r.exec(ctx, r.sb.Insert("habits").
		Columns(habitColumns...).
		Values(h.HabitID, h.UserID, h.Name, formatDate(h.StartDate), string(h.Frequency), h.IsActive))
	return translate("insert habit", err, dup, fk)
}

func (r *repo) DeleteHabit(ctx context.Context, habitID int64) error {
	found, err := r.exists(ctx, "habits", "habit_id", habitID)
	if err != nil {
		return apperrors.WrapStorage("delete habit", err)
	}
	if !found {
		return &apperrors.NotFoundError{Entity: "habit", Key: habitID}
	}

	open, err := r.count(ctx, "goals", sq.Eq{"habit_id": habitID, "is_achieved": false})
	if err != nil {
		return apperrors.WrapStorage("delete habit", err)
	}
	if open > 0 {
		return &apperrors.ConstraintViolation{
			Entity: "habit",
			Key:    habitID,
			Reason: fmt.Sprintf("habit has %d unachieved goal(s)", open),
		}
	}

	// Children first so the delete does not depend on the foreign_keys pragma.
	for _, table := range []string{"logs", "goals", "habits"} {
		if _, err := r.exec(ctx, r.sb.Delete(table).Where(sq.Eq{"habit_id": habitID})); err != nil {
			return apperrors.WrapStorage("delete habit", err)
		}
	}
	return nil
}

func (r *repo) GetHabit(ctx context.Context, habitID int64) (models.Habit, error) {
	var row habitRow
	err := r.get(ctx, &row, r.sb.Select(habitColumns...).From("habits").Where(sq.Eq{"habit_id": habitID}))
	if err != nil {
		return models.Habit{}, notFound("get habit", "habit", habitID, err)
	}
	return row.model()
}

func (r *repo) ListHabits(ctx context.Context, f storage.HabitFilter) ([]models.Habit, error) {
	q := r.sb.Select(habitColumns...).From("habits").OrderBy("habit_id")
	if f.UserID != 0 {
		q = q.Where(sq.Eq{"user_id": f.UserID})
	}

	var rows []habitRow
	if err := r.selectAll(ctx, &rows, q); err != nil {
		return nil, apperrors.WrapStorage("list habits", err)
	}

	habits := make([]models.Habit, 0, len(rows))
	for _, row := range rows {
		h, err := row.model()
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, nil
}
