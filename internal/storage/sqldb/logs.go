package sqldb

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

func logParentError(l models.Log) error {
	return &apperrors.ReferentialIntegrityError{Entity: "log", Key: l.LogID, Parent: "habit", ParentKey: l.HabitID}
}

func (r *repo) InsertLog(ctx context.Context, l models.Log) error {
	dup := &apperrors.DuplicateKeyError{Entity: "log", Key: l.LogID}

	found, err := r.exists(ctx, "logs", "log_id", l.LogID)
	if err != nil {
		return apperrors.WrapStorage("insert log", err)
	}
	if found {
		return dup
	}
	parent, err := r.exists(ctx, "habits", "habit_id", l.HabitID)
	if err != nil {
		return apperrors.WrapStorage("insert log", err)
	}
	if !parent {
		return logParentError(l)
	}

	_, err = r.exec(ctx, r.sb.Insert("logs").
		Columns(logColumns...).
		Values(l.LogID, l.HabitID, formatDate(l.LogDate), string(l.Status), l.Notes))
	return translate("insert log", err, dup, logParentError(l))
}

func (r *repo) UpdateLog(ctx context.Context, l models.Log) error {
	found, err := r.exists(ctx, "logs", "log_id", l.LogID)
	if err != nil {
		return apperrors.WrapStorage("update log", err)
	}
	if !found {
		return &apperrors.NotFoundError{Entity: "log", Key: l.LogID}
	}
	parent, err := r.exists(ctx, "habits", "habit_id", l.HabitID)
	if err != nil {
		return apperrors.WrapStorage("update log", err)
	}
	if !parent {
		return logParentError(l)
	}

	_, err = r.exec(ctx, r.sb.Update("logs").
		Set("habit_id", l.HabitID).
		Set("log_date", formatDate(l.LogDate)).
		Set("status", string(l.Status)).
		Set("notes", l.Notes).
		Where(sq.Eq{"log_id": l.LogID}))
	return translate("update log", err, nil, logParentError(l))
}

func (r *repo) GetLog(ctx context.Context, logID int64) (models.Log, error) {
	var row logRow
	err := r.get(ctx, &row, r.sb.Select(logColumns...).From("logs").Where(sq.Eq{"log_id": logID}))
	if err != nil {
		return models.Log{}, notFound("get log", "log", logID, err)
	}
	return row.model()
}

func logWhere(f storage.LogFilter) sq.Eq {
	where := sq.Eq{}
	if f.HabitID != 0 {
		where["habit_id"] = f.HabitID
	}
	if f.Status != "" {
		where["status"] = string(f.Status)
	}
	return where
}

func (r *repo) ListLogs(ctx context.Context, f storage.LogFilter) ([]models.Log, error) {
	q := r.sb.Select(logColumns...).From("logs").
		Where(logWhere(f)).
		OrderBy("log_date DESC", "log_id DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	var rows []logRow
	if err := r.selectAll(ctx, &rows, q); err != nil {
		return nil, apperrors.WrapStorage("list logs", err)
	}

	logs := make([]models.Log, 0, len(rows))
	for _, row := range rows {
		l, err := row.model()
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (r *repo) CountLogs(ctx context.Context, f storage.LogFilter) (int, error) {
	n, err := r.count(ctx, "logs", logWhere(f))
	if err != nil {
		return 0, apperrors.WrapStorage("count logs", err)
	}
	return n, nil
}
