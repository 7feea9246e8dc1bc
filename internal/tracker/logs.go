package tracker

import (
	"context"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/validation"
)

type LogInput struct {
	LogID   int64
	HabitID int64
	LogDate time.Time
	Status  models.LogStatus
	Notes   string
}

// AddLog records a habit log. The habit lookup, date check and insert share
// one transaction, so a rejected log leaves no trace.
func (s *Service) AddLog(ctx context.Context, in LogInput) (models.Log, error) {
	l := models.Log{
		LogID:   in.LogID,
		HabitID: in.HabitID,
		LogDate: validation.Day(in.LogDate),
		Status:  in.Status,
		Notes:   in.Notes,
	}

	err := validation.ValidateID("log_id", l.LogID)
	if err == nil {
		err = validation.ValidateStatus(l.Status)
	}
	if err == nil {
		err = validation.ValidateNotes(l.Notes)
	}
	if err == nil {
		err = s.store.Tx(ctx, func(r storage.Repository) error {
			h, err := r.GetHabit(ctx, l.HabitID)
			if err != nil {
				return unknownHabit("log", l.LogID, l.HabitID, err)
			}
			if err := validation.ValidateLogDate(l.LogDate, h.StartDate); err != nil {
				return err
			}
			return r.InsertLog(ctx, l)
		})
	}
	if err := record("Add log", err, "log_id", l.LogID, "habit_id", l.HabitID, "log_date", l.LogDate.Format(constants.DateFormat)); err != nil {
		return models.Log{}, err
	}
	return l, nil
}

// UpdateLogStatus changes only the status of an existing log.
func (s *Service) UpdateLogStatus(ctx context.Context, logID int64, status models.LogStatus) (models.Log, error) {
	var updated models.Log
	err := validation.ValidateStatus(status)
	if err == nil {
		err = s.store.Tx(ctx, func(r storage.Repository) error {
			l, err := r.GetLog(ctx, logID)
			if err != nil {
				return err
			}
			l.Status = status
			updated = l
			return r.UpdateLog(ctx, l)
		})
	}
	if err := record("Update log status", err, "log_id", logID, "status", status); err != nil {
		return models.Log{}, err
	}
	return updated, nil
}

// RecentLogs returns up to limit logs across all habits, newest first.
// A non-positive limit uses the default of 50.
func (s *Service) RecentLogs(ctx context.Context, limit int) ([]models.LogView, error) {
	if limit <= 0 {
		limit = constants.DefaultRecentLogLimit
	}
	return s.listLogs(ctx, storage.LogFilter{Limit: limit})
}

// LogsForHabit returns every log of one habit, newest first.
func (s *Service) LogsForHabit(ctx context.Context, habitID int64) ([]models.LogView, error) {
	var views []models.LogView
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		if _, err := r.GetHabit(ctx, habitID); err != nil {
			return err
		}
		var err error
		views, err = logViews(ctx, r, storage.LogFilter{HabitID: habitID})
		return err
	})
	return views, err
}

func (s *Service) listLogs(ctx context.Context, f storage.LogFilter) ([]models.LogView, error) {
	var views []models.LogView
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		var err error
		views, err = logViews(ctx, r, f)
		return err
	})
	return views, err
}

func logViews(ctx context.Context, r storage.Repository, f storage.LogFilter) ([]models.LogView, error) {
	logs, err := r.ListLogs(ctx, f)
	if err != nil {
		return nil, err
	}
	names, err := habitNames(ctx, r)
	if err != nil {
		return nil, err
	}
	views := make([]models.LogView, 0, len(logs))
	for _, l := range logs {
		views = append(views, models.LogView{Log: l, HabitName: names[l.HabitID]})
	}
	return views, nil
}
