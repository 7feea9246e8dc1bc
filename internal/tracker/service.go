// Package tracker is the habit domain service. It owns the business rules
// (log date validation, goal achievement, completion rates, reports) and
// performs every read and write through a storage.Provider transaction.
package tracker

import (
	"context"
	"math"
	"time"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/validation"
)

// Service is safe to share between adapters; all state lives in the store.
type Service struct {
	store storage.Provider
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for created_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the provider the service was built with.
func (s *Service) Store() storage.Provider {
	return s.store
}

// Snapshot reads all four relations for integrity checks.
func (s *Service) Snapshot(ctx context.Context) (validation.Dataset, error) {
	var ds validation.Dataset
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		var err error
		if ds.Customers, err = r.ListCustomers(ctx); err != nil {
			return err
		}
		if ds.Habits, err = r.ListHabits(ctx, storage.HabitFilter{}); err != nil {
			return err
		}
		if ds.Goals, err = r.ListGoals(ctx, storage.GoalFilter{}); err != nil {
			return err
		}
		ds.Logs, err = r.ListLogs(ctx, storage.LogFilter{})
		return err
	})
	return ds, err
}

// record logs the outcome of a mutation and passes err through.
func record(msg string, err error, keyvals ...interface{}) error {
	switch {
	case err == nil:
		logger.Info(msg, keyvals...)
	case apperrors.IsDomain(err):
		logger.Warn(msg+" rejected", append(keyvals, "error", err)...)
	default:
		logger.Error(msg+" failed", append(keyvals, "error", err)...)
	}
	return err
}

// percent returns 100*part/whole rounded to two decimals, or 0 when whole is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(100*float64(part)/float64(whole)*100) / 100
}
