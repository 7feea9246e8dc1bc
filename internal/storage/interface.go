package storage

import (
	"context"

	"github.com/julianstephens/habitlog/internal/models"
)

// Provider is a storage backend. Every read and write goes through Tx.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	// Tx runs fn atomically. Any error returned by fn rolls back all of its writes.
	Tx(ctx context.Context, fn func(Repository) error) error

	// Utils
	GetConfigPath() string
}

// Repository is the per-relation contract visible inside a transaction.
//
// Inserts fail with DuplicateKeyError on an existing key and with
// ReferentialIntegrityError when the parent row is missing. Gets, updates
// and deletes of a missing row fail with NotFoundError.
type Repository interface {
	// Customers
	InsertCustomer(ctx context.Context, c models.Customer) error
	UpdateCustomer(ctx context.Context, c models.Customer) error
	// DeleteCustomer fails with ConstraintViolation while the customer owns habits.
	DeleteCustomer(ctx context.Context, userID int64) error
	GetCustomer(ctx context.Context, userID int64) (models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)

	// Habits
	InsertHabit(ctx context.Context, h models.Habit) error
	// DeleteHabit fails with ConstraintViolation while the habit has an
	// unachieved goal. Otherwise its goals and logs are removed with it.
	DeleteHabit(ctx context.Context, habitID int64) error
	GetHabit(ctx context.Context, habitID int64) (models.Habit, error)
	ListHabits(ctx context.Context, f HabitFilter) ([]models.Habit, error)

	// Goals
	InsertGoal(ctx context.Context, g models.Goal) error
	UpdateGoal(ctx context.Context, g models.Goal) error
	GetGoal(ctx context.Context, goalID int64) (models.Goal, error)
	ListGoals(ctx context.Context, f GoalFilter) ([]models.Goal, error)

	// Logs
	InsertLog(ctx context.Context, l models.Log) error
	UpdateLog(ctx context.Context, l models.Log) error
	GetLog(ctx context.Context, logID int64) (models.Log, error)
	// ListLogs returns logs newest first (log_date, then log_id, descending).
	ListLogs(ctx context.Context, f LogFilter) ([]models.Log, error)
	CountLogs(ctx context.Context, f LogFilter) (int, error)
}

// HabitFilter narrows ListHabits. Zero values match everything.
type HabitFilter struct {
	UserID int64
}

// GoalFilter narrows ListGoals. Zero values match everything.
type GoalFilter struct {
	HabitID        int64
	OnlyUnachieved bool
}

// LogFilter narrows ListLogs and CountLogs. Zero values match everything.
// Limit is ignored by CountLogs.
type LogFilter struct {
	HabitID int64
	Status  models.LogStatus
	Limit   int
}

// Match reports whether h passes the filter.
func (f HabitFilter) Match(h models.Habit) bool {
	return f.UserID == 0 || h.UserID == f.UserID
}

// Match reports whether g passes the filter.
func (f GoalFilter) Match(g models.Goal) bool {
	if f.HabitID != 0 && g.HabitID != f.HabitID {
		return false
	}
	return !f.OnlyUnachieved || !g.IsAchieved
}

// Match reports whether l passes the filter, ignoring Limit.
func (f LogFilter) Match(l models.Log) bool {
	if f.HabitID != 0 && l.HabitID != f.HabitID {
		return false
	}
	return f.Status == "" || l.Status == f.Status
}
