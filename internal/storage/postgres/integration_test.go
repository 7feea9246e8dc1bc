package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

// TestStore_Integration runs against a real server.
// Example: POSTGRES_TEST_URL="postgres://habitlog_user@localhost:5432/habitlog_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	ctx := context.Background()
	store := New(connStr)
	require.NoError(t, store.Init(ctx))
	defer store.Close()

	// Fresh rows per run; ids derive from the clock so reruns don't collide.
	base := time.Now().UnixNano() % 1_000_000_000
	userID, habitID, goalID, logID := base, base+1, base+2, base+3
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("insert and read back", func(t *testing.T) {
		err := store.Tx(ctx, func(r storage.Repository) error {
			if err := r.InsertCustomer(ctx, models.Customer{
				UserID: userID, Name: "Integration", Email: "it@example.com", Phone: "5550000000", CreatedAt: time.Now(),
			}); err != nil {
				return err
			}
			if err := r.InsertHabit(ctx, models.Habit{
				HabitID: habitID, UserID: userID, Name: "Read", StartDate: start, Frequency: models.FrequencyWeekly, IsActive: true,
			}); err != nil {
				return err
			}
			if err := r.InsertGoal(ctx, models.Goal{GoalID: goalID, HabitID: habitID, Description: "10 books", Deadline: start.AddDate(0, 3, 0)}); err != nil {
				return err
			}
			return r.InsertLog(ctx, models.Log{LogID: logID, HabitID: habitID, LogDate: start.AddDate(0, 0, 1), Status: models.StatusCompleted})
		})
		require.NoError(t, err)

		require.NoError(t, store.Tx(ctx, func(r storage.Repository) error {
			h, err := r.GetHabit(ctx, habitID)
			require.NoError(t, err)
			assert.Equal(t, start, h.StartDate)

			l, err := r.GetLog(ctx, logID)
			require.NoError(t, err)
			assert.Equal(t, start.AddDate(0, 0, 1), l.LogDate)
			return nil
		}))
	})

	t.Run("delete rules", func(t *testing.T) {
		err := store.Tx(ctx, func(r storage.Repository) error { return r.DeleteHabit(ctx, habitID) })
		require.ErrorIs(t, err, apperrors.ErrConstraintViolation)

		require.NoError(t, store.Tx(ctx, func(r storage.Repository) error {
			g, err := r.GetGoal(ctx, goalID)
			if err != nil {
				return err
			}
			g.IsAchieved = true
			if err := r.UpdateGoal(ctx, g); err != nil {
				return err
			}
			if err := r.DeleteHabit(ctx, habitID); err != nil {
				return err
			}
			return r.DeleteCustomer(ctx, userID)
		}))
	})
}
