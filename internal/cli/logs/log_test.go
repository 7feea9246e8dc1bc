package logs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/cli/clitest"
	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/tracker"
)

func seed(t *testing.T, env *clitest.Env) {
	t.Helper()
	if _, err := env.Service.AddCustomer(env.Ctx, tracker.CustomerInput{
		UserID: 1, Name: "Ada", Email: "ada@example.com", Phone: "5551234567",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Service.AddHabit(env.Ctx, tracker.HabitInput{
		HabitID: 10, UserID: 1, Name: "Read", StartDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), Frequency: models.FrequencyDaily,
	}); err != nil {
		t.Fatal(err)
	}
}

func TestLogAdd(t *testing.T) {
	env := clitest.Memory(t)
	seed(t, env)

	if err := (&LogAddCmd{ID: 1, Habit: 10, Status: "completed", Notes: "20 pages"}).Run(env.Context); err != nil {
		t.Fatalf("LogAddCmd.Run() error = %v", err)
	}
	if !strings.Contains(env.Output(), "Log 1 recorded for habit 10 on 2024-10-11 (Completed).") {
		t.Errorf("unexpected output: %s", env.Output())
	}

	// Before the habit started.
	err := (&LogAddCmd{ID: 2, Habit: 10, Date: "2024-09-30", Status: "Completed"}).Run(env.Context)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("early log error = %v, want ErrValidation", err)
	}
	// On the start date.
	if err := (&LogAddCmd{ID: 3, Habit: 10, Date: "2024-10-01", Status: "Skipped"}).Run(env.Context); err != nil {
		t.Errorf("log on the start date should be accepted: %v", err)
	}
	if err := (&LogAddCmd{ID: 4, Habit: 10, Status: "Done"}).Run(env.Context); err == nil {
		t.Error("unknown status should be rejected")
	}
}

func TestLogStatus(t *testing.T) {
	env := clitest.Memory(t)
	seed(t, env)
	if err := (&LogAddCmd{ID: 1, Habit: 10, Status: "Pending"}).Run(env.Context); err != nil {
		t.Fatal(err)
	}

	if err := (&LogStatusCmd{ID: 1, Status: "completed"}).Run(env.Context); err != nil {
		t.Fatalf("LogStatusCmd.Run() error = %v", err)
	}
	if !strings.Contains(env.Output(), "Log 1 is now Completed.") {
		t.Errorf("unexpected output: %s", env.Output())
	}
	if err := (&LogStatusCmd{ID: 99, Status: "Completed"}).Run(env.Context); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("missing log error = %v, want ErrNotFound", err)
	}
}

func TestLogListLimits(t *testing.T) {
	env := clitest.Memory(t)
	seed(t, env)
	for i := 1; i <= 5; i++ {
		date := fmt.Sprintf("2024-10-%02d", i+1)
		if err := (&LogAddCmd{ID: int64(i), Habit: 10, Date: date, Status: "Completed"}).Run(env.Context); err != nil {
			t.Fatal(err)
		}
	}

	env.Reset()
	if err := (&LogListCmd{Limit: 2}).Run(env.Context); err != nil {
		t.Fatalf("LogListCmd.Run() error = %v", err)
	}
	out := env.Output()
	if !strings.Contains(out, "2024-10-06") || !strings.Contains(out, "2024-10-05") || strings.Contains(out, "2024-10-04") {
		t.Errorf("limit 2 should show the two newest logs:\n%s", out)
	}

	env.Reset()
	env.Settings.RecentLogLimit = 3
	if err := (&LogListCmd{}).Run(env.Context); err != nil {
		t.Fatalf("LogListCmd.Run() error = %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "2024-10-04") || strings.Contains(out, "2024-10-03") {
		t.Errorf("settings limit 3 not applied:\n%s", out)
	}

	env.Reset()
	if err := (&LogListCmd{Habit: 10}).Run(env.Context); err != nil {
		t.Fatalf("LogListCmd.Run() error = %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "2024-10-02") {
		t.Errorf("habit filter should list every log:\n%s", out)
	}
}
