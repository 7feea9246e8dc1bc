package goals

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/cli/clitest"
	"github.com/julianstephens/habitlog/internal/tracker"
)

func TestGoalLifecycle(t *testing.T) {
	env := clitest.Memory(t)
	if _, err := env.Service.AddCustomer(env.Ctx, tracker.CustomerInput{
		UserID: 1, Name: "Ada", Email: "ada@example.com", Phone: "5551234567",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Service.AddHabit(env.Ctx, tracker.HabitInput{
		HabitID: 10, UserID: 1, Name: "Read", StartDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), Frequency: "Daily",
	}); err != nil {
		t.Fatal(err)
	}

	if err := (&GoalAddCmd{ID: 100, Habit: 10, Description: "Finish a book", Deadline: "2024-11-30"}).Run(env.Context); err != nil {
		t.Fatalf("GoalAddCmd.Run() error = %v", err)
	}
	if !strings.Contains(env.Output(), "Goal 100 added, due 2024-11-30.") {
		t.Errorf("unexpected output: %s", env.Output())
	}

	env.Reset()
	if err := (&GoalListCmd{Habit: 10}).Run(env.Context); err != nil {
		t.Fatalf("GoalListCmd.Run() error = %v", err)
	}
	for _, want := range []string{"Finish a book", "Read", "2024-11-30"} {
		if !strings.Contains(env.Output(), want) {
			t.Errorf("list missing %q:\n%s", want, env.Output())
		}
	}

	env.Reset()
	if err := (&GoalAchieveCmd{ID: 100}).Run(env.Context); err != nil {
		t.Fatalf("GoalAchieveCmd.Run() error = %v", err)
	}
	if err := (&GoalAchieveCmd{ID: 100}).Run(env.Context); err != nil {
		t.Fatalf("second GoalAchieveCmd.Run() error = %v", err)
	}
	out := env.Output()
	if !strings.Contains(out, "Goal 100 marked as achieved.") || !strings.Contains(out, "Goal 100 is already marked as achieved.") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestGoalAddRequiresHabit(t *testing.T) {
	env := clitest.Memory(t)
	if err := (&GoalAddCmd{ID: 100, Habit: 10, Description: "Orphan", Deadline: "2024-11-30"}).Run(env.Context); err == nil {
		t.Error("goal for a missing habit should be rejected")
	}
}
