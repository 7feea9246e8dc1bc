package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/cli/clitest"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/tracker"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seed(t *testing.T, env *clitest.Env) {
	t.Helper()
	svc, ctx := env.Service, env.Ctx
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	for _, c := range []tracker.CustomerInput{
		{UserID: 1, Name: "Ada", Email: "ada@example.com", Phone: "5551234567"},
		{UserID: 2, Name: "Bob", Email: "bob@example.com", Phone: "5557654321"},
	} {
		_, err := svc.AddCustomer(ctx, c)
		must(err)
	}
	for _, h := range []tracker.HabitInput{
		{HabitID: 10, UserID: 1, Name: "Read", StartDate: day("2024-09-01"), Frequency: models.FrequencyDaily},
		{HabitID: 20, UserID: 2, Name: "Run", StartDate: day("2024-09-01"), Frequency: models.FrequencyWeekly},
	} {
		_, err := svc.AddHabit(ctx, h)
		must(err)
	}
	logs := []tracker.LogInput{
		{LogID: 1, HabitID: 10, LogDate: day("2024-09-02"), Status: models.StatusCompleted},
		{LogID: 2, HabitID: 10, LogDate: day("2024-09-03"), Status: models.StatusCompleted},
		{LogID: 3, HabitID: 10, LogDate: day("2024-09-04"), Status: models.StatusCompleted},
		{LogID: 4, HabitID: 20, LogDate: day("2024-09-02"), Status: models.StatusSkipped},
	}
	for _, l := range logs {
		_, err := svc.AddLog(ctx, l)
		must(err)
	}
	_, err := svc.AddGoal(ctx, tracker.GoalInput{GoalID: 100, HabitID: 10, Description: "Finish a book", Deadline: day("2024-10-01")})
	must(err)
}

func TestReports(t *testing.T) {
	env := clitest.Memory(t)
	seed(t, env)

	tests := []struct {
		name    string
		run     func() error
		want    []string
		notWant []string
	}{
		{
			name: "users",
			run:  func() error { return (&ReportUsersCmd{}).Run(env.Context) },
			want: []string{"Ada", "100.00%", "Bob", "0.00%"},
		},
		{
			name: "habits",
			run:  func() error { return (&ReportHabitsCmd{}).Run(env.Context) },
			want: []string{"Read", "Run"},
		},
		{
			name:    "above average",
			run:     func() error { return (&ReportAboveAverageCmd{}).Run(env.Context) },
			want:    []string{"Ada"},
			notWant: []string{"Bob"},
		},
		{
			name: "habits with goals",
			run:  func() error { return (&ReportHabitsGoalsCmd{}).Run(env.Context) },
			want: []string{"Finish a book", "Run", "Weekly"},
		},
		{
			name: "overdue",
			run:  func() error { return (&ReportOverdueCmd{}).Run(env.Context) },
			want: []string{"Finish a book", "10"},
		},
		{
			name:    "overdue as of deadline",
			run:     func() error { return (&ReportOverdueCmd{AsOf: "2024-10-01"}).Run(env.Context) },
			want:    []string{"No overdue goals."},
			notWant: []string{"Finish a book"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.Reset()
			if err := tt.run(); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			out := env.Output()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestReportsEmpty(t *testing.T) {
	env := clitest.Memory(t)
	if err := (&ReportUsersCmd{}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	if err := (&ReportAboveAverageCmd{}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	out := env.Output()
	if !strings.Contains(out, "No logs recorded yet.") || !strings.Contains(out, "No customer is above the average.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
