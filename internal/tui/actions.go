package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/output"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/utils"
	"github.com/julianstephens/habitlog/internal/validation"
)

// formData backs every form field. Each action reads only what its form sets.
type formData struct {
	ID          string
	Owner       string
	Name        string
	Email       string
	Phone       string
	Password    string
	Date        string
	Frequency   models.Frequency
	Status      models.LogStatus
	Description string
	Notes       string
}

// env is what an action needs to run.
type env struct {
	ctx   context.Context
	svc   *tracker.Service
	today time.Time
	out   *output.Printer
}

type action struct {
	title string
	desc  string
	form  func(d *formData, today time.Time) *huh.Form
	run   func(e env, d *formData) error
}

func (a action) Title() string       { return a.title }
func (a action) Description() string { return a.desc }
func (a action) FilterValue() string { return a.title }

func actions() []action {
	return []action{
		{title: "Add customer", desc: "Register a new customer", form: customerForm, run: addCustomer},
		{title: "Add habit", desc: "Start tracking a habit for a customer", form: habitForm, run: addHabit},
		{title: "Add goal", desc: "Set a goal with a deadline", form: goalForm, run: addGoal},
		{title: "Log habit", desc: "Record a day's status for a habit", form: logForm, run: addLog},
		{title: "Mark goal achieved", desc: "Close out a goal", form: idForm("Goal ID"), run: achieveGoal},
		{title: "Completion rate", desc: "Percentage of a habit's logs completed", form: idForm("Habit ID"), run: completionRate},
		{title: "Recent logs", desc: "Latest logs across all habits", run: recentLogs},
		{title: "Customer performance", desc: "Completion summary per customer", run: userReport},
		{title: "Overdue goals", desc: "Unachieved goals past their deadline", run: overdueReport},
	}
}

func positiveID(s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func mustID(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func dateValidator(today time.Time) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		_, err := utils.ParseDate(s, today)
		return err
	}
}

// dateOrToday parses an optional date field, blank meaning today.
func dateOrToday(s string, today time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return today, nil
	}
	return utils.ParseDate(s, today)
}

func idForm(title string) func(*formData, time.Time) *huh.Form {
	return func(d *formData, _ time.Time) *huh.Form {
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().Title(title).Value(&d.ID).Validate(positiveID),
		))
	}
}

func customerForm(d *formData, _ time.Time) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Customer ID").Value(&d.ID).Validate(positiveID),
		huh.NewInput().Title("Name").Value(&d.Name).Validate(func(s string) error {
			return validation.ValidateName("name", s)
		}),
		huh.NewInput().Title("Email").Value(&d.Email).Validate(validation.ValidateEmail),
		huh.NewInput().Title("Phone").Description("10 digits").Value(&d.Phone).Validate(validation.ValidatePhone),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&d.Password),
	))
}

func frequencyOptions() []huh.Option[models.Frequency] {
	opts := make([]huh.Option[models.Frequency], 0, len(models.Frequencies))
	for _, f := range models.Frequencies {
		opts = append(opts, huh.NewOption(string(f), f))
	}
	return opts
}

func statusOptions() []huh.Option[models.LogStatus] {
	opts := make([]huh.Option[models.LogStatus], 0, len(models.Statuses))
	for _, s := range models.Statuses {
		opts = append(opts, huh.NewOption(string(s), s))
	}
	return opts
}

func habitForm(d *formData, today time.Time) *huh.Form {
	if d.Frequency == "" {
		d.Frequency = models.FrequencyDaily
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Habit ID").Value(&d.ID).Validate(positiveID),
		huh.NewInput().Title("Customer ID").Value(&d.Owner).Validate(positiveID),
		huh.NewInput().Title("Name").Value(&d.Name).Validate(func(s string) error {
			return validation.ValidateName("name", s)
		}),
		huh.NewInput().Title("Start date").Description("YYYY-MM-DD or e.g. \"yesterday\", blank for today").
			Value(&d.Date).Validate(dateValidator(today)),
		huh.NewSelect[models.Frequency]().Title("Frequency").Options(frequencyOptions()...).Value(&d.Frequency),
	))
}

func goalForm(d *formData, today time.Time) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Goal ID").Value(&d.ID).Validate(positiveID),
		huh.NewInput().Title("Habit ID").Value(&d.Owner).Validate(positiveID),
		huh.NewInput().Title("Description").Value(&d.Description).Validate(func(s string) error {
			return validation.ValidateName("description", s)
		}),
		huh.NewInput().Title("Deadline").Description("YYYY-MM-DD or e.g. \"in 2 weeks\"").
			Value(&d.Date).Validate(dateValidator(today)),
	))
}

func logForm(d *formData, today time.Time) *huh.Form {
	if d.Status == "" {
		d.Status = models.StatusCompleted
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Log ID").Value(&d.ID).Validate(positiveID),
		huh.NewInput().Title("Habit ID").Value(&d.Owner).Validate(positiveID),
		huh.NewInput().Title("Date").Description("Blank for today").Value(&d.Date).Validate(dateValidator(today)),
		huh.NewSelect[models.LogStatus]().Title("Status").Options(statusOptions()...).Value(&d.Status),
		huh.NewText().Title("Notes").Value(&d.Notes).Validate(validation.ValidateNotes),
	))
}

func addCustomer(e env, d *formData) error {
	c, err := e.svc.AddCustomer(e.ctx, tracker.CustomerInput{
		UserID:   mustID(d.ID),
		Name:     d.Name,
		Email:    d.Email,
		Phone:    d.Phone,
		Password: d.Password,
	})
	if err != nil {
		return err
	}
	e.out.Success("Customer %d (%s) added.", c.UserID, c.Name)
	return nil
}

func addHabit(e env, d *formData) error {
	start, err := dateOrToday(d.Date, e.today)
	if err != nil {
		return err
	}
	h, err := e.svc.AddHabit(e.ctx, tracker.HabitInput{
		HabitID:   mustID(d.ID),
		UserID:    mustID(d.Owner),
		Name:      d.Name,
		StartDate: start,
		Frequency: d.Frequency,
	})
	if err != nil {
		return err
	}
	e.out.Success("Habit %d (%s) added, starting %s.", h.HabitID, h.Name, output.Date(h.StartDate))
	return nil
}

func addGoal(e env, d *formData) error {
	if strings.TrimSpace(d.Date) == "" {
		return fmt.Errorf("a deadline is required")
	}
	deadline, err := utils.ParseDate(d.Date, e.today)
	if err != nil {
		return err
	}
	g, err := e.svc.AddGoal(e.ctx, tracker.GoalInput{
		GoalID:      mustID(d.ID),
		HabitID:     mustID(d.Owner),
		Description: d.Description,
		Deadline:    deadline,
	})
	if err != nil {
		return err
	}
	e.out.Success("Goal %d added, due %s.", g.GoalID, output.Date(g.Deadline))
	return nil
}

func addLog(e env, d *formData) error {
	day, err := dateOrToday(d.Date, e.today)
	if err != nil {
		return err
	}
	l, err := e.svc.AddLog(e.ctx, tracker.LogInput{
		LogID:   mustID(d.ID),
		HabitID: mustID(d.Owner),
		LogDate: day,
		Status:  d.Status,
		Notes:   d.Notes,
	})
	if err != nil {
		return err
	}
	e.out.Success("Log %d recorded for %s (%s).", l.LogID, output.Date(l.LogDate), l.Status)
	return nil
}

func achieveGoal(e env, d *formData) error {
	msg, err := e.svc.MarkGoalAchieved(e.ctx, mustID(d.ID))
	if err != nil {
		return err
	}
	e.out.Success("%s", msg)
	return nil
}

func completionRate(e env, d *formData) error {
	rate, err := e.svc.HabitCompletionRate(e.ctx, mustID(d.ID))
	if err != nil {
		return err
	}
	e.out.Info("Completion rate for habit %s: %s", strings.TrimSpace(d.ID), output.Rate(rate))
	return nil
}

func recentLogs(e env, _ *formData) error {
	logs, err := e.svc.RecentLogs(e.ctx, 0)
	if err != nil {
		return err
	}
	e.out.Table(output.Logs(logs), "No logs found.")
	return nil
}

func userReport(e env, _ *formData) error {
	rows, err := e.svc.UserPerformanceSummary(e.ctx)
	if err != nil {
		return err
	}
	e.out.Table(output.UserPerformance(rows), "No logs recorded yet.")
	return nil
}

func overdueReport(e env, _ *formData) error {
	rows, err := e.svc.OverdueGoals(e.ctx, e.today)
	if err != nil {
		return err
	}
	e.out.Table(output.OverdueGoals(rows), "No overdue goals.")
	return nil
}
