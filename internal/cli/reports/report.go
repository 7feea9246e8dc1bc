package reports

import (
	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/output"
)

type ReportCmd struct {
	Users        ReportUsersCmd        `cmd:"" help:"Per-customer performance summary." default:"1"`
	Habits       ReportHabitsCmd       `cmd:"" help:"Per-habit performance."`
	AboveAverage ReportAboveAverageCmd `cmd:"" name:"above-average" help:"Customers completing more than the average habit."`
	HabitsGoals  ReportHabitsGoalsCmd  `cmd:"" name:"habits-goals" help:"Every habit with its goals."`
	Overdue      ReportOverdueCmd      `cmd:"" help:"Unachieved goals past their deadline."`
}

type ReportUsersCmd struct{}

func (c *ReportUsersCmd) Run(ctx *cli.Context) error {
	rows, err := ctx.Service.UserPerformanceSummary(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.Out.Table(output.UserPerformance(rows), "No logs recorded yet.")
	return nil
}

type ReportHabitsCmd struct{}

func (c *ReportHabitsCmd) Run(ctx *cli.Context) error {
	rows, err := ctx.Service.HabitPerformanceReport(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.Out.Table(output.HabitPerformance(rows), "No logs recorded yet.")
	return nil
}

type ReportAboveAverageCmd struct{}

func (c *ReportAboveAverageCmd) Run(ctx *cli.Context) error {
	rows, err := ctx.Service.UsersAboveAverage(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.Out.Table(output.UserCompletions(rows), "No customer is above the average.")
	return nil
}

type ReportHabitsGoalsCmd struct{}

func (c *ReportHabitsGoalsCmd) Run(ctx *cli.Context) error {
	rows, err := ctx.Service.HabitsWithGoals(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.Out.Table(output.HabitGoals(rows), "No habits found.")
	return nil
}

type ReportOverdueCmd struct {
	AsOf string `name:"as-of" help:"Reference day (YYYY-MM-DD or natural language). Defaults to today."`
}

func (c *ReportOverdueCmd) Run(ctx *cli.Context) error {
	today, err := ctx.ParseDate(c.AsOf)
	if err != nil {
		return err
	}
	rows, err := ctx.Service.OverdueGoals(ctx.Ctx, today)
	if err != nil {
		return err
	}
	ctx.Out.Table(output.OverdueGoals(rows), "No overdue goals.")
	return nil
}
