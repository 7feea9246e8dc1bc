package habits

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/output"
	"github.com/julianstephens/habitlog/internal/tracker"
)

type HabitCmd struct {
	List   HabitListCmd   `cmd:"" help:"List habits." default:"1"`
	Add    HabitAddCmd    `cmd:"" help:"Add a habit for a customer."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its logs."`
	Rate   HabitRateCmd   `cmd:"" help:"Show a habit's completion rate."`
}

type HabitListCmd struct {
	User int64 `short:"u" help:"Only habits of this customer."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Service.ListHabits(ctx.Ctx, c.User)
	if err != nil {
		return err
	}
	ctx.Out.Table(output.Habits(habits), "No habits found.")
	return nil
}

type HabitAddCmd struct {
	ID        int64  `arg:"" help:"Habit ID."`
	User      int64  `short:"u" help:"Owning customer ID." required:""`
	Name      string `short:"n" help:"Habit name." required:""`
	Start     string `short:"s" help:"Start date (YYYY-MM-DD or e.g. \"yesterday\"). Defaults to today."`
	Frequency string `short:"f" help:"Daily, Weekly or Monthly." default:"Daily"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	freq, err := models.ParseFrequency(c.Frequency)
	if err != nil {
		return err
	}
	start, err := ctx.ParseDate(c.Start)
	if err != nil {
		return err
	}

	habit, err := ctx.Service.AddHabit(ctx.Ctx, tracker.HabitInput{
		HabitID:   c.ID,
		UserID:    c.User,
		Name:      c.Name,
		StartDate: start,
		Frequency: freq,
	})
	if err != nil {
		return err
	}
	ctx.Out.Success("Habit %d (%s) added, starting %s.", habit.HabitID, habit.Name, output.Date(habit.StartDate))
	return nil
}

type HabitDeleteCmd struct {
	ID  int64 `arg:"" help:"Habit ID."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete habit %d with its achieved goals and all logs?", c.ID))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Out.Muted("Delete cancelled.")
			return nil
		}
	}
	if err := ctx.Service.DeleteHabit(ctx.Ctx, c.ID); err != nil {
		return err
	}
	ctx.Out.Success("Habit %d deleted.", c.ID)
	return nil
}

type HabitRateCmd struct {
	ID int64 `arg:"" help:"Habit ID."`
}

func (c *HabitRateCmd) Run(ctx *cli.Context) error {
	rate, err := ctx.Service.HabitCompletionRate(ctx.Ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.Out.Info("Completion rate for habit %d: %s", c.ID, output.Rate(rate))
	return nil
}
