package goals

import (
	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/output"
	"github.com/julianstephens/habitlog/internal/tracker"
)

type GoalCmd struct {
	List    GoalListCmd    `cmd:"" help:"List goals." default:"1"`
	Add     GoalAddCmd     `cmd:"" help:"Add a goal to a habit."`
	Achieve GoalAchieveCmd `cmd:"" help:"Mark a goal as achieved."`
}

type GoalListCmd struct {
	Habit int64 `help:"Only goals of this habit."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	goals, err := ctx.Service.ListGoals(ctx.Ctx, c.Habit)
	if err != nil {
		return err
	}
	ctx.Out.Table(output.Goals(goals), "No goals found.")
	return nil
}

type GoalAddCmd struct {
	ID          int64  `arg:"" help:"Goal ID."`
	Habit       int64  `help:"Habit ID." required:""`
	Description string `short:"d" help:"What the goal is." required:""`
	Deadline    string `help:"Deadline (YYYY-MM-DD or e.g. \"in 2 weeks\")." required:""`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	deadline, err := ctx.ParseDate(c.Deadline)
	if err != nil {
		return err
	}
	goal, err := ctx.Service.AddGoal(ctx.Ctx, tracker.GoalInput{
		GoalID:      c.ID,
		HabitID:     c.Habit,
		Description: c.Description,
		Deadline:    deadline,
	})
	if err != nil {
		return err
	}
	ctx.Out.Success("Goal %d added, due %s.", goal.GoalID, output.Date(goal.Deadline))
	return nil
}

type GoalAchieveCmd struct {
	ID int64 `arg:"" help:"Goal ID."`
}

func (c *GoalAchieveCmd) Run(ctx *cli.Context) error {
	msg, err := ctx.Service.MarkGoalAchieved(ctx.Ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.Out.Success("%s", msg)
	return nil
}
