package logs

import (
	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/output"
	"github.com/julianstephens/habitlog/internal/tracker"
)

type LogCmd struct {
	List   LogListCmd   `cmd:"" help:"List logs, newest first." default:"1"`
	Add    LogAddCmd    `cmd:"" help:"Record a habit log."`
	Status LogStatusCmd `cmd:"" help:"Change a log's status."`
}

type LogListCmd struct {
	Habit int64 `help:"Only logs of this habit."`
	Limit int   `short:"n" help:"Maximum number of logs across all habits. Defaults to recent_log_limit from settings."`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	var (
		logs []models.LogView
		err  error
	)
	if c.Habit != 0 {
		logs, err = ctx.Service.LogsForHabit(ctx.Ctx, c.Habit)
	} else {
		limit := c.Limit
		if limit <= 0 {
			limit = ctx.Settings.RecentLogLimit
		}
		logs, err = ctx.Service.RecentLogs(ctx.Ctx, limit)
	}
	if err != nil {
		return err
	}
	ctx.Out.Table(output.Logs(logs), "No logs found.")
	return nil
}

type LogAddCmd struct {
	ID     int64  `arg:"" help:"Log ID."`
	Habit  int64  `help:"Habit ID." required:""`
	Date   string `short:"d" help:"Log date (YYYY-MM-DD or e.g. \"yesterday\"). Defaults to today."`
	Status string `short:"s" help:"Completed, Pending or Skipped." default:"Completed"`
	Notes  string `help:"Optional notes."`
}

func (c *LogAddCmd) Run(ctx *cli.Context) error {
	status, err := models.ParseStatus(c.Status)
	if err != nil {
		return err
	}
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	log, err := ctx.Service.AddLog(ctx.Ctx, tracker.LogInput{
		LogID:   c.ID,
		HabitID: c.Habit,
		LogDate: date,
		Status:  status,
		Notes:   c.Notes,
	})
	if err != nil {
		return err
	}
	ctx.Out.Success("Log %d recorded for habit %d on %s (%s).", log.LogID, log.HabitID, output.Date(log.LogDate), log.Status)
	return nil
}

type LogStatusCmd struct {
	ID     int64  `arg:"" help:"Log ID."`
	Status string `arg:"" help:"Completed, Pending or Skipped."`
}

func (c *LogStatusCmd) Run(ctx *cli.Context) error {
	status, err := models.ParseStatus(c.Status)
	if err != nil {
		return err
	}
	log, err := ctx.Service.UpdateLogStatus(ctx.Ctx, c.ID, status)
	if err != nil {
		return err
	}
	ctx.Out.Success("Log %d is now %s.", log.LogID, log.Status)
	return nil
}
