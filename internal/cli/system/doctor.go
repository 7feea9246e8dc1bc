package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*cli.Context) error
	warning bool
}

var checks = []check{
	{name: "Database reachable", run: checkReachable},
	{name: "Schema up to date", run: checkSchema},
	{name: "Data integrity", run: checkIntegrity},
	{name: "Backups present", run: checkBackups, warning: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Out.Info("Running diagnostics on %s", cli.DescribeStore(ctx.Store))

	failed := 0
	reachable := true
	for i, c := range checks {
		if !reachable {
			ctx.Out.Muted("⊘ %s: SKIPPED (database not reachable)", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Out.Success("%s: OK", c.name)
		case c.warning:
			ctx.Out.Muted("⚠ %s: WARNING", c.name)
			ctx.Out.Muted("   %v", err)
		default:
			ctx.Out.Error("%s: FAIL", c.name)
			ctx.Out.Muted("   %v", err)
			failed++
			reachable = i > 0
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func checkReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}
	_, err := ctx.Service.ListCustomers(ctx.Ctx)
	return err
}

func checkSchema(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	switch {
	case current > latest:
		return fmt.Errorf("schema version %d is newer than supported version %d, upgrade habitlog", current, latest)
	case current < latest:
		return fmt.Errorf("schema version %d, latest is %d, run 'habitlog migrate'", current, latest)
	}
	return nil
}

func checkIntegrity(ctx *cli.Context) error {
	ds, err := ctx.Service.Snapshot(ctx.Ctx)
	if err != nil {
		return err
	}
	result := validation.New().Check(ds)
	if result.HasIssues() {
		return errors.New(result.FormatReport())
	}
	return nil
}

func checkBackups(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s, run 'habitlog backup create'", mgr.Dir())
	}
	return nil
}
