package system

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return fmt.Errorf("migrate is not supported for %s", cli.DescribeStore(ctx.Store))
	}

	count, err := m.Migrate(func(msg string) { ctx.Out.Muted("%s", msg) })
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if count == 0 {
		ctx.Out.Info("No migrations to apply. Database is up to date.")
		return nil
	}
	ctx.Out.Success("Applied %d migration(s).", count)
	return nil
}
