package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if s, ok := ctx.Store.(*sqlite.Store); ok {
		s.MigrationLog = func(msg string) { ctx.Out.Muted("%s", msg) }
	}
	if err := ctx.Store.Init(ctx.Ctx); err != nil {
		return err
	}
	ctx.Out.Success("Initialized storage: %s", cli.DescribeStore(ctx.Store))
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force only supports SQLite storage")
	}
	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Out.Muted("Deleted existing database at %s", path)
	return nil
}
