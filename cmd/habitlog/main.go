package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/cli/backups"
	"github.com/julianstephens/habitlog/internal/cli/customers"
	"github.com/julianstephens/habitlog/internal/cli/goals"
	"github.com/julianstephens/habitlog/internal/cli/habits"
	"github.com/julianstephens/habitlog/internal/cli/logs"
	"github.com/julianstephens/habitlog/internal/cli/reports"
	"github.com/julianstephens/habitlog/internal/cli/system"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/constants"
	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/output"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite path, PostgreSQL URL, .json snapshot or memory: store." env:"HABITLOG_DB"`
	Settings string `help:"Settings file path." type:"path" env:"HABITLOG_SETTINGS"`
	Debug    bool   `help:"Enable debug logging to stderr."`
	NoColor  bool   `help:"Disable colored output." name:"no-color"`

	Init     system.InitCmd        `cmd:"" help:"Initialize habitlog storage."`
	Migrate  system.MigrateCmd     `cmd:"" help:"Apply pending database migrations."`
	Doctor   system.DoctorCmd      `cmd:"" help:"Run health checks on storage and data integrity."`
	Tui      system.TuiCmd         `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Customer customers.CustomerCmd `cmd:"" help:"Manage customers."`
	Habit    habits.HabitCmd       `cmd:"" help:"Manage habits."`
	Goal     goals.GoalCmd         `cmd:"" help:"Manage goals."`
	Log      logs.LogCmd           `cmd:"" help:"Record and list habit logs."`
	Report   reports.ReportCmd     `cmd:"" help:"Performance reports."`
	Backup   backups.BackupCmd     `cmd:"" help:"Manage SQLite backups."`
	Keyring  system.KeyringCmd     `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track customers, their habits, goals and daily logs."),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: config.ConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	settingsPath := CLI.Settings
	if settingsPath == "" {
		settingsPath = config.DefaultSettingsPath()
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		exit(err)
	}

	theme := output.NewTheme(settings.Theme, !output.ColorEnabled(os.Stdout, CLI.NoColor))
	out := output.New(os.Stdout, theme)

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		exit(err)
	}
	defer store.Close()

	appCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if needsLoadedStore(kctx.Command()) {
		if err := store.Load(appCtx); err != nil {
			exit(err)
		}
	}

	logger.Debug("Running command", "command", kctx.Command(), "store", cli.DescribeStore(store))
	if err := kctx.Run(cli.NewContext(appCtx, store, settings, out)); err != nil {
		store.Close()
		exit(err)
	}
}

// needsLoadedStore is false for commands that create the storage, probe it
// themselves, or never touch it.
func needsLoadedStore(command string) bool {
	switch {
	case command == "init", command == "doctor", strings.HasPrefix(command, "keyring"):
		return false
	}
	return true
}

func exit(err error) {
	logger.Error("Command failed", "error", err)
	fmt.Fprintf(os.Stderr, "Error: %s\n", apperrors.Format(err))
	os.Exit(1)
}
