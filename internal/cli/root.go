package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/backup"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/output"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/utils"
)

// Context is bound into every command's Run method.
type Context struct {
	Ctx      context.Context
	Store    storage.Provider
	Service  *tracker.Service
	Settings config.Settings
	Out      *output.Printer
	In       io.Reader
	Now      func() time.Time
}

// NewContext wires a service over store.
func NewContext(ctx context.Context, store storage.Provider, settings config.Settings, out *output.Printer) *Context {
	return &Context{
		Ctx:      ctx,
		Store:    store,
		Service:  tracker.New(store),
		Settings: settings,
		Out:      out,
		In:       os.Stdin,
		Now:      time.Now,
	}
}

// Today is the current calendar day in the configured timezone.
func (c *Context) Today() time.Time {
	loc, err := utils.LoadLocation(c.Settings.Timezone)
	if err != nil {
		loc = time.Local
	}
	return utils.CalendarDay(c.Now().In(loc))
}

// ParseDate resolves a date flag. Empty input means today.
func (c *Context) ParseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return c.Today(), nil
	}
	loc, err := utils.LoadLocation(c.Settings.Timezone)
	if err != nil {
		loc = time.Local
	}
	return utils.ParseDate(s, c.Now().In(loc))
}

// Confirm asks a yes/no question on In. Anything but y/yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Out.Info("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// BackupManager returns the backup manager for SQLite stores.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite storage (current: %s)", c.Store.GetConfigPath())
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup snapshots SQLite stores and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.Create(c.Ctx); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
