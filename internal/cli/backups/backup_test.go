package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitlog/internal/cli/clitest"
	"github.com/julianstephens/habitlog/internal/tracker"
)

func TestBackupCreateListRestore(t *testing.T) {
	env := clitest.SQLite(t)
	if _, err := env.Service.AddCustomer(env.Ctx, tracker.CustomerInput{
		UserID: 1, Name: "Ada", Email: "ada@example.com", Phone: "5551234567",
	}); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupCreateCmd{}).Run(env.Context); err != nil {
		t.Fatalf("BackupCreateCmd.Run() error = %v", err)
	}
	if !strings.Contains(env.Output(), "Backup created: habitlog-") {
		t.Errorf("unexpected output: %s", env.Output())
	}

	env.Reset()
	if err := (&BackupListCmd{}).Run(env.Context); err != nil {
		t.Fatalf("BackupListCmd.Run() error = %v", err)
	}
	if !strings.Contains(env.Output(), "1 backup(s)") {
		t.Errorf("unexpected output: %s", env.Output())
	}

	mgr, err := env.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backups, err := mgr.List()
	if err != nil || len(backups) != 1 {
		t.Fatalf("List() = %v, %v", backups, err)
	}

	if err := env.Service.DeleteCustomer(env.Ctx, 1); err != nil {
		t.Fatal(err)
	}

	// Declining leaves the database alone.
	env.Answer("no")
	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path)}
	if err := cmd.Run(env.Context); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() error = %v", err)
	}
	if !strings.Contains(env.Output(), "Restore cancelled.") {
		t.Errorf("unexpected output: %s", env.Output())
	}

	env.Reset()
	cmd.Yes = true
	if err := cmd.Run(env.Context); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() error = %v", err)
	}
	if !strings.Contains(env.Output(), "Database restored from") {
		t.Errorf("unexpected output: %s", env.Output())
	}

	if err := env.Store.Load(env.Ctx); err != nil {
		t.Fatalf("Load() after restore error = %v", err)
	}
	c, err := env.Service.GetCustomer(env.Ctx, 1)
	if err != nil {
		t.Fatalf("customer missing after restore: %v", err)
	}
	if c.Name != "Ada" {
		t.Errorf("restored customer = %+v", c)
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	env := clitest.Memory(t)
	if err := (&BackupCreateCmd{}).Run(env.Context); err == nil {
		t.Error("backups should be rejected for memory storage")
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	env := clitest.SQLite(t)
	if err := (&BackupRestoreCmd{BackupFile: "habitlog-19990101-000000.db", Yes: true}).Run(env.Context); err == nil {
		t.Error("restoring a missing backup should fail")
	}
}
