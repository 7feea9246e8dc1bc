package backup

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitlog/internal/constants"
)

// setupTestDB creates a minimal habitlog-shaped database with two customers.
func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitlog.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE schema_version (version INTEGER NOT NULL)`,
		`INSERT INTO schema_version (version) VALUES (1)`,
		`CREATE TABLE customers (user_id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
		`INSERT INTO customers (user_id, name) VALUES (1, 'Ada'), (2, 'Bob')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to prepare test database: %v", err)
		}
	}
	return dbPath
}

// steppingClock advances one second per call so each backup gets its own name.
func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}

func countCustomers(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM customers").Scan(&n); err != nil {
		t.Fatalf("failed to count customers in %s: %v", path, err)
	}
	return n
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = func() time.Time { return time.Date(2024, 9, 1, 10, 30, 0, 0, time.Local) }

	backupPath, err := mgr.Create(context.Background())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if filepath.Base(backupPath) != "habitlog-20240901-103000.db" {
		t.Errorf("unexpected backup name %s", filepath.Base(backupPath))
	}
	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written outside the backup dir: %s", backupPath)
	}
	if n := countCustomers(t, backupPath); n != 2 {
		t.Errorf("expected 2 customers in backup, got %d", n)
	}
}

func TestCreateWithoutDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))

	_, err := mgr.Create(context.Background())
	if err == nil || !strings.Contains(err.Error(), "database does not exist") {
		t.Fatalf("Create() error = %v, want missing database", err)
	}
	if _, statErr := os.Stat(mgr.Dir()); !os.IsNotExist(statErr) {
		t.Error("backup dir should not be created when the database is missing")
	}
}

func TestRotation(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = steppingClock(time.Date(2024, 9, 1, 8, 0, 0, 0, time.Local))

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.Create(context.Background()); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i].Timestamp.Before(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}

	newest := time.Date(2024, 9, 1, 8, 0, constants.MaxBackups+4, 0, time.Local)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, newest)
	}
}

func TestUniqueNamesWithinOneSecond(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	fixed := time.Date(2024, 9, 1, 8, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := make(map[string]bool)
	for i := 0; i < 12; i++ {
		path, err := mgr.Create(context.Background())
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		name := filepath.Base(path)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got := filepath.Base(backups[0].Path); got != "habitlog-20240901-080000-11.db" {
		t.Errorf("newest backup = %s, want the highest counter", got)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	mgr := NewManager(setupTestDB(t))

	backups, err := mgr.List()
	if err != nil || len(backups) != 0 {
		t.Fatalf("List() on missing dir = %v, %v", backups, err)
	}

	if _, err := mgr.Create(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "habitlog-bad.db", "habitlog-20240901-080000-x.db", "other-20240901-080000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup size is 0")
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		wantSeq int
		wantOK  bool
	}{
		{"habitlog-20240901-080000.db", 0, true},
		{"habitlog-20240901-080000-3.db", 3, true},
		{"habitlog-20240901-080000-0.db", 0, false},
		{"habitlog-20240901.db", 0, false},
		{"otherapp-20240901-080000.db", 0, false},
		{"habitlog-20240901-080000.sqlite", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, seq, ok := parseName(tt.name)
			if ok != tt.wantOK || seq != tt.wantSeq {
				t.Errorf("parseName(%q) = (%d, %v), want (%d, %v)", tt.name, seq, ok, tt.wantSeq, tt.wantOK)
			}
		})
	}
}

func TestVerifyFile(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(setupTestDB(t))

	backupPath, err := mgr.Create(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := verifyFile(ctx, backupPath); err != nil {
		t.Errorf("verifyFile failed for valid backup: %v", err)
	}

	invalid := filepath.Join(mgr.Dir(), "invalid.db")
	if err := os.WriteFile(invalid, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := verifyFile(ctx, invalid); err == nil {
		t.Error("verifyFile should fail for a non-database file")
	}

	foreign := filepath.Join(t.TempDir(), "foreign.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE tasks (id TEXT)"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if err := verifyFile(ctx, foreign); err == nil || !strings.Contains(err.Error(), "schema_version") {
		t.Errorf("verifyFile() error = %v, want schema_version complaint", err)
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 9, 1, 8, 0, 0, 0, time.Local))

	backupPath, err := mgr.Create(ctx)
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO customers (user_id, name) VALUES (3, 'Cy')"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	saved, err := mgr.Restore(ctx, backupPath)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if n := countCustomers(t, dbPath); n != 2 {
		t.Errorf("expected 2 customers after restore, got %d", n)
	}
	if saved == "" {
		t.Fatal("Restore should save the current database first")
	}
	if n := countCustomers(t, saved); n != 3 {
		t.Errorf("pre-restore backup should hold 3 customers, got %d", n)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(ctx, filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("Restore should fail for a missing backup")
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(ctx, corrupt); err == nil || !strings.Contains(err.Error(), "corrupted or invalid") {
		t.Errorf("Restore() error = %v, want corrupted backup", err)
	}

	if n := countCustomers(t, dbPath); n != 2 {
		t.Errorf("failed restore changed the database: %d customers", n)
	}
	backups, _ := mgr.List()
	if len(backups) != 0 {
		t.Errorf("failed restore should not create backups, got %d", len(backups))
	}
}
