package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles habitlog once into dir, or uses HABITLOG_BIN_DIR when set.
func buildBinary(t *testing.T, dir string) string {
	t.Helper()
	name := "habitlog"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	if binDir := os.Getenv("HABITLOG_BIN_DIR"); binDir != "" {
		path := filepath.Join(binDir, name)
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("CLI binary not found at %s: %v", path, err)
		}
		return path
	}

	path := filepath.Join(dir, name)
	out, err := exec.Command("go", "build", "-o", path, ".").CombinedOutput()
	if err != nil {
		t.Skipf("cannot build habitlog: %v\n%s", err, out)
	}
	return path
}

func isolatedEnv(tempDir string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_") || strings.HasPrefix(e, "HABITLOG_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		"HOME="+tempDir,
		"XDG_CONFIG_HOME="+filepath.Join(tempDir, ".config"),
		"XDG_DATA_HOME="+filepath.Join(tempDir, ".local", "share"),
		"HABITLOG_DB="+filepath.Join(tempDir, "habitlog.db"),
		"HABITLOG_SETTINGS="+filepath.Join(tempDir, "config.yaml"),
		"NO_COLOR=1",
	)
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command habitlog %v failed: %v\nOutput: %s", args, err, out)
	}
	return string(out)
}

func runFailing(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("Command habitlog %v should have failed\nOutput: %s", args, out)
	}
	return string(out)
}

func TestEndToEndWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end workflow in short mode")
	}
	tempDir := t.TempDir()
	bin := buildBinary(t, tempDir)
	env := isolatedEnv(tempDir)

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"init"}, "Initialized storage: SQLite"},
		{[]string{"customer", "add", "1", "-n", "Ada", "-e", "ada@example.com", "-p", "5551234567"}, "Customer 1 (Ada) added."},
		{[]string{"habit", "add", "10", "-u", "1", "-n", "Read", "-s", "2024-01-01"}, "Habit 10 (Read) added, starting 2024-01-01."},
		{[]string{"log", "add", "100", "--habit", "10", "-d", "2024-01-02"}, "Log 100 recorded for habit 10 on 2024-01-02 (Completed)."},
		{[]string{"log", "add", "101", "--habit", "10", "-d", "2024-01-03", "-s", "skipped"}, "(Skipped)"},
		{[]string{"log", "add", "102", "--habit", "10", "-d", "2024-01-04", "-s", "pending"}, "(Pending)"},
		{[]string{"habit", "rate", "10"}, "Completion rate for habit 10: 33.33%"},
		{[]string{"goal", "add", "1000", "--habit", "10", "-d", "Read 12 books", "--deadline", "2024-02-01"}, "Goal 1000 added, due 2024-02-01."},
		{[]string{"report", "overdue", "--as-of", "2024-02-11"}, "Read 12 books"},
		{[]string{"goal", "achieve", "1000"}, "Goal 1000 marked as achieved."},
		{[]string{"goal", "achieve", "1000"}, "Goal 1000 is already marked as achieved."},
		{[]string{"report", "overdue", "--as-of", "2024-02-11"}, "No overdue goals."},
		{[]string{"report", "users"}, "Ada"},
		{[]string{"backup", "create"}, "Backup created: habitlog-"},
		{[]string{"doctor"}, "Data integrity: OK"},
	}
	for _, step := range steps {
		out := runCmd(t, bin, env, step.args...)
		if !strings.Contains(out, step.want) {
			t.Errorf("habitlog %v: output missing %q\n%s", step.args, step.want, out)
		}
	}

	// Logs before the habit's start date are rejected and leave nothing behind.
	out := runFailing(t, bin, env, "log", "add", "103", "--habit", "10", "-d", "2023-12-31")
	if !strings.Contains(out, "Error:") {
		t.Errorf("expected an error message, got:\n%s", out)
	}
	out = runCmd(t, bin, env, "log", "list", "--habit", "10")
	if strings.Contains(out, "2023-12-31") {
		t.Errorf("rejected log was stored:\n%s", out)
	}

	// Customers with habits cannot be deleted.
	runFailing(t, bin, env, "customer", "delete", "1", "-y")
	out = runCmd(t, bin, env, "customer", "list")
	if !strings.Contains(out, "ada@example.com") {
		t.Errorf("customer missing after failed delete:\n%s", out)
	}
}
