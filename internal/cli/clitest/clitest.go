// Package clitest builds command contexts for tests.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/output"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/storage/memory"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
	"github.com/julianstephens/habitlog/internal/tracker"
)

// Now is the fixed clock of every test context: 2024-10-11 09:00 UTC.
var Now = time.Date(2024, 10, 11, 9, 0, 0, 0, time.UTC)

// Env is a command context with captured output.
type Env struct {
	*cli.Context
	Buf *bytes.Buffer
}

// Output returns everything printed so far.
func (e *Env) Output() string { return e.Buf.String() }

// Reset clears captured output.
func (e *Env) Reset() { e.Buf.Reset() }

// Answer queues the reply to the next confirmation prompt.
func (e *Env) Answer(reply string) { e.In = strings.NewReader(reply + "\n") }

// New wraps an initialized store in a context with plain output.
func New(t *testing.T, store storage.Provider) *Env {
	t.Helper()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var buf bytes.Buffer
	settings := config.Default()
	settings.Timezone = "UTC"
	ctx := cli.NewContext(context.Background(), store, settings, output.New(&buf, output.NewTheme(settings.Theme, true)))
	ctx.In = strings.NewReader("")
	ctx.Now = func() time.Time { return Now }
	ctx.Service = tracker.New(store, tracker.WithClock(ctx.Now))
	return &Env{Context: ctx, Buf: &buf}
}

// Memory returns a context over a fresh in-memory store.
func Memory(t *testing.T) *Env {
	return New(t, memory.New(""))
}

// SQLite returns a context over a fresh SQLite file in a temp dir.
func SQLite(t *testing.T) *Env {
	return New(t, sqlite.NewStore(filepath.Join(t.TempDir(), "habitlog.db")))
}
