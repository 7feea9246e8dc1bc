// Package memory is a map-backed storage provider. With a path it persists
// a JSON snapshot after every committed transaction.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

const snapshotVersion = 1

type snapshot struct {
	Version   int                       `json:"version"`
	Customers map[int64]models.Customer `json:"customers"`
	Habits    map[int64]models.Habit    `json:"habits"`
	Goals     map[int64]models.Goal     `json:"goals"`
	Logs      map[int64]models.Log      `json:"logs"`
}

func newSnapshot() *snapshot {
	return &snapshot{
		Version:   snapshotVersion,
		Customers: make(map[int64]models.Customer),
		Habits:    make(map[int64]models.Habit),
		Goals:     make(map[int64]models.Goal),
		Logs:      make(map[int64]models.Log),
	}
}

func (s *snapshot) ensureMaps() {
	if s.Customers == nil {
		s.Customers = make(map[int64]models.Customer)
	}
	if s.Habits == nil {
		s.Habits = make(map[int64]models.Habit)
	}
	if s.Goals == nil {
		s.Goals = make(map[int64]models.Goal)
	}
	if s.Logs == nil {
		s.Logs = make(map[int64]models.Log)
	}
}

func (s *snapshot) clone() *snapshot {
	c := &snapshot{
		Version:   s.Version,
		Customers: make(map[int64]models.Customer, len(s.Customers)),
		Habits:    make(map[int64]models.Habit, len(s.Habits)),
		Goals:     make(map[int64]models.Goal, len(s.Goals)),
		Logs:      make(map[int64]models.Log, len(s.Logs)),
	}
	for k, v := range s.Customers {
		c.Customers[k] = v
	}
	for k, v := range s.Habits {
		c.Habits[k] = v
	}
	for k, v := range s.Goals {
		c.Goals[k] = v
	}
	for k, v := range s.Logs {
		c.Logs[k] = v
	}
	return c
}

// Store holds every row in memory behind one mutex.
type Store struct {
	mu   sync.Mutex
	path string
	data *snapshot
}

var _ storage.Provider = (*Store)(nil)

// New returns a store. An empty path keeps data in memory only.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		if s.data == nil {
			s.data = newSnapshot()
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.read()
	}

	s.data = newSnapshot()
	return s.save(s.data)
}

func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data != nil {
		return nil
	}
	if s.path == "" {
		s.data = newSnapshot()
		return nil
	}
	return s.read()
}

func (s *Store) read() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("storage not initialized, run 'habitlog init' first")
		}
		return apperrors.WrapStorage("read snapshot", err)
	}

	data := &snapshot{}
	if err := json.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if data.Version > snapshotVersion {
		return fmt.Errorf("snapshot version (%d) is newer than supported version (%d) - please upgrade the application", data.Version, snapshotVersion)
	}
	data.ensureMaps()
	s.data = data
	return nil
}

func (s *Store) save(data *snapshot) error {
	if s.path == "" {
		return nil
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write then rename so a failed write never truncates the snapshot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return apperrors.WrapStorage("write snapshot", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperrors.WrapStorage("write snapshot", err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// Tx runs fn against a private copy of the data and swaps it in only when fn
// and the snapshot write both succeed.
func (s *Store) Tx(ctx context.Context, fn func(storage.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return apperrors.WrapStorage("transaction", fmt.Errorf("storage not loaded"))
	}

	work := s.data.clone()
	if err := fn(&repo{data: work}); err != nil {
		return err
	}
	if err := s.save(work); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) GetConfigPath() string {
	if s.path == "" {
		return "memory"
	}
	return s.path
}
