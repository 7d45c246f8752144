package highscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrCorrupt is wrapped when the file exists but cannot be decoded.
// The accompanying table is empty and safe to use.
var ErrCorrupt = errors.New("high-score file is corrupt")

// FileStore reads and writes a Table as a JSON file. It is safe for
// concurrent use, which matters when many SSH sessions share one file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store for path. A leading ~ expands to the home
// directory. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: expandHome(path)}
}

// DefaultPath returns ~/.snake/highscores.json.
func DefaultPath() string {
	return filepath.Join("~", ".snake", "highscores.json")
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the table. A missing file yields an empty table and no
// error; a corrupt one yields an empty table and an error wrapping
// ErrCorrupt.
func (s *FileStore) Load() (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (Table, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, fmt.Errorf("highscore: failed to read %s: %w", s.path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Table{}, nil
	}

	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("highscore: %s: %w: %v", s.path, ErrCorrupt, err)
	}
	return t.Normalize(), nil
}

// Save writes the table atomically.
func (s *FileStore) Save(t Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(t)
}

func (s *FileStore) save(t Table) error {
	data, err := json.MarshalIndent(t.Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("highscore: cannot encode table: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".highscores-*.json")
	if err != nil {
		return fmt.Errorf("highscore: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close() //nolint:errcheck // already failing
		return fmt.Errorf("highscore: cannot write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("highscore: cannot write %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("highscore: cannot replace %s: %w", s.path, err)
	}
	return nil
}

// Record loads the table, inserts e and saves it if it placed, all under
// one lock. It returns the updated table and the rank (-1 if it missed).
// A corrupt file is replaced.
func (s *FileStore) Record(e Entry) (Table, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load()
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return t, -1, err
	}

	t, rank := t.Insert(e)
	if rank < 0 {
		return t, rank, nil
	}
	if err := s.save(t); err != nil {
		return t, rank, err
	}
	return t, rank, nil
}

// Reset removes all entries.
func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(Table{})
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
