// Package state remembers the last viewed line of every document the user
// opened.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	appName       = "booklet"
	stateFileName = "reading_positions.json"
	hashBytes     = 8192 // First 8KB for content hash

	// maxEntries bounds the file; the least recently updated positions
	// are forgotten first.
	maxEntries = 500
)

// Position is the saved reading position of one document.
type Position struct {
	Line    int       `json:"line"`
	Updated time.Time `json:"updated"`
}

// Store manages persistent reading positions keyed by DocumentKey.
type Store struct {
	path string
	data map[string]Position
	mu   sync.RWMutex
	now  func() time.Time
}

// Dir returns XDG_STATE_HOME/booklet or ~/.local/state/booklet.
func Dir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appName)
}

// Open creates dir if needed and loads the positions saved in it. An
// unreadable file is logged and replaced on the next save.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	s := &Store{
		path: filepath.Join(dir, stateFileName),
		data: make(map[string]Position),
		now:  time.Now,
	}
	if err := s.load(); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("ignoring reading positions")
		s.data = make(map[string]Position)
	}
	return s, nil
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentKey identifies a document by the hash of its first bytes, so a
// renamed or moved book keeps its position.
func DocumentKey(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, hashBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}

	hash := sha256.Sum256(buf[:n])
	return hex.EncodeToString(hash[:16]), nil
}

// Line returns the saved line for key, or 0.
func (s *Store) Line(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key].Line
}

// SetLine saves line for key.
func (s *Store) SetLine(key string, line int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = Position{Line: max(0, line), Updated: s.now().UTC()}
	s.prune()
	return s.save()
}

// Clear forgets key.
func (s *Store) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.save()
}

func (s *Store) prune() {
	if len(s.data) <= maxEntries {
		return
	}
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return s.data[a].Updated.Compare(s.data[b].Updated)
	})
	for _, k := range keys[:len(keys)-maxEntries] {
		delete(s.data, k)
	}
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write reading positions: %w", err)
	}
	return nil
}
