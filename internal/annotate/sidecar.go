package annotate

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

// sidecarPrefix is prepended to the document name to name its sidecar.
const sidecarPrefix = ".booklet_"

// ErrFormat is returned for a sidecar file that cannot be decoded.
var ErrFormat = errors.New("malformed annotation file")

// Record is the on-disk form of the annotations.
type Record struct {
	Bookmarks []int    `toml:"bookmarks"`
	Markers   [][3]int `toml:"markers"`
	FocusMode *bool    `toml:"focus_mode,omitempty"`
}

func (r Record) validate() error {
	for _, b := range r.Bookmarks {
		if b < 0 {
			return fmt.Errorf("negative bookmark %d", b)
		}
	}
	for _, m := range r.Markers {
		if m[0] < 0 || m[1] < 0 || m[2] < 0 {
			return fmt.Errorf("negative marker %v", m)
		}
		if m[1] > m[2] {
			return fmt.Errorf("marker %v ends before it starts", m)
		}
	}
	return nil
}

// SidecarPath returns the annotation file of a document: a hidden file next
// to it named after it.
func SidecarPath(document string) string {
	dir, name := filepath.Split(document)
	return filepath.Join(dir, sidecarPrefix+name)
}

// Sidecar reads and writes the annotation file of one document.
type Sidecar struct {
	path string
}

// NewSidecar returns the sidecar of document.
func NewSidecar(document string) *Sidecar {
	return &Sidecar{path: SidecarPath(document)}
}

// Path returns the sidecar file path.
func (s *Sidecar) Path() string {
	return s.path
}

// Load reads the record. A missing file yields an empty record.
func (s *Sidecar) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if _, err := toml.Decode(string(data), &rec); err != nil {
		return Record{}, fmt.Errorf("%s: %w: %w", s.path, ErrFormat, err)
	}
	if err := rec.validate(); err != nil {
		return Record{}, fmt.Errorf("%s: %w: %w", s.path, ErrFormat, err)
	}
	return rec, nil
}

// Save overwrites the file with rec.
func (s *Sidecar) Save(rec Record) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(rec); err != nil {
		return fmt.Errorf("encode annotations: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write annotations: %w", err)
	}

	log.Debug().
		Str("path", s.path).
		Int("bookmarks", len(rec.Bookmarks)).
		Int("markers", len(rec.Markers)).
		Msg("annotations saved")
	return nil
}
