package reader

import (
	"os"
	"path/filepath"
	"strings"
)

// Format extracts plain text from a file type and recognizes its chapter
// headings.
type Format interface {
	Name() string
	Extensions() []string
	Extract(filename string) (string, error)
	// Heading reports whether a visible line starts a chapter.
	Heading(line string) (title string, level int, ok bool)
}

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// FormatFor returns the registered format for the extension of filename,
// falling back to plain text.
func FormatFor(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return &PlainFormat{}
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}

func readFile(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
