package reader

import (
	"testing"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"book.txt", "Text"},
		{"BOOK.TXT", "Text"},
		{"notes.md", "Markdown"},
		{"notes.markdown", "Markdown"},
		{"novel.epub", "EPUB"},
		{"README", "Text"},
		{"data.csv", "Text"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := FormatFor(tt.filename).Name(); got != tt.want {
				t.Errorf("FormatFor(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	if len(formats) == 0 {
		t.Error("no formats registered")
	}
	for _, f := range formats {
		if f == "EPUB (.epub)" {
			return
		}
	}
	t.Errorf("EPUB not registered: %v", formats)
}

func TestPlainHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"CHAPTER I.", true},
		{"  CHAPTER XIV. Down the Rabbit-Hole", true},
		{"Chapter 3", true},
		{"BOOK II", true},
		{"PART 1", true},
		{"Chapters of a life", false},
		{"CHAPTERS", false},
		{"The chapter ends.", false},
	}

	f := &PlainFormat{}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if _, _, ok := f.Heading(tt.line); ok != tt.want {
				t.Errorf("Heading(%q) = %v, want %v", tt.line, ok, tt.want)
			}
		})
	}
}
