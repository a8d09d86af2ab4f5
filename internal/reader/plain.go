package reader

import (
	"regexp"
	"strings"
)

// PlainFormat reads UTF-8 text files. It is also the fallback for unknown
// extensions.
type PlainFormat struct{}

func init() {
	Register(&PlainFormat{})
}

func (f *PlainFormat) Name() string         { return "Text" }
func (f *PlainFormat) Extensions() []string { return []string{".txt"} }

func (f *PlainFormat) Extract(filename string) (string, error) {
	return readFile(filename)
}

// chapterRegex matches the chapter lines of typical plain text books, like
// "CHAPTER XII." or "Book 2".
var chapterRegex = regexp.MustCompile(`^(?:CHAPTER|Chapter|BOOK|Book|PART|Part)\s+(?:[IVXLCDM]+|\d+)\b`)

func (f *PlainFormat) Heading(line string) (string, int, bool) {
	line = strings.TrimSpace(line)
	if !chapterRegex.MatchString(line) {
		return "", 0, false
	}
	return line, 0, true
}
