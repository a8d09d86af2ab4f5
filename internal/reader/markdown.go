package reader

import (
	"regexp"
	"strings"
)

// MarkdownFormat implements Format for Markdown files. The text is shown as
// written; only headers are interpreted, as chapters.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

func (f *MarkdownFormat) Extract(filename string) (string, error) {
	return readFile(filename)
}

// headerRegex matches markdown headers (# to ######)
var headerRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// Heading reports h1 as level 0, h2 as level 1 and so on.
func (f *MarkdownFormat) Heading(line string) (string, int, bool) {
	match := headerRegex.FindStringSubmatch(line)
	if match == nil {
		return "", 0, false
	}
	return strings.TrimSpace(match[2]), len(match[1]) - 1, true
}
