package reader

import "github.com/metcalfc/booklet/internal/markup"

// Chapter marks a heading line of the document.
type Chapter struct {
	Title string
	Line  int
	Level int
}

// FindChapters returns a chapter for every line f recognizes as a heading.
func FindChapters(lines []string, f Format) []Chapter {
	var chapters []Chapter
	for i, line := range lines {
		if title, level, ok := f.Heading(markup.Strip(line)); ok {
			chapters = append(chapters, Chapter{Title: title, Line: i, Level: level})
		}
	}
	return chapters
}
