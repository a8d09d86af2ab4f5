package reader

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"
	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// wrapWidth is the width EPUB paragraphs are wrapped to, leaving room for
// the gutter inside NominalWidth.
const wrapWidth = 72

// EPUBFormat implements Format for EPUB files. Spine documents are
// flattened into wrapped paragraphs; headings become "# " lines and
// emphasis uses the underscore convention of plain text books.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }
func (f *EPUBFormat) Extract(filename string) (string, error) {
	return ExtractTextFromEPUB(filename)
}

func (f *EPUBFormat) Heading(line string) (string, int, bool) {
	return (&MarkdownFormat{}).Heading(line)
}

// ExtractTextFromEPUB extracts the text of every spine document of an EPUB
// file.
func ExtractTextFromEPUB(filename string) (string, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return "", fmt.Errorf("no rootfiles found in epub")
	}

	book := rc.Rootfiles[0]
	titles := spineTitles(filename, book)
	var sections []string

	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			log.Debug().Err(err).Str("href", ref.Item.HREF).Msg("skipping unreadable spine item")
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}
		text := extractTextFromHTML(string(data))
		if text == "" {
			continue
		}
		if title, ok := titleFor(titles, ref.Item.HREF); ok && !strings.HasPrefix(text, "#") {
			text = "# " + title + "\n\n" + text
		}
		sections = append(sections, text)
	}

	return strings.Join(sections, "\n\n"), nil
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Blockquote,
		atom.Li, atom.Pre, atom.Tr, atom.Br, atom.Hr, atom.Dt, atom.Dd:
		return true
	}
	return false
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// extractTextFromHTML returns the paragraphs of an XHTML document separated
// by blank lines.
func extractTextFromHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var (
		paragraphs []string
		cur        strings.Builder
	)
	flush := func(prefix string) {
		text := strings.Join(strings.Fields(cur.String()), " ")
		cur.Reset()
		if text == "" {
			return
		}
		if prefix == "" {
			text = ansi.Wordwrap(text, wrapWidth, "")
		}
		paragraphs = append(paragraphs, prefix+text)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Head, atom.Script, atom.Style:
				return
			case atom.Em, atom.I:
				cur.WriteString("_")
				defer cur.WriteString("_")
			}
			if level := headingLevel(n.DataAtom); level > 0 {
				flush("")
				defer flush(strings.Repeat("#", level) + " ")
			} else if isBlock(n.DataAtom) {
				flush("")
				defer flush("")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	flush("")

	return strings.Join(paragraphs, "\n\n")
}
