package reader

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	Label    navLabel   `xml:"navLabel"`
	Content  navContent `xml:"content"`
	Children []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// spineTitles maps spine document hrefs to their table of contents labels.
// A book without a readable NCX yields an empty map.
func spineTitles(filename string, book *epub.Rootfile) map[string]string {
	data, err := findAndReadNCX(filename, book)
	if err != nil {
		return map[string]string{}
	}
	titles, err := parseNCXTitles(data)
	if err != nil {
		return map[string]string{}
	}
	return titles
}

// parseNCXTitles returns the first label pointing at each document. Both
// the href as written and its base name are keys, fragments removed.
func parseNCXTitles(data []byte) (map[string]string, error) {
	var toc ncx
	if err := xml.Unmarshal(data, &toc); err != nil {
		return nil, fmt.Errorf("failed to parse NCX: %w", err)
	}

	titles := make(map[string]string)
	add := func(key, title string) {
		if _, ok := titles[key]; !ok {
			titles[key] = title
		}
	}

	var walk func([]navPoint)
	walk = func(points []navPoint) {
		for _, np := range points {
			title := strings.TrimSpace(np.Label.Text)
			href, _, _ := strings.Cut(np.Content.Src, "#")
			if title != "" && href != "" {
				add(href, title)
				add(path.Base(href), title)
			}
			walk(np.Children)
		}
	}
	walk(toc.NavMap.NavPoints)

	return titles, nil
}

func titleFor(titles map[string]string, href string) (string, bool) {
	if t, ok := titles[href]; ok {
		return t, true
	}
	t, ok := titles[path.Base(href)]
	return t, ok
}

func findAndReadNCX(filename string, book *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range book.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}

	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX file found in EPUB")
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || strings.HasSuffix(f.Name, "/"+ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}

	return nil, fmt.Errorf("NCX file %s not found in archive", ncxPath)
}
