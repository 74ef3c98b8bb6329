package pageindex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// LoadDocument reads a document from path, splitting it into pages by
// format. PDFs keep their physical pages, markdown splits at top-level
// headings, and plain text becomes one page per form feed (or a single
// page when none are present).
func LoadDocument(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("document %q: %w", path, ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var (
		pages []string
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		pages, err = pdfPages(path)
	case ".md", ".markdown":
		pages, err = markdownPages(path)
	default:
		pages, err = textPages(path)
	}
	if err != nil {
		return nil, err
	}

	doc := &Document{Name: name, Path: path}
	for _, content := range pages {
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		doc.AddPage(content)
	}
	if doc.PageCount() == 0 {
		return nil, fmt.Errorf("document %q: %w", path, ErrEmptyDocument)
	}
	return doc, nil
}

// LoadDocumentDelimited reads a text file and splits it into pages on a
// custom delimiter.
func LoadDocumentDelimited(path, delimiter string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("document %q: %w", path, ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc := FromTextDelimited(name, string(data), delimiter)
	doc.Path = path
	if doc.PageCount() == 0 {
		return nil, fmt.Errorf("document %q: %w", path, ErrEmptyDocument)
	}
	return doc, nil
}

func textPages(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return strings.Split(string(data), "\f"), nil
}

func pdfPages(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %q: %w", path, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, content)
	}
	return pages, nil
}

// markdownPages splits a markdown file at level-1 and level-2 headings so
// each major section gets its own page. Content before the first heading
// becomes the first page.
func markdownPages(path string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var cuts []int
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		heading, ok := child.(*ast.Heading)
		if !ok || heading.Level > 2 {
			continue
		}
		if heading.Lines().Len() == 0 {
			continue
		}
		start := heading.Lines().At(0).Start
		// Back up to the start of the heading line to keep the markers.
		for start > 0 && src[start-1] != '\n' {
			start--
		}
		cuts = append(cuts, start)
	}

	if len(cuts) == 0 {
		return []string{string(src)}, nil
	}

	var pages []string
	if cuts[0] > 0 {
		pages = append(pages, string(src[:cuts[0]]))
	}
	for i, start := range cuts {
		end := len(src)
		if i+1 < len(cuts) {
			end = cuts[i+1]
		}
		pages = append(pages, string(src[start:end]))
	}
	return pages, nil
}
