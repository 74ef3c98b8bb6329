package pageindex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDocumentText(t *testing.T) {
	t.Run("single page", func(t *testing.T) {
		path := writeFile(t, "doc.txt", "all on one page")
		doc, err := LoadDocument(path)
		if err != nil {
			t.Fatal(err)
		}
		if doc.Name != "doc" || doc.PageCount() != 1 {
			t.Errorf("doc = %s with %d pages", doc.Name, doc.PageCount())
		}
	})

	t.Run("form feed pages", func(t *testing.T) {
		path := writeFile(t, "doc.txt", "page one\fpage two\fpage three")
		doc, err := LoadDocument(path)
		if err != nil {
			t.Fatal(err)
		}
		if doc.PageCount() != 3 {
			t.Errorf("PageCount() = %d, want 3", doc.PageCount())
		}
		if doc.Pages[1].Content != "page two" {
			t.Errorf("page 2 = %q", doc.Pages[1].Content)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDocument(filepath.Join(t.TempDir(), "nope.txt"))
		if !errors.Is(err, ErrDocumentNotFound) {
			t.Errorf("expected ErrDocumentNotFound, got %v", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.txt", "   \n  ")
		_, err := LoadDocument(path)
		if !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("expected ErrEmptyDocument, got %v", err)
		}
	})
}

func TestLoadDocumentMarkdown(t *testing.T) {
	content := `Some preamble before any heading.

# First Section

Body of the first section.

## Subsection

More text here.

# Second Section

Final body.`

	path := writeFile(t, "doc.md", content)
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatal(err)
	}

	// Preamble, First Section, Subsection, Second Section.
	if doc.PageCount() != 4 {
		t.Fatalf("PageCount() = %d, want 4", doc.PageCount())
	}
	if got := doc.Pages[1].Content; got == "" || got[0] != '#' {
		t.Errorf("expected page 2 to start with a heading, got %q", got)
	}
}

func TestLoadDocumentMarkdownNoHeadings(t *testing.T) {
	path := writeFile(t, "plain.md", "just a paragraph without headings")
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.PageCount() != 1 {
		t.Errorf("PageCount() = %d, want 1", doc.PageCount())
	}
}

func TestLoadDocumentDelimited(t *testing.T) {
	path := writeFile(t, "doc.txt", "one\n===\ntwo\n===\nthree")
	doc, err := LoadDocumentDelimited(path, "===")
	if err != nil {
		t.Fatal(err)
	}
	if doc.PageCount() != 3 {
		t.Errorf("PageCount() = %d, want 3", doc.PageCount())
	}
	if doc.Path != path {
		t.Errorf("Path = %q, want %q", doc.Path, path)
	}
}
