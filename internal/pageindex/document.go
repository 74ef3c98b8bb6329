package pageindex

import (
	"fmt"
	"strings"
)

// Page is a single page in a document.
type Page struct {
	// Number is the 1-indexed page number.
	Number int `json:"number"`
	// Content is the text content of the page.
	Content string `json:"content"`
	// TokenCount is an approximate token count (words / 0.75). It is a
	// hint for chunking decisions, not authoritative.
	TokenCount int `json:"token_count"`
}

// NewPage creates a page with its token count estimated from the content.
func NewPage(number int, content string) Page {
	return Page{
		Number:     number,
		Content:    content,
		TokenCount: EstimateTokens(content),
	}
}

// WithIndexTags formats the page content wrapped in physical index markers
// for LLM processing.
func (p Page) WithIndexTags() string {
	return fmt.Sprintf("<physical_index_%d>\n%s\n<physical_index_%d>\n\n", p.Number, p.Content, p.Number)
}

// Document is an ordered sequence of pages. Page numbers are contiguous
// starting at 1. Documents are constructed once and immutable thereafter.
type Document struct {
	// Name is the document name or title.
	Name string `json:"name"`
	// Path is the original file path, empty when built from raw text.
	Path string `json:"path,omitempty"`
	// Pages holds the document pages in order.
	Pages []Page `json:"pages"`
}

// NewDocument creates a document from pre-built pages.
func NewDocument(name string, pages []Page) *Document {
	return &Document{Name: name, Pages: pages}
}

// FromText creates a single-page document from raw text.
func FromText(name, content string) *Document {
	return &Document{Name: name, Pages: []Page{NewPage(1, content)}}
}

// FromTextDelimited creates a document by splitting content on a page
// delimiter. Empty segments are dropped.
func FromTextDelimited(name, content, delimiter string) *Document {
	d := &Document{Name: name}
	for _, part := range strings.Split(content, delimiter) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d.AddPage(part)
	}
	return d
}

// AddPage appends a page with the next sequential number.
func (d *Document) AddPage(content string) {
	d.Pages = append(d.Pages, NewPage(len(d.Pages)+1, content))
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// TotalTokens returns the estimated token count across all pages.
func (d *Document) TotalTokens() int {
	total := 0
	for _, p := range d.Pages {
		total += p.TokenCount
	}
	return total
}

// GetPage returns the page with the given 1-indexed number, or nil when out
// of range.
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return &d.Pages[number-1]
}

// ContentWithTags returns all page content concatenated, each page wrapped
// in its physical index markers.
func (d *Document) ContentWithTags() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		sb.WriteString(p.WithIndexTags())
	}
	return sb.String()
}

// ContentRange returns the tagged content for pages in [start, end]
// inclusive. Pages outside the document are simply absent from the result.
func (d *Document) ContentRange(start, end int) string {
	var sb strings.Builder
	for _, p := range d.Pages {
		if p.Number >= start && p.Number <= end {
			sb.WriteString(p.WithIndexTags())
		}
	}
	return sb.String()
}

// RawContent returns the untagged document text.
func (d *Document) RawContent() string {
	parts := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		parts[i] = p.Content
	}
	return strings.Join(parts, "\n\n")
}

// EstimateTokens approximates the token count of text as words / 0.75,
// rounded down.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	return int(float64(words) / 0.75)
}
