package pageindex

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/saransh09/pageindex/internal/llm"
)

// Relevance grades how strongly a section matches a query.
type Relevance int

const (
	RelevanceLow Relevance = iota
	RelevanceMedium
	RelevanceHigh
)

// Score returns the numeric rank used for ordering: high 3, medium 2, low 1.
func (r Relevance) Score() int {
	switch r {
	case RelevanceHigh:
		return 3
	case RelevanceMedium:
		return 2
	default:
		return 1
	}
}

func (r Relevance) String() string {
	switch r {
	case RelevanceHigh:
		return "high"
	case RelevanceMedium:
		return "medium"
	default:
		return "low"
	}
}

// ParseRelevance maps a model-produced label to a grade. Unknown labels
// degrade to low rather than failing the search.
func ParseRelevance(s string) Relevance {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return RelevanceHigh
	case "medium":
		return RelevanceMedium
	default:
		return RelevanceLow
	}
}

// MarshalJSON emits the lowercase label.
func (r Relevance) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts any case; unknown labels become low.
func (r *Relevance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRelevance(s)
	return nil
}

// SearchResult is one section the model judged relevant to a query.
type SearchResult struct {
	Title      string    `json:"title"`
	StartIndex int       `json:"start_index"`
	EndIndex   int       `json:"end_index"`
	Relevance  Relevance `json:"relevance"`
	Reason     string    `json:"reason,omitempty"`
	// Content holds the section text when requested, marker lines removed.
	Content string `json:"content,omitempty"`
}

// SearchOptions controls result filtering and truncation.
type SearchOptions struct {
	// TopK limits the number of results returned. Zero means 10.
	TopK int
	// MinRelevance drops results graded below it.
	MinRelevance Relevance
}

// DefaultSearchOptions returns the default search configuration.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{TopK: 10, MinRelevance: RelevanceLow}
}

// TreeSearcher runs reasoning-based retrieval over a tree index.
type TreeSearcher struct {
	client  Completer
	options SearchOptions
}

// NewTreeSearcher creates a searcher with default options.
func NewTreeSearcher(client Completer) *TreeSearcher {
	return &TreeSearcher{client: client, options: DefaultSearchOptions()}
}

// NewTreeSearcherWithOptions creates a searcher with explicit options.
func NewTreeSearcherWithOptions(client Completer, options SearchOptions) *TreeSearcher {
	if options.TopK <= 0 {
		options.TopK = 10
	}
	return &TreeSearcher{client: client, options: options}
}

// Search serializes the tree, asks the model which sections answer the
// query, and returns the filtered, ranked results.
func (ts *TreeSearcher) Search(ctx context.Context, tree *DocumentTree, query string) ([]SearchResult, error) {
	structure, err := tree.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("serializing tree %q: %w", tree.Name, err)
	}

	prompt := fmt.Sprintf(TreeSearchPrompt, structure, query)
	response, err := ts.client.Complete(ctx, SystemDocumentAnalyzer, prompt)
	if err != nil {
		return nil, err
	}

	results, err := parseSearchResponse(response)
	if err != nil {
		return nil, err
	}

	return ts.rank(results), nil
}

// SearchWithContent runs Search and attaches each result's page content
// sliced from the document.
func (ts *TreeSearcher) SearchWithContent(ctx context.Context, tree *DocumentTree, doc *Document, query string) ([]SearchResult, error) {
	results, err := ts.Search(ctx, tree, query)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Content = ExtractContent(doc, results[i].StartIndex, results[i].EndIndex)
	}
	return results, nil
}

// rank filters by minimum relevance, orders by grade (stable, so ties keep
// the model's ordering), and truncates to TopK.
func (ts *TreeSearcher) rank(results []SearchResult) []SearchResult {
	filtered := results[:0:0]
	for _, r := range results {
		if r.Relevance >= ts.options.MinRelevance {
			filtered = append(filtered, r)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Relevance.Score() > filtered[j].Relevance.Score()
	})
	if len(filtered) > ts.options.TopK {
		filtered = filtered[:ts.options.TopK]
	}
	return filtered
}

func parseSearchResponse(response string) ([]SearchResult, error) {
	payload := llm.ExtractJSON(response)

	var parsed struct {
		RelevantSections []SearchResult `json:"relevant_sections"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, unparsable(response, fmt.Errorf("parsing relevant_sections: %w", err))
	}
	return parsed.RelevantSections, nil
}

// ExtractContent returns the text of pages start through end, with the
// page marker lines removed. An out-of-range span yields an empty string.
func ExtractContent(doc *Document, start, end int) string {
	var b strings.Builder
	for page := start; page <= end; page++ {
		p := doc.GetPage(page)
		if p == nil {
			continue
		}
		for _, line := range strings.Split(p.Content, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), markerPrefix) {
				continue
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String())
}
