package pageindex

import (
	"encoding/json"
	"strconv"
	"strings"
)

// markerPrefix is the page-boundary marker convention the LLM echoes back
// when reporting a section's starting page.
const markerPrefix = "<physical_index_"

// PageRef is a section descriptor's page reference, resolved once at
// ingestion. The LLM may report the page as a bare integer or as a
// "<physical_index_N>" marker string; downstream code only ever sees the
// resolved value.
type PageRef struct {
	page     int
	resolved bool
}

// Page returns the resolved page number and whether resolution succeeded.
func (r PageRef) Page() (int, bool) {
	return r.page, r.resolved
}

// UnmarshalJSON resolves either representation. An unparsable value leaves
// the reference unresolved rather than failing; a single bad descriptor
// must not abort tree construction.
func (r *PageRef) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = PageRef{page: n, resolved: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.HasPrefix(s, markerPrefix) {
			s = strings.TrimSuffix(strings.TrimPrefix(s, markerPrefix), ">")
		}
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*r = PageRef{page: n, resolved: true}
			return nil
		}
	}

	*r = PageRef{}
	return nil
}

// MarshalJSON emits the resolved page number, or null when unresolved.
func (r PageRef) MarshalJSON() ([]byte, error) {
	if !r.resolved {
		return []byte("null"), nil
	}
	return json.Marshal(r.page)
}

// RawTOCItem is a flat section descriptor as returned by the LLM, before
// tree construction. This is the untrusted boundary type.
type RawTOCItem struct {
	// Structure is the dotted hierarchical index (e.g. "1.2.3"), empty
	// when the LLM reported none.
	Structure string `json:"structure,omitempty"`
	// Title is the section title.
	Title string `json:"title"`
	// PhysicalIndex is the section's starting page.
	PhysicalIndex PageRef `json:"physical_index,omitempty"`
}

// UnmarshalJSON accepts the page reference under either "physical_index" or
// "page", matching the two shapes the structure-extraction prompts produce.
func (item *RawTOCItem) UnmarshalJSON(data []byte) error {
	var aux struct {
		Structure     string   `json:"structure"`
		Title         string   `json:"title"`
		PhysicalIndex *PageRef `json:"physical_index"`
		Page          *PageRef `json:"page"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	item.Structure = aux.Structure
	item.Title = aux.Title
	switch {
	case aux.PhysicalIndex != nil && aux.PhysicalIndex.resolved:
		item.PhysicalIndex = *aux.PhysicalIndex
	case aux.Page != nil:
		item.PhysicalIndex = *aux.Page
	}
	return nil
}

// structureDepth parses the dotted structure code and returns its depth,
// or 0 when the code is empty or not a dotted-numeral sequence.
func structureDepth(structure string) int {
	if structure == "" {
		return 0
	}
	parts := strings.Split(structure, ".")
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			return 0
		}
	}
	return len(parts)
}

// BuildTree converts a flat, ordered list of section descriptors into a
// nested tree with closed page ranges.
//
// Each node's range runs from its resolved start page to one before the
// next descriptor's start page, never below its own start; the last
// descriptor extends to totalPages. An unresolved page reference defaults
// to page 1. Hierarchy placement follows the structure codes: a
// single-element code starts a new root, a longer code attaches to the
// most recently added node one level up. A depth jump (e.g. "1" directly
// to "1.1.1") attaches to the deepest available ancestor rather than
// failing. Descriptors without a structure code become new roots.
//
// After placement every parent's end page is widened to cover its
// children, bottom-up.
func BuildTree(items []RawTOCItem, totalPages int) []*TreeNode {
	if len(items) == 0 {
		return nil
	}

	starts := make([]int, len(items))
	for i, item := range items {
		page, ok := item.PhysicalIndex.Page()
		if !ok {
			page = 1
		}
		starts[i] = page
	}

	var roots []*TreeNode
	// stack holds the current path of most-recently-added nodes, one per
	// depth level.
	var stack []*TreeNode

	for i, item := range items {
		end := totalPages
		if i < len(items)-1 {
			end = starts[i+1] - 1
		}
		if end < starts[i] {
			end = starts[i]
		}

		node := NewTreeNode(item.Title, starts[i], end)
		node.Structure = item.Structure

		depth := structureDepth(item.Structure)
		if depth <= 1 {
			roots = append(roots, node)
			stack = stack[:0]
			stack = append(stack, node)
			continue
		}

		// Attach to the deepest available ancestor at most one level up.
		parentIdx := depth - 1
		if parentIdx > len(stack) {
			parentIdx = len(stack)
		}
		if parentIdx == 0 {
			roots = append(roots, node)
			stack = stack[:0]
			stack = append(stack, node)
			continue
		}
		stack[parentIdx-1].AddChild(node)
		stack = append(stack[:parentIdx], node)
	}

	for _, root := range roots {
		fixEndIndices(root)
	}

	return roots
}

// fixEndIndices widens each parent's end page to cover its children,
// bottom-up. The LLM commonly reports accurate start pages for leaves but
// under-estimates a parent's extent.
func fixEndIndices(node *TreeNode) {
	for _, c := range node.Children {
		fixEndIndices(c)
	}
	for _, c := range node.Children {
		if c.EndIndex > node.EndIndex {
			node.EndIndex = c.EndIndex
		}
	}
}
