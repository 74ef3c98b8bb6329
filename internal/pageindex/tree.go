package pageindex

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TreeNode represents one section of a document: its title, inclusive page
// range, and subsections.
type TreeNode struct {
	Title string `json:"title"`
	// Structure is the hierarchical index (e.g. "1", "1.2.3"), when known.
	Structure string `json:"structure,omitempty"`
	// StartIndex is the starting page (1-indexed).
	StartIndex int `json:"start_index"`
	// EndIndex is the ending page (1-indexed, inclusive).
	EndIndex int `json:"end_index"`
	// Children holds the subsections in document order.
	Children []*TreeNode `json:"nodes,omitempty"`
	// Summary is an optional LLM-generated section summary.
	Summary string `json:"summary,omitempty"`
	// Verified reports whether the title was confirmed on the start page.
	Verified bool `json:"verified,omitempty"`
	// NodeID is an optional stable identifier for reference.
	NodeID string `json:"node_id,omitempty"`
}

// NewTreeNode creates a node with the given title and page range.
func NewTreeNode(title string, startIndex, endIndex int) *TreeNode {
	return &TreeNode{Title: title, StartIndex: startIndex, EndIndex: endIndex}
}

// AddChild appends a subsection.
func (n *TreeNode) AddChild(child *TreeNode) {
	n.Children = append(n.Children, child)
}

// HasChildren reports whether the node has subsections.
func (n *TreeNode) HasChildren() bool {
	return len(n.Children) > 0
}

// PageSpan returns the number of pages covered by the node.
func (n *TreeNode) PageSpan() int {
	if n.EndIndex < n.StartIndex {
		return 0
	}
	return n.EndIndex - n.StartIndex + 1
}

// NodeCount counts the node and all descendants.
func (n *TreeNode) NodeCount() int {
	count := 1
	for _, c := range n.Children {
		count += c.NodeCount()
	}
	return count
}

// Walk traverses the subtree in pre-order, calling fn for each node.
func (n *TreeNode) Walk(fn func(*TreeNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Leaves returns all nodes without children, left to right.
func (n *TreeNode) Leaves() []*TreeNode {
	if len(n.Children) == 0 {
		return []*TreeNode{n}
	}
	var leaves []*TreeNode
	for _, c := range n.Children {
		leaves = append(leaves, c.Leaves()...)
	}
	return leaves
}

// FindByTitle returns the first node whose title matches case-insensitively,
// searching in pre-order.
func (n *TreeNode) FindByTitle(title string) *TreeNode {
	if strings.EqualFold(n.Title, title) {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindByTitle(title); found != nil {
			return found
		}
	}
	return nil
}

// Clone creates a deep copy of the subtree.
func (n *TreeNode) Clone() *TreeNode {
	if n == nil {
		return nil
	}
	clone := *n
	if n.Children != nil {
		clone.Children = make([]*TreeNode, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = c.Clone()
		}
	}
	return &clone
}

// formatTree renders the subtree indented one level per depth.
func (n *TreeNode) formatTree(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	if n.Structure != "" {
		sb.WriteString(n.Structure)
		sb.WriteString(" ")
	}
	fmt.Fprintf(sb, "%s [pages %d-%d]\n", n.Title, n.StartIndex, n.EndIndex)
	for _, c := range n.Children {
		c.formatTree(sb, indent+1)
	}
}

// DocumentTree is the persisted unit: a named tree of sections over a
// document of TotalPages pages. The tree owns its nodes exclusively; it is
// read-only after construction except for summary annotation.
type DocumentTree struct {
	Name        string      `json:"name"`
	Nodes       []*TreeNode `json:"nodes"`
	TotalPages  int         `json:"total_pages"`
	Description string      `json:"description,omitempty"`
}

// NewDocumentTree creates a tree over the given root nodes.
func NewDocumentTree(name string, nodes []*TreeNode, totalPages int) *DocumentTree {
	return &DocumentTree{Name: name, Nodes: nodes, TotalPages: totalPages}
}

// NodeCount returns the total number of nodes in the tree.
func (t *DocumentTree) NodeCount() int {
	count := 0
	for _, n := range t.Nodes {
		count += n.NodeCount()
	}
	return count
}

// MaxDepth returns the longest root-to-leaf chain, 0 for an empty tree.
func (t *DocumentTree) MaxDepth() int {
	var depth func(*TreeNode) int
	depth = func(n *TreeNode) int {
		deepest := 0
		for _, c := range n.Children {
			if d := depth(c); d > deepest {
				deepest = d
			}
		}
		return 1 + deepest
	}

	maxDepth := 0
	for _, n := range t.Nodes {
		if d := depth(n); d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// FindByTitle returns the first node matching the title case-insensitively,
// in pre-order across root nodes.
func (t *DocumentTree) FindByTitle(title string) *TreeNode {
	for _, n := range t.Nodes {
		if found := n.FindByTitle(title); found != nil {
			return found
		}
	}
	return nil
}

// Leaves returns all leaf nodes across the tree, left to right.
func (t *DocumentTree) Leaves() []*TreeNode {
	var leaves []*TreeNode
	for _, n := range t.Nodes {
		leaves = append(leaves, n.Leaves()...)
	}
	return leaves
}

// Walk traverses every node in pre-order.
func (t *DocumentTree) Walk(fn func(*TreeNode)) {
	for _, n := range t.Nodes {
		n.Walk(fn)
	}
}

// Clone creates a deep copy of the tree.
func (t *DocumentTree) Clone() *DocumentTree {
	clone := *t
	if t.Nodes != nil {
		clone.Nodes = make([]*TreeNode, len(t.Nodes))
		for i, n := range t.Nodes {
			clone.Nodes[i] = n.Clone()
		}
	}
	return &clone
}

// Format renders the tree for terminal display.
func (t *DocumentTree) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Document: %s (%d pages, %d sections)\n", t.Name, t.TotalPages, t.NodeCount())
	sb.WriteString(strings.Repeat("─", 50))
	sb.WriteString("\n")
	for _, n := range t.Nodes {
		n.formatTree(&sb, 0)
	}
	return sb.String()
}

// ToJSON serializes the tree as indented JSON.
func (t *DocumentTree) ToJSON() (string, error) {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing tree: %w", err)
	}
	return string(b), nil
}

// TreeFromJSON parses a tree from its JSON form.
func TreeFromJSON(data string) (*DocumentTree, error) {
	var tree DocumentTree
	if err := json.Unmarshal([]byte(data), &tree); err != nil {
		return nil, fmt.Errorf("parsing tree: %w", err)
	}
	return &tree, nil
}

// WriteNodeIDs assigns sequential zero-padded IDs to all nodes in pre-order
// and returns the number of nodes visited.
func WriteNodeIDs(nodes []*TreeNode) int {
	counter := 0
	var assign func([]*TreeNode)
	assign = func(children []*TreeNode) {
		for _, n := range children {
			n.NodeID = fmt.Sprintf("%04d", counter)
			counter++
			assign(n.Children)
		}
	}
	assign(nodes)
	return counter
}
