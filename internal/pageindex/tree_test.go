package pageindex

import (
	"strings"
	"testing"
)

func sampleTree() *DocumentTree {
	intro := NewTreeNode("Introduction", 1, 4)
	intro.Structure = "1"
	background := NewTreeNode("Background", 2, 4)
	background.Structure = "1.1"
	intro.AddChild(background)

	methods := NewTreeNode("Methods", 5, 9)
	methods.Structure = "2"
	setup := NewTreeNode("Experimental Setup", 5, 7)
	setup.Structure = "2.1"
	analysis := NewTreeNode("Analysis", 8, 9)
	analysis.Structure = "2.2"
	methods.AddChild(setup)
	methods.AddChild(analysis)

	conclusion := NewTreeNode("Conclusion", 10, 12)
	conclusion.Structure = "3"

	return NewDocumentTree("paper", []*TreeNode{intro, methods, conclusion}, 12)
}

func TestTreeCounts(t *testing.T) {
	tree := sampleTree()

	if got := tree.NodeCount(); got != 6 {
		t.Errorf("NodeCount() = %d, want 6", got)
	}
	if got := tree.MaxDepth(); got != 2 {
		t.Errorf("MaxDepth() = %d, want 2", got)
	}
	if got := len(tree.Leaves()); got != 4 {
		t.Errorf("Leaves() returned %d nodes, want 4", got)
	}
}

func TestFindByTitle(t *testing.T) {
	tree := sampleTree()

	t.Run("finds nested node", func(t *testing.T) {
		node := tree.FindByTitle("Analysis")
		if node == nil || node.Structure != "2.2" {
			t.Errorf("FindByTitle(Analysis) = %+v", node)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		if tree.FindByTitle("BACKGROUND") == nil {
			t.Error("FindByTitle should match case-insensitively")
		}
	})

	t.Run("missing title", func(t *testing.T) {
		if tree.FindByTitle("Appendix") != nil {
			t.Error("FindByTitle should return nil for unknown titles")
		}
	})
}

func TestPageSpan(t *testing.T) {
	node := NewTreeNode("section", 3, 7)
	if got := node.PageSpan(); got != 5 {
		t.Errorf("PageSpan() = %d, want 5", got)
	}
}

func TestWriteNodeIDs(t *testing.T) {
	tree := sampleTree()
	n := WriteNodeIDs(tree.Nodes)

	if n != 6 {
		t.Fatalf("WriteNodeIDs assigned %d IDs, want 6", n)
	}
	if tree.Nodes[0].NodeID != "0000" {
		t.Errorf("first node ID = %q, want 0000", tree.Nodes[0].NodeID)
	}
	// Pre-order: Introduction, Background, Methods, ...
	if tree.Nodes[0].Children[0].NodeID != "0001" {
		t.Errorf("Background ID = %q, want 0001", tree.Nodes[0].Children[0].NodeID)
	}
	if tree.Nodes[2].NodeID != "0005" {
		t.Errorf("Conclusion ID = %q, want 0005", tree.Nodes[2].NodeID)
	}
}

func TestTreeClone(t *testing.T) {
	tree := sampleTree()
	clone := tree.Clone()

	clone.Nodes[0].Title = "Changed"
	clone.Nodes[1].Children[0].EndIndex = 99

	if tree.Nodes[0].Title != "Introduction" {
		t.Error("mutating the clone changed the original root")
	}
	if tree.Nodes[1].Children[0].EndIndex != 7 {
		t.Error("mutating the clone changed an original child")
	}
}

func TestTreeJSONRoundTrip(t *testing.T) {
	tree := sampleTree()
	tree.Description = "A sample paper"
	WriteNodeIDs(tree.Nodes)

	data, err := tree.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	restored, err := TreeFromJSON(data)
	if err != nil {
		t.Fatal(err)
	}

	if restored.Name != tree.Name || restored.TotalPages != tree.TotalPages {
		t.Errorf("restored header = %s/%d, want %s/%d",
			restored.Name, restored.TotalPages, tree.Name, tree.TotalPages)
	}
	if restored.NodeCount() != tree.NodeCount() {
		t.Errorf("restored node count = %d, want %d", restored.NodeCount(), tree.NodeCount())
	}
	if restored.Description != "A sample paper" {
		t.Errorf("restored description = %q", restored.Description)
	}

	node := restored.FindByTitle("Experimental Setup")
	if node == nil || node.StartIndex != 5 || node.EndIndex != 7 || node.NodeID == "" {
		t.Errorf("restored node = %+v", node)
	}
}

func TestTreeFormat(t *testing.T) {
	tree := sampleTree()
	formatted := tree.Format()

	if !strings.Contains(formatted, "Introduction") {
		t.Error("Format() missing root title")
	}
	if !strings.Contains(formatted, "Background") {
		t.Error("Format() missing child title")
	}
	if !strings.Contains(formatted, "pages 1-4") && !strings.Contains(formatted, "1-4") {
		t.Errorf("Format() missing page span:\n%s", formatted)
	}
}

func TestEmptyTree(t *testing.T) {
	tree := NewDocumentTree("empty", nil, 0)

	if tree.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", tree.NodeCount())
	}
	if tree.MaxDepth() != 0 {
		t.Errorf("MaxDepth() = %d, want 0", tree.MaxDepth())
	}

	data, err := tree.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := TreeFromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if restored.NodeCount() != 0 {
		t.Error("empty tree did not survive the round trip")
	}
}
