package pageindex

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"index.json", FormatJSON},
		{"index.bin", FormatBinary},
		{"index.gob", FormatBinary},
		{"index.GOB", FormatBinary},
		{"index.txt", FormatJSON},
		{"index", FormatJSON},
	}

	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tree := sampleTree()
	tree.Description = "round trip fixture"
	WriteNodeIDs(tree.Nodes)

	for _, ext := range []string{".json", ".gob"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "index"+ext)

			if err := SaveTree(tree, path); err != nil {
				t.Fatal(err)
			}
			if !TreeExists(path) {
				t.Fatal("TreeExists() = false after save")
			}

			size, err := TreeSize(path)
			if err != nil {
				t.Fatal(err)
			}
			if size == 0 {
				t.Error("TreeSize() = 0 for non-empty tree")
			}

			restored, err := LoadTree(path)
			if err != nil {
				t.Fatal(err)
			}

			a, err := tree.ToJSON()
			if err != nil {
				t.Fatal(err)
			}
			b, err := restored.ToJSON()
			if err != nil {
				t.Fatal(err)
			}
			if a != b {
				t.Errorf("restored tree differs from original (%s)", ext)
			}
		})
	}
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "index.json")
	if err := SaveTree(sampleTree(), path); err != nil {
		t.Fatal(err)
	}
	if !TreeExists(path) {
		t.Error("index file missing after save with nested path")
	}
}

func TestLoadMissingIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := LoadTree(path)
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}

	if _, err := TreeSize(path); !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("TreeSize: expected ErrIndexNotFound, got %v", err)
	}

	if TreeExists(path) {
		t.Error("TreeExists() = true for missing file")
	}
}

func TestDeepNestingRoundTrip(t *testing.T) {
	// Build a 6-level chain.
	leaf := NewTreeNode("level 6", 1, 1)
	node := leaf
	for depth := 5; depth >= 1; depth-- {
		parent := NewTreeNode("level", 1, 10)
		parent.AddChild(node)
		node = parent
	}
	tree := NewDocumentTree("deep", []*TreeNode{node}, 10)

	for _, ext := range []string{".json", ".bin"} {
		path := filepath.Join(t.TempDir(), "deep"+ext)
		if err := SaveTree(tree, path); err != nil {
			t.Fatal(err)
		}
		restored, err := LoadTree(path)
		if err != nil {
			t.Fatal(err)
		}
		if restored.MaxDepth() != tree.MaxDepth() {
			t.Errorf("%s: restored depth %d, want %d", ext, restored.MaxDepth(), tree.MaxDepth())
		}
		if restored.FindByTitle("level 6") == nil {
			t.Errorf("%s: deepest node lost in round trip", ext)
		}
	}
}
