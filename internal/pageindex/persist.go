package pageindex

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Format selects the on-disk encoding for a tree index.
type Format int

const (
	// FormatJSON is pretty-printed JSON, readable and diffable.
	FormatJSON Format = iota
	// FormatBinary is gob, compact and fast to decode.
	FormatBinary
)

// FormatFromPath picks a format from the file extension. Unknown
// extensions fall back to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin", ".gob":
		return FormatBinary
	default:
		return FormatJSON
	}
}

// SaveTree writes the tree to path, creating parent directories as needed.
// The encoding follows the file extension.
func SaveTree(tree *DocumentTree, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating index directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating index file: %w", err)
	}
	defer f.Close()

	switch FormatFromPath(path) {
	case FormatBinary:
		if err := gob.NewEncoder(f).Encode(tree); err != nil {
			return fmt.Errorf("encoding index %q: %w", path, err)
		}
	default:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("encoding index %q: %w", path, err)
		}
	}
	return f.Close()
}

// LoadTree reads a tree index from path. A missing file is reported as
// ErrIndexNotFound so callers can distinguish it from corruption.
func LoadTree(path string) (*DocumentTree, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("index %q: %w", path, ErrIndexNotFound)
		}
		return nil, fmt.Errorf("opening index %q: %w", path, err)
	}
	defer f.Close()

	var tree DocumentTree
	switch FormatFromPath(path) {
	case FormatBinary:
		if err := gob.NewDecoder(f).Decode(&tree); err != nil {
			return nil, fmt.Errorf("decoding index %q: %w", path, err)
		}
	default:
		if err := json.NewDecoder(f).Decode(&tree); err != nil {
			return nil, fmt.Errorf("decoding index %q: %w", path, err)
		}
	}
	return &tree, nil
}

// TreeExists reports whether an index file is present at path.
func TreeExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// TreeSize returns the size in bytes of the index file at path.
func TreeSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("index %q: %w", path, ErrIndexNotFound)
		}
		return 0, err
	}
	return info.Size(), nil
}
