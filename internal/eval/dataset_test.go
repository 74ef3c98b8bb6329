package eval

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDatasetBasics(t *testing.T) {
	ds := NewDataset("test")
	if ds.Len() != 0 {
		t.Errorf("new dataset has %d items", ds.Len())
	}

	ds.Add(DatasetItem{ID: "1", Document: "doc", Question: "q?", CorrectOption: -1})
	ds.Add(DatasetItem{ID: "2", Document: "doc", Question: "q?", CorrectOption: -1})
	ds.Add(DatasetItem{ID: "3", Document: "doc", Question: "q?", CorrectOption: -1})

	t.Run("take limits items", func(t *testing.T) {
		sub := ds.Take(2)
		if sub.Len() != 2 || sub.Name != "test" {
			t.Errorf("Take(2) = %d items, name %q", sub.Len(), sub.Name)
		}
	})

	t.Run("take beyond length", func(t *testing.T) {
		if sub := ds.Take(10); sub.Len() != 3 {
			t.Errorf("Take(10) = %d items, want 3", sub.Len())
		}
	})
}

func TestDatasetSaveLoad(t *testing.T) {
	ds := NewDataset("round-trip")
	ds.Add(DatasetItem{
		ID:            "a",
		Document:      "some document",
		Question:      "what?",
		Answer:        "that",
		CorrectOption: -1,
		Source:        "test",
	})

	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := ds.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadDataset(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "round-trip" || loaded.Len() != 1 {
		t.Errorf("loaded = %s with %d items", loaded.Name, loaded.Len())
	}
	if loaded.Items[0].Answer != "that" {
		t.Errorf("answer = %q", loaded.Items[0].Answer)
	}
}

func TestLoadQuALITY(t *testing.T) {
	jsonl := `{"article": "A long article text.", "article_id": "art1", "questions": [` +
		`{"question": "First question?", "question_unique_id": "q1", "options": ["w", "x", "y", "z"], "gold_label": 2},` +
		`{"question": "Second question?", "question_unique_id": "q2", "options": ["a", "b"], "gold_label": 0}]}` + "\n" +
		"\n" +
		`{"article": "Another article.", "article_id": "art2", "questions": [` +
		`{"question": "Third?", "question_unique_id": "q3", "options": ["p", "q"], "gold_label": 1}]}` + "\n"

	path := filepath.Join(t.TempDir(), "quality.jsonl")
	if err := os.WriteFile(path, []byte(jsonl), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadQuALITY(path)
	if err != nil {
		t.Fatal(err)
	}

	if ds.Name != "QuALITY" {
		t.Errorf("name = %q", ds.Name)
	}
	if ds.Len() != 3 {
		t.Fatalf("got %d items, want 3 (one per question)", ds.Len())
	}

	t.Run("gold label resolves to answer", func(t *testing.T) {
		item := ds.Items[0]
		if item.ID != "q1" || item.CorrectOption != 1 || item.Answer != "x" {
			t.Errorf("item = %+v", item)
		}
		if item.Document != "A long article text." {
			t.Errorf("document = %q", item.Document)
		}
	})

	t.Run("invalid gold label leaves no answer", func(t *testing.T) {
		item := ds.Items[1]
		if item.CorrectOption != -1 || item.Answer != "" {
			t.Errorf("item = %+v", item)
		}
	})

	t.Run("questions share their article", func(t *testing.T) {
		if ds.Items[2].Document != "Another article." {
			t.Errorf("document = %q", ds.Items[2].Document)
		}
	})
}

func TestLoadQuALITYBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadQuALITY(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSampleDataset(t *testing.T) {
	ds := SampleDataset()
	if ds.Len() == 0 {
		t.Fatal("sample dataset is empty")
	}
	for _, item := range ds.Items {
		if item.ID == "" || item.Document == "" || item.Question == "" {
			t.Errorf("incomplete sample item: %+v", item)
		}
	}
}
