// Package eval provides the benchmark harness: dataset loading, a vector
// retrieval baseline, an LLM judge, and head-to-head comparison of tree
// search against the baseline.
package eval

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DatasetItem is one document/question pair for evaluation.
type DatasetItem struct {
	ID       string `json:"id"`
	Document string `json:"document"`
	Question string `json:"question"`
	// Answer is the ground truth, when available.
	Answer string `json:"answer,omitempty"`
	// Options holds multiple-choice answers, when applicable.
	Options []string `json:"options,omitempty"`
	// CorrectOption indexes Options (0-based), -1 when not applicable.
	CorrectOption int    `json:"correct_option"`
	Source        string `json:"source"`
}

// Dataset is a named collection of evaluation items.
type Dataset struct {
	Name  string        `json:"name"`
	Items []DatasetItem `json:"items"`
}

// NewDataset creates an empty dataset.
func NewDataset(name string) *Dataset {
	return &Dataset{Name: name}
}

// Add appends an item.
func (d *Dataset) Add(item DatasetItem) {
	d.Items = append(d.Items, item)
}

// Len returns the number of items.
func (d *Dataset) Len() int {
	return len(d.Items)
}

// Take returns a copy limited to the first n items.
func (d *Dataset) Take(n int) *Dataset {
	if n > len(d.Items) {
		n = len(d.Items)
	}
	out := &Dataset{Name: d.Name, Items: make([]DatasetItem, n)}
	copy(out.Items, d.Items[:n])
	return out
}

// LoadDataset reads a dataset from a JSON file in the simple format:
// {"name": ..., "items": [{"id", "document", "question", "answer"}, ...]}.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %q: %w", path, err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset %q: %w", path, err)
	}
	return &ds, nil
}

// Save writes the dataset as pretty-printed JSON.
func (d *Dataset) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type qualityArticle struct {
	Article   string            `json:"article"`
	ArticleID string            `json:"article_id"`
	Questions []qualityQuestion `json:"questions"`
}

type qualityQuestion struct {
	Question         string   `json:"question"`
	QuestionUniqueID string   `json:"question_unique_id"`
	Options          []string `json:"options"`
	// GoldLabel is 1-indexed into Options.
	GoldLabel int `json:"gold_label"`
}

// LoadQuALITY reads the QuALITY long-document QA dataset from its JSONL
// distribution: one article per line, each carrying multiple questions.
// Every question becomes a separate item sharing the article text.
func LoadQuALITY(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading QuALITY file %q: %w", path, err)
	}
	defer f.Close()

	ds := NewDataset("QuALITY")

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var article qualityArticle
		if err := json.Unmarshal([]byte(line), &article); err != nil {
			return nil, fmt.Errorf("parsing QuALITY article at line %d: %w", lineNum, err)
		}

		for _, q := range article.Questions {
			correct := -1
			answer := ""
			if q.GoldLabel >= 1 && q.GoldLabel <= len(q.Options) {
				correct = q.GoldLabel - 1
				answer = q.Options[correct]
			}
			ds.Add(DatasetItem{
				ID:            q.QuestionUniqueID,
				Document:      article.Article,
				Question:      q.Question,
				Answer:        answer,
				Options:       q.Options,
				CorrectOption: correct,
				Source:        "QuALITY",
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading QuALITY file %q: %w", path, err)
	}
	return ds, nil
}

// SampleDataset returns a small built-in dataset for smoke testing the
// benchmark pipeline without downloading anything.
func SampleDataset() *Dataset {
	ds := NewDataset("sample")
	ds.Add(DatasetItem{
		ID: "sample_1",
		Document: `Go is a statically typed, compiled programming language designed at Google.
It is known for its simplicity, fast compilation, and built-in concurrency support.
Goroutines are lightweight threads managed by the Go runtime rather than the OS.
Channels provide typed communication between goroutines.
Go 1.0 was released in March 2012 with a strong compatibility promise.`,
		Question:      "How does Go support concurrency?",
		Answer:        "Go supports concurrency with goroutines, lightweight runtime-managed threads, and channels for communication between them.",
		CorrectOption: -1,
		Source:        "sample",
	})
	ds.Add(DatasetItem{
		ID: "sample_2",
		Document: `Python is a high-level, interpreted programming language known for its clear syntax.
Created by Guido van Rossum, Python was first released in 1991.
Python supports multiple programming paradigms including procedural, object-oriented, and functional programming.
The Python Package Index (PyPI) hosts thousands of third-party packages.`,
		Question:      "Who created Python and when was it first released?",
		Answer:        "Python was created by Guido van Rossum and first released in 1991.",
		CorrectOption: -1,
		Source:        "sample",
	})
	ds.Add(DatasetItem{
		ID: "sample_3",
		Document: `Machine learning is a subset of artificial intelligence that enables systems to learn from data.
Supervised learning uses labeled data to train models, while unsupervised learning finds patterns in unlabeled data.
Neural networks are computing systems inspired by biological neural networks in animal brains.
Deep learning uses neural networks with many layers to model complex patterns.`,
		Question:      "What is the difference between supervised and unsupervised learning?",
		Answer:        "Supervised learning uses labeled data to train models, while unsupervised learning finds patterns in unlabeled data.",
		CorrectOption: -1,
		Source:        "sample",
	})
	return ds
}
