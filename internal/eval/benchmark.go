package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saransh09/pageindex/internal/pageindex"
)

// BenchmarkConfig controls a benchmark run.
type BenchmarkConfig struct {
	// TopK is the number of sections/chunks retrieved per question.
	TopK int
	// ChunkConfig parameterizes the vector baseline.
	ChunkConfig ChunkConfig
	// RunTreeSearch enables the tree search system.
	RunTreeSearch bool
	// RunVector enables the vector baseline.
	RunVector bool
	// MaxItems limits the number of dataset items. Zero means all.
	MaxItems int
	// Verbose prints per-item progress instead of dots.
	Verbose bool
	// Out receives progress and summary output. Defaults to stdout.
	Out io.Writer
}

// DefaultBenchmarkConfig returns the default run configuration: both
// systems, top 5, full dataset.
func DefaultBenchmarkConfig() BenchmarkConfig {
	return BenchmarkConfig{
		TopK:          5,
		ChunkConfig:   DefaultChunkConfig(),
		RunTreeSearch: true,
		RunVector:     true,
	}
}

// ItemResult records both systems' retrievals and the judge verdict for
// one dataset item.
type ItemResult struct {
	ItemID          string      `json:"item_id"`
	TreeContent     string      `json:"tree_content,omitempty"`
	TreeAnswer      string      `json:"tree_answer,omitempty"`
	TreeTimeMillis  int64       `json:"tree_time_ms,omitempty"`
	VectorContent   string      `json:"vector_content,omitempty"`
	VectorAnswer    string      `json:"vector_answer,omitempty"`
	VectorTimeMilli int64       `json:"vector_time_ms,omitempty"`
	Comparison      *Comparison `json:"comparison,omitempty"`
	Error           string      `json:"error,omitempty"`
}

// Results aggregates a full benchmark run.
type Results struct {
	// RunID uniquely identifies this run.
	RunID       string       `json:"run_id"`
	DatasetName string       `json:"dataset_name"`
	TotalItems  int          `json:"total_items"`
	TreeWins    int          `json:"tree_wins"`
	VectorWins  int          `json:"vector_wins"`
	Ties        int          `json:"ties"`
	AvgTree     float64      `json:"avg_tree_score"`
	AvgVector   float64      `json:"avg_vector_score"`
	AvgTreeMS   float64      `json:"avg_tree_time_ms"`
	AvgVectorMS float64      `json:"avg_vector_time_ms"`
	Items       []ItemResult `json:"items"`
	TotalSecs   float64      `json:"total_time_secs"`
}

// NewResults creates empty results with a fresh run ID.
func NewResults(datasetName string) *Results {
	return &Results{RunID: uuid.NewString(), DatasetName: datasetName}
}

// Summarize computes the aggregate statistics from the item results.
func (r *Results) Summarize() {
	r.TotalItems = len(r.Items)
	r.TreeWins, r.VectorWins, r.Ties = 0, 0, 0

	var treeScores, vectorScores, treeTimes, vectorTimes []float64
	for _, item := range r.Items {
		if item.Comparison != nil {
			switch item.Comparison.Winner {
			case 1:
				r.TreeWins++
			case 2:
				r.VectorWins++
			default:
				r.Ties++
			}
			treeScores = append(treeScores, float64(item.Comparison.ScoreA))
			vectorScores = append(vectorScores, float64(item.Comparison.ScoreB))
		}
		if item.TreeTimeMillis > 0 {
			treeTimes = append(treeTimes, float64(item.TreeTimeMillis))
		}
		if item.VectorTimeMilli > 0 {
			vectorTimes = append(vectorTimes, float64(item.VectorTimeMilli))
		}
	}

	r.AvgTree = mean(treeScores)
	r.AvgVector = mean(vectorScores)
	r.AvgTreeMS = mean(treeTimes)
	r.AvgVectorMS = mean(vectorTimes)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Save writes the results as pretty-printed JSON.
func (r *Results) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// PrintSummary writes a human-readable summary.
func (r *Results) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n========== Benchmark Results ==========\n")
	fmt.Fprintf(w, "Run ID:  %s\n", r.RunID)
	fmt.Fprintf(w, "Dataset: %s\n", r.DatasetName)
	fmt.Fprintf(w, "Total items: %d\n", r.TotalItems)
	fmt.Fprintf(w, "----------------------------------------\n")
	fmt.Fprintf(w, "Tree search wins: %d (%.1f%%)\n", r.TreeWins, pct(r.TreeWins, r.TotalItems))
	fmt.Fprintf(w, "Vector wins:      %d (%.1f%%)\n", r.VectorWins, pct(r.VectorWins, r.TotalItems))
	fmt.Fprintf(w, "Ties:             %d (%.1f%%)\n", r.Ties, pct(r.Ties, r.TotalItems))
	fmt.Fprintf(w, "----------------------------------------\n")
	fmt.Fprintf(w, "Avg tree search score: %.2f/5\n", r.AvgTree)
	fmt.Fprintf(w, "Avg vector score:      %.2f/5\n", r.AvgVector)
	fmt.Fprintf(w, "----------------------------------------\n")
	fmt.Fprintf(w, "Avg tree search time: %.0fms\n", r.AvgTreeMS)
	fmt.Fprintf(w, "Avg vector time:      %.0fms\n", r.AvgVectorMS)
	fmt.Fprintf(w, "----------------------------------------\n")
	fmt.Fprintf(w, "Total time: %.1fs\n", r.TotalSecs)
	fmt.Fprintf(w, "========================================\n\n")
}

// Benchmark compares tree-based retrieval against a vector baseline on a
// question-answering dataset, with an LLM judge picking winners.
type Benchmark struct {
	config   BenchmarkConfig
	client   pageindex.Completer
	embedder Embedder
	cache    *TreeCache
}

// NewBenchmark creates a runner. The embedder may be nil when the vector
// baseline is disabled.
func NewBenchmark(client pageindex.Completer, embedder Embedder, config BenchmarkConfig) *Benchmark {
	if config.TopK <= 0 {
		config.TopK = 5
	}
	if config.ChunkConfig.ChunkSize <= 0 {
		config.ChunkConfig = DefaultChunkConfig()
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}
	return &Benchmark{
		config:   config,
		client:   client,
		embedder: embedder,
		cache:    NewTreeCache(),
	}
}

// Run executes the benchmark over the dataset.
func (b *Benchmark) Run(ctx context.Context, dataset *Dataset) (*Results, error) {
	if b.config.RunVector && b.embedder == nil {
		return nil, fmt.Errorf("vector baseline enabled but no embedder configured")
	}

	start := time.Now()
	results := NewResults(dataset.Name)

	items := dataset.Items
	if b.config.MaxItems > 0 && b.config.MaxItems < len(items) {
		items = items[:b.config.MaxItems]
	}

	fmt.Fprintf(b.config.Out, "Running benchmark on %d items...\n", len(items))

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if b.config.Verbose {
			fmt.Fprintf(b.config.Out, "\n[%d/%d] Processing: %s\n", i+1, len(items), item.ID)
		} else {
			fmt.Fprint(b.config.Out, ".")
		}
		results.Items = append(results.Items, b.processItem(ctx, item))
	}
	if !b.config.Verbose {
		fmt.Fprintln(b.config.Out)
	}

	results.TotalSecs = time.Since(start).Seconds()
	results.Summarize()
	return results, nil
}

func (b *Benchmark) processItem(ctx context.Context, item DatasetItem) ItemResult {
	result := ItemResult{ItemID: item.ID}

	if b.config.RunTreeSearch {
		content, elapsed, err := b.runTreeSearch(ctx, item)
		if err != nil {
			result.Error = fmt.Sprintf("tree search: %v", err)
		} else {
			result.TreeContent = content
			result.TreeTimeMillis = elapsed.Milliseconds()
			if answer, err := b.generateAnswer(ctx, item.Question, content); err == nil {
				result.TreeAnswer = answer
			}
		}
	}

	if b.config.RunVector {
		content, elapsed, err := b.runVectorSearch(ctx, item)
		if err != nil {
			msg := fmt.Sprintf("vector search: %v", err)
			if result.Error != "" {
				result.Error += "\n" + msg
			} else {
				result.Error = msg
			}
		} else {
			result.VectorContent = content
			result.VectorTimeMilli = elapsed.Milliseconds()
			if answer, err := b.generateAnswer(ctx, item.Question, content); err == nil {
				result.VectorAnswer = answer
			}
		}
	}

	// Judge only when both systems produced answers.
	if result.TreeAnswer != "" && result.VectorAnswer != "" {
		judge := NewJudge(b.client)
		comparison, err := judge.Compare(ctx, item.Question,
			"TreeSearch", result.TreeAnswer,
			"VectorRAG", result.VectorAnswer,
			item.Answer)
		if err == nil {
			result.Comparison = comparison
			if b.config.Verbose {
				winner := "Tie"
				switch comparison.Winner {
				case 1:
					winner = "TreeSearch"
				case 2:
					winner = "VectorRAG"
				}
				fmt.Fprintf(b.config.Out, "  Winner: %s (tree %d/5, vector %d/5)\n",
					winner, comparison.ScoreA, comparison.ScoreB)
			}
		}
	}

	return result
}

func (b *Benchmark) runTreeSearch(ctx context.Context, item DatasetItem) (string, time.Duration, error) {
	start := time.Now()

	doc := pageindex.FromText(item.ID, item.Document)
	tree, err := b.cache.GetOrBuild(ctx, item.Document, func(ctx context.Context) (*pageindex.DocumentTree, error) {
		return pageindex.NewTreeIndexer(b.client).Index(ctx, doc)
	})
	if err != nil {
		return "", 0, err
	}

	searcher := pageindex.NewTreeSearcherWithOptions(b.client, pageindex.SearchOptions{TopK: b.config.TopK})
	results, err := searcher.SearchWithContent(ctx, tree, doc, item.Question)
	if err != nil {
		return "", 0, err
	}

	var parts []string
	for _, r := range results {
		if r.Content != "" {
			parts = append(parts, r.Content)
		}
	}
	return strings.Join(parts, "\n\n"), time.Since(start), nil
}

func (b *Benchmark) runVectorSearch(ctx context.Context, item DatasetItem) (string, time.Duration, error) {
	start := time.Now()

	idx, err := BuildVectorIndex(ctx, item.Document, b.embedder, b.config.ChunkConfig)
	if err != nil {
		return "", 0, err
	}
	content, err := idx.SearchContext(ctx, item.Question, b.config.TopK)
	if err != nil {
		return "", 0, err
	}
	return content, time.Since(start), nil
}

func (b *Benchmark) generateAnswer(ctx context.Context, question, context_ string) (string, error) {
	prompt := fmt.Sprintf(pageindex.RAGAnswerPrompt, context_, question)
	answer, err := b.client.Complete(ctx, "", prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
