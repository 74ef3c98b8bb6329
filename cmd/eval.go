package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saransh09/pageindex/internal/config"
	"github.com/saransh09/pageindex/internal/eval"
)

var (
	evalDataset    string
	evalQuality    string
	evalMaxItems   int
	evalTopK       int
	evalOutput     string
	evalVerbose    bool
	evalNoVector   bool
	evalEmbedURL   string
	evalEmbedModel string
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Benchmark tree search against a vector retrieval baseline",
	Long: `Run a head-to-head benchmark of tree-based retrieval against a
conventional chunk-and-embed vector baseline, with an LLM judge scoring
both systems' answers.

Datasets: --quality loads the QuALITY JSONL distribution, --dataset loads
a simple JSON dataset. With neither, a small built-in sample is used.

The vector baseline embeds through a local Ollama server (--embed-url).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		var dataset *eval.Dataset
		switch {
		case evalQuality != "":
			dataset, err = eval.LoadQuALITY(evalQuality)
		case evalDataset != "":
			dataset, err = eval.LoadDataset(evalDataset)
		default:
			dataset = eval.SampleDataset()
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Dataset: %s (%d items)\n", dataset.Name, dataset.Len())
		fmt.Fprintf(out, "Using model: %s\n", dimStyle.Render(cfg.LLM.Model))

		client := newLLMClient(cfg)

		var embedder eval.Embedder
		if !evalNoVector {
			embedder = eval.NewOllamaEmbedder(evalEmbedURL, evalEmbedModel)
		}

		benchmark := eval.NewBenchmark(client, embedder, eval.BenchmarkConfig{
			TopK:          evalTopK,
			ChunkConfig:   eval.DefaultChunkConfig(),
			RunTreeSearch: true,
			RunVector:     !evalNoVector,
			MaxItems:      evalMaxItems,
			Verbose:       evalVerbose,
			Out:           out,
		})

		results, err := benchmark.Run(cmd.Context(), dataset)
		if err != nil {
			return fmt.Errorf("benchmark failed: %w", err)
		}

		results.PrintSummary(out)

		if evalOutput != "" {
			if err := results.Save(evalOutput); err != nil {
				return fmt.Errorf("saving results: %w", err)
			}
			fmt.Fprintf(out, "%s %s\n", successStyle.Render("Results saved to:"), evalOutput)
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().StringVar(&evalDataset, "dataset", "", "Path to a simple JSON dataset")
	evalCmd.Flags().StringVar(&evalQuality, "quality", "", "Path to a QuALITY JSONL file")
	evalCmd.Flags().IntVar(&evalMaxItems, "max-items", 0, "Limit the number of items (0 = all)")
	evalCmd.Flags().IntVarP(&evalTopK, "top-k", "k", 5, "Sections/chunks retrieved per question")
	evalCmd.Flags().StringVarP(&evalOutput, "output", "o", "", "Write full results JSON to this path")
	evalCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print per-item progress")
	evalCmd.Flags().BoolVar(&evalNoVector, "no-vector", false, "Skip the vector baseline")
	evalCmd.Flags().StringVar(&evalEmbedURL, "embed-url", "", "Embedding server base URL (default http://localhost:11434)")
	evalCmd.Flags().StringVar(&evalEmbedModel, "embed-model", "", "Embedding model name (default nomic-embed-text)")
	rootCmd.AddCommand(evalCmd)
}
