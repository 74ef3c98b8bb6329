package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saransh09/pageindex/internal/config"
	"github.com/saransh09/pageindex/internal/llm"
	"github.com/saransh09/pageindex/internal/pageindex"
)

var (
	indexOutput    string
	indexDelimiter string
	indexVerify    bool
	indexSummaries bool
	indexDescribe  bool
)

var indexCmd = &cobra.Command{
	Use:   "index <document>",
	Short: "Build a tree index for a document",
	Long: `Build a hierarchical tree index for a document using the LLM.

Supports plain text (form-feed page breaks or --delimiter), PDF, and
markdown files. The index is written as JSON or gob depending on the
output file extension.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		documentPath := args[0]
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Indexing document: %s\n", documentPath)
		fmt.Fprintf(out, "Using model: %s\n", dimStyle.Render(cfg.LLM.Model))

		start := time.Now()

		doc, err := loadDocumentArg(documentPath, indexDelimiter)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  Document: %s (%d pages, ~%d tokens)\n",
			doc.Name, doc.PageCount(), doc.TotalTokens())

		client := newLLMClient(cfg)
		options := pageindex.DefaultIndexerOptions()
		options.VerifyIndices = indexVerify
		options.GenerateSummaries = indexSummaries
		options.GenerateDescription = indexDescribe
		indexer := pageindex.NewTreeIndexerWithOptions(client, options)

		fmt.Fprintln(out, "\nBuilding tree index via LLM...")
		tree, err := indexer.Index(cmd.Context(), doc)
		if err != nil {
			return fmt.Errorf("building tree index: %w", err)
		}

		fmt.Fprintln(out, titleStyle.Render("\nTree Index Built:"))
		fmt.Fprintf(out, "  Sections:    %d\n", tree.NodeCount())
		fmt.Fprintf(out, "  Max depth:   %d\n", tree.MaxDepth())
		fmt.Fprintf(out, "  Build time:  %s\n", time.Since(start).Round(10*time.Millisecond))

		if err := pageindex.SaveTree(tree, indexOutput); err != nil {
			return fmt.Errorf("saving tree index: %w", err)
		}

		size, err := pageindex.TreeSize(indexOutput)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s %s\n", successStyle.Render("Index saved to:"), indexOutput)
		fmt.Fprintf(out, "  File size: %.1f KB\n", float64(size)/1024.0)
		return nil
	},
}

func init() {
	indexCmd.Flags().StringVarP(&indexOutput, "output", "o", "data/tree_index.json", "Output path for the tree index file")
	indexCmd.Flags().StringVar(&indexDelimiter, "delimiter", "", "Custom page delimiter for text files")
	indexCmd.Flags().BoolVar(&indexVerify, "verify", false, "Verify section titles against their start pages")
	indexCmd.Flags().BoolVar(&indexSummaries, "summaries", false, "Generate a summary for each section")
	indexCmd.Flags().BoolVar(&indexDescribe, "describe", false, "Generate a one-sentence document description")
	rootCmd.AddCommand(indexCmd)
}

func newLLMClient(cfg *config.Config) *llm.Client {
	return llm.NewClient(llm.Config{
		APIBase:           cfg.LLM.APIBase,
		APIKey:            cfg.LLM.APIKey,
		Model:             cfg.LLM.Model,
		MaxTokens:         cfg.LLM.MaxTokens,
		Temperature:       cfg.LLM.Temperature,
		RequestsPerSecond: cfg.LLM.RequestsPerSecond,
	})
}

func loadDocumentArg(path, delimiter string) (*pageindex.Document, error) {
	if delimiter == "" {
		doc, err := pageindex.LoadDocument(path)
		if err != nil {
			return nil, fmt.Errorf("loading document: %w", err)
		}
		return doc, nil
	}
	doc, err := pageindex.LoadDocumentDelimited(path, delimiter)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return doc, nil
}
