package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saransh09/pageindex/internal/config"
	"github.com/saransh09/pageindex/internal/pageindex"
)

var (
	searchIndex       string
	searchTopK        int
	searchWithContent bool
	searchDocument    string
	searchMinRel      string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search a tree index using LLM reasoning",
	Long: `Search a tree index by having the LLM reason over the document
structure and pick the sections most relevant to the query.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		if !pageindex.TreeExists(searchIndex) {
			return fmt.Errorf("index not found at %q, run 'pageindex index' first", searchIndex)
		}
		if searchWithContent && searchDocument == "" {
			return errors.New("--document is required when using --with-content")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		tree, err := pageindex.LoadTree(searchIndex)
		if err != nil {
			return fmt.Errorf("loading tree index: %w", err)
		}

		client := newLLMClient(cfg)
		searcher := pageindex.NewTreeSearcherWithOptions(client, pageindex.SearchOptions{
			TopK:         searchTopK,
			MinRelevance: pageindex.ParseRelevance(searchMinRel),
		})

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Searching for: %q\n", query)
		fmt.Fprintf(out, "Using model: %s\n\n", dimStyle.Render(cfg.LLM.Model))

		start := time.Now()

		var results []pageindex.SearchResult
		if searchWithContent {
			doc, err := loadDocumentArg(searchDocument, "")
			if err != nil {
				return err
			}
			results, err = searcher.SearchWithContent(cmd.Context(), tree, doc, query)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
		} else {
			results, err = searcher.Search(cmd.Context(), tree, query)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
		}

		elapsed := time.Since(start)

		if len(results) == 0 {
			fmt.Fprintln(out, "No relevant sections found.")
			return nil
		}

		fmt.Fprintln(out, titleStyle.Render("Results:"))
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for i, result := range results {
			fmt.Fprintf(out, "%2d. %s [pages %d-%d] (%s)\n",
				i+1, result.Title, result.StartIndex, result.EndIndex,
				renderRelevance(result.Relevance))
			if result.Reason != "" {
				fmt.Fprintf(out, "    %s %s\n", dimStyle.Render("Reason:"), result.Reason)
			}
			if result.Content != "" {
				fmt.Fprintln(out, dimStyle.Render("    Content preview:"))
				preview := result.Content
				if len(preview) > 200 {
					preview = preview[:200]
				}
				lines := strings.Split(preview, "\n")
				if len(lines) > 3 {
					lines = lines[:3]
				}
				for _, line := range lines {
					fmt.Fprintf(out, "      %s\n", line)
				}
				if len(result.Content) > 200 {
					fmt.Fprintln(out, "      ...")
				}
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "Found %d results in %s\n", len(results), elapsed.Round(10*time.Millisecond))
		return nil
	},
}

func renderRelevance(r pageindex.Relevance) string {
	switch r {
	case pageindex.RelevanceHigh:
		return relevanceHighStyle.Render("high")
	case pageindex.RelevanceMedium:
		return relevanceMediumStyle.Render("medium")
	default:
		return dimStyle.Render("low")
	}
}

func init() {
	searchCmd.Flags().StringVarP(&searchIndex, "index", "i", "data/tree_index.json", "Path to the tree index file")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 5, "Number of results to return")
	searchCmd.Flags().BoolVar(&searchWithContent, "with-content", false, "Include section content in results")
	searchCmd.Flags().StringVarP(&searchDocument, "document", "d", "", "Path to the original document (required with --with-content)")
	searchCmd.Flags().StringVar(&searchMinRel, "min-relevance", "low", "Minimum relevance to include (low, medium, high)")
	rootCmd.AddCommand(searchCmd)
}
