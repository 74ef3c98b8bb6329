package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saransh09/pageindex/internal/pageindex"
)

var infoCmd = &cobra.Command{
	Use:   "info [index]",
	Short: "Show information about an index",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		indexPath := "data/tree_index.json"
		if len(args) > 0 {
			indexPath = args[0]
		}

		if !pageindex.TreeExists(indexPath) {
			return fmt.Errorf("index not found at %q, run 'pageindex index' first", indexPath)
		}

		tree, err := pageindex.LoadTree(indexPath)
		if err != nil {
			return fmt.Errorf("loading tree index: %w", err)
		}
		size, err := pageindex.TreeSize(indexPath)
		if err != nil {
			return err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s\n", titleStyle.Render("Tree Index Information"))
		fmt.Fprintf(&b, "Document:     %s\n", tree.Name)
		fmt.Fprintf(&b, "Total pages:  %d\n", tree.TotalPages)
		fmt.Fprintf(&b, "Sections:     %d\n", tree.NodeCount())
		fmt.Fprintf(&b, "Max depth:    %d\n", tree.MaxDepth())
		fmt.Fprintf(&b, "File size:    %.1f KB\n", float64(size)/1024.0)
		fmt.Fprintf(&b, "Index path:   %s", indexPath)
		if tree.Description != "" {
			fmt.Fprintf(&b, "\nDescription:  %s", tree.Description)
		}

		fmt.Fprintln(cmd.OutOrStdout(), boxStyle.Render(b.String()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
