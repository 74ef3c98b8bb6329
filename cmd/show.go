package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saransh09/pageindex/internal/pageindex"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [index]",
	Short: "Display the tree structure of an index",
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

		out := cmd.OutOrStdout()
		if showJSON {
			data, err := tree.ToJSON()
			if err != nil {
				return fmt.Errorf("serializing tree: %w", err)
			}
			fmt.Fprintln(out, data)
			return nil
		}
		fmt.Fprintln(out, tree.Format())
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON instead of a formatted tree")
	rootCmd.AddCommand(showCmd)
}
