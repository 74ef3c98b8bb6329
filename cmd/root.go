package cmd

import (
	"fmt"
	"os"

	"github.com/saransh09/pageindex/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pageindex",
	Short: "LLM-powered hierarchical tree indexing for document search",
	Long: `PageIndex builds hierarchical tree indexes over documents using an LLM
and searches them by reasoning over the tree structure instead of vector
similarity. Build an index with 'index', then query it with 'search'.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("pageindex %s\n", version.String()))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
