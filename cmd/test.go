package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saransh09/pageindex/internal/config"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the LLM connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Testing LLM connection...")
		fmt.Fprintln(out)

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		keyPreview := cfg.LLM.APIKey
		if len(keyPreview) > 8 {
			keyPreview = keyPreview[:8]
		}
		fmt.Fprintln(out, titleStyle.Render("Configuration:"))
		fmt.Fprintf(out, "  API Base:  %s\n", cfg.LLM.APIBase)
		fmt.Fprintf(out, "  Model:     %s\n", cfg.LLM.Model)
		fmt.Fprintf(out, "  API Key:   %s...\n", keyPreview)
		fmt.Fprintln(out)

		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(out, "%s %v\n", errorStyle.Render("Configuration error:"), err)
			return nil
		}

		client := newLLMClient(cfg)

		fmt.Fprintln(out, "Sending test request...")
		if err := client.TestConnection(cmd.Context()); err != nil {
			fmt.Fprintf(out, "%s %v\n", errorStyle.Render("Connection failed:"), err)
			return nil
		}
		fmt.Fprintln(out, successStyle.Render("Connection successful!"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}
