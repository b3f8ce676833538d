package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gavel-review/gavel/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported providers and their default models",
	Run: func(cmd *cobra.Command, args []string) {
		for _, info := range llm.Providers() {
			fmt.Fprintf(os.Stdout, "%s:\n", info.Name)
			fmt.Fprintf(os.Stdout, "  default model: %s\n", info.DefaultModel)
			fmt.Fprintf(os.Stdout, "  base URL:      %s\n", info.BaseURL)
			if !info.NeedsAPIKey {
				fmt.Fprintln(os.Stdout, "  API key:       not required")
			}
			fmt.Fprintln(os.Stdout)
		}
	},
}
