package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gavel-review/gavel/internal/analyzer"
	"github.com/gavel-review/gavel/internal/cache"
	"github.com/gavel-review/gavel/internal/llm"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the project and cache the context",
	Long:  "Analyze the repository in the working directory, print the resulting project context, and store it in the cache for later reviews.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := llm.New(llm.Options{
			Provider:    cfg.LLM.Provider,
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if llm.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitUsageError
			}
			return nil
		}

		pc := analyzer.New(client, cfg).Analyze(cmd.Context(), ".")

		store := cache.NewStore(cfg.Cache.Dir, cfg.Cache.TTLDays)
		if err := store.Save(pc); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving project context: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		data, err := json.MarshalIndent(pc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		fmt.Fprintf(os.Stderr, "Project context saved to %s\n", store.Path())
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Path to config file")
	analyzeCmd.Flags().BoolVarP(&flagRefresh, "refresh", "r", false, "Force a fresh project analysis")
}
