package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gavel-review/gavel/internal/cache"
	"github.com/gavel-review/gavel/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the project context cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		store := cache.NewStore(cfg.Cache.Dir, cfg.Cache.TTLDays)
		info := store.Stat()
		if !info.Exists {
			fmt.Fprintf(os.Stdout, "No cached project context at %s\n", store.Path())
			return nil
		}
		fmt.Fprintf(os.Stdout, "Path:     %s\n", store.Path())
		fmt.Fprintf(os.Stdout, "Modified: %s\n", info.ModifiedAt.UTC().Format(time.RFC3339))
		fmt.Fprintf(os.Stdout, "Version:  %s\n", info.Version)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the cached project context",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		store := cache.NewStore(cfg.Cache.Dir, cfg.Cache.TTLDays)
		if err := store.Invalidate(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Fprintln(os.Stdout, "Cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to config file")
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
