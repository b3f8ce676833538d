package cli

import (
	"github.com/spf13/cobra"

	"github.com/gavel-review/gavel/internal/cache"
	"github.com/gavel-review/gavel/internal/config"
	"github.com/gavel-review/gavel/internal/webhook"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GitHub webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		store := cache.NewStore(cfg.Cache.Dir, cfg.Cache.TTLDays)
		return webhook.New(flagAddr, store).ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Path to config file")
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":3000", "Listen address")
}
