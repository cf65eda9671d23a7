package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/endowlab/endowdb/internal/config"
)

// cfg supplies flag defaults. Loaded before any init() runs; a missing or
// broken config file silently falls back to defaults.
var cfg = loadConfig()

func loadConfig() config.Config {
	c, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return c
}

var flagDB string

var rootCmd = &cobra.Command{
	Use:   "endowdb",
	Short: "Endowment reference-data store",
	Long: "Manage the endowment simulation database: schema setup, deterministic\n" +
		"synthetic seeding, xlsx import, and operational summaries.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDB, "db", "d", cfg.Store.Path,
		"Path to the store database file")
}
