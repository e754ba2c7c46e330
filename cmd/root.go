package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/watchlist-cli/internal/config"
)

var (
	// Initialized at declaration so it exists before the per-file init
	// functions, which run in filename order and bind flags to it.
	v   = config.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "watchlist-cli",
	Short: "Sanctions watchlist feed ingestion",
	Long:  "Streams multi-gigabyte sanctioned-person and entity XML feeds into a relational store under strict memory bounds.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(v)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("database-url", "", "database connection string")
	rootCmd.PersistentFlags().String("driver", "", "database driver (postgres|sqlite)")
	_ = v.BindPFlag("database.url", rootCmd.PersistentFlags().Lookup("database-url"))
	_ = v.BindPFlag("database.driver", rootCmd.PersistentFlags().Lookup("driver"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
