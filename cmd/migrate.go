package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/watchlist-cli/internal/gateway"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the watchlist schema on the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		gw, err := gateway.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer gw.Close() //nolint:errcheck

		if err := gw.Migrate(ctx); err != nil {
			return err
		}
		fmt.Println("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
