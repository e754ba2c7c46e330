package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/watchlist-cli/internal/gateway"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent ingest runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		gw, err := gateway.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer gw.Close() //nolint:errcheck

		runs, err := gw.ListRuns(ctx, limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		for _, r := range runs {
			line := fmt.Sprintf("%s  %-11s %-8s %s",
				r.StartedAt.Format(time.RFC3339), r.FeedType, r.Status, r.SourceFile)
			if r.Status == "failed" && r.Error != "" {
				line += "  (" + r.Error + ")"
			}
			if n, ok := r.Counts["person"]; ok {
				line += fmt.Sprintf("  persons=%d", n)
			}
			if n, ok := r.Counts["failed_records"]; ok && n > 0 {
				line += fmt.Sprintf("  failed=%d", n)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Int("limit", 20, "maximum runs to list")
	rootCmd.AddCommand(statusCmd)
}
