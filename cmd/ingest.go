package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/watchlist-cli/internal/fetcher"
	"github.com/sells-group/watchlist-cli/internal/gateway"
	"github.com/sells-group/watchlist-cli/internal/ingest"
	"github.com/sells-group/watchlist-cli/internal/model"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a watchlist feed file into the database",
	Long: `Resolves the feed source (an explicit file, a URL, or the newest local
candidate for the feed type), validates it, and streams it into the
configured database. Individual malformed records are counted and skipped;
the run only fails on retrieval, validation, or parse-level errors.`,
	RunE: runIngest,
}

func init() {
	f := ingestCmd.Flags()
	f.String("file", "", "local feed file to ingest")
	f.String("url", "", "feed URL to download and ingest")
	f.Bool("compressed", false, "the URL source is gzip or zip compressed")
	f.String("feed-type", "full", "feed type (full|delta|incremental)")
	f.Bool("download-only", false, "download and extract without ingesting")
	f.Bool("skip-validation", false, "skip file existence and size checks")
	f.Float64("max-size-gb", 0, "maximum input file size in GB")
	f.Int("memory-ceiling-mb", 0, "advisory memory ceiling in MB")
	f.Int64("gc-interval", 0, "memory check interval in dispatched elements")
	f.Int("batch-size", 0, "progress reporting batch size")

	_ = v.BindPFlag("processing.max_file_size_gb", f.Lookup("max-size-gb"))
	_ = v.BindPFlag("processing.memory_ceiling_mb", f.Lookup("memory-ceiling-mb"))
	_ = v.BindPFlag("processing.gc_interval_records", f.Lookup("gc-interval"))
	_ = v.BindPFlag("processing.batch_size", f.Lookup("batch-size"))

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := zap.L().With(zap.String("component", "cmd.ingest"))

	feedType, _ := cmd.Flags().GetString("feed-type")
	if !model.ValidFeedType(feedType) {
		return eris.Errorf("unknown feed type %q", feedType)
	}

	path, err := resolveSource(ctx, cmd)
	if err != nil {
		return err
	}

	if downloadOnly, _ := cmd.Flags().GetBool("download-only"); downloadOnly {
		fmt.Printf("downloaded %s\n", path)
		return nil
	}

	skipValidation, _ := cmd.Flags().GetBool("skip-validation")
	opts := ingest.Options{
		FilePath:            path,
		FeedType:            model.FeedType(feedType),
		MaxSizeGB:           cfg.Processing.MaxFileSizeGB,
		SkipValidation:      skipValidation || !cfg.Processing.Validate,
		MemoryCeilingMB:     uint64(cfg.Processing.MemoryCeilingMB),
		MemoryCheckInterval: time.Duration(cfg.Processing.MemoryCheckIntervalSecs) * time.Second,
		GCIntervalRecords:   int64(cfg.Processing.GCIntervalRecords),
		ProgressInterval:    int64(cfg.Processing.ProgressIntervalRecords),
		MaxElementDepth:     cfg.XML.MaxElementDepth,
		IsolateChildren:     cfg.Processing.ChildIsolation,
	}

	o := ingest.New(opts, func(ctx context.Context) (gateway.Gateway, error) {
		return gateway.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	})

	summary, err := o.Run(ctx)
	if err != nil {
		log.Error("ingest failed", zap.Error(err))
		return err
	}

	printSummary(summary)
	return nil
}

// resolveSource picks the feed file: explicit path, then URL download, then
// the newest local candidate for the feed type.
func resolveSource(ctx context.Context, cmd *cobra.Command) (string, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		return file, nil
	}

	feedType, _ := cmd.Flags().GetString("feed-type")
	if rawURL, _ := cmd.Flags().GetString("url"); rawURL != "" {
		compressed, _ := cmd.Flags().GetBool("compressed")
		svc := newFetchService()
		return svc.DownloadAndExtract(ctx, rawURL, compressed)
	}

	path, ok, err := fetcher.FindLatestFeed(feedType, cfg.Storage.DownloadDir)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", eris.Errorf("no %s feed found in %s; pass --file or --url", feedType, cfg.Storage.DownloadDir)
	}
	return path, nil
}

func newFetchService() *fetcher.Service {
	httpF := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:   cfg.XML.UserAgent,
		MaxAttempts: cfg.XML.RetryAttempts,
		RetryDelay:  time.Duration(cfg.XML.RetryDelaySecs) * time.Second,
	})
	ftpF := fetcher.NewFTPFetcher(fetcher.FTPOptions{})
	return fetcher.NewService(httpF, ftpF, cfg.Storage.DownloadDir, cfg.Storage.ExtractDir)
}

func printSummary(s *ingest.Summary) {
	fmt.Printf("run %s: %d elements in %s (%.0f/s)\n",
		s.RunID, s.Elements, s.Elapsed.Round(time.Millisecond), s.ElementsPerSec)
	for _, kind := range []string{
		"person", "entity", "public_figure", "special_entity",
		"country", "occupation", "relationship", "sanctions_reference",
		"description_type", "date_type", "name_type", "role_type",
	} {
		if n := s.Counts[kind]; n > 0 {
			fmt.Printf("  %-20s %d\n", kind, n)
		}
	}
	if s.FailedRecords > 0 {
		fmt.Printf("  %-20s %d\n", "failed", s.FailedRecords)
	}
	if s.UnresolvedKinds > 0 {
		fmt.Printf("  %-20s %d\n", "unresolved kind", s.UnresolvedKinds)
	}
	if s.PressureEvents > 0 {
		fmt.Printf("  %-20s %d\n", "memory pressure", s.PressureEvents)
	}
}
