// Package ingest owns the end-to-end lifecycle of one feed run: validate the
// input, open the gateway, wire the dispatchers and the memory governor onto
// a forward-only stream, run it, and aggregate the summary. The orchestrator
// surfaces success or failure to its caller and never terminates the process.
package ingest

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/watchlist-cli/internal/dispatch"
	"github.com/sells-group/watchlist-cli/internal/feed"
	"github.com/sells-group/watchlist-cli/internal/gateway"
	"github.com/sells-group/watchlist-cli/internal/memgov"
	"github.com/sells-group/watchlist-cli/internal/model"
)

// State tracks the orchestrator lifecycle.
type State string

const (
	StateInit       State = "INIT"
	StateValidating State = "VALIDATING"
	StateStreaming  State = "STREAMING"
	StateCompleting State = "COMPLETING"
	StateAborting   State = "ABORTING"
	StateClosed     State = "CLOSED"
)

// Opener acquires the persistence gateway. Injected so validation failures
// can be shown to happen before any connection is acquired.
type Opener func(ctx context.Context) (gateway.Gateway, error)

// Options configures one feed run.
type Options struct {
	FilePath string
	FeedType model.FeedType

	// MaxSizeGB is the input size ceiling. 0 disables the size check.
	MaxSizeGB float64
	// SkipValidation bypasses the file checks entirely.
	SkipValidation bool

	MemoryCeilingMB     uint64
	MemoryCheckInterval time.Duration
	// GCIntervalRecords is K: a synchronous governor check runs every K
	// dispatched elements.
	GCIntervalRecords int64

	ProgressInterval int64
	MaxElementDepth  int
	IsolateChildren  bool
}

// Summary aggregates one completed run.
type Summary struct {
	RunID           string
	Counts          map[string]int64
	FailedRecords   int64
	UnresolvedKinds int64
	Elements        int64
	Elapsed         time.Duration
	ElementsPerSec  float64
	MemoryReclaims  int64
	PressureEvents  int64
}

// Orchestrator drives one run from validation to summary.
type Orchestrator struct {
	opts  Options
	open  Opener
	state State
	log   *zap.Logger
}

// New creates an orchestrator for one run.
func New(opts Options, open Opener) *Orchestrator {
	return &Orchestrator{
		opts:  opts,
		open:  open,
		state: StateInit,
		log:   zap.L().With(zap.String("component", "ingest")),
	}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// Run executes the full lifecycle and returns the run summary.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	defer func() { o.state = StateClosed }()

	o.state = StateValidating
	if !o.opts.SkipValidation {
		if err := o.validate(); err != nil {
			return nil, err
		}
	}

	gw, err := o.open(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "open gateway")
	}
	defer func() {
		if err := gw.Close(); err != nil {
			o.log.Error("gateway close failed", zap.Error(err))
		}
	}()

	o.state = StateStreaming
	runID, err := gw.StartRun(ctx, o.opts.FeedType, o.opts.FilePath)
	if err != nil {
		return nil, eris.Wrap(err, "start run log")
	}

	stats := dispatch.NewStats(o.opts.ProgressInterval)
	stream := feed.NewStream(o.opts.MaxElementDepth)
	dispatch.RegisterAll(stream, gw, stats, o.opts.IsolateChildren)

	gov := memgov.New(memgov.Config{
		CeilingMB: o.opts.MemoryCeilingMB,
		Interval:  o.opts.MemoryCheckInterval,
		OnPressure: func(current, ceiling uint64) {
			o.log.Warn("memory pressure",
				zap.Uint64("current_mb", current>>20),
				zap.Uint64("ceiling_mb", ceiling>>20),
			)
		},
	})
	govCtx, stopGov := context.WithCancel(ctx)
	defer stopGov()
	gov.Start(govCtx)

	if k := o.opts.GCIntervalRecords; k > 0 {
		stream.OnElement(func(count int64) {
			if count%k == 0 {
				gov.CheckNow()
			}
		})
	}

	f, err := os.Open(o.opts.FilePath)
	if err != nil {
		o.state = StateAborting
		o.failRun(ctx, gw, runID, err)
		return nil, eris.Wrapf(err, "open feed file %s", o.opts.FilePath)
	}
	defer f.Close() //nolint:errcheck

	o.log.Info("streaming feed",
		zap.String("file", o.opts.FilePath),
		zap.String("feed_type", string(o.opts.FeedType)),
	)

	start := time.Now()
	var elements int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		n, err := stream.Run(egCtx, f)
		elements = n
		return err
	})
	if err := eg.Wait(); err != nil {
		o.state = StateAborting
		o.failRun(ctx, gw, runID, err)
		return nil, eris.Wrap(err, "stream aborted")
	}

	o.state = StateCompleting
	elapsed := time.Since(start)
	counts := stats.Counts()

	summary := &Summary{
		RunID:           runID,
		Counts:          counts,
		FailedRecords:   stats.Failed(),
		UnresolvedKinds: counts["unresolved_kind"],
		Elements:        elements,
		Elapsed:         elapsed,
		MemoryReclaims:  gov.Reclaims(),
		PressureEvents:  gov.PressureEvents(),
	}
	if secs := elapsed.Seconds(); secs > 0 {
		summary.ElementsPerSec = float64(elements) / secs
	}

	if err := gw.CompleteRun(ctx, runID, counts); err != nil {
		o.log.Error("complete run log failed", zap.Error(err))
	}

	o.log.Info("run complete",
		zap.Int64("elements", elements),
		zap.Int64("failed_records", summary.FailedRecords),
		zap.Duration("elapsed", elapsed),
		zap.Float64("elements_per_sec", summary.ElementsPerSec),
	)
	return summary, nil
}

func (o *Orchestrator) validate() error {
	info, err := os.Stat(o.opts.FilePath)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("feed file %s not found", o.opts.FilePath)}
	}
	if info.IsDir() {
		return &ValidationError{Reason: fmt.Sprintf("%s is a directory", o.opts.FilePath)}
	}
	if o.opts.MaxSizeGB > 0 {
		limit := int64(o.opts.MaxSizeGB * float64(1<<30))
		if info.Size() > limit {
			return &ValidationError{Reason: fmt.Sprintf(
				"feed file is %d bytes, over the %.2f GB ceiling", info.Size(), o.opts.MaxSizeGB)}
		}
	}
	return nil
}

func (o *Orchestrator) failRun(ctx context.Context, gw gateway.Gateway, runID string, cause error) {
	if err := gw.FailRun(ctx, runID, cause.Error()); err != nil {
		o.log.Error("fail run log failed", zap.Error(err))
	}
}
