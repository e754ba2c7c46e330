// Package memgov samples process memory during a feed run and requests
// reclamation when usage crosses a configured threshold. The governor is
// advisory: it raises a pressure signal when reclamation is not enough, and
// never terminates the process.
package memgov

import (
	"context"
	"os"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/CAFxX/gcnotifier"
	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
)

// Sampler reports current memory usage in bytes.
type Sampler func() (uint64, error)

// Config tunes the governor. Zero values fall back to defaults.
type Config struct {
	// CeilingMB is the advisory memory ceiling. 0 disables the governor.
	CeilingMB uint64
	// Fraction of the ceiling at which reclamation is requested. Default 0.8.
	Fraction float64
	// Interval between wall-clock checks. Default 30s.
	Interval time.Duration
	// OnPressure is invoked when usage stays above the ceiling after
	// reclamation. Advisory only.
	OnPressure func(currentBytes, ceilingBytes uint64)
	// Sampler overrides memory sampling; tests inject a fake.
	Sampler Sampler
	// Reclaim overrides the reclamation pass; tests inject a no-op.
	Reclaim func()
}

// Governor watches memory on a timer, on demand, and after each GC cycle.
type Governor struct {
	ceiling    uint64
	threshold  uint64
	interval   time.Duration
	sample     Sampler
	reclaim    func()
	onPressure func(current, ceiling uint64)
	log        *zap.Logger

	mu        sync.Mutex
	lastUsage uint64
	reclaims  int64
	pressures int64
}

// New builds a governor from cfg.
func New(cfg Config) *Governor {
	if cfg.Fraction <= 0 || cfg.Fraction > 1 {
		cfg.Fraction = 0.8
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Sampler == nil {
		cfg.Sampler = ProcessSampler
	}
	if cfg.Reclaim == nil {
		cfg.Reclaim = func() {
			runtime.GC()
			debug.FreeOSMemory()
		}
	}

	ceilingBytes := cfg.CeilingMB * 1024 * 1024
	return &Governor{
		ceiling:    ceilingBytes,
		threshold:  uint64(float64(ceilingBytes) * cfg.Fraction),
		interval:   cfg.Interval,
		sample:     cfg.Sampler,
		reclaim:    cfg.Reclaim,
		onPressure: cfg.OnPressure,
		log:        zap.L().With(zap.String("component", "memgov")),
	}
}

// ProcessSampler reports the larger of the process RSS and the Go heap, so a
// large RSS the runtime has not returned to the OS still counts.
func ProcessSampler() (uint64, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	usage := ms.HeapInuse + ms.StackInuse

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return usage, nil
	}
	mem, err := proc.MemoryInfo()
	if err != nil || mem == nil {
		return usage, nil
	}
	if mem.RSS > usage {
		usage = mem.RSS
	}
	return usage, nil
}

// Start runs the wall-clock check loop and a post-GC resampling loop until
// ctx is cancelled. It returns immediately.
func (g *Governor) Start(ctx context.Context) {
	if g.ceiling == 0 {
		return
	}
	go func() {
		gcn := gcnotifier.New()
		defer gcn.Close()

		ticker := time.NewTicker(g.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				g.CheckNow()
			case _, ok := <-gcn.AfterGC():
				if !ok {
					return
				}
				// The heap just shrank; refresh the reading so the next
				// threshold comparison uses the post-GC figure.
				if usage, err := g.sample(); err == nil {
					g.mu.Lock()
					g.lastUsage = usage
					g.mu.Unlock()
				}
			}
		}
	}()
}

// CheckNow samples immediately, reclaims over the threshold, and raises the
// pressure signal when reclamation was not enough. The orchestrator calls it
// every K dispatched elements.
func (g *Governor) CheckNow() {
	if g.ceiling == 0 {
		return
	}
	usage, err := g.sample()
	if err != nil {
		g.log.Warn("memory sample failed", zap.Error(err))
		return
	}

	g.mu.Lock()
	g.lastUsage = usage
	g.mu.Unlock()

	if usage < g.threshold {
		return
	}

	g.log.Info("requesting memory reclamation",
		zap.Uint64("usage_mb", usage>>20),
		zap.Uint64("threshold_mb", g.threshold>>20),
	)
	g.reclaim()

	g.mu.Lock()
	g.reclaims++
	g.mu.Unlock()

	after, err := g.sample()
	if err != nil {
		g.log.Warn("memory resample failed", zap.Error(err))
		return
	}

	g.mu.Lock()
	g.lastUsage = after
	g.mu.Unlock()

	if after > g.ceiling {
		g.mu.Lock()
		g.pressures++
		g.mu.Unlock()
		g.log.Warn("memory pressure",
			zap.Uint64("usage_mb", after>>20),
			zap.Uint64("ceiling_mb", g.ceiling>>20),
		)
		if g.onPressure != nil {
			g.onPressure(after, g.ceiling)
		}
	}
}

// LastUsage returns the most recent sample in bytes.
func (g *Governor) LastUsage() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastUsage
}

// Reclaims returns how many reclamation passes have been requested.
func (g *Governor) Reclaims() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reclaims
}

// PressureEvents returns how many pressure signals have been raised.
func (g *Governor) PressureEvents() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pressures
}
