package dispatch

import (
	"sync"

	"go.uber.org/zap"
)

// Stats accumulates per-kind record counters across all dispatcher groups and
// emits a progress observation every N processed records.
type Stats struct {
	mu sync.Mutex

	log           *zap.Logger
	progressEvery int64

	processed  int64
	counts     map[string]int64
	failed     int64
	unresolved int64
}

// NewStats creates a counter set. progressEvery <= 0 disables progress logs.
func NewStats(progressEvery int64) *Stats {
	return &Stats{
		log:           zap.L().With(zap.String("component", "dispatch")),
		progressEvery: progressEvery,
		counts:        make(map[string]int64),
	}
}

// Record counts one successfully persisted record of the given kind.
func (s *Stats) Record(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[kind]++
	s.processed++
	if s.progressEvery > 0 && s.processed%s.progressEvery == 0 {
		s.log.Info("progress",
			zap.Int64("processed", s.processed),
			zap.Int64("failed", s.failed),
		)
	}
}

// Fail counts one failed record and logs it with its identifying key.
func (s *Stats) Fail(kind, key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed++
	s.log.Error("record failed",
		zap.String("kind", kind),
		zap.String("key", key),
		zap.Error(err),
	)
}

// UnresolvedKind counts one associate whose endpoint kind could not be
// resolved against persisted persons.
func (s *Stats) UnresolvedKind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unresolved++
}

// Processed returns the total number of successfully persisted records.
func (s *Stats) Processed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processed
}

// Failed returns the total number of failed records.
func (s *Stats) Failed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Counts returns a copy of the per-kind counters plus the failed and
// unresolved-kind totals.
func (s *Stats) Counts() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.counts)+2)
	for k, v := range s.counts {
		out[k] = v
	}
	out["failed_records"] = s.failed
	out["unresolved_kind"] = s.unresolved
	return out
}
