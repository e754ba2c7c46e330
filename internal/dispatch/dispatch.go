// Package dispatch turns element-closed signals from the feed stream into
// persisted records. Four dispatcher groups subscribe independently:
// reference vocabularies, persons, entities, and association holders. Every
// handler is wrapped so a failure in one element is logged with the record
// key, counted, and never propagated to the stream.
package dispatch

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/watchlist-cli/internal/feed"
	"github.com/sells-group/watchlist-cli/internal/gateway"
)

// RegisterAll wires the four dispatcher groups onto the stream.
func RegisterAll(s *feed.Stream, gw gateway.Gateway, stats *Stats, isolateChildren bool) {
	NewReference(gw, stats).Register(s)
	NewPerson(gw, stats, isolateChildren).Register(s)
	NewEntity(gw, stats, isolateChildren).Register(s)
	NewAssociation(gw, stats).Register(s)
}

// guard wraps a handler body so extraction or persistence failures, including
// panics from malformed structures, stop at the element boundary.
func guard(stats *Stats, kind string, fn func(context.Context, *feed.Node) error) feed.Handler {
	return func(ctx context.Context, n *feed.Node) {
		key := n.Attr("id")
		if key == "" {
			key = n.Attr("code")
		}
		defer func() {
			if r := recover(); r != nil {
				stats.Fail(kind, key, eris.Errorf("panic: %v", r))
			}
		}()
		if err := fn(ctx, n); err != nil {
			stats.Fail(kind, key, err)
			return
		}
		stats.Record(kind)
	}
}
