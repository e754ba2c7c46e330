package feed

import (
	"context"
	"encoding/xml"
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// Handler reacts to one closed element. Handlers must absorb their own
// failures; a handler never returns an error to the stream.
type Handler func(ctx context.Context, n *Node)

// Stream is a forward-only element dispatcher. Dispatchers subscribe to
// element names before Run; during Run each subscribed element's subtree is
// materialized once, handed to its handlers in document order, then released.
type Stream struct {
	handlers  map[string][]Handler
	maxDepth  int
	onElement func(count int64)
}

// NewStream creates a stream with the given element nesting bound.
func NewStream(maxDepth int) *Stream {
	if maxDepth <= 0 {
		maxDepth = 32
	}
	return &Stream{
		handlers: make(map[string][]Handler),
		maxDepth: maxDepth,
	}
}

// Subscribe registers a handler for an element name. Multiple handlers per
// name run in registration order.
func (s *Stream) Subscribe(elementName string, h Handler) {
	s.handlers[elementName] = append(s.handlers[elementName], h)
}

// OnElement sets a hook invoked after every dispatched element with the
// running element count. The orchestrator uses it for memory checks.
func (s *Stream) OnElement(fn func(count int64)) {
	s.onElement = fn
}

// Run parses r to EOF, dispatching subscribed elements in document order.
// It returns the number of dispatched elements. A token-level error or
// context cancellation aborts the parse; handler failures never do.
func (s *Stream) Run(ctx context.Context, r io.Reader) (int64, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "xml: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var count int64
	for {
		if ctx.Err() != nil {
			return count, eris.Wrap(ctx.Err(), "xml: context cancelled")
		}

		tok, err := decoder.Token()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, eris.Wrap(err, "xml: read token")
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		hs, subscribed := s.handlers[se.Name.Local]
		if !subscribed {
			continue
		}

		node, err := buildNode(decoder, se, s.maxDepth)
		if err != nil {
			return count, eris.Wrapf(err, "xml: build element %s", se.Name.Local)
		}

		for _, h := range hs {
			h(ctx, node)
		}

		count++
		if s.onElement != nil {
			s.onElement(count)
		}
	}
}
