// Package feed implements the forward-only element stream over a watchlist
// XML feed. The parse is single-pass and non-seekable; at most one subscribed
// element's subtree is held in memory at a time.
package feed

import (
	"encoding/xml"
	"strings"

	"github.com/rotisserie/eris"
)

// Node is one parsed element: its attributes, the character data directly
// beneath it, and its child elements in document order.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Attr returns the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Each returns all children with the given name in document order.
func (n *Node) Each(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// buildNode consumes tokens from the decoder until se's matching end element
// and returns the subtree. maxDepth bounds nesting so a malformed feed cannot
// recurse unboundedly.
func buildNode(d *xml.Decoder, se xml.StartElement, maxDepth int) (*Node, error) {
	if maxDepth <= 0 {
		return nil, eris.Errorf("element %s exceeds maximum depth", se.Name.Local)
	}

	n := &Node{Name: se.Name.Local}
	if len(se.Attr) > 0 {
		n.Attrs = make(map[string]string, len(se.Attr))
		for _, a := range se.Attr {
			n.Attrs[a.Name.Local] = a.Value
		}
	}

	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, eris.Wrapf(err, "read token inside %s", se.Name.Local)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := buildNode(d, t, maxDepth-1)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = strings.TrimSpace(text.String())
			return n, nil
		}
	}
}
