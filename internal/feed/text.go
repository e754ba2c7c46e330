package feed

// Text-bearing nodes arrive in several shapes depending on where in the feed
// they sit: plain character data, a value attribute beside other attributes,
// a dedicated child element, or a wrapper whose first child carries the text.
// Extraction tries each shape in a fixed order and first match wins. When
// every strategy misses, the result is empty — callers skip or null the
// field; a stringified node is never persisted.

type textStrategy func(*Node) (string, bool)

var textStrategies = []textStrategy{
	ownText,
	valueAttr,
	textChild,
	firstScalarChild,
}

// ExtractText resolves the text of a node through the fallback chain.
func ExtractText(n *Node) string {
	if n == nil {
		return ""
	}
	for _, s := range textStrategies {
		if v, ok := s(n); ok {
			return v
		}
	}
	return ""
}

// ownText: the node's direct character data.
func ownText(n *Node) (string, bool) {
	if n.Text != "" {
		return n.Text, true
	}
	return "", false
}

// valueAttr: a dedicated value-bearing attribute beside the attribute bag.
func valueAttr(n *Node) (string, bool) {
	for _, name := range []string{"value", "text", "name"} {
		if v, ok := n.Attrs[name]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// textChild: a known text-bearing child element.
func textChild(n *Node) (string, bool) {
	for _, name := range []string{"Value", "Text"} {
		if c := n.Child(name); c != nil && c.Text != "" {
			return c.Text, true
		}
	}
	return "", false
}

// firstScalarChild: the first child that is a pure scalar (text, no children
// of its own).
func firstScalarChild(n *Node) (string, bool) {
	for _, c := range n.Children {
		if len(c.Children) == 0 && c.Text != "" {
			return c.Text, true
		}
	}
	return "", false
}
