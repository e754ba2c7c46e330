package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "own text",
			node: &Node{Name: "Reference", Text: "EU List"},
			want: "EU List",
		},
		{
			name: "value attribute beside other attributes",
			node: &Node{Name: "OccTitle", Attrs: map[string]string{"SinceYear": "2001", "value": "Minister"}},
			want: "Minister",
		},
		{
			name: "name attribute",
			node: &Node{Name: "Source", Attrs: map[string]string{"name": "Official Gazette"}},
			want: "Official Gazette",
		},
		{
			name: "text-bearing child wins over scalar scan",
			node: &Node{Name: "Wrapper", Children: []*Node{
				{Name: "Ignored", Text: "no"},
				{Name: "Value", Text: "yes"},
			}},
			want: "yes",
		},
		{
			name: "first scalar child",
			node: &Node{Name: "Wrapper", Children: []*Node{
				{Name: "Nested", Children: []*Node{{Name: "X", Text: "deep"}}},
				{Name: "Scalar", Text: "flat"},
			}},
			want: "flat",
		},
		{
			name: "own text wins over attribute",
			node: &Node{Name: "N", Text: "direct", Attrs: map[string]string{"value": "attr"}},
			want: "direct",
		},
		{
			name: "nothing matches is empty, never a dump",
			node: &Node{Name: "Empty", Attrs: map[string]string{"Day": "3"}, Children: []*Node{
				{Name: "Inner", Children: []*Node{{Name: "X"}}},
			}},
			want: "",
		},
		{
			name: "nil node",
			node: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(tt.node))
		})
	}
}
