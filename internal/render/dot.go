package render

import (
	"fmt"
	"strings"

	"github.com/dshills/archcritic/internal/schema"
)

type dotRenderer struct{}

func (r *dotRenderer) Render(b *schema.Bundle) ([]byte, error) {
	return []byte(DOT(b.Graph) + "\n"), nil
}

// DOT renders g as a Graphviz digraph: left-to-right, rounded boxes, every
// node declared in order before the edges.
func DOT(g schema.Graph) string {
	lines := []string{"digraph G {", "rankdir=LR;", "node [shape=box, style=rounded];"}
	for _, n := range g.Nodes {
		lines = append(lines, fmt.Sprintf("%s;", quote(n)))
	}
	for _, e := range g.Edges {
		lines = append(lines, fmt.Sprintf("%s -> %s;", quote(e.From), quote(e.To)))
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
