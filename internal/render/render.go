package render

import (
	"fmt"
	"io"

	"github.com/dshills/archcritic/internal/schema"
)

// Renderer formats a Bundle into bytes for output.
type Renderer interface {
	Render(b *schema.Bundle) ([]byte, error)
}

// Formats lists the supported output formats.
var Formats = []string{"json", "md", "yaml", "text", "dot"}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "json" (default), "md", "yaml", "text", "dot".
// Output is never colourised; use NewRendererFor when writing to a terminal.
func NewRenderer(format string) (Renderer, error) {
	return NewRendererFor(format, nil)
}

// NewRendererFor is NewRenderer for output bound for w. The text format
// colourises only when w is a terminal; nil stands for a file or other
// non-terminal destination.
func NewRendererFor(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "json":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	case "yaml":
		return &yamlRenderer{}, nil
	case "text":
		return newTextRenderer(w), nil
	case "dot":
		return &dotRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are json, md, yaml, text, dot", format)
	}
}
