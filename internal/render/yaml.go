package render

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dshills/archcritic/internal/schema"
)

type yamlRenderer struct{}

func (r *yamlRenderer) Render(b *schema.Bundle) ([]byte, error) {
	out, err := yaml.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("rendering yaml: %w", err)
	}
	return out, nil
}
