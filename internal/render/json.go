package render

import (
	"encoding/json"

	"github.com/dshills/archcritic/internal/schema"
)

type jsonRenderer struct{}

func (r *jsonRenderer) Render(b *schema.Bundle) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}
