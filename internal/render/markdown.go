package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/dshills/archcritic/internal/review"
	"github.com/dshills/archcritic/internal/schema"
)

type markdownRenderer struct{}

var mdFuncs = template.FuncMap{
	"join": strings.Join,
	"band": review.Band,
	"dot":  DOT,
	"orNone": func(s []string) string {
		if len(s) == 0 {
			return "none"
		}
		return strings.Join(s, ", ")
	},
}

var mdTemplate = template.Must(template.New("report").Funcs(mdFuncs).Parse(`# SAP Architecture Report

**Top risk:** {{ .Summary.TopFailureMode }} (RPN {{ .Summary.TopRPN }})
**High:** {{ .Summary.HighCount }} | **Medium:** {{ .Summary.MediumCount }} | **Low:** {{ .Summary.LowCount }}
> Note: counts reflect the full register; --min-rpn may hide some rows from this output.

---

## Parsed Requirements

- **Modules:** {{ join .Analysis.Modules ", " }}
- **External systems:** {{ orNone .Analysis.External }}
- **Hosting:** {{ .Analysis.Hosting }}
- **Compliance:** {{ orNone .Analysis.Compliance }}
- **Users:** {{ .Analysis.Users }}

## Agent Findings
{{ range .Agents }}
- **{{ .Agent }}**: {{ .Finding }}{{ end }}

## Proposed Architecture

` + "```dot" + `
{{ dot .Graph }}
` + "```" + `

## FMEA
{{ if .FMEA }}
| Failure Mode | Effect | S | O | D | RPN | Band | Mitigations |
|---|---|---|---|---|---|---|---|
{{ range .FMEA }}| {{ .FailureMode }} | {{ .Effect }} | {{ .Severity }} | {{ .Occurrence }} | {{ .Detection }} | {{ .RPN }} | {{ band .RPN }} | {{ join .Mitigations "; " }} |
{{ end }}{{ else }}
No risks at or above the requested RPN.
{{ end }}
## Mitigation Strategies

{{ .Mitigation }}

---
*{{ .Tool }} {{ .Version }} | Run: {{ .RunID }} | Input: {{ .InputHash }}*
`))

func (r *markdownRenderer) Render(b *schema.Bundle) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, b); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
