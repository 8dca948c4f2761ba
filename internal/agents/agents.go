// Package agents holds the advisory panel: ten fixed rules that each turn an
// Analysis into one line of guidance.
package agents

import (
	"fmt"
	"strings"

	"github.com/dshills/archcritic/internal/schema"
)

// Agent is one named advisory rule.
type Agent struct {
	Name string
	Rule func(a schema.Analysis) string
}

var panel = []Agent{
	{"Requirements Analyst", func(schema.Analysis) string {
		return "Scope confirmed; clarify volumes, SLAs, and localization packs."
	}},
	{"Process Mapper", func(schema.Analysis) string {
		return "Map O2C (SD), P2P (MM/Ariba), RtR (FI), Mfg (PP/QM/PM) as applicable."
	}},
	{"Module Recommender", func(a schema.Analysis) string {
		return "Active modules: " + strings.Join(a.Modules, ", ")
	}},
	{"Integration Planner", func(a schema.Analysis) string {
		if len(a.External) == 0 {
			return "Integrations: Standard SAP APIs only"
		}
		return "Integrations: " + strings.Join(a.External, ", ")
	}},
	{"Security Architect", func(a schema.Analysis) string {
		if len(a.Compliance) == 0 {
			return "RBAC, SoD, encryption; enable audit trails."
		}
		return "RBAC, SoD, encryption in transit/at rest; audit trails for " + strings.Join(a.Compliance, ", ")
	}},
	{"Performance Engineer", func(a schema.Analysis) string {
		return fmt.Sprintf("Design for ~%d users; cache OData; batch heavy jobs.", a.Users)
	}},
	{"Data Architect", func(schema.Analysis) string {
		return "Use BW/4HANA for KPIs; MDG for golden records if multiple sources."
	}},
	{"DR & Resilience", func(schema.Analysis) string {
		return "Cross-region DR; RPO ≤ 15m, RTO ≤ 2h; frequent backups."
	}},
	{"Testing Lead", func(schema.Analysis) string {
		return "Automate regression for O2C/P2P/RtR + smoke performance tests."
	}},
	{"Change Manager", func(schema.Analysis) string {
		return "Fit-to-Standard; phased releases; training & hypercare."
	}},
}

// Run evaluates every agent against a and returns one finding per agent in
// panel order.
func Run(a schema.Analysis) []schema.Finding {
	out := make([]schema.Finding, len(panel))
	for i, ag := range panel {
		out[i] = schema.Finding{Agent: ag.Name, Finding: ag.Rule(a)}
	}
	return out
}

// Names returns the agent names in panel order.
func Names() []string {
	out := make([]string, len(panel))
	for i, ag := range panel {
		out[i] = ag.Name
	}
	return out
}
