// Package fmea scores a fixed catalog of failure modes against an Analysis
// and ranks them by risk priority number (RPN = severity × occurrence ×
// detection).
package fmea

import (
	"sort"

	"github.com/dshills/archcritic/internal/schema"
)

// Failure mode names. Mitigation narratives are keyed on these.
const (
	ModeIntegration  = "Integration failure"
	ModeMigration    = "Data migration error"
	ModeSecurity     = "Security breach"
	ModePerformance  = "Performance degradation"
	ModeAvailability = "Availability / DR gap"
	ModeMasterData   = "Master data quality issues"
)

// Thresholds for the occurrence adjustments.
const (
	manyIntegrations = 2
	highUserCount    = 2000
)

// Entry is one catalog row before profile adjustments.
type Entry struct {
	Mode        string
	Effect      string
	Severity    int
	Occurrence  int
	Detection   int
	Mitigations []string
}

var catalog = []Entry{
	{
		Mode: ModeIntegration, Effect: "Orders/shipments stuck; revenue impact",
		Severity: 9, Occurrence: 5, Detection: 5,
		Mitigations: []string{
			"Use standard IDoc/OData where possible",
			"Contract SLAs with external systems",
			"Retry & dead-letter queues; circuit breakers",
			"Observability on interfaces (alerts, traces)",
		},
	},
	{
		Mode: ModeMigration, Effect: "Inaccurate financials or inventory",
		Severity: 8, Occurrence: 4, Detection: 6,
		Mitigations: []string{
			"Reconciliation runs & parity reports",
			"Master-data validation rules (MDG-style)",
			"Dry runs + cutover checklists",
		},
	},
	{
		Mode: ModeSecurity, Effect: "PII loss / compliance fines",
		Severity: 10, Occurrence: 3, Detection: 4,
		Mitigations: []string{
			"RBAC & SoD; MFA/SSO",
			"Field-level encryption & masking",
			"Centralized audit logs; log retention",
		},
	},
	{
		Mode: ModePerformance, Effect: "Slow UI and batch overruns",
		Severity: 7, Occurrence: 4, Detection: 5,
		Mitigations: []string{
			"OData caching & CDS view tuning",
			"Archive/cold-store aged data",
			"Background jobs leveled; capacity tests",
		},
	},
	{
		Mode: ModeAvailability, Effect: "Extended outage",
		Severity: 9, Occurrence: 3, Detection: 4,
		Mitigations: []string{
			"Automated backups; tested restore",
			"Cross-region replicas; failover drills",
			"RPO/RTO in runbooks",
		},
	},
	{
		Mode: ModeMasterData, Effect: "Downstream errors across modules",
		Severity: 8, Occurrence: 5, Detection: 6,
		Mitigations: []string{
			"Data ownership & stewardship",
			"Duplicate prevention, validations",
			"Golden-record governance",
		},
	},
}

// adjustments add occurrence points to a mode when its heuristic holds.
var adjustments = map[string]func(a schema.Analysis) bool{
	ModeIntegration:  func(a schema.Analysis) bool { return len(a.External) >= manyIntegrations },
	ModePerformance:  func(a schema.Analysis) bool { return a.Users > highUserCount },
	ModeAvailability: func(a schema.Analysis) bool { return a.Hosting.IsCloudOrHybrid() },
}

// Register scores every catalog entry for a and returns the rows sorted by
// RPN descending. Ties keep catalog order.
func Register(a schema.Analysis) []schema.Risk {
	out := make([]schema.Risk, len(catalog))
	for i, e := range catalog {
		occ := e.Occurrence
		if adjust, ok := adjustments[e.Mode]; ok && adjust(a) {
			occ++
		}
		out[i] = schema.Risk{
			FailureMode: e.Mode,
			Effect:      e.Effect,
			Severity:    e.Severity,
			Occurrence:  occ,
			Detection:   e.Detection,
			RPN:         e.Severity * occ * e.Detection,
			Mitigations: append([]string(nil), e.Mitigations...),
		}
	}
	rank(out)
	return out
}

// rank orders rows by RPN descending, keeping input order on ties.
func rank(rows []schema.Risk) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].RPN > rows[j].RPN })
}

// Catalog returns a copy of the unadjusted catalog in declaration order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	for i, e := range catalog {
		e.Mitigations = append([]string(nil), e.Mitigations...)
		out[i] = e
	}
	return out
}
