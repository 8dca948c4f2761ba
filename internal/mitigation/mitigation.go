// Package mitigation composes the mitigation narrative for the
// highest-ranked risks of a register.
package mitigation

import (
	"strings"

	"github.com/dshills/archcritic/internal/fmea"
	"github.com/dshills/archcritic/internal/schema"
)

// TopN is how many ranked risks receive a narrative block.
const TopN = 4

// Fallback is returned when no block applies.
const Fallback = "- No high risks detected beyond standard good practices."

var riskBlocks = map[string]string{
	fmea.ModeIntegration: "- **Integration failure:** Prefer *standard SAP APIs* (OData/IDoc), stabilize with message queues " +
		"(retry + DLQ). Monitor flows with **open-source Prometheus/Grafana**; contract SLAs with 3rd parties.",
	fmea.ModeMigration: "- **Data migration error:** Use reconciliation reports and trial cutovers; apply **data quality rules** " +
		"and duplicate checks (MDG principles). Validate with **Great Expectations** (open-source).",
	fmea.ModeSecurity: "- **Security breach:** Enforce **RBAC/SoD** and SSO/MFA; encrypt in transit/at rest; enable field masking; " +
		"centralize audit logs; periodic access reviews.",
	fmea.ModeAvailability: "- **Availability/DR:** Automate backups, test restore, configure cross-region replicas and run **failover drills**; " +
		"document RPO/RTO and escalation runbooks.",
	fmea.ModePerformance: "- **Performance:** Tune CDS views, cache OData, level background jobs; run load tests; archive historical data.",
	fmea.ModeMasterData: "- **Master data quality:** Define data owners/stewards; validations and duplicate prevention; " +
		"golden-record governance and change workflows.",
}

// complianceBlocks are appended whenever their tag is present, in this order.
var complianceBlocks = []struct {
	Tag   string
	Block string
}{
	{"GDPR", "- **GDPR:** Minimize PII, masking/pseudonymization, consent tracking, and retention schedules."},
	{"HIPAA", "- **HIPAA:** End-to-end encryption, BAA with vendors, and strict audit logging."},
}

// Compose builds the narrative for risks, which must already be ranked.
// Blocks for the first TopN risks come first, then compliance blocks for
// every matching tag in a regardless of rank.
func Compose(risks []schema.Risk, a schema.Analysis) string {
	var lines []string

	top := risks
	if len(top) > TopN {
		top = top[:TopN]
	}
	for _, r := range top {
		if block, ok := riskBlocks[r.FailureMode]; ok {
			lines = append(lines, block)
		}
	}

	for _, cb := range complianceBlocks {
		if hasTag(a.Compliance, cb.Tag) {
			lines = append(lines, cb.Block)
		}
	}

	if len(lines) == 0 {
		return Fallback
	}
	return strings.Join(lines, "\n")
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
