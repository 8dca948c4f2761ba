package schema

import "time"

// Bundle is the top-level export structure for one analysis run.
type Bundle struct {
	Tool        string    `json:"tool" yaml:"tool"`
	Version     string    `json:"version" yaml:"version"`
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Input       string    `json:"input" yaml:"input"`
	InputHash   string    `json:"input_hash" yaml:"input_hash"` // SHA-256 of the analysed text, computed before redaction
	Analysis    Analysis  `json:"analysis" yaml:"analysis"`
	Agents      []Finding `json:"agents" yaml:"agents"`
	FMEA        []Risk    `json:"fmea" yaml:"fmea"`
	// MinRPN is the output threshold applied to FMEA; 0 keeps the full register.
	MinRPN      int       `json:"min_rpn" yaml:"min_rpn"`
	Graph       Graph     `json:"graph" yaml:"graph"`
	Mitigation  string    `json:"mitigation" yaml:"mitigation"`
	Summary     Summary   `json:"summary" yaml:"summary"`
}

// Analysis is the structured profile extracted from requirements text.
type Analysis struct {
	Modules    []string `json:"modules" yaml:"modules"`
	External   []string `json:"external" yaml:"external"`
	Hosting    Hosting  `json:"hosting" yaml:"hosting"`
	Compliance []string `json:"compliance" yaml:"compliance"`
	Users      int      `json:"users" yaml:"users"`
}

// Hosting is the deployment target of the landscape.
type Hosting string

const (
	HostingCloud  Hosting = "S/4HANA Cloud"
	HostingOnPrem Hosting = "On-Prem"
	HostingAzure  Hosting = "Azure Cloud"
	HostingAWS    Hosting = "AWS Cloud"
	HostingHybrid Hosting = "Hybrid"
)

// IsCloudOrHybrid reports whether h runs on any cloud footprint.
// Only On-Prem is excluded.
func (h Hosting) IsCloudOrHybrid() bool {
	switch h {
	case HostingCloud, HostingAzure, HostingAWS, HostingHybrid:
		return true
	}
	return false
}

// IsValidHosting reports whether h is one of the five hosting models.
func IsValidHosting(h Hosting) bool {
	switch h {
	case HostingCloud, HostingOnPrem, HostingAzure, HostingAWS, HostingHybrid:
		return true
	}
	return false
}

// Finding is the output of one advisory agent.
type Finding struct {
	Agent   string `json:"agent" yaml:"agent"`
	Finding string `json:"finding" yaml:"finding"`
}

// Risk is one scored row of the FMEA register.
type Risk struct {
	FailureMode string   `json:"failure_mode" yaml:"failure_mode"`
	Effect      string   `json:"effect" yaml:"effect"`
	Severity    int      `json:"severity" yaml:"severity"`
	Occurrence  int      `json:"occurrence" yaml:"occurrence"`
	Detection   int      `json:"detection" yaml:"detection"`
	RPN         int      `json:"rpn" yaml:"rpn"`
	Mitigations []string `json:"mitigations" yaml:"mitigations"`
}

// Graph is a directed dependency graph description. Nodes are sorted;
// edges keep construction order.
type Graph struct {
	Nodes []string `json:"nodes" yaml:"nodes"`
	Edges []Edge   `json:"edges" yaml:"edges"`
}

// Edge is a directed (From -> To) dependency.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Summary holds register-level counts.
// Counts always reflect the full register before any --min-rpn filtering.
type Summary struct {
	TopRPN          int    `json:"top_rpn" yaml:"top_rpn"`
	TopFailureMode  string `json:"top_failure_mode" yaml:"top_failure_mode"`
	HighCount       int    `json:"high_count" yaml:"high_count"`
	MediumCount     int    `json:"medium_count" yaml:"medium_count"`
	LowCount        int    `json:"low_count" yaml:"low_count"`
	ComplianceCount int    `json:"compliance_count" yaml:"compliance_count"`
}

// Band buckets a risk priority number.
type Band string

const (
	BandLow    Band = "LOW"
	BandMedium Band = "MEDIUM"
	BandHigh   Band = "HIGH"
)

// BandOrdinal returns the numeric ordering for a band, used by --fail-on
// comparison. LOW(0) < MEDIUM(1) < HIGH(2).
// Returns -1 for an unrecognised band.
func BandOrdinal(b Band) int {
	switch b {
	case BandLow:
		return 0
	case BandMedium:
		return 1
	case BandHigh:
		return 2
	default:
		return -1
	}
}
