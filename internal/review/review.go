package review

import "github.com/dshills/archcritic/internal/schema"

// Band thresholds on the risk priority number.
const (
	HighRPN   = 200
	MediumRPN = 120
)

// Band classifies an RPN: HIGH at 200 and above, MEDIUM at 120 and above,
// LOW otherwise.
func Band(rpn int) schema.Band {
	switch {
	case rpn >= HighRPN:
		return schema.BandHigh
	case rpn >= MediumRPN:
		return schema.BandMedium
	default:
		return schema.BandLow
	}
}

// Summarize computes the register summary from all risks.
// It is always computed before any --min-rpn filtering.
func Summarize(risks []schema.Risk, a schema.Analysis) schema.Summary {
	s := schema.Summary{ComplianceCount: len(a.Compliance)}
	for _, r := range risks {
		if r.RPN > s.TopRPN {
			s.TopRPN = r.RPN
			s.TopFailureMode = r.FailureMode
		}
		switch Band(r.RPN) {
		case schema.BandHigh:
			s.HighCount++
		case schema.BandMedium:
			s.MediumCount++
		default:
			s.LowCount++
		}
	}
	return s
}

// WorstBand returns the band of the highest-ranked risk, or LOW for an
// empty register.
func WorstBand(risks []schema.Risk) schema.Band {
	worst := schema.BandLow
	for _, r := range risks {
		if b := Band(r.RPN); schema.BandOrdinal(b) > schema.BandOrdinal(worst) {
			worst = b
		}
	}
	return worst
}

// FilterByRPN returns only risks whose RPN is at least minRPN, keeping order.
func FilterByRPN(risks []schema.Risk, minRPN int) []schema.Risk {
	if minRPN <= 0 {
		return risks
	}
	out := make([]schema.Risk, 0, len(risks))
	for _, r := range risks {
		if r.RPN >= minRPN {
			out = append(out, r)
		}
	}
	return out
}
