package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/archcritic/internal/schema"
)

// Fixed shape of every bundle the pipeline produces.
const (
	FindingCount = 10
	RiskCount    = 6
	MaxMinRPN    = 1000
)

var anchors = []string{"S/4HANA", "Fiori"}

// Parse strips markdown fences, unmarshals a stored bundle, and validates
// the invariants every pipeline run guarantees.
func Parse(raw string) (*schema.Bundle, error) {
	cleaned := stripFences(raw)

	var b schema.Bundle
	if err := json.Unmarshal([]byte(cleaned), &b); err != nil {
		return nil, fmt.Errorf("JSON parse failed: %w", err)
	}

	if err := validateBundle(&b); err != nil {
		return nil, err
	}

	return &b, nil
}

// stripFences removes leading/trailing markdown code fences (```json ... ``` or ``` ... ```).
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx >= 0 {
			s = s[idx+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		idx := strings.LastIndex(s, "\n```")
		if idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

func validateBundle(b *schema.Bundle) error {
	if err := validateAnalysis(b.Analysis); err != nil {
		return err
	}
	if len(b.Agents) != FindingCount {
		return fmt.Errorf("agents: expected %d findings, got %d", FindingCount, len(b.Agents))
	}
	for i, f := range b.Agents {
		if f.Agent == "" {
			return fmt.Errorf("agents[%d]: agent name is required", i)
		}
	}
	if b.MinRPN < 0 || b.MinRPN > MaxMinRPN {
		return fmt.Errorf("min_rpn %d must be between 0 and %d", b.MinRPN, MaxMinRPN)
	}
	// A filtered export keeps only the rows at or above min_rpn.
	if b.MinRPN == 0 && len(b.FMEA) != RiskCount {
		return fmt.Errorf("fmea: expected %d risks, got %d", RiskCount, len(b.FMEA))
	}
	if len(b.FMEA) > RiskCount {
		return fmt.Errorf("fmea: expected at most %d risks, got %d", RiskCount, len(b.FMEA))
	}
	for i, r := range b.FMEA {
		if err := validateRisk(r, i); err != nil {
			return err
		}
		if r.RPN < b.MinRPN {
			return fmt.Errorf("fmea[%d]: rpn %d is below min_rpn %d", i, r.RPN, b.MinRPN)
		}
		if i > 0 && r.RPN > b.FMEA[i-1].RPN {
			return fmt.Errorf("fmea[%d]: rpn %d exceeds previous rpn %d; register must be sorted descending", i, r.RPN, b.FMEA[i-1].RPN)
		}
	}
	return nil
}

func validateAnalysis(a schema.Analysis) error {
	for _, anchor := range anchors {
		if !contains(a.Modules, anchor) {
			return fmt.Errorf("analysis: anchor module %q missing", anchor)
		}
	}
	if !schema.IsValidHosting(a.Hosting) {
		return fmt.Errorf("analysis: unknown hosting %q", a.Hosting)
	}
	if a.Users < 0 {
		return fmt.Errorf("analysis: users %d must not be negative", a.Users)
	}
	return nil
}

func validateRisk(r schema.Risk, idx int) error {
	prefix := fmt.Sprintf("fmea[%d]", idx)

	if r.FailureMode == "" {
		return fmt.Errorf("%s: failure_mode is required", prefix)
	}
	for _, v := range []struct {
		name string
		val  int
	}{{"severity", r.Severity}, {"occurrence", r.Occurrence}, {"detection", r.Detection}} {
		if v.val < 1 || v.val > 10 {
			return fmt.Errorf("%s: %s %d must be between 1 and 10", prefix, v.name, v.val)
		}
	}
	if want := r.Severity * r.Occurrence * r.Detection; r.RPN != want {
		return fmt.Errorf("%s: rpn %d does not equal severity*occurrence*detection (%d)", prefix, r.RPN, want)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
