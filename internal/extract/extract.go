// Package extract turns free-text requirements into a structured Analysis
// using keyword tables. There is no tokenisation: a keyword matches anywhere
// it occurs as a substring, including inside longer words.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/archcritic/internal/schema"
)

// usersPattern matches a standalone run of 3 to 6 ASCII digits.
var usersPattern = regexp.MustCompile(`\b(\d{3,6})\b`)

// Extract builds the Analysis for text. It never fails; empty text yields
// the anchor-only default profile.
func Extract(text string) schema.Analysis {
	t := strings.ToLower(text)

	return schema.Analysis{
		Modules:    modules(t),
		External:   matchAll(t, externalRules),
		Hosting:    hosting(t),
		Compliance: compliance(t),
		Users:      users(t),
	}
}

// modules returns the matched module tags plus both anchors, sorted.
func modules(t string) []string {
	set := make(map[string]struct{}, len(moduleRules))
	for _, tag := range matchAll(t, moduleRules) {
		set[tag] = struct{}{}
	}
	set[ModuleCore] = struct{}{}
	set[ModuleMobile] = struct{}{}

	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// matchAll returns the tags of every rule with at least one keyword in t,
// in rule order.
func matchAll(t string, rules []rule) []string {
	out := []string{}
	for _, r := range rules {
		if containsAny(t, r.Keywords) {
			out = append(out, r.Tag)
		}
	}
	return out
}

func hosting(t string) schema.Hosting {
	h := schema.HostingCloud
	for _, step := range hostingChain {
		if containsAny(t, step.Keywords) {
			h = step.Hosting
		}
	}
	return h
}

func compliance(t string) []string {
	out := []string{}
	for _, tok := range complianceTokens {
		if strings.Contains(t, tok) {
			out = append(out, upper(tok))
		}
	}
	return out
}

// users takes the first standalone 3-6 digit number in t. What the number
// counts is not checked.
func users(t string) int {
	m := usersPattern.FindStringSubmatch(t)
	if m == nil {
		return DefaultUsers
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultUsers
	}
	return n
}

func containsAny(t string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

func upper(s string) string { return strings.ToUpper(s) }
