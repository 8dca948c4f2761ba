package patch

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Stats counts the lines a diff inserts and deletes.
type Stats struct {
	Inserted int
	Deleted  int
}

// Changed reports whether the diff has any effect.
func (s Stats) Changed() bool { return s.Inserted > 0 || s.Deleted > 0 }

// GenerateDiff returns a diff-match-patch patch turning the baseline report
// into the current one, diffed line by line. Both sides are normalized first
// so CRLF and trailing whitespace do not show up as changes. label is written
// as a header comment; an empty string is returned when nothing changed.
func GenerateDiff(label, baseline, current string) (string, Stats) {
	before := normalize(baseline)
	after := normalize(current)

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	stats := countLines(diffs)
	if !stats.Changed() {
		return "", stats
	}

	patchText := dmp.PatchToText(dmp.PatchMake(before, diffs))

	var out strings.Builder
	out.WriteString(fmt.Sprintf("# diff for %s (+%d -%d lines)\n", label, stats.Inserted, stats.Deleted))
	out.WriteString(patchText)
	return out.String(), stats
}

func countLines(diffs []diffmatchpatch.Diff) Stats {
	var s Stats
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if n == 0 && d.Text != "" {
			n = 1
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Inserted += n
		case diffmatchpatch.DiffDelete:
			s.Deleted += n
		}
	}
	return s
}

// normalize trims trailing whitespace from each line and converts CRLF to LF.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
