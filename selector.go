package problemlens

import (
	"fmt"
	"sort"
)

// Strategy selects which diagnostic the status bar shows relative to
// the cursor.
type Strategy int

const (
	// StrategyActiveLine shows the last gate-enabled diagnostic on the
	// cursor's own line.
	StrategyActiveLine Strategy = iota
	// StrategyClosestProblem shows the first gate-enabled diagnostic on
	// the line nearest to the cursor.
	StrategyClosestProblem
	// StrategyClosestSeverity shows the most severe diagnostic in the
	// document, severity dominating distance.
	StrategyClosestSeverity
)

func (s Strategy) String() string {
	switch s {
	case StrategyActiveLine:
		return "activeLine"
	case StrategyClosestProblem:
		return "closestProblem"
	case StrategyClosestSeverity:
		return "closestSeverity"
	}
	return "unknown"
}

func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "activeLine":
		return StrategyActiveLine, nil
	case "closestProblem":
		return StrategyClosestProblem, nil
	case "closestSeverity":
		return StrategyClosestSeverity, nil
	}
	return 0, fmt.Errorf("unknown status bar strategy: %q", name)
}

// severityWeight scales the severity rank so it dominates any plausible
// line distance in the closestSeverity composite key.
const severityWeight = 1_000_000

// Select picks at most one diagnostic from the line map for the status
// bar, plus the number of diagnostics sharing the winner's line. A nil
// diagnostic means nothing qualifies and the caller must clear the
// displayed state. Inputs are never mutated.
func Select(lines LineMap, cursorLine int, strategy Strategy, gate SeverityGate) (*Diagnostic, int) {
	if len(lines) == 0 {
		return nil, 0
	}
	switch strategy {
	case StrategyClosestProblem:
		return selectClosestProblem(lines, cursorLine, gate)
	case StrategyClosestSeverity:
		return selectClosestSeverity(lines, cursorLine, gate)
	default:
		return selectActiveLine(lines, cursorLine, gate)
	}
}

// selectActiveLine considers only the cursor's own line. The last
// gate-enabled diagnostic wins, so later arrivals override earlier
// ones; the count is the line's full size regardless of the winner.
func selectActiveLine(lines LineMap, cursorLine int, gate SeverityGate) (*Diagnostic, int) {
	diags, ok := lines[cursorLine]
	if !ok {
		return nil, 0
	}

	var selected *Diagnostic
	for i := range diags {
		if gate.Enabled(diags[i].Severity) {
			selected = &diags[i]
		}
	}
	if selected == nil {
		return nil, 0
	}
	return selected, len(diags)
}

// selectClosestProblem scans lines by ascending distance from the
// cursor. Within the nearest line every diagnostic is considered in
// arrival order before moving on to the next-nearest line; the first
// gate-enabled diagnostic anywhere in that scan wins.
func selectClosestProblem(lines LineMap, cursorLine int, gate SeverityGate) (*Diagnostic, int) {
	order := sortedLines(lines)
	sort.SliceStable(order, func(i, j int) bool {
		return abs(order[i]-cursorLine) < abs(order[j]-cursorLine)
	})

	for _, line := range order {
		diags := lines[line]
		for i := range diags {
			if gate.Enabled(diags[i].Severity) {
				return &diags[i], len(diags)
			}
		}
	}
	return nil, 0
}

// selectClosestSeverity flattens the whole map and sorts by severity
// first, cursor distance second. The count is recomputed against the
// winner's line in the original map.
func selectClosestSeverity(lines LineMap, cursorLine int, gate SeverityGate) (*Diagnostic, int) {
	type entry struct {
		diag *Diagnostic
		line int
	}

	var entries []entry
	for _, line := range sortedLines(lines) {
		diags := lines[line]
		for i := range diags {
			entries = append(entries, entry{diag: &diags[i], line: line})
		}
	}

	key := func(e entry) int {
		return int(e.diag.Severity)*severityWeight + abs(e.line-cursorLine)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return key(entries[i]) < key(entries[j])
	})

	for _, e := range entries {
		if gate.Enabled(e.diag.Severity) {
			return e.diag, len(lines[e.diag.Range.Start.Line])
		}
	}
	return nil, 0
}

func sortedLines(lines LineMap) []int {
	order := make([]int, 0, len(lines))
	for line := range lines {
		order = append(order, line)
	}
	sort.Ints(order)
	return order
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
