package problemlens

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var allLevels = NewSeverityGate([]string{"error", "warning", "info", "hint"})

func TestSelect_ActiveLine(t *testing.T) {
	lines := LineMap{
		3: {
			diagAt(3, SeverityError, "error first"),
			diagAt(3, SeverityHint, "hint second"),
			diagAt(3, SeverityWarning, "warning last"),
		},
	}

	got, count := Select(lines, 3, StrategyActiveLine, allLevels)
	if got == nil {
		t.Fatal("expected a selection, got none")
	}
	if diff := cmp.Diff(diagAt(3, SeverityWarning, "warning last"), *got); diff != "" {
		t.Errorf("selected diagnostic mismatch (-want +got):\n%s", diff)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestSelect_ActiveLine_LastEnabledOverrides(t *testing.T) {
	// The hint arrives last but hints are gated off, so the warning in
	// the middle wins. The count still covers the whole line.
	gate := NewSeverityGate([]string{"error", "warning"})
	lines := LineMap{
		3: {
			diagAt(3, SeverityError, "error"),
			diagAt(3, SeverityWarning, "warning"),
			diagAt(3, SeverityHint, "hint"),
		},
	}

	got, count := Select(lines, 3, StrategyActiveLine, gate)
	if got == nil {
		t.Fatal("expected a selection, got none")
	}
	if got.Message != "warning" {
		t.Errorf("selected %q, want %q", got.Message, "warning")
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestSelect_ActiveLine_None(t *testing.T) {
	lines := LineMap{3: {diagAt(3, SeverityHint, "hint only")}}

	tests := []struct {
		name   string
		cursor int
		gate   SeverityGate
	}{
		{name: "cursor line absent", cursor: 9, gate: allLevels},
		{name: "line present but nothing enabled", cursor: 3, gate: NewSeverityGate([]string{"error"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := Select(lines, tt.cursor, StrategyActiveLine, tt.gate)
			if got != nil {
				t.Errorf("expected none, got %v", got)
			}
			if count != 0 {
				t.Errorf("count = %d, want 0", count)
			}
		})
	}
}

func TestSelect_ClosestProblem_ScansDisabledLineThenMovesOn(t *testing.T) {
	// Line 10 is nearer to the cursor but its warning is gated off. The
	// scan still visits line 10 first, finds nothing enabled there, and
	// then moves to line 20.
	gate := NewSeverityGate([]string{"error"})
	lines := LineMap{
		10: {diagAt(10, SeverityWarning, "near but disabled")},
		20: {diagAt(20, SeverityError, "far but enabled")},
	}

	got, count := Select(lines, 15, StrategyClosestProblem, gate)
	if got == nil {
		t.Fatal("expected a selection, got none")
	}
	if got.Message != "far but enabled" {
		t.Errorf("selected %q, want %q", got.Message, "far but enabled")
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestSelect_ClosestProblem_NearestLineFirstQualifyingWins(t *testing.T) {
	lines := LineMap{
		4: {diagAt(4, SeverityHint, "hint near"), diagAt(4, SeverityError, "error near")},
		9: {diagAt(9, SeverityError, "error far")},
	}
	gate := NewSeverityGate([]string{"error"})

	got, count := Select(lines, 5, StrategyClosestProblem, gate)
	if got == nil {
		t.Fatal("expected a selection, got none")
	}
	if got.Message != "error near" {
		t.Errorf("selected %q, want %q", got.Message, "error near")
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestSelect_ClosestProblem_EquidistantPrefersLowerLine(t *testing.T) {
	lines := LineMap{
		10: {diagAt(10, SeverityWarning, "above")},
		20: {diagAt(20, SeverityWarning, "below")},
	}

	got, _ := Select(lines, 15, StrategyClosestProblem, allLevels)
	if got == nil {
		t.Fatal("expected a selection, got none")
	}
	if got.Message != "above" {
		t.Errorf("selected %q, want %q (stable sort keeps natural line order on ties)", got.Message, "above")
	}
}

func TestSelect_ClosestSeverity_SeverityDominatesDistance(t *testing.T) {
	lines := LineMap{
		5:  {diagAt(5, SeverityWarning, "near warning")},
		50: {diagAt(50, SeverityError, "far error")},
	}

	got, count := Select(lines, 6, StrategyClosestSeverity, allLevels)
	if got == nil {
		t.Fatal("expected a selection, got none")
	}
	if got.Message != "far error" {
		t.Errorf("selected %q, want %q", got.Message, "far error")
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestSelect_ClosestSeverity_DistanceBreaksTies(t *testing.T) {
	lines := LineMap{
		2:  {diagAt(2, SeverityError, "near error")},
		40: {diagAt(40, SeverityError, "far error")},
		3:  {diagAt(3, SeverityWarning, "adjacent warning")},
	}

	got, _ := Select(lines, 1, StrategyClosestSeverity, allLevels)
	if got == nil {
		t.Fatal("expected a selection, got none")
	}
	if got.Message != "near error" {
		t.Errorf("selected %q, want %q", got.Message, "near error")
	}
}

func TestSelect_ClosestSeverity_CountUsesWinnerLine(t *testing.T) {
	lines := LineMap{
		8: {
			diagAt(8, SeverityError, "winner"),
			diagAt(8, SeverityHint, "same line"),
		},
		9: {diagAt(9, SeverityWarning, "other line")},
	}

	got, count := Select(lines, 9, StrategyClosestSeverity, allLevels)
	if got == nil {
		t.Fatal("expected a selection, got none")
	}
	if got.Message != "winner" {
		t.Errorf("selected %q, want %q", got.Message, "winner")
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 (diagnostics on the winner's line)", count)
	}
}

func TestSelect_EmptyAggregation(t *testing.T) {
	for _, strategy := range []Strategy{StrategyActiveLine, StrategyClosestProblem, StrategyClosestSeverity} {
		t.Run(strategy.String(), func(t *testing.T) {
			got, count := Select(LineMap{}, 0, strategy, allLevels)
			if got != nil || count != 0 {
				t.Errorf("Select(empty) = (%v, %d), want (nil, 0)", got, count)
			}
		})
	}
}

func TestSelect_Idempotent(t *testing.T) {
	lines := LineMap{
		1: {diagAt(1, SeverityWarning, "w"), diagAt(1, SeverityError, "e")},
		7: {diagAt(7, SeverityHint, "h")},
	}

	for _, strategy := range []Strategy{StrategyActiveLine, StrategyClosestProblem, StrategyClosestSeverity} {
		t.Run(strategy.String(), func(t *testing.T) {
			first, firstCount := Select(lines, 1, strategy, allLevels)
			second, secondCount := Select(lines, 1, strategy, allLevels)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("repeated Select disagrees (-first +second):\n%s", diff)
			}
			if firstCount != secondCount {
				t.Errorf("counts differ: %d vs %d", firstCount, secondCount)
			}
		})
	}
}
