package problemlens

// LineMap groups a document's displayable diagnostics by the zero-based
// line their range starts on. Order within a line is arrival order.
type LineMap map[int][]Diagnostic

// Aggregate rebuilds the line map for one document from its raw
// diagnostic set. Diagnostics that fail the severity gate or match an
// exclusion rule are dropped. The map is rebuilt from scratch on every
// pass; callers must not mutate a map they handed out.
func Aggregate(diags []Diagnostic, gate SeverityGate, rules *ExclusionRules, doc Document) LineMap {
	lines := make(LineMap)
	for _, d := range diags {
		if !gate.Enabled(d.Severity) {
			continue
		}
		if rules != nil && rules.Excludes(d, doc) {
			continue
		}
		line := d.Range.Start.Line
		lines[line] = append(lines[line], d)
	}
	return lines
}
