package problemlens

// SeverityGate holds the per-level enabled state derived from the
// enabledDiagnosticLevels option. It is rebuilt wholesale on every
// reconfiguration and read-only in between.
type SeverityGate struct {
	errors   bool
	warnings bool
	info     bool
	hints    bool
}

// NewSeverityGate builds a gate from configured level names. A level
// absent from the list is disabled; unknown names are ignored.
func NewSeverityGate(levels []string) SeverityGate {
	var g SeverityGate
	for _, name := range levels {
		sev, ok := ParseSeverity(name)
		if !ok {
			continue
		}
		switch sev {
		case SeverityError:
			g.errors = true
		case SeverityWarning:
			g.warnings = true
		case SeverityInformation:
			g.info = true
		case SeverityHint:
			g.hints = true
		}
	}
	return g
}

func (g SeverityGate) Enabled(sev Severity) bool {
	switch sev {
	case SeverityError:
		return g.errors
	case SeverityWarning:
		return g.warnings
	case SeverityInformation:
		return g.info
	case SeverityHint:
		return g.hints
	}
	return false
}
