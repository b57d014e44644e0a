package problemlens

import (
	"encoding/json"
	"strconv"

	"github.com/myleshyson/lsprotocol-go/protocol"
)

// Severity follows the LSP numeric ranks; a lower value is more severe.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	}
	return "unknown"
}

// ParseSeverity maps a configured level name to its severity.
func ParseSeverity(name string) (Severity, bool) {
	switch name {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info", "information":
		return SeverityInformation, true
	case "hint":
		return SeverityHint, true
	}
	return 0, false
}

// Position is a zero-based line/character location in a document.
type Position struct {
	Line      int
	Character int
}

type Range struct {
	Start Position
	End   Position
}

type CodeKind int

const (
	CodeNone CodeKind = iota
	CodeText
	CodeNumber
	CodeStructured
)

// Code is a diagnostic code as reported by a tool: absent, a plain
// string, a number, or a structured value with a documentation link.
type Code struct {
	Kind   CodeKind
	Text   string
	Number int64
	Value  string
	Target string
}

// String renders the code for display. Structured codes render their
// value field; a structured code with no usable value renders as
// "undefined" rather than failing.
func (c Code) String() string {
	switch c.Kind {
	case CodeText:
		return c.Text
	case CodeNumber:
		return strconv.FormatInt(c.Number, 10)
	case CodeStructured:
		if c.Value == "" {
			return "undefined"
		}
		return c.Value
	}
	return ""
}

// UnmarshalJSON accepts the three wire shapes a code may take: a JSON
// string, a JSON number, or an object carrying value and target fields.
// Anything else is kept as its raw text so rendering never fails.
func (c *Code) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Code{Kind: CodeText, Text: s}
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Code{Kind: CodeNumber, Number: n}
		return nil
	}

	var obj struct {
		Value  json.RawMessage `json:"value"`
		Target string          `json:"target"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*c = Code{Kind: CodeStructured, Value: rawToString(obj.Value), Target: obj.Target}
		return nil
	}

	*c = Code{Kind: CodeText, Text: string(data)}
	return nil
}

func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return string(raw)
}

// Diagnostic is a single reported issue. Diagnostics are immutable
// snapshots; nothing in this package mutates one after it is built.
type Diagnostic struct {
	Range    Range
	Severity Severity
	Source   string
	Code     Code
	Message  string
}

// Document identifies the document a diagnostic set belongs to. Path is
// workspace relative and is what exclusion patterns match against.
type Document struct {
	URI      protocol.DocumentUri
	Path     string
	Language string
}
