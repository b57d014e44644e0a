package lsp

import (
	"github.com/myleshyson/lsprotocol-go/protocol"

	"github.com/problemlens/problemlens"
)

// Wire shapes for textDocument/publishDiagnostics. Decoded by hand so
// the code field's three shapes (string, number, object) all survive.
type publishDiagnosticsParams struct {
	URI         protocol.DocumentUri `json:"uri"`
	Diagnostics []wireDiagnostic     `json:"diagnostics"`
}

type wireDiagnostic struct {
	Range    wireRange        `json:"range"`
	Severity int              `json:"severity"`
	Code     problemlens.Code `json:"code"`
	Source   string           `json:"source"`
	Message  string           `json:"message"`
}

type wireRange struct {
	Start wirePosition `json:"start"`
	End   wirePosition `json:"end"`
}

type wirePosition struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

func convertDiagnostics(wire []wireDiagnostic) []problemlens.Diagnostic {
	diags := make([]problemlens.Diagnostic, 0, len(wire))
	for _, w := range wire {
		diags = append(diags, problemlens.Diagnostic{
			Range: problemlens.Range{
				Start: problemlens.Position{Line: w.Range.Start.Line, Character: w.Range.Start.Character},
				End:   problemlens.Position{Line: w.Range.End.Line, Character: w.Range.End.Character},
			},
			Severity: convertSeverity(w.Severity),
			Source:   w.Source,
			Code:     w.Code,
			Message:  w.Message,
		})
	}
	return diags
}

// convertSeverity maps the LSP severity number onto the model. Servers
// may omit the field; the protocol tells clients to treat that as an
// error.
func convertSeverity(n int) problemlens.Severity {
	if n >= int(problemlens.SeverityError) && n <= int(problemlens.SeverityHint) {
		return problemlens.Severity(n)
	}
	return problemlens.SeverityError
}
