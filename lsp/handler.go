package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/myleshyson/lsprotocol-go/protocol"
	"golang.org/x/exp/jsonrpc2"

	"github.com/problemlens/problemlens"
)

const (
	methodPublishDiagnostics = "textDocument/publishDiagnostics"
	methodLogMessage         = "window/logMessage"
	methodShowMessage        = "window/showMessage"
)

// DiagnosticsHandler receives notifications from the language server,
// keeps the store up to date and signals the diagnostics-changed event
// after every update.
type DiagnosticsHandler struct {
	store    *problemlens.Store
	onChange func(uri protocol.DocumentUri)
}

// NewDiagnosticsHandler builds the server-side handler. onChange may be
// nil when nobody needs the change signal.
func NewDiagnosticsHandler(store *problemlens.Store, onChange func(uri protocol.DocumentUri)) *DiagnosticsHandler {
	return &DiagnosticsHandler{store: store, onChange: onChange}
}

func (h *DiagnosticsHandler) Handle(ctx context.Context, r *jsonrpc2.Request) (any, error) {
	if r.IsCall() {
		// We are a display-only client; the rare server-to-client
		// requests (configuration, progress tokens) are declined.
		return nil, ErrMethodNotFound
	}

	switch r.Method {
	case methodPublishDiagnostics:
		return nil, h.handlePublishDiagnostics(ctx, r.Params)
	case methodLogMessage, methodShowMessage:
		slog.DebugContext(ctx, "server message", "params", string(r.Params))
		return nil, nil
	default:
		return nil, nil
	}
}

func (h *DiagnosticsHandler) handlePublishDiagnostics(ctx context.Context, raw json.RawMessage) error {
	var params publishDiagnosticsParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	diags := convertDiagnostics(params.Diagnostics)
	h.store.Update(params.URI, diags)
	slog.InfoContext(ctx, "diagnostics updated", "uri", params.URI, "count", len(diags))

	if h.onChange != nil {
		h.onChange(params.URI)
	}
	return nil
}
