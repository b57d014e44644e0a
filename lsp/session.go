package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/myleshyson/lsprotocol-go/protocol"
	"golang.org/x/exp/jsonrpc2"

	"github.com/problemlens/problemlens"
)

// Session is one connection to a language server in the client role:
// it opens documents and collects the diagnostics the server pushes
// back.
type Session struct {
	name string
	conn *jsonrpc2.Connection
}

// Dial starts the configured server command and connects to it over
// stdio. Diagnostics land in store; onChange fires after every update.
func Dial(ctx context.Context, cfg problemlens.ServerConfig, store *problemlens.Store, onChange func(uri protocol.DocumentUri)) (*Session, error) {
	if cfg.Command == "" {
		return nil, fmt.Errorf("server: command is required")
	}
	name := cfg.Name
	if name == "" {
		name = cfg.Command
	}

	slog.InfoContext(ctx, fmt.Sprintf("starting lsp server: %s: %s", name, strings.Join(append([]string{cfg.Command}, cfg.Args...), " ")))
	pipe, err := NewCmdPipeListener(ctx, exec.CommandContext(ctx, cfg.Command, cfg.Args...))
	if err != nil {
		return nil, err
	}

	handler := Chain(NewDiagnosticsHandler(store, onChange), ContextLogMiddleware(name))
	conn, err := jsonrpc2.Dial(ctx, pipe.Dialer(), NewBinder(handler))
	if err != nil {
		return nil, err
	}

	return &Session{name: name, conn: conn}, nil
}

// Initialize performs the initialize handshake for the workspace root.
func (s *Session) Initialize(ctx context.Context, rootPath string, initOptions map[string]any) error {
	params := map[string]any{
		"processId": os.Getpid(),
		"rootUri":   FileURI(rootPath),
		"capabilities": map[string]any{
			"textDocument": map[string]any{
				"publishDiagnostics": map[string]any{},
			},
		},
	}
	if initOptions != nil {
		params["initializationOptions"] = initOptions
	}

	var res json.RawMessage
	if err := s.conn.Call(ctx, "initialize", params).Await(ctx, &res); err != nil {
		return fmt.Errorf("initialize %s: %w", s.name, err)
	}
	return s.conn.Notify(ctx, "initialized", map[string]any{})
}

// OpenFile sends didOpen for path and returns the document identity the
// engine will see diagnostics under.
func (s *Session) OpenFile(ctx context.Context, path string) (problemlens.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return problemlens.Document{}, err
	}

	doc := problemlens.Document{
		URI:      FileURI(path),
		Path:     filepath.ToSlash(path),
		Language: LanguageID(path),
	}

	err = s.conn.Notify(ctx, "textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{
			"uri":        doc.URI,
			"languageId": doc.Language,
			"version":    1,
			"text":       string(content),
		},
	})
	return doc, err
}

// Shutdown runs the shutdown/exit sequence and closes the connection.
func (s *Session) Shutdown(ctx context.Context) error {
	var res json.RawMessage
	if err := s.conn.Call(ctx, "shutdown", nil).Await(ctx, &res); err != nil {
		return s.conn.Close()
	}
	_ = s.conn.Notify(ctx, "exit", nil)
	return s.conn.Close()
}

// Wait blocks until the connection is done.
func (s *Session) Wait() {
	s.conn.Wait()
}

// FileURI converts a local path to a file: URI.
func FileURI(path string) protocol.DocumentUri {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return protocol.DocumentUri("file://" + filepath.ToSlash(abs))
}

// LanguageID guesses the LSP language id from the file extension.
func LanguageID(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".ts", ".tsx":
		return "typescript"
	case ".js", ".jsx":
		return "javascript"
	case ".py":
		return "python"
	case ".rs":
		return "rust"
	case ".c", ".h":
		return "c"
	case ".cpp", ".hpp", ".cc":
		return "cpp"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".md":
		return "markdown"
	}
	return "plaintext"
}
