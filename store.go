package problemlens

import (
	"sync"

	"github.com/myleshyson/lsprotocol-go/protocol"
)

// DiagnosticSource is the host capability the engine reads raw
// diagnostics from. The returned slice may differ on every call.
type DiagnosticSource interface {
	Diagnostics(uri protocol.DocumentUri) []Diagnostic
}

// Store is an in-process DiagnosticSource fed by the LSP adapter.
// Updates replace a document's whole set, last write wins.
type Store struct {
	mu sync.Mutex
	// document uri -> diags as last published
	docs map[protocol.DocumentUri][]Diagnostic
}

func NewStore() *Store {
	return &Store{docs: make(map[protocol.DocumentUri][]Diagnostic)}
}

func (s *Store) Update(uri protocol.DocumentUri, diags []Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = diags
}

func (s *Store) Clear(uri protocol.DocumentUri) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Diagnostics returns a copy of the document's current set so callers
// can never observe a concurrent update mid-pass.
func (s *Store) Diagnostics(uri protocol.DocumentUri) []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()

	diags, ok := s.docs[uri]
	if !ok {
		return nil
	}
	out := make([]Diagnostic, len(diags))
	copy(out, diags)
	return out
}

// URIs returns the documents that currently have diagnostics.
func (s *Store) URIs() []protocol.DocumentUri {
	s.mu.Lock()
	defer s.mu.Unlock()

	uris := make([]protocol.DocumentUri, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	return uris
}
