package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/problemlens/problemlens"
)

var severityColors = map[problemlens.Severity]*color.Color{
	problemlens.SeverityError:       color.New(color.FgRed),
	problemlens.SeverityWarning:     color.New(color.FgYellow),
	problemlens.SeverityInformation: color.New(color.FgBlue),
	problemlens.SeverityHint:        color.New(color.FgHiBlack),
}

type termEditor struct {
	doc    problemlens.Document
	cursor int
	lines  []string

	mu          sync.Mutex
	decorations map[problemlens.Severity][]problemlens.Range
}

func (e *termEditor) Document() problemlens.Document { return e.doc }
func (e *termEditor) CursorLine() int                { return e.cursor }

type termStyle struct {
	sev problemlens.Severity
}

func (s *termStyle) Dispose() {}

type termStatusBar struct {
	mu      sync.Mutex
	opts    problemlens.StatusBarOptions
	text    string
	tooltip string
	sev     problemlens.Severity
}

func (b *termStatusBar) Set(text, tooltip string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text, b.tooltip = text, tooltip
}

func (b *termStatusBar) SetSeverity(sev problemlens.Severity) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sev = sev
}

func (b *termStatusBar) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text, b.tooltip, b.sev = "", "", 0
}

func (b *termStatusBar) Dispose() {}

// termHost adapts a batch of opened files to the engine's editor-host
// capabilities and renders everything once diagnostics settled.
type termHost struct {
	mu        sync.Mutex
	editors   []*termEditor
	statusBar *termStatusBar
	subs      map[problemlens.Event]map[int]func(problemlens.Editor)
	nextSub   int
}

func newTermHost() *termHost {
	return &termHost{subs: make(map[problemlens.Event]map[int]func(problemlens.Editor))}
}

func (h *termHost) AddEditor(doc problemlens.Document, lines []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.editors = append(h.editors, &termEditor{
		doc:         doc,
		lines:       lines,
		decorations: make(map[problemlens.Severity][]problemlens.Range),
	})
}

// SetCursor places the cursor in the first (active) editor. line is
// one-based; zero leaves it on the first line.
func (h *termHost) SetCursor(line int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.editors) == 0 || line <= 0 {
		return
	}
	h.editors[0].cursor = line - 1
}

func (h *termHost) VisibleEditors() []problemlens.Editor {
	h.mu.Lock()
	defer h.mu.Unlock()
	eds := make([]problemlens.Editor, len(h.editors))
	for i, e := range h.editors {
		eds[i] = e
	}
	return eds
}

func (h *termHost) ActiveEditor() (problemlens.Editor, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.editors) == 0 {
		return nil, false
	}
	return h.editors[0], true
}

func (h *termHost) CreateStatusBar(opts problemlens.StatusBarOptions) problemlens.StatusBar {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statusBar = &termStatusBar{opts: opts}
	return h.statusBar
}

func (h *termHost) CreateDecorationStyle(sev problemlens.Severity) problemlens.DecorationStyle {
	return &termStyle{sev: sev}
}

func (h *termHost) ApplyDecorations(ed problemlens.Editor, style problemlens.DecorationStyle, ranges []problemlens.Range) {
	te, ok := ed.(*termEditor)
	ts, ok2 := style.(*termStyle)
	if !ok || !ok2 {
		return
	}
	te.mu.Lock()
	defer te.mu.Unlock()
	te.decorations[ts.sev] = ranges
}

func (h *termHost) Subscribe(ev problemlens.Event, fn func(problemlens.Editor)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextSub++
	id := h.nextSub
	if h.subs[ev] == nil {
		h.subs[ev] = make(map[int]func(problemlens.Editor))
	}
	h.subs[ev][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[ev], id)
	}
}

// Emit delivers an event to every subscriber. ed may be nil for events
// that concern no particular editor.
func (h *termHost) Emit(ev problemlens.Event, ed problemlens.Editor) {
	h.mu.Lock()
	fns := make([]func(problemlens.Editor), 0, len(h.subs[ev]))
	for _, fn := range h.subs[ev] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ed)
	}
}

// Render prints each opened file with severity markers on annotated
// lines, then the status bar line.
func (h *termHost) Render(w io.Writer) {
	h.mu.Lock()
	editors := append([]*termEditor(nil), h.editors...)
	statusBar := h.statusBar
	h.mu.Unlock()

	for _, ed := range editors {
		fmt.Fprintf(w, "%s\n", color.New(color.Bold).Sprint(ed.doc.Path))
		markers := ed.lineMarkers()
		for i, line := range ed.lines {
			if m, ok := markers[i]; ok {
				fmt.Fprintf(w, "%4d | %s  %s\n", i+1, line, m)
			} else {
				fmt.Fprintf(w, "%4d | %s\n", i+1, line)
			}
		}
		fmt.Fprintln(w)
	}

	if statusBar == nil {
		return
	}
	statusBar.mu.Lock()
	text, sev := statusBar.text, statusBar.sev
	statusBar.mu.Unlock()
	if text == "" {
		return
	}
	if c, ok := severityColors[sev]; ok {
		text = c.Sprint(text)
	}
	fmt.Fprintf(w, "status: %s\n", text)
}

func (e *termEditor) lineMarkers() map[int]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	markers := make(map[int]string)
	for _, sev := range []problemlens.Severity{problemlens.SeverityError, problemlens.SeverityWarning, problemlens.SeverityInformation, problemlens.SeverityHint} {
		for _, r := range e.decorations[sev] {
			mark := severityColors[sev].Sprintf("■ %s", sev)
			if cur := markers[r.Start.Line]; cur == "" {
				markers[r.Start.Line] = mark
			} else if !strings.Contains(cur, sev.String()) {
				markers[r.Start.Line] = cur + " " + mark
			}
		}
	}
	return markers
}
