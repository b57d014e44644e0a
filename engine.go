package problemlens

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StatusBarCommand is the command identifier the status bar item is
// created with. The host is expected to navigate to State().Position
// and/or copy State().Text when it fires.
const StatusBarCommand = "problemlens.statusBar.activate"

// StatusBarState is what the last successful selection pass put on
// display, kept for the host's click command.
type StatusBarState struct {
	Position Position
	Text     string
	Source   string
}

// Subscription is one event registration handle. Dispose is a no-op on
// the second and later calls.
type Subscription struct {
	ID       uuid.UUID
	cancel   func()
	disposed bool
}

func (s *Subscription) Dispose() {
	if s == nil || s.disposed {
		return
	}
	s.disposed = true
	if s.cancel != nil {
		s.cancel()
	}
}

// Engine owns the presentation resources and rebuilds them on every
// configuration change: dispose everything, then recreate everything.
// There is no partial reconfiguration path.
type Engine struct {
	host     Host
	source   DiagnosticSource
	log      *slog.Logger
	debounce *Debouncer

	mu sync.Mutex

	cfg      *Config
	gate     SeverityGate
	rules    *ExclusionRules
	strategy Strategy

	active    bool
	statusBar StatusBar
	styles    map[Severity]DecorationStyle
	subs      []*Subscription

	state StatusBarState
}

func NewEngine(host Host, source DiagnosticSource, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		host:     host,
		source:   source,
		log:      log.With("component", "Engine"),
		debounce: NewDebouncer(),
	}
}

// Reconfigure is the configuration-change transition. The current
// resources are always disposed first; if the new configuration keeps
// the feature enabled, everything is rebuilt and one full refresh pass
// runs over all visible editors. A rule-compilation error aborts the
// cycle after disposal, leaving the engine inactive until the user
// fixes the configuration.
func (e *Engine) Reconfigure(cfg *Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.teardown()
	e.cfg = cfg

	if !OrZeroValue(cfg.Enabled) {
		e.log.Info("disabled by configuration")
		return nil
	}

	rules, err := NewExclusionRules(cfg.Exclude, cfg.ExcludeBySource, cfg.ExcludePatterns)
	if err != nil {
		return fmt.Errorf("rebuild exclusion rules: %w", err)
	}
	strategy, err := ParseStrategy(cfg.StatusBar.Strategy)
	if err != nil {
		return err
	}

	e.gate = NewSeverityGate(cfg.EnabledDiagnosticLevels)
	e.rules = rules
	e.strategy = strategy

	e.styles = make(map[Severity]DecorationStyle)
	for _, sev := range []Severity{SeverityError, SeverityWarning, SeverityInformation, SeverityHint} {
		e.styles[sev] = e.host.CreateDecorationStyle(sev)
	}

	if OrZeroValue(cfg.StatusBar.Enabled) {
		e.statusBar = e.host.CreateStatusBar(StatusBarOptions{
			Alignment: cfg.StatusBar.Alignment,
			Priority:  cfg.StatusBar.Priority,
			Command:   StatusBarCommand,
		})
	}

	for _, ev := range triggerEvents {
		cancel := e.host.Subscribe(ev, e.eventHandler(ev))
		e.subs = append(e.subs, &Subscription{ID: uuid.New(), cancel: cancel})
	}

	e.active = true
	e.refreshAllLocked()
	e.log.Info("presentation resources rebuilt", "strategy", strategy.String())
	return nil
}

// Shutdown releases every resource. Safe to call repeatedly and on an
// engine that never activated.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.teardown()
}

func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// State returns the last displayed diagnostic's anchor, text and
// source, for the status bar click command.
func (e *Engine) State() StatusBarState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// RefreshAll runs one refresh pass over every visible editor.
func (e *Engine) RefreshAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refreshAllLocked()
}

// Refresh runs one refresh pass for a single editor.
func (e *Engine) Refresh(ed Editor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refreshLocked(ed)
}

func (e *Engine) eventHandler(ev Event) func(ed Editor) {
	return func(ed Editor) {
		if ev == EventDocumentChanged && e.delay() > 0 {
			e.debounce.Schedule("refresh", e.delay(), e.RefreshAll)
			return
		}
		if ed != nil {
			e.Refresh(ed)
			return
		}
		e.RefreshAll()
	}
}

func (e *Engine) delay() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cfg == nil {
		return 0
	}
	return time.Duration(e.cfg.DelayMs) * time.Millisecond
}

func (e *Engine) teardown() {
	for _, s := range e.subs {
		s.Dispose()
	}
	e.subs = nil

	for sev, style := range e.styles {
		if style != nil {
			style.Dispose()
		}
		delete(e.styles, sev)
	}
	e.styles = nil

	if e.statusBar != nil {
		e.statusBar.Dispose()
		e.statusBar = nil
	}

	e.debounce.CancelAll()
	e.active = false
}

func (e *Engine) refreshAllLocked() {
	if !e.active {
		return
	}
	for _, ed := range e.host.VisibleEditors() {
		e.refreshLocked(ed)
	}
}

// refreshLocked is one synchronous pass: filter, aggregate, select,
// format, then update the host-side resources. It has no other side
// effects.
func (e *Engine) refreshLocked(ed Editor) {
	if !e.active || ed == nil {
		return
	}

	doc := ed.Document()
	lines := Aggregate(e.source.Diagnostics(doc.URI), e.gate, e.rules, doc)

	for sev, style := range e.styles {
		var ranges []Range
		for _, diags := range lines {
			for _, d := range diags {
				if d.Severity == sev {
					ranges = append(ranges, d.Range)
				}
			}
		}
		e.host.ApplyDecorations(ed, style, ranges)
	}

	if active, ok := e.host.ActiveEditor(); ok && active == ed {
		e.updateStatusBarLocked(ed, lines)
	}
}

func (e *Engine) updateStatusBarLocked(ed Editor, lines LineMap) {
	if e.statusBar == nil {
		return
	}

	selected, count := Select(lines, ed.CursorLine(), e.strategy, e.gate)
	if selected == nil {
		// Text and tooltip are blanked; the anchor keeps its last value.
		e.statusBar.Clear()
		e.state.Text = ""
		e.state.Source = ""
		return
	}

	text := FormatMessage(e.cfg.StatusBarTemplate(), *selected, count, e.cfg.FormatOptions())
	e.statusBar.Set(text, Tooltip(text, *selected))
	if OrZeroValue(e.cfg.StatusBar.ColorsEnabled) {
		e.statusBar.SetSeverity(selected.Severity)
	}

	e.state = StatusBarState{
		Position: selected.Range.Start,
		Text:     text,
		Source:   selected.Source,
	}
}
