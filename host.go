package problemlens

// Event enumerates the editor-side triggers a refresh pass reacts to.
type Event int

const (
	EventCursorMoved Event = iota
	EventDocumentChanged
	EventDocumentSaved
	EventDiagnosticsChanged
	EventVisibleEditorsChanged
)

func (e Event) String() string {
	switch e {
	case EventCursorMoved:
		return "cursorMoved"
	case EventDocumentChanged:
		return "documentChanged"
	case EventDocumentSaved:
		return "documentSaved"
	case EventDiagnosticsChanged:
		return "diagnosticsChanged"
	case EventVisibleEditorsChanged:
		return "visibleEditorsChanged"
	}
	return "unknown"
}

// events the engine subscribes to while active.
var triggerEvents = []Event{
	EventCursorMoved,
	EventDocumentChanged,
	EventDocumentSaved,
	EventDiagnosticsChanged,
	EventVisibleEditorsChanged,
}

// Editor is one visible view onto a document.
type Editor interface {
	Document() Document
	CursorLine() int
}

// StatusBarOptions is passed to the host when the engine creates its
// status bar item.
type StatusBarOptions struct {
	Alignment string
	Priority  int
	// Command is invoked by the host when the user clicks the item.
	Command string
}

// StatusBar is the host's status bar item handle. Dispose must be safe
// to call at most once per handle; the engine guards against the rest.
type StatusBar interface {
	Set(text, tooltip string)
	SetSeverity(sev Severity)
	Clear()
	Dispose()
}

// DecorationStyle is an opaque handle to a host-side inline decoration
// style for one severity.
type DecorationStyle interface {
	Dispose()
}

// Host bundles every editor capability the engine consumes. Rendering,
// command registration and event delivery stay on the host's side; the
// engine only holds handles.
type Host interface {
	VisibleEditors() []Editor
	ActiveEditor() (Editor, bool)
	CreateStatusBar(opts StatusBarOptions) StatusBar
	CreateDecorationStyle(sev Severity) DecorationStyle
	// ApplyDecorations is fire and forget; the engine never reads a result.
	ApplyDecorations(ed Editor, style DecorationStyle, ranges []Range)
	// Subscribe registers fn for an event and returns its cancel func.
	// fn may receive a nil Editor for events without one.
	Subscribe(ev Event, fn func(ed Editor)) (cancel func())
}
