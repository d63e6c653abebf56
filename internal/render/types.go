package render

import "github.com/control-theory/wd/internal/message"

// Entry is one item the interactive/plain/json/raw renderers can draw:
// either a parsed log message or an end-of-stream marker.
type Entry interface {
	isEntry()
}

// MessageEntry wraps a successfully parsed message.Message.
type MessageEntry struct {
	Message *message.Message
}

func (MessageEntry) isEntry() {}

// EofEntry marks that a reader has reached the end of its stream, so the
// interactive renderer can show a "[EOF]" marker instead of waiting
// forever for more lines.
type EofEntry struct {
	Source string
}

func (EofEntry) isEntry() {}

// LogEntry pairs a raw reader line with its parsed form. No reader or
// renderer in wd constructs one.
type LogEntry struct {
	Raw    string
	Parsed *message.Message
}

// NewInternalEntry builds a MessageEntry for a wd-generated status note
// (e.g. "reordering messages, buffer: 1000ms"), distinct from anything a
// reader produced. Internal entries always bypass the reorder buffer.
func NewInternalEntry(text string) MessageEntry {
	m := message.New(message.KindInternal, text)
	m.Text = &text
	return MessageEntry{Message: m}
}
