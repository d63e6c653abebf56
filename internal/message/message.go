// Package message defines the normalized log record that every parser
// produces and every classifier and renderer consumes.
package message

import (
	"strings"
	"time"
)

// Kind tags which parser produced a Message.
type Kind int

const (
	KindJSON Kind = iota
	KindPlain
	KindLogrus
	KindKlog
	KindRegex
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "Json"
	case KindPlain:
		return "Plain"
	case KindLogrus:
		return "Logrus"
	case KindKlog:
		return "Klog"
	case KindRegex:
		return "Regex"
	case KindInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Level is the normalized log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
	LevelPlain
	LevelInt
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "Debug"
	case LevelInfo:
		return "Info"
	case LevelWarning:
		return "Warning"
	case LevelError:
		return "Error"
	case LevelFatal:
		return "Fatal"
	case LevelPlain:
		return "Plain"
	case LevelInt:
		return "Int"
	default:
		return "Unknown"
	}
}

// ParseLevel maps a free-form level token to a Level, mirroring the
// original parser's case-insensitive alias table.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "debug", "dbg", "d":
		return LevelDebug, true
	case "info", "i":
		return LevelInfo, true
	case "warning", "warn", "w":
		return LevelWarning, true
	case "error", "err", "e":
		return LevelError, true
	case "fatal", "panic", "f", "p":
		return LevelFatal, true
	default:
		return 0, false
	}
}

// MappingField identifies a Message field that a parser mapped an input
// field onto. Classifiers use this to recognize structured log shapes
// (e.g. Kelog's {@timestamp, msg, level}).
type MappingField int

const (
	MappingTimestamp MappingField = iota
	MappingLevel
	MappingText
)

// ReaderMetadata carries context supplied by the reader that produced a
// line: an external timestamp to fall back on, and a source label when
// following more than one input stream.
type ReaderMetadata struct {
	Timestamp *time.Time
	Source    string
}

// Message is the normalized representation every parser produces and
// every classifier consumes.
type Message struct {
	Kind Kind

	// Timestamp is the best-guess timestamp, normalized to UTC where possible.
	Timestamp *time.Time

	Level *Level

	// Raw is the original, unmodified line.
	Raw string

	// Text is the extracted human-readable message body, if any.
	Text *string

	// Metadata holds additional fields extracted from structured input
	// (JSON object members, logrus key=value pairs, …).
	Metadata map[string]any

	ReaderMetadata *ReaderMetadata

	// MappedFields records which input field names were mapped onto
	// Timestamp/Level/Text, so classifiers can avoid re-emitting them
	// as generic metadata fields.
	MappedFields map[string]MappingField
}

// New returns a Message with its maps initialized to empty, non-nil values.
func New(kind Kind, raw string) *Message {
	return &Message{
		Kind:         kind,
		Raw:          raw,
		Metadata:     make(map[string]any),
		MappedFields: make(map[string]MappingField),
	}
}
