package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/control-theory/wd/internal/message"
)

// jsonMessage is the wire shape written by JSONRenderer, re-serializing a
// parsed message.Message so downstream tools (jq, another wd instance)
// can consume wd's normalized view of a log line instead of its raw form.
// Field names and enum values match the original serde struct
// (parser/types.rs), not message.Message's Go-idiomatic String() forms.
type jsonMessage struct {
	Kind         string            `json:"kind"`
	Timestamp    *time.Time        `json:"timestamp,omitempty"`
	Level        string            `json:"level,omitempty"`
	Text         *string           `json:"text,omitempty"`
	Metadata     map[string]any    `json:"metadata,omitempty"`
	MappedFields map[string]string `json:"mapped_fields,omitempty"`
	Raw          string            `json:"raw"`
}

// jsonKind renders a Kind the way the original's #[serde(rename_all =
// "lowercase")] MessageKind does, rather than message.Kind.String()'s
// Go-idiomatic capitalized form used in the data model and logs.
func jsonKind(k message.Kind) string {
	return strings.ToLower(k.String())
}

// jsonLevel mirrors the original's lowercase LogLevel serialization.
func jsonLevel(l message.Level) string {
	return strings.ToLower(l.String())
}

// jsonMappingField mirrors the original's #[serde(rename_all = "lowercase")]
// MappingField (Timestamp/Level/Text -> "timestamp"/"level"/"text").
func jsonMappingField(f message.MappingField) string {
	switch f {
	case message.MappingTimestamp:
		return "timestamp"
	case message.MappingLevel:
		return "level"
	case message.MappingText:
		return "text"
	default:
		return ""
	}
}

// JSONRenderer writes one JSON object per entry, one per line.
type JSONRenderer struct {
	w   io.Writer
	enc *json.Encoder
}

// NewJSONRenderer builds a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{w: w, enc: json.NewEncoder(w)}
}

// Render writes one Entry as a JSON line.
func (r *JSONRenderer) Render(e Entry) error {
	switch v := e.(type) {
	case MessageEntry:
		m := v.Message
		out := jsonMessage{
			Kind:      jsonKind(m.Kind),
			Timestamp: m.Timestamp,
			Text:      m.Text,
			Metadata:  m.Metadata,
			Raw:       m.Raw,
		}
		if m.Level != nil {
			out.Level = jsonLevel(*m.Level)
		}
		if len(m.MappedFields) > 0 {
			out.MappedFields = make(map[string]string, len(m.MappedFields))
			for field, target := range m.MappedFields {
				out.MappedFields[field] = jsonMappingField(target)
			}
		}
		return r.enc.Encode(out)
	case EofEntry:
		_, err := fmt.Fprintf(r.w, "{\"eof\":%q}\n", v.Source)
		return err
	default:
		return nil
	}
}
