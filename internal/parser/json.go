package parser

import (
	"encoding/json"
	"strings"

	"github.com/control-theory/wd/internal/message"
)

var timestampFields = []string{"timestamp", "@timestamp", "time"}
var levelFields = []string{"level"}
var textFields = []string{"text", "msg", "message"}

// ParseJSON recognizes a single JSON object per line and maps its
// timestamp/level/text fields onto Message, carrying everything else
// through as metadata.
func ParseJSON(line string, meta *message.ReaderMetadata) (*message.Message, bool, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return nil, false, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return nil, false, nil
	}

	return documentToMessage(message.KindJSON, fields, line, meta), true, nil
}

// documentToMessage maps a decoded JSON-ish document (direct JSON or a
// logrus line turned into a document) onto a Message, tagged with kind.
func documentToMessage(kind message.Kind, fields map[string]any, raw string, meta *message.ReaderMetadata) *message.Message {
	msg := message.New(kind, raw)
	msg.ReaderMetadata = meta

	if key, val, ok := keyChoice(fields, timestampFields); ok {
		if s, ok := asString(val); ok {
			if t, ok := ParseTimestamp(s); ok {
				msg.Timestamp = &t
				msg.MappedFields[key] = message.MappingTimestamp
			}
		}
	}

	if key, val, ok := keyChoice(fields, levelFields); ok {
		if s, ok := asString(val); ok {
			if lvl, ok := message.ParseLevel(s); ok {
				msg.Level = &lvl
				msg.MappedFields[key] = message.MappingLevel
			}
		}
	}

	if key, val, ok := keyChoice(fields, textFields); ok {
		if s, ok := asString(val); ok {
			msg.Text = trimmedOrNil(s)
			msg.MappedFields[key] = message.MappingText
		}
	}

	for k, v := range fields {
		if _, mapped := msg.MappedFields[k]; mapped {
			continue
		}
		msg.Metadata[k] = v
	}

	return msg
}
