package parser

import (
	"strings"

	"github.com/control-theory/wd/internal/message"
)

// logrusToDocument converts a logrus-style key=value line into a plain
// document so it can be handed to the same field-mapping logic as JSON,
// mirroring the original's approach of running a dedicated pest grammar,
// anchored on EOI, over the line and then delegating to the JSON document
// mapper. Like the original grammar, the whole line must parse as a
// sequence of key=value tokens or the line isn't Logrus at all: a single
// trailing word that isn't "key=value" rejects the entire line rather
// than returning whatever fields parsed before it.
//
// Recognized tokens: bare keys [A-Za-z0-9_]+, bare values (no whitespace,
// unquoted), double-quoted values with \" escapes, true/false -> bool,
// decimal integers -> int64, everything else -> string.
func logrusToDocument(line string) (map[string]any, bool) {
	doc := make(map[string]any)
	i := 0
	n := len(line)
	found := false

	for i < n {
		for i < n && line[i] == ' ' {
			i++
		}
		if i >= n {
			break
		}

		keyStart := i
		for i < n && isKeyChar(line[i]) {
			i++
		}
		if i == keyStart {
			return nil, false
		}
		key := line[keyStart:i]

		if i >= n || line[i] != '=' {
			return nil, false
		}
		i++ // consume '='

		var value string
		var ok bool
		if i < n && line[i] == '"' {
			value, i, ok = scanQuoted(line, i)
		} else {
			valueStart := i
			for i < n && line[i] != ' ' {
				i++
			}
			value = line[valueStart:i]
			ok = true
		}
		if !ok {
			return nil, false
		}

		doc[key] = ParseScalar(value)
		found = true
	}

	return doc, found
}

func isKeyChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// scanQuoted scans a double-quoted string starting at line[i] == '"',
// honoring \" escapes, and returns the unescaped value and the index
// past the closing quote.
func scanQuoted(line string, i int) (string, int, bool) {
	n := len(line)
	i++ // skip opening quote
	var b strings.Builder
	for i < n {
		c := line[i]
		if c == '\\' && i+1 < n && line[i+1] == '"' {
			b.WriteByte('"')
			i += 2
			continue
		}
		if c == '"' {
			return b.String(), i + 1, true
		}
		b.WriteByte(c)
		i++
	}
	return "", i, false
}

// ParseLogrus recognizes `key=value key2="quoted value" …` lines.
func ParseLogrus(line string, meta *message.ReaderMetadata) (*message.Message, bool, error) {
	doc, ok := logrusToDocument(line)
	if !ok {
		return nil, false, nil
	}

	msg := documentToMessage(message.KindLogrus, doc, line, meta)
	return msg, true, nil
}
