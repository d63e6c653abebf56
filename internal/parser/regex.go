package parser

import (
	"regexp"
	"time"

	"github.com/control-theory/wd/internal/message"
)

// Mapping is a single user-supplied regex -> Message mapping, loaded from
// the `--regexes` YAML file (see internal/regexmap).
type Mapping struct {
	Pattern         *regexp.Regexp
	Datetime        string // "rfc2822", "rfc3339", or a Go time layout
	DatetimePrepend string // optional layout prepended before parsing, e.g. "2006"
}

func parseMappingDatetime(fmtName, value, prepend string) (time.Time, bool) {
	switch fmtName {
	case "rfc2822":
		return parseRFC2822(value)
	case "rfc3339":
		return parseRFC3339(value)
	default:
		full := value
		layout := fmtName
		if prepend != "" {
			full = time.Now().UTC().Format(prepend) + " " + value
			layout = prepend + " " + fmtName
		}
		t, err := time.Parse(layout, full)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
}

func parseWithMapping(line string, mapping *Mapping, meta *message.ReaderMetadata) (*message.Message, bool) {
	names := mapping.Pattern.SubexpNames()
	caps := mapping.Pattern.FindStringSubmatch(line)
	if caps == nil {
		return nil, false
	}

	namedCapture := func(name string) (string, bool) {
		for i, n := range names {
			if n == name && caps[i] != "" {
				return caps[i], true
			}
		}
		return "", false
	}

	consumed := map[string]bool{}

	msg := message.New(message.KindRegex, line)
	msg.ReaderMetadata = meta

	if datetime, ok := namedCapture("datetime"); ok && mapping.Datetime != "" {
		consumed["datetime"] = true
		if t, ok := parseMappingDatetime(mapping.Datetime, datetime, mapping.DatetimePrepend); ok {
			msg.Timestamp = &t
		}
	}

	if text, ok := namedCapture("text"); ok {
		consumed["text"] = true
		msg.Text = &text
	}

	if level, ok := namedCapture("level"); ok {
		consumed["level"] = true
		if l, ok := message.ParseLevel(level); ok {
			msg.Level = &l
		}
	}

	for i, name := range names {
		if name == "" || consumed[name] {
			continue
		}
		if caps[i] == "" {
			continue
		}
		msg.Metadata[name] = caps[i]
	}

	return msg, true
}

// ParseRegex tries each user-supplied regex mapping in order, first match
// wins. mappings is empty when no --regexes file was supplied.
func ParseRegex(mappings []Mapping) Func {
	return func(line string, meta *message.ReaderMetadata) (*message.Message, bool, error) {
		for i := range mappings {
			if msg, ok := parseWithMapping(line, &mappings[i], meta); ok {
				return msg, true, nil
			}
		}
		return nil, false, nil
	}
}
