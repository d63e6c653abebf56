package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/control-theory/wd/internal/message"
)

// freeformLayouts are tried in order for timestamps that are neither
// RFC3339 nor RFC2822 shaped. No library in the example pack offers a
// fuzzy/free-form date parser (the closest analogues all assume a known
// format), so this stays on the standard library's time.Parse with a
// fixed layout table, same spirit as the original's last-resort lenient
// parser but bounded to formats actually seen in structured logs.
var freeformLayouts = []string{
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006 15:04:05",
	"Jan _2 15:04:05",
	"Mon Jan _2 15:04:05 2006",
}

var rfc2822Hint = regexp.MustCompile(`\w+, \d+ \w+ \d{4} \d{2}:\d{2}:\d{2} (?:UTC|\+\d{4})`)
var rfc3339Hint = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(?::[\d.]+)?(?:Z|[+-]\d{2}:\d{2})`)

// parseRFC2822 parses a date only if it looks like one, avoiding the cost
// of a full fuzzy-parse attempt on every candidate string.
func parseRFC2822(s string) (time.Time, bool) {
	if !rfc2822Hint.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC1123Z, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func parseRFC3339(s string) (time.Time, bool) {
	if !rfc3339Hint.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// parseFreeform parses a date that isn't plain iso8601/rfc2822 by trying
// each layout in freeformLayouts in turn, standing in for the original's
// dtparse fallback; a date matching none of those layouts is rejected.
func parseFreeform(s string) (time.Time, bool) {
	for _, layout := range freeformLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseTimestamp tries RFC3339, then RFC2822, then a lenient freeform
// parse, returning the first one that succeeds.
func ParseTimestamp(s string) (time.Time, bool) {
	if t, ok := parseRFC3339(s); ok {
		return t, true
	}
	if t, ok := parseRFC2822(s); ok {
		return t, true
	}
	return parseFreeform(s)
}

var levelRegexes = []struct {
	re    *regexp.Regexp
	level message.Level
}{
	{regexp.MustCompile(`(?i)\bfatal\b`), message.LevelFatal},
	{regexp.MustCompile(`(?i)\berr(?:or)?\b`), message.LevelError},
	{regexp.MustCompile(`(?i)\bwarn(?:ing)?\b`), message.LevelWarning},
	{regexp.MustCompile(`(?i)\binfo\b`), message.LevelInfo},
	{regexp.MustCompile(`(?i)\b(?:debug|dbg)\b`), message.LevelDebug},
}

// GuessLevel scans free text for a level-shaped word, first match wins.
func GuessLevel(line string) (message.Level, bool) {
	for _, lr := range levelRegexes {
		if lr.re.MatchString(line) {
			return lr.level, true
		}
	}
	return 0, false
}

// CleanValue mirrors serde_json's behavior of stringifying scalars:
// strings pass through unquoted, everything else becomes its textual form.
func CleanValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ParseScalar converts a logrus/regex bare token into a bool, int64, or
// string, matching the original parser's literal coercion rules.
func ParseScalar(token string) any {
	switch token {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return i
	}
	return token
}

// keyChoice returns the first key present in fields and its value.
func keyChoice(fields map[string]any, choices []string) (string, any, bool) {
	for _, k := range choices {
		if v, ok := fields[k]; ok {
			return k, v, true
		}
	}
	return "", nil, false
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func trimmedOrNil(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
