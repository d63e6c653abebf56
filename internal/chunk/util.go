package chunk

import (
	"fmt"
	"strings"
)

// toDisplayString renders a non-string metadata value (bool, number, …)
// the way a field would look if written back out as JSON.
func toDisplayString(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int64:
		return fmt.Sprintf("%d", t)
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// CleanPath keeps at most the last three '/'- or '\'-separated path
// segments, so a long source file path collapses to something like
// "pkg/foo/bar.go" rather than the full absolute path.
func CleanPath(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	if len(parts) == 0 {
		return ""
	}
	if len(parts) > 3 {
		parts = parts[len(parts)-3:]
	}
	return strings.Join(parts, "/")
}
