// Package clip wraps the system clipboard, used by the interactive
// renderer's "yank" commands.
package clip

import "github.com/atotto/clipboard"

// enabled gates all clipboard writes; wd's CLI flips it off with
// --no-clipboard, the equivalent of the original's compile-time
// wd-clipboard feature.
var enabled = true

// SetEnabled toggles clipboard support at runtime.
func SetEnabled(v bool) { enabled = v }

// Enabled reports whether clipboard writes are currently permitted.
func Enabled() bool { return enabled }

// Clip copies text to the system clipboard. It is a no-op, returning nil,
// when clipboard support has been disabled.
func Clip(text string) error {
	if !Enabled() {
		return nil
	}
	return clipboard.WriteAll(text)
}
