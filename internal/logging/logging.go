// Package logging is a thin wrapper around the standard log package,
// generalizing the plain log.Printf calls internal/k8s already makes
// (e.g. source.go's "Started kubernetes log streaming") to a
// redirectable destination. The interactive renderer owns the terminal,
// so its diagnostics must never land on stdout/stderr while it runs;
// non-interactive renderers leave logging on stderr, the stdlib default.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Configure points the process-wide default logger (and therefore every
// existing log.Printf call site, including internal/k8s's) at path,
// appending to it or creating it. Pass an empty path to leave logging on
// stderr.
func Configure(path string) (io.Closer, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", path, err)
	}

	log.SetOutput(f)
	return f, nil
}

// Infof, Warnf, and Errorf tag a message with its level before handing it
// to the same default logger Configure points wherever the diagnostic
// actually happened - internal/k8s's untagged log.Printf calls and these
// tagged ones end up in the same place.
func Infof(format string, args ...any) {
	log.Printf("INFO: "+format, args...)
}

func Warnf(format string, args ...any) {
	log.Printf("WARN: "+format, args...)
}

func Errorf(format string, args ...any) {
	log.Printf("ERROR: "+format, args...)
}
