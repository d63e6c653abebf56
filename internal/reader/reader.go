// Package reader implements the input sources wd can read log lines
// from: stdin (two ways), a no-op placeholder, Kubernetes pods, and OTLP
// over gRPC.
package reader

import (
	"context"

	"github.com/control-theory/wd/internal/message"
	"github.com/control-theory/wd/internal/parser"
	"github.com/control-theory/wd/internal/render"
)

// Func reads from some source until ctx is canceled or the source is
// exhausted, sending parsed entries to out. When the source is exhausted
// it ends by sending an EofEntry, mirroring every original reader's
// "tx.send(LogEntry::eof())"; once ctx is canceled no EofEntry is sent.
type Func func(ctx context.Context, chain *parser.Chain, out chan<- render.Entry)

// emitLine parses one raw line with chain and (on a successful match)
// forwards a MessageEntry to out; parse errors are dropped silently, same
// as the original's `Err(_) => continue`.
func emitLine(ctx context.Context, chain *parser.Chain, out chan<- render.Entry, line string, meta *message.ReaderMetadata) {
	msg, err := chain.Parse(line, meta)
	if err != nil || msg == nil {
		return
	}
	select {
	case out <- render.MessageEntry{Message: msg}:
	case <-ctx.Done():
	}
}

func emitInternal(ctx context.Context, out chan<- render.Entry, text string) {
	select {
	case out <- render.NewInternalEntry(text):
	case <-ctx.Done():
	}
}

func emitEOF(ctx context.Context, out chan<- render.Entry, source string) {
	select {
	case out <- render.EofEntry{Source: source}:
	case <-ctx.Done():
	}
}
