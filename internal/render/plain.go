package render

import (
	"fmt"
	"io"

	"github.com/control-theory/wd/internal/chunk"
	"github.com/control-theory/wd/internal/style"
)

// PlainRenderer writes one unstyled, wrapped line per entry — the
// non-interactive renderer used when stdout isn't a terminal or
// --renderer=plain was requested explicitly.
type PlainRenderer struct {
	w         io.Writer
	wrapWidth int
}

// NewPlainRenderer builds a PlainRenderer writing to w, wrapping at
// wrapWidth columns (NoWrap disables wrapping).
func NewPlainRenderer(w io.Writer, wrapWidth int) *PlainRenderer {
	return &PlainRenderer{w: w, wrapWidth: wrapWidth}
}

// Render writes one Entry to the underlying writer.
func (r *PlainRenderer) Render(e Entry) error {
	switch v := e.(type) {
	case MessageEntry:
		for _, line := range PlainLines(v, r.wrapWidth) {
			if _, err := fmt.Fprintln(r.w, line); err != nil {
				return err
			}
		}
		return nil
	case EofEntry:
		_, err := fmt.Fprintf(r.w, "[EOF: %s]\n", v.Source)
		return err
	default:
		return nil
	}
}

// PlainLines renders a single entry unstyled and wrapped at wrapWidth,
// without writing anywhere — used by the interactive renderer's
// copy-to-clipboard actions, which need the same text a non-interactive
// "plain" render would have produced.
func PlainLines(e MessageEntry, wrapWidth int) []string {
	chunks := chunk.Classify(e.Message)
	return StyledRender(chunks, style.Plain(), wrapWidth)
}
