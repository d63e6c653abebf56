package render

import (
	"fmt"
	"io"
)

// RawRenderer writes each message's original unparsed line verbatim,
// untouched by the parser/classifier/style chain. Useful for piping wd's
// output into another log tool.
type RawRenderer struct {
	w io.Writer
}

// NewRawRenderer builds a RawRenderer writing to w.
func NewRawRenderer(w io.Writer) *RawRenderer {
	return &RawRenderer{w: w}
}

// Render writes one Entry's raw line to the underlying writer.
func (r *RawRenderer) Render(e Entry) error {
	switch v := e.(type) {
	case MessageEntry:
		_, err := fmt.Fprintln(r.w, v.Message.Raw)
		return err
	case EofEntry:
		_, err := fmt.Fprintf(r.w, "[EOF: %s]\n", v.Source)
		return err
	default:
		return nil
	}
}
