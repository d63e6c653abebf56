package reader

import (
	"context"

	"github.com/control-theory/wd/internal/parser"
	"github.com/control-theory/wd/internal/render"
)

// ReadNull sends nothing but a pair of explanatory messages, used when
// reader autodetection can't pick a source and none was given explicitly.
func ReadNull(ctx context.Context, _ *parser.Chain, out chan<- render.Entry) {
	emitInternal(ctx, out, "error: no reader was detected automatically, either select a reader (e.g. -r kubernetes) or pipe in some input")
	emitInternal(ctx, out, "error: see wd --help for details")
	emitEOF(ctx, out, "null")
}
