package reader

import (
	"context"
	"os"

	"github.com/control-theory/wd/internal/parser"
	"github.com/control-theory/wd/internal/render"
)

// ReadStdinHack reopens /dev/stdin directly rather than using os.Stdin,
// working around the same file-descriptor quirk the original implementation
// found on some Linux terminal setups: opening /dev/tty for the interactive
// UI can otherwise disturb the process's original stdin pipe. This only
// works on platforms with a /dev/stdin device node.
func ReadStdinHack(ctx context.Context, chain *parser.Chain, out chan<- render.Entry) {
	f, err := os.Open("/dev/stdin")
	if err != nil {
		emitInternal(ctx, out, "error: failed to open /dev/stdin: "+err.Error())
		emitEOF(ctx, out, "stdin")
		return
	}
	defer f.Close()

	readLines(ctx, chain, out, f, "stdin")
}
