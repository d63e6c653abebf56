package reader

import (
	"bufio"
	"context"
	"os"

	"github.com/control-theory/wd/internal/parser"
	"github.com/control-theory/wd/internal/render"
)

// ReadStdin reads log lines from os.Stdin. This is the normal path; on
// platforms where opening /dev/tty for the interactive UI doesn't disturb
// the stdin file descriptor, it works without issue. Where it does (some
// Linux configurations, per the original implementation's own notes),
// ReadStdinHack is the workaround.
func ReadStdin(ctx context.Context, chain *parser.Chain, out chan<- render.Entry) {
	readLines(ctx, chain, out, os.Stdin, "stdin")
}

func readLines(ctx context.Context, chain *parser.Chain, out chan<- render.Entry, f *os.File, source string) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	empty := true
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		empty = false
		emitLine(ctx, chain, out, scanner.Text(), nil)
	}

	if empty {
		emitInternal(ctx, out, "warning: reached end of input without reading any messages")
	}

	emitEOF(ctx, out, source)
}
