package reader

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/control-theory/wd/internal/parser"
	"github.com/control-theory/wd/internal/render"
)

func collect(t *testing.T, out <-chan render.Entry) []render.Entry {
	t.Helper()
	var entries []render.Entry
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-out:
			if !ok {
				return entries
			}
			entries = append(entries, e)
			if _, isEOF := e.(render.EofEntry); isEOF {
				return entries
			}
		case <-timeout:
			t.Fatal("timed out collecting reader output")
			return nil
		}
	}
}

func TestReadNullSendsExplanationThenEOF(t *testing.T) {
	out := make(chan render.Entry, 4)
	ReadNull(context.Background(), nil, out)
	close(out)

	entries := collect(t, out)
	require.Len(t, entries, 3)
	_, isEOF := entries[2].(render.EofEntry)
	require.True(t, isEOF)
}

func TestEmitLineForwardsParsedLine(t *testing.T) {
	chain := parser.NewChain(nil)
	out := make(chan render.Entry, 4)

	emitLine(context.Background(), chain, out, "2015-03-26T05:27:38Z hello world", nil)
	close(out)

	entries := collect(t, out)
	require.Len(t, entries, 1)
	msg, ok := entries[0].(render.MessageEntry)
	require.True(t, ok)
	require.NotNil(t, msg.Message.Text)
}
