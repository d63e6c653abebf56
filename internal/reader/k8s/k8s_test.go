package k8s

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/control-theory/wd/internal/k8s"
	"github.com/control-theory/wd/internal/parser"
	"github.com/control-theory/wd/internal/render"
)

func TestEmitLineAttachesPodMetadata(t *testing.T) {
	chain := parser.NewChain(nil)
	out := make(chan render.Entry, 1)

	line := k8s.Line{
		Text:      "hello world",
		Namespace: "default",
		Pod:       "api-7f8",
		Container: "app",
		Node:      "node-1",
		Labels:    map[string]string{"team": "platform"},
	}

	emitLine(context.Background(), chain, out, line)

	select {
	case e := <-out:
		msg, ok := e.(render.MessageEntry)
		require.True(t, ok)
		require.Equal(t, "default", msg.Message.Metadata["k8s.namespace"])
		require.Equal(t, "api-7f8", msg.Message.Metadata["k8s.pod"])
		require.Equal(t, "app", msg.Message.Metadata["k8s.container"])
		require.Equal(t, "node-1", msg.Message.Metadata["k8s.node"])
		require.Equal(t, "platform", msg.Message.Metadata["k8s.label.team"])
		require.Equal(t, "api-7f8/app", msg.Message.ReaderMetadata.Source)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for entry")
	}
}
