// Package k8s bridges the Kubernetes pod-log source to wd's reader
// pipeline: it runs each line's text through the parser chain exactly like
// any other reader, then reattaches the pod context the source already knew
// as message metadata, rather than wrapping it in a synthetic OTLP shape
// before parsing.
package k8s

import (
	"context"
	"fmt"

	"github.com/control-theory/wd/internal/k8s"
	"github.com/control-theory/wd/internal/message"
	"github.com/control-theory/wd/internal/parser"
	"github.com/control-theory/wd/internal/render"
)

// Read drains a running KubernetesLogSource's line channel, parsing each
// line's text with chain and attaching namespace/pod/container/node/label
// context to the resulting message's metadata. It returns once src's
// channel closes or ctx is canceled, sending a final EofEntry unless ctx
// is already canceled.
func Read(ctx context.Context, src *k8s.KubernetesLogSource, chain *parser.Chain, out chan<- render.Entry) {
	lines := src.GetLineChan()
	for {
		select {
		case <-ctx.Done():
			emitEOF(ctx, out)
			return
		case line, ok := <-lines:
			if !ok {
				emitEOF(ctx, out)
				return
			}
			emitLine(ctx, chain, out, line)
		}
	}
}

func emitLine(ctx context.Context, chain *parser.Chain, out chan<- render.Entry, line k8s.Line) {
	source := line.Pod
	if line.Container != "" {
		source = fmt.Sprintf("%s/%s", line.Pod, line.Container)
	}

	meta := &message.ReaderMetadata{Source: source}
	msg, err := chain.Parse(line.Text, meta)
	if err != nil || msg == nil {
		return
	}

	msg.Metadata["k8s.namespace"] = line.Namespace
	msg.Metadata["k8s.pod"] = line.Pod
	msg.Metadata["k8s.container"] = line.Container
	msg.Metadata["k8s.node"] = line.Node
	for k, v := range line.Labels {
		msg.Metadata["k8s.label."+k] = v
	}

	select {
	case out <- render.MessageEntry{Message: msg}:
	case <-ctx.Done():
	}
}

func emitEOF(ctx context.Context, out chan<- render.Entry) {
	select {
	case out <- render.EofEntry{Source: "kubernetes"}:
	case <-ctx.Done():
	}
}
