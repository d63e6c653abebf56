package reorder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/control-theory/wd/internal/message"
	"github.com/control-theory/wd/internal/render"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func entryAt(text string, ts time.Time) render.MessageEntry {
	m := message.New(message.KindPlain, text)
	m.Text = &text
	m.Timestamp = &ts
	return render.MessageEntry{Message: m}
}

func TestRunReordersByTimestamp(t *testing.T) {
	in := make(chan render.Entry, 8)
	out := make(chan render.Entry, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		Run(ctx, in, out, 50*time.Millisecond)
		close(done)
	}()

	base := time.Now().UTC()
	in <- entryAt("second", base.Add(2*time.Second))
	in <- entryAt("first", base.Add(1*time.Second))
	in <- render.EofEntry{Source: "test"}

	var received []string
	timeout := time.After(2 * time.Second)
loop:
	for {
		select {
		case e, ok := <-out:
			if !ok {
				break loop
			}
			switch v := e.(type) {
			case render.MessageEntry:
				received = append(received, *v.Message.Text)
			case render.EofEntry:
				break loop
			}
		case <-timeout:
			t.Fatal("timed out waiting for reordered output")
		}
	}

	require.Equal(t, []string{"first", "second"}, received)

	cancel()
	<-done
}

func TestRunForwardsInternalEntriesImmediately(t *testing.T) {
	in := make(chan render.Entry, 4)
	out := make(chan render.Entry, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		Run(ctx, in, out, time.Hour)
		close(done)
	}()

	in <- render.NewInternalEntry("note: reordering enabled")

	select {
	case e := <-out:
		v, ok := e.(render.MessageEntry)
		require.True(t, ok)
		require.Equal(t, message.KindInternal, v.Message.Kind)
	case <-time.After(time.Second):
		t.Fatal("internal entry was not forwarded immediately")
	}

	cancel()
	<-done
}
