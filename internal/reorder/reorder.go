// Package reorder buffers incoming log entries briefly so that messages
// arriving slightly out of order (common with multiplexed k8s pod
// streams) are re-emitted in timestamp order.
package reorder

import (
	"container/heap"
	"context"
	"time"

	"github.com/control-theory/wd/internal/message"
	"github.com/control-theory/wd/internal/render"
)

// DefaultBufferDuration is how long a message is held before being
// evicted from the reorder buffer, absent an explicit --buffer-ms.
const DefaultBufferDuration = 1000 * time.Millisecond

type timestampedEntry struct {
	received  time.Time
	timestamp int64
	entry     render.MessageEntry
}

// heapData implements container/heap.Interface as a min-heap by
// timestamp (the inverse of Rust's intentionally-inverted Ord).
type heapData []timestampedEntry

func (h heapData) Len() int            { return len(h) }
func (h heapData) Less(i, j int) bool  { return h[i].timestamp < h[j].timestamp }
func (h heapData) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *heapData) Push(x interface{}) { *h = append(*h, x.(timestampedEntry)) }
func (h *heapData) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func newTimestampedEntry(e render.MessageEntry) timestampedEntry {
	ts := time.Now().UTC()
	switch {
	case e.Message.Timestamp != nil:
		ts = *e.Message.Timestamp
	case e.Message.ReaderMetadata != nil && e.Message.ReaderMetadata.Timestamp != nil:
		ts = *e.Message.ReaderMetadata.Timestamp
	}

	return timestampedEntry{
		received:  time.Now(),
		timestamp: ts.UnixMilli(),
		entry:     e,
	}
}

// Run reads entries from in and writes them, reordered, to out. Internal
// entries (produced by render.NewInternalEntry) and EOF markers bypass the
// buffer and are forwarded immediately. Run blocks until ctx is canceled,
// an EOF marker has been forwarded, or in is closed and drained, then
// closes out.
func Run(ctx context.Context, in <-chan render.Entry, out chan<- render.Entry, bufferDuration time.Duration) {
	defer close(out)

	if bufferDuration <= 0 {
		bufferDuration = DefaultBufferDuration
	}

	h := &heapData{}
	heap.Init(h)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	send := func(e render.Entry) bool {
		select {
		case out <- e:
			return true
		case <-ctx.Done():
			return false
		}
	}

	inClosed := false
	drainIncoming := func() bool {
		for {
			select {
			case e, ok := <-in:
				if !ok {
					inClosed = true
					return true
				}
				switch v := e.(type) {
				case render.MessageEntry:
					if v.Message.Kind == message.KindInternal {
						if !send(v) {
							return false
						}
					} else {
						heap.Push(h, newTimestampedEntry(v))
					}
				case render.EofEntry:
					for h.Len() > 0 {
						item := heap.Pop(h).(timestampedEntry)
						if !send(item.entry) {
							return false
						}
					}
					send(v)
					return false
				}
			default:
				return true
			}
		}
	}

	drainExpired := func() bool {
		now := time.Now()
		for h.Len() > 0 {
			item := (*h)[0]
			if now.Sub(item.received) < bufferDuration {
				break
			}
			heap.Pop(h)
			if !send(item.entry) {
				return false
			}
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !drainIncoming() {
				return
			}
			if !drainExpired() {
				return
			}
			if inClosed && h.Len() == 0 {
				return
			}
		}
	}
}
