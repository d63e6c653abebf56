package chunk

import (
	"github.com/control-theory/wd/internal/message"
)

// ClassifyContext is the fallback context classifier: it extracts
// file/caller/context metadata regardless of message kind, for log
// formats that carry that information but aren't logrus or kelog shaped
// (e.g. a klog message's "caller" field).
func ClassifyContext(msg *message.Message, consumed map[string]bool) []Chunk {
	return extractContextFields(msg, consumed, WeightLow)
}
