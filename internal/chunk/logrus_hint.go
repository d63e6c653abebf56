package chunk

import (
	"github.com/control-theory/wd/internal/message"
)

// ClassifyLogrusHint produces a right-slot Context chunk from a logrus
// message's context/file/caller metadata, the same extraction
// ClassifyKelogHint and ClassifyContext perform, gated on the message
// having actually come from the Logrus parser.
func ClassifyLogrusHint(msg *message.Message, consumed map[string]bool) []Chunk {
	if msg.Kind != message.KindLogrus {
		return nil
	}
	return extractContextFields(msg, consumed, WeightLow)
}
