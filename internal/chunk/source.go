package chunk

import (
	"github.com/control-theory/wd/internal/message"
)

// ClassifySource emits a right-slot Context chunk naming the reader's
// source label (e.g. a pod name), when the reader supplied one.
func ClassifySource(msg *message.Message, consumed map[string]bool) []Chunk {
	if msg.ReaderMetadata == nil || msg.ReaderMetadata.Source == "" {
		return nil
	}

	return []Chunk{{
		Kind:            KindContext,
		Slot:            SlotRight,
		Value:           strPtr(msg.ReaderMetadata.Source),
		Weight:          WeightNormal,
		PadLeft:         true,
		PadRight:        true,
		Alignment:       AlignRight,
		ForceBreakAfter: true,
	}}
}
