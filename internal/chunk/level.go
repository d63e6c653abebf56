package chunk

import (
	"strings"

	"github.com/control-theory/wd/internal/message"
)

// ClassifyLevel emits a single left-slot Level chunk. A missing level
// defaults to Plain so every message gets a uniform-width level column.
func ClassifyLevel(msg *message.Message, consumed map[string]bool) []Chunk {
	level := message.LevelPlain
	if msg.Level != nil {
		level = *msg.Level
	}

	l := level
	return []Chunk{{
		Kind:       KindLevel,
		Level:      &l,
		Slot:       SlotLeft,
		Value:      strPtr(strings.ToLower(level.String())),
		Weight:     WeightHigh,
		PadLeft:    true,
		PadRight:   true,
		BreakAfter: true,
		Alignment:  AlignRight,
	}}
}
