package chunk

import (
	"strings"

	"github.com/control-theory/wd/internal/message"
)

// ClassifyText emits one wrapping, center-slot chunk per line of the
// message's extracted text. Multi-line text forces a break after every
// line, including the last, so trailing field chunks start on a fresh
// line of their own.
func ClassifyText(msg *message.Message, consumed map[string]bool) []Chunk {
	if msg.Text == nil {
		return nil
	}

	lines := strings.Split(*msg.Text, "\n")
	chunks := make([]Chunk, 0, len(lines))
	for _, line := range lines {
		chunks = append(chunks, Chunk{
			Kind:            KindText,
			Slot:            SlotCenter,
			Weight:          WeightHigh,
			Value:           strPtr(line),
			PadLeft:         true,
			PadRight:        true,
			BreakAfter:      true,
			Wrap:            true,
			ForceBreakAfter: len(lines) > 1,
		})
	}

	return chunks
}
