package chunk

import (
	"github.com/control-theory/wd/internal/message"
)

// extractContextFields looks for a context/file/caller metadata field, in
// that priority order, and turns the first one found into a right-slot
// Context chunk, marking the field consumed. Shared by the Logrus-hint,
// Kelog-hint and Context classifiers, which differ only in their gating
// condition on the message.
func extractContextFields(msg *message.Message, consumed map[string]bool, weight Weight) []Chunk {
	if v, ok := stringMetadata(msg, "context"); ok {
		consumed["context"] = true
		return []Chunk{contextChunk(CleanPath(v), weight)}
	}
	if v, ok := stringMetadata(msg, "file"); ok {
		consumed["file"] = true
		return []Chunk{contextChunk(CleanPath(v), weight)}
	}
	if v, ok := stringMetadata(msg, "caller"); ok {
		consumed["caller"] = true
		return []Chunk{contextChunk(v, weight)}
	}
	return nil
}

func stringMetadata(msg *message.Message, key string) (string, bool) {
	v, ok := msg.Metadata[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func contextChunk(value string, weight Weight) Chunk {
	return Chunk{
		Kind:            KindContext,
		Slot:            SlotRight,
		Alignment:       AlignRight,
		Weight:          weight,
		Value:           strPtr(value),
		PadLeft:         true,
		PadRight:        true,
		ForceBreakAfter: true,
	}
}
