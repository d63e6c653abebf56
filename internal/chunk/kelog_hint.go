package chunk

import (
	"github.com/control-theory/wd/internal/message"
)

var kelogMappedFields = map[string]message.MappingField{
	"@timestamp": message.MappingTimestamp,
	"msg":        message.MappingText,
	"level":      message.MappingLevel,
}

// isKelog recognizes the "kelog" JSON shape: @timestamp/msg/level mapped
// onto Timestamp/Text/Level, plus a context metadata field.
func isKelog(msg *message.Message) bool {
	if msg.Kind != message.KindJSON {
		return false
	}

	for name, mf := range kelogMappedFields {
		if got, ok := msg.MappedFields[name]; !ok || got != mf {
			return false
		}
	}

	_, hasContext := msg.Metadata["context"]
	return hasContext
}

// ClassifyKelogHint recognizes the kelog JSON log shape and produces a
// right-slot Context chunk from its context/file/caller metadata.
func ClassifyKelogHint(msg *message.Message, consumed map[string]bool) []Chunk {
	if !isKelog(msg) {
		return nil
	}
	return extractContextFields(msg, consumed, WeightLow)
}
