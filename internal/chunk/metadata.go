package chunk

import (
	"sort"

	"github.com/control-theory/wd/internal/message"
)

// ClassifyMetadata emits one Field chunk (a FieldKey/FieldValue pair) per
// remaining metadata entry not already consumed by an earlier classifier,
// skipping empty values. Fields are emitted narrowest-first (ties kept in
// key order) so that wrapping packs short fields together.
func ClassifyMetadata(msg *message.Message, consumed map[string]bool) []Chunk {
	keys := make([]string, 0, len(msg.Metadata))
	for key := range msg.Metadata {
		if consumed[key] {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make([]Chunk, 0, len(keys))
	for _, key := range keys {
		str := cleanValue(msg.Metadata[key])
		if str == "" {
			continue
		}
		fields = append(fields, fieldChunk(key, str))
	}

	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Measure() < fields[j].Measure()
	})

	return fields
}

func cleanValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return toDisplayString(t)
	}
}

func fieldChunk(key, value string) Chunk {
	return Chunk{
		Kind:   KindField,
		Slot:   SlotCenter,
		Weight: WeightHigh,
		Children: []Chunk{
			{
				Kind:    KindFieldKey,
				Slot:    SlotLeft,
				PadLeft: true,
				Weight:  WeightNormal,
				Value:   strPtr(key + "="),
			},
			{
				Kind:     KindFieldValue,
				Slot:     SlotLeft,
				PadRight: true,
				Weight:   WeightNormal,
				Value:    strPtr(value),
			},
		},
	}
}
