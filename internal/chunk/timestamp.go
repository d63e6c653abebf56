package chunk

import (
	"github.com/control-theory/wd/internal/message"
)

// ClassifyTimestamp emits the Date/Time left-slot chunks from a message's
// own timestamp, falling back to the reader's timestamp.
func ClassifyTimestamp(msg *message.Message, consumed map[string]bool) []Chunk {
	ts := msg.Timestamp
	if ts == nil && msg.ReaderMetadata != nil {
		ts = msg.ReaderMetadata.Timestamp
	}

	date, time := "-", "-"
	if ts != nil {
		local := ts.Local()
		date = local.Format("2006-01-02")
		time = local.Format("15:04:05")
	}

	return []Chunk{
		{
			Kind:      KindDate,
			Slot:      SlotLeft,
			Alignment: AlignRight,
			Weight:    WeightNormal,
			PadRight:  true,
			Value:     strPtr(date),
		},
		{
			Kind:      KindTime,
			Slot:      SlotLeft,
			Alignment: AlignRight,
			Weight:    WeightMedium,
			PadRight:  true,
			Value:     strPtr(time),
		},
	}
}
