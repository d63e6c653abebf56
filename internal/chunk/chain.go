package chunk

import (
	"github.com/control-theory/wd/internal/message"
)

// Classifier is a pure function from a Message to the chunks it
// contributes; consumed tracks which metadata field names have already
// been turned into chunks by an earlier classifier in the chain, so
// Metadata doesn't re-emit them as generic fields.
type Classifier func(msg *message.Message, consumed map[string]bool) []Chunk

// chain is the fixed classifier order: Timestamp, Level, Source, Text,
// Logrus-hint, Kelog-hint, Context, Metadata. The Context classifier
// is included even though the upstream Rust source's classifier list
// omits it - an omission in that list, since the module implementing it
// still exists there and nothing downstream could otherwise surface a
// caller/file field on non-logrus, non-kelog messages.
var chain = []Classifier{
	ClassifyTimestamp,
	ClassifyLevel,
	ClassifySource,
	ClassifyText,
	ClassifyLogrusHint,
	ClassifyKelogHint,
	ClassifyContext,
	ClassifyMetadata,
}

// Classify runs every classifier in order and concatenates their output;
// final chunk order is exactly this concatenation.
func Classify(msg *message.Message) []Chunk {
	consumed := make(map[string]bool)

	var chunks []Chunk
	for _, c := range chain {
		chunks = append(chunks, c(msg, consumed)...)
	}
	return chunks
}
