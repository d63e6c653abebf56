package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/control-theory/wd/internal/message"
)

func TestClassifyLevelDefaultsToPlain(t *testing.T) {
	msg := message.New(message.KindPlain, "hello")
	msg.Text = strPtr("hello")

	chunks := Classify(msg)
	require.NotEmpty(t, chunks)
	require.Equal(t, KindDate, chunks[0].Kind)
	require.Equal(t, KindTime, chunks[1].Kind)
	require.Equal(t, KindLevel, chunks[2].Kind)
	require.Equal(t, "plain", *chunks[2].Value)
}

func TestClassifyKelogHintProducesContext(t *testing.T) {
	msg := message.New(message.KindJSON, `{}`)
	msg.MappedFields = map[string]message.MappingField{
		"@timestamp": message.MappingTimestamp,
		"msg":        message.MappingText,
		"level":      message.MappingLevel,
	}
	msg.Metadata["context"] = "pkg/foo/bar.go"

	consumed := map[string]bool{}
	chunks := ClassifyKelogHint(msg, consumed)
	require.Len(t, chunks, 1)
	require.Equal(t, KindContext, chunks[0].Kind)
	require.True(t, consumed["context"])
}

func TestClassifyMetadataSkipsConsumedAndEmpty(t *testing.T) {
	msg := message.New(message.KindJSON, `{}`)
	msg.Metadata["foo"] = "bar"
	msg.Metadata["empty"] = ""
	msg.Metadata["already"] = "x"

	chunks := ClassifyMetadata(msg, map[string]bool{"already": true})
	require.Len(t, chunks, 1)
	require.Equal(t, KindField, chunks[0].Kind)
}

func TestClassifyMetadataOrdersEqualWidthFieldsByKey(t *testing.T) {
	msg := message.New(message.KindJSON, `{}`)
	msg.Metadata["zz"] = "1"
	msg.Metadata["aa"] = "2"
	msg.Metadata["mm"] = "3"

	for i := 0; i < 10; i++ {
		chunks := ClassifyMetadata(msg, map[string]bool{})
		require.Len(t, chunks, 3)
		require.Equal(t, "aa=", *chunks[0].Children[0].Value)
		require.Equal(t, "mm=", *chunks[1].Children[0].Value)
		require.Equal(t, "zz=", *chunks[2].Children[0].Value)
	}
}

func TestCleanPathKeepsLastThreeSegments(t *testing.T) {
	require.Equal(t, "b/c/d.go", CleanPath("/a/b/c/d.go"))
	require.Equal(t, "d.go", CleanPath("d.go"))
}
