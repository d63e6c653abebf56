package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/control-theory/wd/internal/chunk"
	"github.com/control-theory/wd/internal/style"
)

func spacers(t *testing.T, count int) []RenderedChunk {
	t.Helper()
	normal := style.DefaultNormal()
	out := make([]RenderedChunk, count)
	for i := range out {
		out[i] = Spacer(10, normal)
	}
	return out
}

func getSimplePadded() []RenderedChunk {
	mk := func(content string, breakAfter bool) RenderedChunk {
		return RenderedChunk{
			Content: content, Width: 3,
			PadLeft: true, PadRight: true, BreakAfter: breakAfter,
			Kind: chunk.KindOther, Alignment: chunk.AlignLeft,
		}
	}
	return []RenderedChunk{mk("foo", false), mk("bar", false), mk("baz", true)}
}

func getSimpleUnpadded() []RenderedChunk {
	mk := func(content string) RenderedChunk {
		return RenderedChunk{
			Content: content, Width: 3,
			Kind: chunk.KindOther, Alignment: chunk.AlignLeft,
		}
	}
	return []RenderedChunk{mk("foo"), mk("bar"), mk("baz")}
}

func fieldChunk(key, val string) chunk.Chunk {
	return chunk.Chunk{
		Kind: chunk.KindField,
		Slot: chunk.SlotCenter,
		Children: []chunk.Chunk{
			{Kind: chunk.KindFieldKey, Slot: chunk.SlotLeft, PadLeft: true, Value: strp(key)},
			{Kind: chunk.KindFieldValue, Slot: chunk.SlotLeft, PadRight: true, Value: strp(val)},
		},
	}
}

func textChunk(text string) chunk.Chunk {
	return chunk.Chunk{
		Kind:       chunk.KindText,
		Slot:       chunk.SlotCenter,
		Weight:     chunk.WeightMedium,
		Value:      strp(text),
		PadLeft:    true,
		PadRight:   true,
		BreakAfter: true,
		Wrap:       true,
	}
}

func strp(s string) *string { return &s }

func getTags(profile style.Profile) []RenderedChunk {
	var out []RenderedChunk
	out = append(out, StyledRenderChunk(fieldChunk("foo=", "1"), profile, NoWrap)...)
	out = append(out, StyledRenderChunk(fieldChunk("bar=", "2"), profile, NoWrap)...)
	out = append(out, StyledRenderChunk(fieldChunk("baz=", "3"), profile, NoWrap)...)
	return out
}

func getMessage(profile style.Profile) []RenderedChunk {
	var out []RenderedChunk
	out = append(out, StyledRenderChunk(textChunk("hello world"), profile, NoWrap)...)
	out = append(out, getTags(profile)...)
	return out
}

func TestMergeChunksSpacer(t *testing.T) {
	normal := style.DefaultNormal()
	require.Equal(t, 10, MergeChunks(spacers(t, 1), normal).Width)

	merged := MergeChunks(spacers(t, 3), normal)
	require.Equal(t, 32, merged.Width)
	require.Equal(t, 32, len([]rune(stripANSI(merged.Content))))
}

func TestMergeChunksSimplePadded(t *testing.T) {
	normal := style.DefaultNormal()
	merged := MergeChunks(getSimplePadded(), normal)
	require.Equal(t, "foo bar baz", merged.Content)
	require.Equal(t, 11, merged.Width)
	require.True(t, merged.PadLeft)
	require.True(t, merged.PadRight)
	require.True(t, merged.BreakAfter)
}

func TestMergeChunksSimpleUnpadded(t *testing.T) {
	normal := style.DefaultNormal()
	merged := MergeChunks(getSimpleUnpadded(), normal)
	require.Equal(t, "foobarbaz", merged.Content)
	require.Equal(t, 9, merged.Width)
	require.False(t, merged.PadLeft)
	require.False(t, merged.PadRight)
	require.False(t, merged.BreakAfter)
}

func TestMergeChunksUnpadded(t *testing.T) {
	merged := MergeChunksUnpadded(spacers(t, 3))
	require.Equal(t, 30, merged.Width)
	require.True(t, merged.PadLeft)
	require.True(t, merged.PadRight)

	merged = MergeChunksUnpadded(getSimplePadded())
	require.Equal(t, "foobarbaz", merged.Content)
	require.Equal(t, 9, merged.Width)
	require.True(t, merged.PadLeft)
	require.True(t, merged.PadRight)
	require.True(t, merged.BreakAfter)
}

func TestMergeChunksTags(t *testing.T) {
	normal := style.DefaultNormal()
	merged := MergeChunks(getTags(normal), normal)
	require.Equal(t, 17, merged.Width)
	require.True(t, merged.PadLeft)
	require.True(t, merged.PadRight)
	require.False(t, merged.BreakAfter)
}

func TestMergeChunksTagsSelected(t *testing.T) {
	selected := style.DefaultSelected()
	merged := MergeChunks(getTags(selected), selected)
	require.Equal(t, 17, merged.Width)
	require.True(t, merged.PadLeft)
	require.True(t, merged.PadRight)
	require.False(t, merged.BreakAfter)
}

func TestMergeChunksMessage(t *testing.T) {
	normal := style.DefaultNormal()
	merged := MergeChunks(getMessage(normal), normal)
	require.Equal(t, 29, merged.Width)
	require.True(t, merged.PadLeft)
	require.True(t, merged.PadRight)
	require.False(t, merged.BreakAfter)
}

func TestMergeChunksMessageSelected(t *testing.T) {
	selected := style.DefaultSelected()
	merged := MergeChunks(getMessage(selected), selected)
	require.Equal(t, 29, merged.Width)
	require.True(t, merged.PadLeft)
	require.True(t, merged.PadRight)
	require.False(t, merged.BreakAfter)
}

func TestMeasureChunks(t *testing.T) {
	require.Equal(t, 10, MeasureChunks(spacers(t, 1)))
	require.Equal(t, 32, MeasureChunks(spacers(t, 3)))
	require.Equal(t, 11, MeasureChunks(getSimplePadded()))
	require.Equal(t, 9, MeasureChunks(getSimpleUnpadded()))

	normal := style.DefaultNormal()
	selected := style.DefaultSelected()
	require.Equal(t, 17, MeasureChunks(getTags(normal)))
	require.Equal(t, 17, MeasureChunks(getTags(selected)))
	require.Equal(t, 29, MeasureChunks(getMessage(normal)))
	require.Equal(t, 29, MeasureChunks(getMessage(selected)))
}

// stripANSI is a minimal escape-sequence stripper good enough for test
// assertions on rendered width; lipgloss styles only ever emit SGR codes
// of the form ESC '[' ... 'm' in this package's output.
func stripANSI(s string) string {
	out := make([]rune, 0, len(s))
	inEscape := false
	for _, r := range s {
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		if r == '\x1b' {
			inEscape = true
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
