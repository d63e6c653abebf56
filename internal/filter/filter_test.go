package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/control-theory/wd/internal/message"
)

func levelPtr(l message.Level) *message.Level { return &l }

func TestFullTextFilterMatchesText(t *testing.T) {
	msg := message.New(message.KindPlain, "raw")
	text := "connection refused"
	msg.Text = &text
	msg.Level = levelPtr(message.LevelError)

	f := NewFullTextFilter("refused", false)
	require.True(t, f.Pass(msg))

	f = NewFullTextFilter("timeout", false)
	require.False(t, f.Pass(msg))
}

func TestFullTextFilterInverted(t *testing.T) {
	msg := message.New(message.KindPlain, "raw")
	text := "connection refused"
	msg.Text = &text

	f := NewFullTextFilter("refused", true)
	require.False(t, f.Pass(msg))

	f = NewFullTextFilter("timeout", true)
	require.True(t, f.Pass(msg))
}

func TestFullTextFilterMatchesMetadata(t *testing.T) {
	msg := message.New(message.KindJSON, "{}")
	msg.Metadata["pod"] = "web-7f8d"

	f := NewFullTextFilter("web-7f8d", false)
	require.True(t, f.Pass(msg))
}

func TestRegexFilterMatches(t *testing.T) {
	msg := message.New(message.KindPlain, "raw")
	text := "status=500 path=/api/v1/users"
	msg.Text = &text

	f, err := NewRegexFilter(`status=5\d\d`, false)
	require.NoError(t, err)
	require.True(t, f.Pass(msg))

	f, err = NewRegexFilter(`status=4\d\d`, false)
	require.NoError(t, err)
	require.False(t, f.Pass(msg))
}

func TestRegexFilterInvalidPattern(t *testing.T) {
	_, err := NewRegexFilter(`(unclosed`, false)
	require.Error(t, err)
}

func TestModeNext(t *testing.T) {
	require.Equal(t, ModeRegex, ModeText.Next())
	require.Equal(t, ModeText, ModeRegex.Next())
}

func TestStackRequiresAllFilters(t *testing.T) {
	msg := message.New(message.KindPlain, "raw")
	text := "connection refused on pod web-1"
	msg.Text = &text

	var s Stack
	s.Push(NewFullTextFilter("refused", false))
	s.Push(NewFullTextFilter("web-1", false))
	require.True(t, s.Pass(msg))

	s.Push(NewFullTextFilter("nonexistent", false))
	require.False(t, s.Pass(msg))

	s.Pop()
	require.True(t, s.Pass(msg))
}
