package parser

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/control-theory/wd/internal/message"
)

func TestParseJSON(t *testing.T) {
	msg, ok, err := ParseJSON(`{"timestamp":"2019-10-01T20:40:49Z","level":"info","msg":"hello"}`, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, message.KindJSON, msg.Kind)
	require.NotNil(t, msg.Level)
	require.Equal(t, message.LevelInfo, *msg.Level)
	require.NotNil(t, msg.Text)
	require.Equal(t, "hello", *msg.Text)
	require.NotNil(t, msg.Timestamp)
}

func TestParseJSONRejectsNonObject(t *testing.T) {
	_, ok, err := ParseJSON("not json", nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParseLogrus(t *testing.T) {
	line := `time="2015-03-26T05:27:38Z" level=fatal msg="The ice breaks!" number=100 omg=true`
	msg, ok, err := ParseLogrus(line, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, message.KindLogrus, msg.Kind)
	require.NotNil(t, msg.Level)
	require.Equal(t, message.LevelFatal, *msg.Level)
	require.Equal(t, "The ice breaks!", *msg.Text)
	require.Equal(t, int64(100), msg.Metadata["number"])
	require.Equal(t, true, msg.Metadata["omg"])
}

func TestParseLogrusRejectsTrailingFreeText(t *testing.T) {
	_, ok, err := ParseLogrus("latency=5ms request completed", nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParseKlog(t *testing.T) {
	line := "I0703 17:19:11.688460       1 controller.go:293] hello world"
	msg, ok, err := ParseKlog(line, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, message.KindKlog, msg.Kind)
	require.NotNil(t, msg.Level)
	require.Equal(t, message.LevelInfo, *msg.Level)
	require.Equal(t, "hello world", *msg.Text)
	require.Equal(t, "controller.go:293", msg.Metadata["caller"])
	require.Equal(t, int64(1), msg.Metadata["threadId"])
}

func TestParseKlogRejectsNonMatching(t *testing.T) {
	_, ok, err := ParseKlog("just a plain line", nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParsePlainAlwaysMatches(t *testing.T) {
	msg, ok, err := ParsePlain("this is a FATAL problem right here", nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, msg.Level)
	require.Equal(t, message.LevelFatal, *msg.Level)
}

func TestParsePlainRejectsEmpty(t *testing.T) {
	_, ok, err := ParsePlain("", nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParseRegexMetadata(t *testing.T) {
	mapping := Mapping{
		Pattern: regexp.MustCompile(`^(?P<a>\S+) (?P<b>\S+)$`),
	}
	msg, ok := parseWithMapping("foo bar", &mapping, nil)
	require.True(t, ok)
	require.Equal(t, "foo", msg.Metadata["a"])
	require.Equal(t, "bar", msg.Metadata["b"])
}

func TestParseRegexFullKlogStyle(t *testing.T) {
	mapping := Mapping{
		Pattern: regexp.MustCompile(
			`^(?P<level>[A-Z])(?P<datetime>\d{4} \d{2}:\d{2}:[\d.]+)\s+(?P<threadId>\d+) (?P<file>[\S.]+:\d+)\] (?P<text>.+)$`,
		),
		Datetime:        "0102 15:04:05.999999",
		DatetimePrepend: "2006",
	}
	msg, ok := parseWithMapping("I0703 17:19:11.688460       1 controller.go:293] hello world", &mapping, nil)
	require.True(t, ok)
	require.Equal(t, "hello world", *msg.Text)
	require.Equal(t, "1", msg.Metadata["threadId"])
	require.Equal(t, "controller.go:293", msg.Metadata["file"])
	require.NotNil(t, msg.Timestamp)
}

func TestChainPrefersJSONOverPlain(t *testing.T) {
	chain := NewChain(nil)
	msg, err := chain.Parse(`{"msg":"structured"}`, nil)
	require.NoError(t, err)
	require.Equal(t, message.KindJSON, msg.Kind)
}

func TestChainFallsBackToPlain(t *testing.T) {
	chain := NewChain(nil)
	msg, err := chain.Parse("totally unstructured text", nil)
	require.NoError(t, err)
	require.Equal(t, message.KindPlain, msg.Kind)
}
