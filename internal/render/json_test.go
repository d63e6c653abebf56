package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/control-theory/wd/internal/message"
)

func TestJSONRendererLowercasesKindAndLevel(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)

	msg := message.New(message.KindJSON, `{"level":"info"}`)
	level := message.LevelInfo
	msg.Level = &level

	require.NoError(t, r.Render(MessageEntry{Message: msg}))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "json", out["kind"])
	require.Equal(t, "info", out["level"])
}

func TestJSONRendererIncludesMappedFields(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)

	msg := message.New(message.KindJSON, `{"ts":"now"}`)
	msg.MappedFields["ts"] = message.MappingTimestamp

	require.NoError(t, r.Render(MessageEntry{Message: msg}))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	mapped, ok := out["mapped_fields"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "timestamp", mapped["ts"])
}

func TestJSONRendererOmitsEmptyMappedFields(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)

	msg := message.New(message.KindPlain, "hello")
	require.NoError(t, r.Render(MessageEntry{Message: msg}))

	require.NotContains(t, buf.String(), "mapped_fields")
}
