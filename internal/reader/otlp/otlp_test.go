package otlp

import (
	"testing"

	"github.com/stretchr/testify/require"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"

	"github.com/control-theory/wd/internal/message"
)

func stringValue(s string) *commonpb.AnyValue {
	return &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: s}}
}

func TestBodyTextStringValue(t *testing.T) {
	require.Equal(t, "hello", bodyText(stringValue("hello")))
}

func TestBodyTextNil(t *testing.T) {
	require.Equal(t, "", bodyText(nil))
}

func TestResourceSourcePrefersServiceName(t *testing.T) {
	res := &resourcepb.Resource{Attributes: []*commonpb.KeyValue{
		{Key: "host.name", Value: stringValue("node-1")},
		{Key: "service.name", Value: stringValue("checkout")},
	}}
	require.Equal(t, "checkout", resourceSource(res))
}

func TestResourceSourceFallsBackToJoinedAttributes(t *testing.T) {
	res := &resourcepb.Resource{Attributes: []*commonpb.KeyValue{
		{Key: "host.name", Value: stringValue("node-1")},
	}}
	require.Equal(t, "host.name=node-1", resourceSource(res))
}

func TestResourceSourceNilResource(t *testing.T) {
	require.Equal(t, "otlp", resourceSource(nil))
}

func TestSeverityLevelRanges(t *testing.T) {
	cases := []struct {
		n     logspb.SeverityNumber
		level message.Level
	}{
		{logspb.SeverityNumber_SEVERITY_NUMBER_DEBUG, message.LevelDebug},
		{logspb.SeverityNumber_SEVERITY_NUMBER_INFO4, message.LevelInfo},
		{logspb.SeverityNumber_SEVERITY_NUMBER_WARN2, message.LevelWarning},
		{logspb.SeverityNumber_SEVERITY_NUMBER_ERROR, message.LevelError},
		{logspb.SeverityNumber_SEVERITY_NUMBER_FATAL4, message.LevelFatal},
	}
	for _, c := range cases {
		level, ok := severityLevel(c.n)
		require.True(t, ok)
		require.Equal(t, c.level, level)
	}
}

func TestSeverityLevelUnspecified(t *testing.T) {
	_, ok := severityLevel(logspb.SeverityNumber_SEVERITY_NUMBER_UNSPECIFIED)
	require.False(t, ok)
}
