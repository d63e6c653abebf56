// Package otlp implements the supplemental OTLP/gRPC log reader: a
// collector/logs/v1 LogsService server that turns each received
// LogRecord into a line run through the normal parser chain, the same
// way every other reader feeds render.Entry values downstream.
package otlp

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"google.golang.org/grpc"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"

	"github.com/control-theory/wd/internal/message"
	"github.com/control-theory/wd/internal/parser"
	"github.com/control-theory/wd/internal/render"
)

// Listen starts a LogsService gRPC server on addr and blocks until ctx is
// canceled or the server fails, emitting a MessageEntry per LogRecord and
// a final EofEntry on the way out unless ctx is already canceled,
// mirroring every other reader's contract.
func Listen(ctx context.Context, addr string, chain *parser.Chain, out chan<- render.Entry) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("otlp: listen %s: %w", addr, err)
	}

	srv := grpc.NewServer()
	collogspb.RegisterLogsServiceServer(srv, &logsServer{ctx: ctx, chain: chain, out: out})

	go func() {
		<-ctx.Done()
		srv.GracefulStop()
	}()

	emitInternal(ctx, out, fmt.Sprintf("otlp: listening for logs on %s", addr))
	serveErr := srv.Serve(lis)
	emitEOF(ctx, out)

	if serveErr != nil && ctx.Err() == nil {
		return serveErr
	}
	return nil
}

type logsServer struct {
	collogspb.UnimplementedLogsServiceServer

	ctx   context.Context
	chain *parser.Chain
	out   chan<- render.Entry
}

func (s *logsServer) Export(_ context.Context, req *collogspb.ExportLogsServiceRequest) (*collogspb.ExportLogsServiceResponse, error) {
	for _, rl := range req.GetResourceLogs() {
		source := resourceSource(rl.GetResource())
		for _, sl := range rl.GetScopeLogs() {
			for _, rec := range sl.GetLogRecords() {
				s.emitRecord(rec, source)
			}
		}
	}
	return &collogspb.ExportLogsServiceResponse{}, nil
}

func (s *logsServer) emitRecord(rec *logspb.LogRecord, source string) {
	text := bodyText(rec.GetBody())
	if text == "" {
		return
	}

	ts := recordTimestamp(rec)
	meta := &message.ReaderMetadata{Timestamp: ts, Source: source}

	msg, err := s.chain.Parse(text, meta)
	if err != nil || msg == nil {
		return
	}

	if level, ok := severityLevel(rec.GetSeverityNumber()); ok && msg.Level == nil {
		msg.Level = &level
	}
	for _, kv := range rec.GetAttributes() {
		msg.Metadata[kv.GetKey()] = bodyText(kv.GetValue())
	}

	select {
	case s.out <- render.MessageEntry{Message: msg}:
	case <-s.ctx.Done():
	}
}

func recordTimestamp(rec *logspb.LogRecord) *time.Time {
	nanos := rec.GetTimeUnixNano()
	if nanos == 0 {
		nanos = rec.GetObservedTimeUnixNano()
	}
	if nanos == 0 {
		return nil
	}
	t := time.Unix(0, int64(nanos)).UTC()
	return &t
}

// resourceSource picks a label identifying which resource emitted a batch
// of records, preferring the well-known service.name attribute and
// falling back to a comma-joined attribute list, then to a generic label
// if the resource carries nothing.
func resourceSource(res *resourcepb.Resource) string {
	if res == nil {
		return "otlp"
	}

	for _, kv := range res.GetAttributes() {
		if kv.GetKey() == "service.name" {
			if v := bodyText(kv.GetValue()); v != "" {
				return v
			}
		}
	}

	var parts []string
	for _, kv := range res.GetAttributes() {
		parts = append(parts, kv.GetKey()+"="+bodyText(kv.GetValue()))
	}
	if len(parts) == 0 {
		return "otlp"
	}
	return strings.Join(parts, ",")
}

func bodyText(v *commonpb.AnyValue) string {
	if v == nil {
		return ""
	}
	switch x := v.GetValue().(type) {
	case *commonpb.AnyValue_StringValue:
		return x.StringValue
	case *commonpb.AnyValue_IntValue:
		return strconv.FormatInt(x.IntValue, 10)
	case *commonpb.AnyValue_DoubleValue:
		return strconv.FormatFloat(x.DoubleValue, 'f', -1, 64)
	case *commonpb.AnyValue_BoolValue:
		return strconv.FormatBool(x.BoolValue)
	default:
		return v.String()
	}
}

// severityLevel maps an OTLP severity number onto the normalized level
// scale, collapsing the four sub-ranges ("WARN".."WARN4", etc.) the OTLP
// spec allows for fine-grained ordering within a level.
func severityLevel(n logspb.SeverityNumber) (message.Level, bool) {
	switch {
	case n >= logspb.SeverityNumber_SEVERITY_NUMBER_FATAL && n <= logspb.SeverityNumber_SEVERITY_NUMBER_FATAL4:
		return message.LevelFatal, true
	case n >= logspb.SeverityNumber_SEVERITY_NUMBER_ERROR && n <= logspb.SeverityNumber_SEVERITY_NUMBER_ERROR4:
		return message.LevelError, true
	case n >= logspb.SeverityNumber_SEVERITY_NUMBER_WARN && n <= logspb.SeverityNumber_SEVERITY_NUMBER_WARN4:
		return message.LevelWarning, true
	case n >= logspb.SeverityNumber_SEVERITY_NUMBER_INFO && n <= logspb.SeverityNumber_SEVERITY_NUMBER_INFO4:
		return message.LevelInfo, true
	case n >= logspb.SeverityNumber_SEVERITY_NUMBER_DEBUG && n <= logspb.SeverityNumber_SEVERITY_NUMBER_DEBUG4:
		return message.LevelDebug, true
	case n >= logspb.SeverityNumber_SEVERITY_NUMBER_TRACE && n <= logspb.SeverityNumber_SEVERITY_NUMBER_TRACE4:
		return message.LevelDebug, true
	default:
		return 0, false
	}
}

func emitInternal(ctx context.Context, out chan<- render.Entry, text string) {
	select {
	case out <- render.NewInternalEntry(text):
	case <-ctx.Done():
	}
}

func emitEOF(ctx context.Context, out chan<- render.Entry) {
	select {
	case out <- render.EofEntry{Source: "otlp"}:
	case <-ctx.Done():
	}
}
