package parser

import (
	"regexp"
	"strconv"
	"time"

	"github.com/control-theory/wd/internal/message"
)

// klogLine matches klog's fixed layout: https://github.com/kubernetes/klog
// e.g. "I0703 17:19:11.688460       1 controller.go:293] hello world"
var klogLine = regexp.MustCompile(`^([A-Z])(\d{4} \d{2}:\d{2}:[\d.]+)\s+(\d+) ([\S.]+:\d+)\] (.+)$`)

func mapKlogLevel(level string) (message.Level, bool) {
	switch level {
	case "D":
		return message.LevelDebug, true
	case "I":
		return message.LevelInfo, true
	case "W":
		return message.LevelWarning, true
	case "E":
		return message.LevelError, true
	case "F":
		return message.LevelFatal, true
	default:
		return 0, false
	}
}

// ParseKlog recognizes klog's "Lmmdd hh:mm:ss.uuuuuu threadid file:line] msg"
// layout. klog itself carries no year, so the current year is prepended
// before parsing; if that still fails to parse, the reader-supplied
// timestamp (if any) is used instead.
func ParseKlog(line string, meta *message.ReaderMetadata) (*message.Message, bool, error) {
	caps := klogLine.FindStringSubmatch(line)
	if caps == nil {
		return nil, false, nil
	}

	var readerTimestamp *time.Time
	if meta != nil {
		readerTimestamp = meta.Timestamp
	}

	year := time.Now().Year()
	withYear := strconv.Itoa(year) + caps[2]
	timestamp, err := time.Parse("20060102 15:04:05.999999", withYear)
	var ts *time.Time
	if err == nil {
		t := timestamp.UTC()
		ts = &t
	} else {
		ts = readerTimestamp
	}

	msg := message.New(message.KindKlog, line)
	msg.ReaderMetadata = meta
	msg.Text = &caps[5]
	msg.Timestamp = ts
	if level, ok := mapKlogLevel(caps[1]); ok {
		l := level
		msg.Level = &l
	}

	if threadID, err := strconv.ParseInt(caps[3], 10, 64); err == nil {
		msg.Metadata["threadId"] = threadID
	}
	msg.Metadata["caller"] = caps[4]

	return msg, true, nil
}
