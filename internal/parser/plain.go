package parser

import (
	"time"

	"github.com/control-theory/wd/internal/message"
)

// Bounds on how much of a plain line a fuzzy timestamp match may consume
// before it's considered too good (the whole line "looks like" a date) or
// too little (a stray number, not a real timestamp) to trust.
const (
	minConsumedChars = 15
	maxConsumedChars = 60
	maxConsumedRatio = 0.75
)

// ParsePlain is the catch-all parser: every non-empty line becomes a
// Plain message carrying the whole line as text. A reader-supplied
// timestamp is preferred; failing that, a lenient fuzzy parse is
// attempted against a leading span of the line and only kept if the
// span it matched is a plausible timestamp width relative to the line.
func ParsePlain(line string, meta *message.ReaderMetadata) (*message.Message, bool, error) {
	if line == "" {
		return nil, false, nil
	}

	msg := message.New(message.KindPlain, line)
	msg.ReaderMetadata = meta
	msg.Text = &line

	if meta != nil && meta.Timestamp != nil {
		msg.Timestamp = meta.Timestamp
	} else if t, consumed, ok := fuzzyLeadingTimestamp(line); ok {
		ratio := float64(consumed) / float64(len(line))
		if consumed >= minConsumedChars && consumed <= maxConsumedChars && ratio <= maxConsumedRatio {
			msg.Timestamp = &t
		}
	}

	if level, ok := GuessLevel(line); ok {
		l := level
		msg.Level = &l
	}

	return msg, true, nil
}

// fuzzyLeadingTimestamp tries ParseTimestamp against growing prefixes of
// line bounded by maxConsumedChars, returning the longest prefix that
// parses along with how many characters it consumed.
func fuzzyLeadingTimestamp(line string) (time.Time, int, bool) {
	limit := len(line)
	if limit > maxConsumedChars {
		limit = maxConsumedChars
	}

	best := -1
	var bestTime time.Time
	for end := minConsumedChars; end <= limit; end++ {
		if t, ok := ParseTimestamp(line[:end]); ok {
			best = end
			bestTime = t
		}
	}
	if best < 0 {
		return time.Time{}, 0, false
	}
	return bestTime, best, true
}
