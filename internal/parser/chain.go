// Package parser turns raw log lines into normalized message.Message
// values, running a fixed chain of format-specific parsers.
package parser

import (
	"github.com/control-theory/wd/internal/message"
)

// Func is a single parser attempt: it returns (msg, true, nil) on a
// match, (nil, false, nil) when the line doesn't look like its format
// (try the next parser), or a non-nil error only for internally-invalid
// state, never for an ordinary non-match.
type Func func(line string, meta *message.ReaderMetadata) (*message.Message, bool, error)

// Chain runs parsers in a fixed order, JSON, Logrus, Klog, Regex (if any
// mappings are configured), Plain, stopping at the first match.
type Chain struct {
	parsers []Func
}

// NewChain builds the canonical parser chain. regexMappings may be nil or
// empty when no --regexes file was configured; Plain accepts every
// non-empty line, so it is never skipped and always sits last.
func NewChain(regexMappings []Mapping) *Chain {
	parsers := []Func{
		ParseJSON,
		ParseLogrus,
		ParseKlog,
	}
	if len(regexMappings) > 0 {
		parsers = append(parsers, ParseRegex(regexMappings))
	}
	parsers = append(parsers, ParsePlain)

	return &Chain{parsers: parsers}
}

// Parse runs the chain against a single line, returning nil if every
// parser declined (which happens only for an empty line, the one input
// Plain declines) or an error if a parser hit an internally-invalid state.
// The first error ends the chain; later parsers are not tried.
func (c *Chain) Parse(line string, meta *message.ReaderMetadata) (*message.Message, error) {
	for _, p := range c.parsers {
		msg, ok, err := p(line, meta)
		if err != nil {
			return nil, err
		}
		if ok {
			return msg, nil
		}
	}
	return nil, nil
}
