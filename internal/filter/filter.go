// Package filter implements the full-text and regex message filters used
// by the interactive filter bar.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/control-theory/wd/internal/message"
)

// Filter decides whether a Message should be shown.
type Filter interface {
	// Pass reports whether msg matches, already accounting for inversion.
	Pass(msg *message.Message) bool
	// Inverted reports whether a non-match is what counts as a pass.
	Inverted() bool
}

func pass(f Filter, passed bool) bool {
	if f.Inverted() {
		return !passed
	}
	return passed
}

// Mode selects which kind of Filter a query string is interpreted as.
type Mode int

const (
	ModeText Mode = iota
	ModeRegex
)

// Next toggles between the two filter modes.
func (m Mode) Next() Mode {
	if m == ModeText {
		return ModeRegex
	}
	return ModeText
}

// Name returns the mode's display name for the filter bar.
func (m Mode) Name() string {
	if m == ModeRegex {
		return "regex"
	}
	return "text"
}

// Parse builds a Filter from query in this mode.
func (m Mode) Parse(query string, inverted bool) (Filter, error) {
	switch m {
	case ModeRegex:
		return NewRegexFilter(query, inverted)
	default:
		return NewFullTextFilter(query, inverted), nil
	}
}

// FullTextFilter matches if query appears as a case-insensitive substring
// anywhere in the message's kind, level, text, or metadata.
type FullTextFilter struct {
	query    string
	inverted bool
}

// NewFullTextFilter builds a FullTextFilter; query is lower-cased once up
// front since every comparison is case-insensitive.
func NewFullTextFilter(query string, inverted bool) *FullTextFilter {
	return &FullTextFilter{query: strings.ToLower(query), inverted: inverted}
}

func (f *FullTextFilter) Inverted() bool { return f.inverted }

func (f *FullTextFilter) Pass(msg *message.Message) bool {
	return pass(f, f.matches(msg))
}

func (f *FullTextFilter) matches(msg *message.Message) bool {
	if strings.Contains(strings.ToLower(msg.Kind.String()), f.query) {
		return true
	}

	if msg.Level != nil && strings.Contains(strings.ToLower(msg.Level.String()), f.query) {
		return true
	}

	if msg.Text != nil && strings.Contains(strings.ToLower(*msg.Text), f.query) {
		return true
	}

	for k, v := range msg.Metadata {
		if strings.Contains(strings.ToLower(k), f.query) {
			return true
		}
		if strings.Contains(strings.ToLower(fmt.Sprint(v)), f.query) {
			return true
		}
	}

	return false
}

// RegexFilter matches if a compiled regular expression finds anywhere in
// the message's kind, level, text, or metadata.
type RegexFilter struct {
	re       *regexp.Regexp
	inverted bool
}

// NewRegexFilter compiles expr and builds a RegexFilter.
func NewRegexFilter(expr string, inverted bool) (*RegexFilter, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RegexFilter{re: re, inverted: inverted}, nil
}

func (f *RegexFilter) Inverted() bool { return f.inverted }

func (f *RegexFilter) Pass(msg *message.Message) bool {
	return pass(f, f.matches(msg))
}

func (f *RegexFilter) matches(msg *message.Message) bool {
	if f.re.MatchString(strings.ToLower(msg.Kind.String())) {
		return true
	}

	if msg.Level != nil && f.re.MatchString(strings.ToLower(msg.Level.String())) {
		return true
	}

	if msg.Text != nil && f.re.MatchString(*msg.Text) {
		return true
	}

	for k, v := range msg.Metadata {
		if f.re.MatchString(k) {
			return true
		}
		if f.re.MatchString(fmt.Sprint(v)) {
			return true
		}
	}

	return false
}

// Stack is an ordered list of active filters; a message passes the stack
// only if it passes every filter in it.
type Stack struct {
	filters []Filter
}

// Push appends a filter to the stack.
func (s *Stack) Push(f Filter) { s.filters = append(s.filters, f) }

// Pop removes the most recently pushed filter, if any.
func (s *Stack) Pop() {
	if len(s.filters) > 0 {
		s.filters = s.filters[:len(s.filters)-1]
	}
}

// Len reports how many filters are active.
func (s *Stack) Len() int { return len(s.filters) }

// Pass reports whether msg passes every filter currently on the stack.
func (s *Stack) Pass(msg *message.Message) bool {
	for _, f := range s.filters {
		if !f.Pass(msg) {
			return false
		}
	}
	return true
}
