// Package chunk turns a normalized message.Message into an ordered list
// of display Chunks via a fixed chain of classifiers.
package chunk

import (
	"github.com/control-theory/wd/internal/message"
)

// Kind is a loose category for chunks, used by rendering (style, weight
// pruning) and filtering.
type Kind int

const (
	KindLevel Kind = iota
	KindDate
	KindTime
	KindText
	KindContext
	KindField
	KindFieldKey
	KindFieldValue
	KindSpacer
	KindOther
)

// Slot is the display region a chunk belongs to.
type Slot int

const (
	SlotLeft Slot = iota
	SlotCenter
	SlotRight
)

// Alignment controls text alignment within a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Weight controls rendering priority only; chunks with Weight <= 0 may be
// pruned first when space runs short.
type Weight int8

const (
	WeightLow    Weight = -10
	WeightNormal Weight = 0
	WeightMedium Weight = 10
	WeightHigh   Weight = 20
)

// Chunk is one piece of displayable content, optionally composed of
// children (e.g. a Field chunk has FieldKey/FieldValue children).
type Chunk struct {
	Kind      Kind
	Level     *message.Level // set when Kind == KindLevel
	Slot      Slot
	Alignment Alignment

	PadLeft         bool
	PadRight        bool
	BreakAfter      bool
	ForceBreakAfter bool
	Wrap            bool

	Weight Weight
	Value  *string

	Children []Chunk
}

// Measure returns the chunk's rendered width in runes, including its own
// padding and recursively its children's.
func (c Chunk) Measure() int {
	selfLen := 0
	if c.Value != nil {
		selfLen = len([]rune(*c.Value))
	}

	padding := 0
	if c.PadLeft {
		padding++
	}
	if c.PadRight {
		padding++
	}

	childLen := 0
	for _, child := range c.Children {
		childLen += child.Measure()
	}

	return selfLen + padding + childLen
}

func strPtr(s string) *string { return &s }
