// Package render implements the three-column wrap/layout engine: turning
// a list of chunk.Chunk into fixed-width styled lines of text.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/control-theory/wd/internal/chunk"
	"github.com/control-theory/wd/internal/style"
)

// RenderedChunk is one already-styled span of text, with enough layout
// metadata (width, padding, break hints) to be merged with its neighbors
// or wrapped onto further lines.
type RenderedChunk struct {
	Content string
	Width   int

	PadLeft         bool
	PadRight        bool
	BreakAfter      bool
	ForceBreakAfter bool

	Kind      chunk.Kind
	Weight    chunk.Weight
	Alignment chunk.Alignment
}

// EmptyChunk is a zero-width, padded placeholder chunk. StyledRender does
// not use it; rows a region has no line for are filled with Spacer chunks.
func EmptyChunk() RenderedChunk {
	return RenderedChunk{PadLeft: true, PadRight: true, Kind: chunk.KindSpacer}
}

// Spacer returns a width-wide run of blank space, styled with the
// profile's base style when the profile paints a background (so the
// background still shows through the gap).
func Spacer(width int, profile style.Profile) RenderedChunk {
	space := strings.Repeat(" ", width)
	if profile.IsOpaque() {
		space = profile.Base.Render(space)
	}
	return RenderedChunk{
		Content:  space,
		Width:    width,
		PadLeft:  true,
		PadRight: true,
		Kind:     chunk.KindSpacer,
	}
}

// MergeChunks joins several rendered chunks into one, inserting a single
// styled space between adjacent chunks that ask for padding on either
// side. The merged chunk's trailing metadata (pad_right, break_after,
// force_break_after) comes from the last non-empty input chunk.
func MergeChunks(chunks []RenderedChunk, profile style.Profile) RenderedChunk {
	var buf strings.Builder
	width := 0
	padLeft := false
	var lastPadRight, lastBreakAfter, lastForceBreakAfter bool

	i := 0
	for _, c := range chunks {
		if c.Width == 0 {
			continue
		}

		if i == 0 && c.PadLeft {
			padLeft = true
		}

		if i > 0 && (lastPadRight || c.PadLeft) {
			if profile.IsOpaque() {
				buf.WriteString(profile.Base.Render(" "))
			} else {
				buf.WriteByte(' ')
			}
			width++
		}

		buf.WriteString(c.Content)
		width += c.Width

		lastPadRight = c.PadRight
		lastBreakAfter = c.BreakAfter
		lastForceBreakAfter = c.ForceBreakAfter
		i++
	}

	return RenderedChunk{
		Width:           width,
		Content:         buf.String(),
		PadLeft:         padLeft,
		PadRight:        lastPadRight,
		BreakAfter:      lastBreakAfter,
		ForceBreakAfter: lastForceBreakAfter,
		Kind:            chunk.KindOther,
	}
}

// MergeChunksUnpadded joins chunks with no space inserted between them,
// used for spacer padding where exact width matters.
func MergeChunksUnpadded(chunks []RenderedChunk) RenderedChunk {
	var buf strings.Builder
	width := 0
	padLeft := false
	var lastPadRight, lastBreakAfter, lastForceBreakAfter bool

	for i, c := range chunks {
		if c.Width == 0 {
			continue
		}
		if i == 0 {
			padLeft = c.PadLeft
		}
		buf.WriteString(c.Content)
		width += c.Width
		lastPadRight = c.PadRight
		lastBreakAfter = c.BreakAfter
		lastForceBreakAfter = c.ForceBreakAfter
	}

	return RenderedChunk{
		Width:           width,
		Content:         buf.String(),
		PadLeft:         padLeft,
		PadRight:        lastPadRight,
		BreakAfter:      lastBreakAfter,
		ForceBreakAfter: lastForceBreakAfter,
		Kind:            chunk.KindOther,
	}
}

// MeasureChunks is a cheap version of MergeChunks that only computes the
// total rendered width, including inter-chunk padding.
func MeasureChunks(chunks []RenderedChunk) int {
	width := 0
	lastPadRight := false
	for i, c := range chunks {
		if i > 0 && (lastPadRight || c.PadLeft) {
			width++
		}
		width += c.Width
		lastPadRight = c.PadRight
	}
	return width
}

// LargestChunk returns the widest chunk's width, or 0 for an empty list.
func LargestChunk(chunks []RenderedChunk) int {
	max := 0
	for _, c := range chunks {
		if c.Width > max {
			max = c.Width
		}
	}
	return max
}

// WrapChunks splits a flat chunk list into lines that each fit within
// maxWidth. Individual chunks are never split. The wrapping heuristics
// (wrap slightly early when two chunks are visually glued together, wrap
// early once a break_after chunk has passed and the remainder won't fit)
// mirror the line-fill algorithm of the original renderer.
func WrapChunks(chunks []RenderedChunk, maxWidth int) [][]RenderedChunk {
	var lines [][]RenderedChunk
	var current []RenderedChunk

	currentLineWillWrap := MeasureChunks(chunks) > maxWidth
	lineWidth := 0
	var lastPadRight, lastBreakAfter, lastForceBreakAfter bool

	i := 0
	for idx := 0; idx < len(chunks); idx++ {
		c := chunks[idx]

		paddedWidth := c.Width
		if i > 0 && (lastPadRight || c.PadLeft) {
			paddedWidth++
		}

		wrapLength := lineWidth+paddedWidth > maxWidth
		wrapEarly := currentLineWillWrap && lastBreakAfter

		wrapSlightlyEarly := false
		if idx+1 < len(chunks) {
			next := chunks[idx+1]
			attached := !c.PadRight && !next.PadLeft
			willOverflow := lineWidth+paddedWidth+next.Width > maxWidth
			wrapSlightlyEarly = attached && willOverflow
		}

		shouldWrap := wrapLength || wrapEarly || wrapSlightlyEarly || lastForceBreakAfter

		if lineWidth > 0 && shouldWrap {
			lines = append(lines, current)
			current = nil
			lineWidth = 0
			currentLineWillWrap = MeasureChunks(chunks[idx:]) > maxWidth
			lastPadRight = false
			lastBreakAfter = false
			i = 0
		} else {
			lastPadRight = c.PadRight
			lastBreakAfter = c.BreakAfter
		}

		lastForceBreakAfter = c.ForceBreakAfter
		lineWidth += paddedWidth
		current = append(current, c)
		i++
	}

	lines = append(lines, current)
	return lines
}

// SimpleWrapChunks only breaks at ForceBreakAfter boundaries (explicit
// newlines within a message), performing no width-based wrapping.
func SimpleWrapChunks(chunks []RenderedChunk) [][]RenderedChunk {
	var lines [][]RenderedChunk
	var current []RenderedChunk
	lastForceBreakAfter := false

	for _, c := range chunks {
		if lastForceBreakAfter {
			lines = append(lines, current)
			current = nil
		}
		lastForceBreakAfter = c.ForceBreakAfter
		current = append(current, c)
	}
	lines = append(lines, current)
	return lines
}

// LeftPadChunk appends trailing spacer content so chunk is exactly
// maxWidth columns wide.
func LeftPadChunk(c RenderedChunk, maxWidth int, profile style.Profile) RenderedChunk {
	remaining := maxWidth - c.Width
	if remaining < 0 {
		return c
	}
	return MergeChunksUnpadded([]RenderedChunk{c, Spacer(remaining, profile)})
}

// RightPadChunk prepends leading spacer content so chunk is exactly
// maxWidth columns wide.
func RightPadChunk(c RenderedChunk, maxWidth int, profile style.Profile) RenderedChunk {
	remaining := maxWidth - c.Width
	if remaining < 0 {
		return c
	}
	return MergeChunksUnpadded([]RenderedChunk{Spacer(remaining, profile), c})
}

// FixedWidth returns the column width reserved for date/time/level
// chunks, which are padded to at least this width; longer content is not
// truncated.
func FixedWidth(kind chunk.Kind) (int, bool) {
	switch kind {
	case chunk.KindDate:
		return 10, true
	case chunk.KindTime:
		return 8, true
	case chunk.KindLevel:
		return 7, true
	default:
		return 0, false
	}
}

// Align pads content to width, left or right aligned.
func Align(content string, width int, alignment chunk.Alignment) string {
	pad := width - len([]rune(content))
	if pad <= 0 {
		return content
	}
	if alignment == chunk.AlignRight {
		return strings.Repeat(" ", pad) + content
	}
	return content + strings.Repeat(" ", pad)
}

// Bucketize splits chunks by their display slot.
func Bucketize(chunks []chunk.Chunk) (left, center, right []chunk.Chunk) {
	for _, c := range chunks {
		switch c.Slot {
		case chunk.SlotLeft:
			left = append(left, c)
		case chunk.SlotCenter:
			center = append(center, c)
		case chunk.SlotRight:
			right = append(right, c)
		}
	}
	return
}

// Prune drops chunks whose weight is below min, used to hide low-priority
// fields when the terminal is too narrow to show everything.
func Prune(chunks []chunk.Chunk, min chunk.Weight) []chunk.Chunk {
	var out []chunk.Chunk
	for _, c := range chunks {
		if c.Weight >= min {
			out = append(out, c)
		}
	}
	return out
}

// pruneLevel picks the minimum chunk weight to keep given the available
// width: narrower terminals prune more aggressively.
func pruneLevel(wrapWidth int, wrapEnabled bool) chunk.Weight {
	if wrapEnabled {
		switch {
		case wrapWidth < 60:
			return chunk.WeightHigh
		case wrapWidth < 80:
			return chunk.WeightMedium
		case wrapWidth < 100:
			return chunk.WeightNormal
		}
	}
	return chunk.WeightLow
}

func styleFor(profile style.Profile, c chunk.Chunk) lipgloss.Style {
	if c.Kind == chunk.KindLevel && c.Level != nil {
		return profile.ForLevel(*c.Level)
	}
	return profile.For(c.Kind)
}

// NoWrap is the sentinel passed to StyledRenderChunk/StyledRenderRegion in
// place of a wrap width, standing in for the original's Option<usize>::None.
const NoWrap = -1

// StyledRenderChunk renders one Chunk into a flat list of RenderedChunks:
// one per value (wrapped into several if the chunk has Wrap set and a
// width is given), followed by one per child, recursively. A chunk with
// children and no value of its own (e.g. a Field chunk) contributes only
// its children's renderings — the parent is never merged into one span
// here; that happens later, once a whole line has been assembled.
func StyledRenderChunk(c chunk.Chunk, profile style.Profile, wrapWidth int) []RenderedChunk {
	var out []RenderedChunk

	if c.Value != nil {
		var lines []string
		if c.Wrap && wrapWidth > 0 {
			lines = wordWrap(*c.Value, wrapWidth)
		} else {
			lines = []string{*c.Value}
		}

		for _, line := range lines {
			content := line
			width := lipgloss.Width(line)
			if fw, fixed := FixedWidth(c.Kind); fixed {
				content = Align(line, fw, c.Alignment)
				width = fw
			}

			styled := content
			if styled != "" {
				styled = styleFor(profile, c).Render(styled)
			}

			out = append(out, RenderedChunk{
				Content:         styled,
				Width:           width,
				PadLeft:         c.PadLeft,
				PadRight:        c.PadRight,
				BreakAfter:      c.BreakAfter,
				ForceBreakAfter: c.ForceBreakAfter,
				Kind:            c.Kind,
				Weight:          c.Weight,
				Alignment:       c.Alignment,
			})
		}
	}

	for _, child := range c.Children {
		out = append(out, StyledRenderChunk(child, profile, wrapWidth)...)
	}

	return out
}

// wordWrap greedily wraps s on spaces to at most width columns per line,
// never splitting a single word.
func wordWrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{s}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0

	for _, w := range words {
		wWidth := lipgloss.Width(w)
		if curWidth > 0 && curWidth+1+wWidth > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(w)
		curWidth += wWidth
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// StyledRenderRegion renders a bucket of chunks (one display slot) into
// one RenderedChunk per output line. wrapWidth == NoWrap disables
// width-based wrapping (only ForceBreakAfter splits lines).
func StyledRenderRegion(chunks []chunk.Chunk, profile style.Profile, wrapWidth int) []RenderedChunk {
	var rendered []RenderedChunk
	for _, c := range chunks {
		rendered = append(rendered, StyledRenderChunk(c, profile, wrapWidth)...)
	}

	var wrapped [][]RenderedChunk
	if wrapWidth != NoWrap {
		wrapped = WrapChunks(rendered, wrapWidth)
	} else {
		wrapped = SimpleWrapChunks(rendered)
	}

	lines := make([]RenderedChunk, 0, len(wrapped))
	for _, line := range wrapped {
		lines = append(lines, MergeChunks(line, profile))
	}
	return lines
}

// StyledRender composes the full three-column (left/center/right) output
// for one message's chunks, pruning low-weight fields as wrapWidth shrinks
// and wrapping the center (message text) column to whatever room is left
// once the left and right columns have claimed their space. wrapWidth ==
// NoWrap disables wrapping and the right column entirely.
func StyledRender(chunks []chunk.Chunk, profile style.Profile, wrapWidth int) []string {
	minWeight := pruneLevel(wrapWidth, wrapWidth != NoWrap)

	left, center, right := Bucketize(chunks)
	if wrapWidth == NoWrap {
		right = nil
	}
	rightIsEmpty := len(right) == 0

	leftRendered := StyledRenderRegion(Prune(left, minWeight), profile, NoWrap)
	leftWidth := LargestChunk(leftRendered)

	rightRendered := StyledRenderRegion(Prune(right, minWeight), profile, NoWrap)
	rightWidth := LargestChunk(rightRendered)

	centerWrap := NoWrap
	centerWidth := 0
	if wrapWidth != NoWrap {
		if rightIsEmpty || leftWidth+rightWidth+2 > wrapWidth {
			centerWidth = wrapWidth - leftWidth - 1
		} else {
			centerWidth = wrapWidth - leftWidth - rightWidth - 2
		}
		if centerWidth < 0 {
			centerWidth = 0
		}
		centerWrap = centerWidth
	}

	centerRendered := StyledRenderRegion(Prune(center, minWeight), profile, centerWrap)

	leftSpacer := Spacer(leftWidth, profile)
	centerSpacer := Spacer(centerWidth, profile)
	rightSpacer := Spacer(rightWidth, profile)

	maxHeight := len(leftRendered)
	if len(centerRendered) > maxHeight {
		maxHeight = len(centerRendered)
	}
	if len(rightRendered) > maxHeight {
		maxHeight = len(rightRendered)
	}

	lines := make([]string, 0, maxHeight)
	for i := 0; i < maxHeight; i++ {
		leftChunk := leftSpacer
		if i < len(leftRendered) {
			leftChunk = leftRendered[i]
		}

		centerChunk := centerSpacer
		if i < len(centerRendered) {
			centerChunk = centerRendered[i]
		}
		centerChunk = LeftPadChunk(centerChunk, centerWidth, profile)

		rightChunk := rightSpacer
		if i < len(rightRendered) {
			rightChunk = rightRendered[i]
		}
		rightChunk = RightPadChunk(rightChunk, rightWidth, profile)

		merged := MergeChunks([]RenderedChunk{leftChunk, centerChunk, rightChunk}, profile)
		lines = append(lines, merged.Content)
	}

	return lines
}
