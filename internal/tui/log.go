package tui

import (
	"github.com/control-theory/wd/internal/chunk"
	"github.com/control-theory/wd/internal/render"
	"github.com/control-theory/wd/internal/style"
)

// moveSelection shifts the selection by amount entries, where positive
// moves toward earlier messages and negative toward the latest, mirroring
// log.rs's `actions::move_selection`. A nil selection means the view is
// anchored to the newest entry; moving further down (negative amount) from
// there is a no-op, same as the original.
func (m *DashboardModel) moveSelection(amount int) {
	if amount == 0 || len(m.filteredEntries) == 0 {
		return
	}

	if m.selection == nil {
		if amount < 0 {
			return
		}
		idx := len(m.filteredEntries) - amount
		if idx < 0 {
			idx = 0
		}
		m.selection = &Selection{RelIndex: idx}
		return
	}

	newIdx := m.selection.RelIndex - amount
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(m.filteredEntries) {
		m.selection = nil
		return
	}
	m.selection.RelIndex = newIdx
}

func (m *DashboardModel) moveSelectionToTop() {
	if len(m.filteredEntries) == 0 {
		return
	}
	m.selection = &Selection{RelIndex: 0}
}

func (m *DashboardModel) clearSelection() {
	m.selection = nil
}

// pageEntries counts how many entries, starting just past anchorIdx in
// direction dir (-1 toward earlier entries, +1 toward later ones), fit
// within budget measured lines - mirroring log.rs's page_up/page_down:
// "summing measured heights of candidate entries until adding one more
// would overflow height". budget is logHeight-1 rather than logHeight so
// one line of the current page stays visible as overlap context after
// the jump.
func (m *DashboardModel) pageEntries(anchorIdx, dir, budget int) int {
	height := 0
	idx := anchorIdx
	moved := 0
	for {
		next := idx + dir
		if next < 0 || next >= len(m.filteredEntries) {
			break
		}
		h := len(m.renderEntryLines(next))
		if moved > 0 && height+h > budget {
			break
		}
		height += h
		idx = next
		moved++
	}
	return moved
}

func (m *DashboardModel) anchorIndex() int {
	if m.selection != nil {
		return m.selection.RelIndex
	}
	return len(m.filteredEntries) - 1
}

func (m *DashboardModel) pageUp(logHeight int) {
	if len(m.filteredEntries) == 0 {
		return
	}
	budget := logHeight - 1
	if budget < 1 {
		budget = 1
	}
	moved := m.pageEntries(m.anchorIndex(), -1, budget)
	if moved < 1 {
		moved = 1
	}
	m.moveSelection(moved)
}

func (m *DashboardModel) pageDown(logHeight int) {
	if len(m.filteredEntries) == 0 || m.selection == nil {
		return
	}
	budget := logHeight - 1
	if budget < 1 {
		budget = 1
	}
	moved := m.pageEntries(m.anchorIndex(), 1, budget)
	if moved < 1 {
		moved = 1
	}
	m.moveSelection(-moved)
}

// profileForEntry picks the style profile for a row: selected takes
// priority, then the live highlight filter (the user's in-progress filter
// or search text), then the normal profile. Mirrors log.rs's
// `profile_for_message`.
func (m *DashboardModel) profileForEntry(e render.MessageEntry, selected bool) style.Profile {
	if selected {
		return m.config.Selected
	}
	if m.highlightFilter != nil && m.highlightFilter.Pass(e.Message) {
		return m.config.Highlighted
	}
	return m.config.Normal
}

func (m *DashboardModel) renderEntryLines(filteredIdx int) []string {
	entry := m.entries[m.filteredEntries[filteredIdx]]
	selected := m.selection != nil && m.selection.RelIndex == filteredIdx
	profile := m.profileForEntry(entry, selected)
	chunks := chunk.Classify(entry.Message)

	wrapWidth := m.width
	if wrapWidth <= 0 {
		wrapWidth = render.NoWrap
	}
	return render.StyledRender(chunks, profile, wrapWidth)
}

// renderLog composes the scrollable log viewport: it anchors on the
// selected entry (or the newest, if nothing is selected) and fills
// upward/downward from there until logHeight rows are used, mirroring the
// anchoring behavior of log.rs's render_int without its incremental
// cursor-position bookkeeping - bubbletea recomputes this set fresh every
// frame, so there's no need to track per-row anchors across redraws.
func (m *DashboardModel) renderLog(logHeight int) []string {
	if len(m.filteredEntries) == 0 || logHeight <= 0 {
		m.rangeMin, m.rangeMax = 0, 0
		return nil
	}

	anchorIdx := len(m.filteredEntries) - 1
	tailing := true
	if m.selection != nil {
		anchorIdx = m.selection.RelIndex
		tailing = false
	}

	m.rangeMin, m.rangeMax = anchorIdx, anchorIdx

	lines := m.renderEntryLines(anchorIdx)

	for i := anchorIdx + 1; i < len(m.filteredEntries) && len(lines) < logHeight; i++ {
		lines = append(lines, m.renderEntryLines(i)...)
		m.rangeMax = i
	}

	var upLines []string
	for i := anchorIdx - 1; i >= 0 && len(upLines)+len(lines) < logHeight; i-- {
		upLines = append(m.renderEntryLines(i), upLines...)
		m.rangeMin = i
	}
	lines = append(upLines, lines...)

	if len(lines) > logHeight {
		if tailing {
			lines = lines[len(lines)-logHeight:]
		} else {
			lines = lines[:logHeight]
		}
	}

	return lines
}
