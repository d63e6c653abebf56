package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/control-theory/wd/internal/style"
)

func (m *DashboardModel) searchBarRight() string {
	inv := "no"
	if m.searchInverted {
		inv = "yes"
	}
	if m.width < 80 {
		if m.searchInverted {
			inv = "y"
		} else {
			inv = "n"
		}
		return fmt.Sprintf("| m: %s (C-r), i: %s (C-e)", m.searchMode.Name(), inv)
	}
	return fmt.Sprintf("| mode: %s (C-r), invert: %s (C-e)", m.searchMode.Name(), inv)
}

func (m *DashboardModel) renderSearchBar() string {
	base := m.config.Selected.Base
	if input := m.searchInput.Value(); input != "" {
		if _, err := m.searchMode.Parse(input, m.searchInverted); err != nil {
			base = style.StylerError(style.ProfileSelected)(m.config)
		}
	}
	status := m.statusRight()
	right := m.searchBarRight()
	left := m.searchInput.View()

	width := m.width
	if width <= 0 {
		return base.Render(left)
	}

	line := left
	if pad := width - len(left) - len(status) - len(right) - 2; pad > 0 {
		line += strings.Repeat(" ", pad)
	} else {
		line += " "
	}
	line += status + " " + right

	return base.Render(line)
}

// updateSearchFilter recompiles the search filter from the current input,
// mirroring search_bar.rs's `actions::update_filter`.
func (m *DashboardModel) updateSearchFilter() {
	input := m.searchInput.Value()
	if input == "" {
		m.searchFilter = nil
		return
	}
	f, err := m.searchMode.Parse(input, m.searchInverted)
	if err != nil {
		m.searchFilter = nil
		return
	}
	m.searchFilter = f
}

func (m *DashboardModel) updateSearchHighlight() {
	m.highlightFilter = m.searchFilter
}

// nextMatch moves the selection to the next entry (moving toward earlier
// messages) that passes the search filter. If soft, the currently
// selected entry counts as a match; otherwise the search always advances
// past it. Mirrors search_bar.rs's `actions::next_match`.
func (m *DashboardModel) nextMatch(soft bool) {
	if m.searchFilter == nil || len(m.filteredEntries) == 0 {
		return
	}

	start := len(m.filteredEntries) - 1
	if m.selection != nil {
		start = m.selection.RelIndex
		if !soft {
			start--
		}
	}

	for i := start; i >= 0; i-- {
		if m.searchFilter.Pass(m.entries[m.filteredEntries[i]].Message) {
			m.selection = &Selection{RelIndex: i}
			return
		}
	}
}

// prevMatch moves the selection to the next entry toward the latest
// message that passes the search filter.
func (m *DashboardModel) prevMatch() {
	if m.searchFilter == nil || len(m.filteredEntries) == 0 {
		return
	}

	start := 0
	if m.selection != nil {
		start = m.selection.RelIndex + 1
	}

	for i := start; i < len(m.filteredEntries); i++ {
		if m.searchFilter.Pass(m.entries[m.filteredEntries[i]].Message) {
			m.selection = &Selection{RelIndex: i}
			return
		}
	}
}

func (m *DashboardModel) handleSearchBarKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.updateSearchFilter()
		m.updateSearchHighlight()
		m.bar = barStatus
		return m, nil

	case "enter":
		m.nextMatch(false)
		return m, nil

	case "ctrl+p":
		m.prevMatch()
		return m, nil

	case "ctrl+n":
		m.nextMatch(false)
		return m, nil

	case "ctrl+r":
		m.searchMode = m.searchMode.Next()
		m.updateSearchFilter()
		m.nextMatch(true)
		m.updateSearchHighlight()
		return m, nil

	case "ctrl+e":
		m.searchInverted = !m.searchInverted
		m.updateSearchFilter()
		m.nextMatch(true)
		m.updateSearchHighlight()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(key)
	m.updateSearchFilter()
	m.nextMatch(true)
	m.updateSearchHighlight()
	return m, cmd
}
