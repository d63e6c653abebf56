package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/control-theory/wd/internal/style"
)

// filterBarRight builds the mode/invert indicator shown on the right of
// the filter bar, narrowing its wording on small terminals, mirroring
// filter_bar.rs's `format_right`.
func (m *DashboardModel) filterBarRight() string {
	inv := "no"
	if m.filterInverted {
		inv = "yes"
	}
	if m.width < 80 {
		if m.filterInverted {
			inv = "y"
		} else {
			inv = "n"
		}
		return fmt.Sprintf("| m: %s (C-r), i: %s (C-e)", m.filterMode.Name(), inv)
	}
	return fmt.Sprintf("| mode: %s (C-r), invert: %s (C-e)", m.filterMode.Name(), inv)
}

func (m *DashboardModel) renderFilterBar() string {
	base := m.config.Selected.Base
	if input := m.filterInput.Value(); input != "" {
		if _, err := m.filterMode.Parse(input, m.filterInverted); err != nil {
			base = style.StylerError(style.ProfileSelected)(m.config)
		}
	}
	right := m.filterBarRight()

	left := m.filterInput.View()
	width := m.width
	if width <= 0 {
		return base.Render(left)
	}

	spacer := width - len(left) - len(right)
	if spacer < 1 {
		spacer = 1
	}
	return base.Render(left + strings.Repeat(" ", spacer) + right)
}

// updateFilterHighlight recompiles the live highlight filter from the
// current (possibly invalid) filter bar input, mirroring filter_bar.rs's
// `actions::update_highlight`.
func (m *DashboardModel) updateFilterHighlight() {
	input := m.filterInput.Value()
	if input == "" {
		m.highlightFilter = nil
		return
	}
	f, err := m.filterMode.Parse(input, m.filterInverted)
	if err != nil {
		m.highlightFilter = nil
		return
	}
	m.highlightFilter = f
}

func (m *DashboardModel) handleFilterBarKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.highlightFilter = nil
		m.bar = barStatus
		return m, nil

	case "enter":
		input := m.filterInput.Value()
		if input == "" {
			m.bar = barStatus
			m.highlightFilter = nil
			return m, nil
		}
		f, err := m.filterMode.Parse(input, m.filterInverted)
		if err != nil {
			m.addInternal("invalid filter: " + err.Error())
			return m, nil
		}
		m.bar = barStatus
		m.highlightFilter = nil
		m.pushFilter(f)
		return m, nil

	case "ctrl+r":
		m.filterMode = m.filterMode.Next()
		m.updateFilterHighlight()
		return m, nil

	case "ctrl+e":
		m.filterInverted = !m.filterInverted
		m.updateFilterHighlight()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(key)
	m.updateFilterHighlight()
	return m, cmd
}
