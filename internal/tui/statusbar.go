package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/control-theory/wd/internal/clip"
)

// newTextInput builds a focused single-line input for the filter/search
// bars. It applies no style itself; renderFilterBar and renderSearchBar
// paint the whole bar with the selected-row profile's base style, or its
// error style while the input does not parse.
func newTextInput(prompt string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Focus()
	return ti
}

// statusLeft builds the help text shown on the left of the status bar,
// mirroring status_bar.rs's `format_left`.
func (m *DashboardModel) statusLeft() string {
	var b strings.Builder
	b.WriteString("q: quit | f: filter | /: find")

	if clip.Enabled() {
		if m.selection != nil {
			b.WriteString(" | c: copy msg")
		}
		b.WriteString(" | C: copy screen")
	}

	if m.filters.Len() > 0 {
		b.WriteString(" | p: pop filter")
	}

	if m.k8sSource != nil {
		b.WriteString(" | ctrl+k: k8s filter")
	}

	return b.String()
}

// statusRight builds the entry-count/filter/eof summary on the right,
// mirroring status_bar.rs's `format_right`.
func (m *DashboardModel) statusRight() string {
	eof := ""
	if m.eof {
		eof = " (eof)"
	}

	filters := ""
	if n := m.filters.Len(); n > 0 {
		plural := "s"
		if n == 1 {
			plural = ""
		}
		filters = fmt.Sprintf(" (%d filter%s, %d total)", n, plural, len(m.entries))
	}

	count := fmt.Sprintf("%d", len(m.filteredEntries))
	if m.selection != nil {
		count = fmt.Sprintf("%d / %d", m.selection.RelIndex+1, len(m.filteredEntries))
	}

	return count + filters + eof
}

func (m *DashboardModel) renderStatusBar() string {
	left := m.statusLeft()
	right := m.statusRight()

	base := m.config.Selected.Base
	width := m.width
	if width <= 0 {
		return base.Render(left)
	}

	spacer := width - len(left) - len(right)
	if spacer >= 0 {
		return base.Render(left + strings.Repeat(" ", spacer) + right)
	}
	if width-len(right) >= 0 {
		return base.Render(strings.Repeat(" ", width-len(right)) + right)
	}
	return base.Render(strings.Repeat(" ", width))
}

func (m *DashboardModel) handleStatusBarKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		if m.selection != nil {
			m.clearSelection()
			return m, nil
		}
		return m, tea.Quit
	case "q":
		return m, tea.Quit
	case "f", "|":
		m.bar = barFilter
		m.filterInput = newTextInput("filter > ")
		return m, nil
	case "/":
		m.bar = barSearch
		m.searchInput = newTextInput("find > ")
		return m, nil
	case "p":
		if m.filters.Len() == 0 {
			m.addInternal("no filters to remove")
		} else {
			m.popFilter()
		}
		return m, nil
	case "c", "ctrl+c":
		if m.selection != nil {
			m.copySelection()
			return m, nil
		}
		if key.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case "C":
		m.copyView()
		return m, nil
	case "ctrl+f":
		m.bar = barSearch
		m.searchInput = newTextInput("find > ")
		return m, nil
	case "ctrl+k":
		if m.k8sSource != nil {
			m.openK8sModal()
		}
		return m, nil
	}

	return m, nil
}
