// Package tui implements wd's interactive renderer: a full-screen
// bubbletea application presenting the tailed log as a scrollable,
// filterable, searchable list, with a Kubernetes namespace/pod picker
// layered on top when the Kubernetes reader is active.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/control-theory/wd/internal/clip"
	"github.com/control-theory/wd/internal/filter"
	"github.com/control-theory/wd/internal/k8s"
	"github.com/control-theory/wd/internal/render"
	"github.com/control-theory/wd/internal/style"
)

// barMode selects which bar occupies the bottom row: the default status
// bar, the filter-entry bar, or the incremental search bar. Exactly one
// original_source/src/renderer/interactive/bar.rs `BarType`.
type barMode int

const (
	barStatus barMode = iota
	barFilter
	barSearch
)

// Selection tracks which filtered entry is highlighted. A nil selection
// means the view is anchored to the newest entry ("tailing").
type Selection struct {
	RelIndex int
}

// DashboardModel is the root bubbletea model, standing in for
// original_source's `RenderState` + its mutable `Rc`-shared entry lists.
// Unlike the original's copy-on-write RcState (needed because crossterm
// writes incrementally to specific cursor positions), bubbletea recomputes
// View() from scratch every frame, so the anchor/height bookkeeping the
// original needed to keep incremental writes aligned isn't necessary here.
type DashboardModel struct {
	width, height int

	config style.Config

	entries         []render.MessageEntry
	filters         filter.Stack
	filteredEntries []int

	highlightFilter filter.Filter
	selection       *Selection
	rangeMin        int
	rangeMax        int
	eof             bool

	showColumns bool
	searchTerm  string

	bar barMode

	filterMode     filter.Mode
	filterInverted bool
	filterInput    textinput.Model

	searchMode     filter.Mode
	searchInverted bool
	searchFilter   filter.Filter
	searchInput    textinput.Model

	incoming <-chan render.Entry

	k8sModalOpen      bool
	k8sActiveView     string
	k8sFilterSelected int
	k8sScrollOffset   int
	k8sNamespaces     map[string]bool
	k8sPods           map[string]bool
	k8sSource         *k8s.KubernetesLogSource
}

// New builds the dashboard model. incoming is drained for the lifetime of
// the program; src may be nil when the Kubernetes reader isn't active, in
// which case the filter modal falls back to scanning entries' k8s.*
// metadata instead of querying the API directly.
func New(cfg style.Config, incoming <-chan render.Entry, src *k8s.KubernetesLogSource) *DashboardModel {
	return &DashboardModel{
		config:        cfg,
		incoming:      incoming,
		showColumns:   true,
		filterMode:    filter.ModeRegex,
		searchMode:    filter.ModeRegex,
		k8sActiveView: "namespaces",
		k8sNamespaces: make(map[string]bool),
		k8sPods:       make(map[string]bool),
		k8sSource:     src,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return waitForEntry(m.incoming)
}

type entryMsg struct{ entry render.Entry }

func waitForEntry(ch <-chan render.Entry) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return entryMsg{entry: render.EofEntry{Source: "closed"}}
		}
		return entryMsg{entry: e}
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case entryMsg:
		switch e := msg.entry.(type) {
		case render.MessageEntry:
			m.addEntry(e)
		case render.EofEntry:
			m.eof = true
		}
		return m, waitForEntry(m.incoming)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *DashboardModel) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.k8sModalOpen {
		return m.handleK8sModalKey(key)
	}

	if cmd, handled := m.handleGlobalKey(key); handled {
		return m, cmd
	}

	switch m.bar {
	case barFilter:
		return m.handleFilterBarKey(key)
	case barSearch:
		return m.handleSearchBarKey(key)
	default:
		return m.handleStatusBarKey(key)
	}
}

// handleGlobalKey handles bindings active in every bar mode: scrolling and
// the hard ctrl-q exit, mirroring bar.rs's `input_global`.
func (m *DashboardModel) handleGlobalKey(key tea.KeyMsg) (tea.Cmd, bool) {
	logHeight := m.height - 1
	if logHeight < 1 {
		logHeight = 1
	}

	switch key.String() {
	case "ctrl+q":
		return tea.Quit, true
	case "up":
		m.moveSelection(1)
		return nil, true
	case "down":
		m.moveSelection(-1)
		return nil, true
	case "home":
		m.moveSelectionToTop()
		return nil, true
	case "end":
		m.clearSelection()
		return nil, true
	case "pgup":
		m.pageUp(logHeight)
		return nil, true
	case "pgdown":
		m.pageDown(logHeight)
		return nil, true
	}

	return nil, false
}

func (m *DashboardModel) View() string {
	if m.k8sModalOpen {
		return m.renderK8sFilterModal()
	}

	logHeight := m.height - 1
	if logHeight < 1 {
		logHeight = 1
	}

	lines := m.renderLog(logHeight)
	for len(lines) < logHeight {
		lines = append(lines, "")
	}

	var barLine string
	switch m.bar {
	case barFilter:
		barLine = m.renderFilterBar()
	case barSearch:
		barLine = m.renderSearchBar()
	default:
		barLine = m.renderStatusBar()
	}

	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	out += barLine

	return out
}

func (m *DashboardModel) addEntry(e render.MessageEntry) {
	m.entries = append(m.entries, e)
	if m.filters.Pass(e.Message) {
		m.filteredEntries = append(m.filteredEntries, len(m.entries)-1)
	}
}

func (m *DashboardModel) rebuildFilteredEntries() {
	m.filteredEntries = m.filteredEntries[:0]
	for i, e := range m.entries {
		if m.filters.Pass(e.Message) {
			m.filteredEntries = append(m.filteredEntries, i)
		}
	}
}

func (m *DashboardModel) pushFilter(f filter.Filter) {
	m.filters.Push(f)
	m.selection = nil
	m.rebuildFilteredEntries()
}

func (m *DashboardModel) popFilter() {
	m.filters.Pop()
	m.selection = nil
	m.rebuildFilteredEntries()
}

func (m *DashboardModel) addInternal(text string) {
	m.addEntry(render.NewInternalEntry(text))
}

// plainLines renders a copied entry unwrapped: clipboard contents are
// pasted elsewhere, so there is no terminal width to wrap against.
func plainLines(e render.MessageEntry) []string {
	return render.PlainLines(e, render.NoWrap)
}

func (m *DashboardModel) copySelection() {
	if !clip.Enabled() {
		return
	}
	if m.selection == nil {
		m.addInternal("no message is selected")
		return
	}

	entry := m.entries[m.filteredEntries[m.selection.RelIndex]]
	lines := plainLines(entry)
	text := ""
	for i, l := range lines {
		if i > 0 {
			text += "\n"
		}
		text += l
	}

	if err := clip.Clip(text); err != nil {
		m.addInternal("error writing to clipboard: " + err.Error())
		return
	}
	m.addInternal("copied message to clipboard")
}

func (m *DashboardModel) copyView() {
	if !clip.Enabled() {
		return
	}

	lines := 0
	text := ""
	for i := m.rangeMin; i <= m.rangeMax && i < len(m.filteredEntries); i++ {
		entry := m.entries[m.filteredEntries[i]]
		for _, l := range plainLines(entry) {
			text += l + "\n"
			lines++
		}
	}

	if err := clip.Clip(text); err != nil {
		m.addInternal("error writing to clipboard: " + err.Error())
		return
	}
	m.addInternal("copied lines to clipboard")
}

// Run builds and executes the interactive program, blocking until the
// user quits. A closed incoming channel does not end it; the viewer keeps
// showing what it has received.
func Run(cfg style.Config, incoming <-chan render.Entry, src *k8s.KubernetesLogSource) error {
	m := New(cfg, incoming, src)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
