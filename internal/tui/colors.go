package tui

import "github.com/charmbracelet/lipgloss"

// Shared palette for chrome that isn't driven by a style.Profile: the k8s
// filter modal, selection highlighting, and search-match highlighting.
var (
	ColorBlue   = lipgloss.Color("4")
	ColorGray   = lipgloss.Color("8")
	ColorGreen  = lipgloss.Color("2")
	ColorWhite  = lipgloss.Color("15")
	ColorYellow = lipgloss.Color("3")
	ColorBlack  = lipgloss.Color("0")
)
