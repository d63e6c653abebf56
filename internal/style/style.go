// Package style maps chunk kinds to terminal styles, with a default
// palette and optional base16-file-driven palette.
package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/control-theory/wd/internal/chunk"
	"github.com/control-theory/wd/internal/message"
)

// levelKey packs a chunk.Kind and an optional message.Level into a single
// map key, standing in for the original's Chunk(LogLevel) enum variant.
type levelKey struct {
	kind  chunk.Kind
	level message.Level
}

// Profile maps chunk kinds to a lipgloss.Style layered on a shared base
// style. Opaque profiles (e.g. the selected-row profile) paint a
// background over the whole line; non-opaque ones only color foreground
// text, letting the terminal's own background show through.
type Profile struct {
	Base   lipgloss.Style
	opaque bool
	styles map[chunk.Kind]lipgloss.Style
	levels map[levelKey]lipgloss.Style
}

// IsOpaque reports whether this profile paints a background.
func (p Profile) IsOpaque() bool { return p.opaque }

// For returns the style for a plain (non-level) chunk kind, falling back
// to the profile's base style.
func (p Profile) For(kind chunk.Kind) lipgloss.Style {
	if s, ok := p.styles[kind]; ok {
		return s
	}
	return p.Base
}

// ForLevel returns the style for a Level chunk of the given severity.
func (p Profile) ForLevel(level message.Level) lipgloss.Style {
	if s, ok := p.levels[levelKey{chunk.KindLevel, level}]; ok {
		return s
	}
	return p.Base
}

// Plain is an always-unstyled profile, used by the plain renderer (and
// the interactive copy actions) so they can reuse the same chunk-merging
// code as the styled renderer without emitting any ANSI codes. The raw
// renderer does not use it; it writes each message's raw line.
func Plain() Profile {
	return Profile{
		Base:   lipgloss.NewStyle(),
		styles: map[chunk.Kind]lipgloss.Style{},
		levels: map[levelKey]lipgloss.Style{},
	}
}

func defaultLevelStyles(base lipgloss.Style, colors map[message.Level]lipgloss.Style) map[levelKey]lipgloss.Style {
	out := make(map[levelKey]lipgloss.Style, len(colors))
	for level, s := range colors {
		out[levelKey{chunk.KindLevel, level}] = s
	}
	return out
}

// DefaultNormal is the unselected-row profile.
func DefaultNormal() Profile {
	base := lipgloss.NewStyle()
	dim := lipgloss.Color("15")

	return Profile{
		Base:   base,
		opaque: false,
		styles: map[chunk.Kind]lipgloss.Style{
			chunk.KindDate:     base.Foreground(dim).Faint(true),
			chunk.KindTime:     base.Foreground(dim).Faint(true),
			chunk.KindFieldKey: base.Foreground(lipgloss.Color("6")).Faint(true),
			chunk.KindContext:  base.Foreground(lipgloss.Color("0")).Bold(true),
		},
		levels: defaultLevelStyles(base, map[message.Level]lipgloss.Style{
			message.LevelDebug:   base.Foreground(lipgloss.Color("6")),
			message.LevelInfo:    base.Foreground(lipgloss.Color("2")),
			message.LevelWarning: base.Foreground(lipgloss.Color("3")),
			message.LevelError:   base.Foreground(lipgloss.Color("1")),
			message.LevelFatal:   base.Foreground(lipgloss.Color("1")).Bold(true),
			message.LevelPlain:   base,
			message.LevelInt:     base.Foreground(lipgloss.Color("5")).Bold(true),
		}),
	}
}

// DefaultSelected is the profile applied to the currently selected row.
func DefaultSelected() Profile {
	base := lipgloss.NewStyle().Background(lipgloss.Color("15")).Foreground(lipgloss.Color("0"))

	return Profile{
		Base:   base,
		opaque: true,
		styles: map[chunk.Kind]lipgloss.Style{
			chunk.KindFieldKey: base.Foreground(lipgloss.Color("4")).Faint(true),
		},
		levels: defaultLevelStyles(base, map[message.Level]lipgloss.Style{
			message.LevelDebug:   base.Foreground(lipgloss.Color("4")),
			message.LevelInfo:    base.Foreground(lipgloss.Color("2")).Faint(true),
			message.LevelWarning: base.Foreground(lipgloss.Color("5")).Faint(true),
			message.LevelError:   base.Foreground(lipgloss.Color("1")).Faint(true),
			message.LevelFatal:   base.Foreground(lipgloss.Color("1")).Faint(true).Bold(true),
			message.LevelInt:     base.Foreground(lipgloss.Color("5")).Bold(true),
		}),
	}
}

// DefaultHighlighted is the profile applied to search-match rows.
func DefaultHighlighted() Profile {
	base := lipgloss.NewStyle().Bold(true)

	return Profile{
		Base:   base,
		opaque: false,
		styles: map[chunk.Kind]lipgloss.Style{
			chunk.KindDate:     base.Foreground(lipgloss.Color("15")).Faint(true),
			chunk.KindTime:     base.Foreground(lipgloss.Color("15")).Faint(true),
			chunk.KindFieldKey: base.Foreground(lipgloss.Color("6")).Faint(true),
			chunk.KindContext:  base.Foreground(lipgloss.Color("0")),
		},
		levels: defaultLevelStyles(base, map[message.Level]lipgloss.Style{
			message.LevelDebug:   base.Foreground(lipgloss.Color("6")),
			message.LevelInfo:    base.Foreground(lipgloss.Color("2")),
			message.LevelWarning: base.Foreground(lipgloss.Color("3")),
			message.LevelError:   base.Foreground(lipgloss.Color("1")),
			message.LevelFatal:   base.Foreground(lipgloss.Color("1")),
			message.LevelPlain:   base,
			message.LevelInt:     base.Foreground(lipgloss.Color("5")),
		}),
	}
}

// ProfileKind selects which of a Config's three profiles to use.
type ProfileKind int

const (
	ProfileNormal ProfileKind = iota
	ProfileSelected
	ProfileHighlighted
)

// Config bundles the three profiles an interactive renderer needs:
// normal rows, the selected row, and search-highlighted rows.
type Config struct {
	Normal      Profile
	Selected    Profile
	Highlighted Profile
}

// Default returns the built-in ANSI-16 palette.
func Default() Config {
	return Config{
		Normal:      DefaultNormal(),
		Selected:    DefaultSelected(),
		Highlighted: DefaultHighlighted(),
	}
}

// Get returns one of the three profiles by kind.
func (c Config) Get(kind ProfileKind) Profile {
	switch kind {
	case ProfileSelected:
		return c.Selected
	case ProfileHighlighted:
		return c.Highlighted
	default:
		return c.Normal
	}
}

// Styler picks a single lipgloss.Style out of a Config, used by the
// filter/search bars to switch between a normal and an error appearance.
type Styler func(c Config) lipgloss.Style

// StylerBase returns the base style of the named profile.
func StylerBase(kind ProfileKind) Styler {
	return func(c Config) lipgloss.Style {
		return c.Get(kind).Base
	}
}

// StylerError returns the Error-level style of the named profile, used to
// flag invalid filter/search input.
func StylerError(kind ProfileKind) Styler {
	return func(c Config) lipgloss.Style {
		return c.Get(kind).ForLevel(message.LevelError)
	}
}
