package style

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/control-theory/wd/internal/chunk"
	"github.com/control-theory/wd/internal/message"
)

// Base16 is a base16 (https://github.com/chriskempson/base16) color
// scheme, loaded from a YAML file with base00..base0F hex color keys.
type Base16 struct {
	Base00 string `yaml:"base00"`
	Base01 string `yaml:"base01"`
	Base02 string `yaml:"base02"`
	Base03 string `yaml:"base03"`
	Base04 string `yaml:"base04"`
	Base05 string `yaml:"base05"`
	Base06 string `yaml:"base06"`
	Base07 string `yaml:"base07"`
	Base08 string `yaml:"base08"`
	Base09 string `yaml:"base09"`
	Base0A string `yaml:"base0A"`
	Base0B string `yaml:"base0B"`
	Base0C string `yaml:"base0C"`
	Base0D string `yaml:"base0D"`
	Base0E string `yaml:"base0E"`
	Base0F string `yaml:"base0F"`
}

var hexColorRE = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

func (b Base16) color(hex string) (lipgloss.Color, error) {
	if !hexColorRE.MatchString(hex) {
		return "", fmt.Errorf("invalid hex color %q", hex)
	}
	return lipgloss.Color("#" + strings.TrimPrefix(hex, "#")), nil
}

func (b Base16) chunkStyles(base lipgloss.Style) (map[chunk.Kind]lipgloss.Style, map[levelKey]lipgloss.Style, error) {
	colorOf := func(hex string) lipgloss.Color {
		c, _ := b.color(hex)
		return c
	}

	styles := map[chunk.Kind]lipgloss.Style{
		chunk.KindDate:     base.Foreground(colorOf(b.Base03)),
		chunk.KindTime:     base.Foreground(colorOf(b.Base03)),
		chunk.KindFieldKey: base.Foreground(colorOf(b.Base0C)),
		chunk.KindContext:  base.Foreground(colorOf(b.Base03)),
	}

	levels := map[levelKey]lipgloss.Style{
		{chunk.KindLevel, message.LevelDebug}:   base.Foreground(colorOf(b.Base0C)),
		{chunk.KindLevel, message.LevelInfo}:    base.Foreground(colorOf(b.Base0B)),
		{chunk.KindLevel, message.LevelWarning}: base.Foreground(colorOf(b.Base0A)),
		{chunk.KindLevel, message.LevelError}:   base.Foreground(colorOf(b.Base09)),
		{chunk.KindLevel, message.LevelFatal}:   base.Foreground(colorOf(b.Base08)),
		{chunk.KindLevel, message.LevelPlain}:   base,
		{chunk.KindLevel, message.LevelInt}:     base.Foreground(colorOf(b.Base0F)),
	}

	return styles, levels, nil
}

// ToProfileNormal builds the unselected-row profile from this scheme.
func (b Base16) ToProfileNormal() (Profile, error) {
	base := lipgloss.NewStyle().Foreground(mustColor(b, b.Base05))
	styles, levels, err := b.chunkStyles(base)
	return Profile{Base: base, opaque: false, styles: styles, levels: levels}, err
}

// ToProfileSelected builds the selected-row profile from this scheme.
func (b Base16) ToProfileSelected() (Profile, error) {
	base := lipgloss.NewStyle().Foreground(mustColor(b, b.Base05)).Background(mustColor(b, b.Base02))
	styles, levels, err := b.chunkStyles(base)
	return Profile{Base: base, opaque: true, styles: styles, levels: levels}, err
}

// ToProfileHighlighted builds the search-highlight profile from this scheme.
func (b Base16) ToProfileHighlighted() (Profile, error) {
	base := lipgloss.NewStyle().Foreground(mustColor(b, b.Base06)).Bold(true)
	styles, levels, err := b.chunkStyles(base)
	return Profile{Base: base, opaque: false, styles: styles, levels: levels}, err
}

func mustColor(b Base16, hex string) lipgloss.Color {
	c, _ := b.color(hex)
	return c
}

// FromBase16 builds all three profiles from one scheme.
func FromBase16(b Base16) (Config, error) {
	normal, err := b.ToProfileNormal()
	if err != nil {
		return Config{}, err
	}
	selected, err := b.ToProfileSelected()
	if err != nil {
		return Config{}, err
	}
	highlighted, err := b.ToProfileHighlighted()
	if err != nil {
		return Config{}, err
	}
	return Config{Normal: normal, Selected: selected, Highlighted: highlighted}, nil
}

// LoadBase16 reads a base16 YAML file (with ~ expansion) and builds a
// Config from it.
func LoadBase16(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return Config{}, err
	}

	var b16 Base16
	if err := yaml.Unmarshal(data, &b16); err != nil {
		return Config{}, err
	}

	return FromBase16(b16)
}

// styleProfileRE matches "base16:<path>" or "b16:<path>" / "b16=<path>".
var styleProfileRE = regexp.MustCompile(`^(?:base16|b16)[:=](\S+)$`)

// ParseConfig resolves the --style flag value ("default" or
// "base16:<path>") into a Config.
func ParseConfig(s string) (Config, error) {
	if m := styleProfileRE.FindStringSubmatch(s); m != nil {
		return LoadBase16(m[1])
	}
	if s == "default" || s == "" {
		return Default(), nil
	}
	return Config{}, fmt.Errorf("unsupported style profile: %q", s)
}
