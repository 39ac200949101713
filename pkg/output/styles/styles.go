// Package styles defines the visual styling of snipper's terminal output.
//
// A Theme maps semantic style names (Changed, FilePath, DiffAdd, ...) to
// lipgloss styles built from YAML. Colors are adaptive so one theme works
// on light and dark terminals. The embedded theme is active until a
// project configures its own with the "styles" setting.
package styles

import (
	"bytes"
	_ "embed"
	"os"
	"sort"
	"sync/atomic"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef is an adaptive color
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef describes one style. Foreground and Background name entries of
// the theme's colors. Inherit names another style whose unset properties
// are copied.
type StyleDef struct {
	Inherit      string `yaml:"inherit,omitempty"`
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Faint        bool   `yaml:"faint,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
}

type themeFile struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Theme is an immutable set of named styles
type Theme struct {
	styles map[string]lipgloss.Style
}

var (
	defaultTheme *Theme
	active       atomic.Pointer[Theme]
)

func init() {
	t, err := Parse(defaultStyles)
	if err != nil {
		panic("invalid embedded styles: " + err.Error())
	}
	defaultTheme = t
}

// Parse builds a theme from YAML. Unknown keys, unknown colors and
// inheritance cycles are errors.
func Parse(data []byte) (*Theme, error) {
	var file themeFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	b := &builder{
		defs:     file.Styles,
		colors:   make(map[string]lipgloss.AdaptiveColor, len(file.Colors)),
		built:    make(map[string]lipgloss.Style, len(file.Styles)),
		visiting: map[string]bool{},
	}
	for name, def := range file.Colors {
		b.colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}
	for name := range file.Styles {
		if _, err := b.build(name); err != nil {
			return nil, err
		}
	}
	return &Theme{styles: b.built}, nil
}

// LoadFile parses the theme stored at path
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read styles file %s", path).
			WithDetail("file", path)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid styles file %s", path).
			WithDetail("file", path)
	}
	return t, nil
}

// Default returns the embedded theme
func Default() *Theme {
	return defaultTheme
}

// Use makes t the theme used by GetStyle. nil restores the default.
func Use(t *Theme) {
	active.Store(t)
}

// Active returns the theme used by GetStyle
func Active() *Theme {
	if t := active.Load(); t != nil {
		return t
	}
	return defaultTheme
}

// GetStyle returns the named style of the active theme
func GetStyle(name string) lipgloss.Style {
	return Active().Get(name)
}

// Get returns the named style, or an empty style for unknown names
func (t *Theme) Get(name string) lipgloss.Style {
	if style, ok := t.styles[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Names lists the styles in the theme
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.styles))
	for name := range t.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type builder struct {
	defs     map[string]StyleDef
	colors   map[string]lipgloss.AdaptiveColor
	built    map[string]lipgloss.Style
	visiting map[string]bool
}

func (b *builder) build(name string) (lipgloss.Style, error) {
	if style, ok := b.built[name]; ok {
		return style, nil
	}
	def, ok := b.defs[name]
	if !ok {
		return lipgloss.Style{}, errors.Newf(errors.ErrConfigParse, "unknown style %q", name)
	}
	if b.visiting[name] {
		return lipgloss.Style{}, errors.Newf(errors.ErrConfigParse, "style %q inherits from itself", name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	// only set properties are assigned so Inherit can fill the rest
	style := lipgloss.NewStyle()
	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Faint {
		style = style.Faint(true)
	}
	if def.Foreground != "" {
		color, err := b.color(name, def.Foreground)
		if err != nil {
			return lipgloss.Style{}, err
		}
		style = style.Foreground(color)
	}
	if def.Background != "" {
		color, err := b.color(name, def.Background)
		if err != nil {
			return lipgloss.Style{}, err
		}
		style = style.Background(color)
	}
	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	if def.MarginBottom > 0 {
		style = style.MarginBottom(def.MarginBottom)
	}
	if def.PaddingLeft > 0 {
		style = style.PaddingLeft(def.PaddingLeft)
	}

	if def.Inherit != "" {
		parent, err := b.build(def.Inherit)
		if err != nil {
			return lipgloss.Style{}, err
		}
		style = style.Inherit(parent)
	}
	b.built[name] = style
	return style, nil
}

func (b *builder) color(style, name string) (lipgloss.AdaptiveColor, error) {
	color, ok := b.colors[name]
	if !ok {
		return color, errors.Newf(errors.ErrConfigParse, "style %q uses unknown color %q", style, name)
	}
	return color, nil
}
