// Package theme holds the named color themes and maps them to the styles
// of the editor, the explorer and the application chrome.
package theme

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Default is the theme used when none is configured.
const Default = "ocean-dark"

var (
	ErrUnknownTheme = errors.New("unknown theme")
	ErrInvalidColor = errors.New("invalid color")
)

// Palette is the set of UI colors of a theme. Colors are "#rrggbb" hex
// values or ANSI color numbers.
type Palette struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Muted      string `toml:"muted"`
	Accent     string `toml:"accent"`
	Selection  string `toml:"selection"`
	Cursor     string `toml:"cursor"`
	StatusBg   string `toml:"status_bg"`
	StatusFg   string `toml:"status_fg"`
	MenuBg     string `toml:"menu_bg"`
	MenuFg     string `toml:"menu_fg"`
	Directory  string `toml:"directory"`
	Error      string `toml:"error"`
}

// Theme is a named palette plus the chroma style used for syntax colors.
type Theme struct {
	Name   string
	Syntax string
	Palette
}

// Definition describes a user theme. Empty fields inherit from Base.
type Definition struct {
	Base   string `toml:"base"`
	Syntax string `toml:"syntax"`
	Palette
}

var builtins = []Theme{
	{
		Name:   "ocean-dark",
		Syntax: "onedark",
		Palette: Palette{
			Background: "#2b303b", Foreground: "#c0c5ce", Muted: "#65737e",
			Accent: "#8fa1b3", Selection: "#4f5b66", Cursor: "#c0c5ce",
			StatusBg: "#343d46", StatusFg: "#c0c5ce",
			MenuBg: "#343d46", MenuFg: "#c0c5ce",
			Directory: "#8fa1b3", Error: "#bf616a",
		},
	},
	{
		Name:   "light",
		Syntax: "github",
		Palette: Palette{
			Background: "#ffffff", Foreground: "#24292e", Muted: "#6a737d",
			Accent: "#0366d6", Selection: "#c8e1ff", Cursor: "#24292e",
			StatusBg: "#e1e4e8", StatusFg: "#24292e",
			MenuBg: "#f6f8fa", MenuFg: "#24292e",
			Directory: "#0366d6", Error: "#d73a49",
		},
	},
	{
		Name:   "dracula",
		Syntax: "dracula",
		Palette: Palette{
			Background: "#282a36", Foreground: "#f8f8f2", Muted: "#6272a4",
			Accent: "#bd93f9", Selection: "#44475a", Cursor: "#f8f8f2",
			StatusBg: "#44475a", StatusFg: "#f8f8f2",
			MenuBg: "#21222c", MenuFg: "#f8f8f2",
			Directory: "#8be9fd", Error: "#ff5555",
		},
	},
	{
		Name:   "monokai",
		Syntax: "monokai",
		Palette: Palette{
			Background: "#272822", Foreground: "#f8f8f2", Muted: "#75715e",
			Accent: "#a6e22e", Selection: "#49483e", Cursor: "#f8f8f0",
			StatusBg: "#3e3d32", StatusFg: "#f8f8f2",
			MenuBg: "#3e3d32", MenuFg: "#f8f8f2",
			Directory: "#66d9ef", Error: "#f92672",
		},
	},
	{
		Name:   "nord",
		Syntax: "nord",
		Palette: Palette{
			Background: "#2e3440", Foreground: "#d8dee9", Muted: "#4c566a",
			Accent: "#88c0d0", Selection: "#434c5e", Cursor: "#d8dee9",
			StatusBg: "#3b4252", StatusFg: "#e5e9f0",
			MenuBg: "#3b4252", MenuFg: "#e5e9f0",
			Directory: "#81a1c1", Error: "#bf616a",
		},
	},
}

// Catalog is an ordered set of themes: the built-ins first, then user
// themes in the order they were added.
type Catalog struct {
	order  []string
	themes map[string]Theme
}

// NewCatalog returns a catalog holding the built-in themes.
func NewCatalog() *Catalog {
	c := &Catalog{themes: make(map[string]Theme, len(builtins))}
	for _, t := range builtins {
		c.put(t)
	}
	return c
}

// Load returns a catalog with the built-ins plus defs, added in name order.
func Load(defs map[string]Definition) (*Catalog, error) {
	c := NewCatalog()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.Add(name, defs[name]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers a user theme. It may replace a built-in of the same name.
func (c *Catalog) Add(name string, def Definition) error {
	if name == "" {
		return errors.New("theme name is empty")
	}
	baseName := def.Base
	if baseName == "" {
		baseName = Default
	}
	base, ok := c.themes[baseName]
	if !ok {
		return fmt.Errorf("theme %s: base %w: %s", name, ErrUnknownTheme, baseName)
	}

	t := Theme{Name: name, Syntax: base.Syntax, Palette: merge(base.Palette, def.Palette)}
	if def.Syntax != "" {
		t.Syntax = def.Syntax
	}
	if err := t.Validate(); err != nil {
		return err
	}
	c.put(t)
	return nil
}

func (c *Catalog) put(t Theme) {
	if _, ok := c.themes[t.Name]; !ok {
		c.order = append(c.order, t.Name)
	}
	c.themes[t.Name] = t
}

// Names returns the theme names in catalog order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Get returns the named theme.
func (c *Catalog) Get(name string) (Theme, error) {
	t, ok := c.themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	return t, nil
}

// Next returns the theme after name, wrapping around. Unknown names
// yield the first theme.
func (c *Catalog) Next(name string) Theme {
	for i, n := range c.order {
		if n == name {
			return c.themes[c.order[(i+1)%len(c.order)]]
		}
	}
	return c.themes[c.order[0]]
}

// Validate checks every palette color.
func (t Theme) Validate() error {
	fields := []struct{ name, value string }{
		{"background", t.Background}, {"foreground", t.Foreground},
		{"muted", t.Muted}, {"accent", t.Accent},
		{"selection", t.Selection}, {"cursor", t.Cursor},
		{"status_bg", t.StatusBg}, {"status_fg", t.StatusFg},
		{"menu_bg", t.MenuBg}, {"menu_fg", t.MenuFg},
		{"directory", t.Directory}, {"error", t.Error},
	}
	for _, f := range fields {
		if !validColor(f.value) {
			return fmt.Errorf("theme %s: %s: %w %q", t.Name, f.name, ErrInvalidColor, f.value)
		}
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func validColor(s string) bool {
	if hexColor.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}

func merge(base, over Palette) Palette {
	pick := func(b, o string) string {
		if o != "" {
			return o
		}
		return b
	}
	return Palette{
		Background: pick(base.Background, over.Background),
		Foreground: pick(base.Foreground, over.Foreground),
		Muted:      pick(base.Muted, over.Muted),
		Accent:     pick(base.Accent, over.Accent),
		Selection:  pick(base.Selection, over.Selection),
		Cursor:     pick(base.Cursor, over.Cursor),
		StatusBg:   pick(base.StatusBg, over.StatusBg),
		StatusFg:   pick(base.StatusFg, over.StatusFg),
		MenuBg:     pick(base.MenuBg, over.MenuBg),
		MenuFg:     pick(base.MenuFg, over.MenuFg),
		Directory:  pick(base.Directory, over.Directory),
		Error:      pick(base.Error, over.Error),
	}
}
