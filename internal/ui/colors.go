package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

//go:embed theme.json
var themeFS embed.FS

// ParseHexColor converts a hex color string (e.g., "#FF0000", "FF0000" or
// "#F00") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	c, err := parseColorful(hex)
	if err != nil {
		return tcell.ColorDefault, err
	}
	return toTcell(c), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// Blend mixes two hex colors in Lab space; t=0 gives from, t=1 gives to.
func Blend(from, to string, t float64) (tcell.Color, error) {
	a, err := parseColorful(from)
	if err != nil {
		return tcell.ColorDefault, err
	}
	b, err := parseColorful(to)
	if err != nil {
		return tcell.ColorDefault, err
	}
	return toTcell(a.BlendLab(b, t).Clamped()), nil
}

func parseColorful(hex string) (colorful.Color, error) {
	c, err := colorful.Hex("#" + strings.TrimPrefix(hex, "#"))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return c, nil
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Theme holds the hex colors the renderer draws with.
type Theme struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Dim        string `json:"dim"`
	Header     string `json:"header"`
	Status     string `json:"status"`
	Button     string `json:"button"`
	ButtonText string `json:"buttonText"`
	Accent     string `json:"accent"`
	Disabled   string `json:"disabled"`
}

// LoadTheme parses a JSON theme.
func LoadTheme(data []byte) (Theme, error) {
	var theme Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
	}
	return theme, nil
}

// DefaultTheme returns the embedded theme.
func DefaultTheme() Theme {
	content, err := themeFS.ReadFile("theme.json")
	if err != nil {
		panic(fmt.Errorf("failed to read embedded theme: %w", err))
	}
	theme, err := LoadTheme(content)
	if err != nil {
		panic(err)
	}
	return theme
}

// Palette is a Theme resolved to terminal styles.
type Palette struct {
	Text           tcell.Style
	Dim            tcell.Style
	Header         tcell.Style
	Status         tcell.Style
	Button         tcell.Style
	ButtonHover    tcell.Style
	ButtonDisabled tcell.Style
}

// Palette resolves the theme. The hover color sits halfway between the
// button and accent colors.
func (t Theme) Palette() (Palette, error) {
	colors := make(map[string]tcell.Color)
	for name, hex := range map[string]string{
		"background": t.Background,
		"text":       t.Text,
		"dim":        t.Dim,
		"header":     t.Header,
		"status":     t.Status,
		"button":     t.Button,
		"buttonText": t.ButtonText,
		"disabled":   t.Disabled,
	} {
		c, err := ParseHexColor(hex)
		if err != nil {
			return Palette{}, fmt.Errorf("theme %s: %w", name, err)
		}
		colors[name] = c
	}
	hover, err := Blend(t.Button, t.Accent, 0.5)
	if err != nil {
		return Palette{}, fmt.Errorf("theme accent: %w", err)
	}

	base := tcell.StyleDefault.Background(colors["background"])
	return Palette{
		Text:           base.Foreground(colors["text"]),
		Dim:            base.Foreground(colors["dim"]),
		Header:         base.Foreground(colors["header"]).Bold(true),
		Status:         base.Foreground(colors["status"]),
		Button:         tcell.StyleDefault.Background(colors["button"]).Foreground(colors["buttonText"]),
		ButtonHover:    tcell.StyleDefault.Background(hover).Foreground(colors["buttonText"]).Bold(true),
		ButtonDisabled: tcell.StyleDefault.Background(colors["disabled"]).Foreground(colors["dim"]),
	}, nil
}

// DefaultPalette resolves the embedded theme.
func DefaultPalette() Palette {
	p, err := DefaultTheme().Palette()
	if err != nil {
		panic(err)
	}
	return p
}
