package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input    string
		expected tcell.Color
		wantErr  bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), false},
		{"00ff00", tcell.NewRGBColor(0, 255, 0), false},
		{"#00f", tcell.NewRGBColor(0, 0, 255), false},
		{"#12345", tcell.ColorDefault, true},
		{"#GGGGGG", tcell.ColorDefault, true},
		{"", tcell.ColorDefault, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestMustParseHexColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseHexColor did not panic on bad input")
		}
	}()
	MustParseHexColor("nope")
}

func TestBlend(t *testing.T) {
	from, err := Blend("#000000", "#ffffff", 0)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}
	if from != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("Blend at 0 = %v, want black", from)
	}

	to, err := Blend("#000000", "#ffffff", 1)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}
	if to != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("Blend at 1 = %v, want white", to)
	}

	if _, err := Blend("#000000", "#zz0000", 0.5); err == nil {
		t.Error("Blend with a bad color should fail")
	}
}

func TestDefaultPalette(t *testing.T) {
	theme := DefaultTheme()
	if theme.Accent == "" || theme.Button == "" {
		t.Fatalf("embedded theme is incomplete: %+v", theme)
	}
	p := DefaultPalette()
	if p.Button == p.ButtonHover {
		t.Error("hover style should differ from the plain button style")
	}
}

func TestThemePaletteRejectsBadColor(t *testing.T) {
	theme := DefaultTheme()
	theme.Status = "#zz"
	if _, err := theme.Palette(); err == nil {
		t.Error("Palette should reject an invalid color")
	}

	if _, err := LoadTheme([]byte("{")); err == nil {
		t.Error("LoadTheme should reject invalid JSON")
	}
}
