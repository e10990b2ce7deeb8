package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Surface is what the renderer draws on. *Screen implements it.
type Surface interface {
	Clear()
	Show()
	Size() (width, height int)
	SetContent(x, y int, r rune, combining []rune, style tcell.Style)
}

// View is one frame of the game.
type View struct {
	Title   string
	Lines   []string
	Status  string
	Buttons []Button
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	surface Surface
	palette Palette
}

// NewRenderer creates a new renderer for the given surface.
func NewRenderer(surface Surface, palette Palette) *Renderer {
	return &Renderer{surface: surface, palette: palette}
}

// Render draws the header, body lines, buttons and status line.
func (r *Renderer) Render(v View) {
	r.surface.Clear()
	_, height := r.surface.Size()

	r.drawText(1, 0, v.Title, r.palette.Header)
	for i, line := range v.Lines {
		r.drawText(1, 2+i, line, r.palette.Text)
	}
	for _, b := range v.Buttons {
		r.drawButton(b.ButtonState)
	}
	if height > 0 {
		r.drawText(1, height-1, v.Status, r.palette.Status)
	}

	r.surface.Show()
}

func (r *Renderer) drawButton(b ButtonState) {
	style := r.palette.Button
	switch {
	case b.Disabled:
		style = r.palette.ButtonDisabled
	case b.Hovered:
		style = r.palette.ButtonHover
	}

	for y := b.Y; y < b.Y+b.Height; y++ {
		for x := b.X; x < b.X+b.Width; x++ {
			r.surface.SetContent(x, y, ' ', nil, style)
		}
	}

	label := b.Label()
	offset := (b.Width - uniseg.StringWidth(label)) / 2
	r.drawText(b.X+max(offset, 0), b.Y+b.Height/2, label, style)
}

// drawText writes text one grapheme cluster at a time and returns the
// column after the last cell written.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	state := -1
	for text != "" {
		var (
			cluster string
			width   int
		)
		cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
		runes := []rune(cluster)
		var combining []rune
		if len(runes) > 1 {
			combining = runes[1:]
		}
		r.surface.SetContent(x, y, runes[0], combining, style)
		x += width
	}
	return x
}
