package ui

import (
	"slices"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/samdwyer/mazecrawl/internal/input"
)

// ButtonState is the visible state of one button.
type ButtonState struct {
	X, Y          int
	Width, Height int
	Text          string
	Key           string // keyboard shortcut shown in the label
	Disabled      bool
	Hovered       bool
}

// Contains reports whether the cell (x, y) lies on the button.
func (b ButtonState) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Label is the text drawn on the button.
func (b ButtonState) Label() string {
	if b.Key == "" {
		return b.Text
	}
	return b.Key + ") " + b.Text
}

// ButtonWidth is the width a button needs to show label with padding.
func ButtonWidth(label string) int {
	return uniseg.StringWidth(label) + 4
}

// Button pairs an identifier with its state.
type Button struct {
	ID string
	ButtonState
}

type listener struct {
	id int
	fn func(input.ClickEvent)
}

type button struct {
	state     ButtonState
	listeners []listener
}

// Buttons is the clickable surface. Later buttons are drawn over earlier
// ones, so they win hit tests.
type Buttons struct {
	mu      sync.Mutex
	order   []string
	buttons map[string]*button
	nextID  int
}

// NewButtons returns an empty surface.
func NewButtons() *Buttons {
	return &Buttons{buttons: make(map[string]*button)}
}

// Set adds the button id, or updates its state. Listeners survive updates.
func (bs *Buttons) Set(id string, state ButtonState) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	b, ok := bs.buttons[id]
	if !ok {
		b = &button{}
		bs.buttons[id] = b
		bs.order = append(bs.order, id)
	}
	b.state = state
}

// Remove drops the button id and its listeners.
func (bs *Buttons) Remove(id string) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if _, ok := bs.buttons[id]; !ok {
		return
	}
	delete(bs.buttons, id)
	bs.order = slices.DeleteFunc(bs.order, func(other string) bool { return other == id })
}

// Reset drops every button.
func (bs *Buttons) Reset() {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	bs.order = nil
	bs.buttons = make(map[string]*button)
}

// State returns the state of button id.
func (bs *Buttons) State(id string) (ButtonState, bool) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	b, ok := bs.buttons[id]
	if !ok {
		return ButtonState{}, false
	}
	return b.state, true
}

// All returns every button in drawing order.
func (bs *Buttons) All() []Button {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	all := make([]Button, 0, len(bs.order))
	for _, id := range bs.order {
		all = append(all, Button{ID: id, ButtonState: bs.buttons[id].state})
	}
	return all
}

// Element implements input.ElementLocator.
func (bs *Buttons) Element(id string) (input.Element, bool) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	b, ok := bs.buttons[id]
	if !ok {
		return nil, false
	}
	return &element{surface: bs, button: b}, true
}

type element struct {
	surface *Buttons
	button  *button
}

func (e *element) AddClickListener(fn func(input.ClickEvent)) func() {
	bs := e.surface
	bs.mu.Lock()
	id := bs.nextID
	bs.nextID++
	e.button.listeners = append(e.button.listeners, listener{id: id, fn: fn})
	bs.mu.Unlock()

	return func() {
		bs.mu.Lock()
		defer bs.mu.Unlock()
		e.button.listeners = slices.DeleteFunc(e.button.listeners, func(l listener) bool { return l.id == id })
	}
}

// Click fires the listeners of the topmost enabled button under (x, y) and
// reports whether there was one.
func (bs *Buttons) Click(x, y int) bool {
	bs.mu.Lock()
	var (
		hitID string
		fns   []func(input.ClickEvent)
	)
	for _, id := range slices.Backward(bs.order) {
		b := bs.buttons[id]
		if b.state.Disabled || !b.state.Contains(x, y) {
			continue
		}
		hitID = id
		for _, l := range b.listeners {
			fns = append(fns, l.fn)
		}
		break
	}
	bs.mu.Unlock()

	if hitID == "" {
		return false
	}
	ev := input.ClickEvent{ElementID: hitID, X: x, Y: y}
	for _, fn := range fns {
		fn(ev)
	}
	return true
}

// Hover marks the topmost enabled button under (x, y) as hovered and clears
// the rest.
func (bs *Buttons) Hover(x, y int) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	found := false
	for _, id := range slices.Backward(bs.order) {
		b := bs.buttons[id]
		hit := !found && !b.state.Disabled && b.state.Contains(x, y)
		b.state.Hovered = hit
		found = found || hit
	}
}
