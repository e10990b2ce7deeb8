package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazecrawl/internal/input"
)

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "escape",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "backtab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyUp:         "arrowup",
	tcell.KeyDown:       "arrowdown",
	tcell.KeyLeft:       "arrowleft",
	tcell.KeyRight:      "arrowright",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pageup",
	tcell.KeyPgDn:       "pagedown",
	tcell.KeyCtrlC:      "ctrl+c",
}

// KeyName converts a terminal key event to a key identifier. Printable keys
// keep their case ("a", "A", " "); named keys are lowercase ("enter",
// "arrowup", "f1").
func KeyName(ev *tcell.EventKey) string {
	k := ev.Key()
	if k == tcell.KeyRune {
		return string(ev.Rune())
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return "f" + strconv.Itoa(int(k-tcell.KeyF1)+1)
	}
	return input.Normalize(ev.Name())
}

// KeySink receives key transitions.
type KeySink interface {
	KeyDown(key string)
	KeyUp(key string)
}

// EventRouter feeds terminal events to a KeySink and a button surface.
type EventRouter struct {
	keys        KeySink
	buttons     *Buttons
	lastButtons tcell.ButtonMask
}

// NewEventRouter returns a router delivering to keys and buttons.
func NewEventRouter(keys KeySink, buttons *Buttons) *EventRouter {
	return &EventRouter{keys: keys, buttons: buttons}
}

// Handle routes ev and reports whether it was a key or mouse event.
//
// Terminals do not report key releases, so every key is delivered as a
// key-down immediately followed by its key-up. A click happens when the
// primary button goes down.
func (r *EventRouter) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		name := KeyName(ev)
		if name == "" {
			return true
		}
		r.keys.KeyDown(name)
		r.keys.KeyUp(name)
		return true

	case *tcell.EventMouse:
		x, y := ev.Position()
		pressed := ev.Buttons()
		r.buttons.Hover(x, y)
		if pressed&tcell.Button1 != 0 && r.lastButtons&tcell.Button1 == 0 {
			r.buttons.Click(x, y)
		}
		r.lastButtons = pressed
		return true
	}
	return false
}
