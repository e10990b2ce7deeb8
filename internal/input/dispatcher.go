// Package input routes key presses and element clicks to registered handlers.
//
// A Dispatcher is owned by the application root and passed to whatever needs
// input. The host delivers events through KeyDown, KeyUp and the click
// listeners it attaches for OnButtonClick; handlers run on the delivering
// goroutine, outside the registry lock, so they may register and unsubscribe
// freely.
package input

import (
	"cmp"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrElementNotFound is logged when a click handler targets an element the
// locator does not know. It is never returned.
var ErrElementNotFound = errors.New("input: element not found")

// KeyEvent describes a key-down.
type KeyEvent struct {
	Key string // normalized key
	Raw string // key as delivered by the host
}

// KeyHandler reacts to a key-down.
type KeyHandler func(KeyEvent)

// ClickEvent describes a click on an element.
type ClickEvent struct {
	ElementID string
	X, Y      int
}

// ClickHandler reacts to a click.
type ClickHandler func(ClickEvent)

// Unsubscribe removes exactly one registration. Calling it more than once is
// harmless.
type Unsubscribe func()

// Element is a clickable thing supplied by the host.
type Element interface {
	// AddClickListener attaches fn and returns a function that detaches it.
	AddClickListener(fn func(ClickEvent)) (remove func())
}

// ElementLocator finds elements by identifier.
type ElementLocator interface {
	Element(id string) (Element, bool)
}

// Normalize lowercases a key identifier.
func Normalize(key string) string {
	return cases.Lower(language.Und).String(key)
}

type keyBinding struct {
	seq           uint64
	key           string
	caseSensitive bool
	handler       KeyHandler
}

type clickBinding struct {
	elementID string
	handler   ClickHandler
	detach    func()
	once      sync.Once
}

func (b *clickBinding) release() {
	b.once.Do(b.detach)
}

// Dispatcher is the input registry for one session.
type Dispatcher struct {
	mu      sync.Mutex
	enabled bool
	pressed map[string]struct{}
	keys    map[string][]*keyBinding
	clicks  map[string]*clickBinding
	waiters []*Keystroke
	nextSeq uint64

	locator ElementLocator
	logger  *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for soft failures.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher returns an enabled dispatcher with no handlers. locator may be
// nil, in which case every click registration is treated as a missing element.
func NewDispatcher(locator ElementLocator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		enabled: true,
		pressed: make(map[string]struct{}),
		keys:    make(map[string][]*keyBinding),
		clicks:  make(map[string]*clickBinding),
		locator: locator,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// KeyOption configures a key registration.
type KeyOption func(*keyOptions)

type keyOptions struct {
	caseSensitive bool
}

// CaseSensitive matches the key exactly instead of lowercasing it. A key-down
// runs case-sensitive and lowercased handlers together, in the order they
// were registered.
func CaseSensitive() KeyOption {
	return func(o *keyOptions) { o.caseSensitive = true }
}

func resolveKey(key string, opts []KeyOption) (string, bool) {
	var o keyOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.caseSensitive {
		return key, true
	}
	return Normalize(key), false
}

// OnKeyPress appends handler to the handlers of key. Handlers for a key run
// in registration order on every matching key-down.
func (d *Dispatcher) OnKeyPress(key string, handler KeyHandler, opts ...KeyOption) Unsubscribe {
	k, caseSensitive := resolveKey(key, opts)
	binding := &keyBinding{key: k, caseSensitive: caseSensitive, handler: handler}

	d.mu.Lock()
	d.nextSeq++
	binding.seq = d.nextSeq
	d.keys[k] = append(d.keys[k], binding)
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.removeBinding(binding)
	}
}

// removeBinding drops one binding, and the key once nothing is left. The
// caller holds d.mu.
func (d *Dispatcher) removeBinding(binding *keyBinding) {
	bindings, ok := d.keys[binding.key]
	if !ok {
		return
	}
	idx := slices.Index(bindings, binding)
	if idx == -1 {
		return
	}
	bindings = slices.Delete(bindings, idx, idx+1)
	if len(bindings) == 0 {
		delete(d.keys, binding.key)
		return
	}
	d.keys[binding.key] = bindings
}

// OffKeyPress removes every handler registered for key.
func (d *Dispatcher) OffKeyPress(key string, opts ...KeyOption) {
	k, _ := resolveKey(key, opts)
	d.mu.Lock()
	delete(d.keys, k)
	d.mu.Unlock()
}

// OnButtonClick attaches handler to the element's click signal. The handler
// only fires while input is enabled. A missing element is logged and yields
// an Unsubscribe that does nothing. Registering again for the same element
// detaches the previous handler.
func (d *Dispatcher) OnButtonClick(elementID string, handler ClickHandler) Unsubscribe {
	var (
		element Element
		found   bool
	)
	if d.locator != nil {
		element, found = d.locator.Element(elementID)
	}
	if !found {
		d.logger.Error("register click handler", "element", elementID, "error", ErrElementNotFound)
		return func() {}
	}

	binding := &clickBinding{elementID: elementID, handler: handler}
	binding.detach = element.AddClickListener(func(ev ClickEvent) {
		if !d.InputEnabled() {
			return
		}
		handler(ev)
	})

	d.mu.Lock()
	previous := d.clicks[elementID]
	d.clicks[elementID] = binding
	d.mu.Unlock()

	if previous != nil {
		previous.release()
	}

	return func() {
		binding.release()
		d.mu.Lock()
		if d.clicks[elementID] == binding {
			delete(d.clicks, elementID)
		}
		d.mu.Unlock()
	}
}

// IsKeyPressed reports whether key is currently held.
func (d *Dispatcher) IsKeyPressed(key string) bool {
	k := Normalize(key)
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pressed[k]
	return ok
}

// SetInputEnabled opens or closes the global gate.
func (d *Dispatcher) SetInputEnabled(enabled bool) {
	d.mu.Lock()
	d.enabled = enabled
	d.mu.Unlock()
}

// InputEnabled reports whether handlers currently fire.
func (d *Dispatcher) InputEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// ClearAllHandlers drops every key and click handler, detaching click
// listeners. The gate, pressed keys and pending keystroke waits are kept.
func (d *Dispatcher) ClearAllHandlers() {
	d.mu.Lock()
	clicks := d.clicks
	d.keys = make(map[string][]*keyBinding)
	d.clicks = make(map[string]*clickBinding)
	d.mu.Unlock()

	for _, binding := range clicks {
		binding.release()
	}
}

// KeyDown delivers a key press. While input is disabled the event is
// dropped entirely.
func (d *Dispatcher) KeyDown(raw string) {
	key := Normalize(raw)

	d.mu.Lock()
	if !d.enabled {
		d.mu.Unlock()
		return
	}
	d.pressed[key] = struct{}{}
	handlers := d.matchingLocked(key, raw)
	d.resolveWaitersLocked(key)
	d.mu.Unlock()

	ev := KeyEvent{Key: key, Raw: raw}
	for _, h := range handlers {
		h(ev)
	}
}

// KeyUp delivers a key release. It always clears the key, even while input
// is disabled.
func (d *Dispatcher) KeyUp(raw string) {
	key := Normalize(raw)
	d.mu.Lock()
	delete(d.pressed, key)
	d.mu.Unlock()
}

// matchingLocked returns the handlers a key-down should invoke in
// registration order: bindings under the normalized key (case-sensitive ones
// only on an exact match) and exact bindings for a key that is not lowercase.
func (d *Dispatcher) matchingLocked(key, raw string) []KeyHandler {
	var matched []*keyBinding
	for _, b := range d.keys[key] {
		if b.caseSensitive && b.key != raw {
			continue
		}
		matched = append(matched, b)
	}
	if raw != key {
		matched = append(matched, d.keys[raw]...)
		slices.SortFunc(matched, func(a, b *keyBinding) int {
			return cmp.Compare(a.seq, b.seq)
		})
	}

	handlers := make([]KeyHandler, len(matched))
	for i, b := range matched {
		handlers[i] = b.handler
	}
	return handlers
}

// State is a snapshot of the registry.
type State struct {
	Enabled       bool
	PressedKeys   map[string]struct{}
	KeyHandlers   map[string][]KeyHandler
	ClickHandlers map[string]ClickHandler
}

// InputState returns a copy of the registry that shares nothing with it.
func (d *Dispatcher) InputState() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := State{
		Enabled:       d.enabled,
		PressedKeys:   make(map[string]struct{}, len(d.pressed)),
		KeyHandlers:   make(map[string][]KeyHandler, len(d.keys)),
		ClickHandlers: make(map[string]ClickHandler, len(d.clicks)),
	}
	for k := range d.pressed {
		state.PressedKeys[k] = struct{}{}
	}
	for k, bindings := range d.keys {
		handlers := make([]KeyHandler, len(bindings))
		for i, b := range bindings {
			handlers[i] = b.handler
		}
		state.KeyHandlers[k] = handlers
	}
	for id, b := range d.clicks {
		state.ClickHandlers[id] = b.handler
	}
	return state
}
