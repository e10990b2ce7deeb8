package input

import (
	"context"
	"errors"
	"slices"
)

// ErrWaitCancelled is the result of a keystroke wait that was abandoned.
var ErrWaitCancelled = errors.New("input: keystroke wait cancelled")

// Keystroke is a pending one-shot wait for a single key. It resolves exactly
// once: with the first qualifying key, or with ErrWaitCancelled.
type Keystroke struct {
	d     *Dispatcher
	valid map[string]struct{} // nil accepts any key
	done  chan struct{}

	// Written under d.mu before done is closed.
	key      string
	err      error
	resolved bool
}

// WaitForSingleKeystroke starts waiting for the next key-down, while input is
// enabled, whose normalized key is one of validKeys (any key when none are
// given). The wait does not block event delivery; observe it with Done,
// Result or Wait.
func (d *Dispatcher) WaitForSingleKeystroke(validKeys ...string) *Keystroke {
	k := &Keystroke{d: d, done: make(chan struct{})}
	if len(validKeys) > 0 {
		k.valid = make(map[string]struct{}, len(validKeys))
		for _, key := range validKeys {
			k.valid[Normalize(key)] = struct{}{}
		}
	}

	d.mu.Lock()
	d.waiters = append(d.waiters, k)
	d.mu.Unlock()
	return k
}

// resolveWaitersLocked settles every waiter that accepts key. The caller
// holds d.mu.
func (d *Dispatcher) resolveWaitersLocked(key string) {
	if len(d.waiters) == 0 {
		return
	}
	d.waiters = slices.DeleteFunc(d.waiters, func(k *Keystroke) bool {
		if !k.accepts(key) {
			return false
		}
		k.settleLocked(key, nil)
		return true
	})
}

func (k *Keystroke) accepts(key string) bool {
	if k.valid == nil {
		return true
	}
	_, ok := k.valid[key]
	return ok
}

func (k *Keystroke) settleLocked(key string, err error) {
	if k.resolved {
		return
	}
	k.resolved = true
	k.key = key
	k.err = err
	close(k.done)
}

// Done is closed once the wait has resolved.
func (k *Keystroke) Done() <-chan struct{} {
	return k.done
}

// Result returns the key that resolved the wait, or ErrWaitCancelled. It must
// only be called after Done is closed.
func (k *Keystroke) Result() (string, error) {
	<-k.done
	k.d.mu.Lock()
	defer k.d.mu.Unlock()
	return k.key, k.err
}

// Wait blocks until the wait resolves or ctx ends. When ctx ends first the
// wait is cancelled and ctx's error returned.
func (k *Keystroke) Wait(ctx context.Context) (string, error) {
	select {
	case <-k.done:
		return k.Result()
	case <-ctx.Done():
		k.Cancel()
		// A key may have won the race against the cancellation.
		if key, err := k.Result(); err == nil {
			return key, nil
		}
		return "", ctx.Err()
	}
}

// Cancel abandons the wait and deregisters it. Cancelling a resolved wait
// does nothing.
func (k *Keystroke) Cancel() {
	d := k.d
	d.mu.Lock()
	defer d.mu.Unlock()
	if k.resolved {
		return
	}
	d.waiters = slices.DeleteFunc(d.waiters, func(w *Keystroke) bool { return w == k })
	k.settleLocked("", ErrWaitCancelled)
}

// PendingKeystrokes returns the number of unresolved waits.
func (d *Dispatcher) PendingKeystrokes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.waiters)
}
