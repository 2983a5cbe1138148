// Package inject delivers synthetic key presses to the operating system.
//
// Key names are symbolic (X11 keysym style such as "XF86AudioPlay" or
// "Right"). Every backend treats a send as a single press and release.
package inject

import (
	"errors"
	"fmt"
	"sync"

	"midikeys/debug"
)

var (
	ErrUnknownKey     = errors.New("unknown key")
	ErrUnknownBackend = errors.New("unknown injector backend")
)

// Injector sends one key sequence (press + release) per call
type Injector interface {
	SendKeysequence(name string) error
}

// Backend names accepted by New
const (
	BackendXdotool = "xdotool"
	BackendUinput  = "uinput"
	BackendDryRun  = "dry-run"
	BackendNone    = "none"
)

// New creates the injector for a backend name
func New(backend string) (Injector, error) {
	switch backend {
	case BackendXdotool, "":
		return NewXdotool(), nil
	case BackendUinput:
		u, err := NewUinput("midikeys")
		if err != nil {
			return nil, fmt.Errorf("create uinput device: %w", err)
		}
		return u, nil
	case BackendDryRun:
		return &Recorder{Limit: 64}, nil
	case BackendNone:
		return Discard, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// Discard drops every key
var Discard Injector = discard{}

type discard struct{}

func (discard) SendKeysequence(string) error { return nil }

// Recorder remembers sent keys and optionally forwards them.
// With Limit > 0 only the most recent Limit keys are kept.
type Recorder struct {
	Next  Injector
	Err   error // returned from every send after recording
	Limit int

	mu   sync.Mutex
	keys []string
}

func (r *Recorder) SendKeysequence(name string) error {
	r.mu.Lock()
	r.keys = append(r.keys, name)
	if r.Limit > 0 && len(r.keys) > r.Limit {
		n := copy(r.keys, r.keys[len(r.keys)-r.Limit:])
		r.keys = r.keys[:n]
	}
	r.mu.Unlock()

	if r.Next != nil {
		if err := r.Next.SendKeysequence(name); err != nil {
			return err
		}
	}
	return r.Err
}

// Keys returns a copy of the recorded keys, oldest first
func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Reset forgets recorded keys
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.keys = r.keys[:0]
	r.mu.Unlock()
}

// Logged writes failed sends to the debug log and passes the error on
type Logged struct {
	Next Injector
}

func (l Logged) SendKeysequence(name string) error {
	err := l.Next.SendKeysequence(name)
	if err != nil {
		debug.Log("inject", "send %s failed: %v", name, err)
	} else {
		debug.Log("inject", "sent %s", name)
	}
	return err
}
