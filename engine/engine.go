// Package engine is one midikeys instance: the key table and the seek
// controller, run once per processing cycle.
package engine

import (
	"time"

	"midikeys/inject"
	"midikeys/keymap"
	"midikeys/midi"
	"midikeys/seek"
)

// Cycle is everything the instance sees for one processing block.
// Nothing in it is retained after Run returns.
type Cycle struct {
	Controls keymap.Snapshot
	Events   []midi.Event
	Now      time.Duration // monotonic
}

// Instance owns all mutable state of one running bridge
type Instance struct {
	keys *keymap.Table
	seek *seek.Controller
}

// Options configures the seek keys; empty names fall back to Left/Right
type Options struct {
	ForwardKey  string
	BackwardKey string
}

func New(bindings []keymap.Binding, inj inject.Injector, opts Options) *Instance {
	if opts.ForwardKey == "" {
		opts.ForwardKey = "Right"
	}
	if opts.BackwardKey == "" {
		opts.BackwardKey = "Left"
	}
	return &Instance{
		keys: keymap.NewTable(bindings, inj),
		seek: seek.New(opts.ForwardKey, opts.BackwardKey, inj),
	}
}

// Run processes one cycle. It never fails and does not allocate.
func (in *Instance) Run(c *Cycle) {
	in.keys.Scan(&c.Controls)
	if c.Controls[keymap.SeekEnable] > keymap.Threshold {
		in.seek.Update(FirstBend(c.Events), c.Now)
	}
}

// FirstBend returns the first pitch-bend of the cycle; later ones are ignored
func FirstBend(events []midi.Event) seek.Bend {
	for i := range events {
		if events[i].Type == midi.PitchBend {
			return seek.Bend{Value: events[i].Bend, OK: true}
		}
	}
	return seek.Bend{}
}

func (in *Instance) Keys() *keymap.Table {
	return in.keys
}

func (in *Instance) Seek() *seek.Controller {
	return in.seek
}
