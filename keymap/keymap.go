// Package keymap fires one key press per rising edge of a control value.
package keymap

import "midikeys/inject"

// Threshold is the level a control must exceed to count as pressed
const Threshold = 0.5

// Binding ties a control port to the key sequence it triggers
type Binding struct {
	Source      Port
	Keysequence string

	latched bool // true while Source stays above Threshold after firing
}

func NewBinding(source Port, keysequence string) Binding {
	return Binding{Source: source, Keysequence: keysequence}
}

// DefaultBindings returns the full media-key configuration
func DefaultBindings() []Binding {
	return []Binding{
		NewBinding(Play, "XF86AudioPlay"),
		NewBinding(Pause, "XF86AudioPause"),
		NewBinding(Stop, "XF86AudioStop"),
		NewBinding(Record, "XF86AudioRecord"),
		NewBinding(Prev, "XF86AudioPrev"),
		NewBinding(Next, "XF86AudioNext"),
		NewBinding(Rewind, "XF86AudioRewind"),
		NewBinding(Forward, "XF86AudioForward"),
		NewBinding(Repeat, "XF86AudioRepeat"),
		NewBinding(LowerVolume, "XF86AudioLowerVolume"),
		NewBinding(RaiseVolume, "XF86AudioRaiseVolume"),
		NewBinding(Mute, "XF86AudioMute"),
		NewBinding(Media, "XF86AudioMedia"),
	}
}

// Table is the fixed list of bindings scanned once per cycle
type Table struct {
	bindings []Binding
	inj      inject.Injector
}

// NewTable copies bindings; every binding starts unlatched
func NewTable(bindings []Binding, inj inject.Injector) *Table {
	t := &Table{
		bindings: make([]Binding, len(bindings)),
		inj:      inj,
	}
	copy(t.bindings, bindings)
	for i := range t.bindings {
		t.bindings[i].latched = false
	}
	return t
}

// Scan fires the key of every binding whose source just rose above
// Threshold. Injection errors are dropped; the latch advances anyway.
func (t *Table) Scan(values *Snapshot) {
	for i := range t.bindings {
		b := &t.bindings[i]
		if b.Source < 0 || b.Source >= NumPorts {
			continue
		}
		if values[b.Source] > Threshold {
			if !b.latched {
				b.latched = true
				_ = t.inj.SendKeysequence(b.Keysequence)
			}
		} else {
			b.latched = false
		}
	}
}

func (t *Table) Len() int {
	return len(t.bindings)
}

// Binding returns a copy of binding i
func (t *Table) Binding(i int) Binding {
	return t.bindings[i]
}

func (t *Table) Latched(i int) bool {
	return t.bindings[i].latched
}

// Latched reports the binding's latch state
func (b Binding) Latched() bool {
	return b.latched
}
