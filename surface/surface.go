// Package surface keeps the current value of every control port, fed by
// MIDI notes and control changes.
package surface

import (
	"fmt"

	"midikeys/keymap"
	"midikeys/midi"
)

// Kind is the MIDI message type driving a control
type Kind string

const (
	KindCC   Kind = "cc"
	KindNote Kind = "note"
)

// Control maps one MIDI source to a port
type Control struct {
	Port    keymap.Port
	Kind    Kind
	Channel int // midi.AnyChannel matches every channel
	Number  uint8
}

func (c Control) String() string {
	ch := "any"
	if c.Channel != midi.AnyChannel {
		ch = fmt.Sprint(c.Channel + 1)
	}
	return fmt.Sprintf("%s %d ch:%s", c.Kind, c.Number, ch)
}

func (c Control) matches(e midi.Event) bool {
	if c.Channel != midi.AnyChannel && int(e.Channel) != c.Channel {
		return false
	}
	if e.Note != c.Number {
		return false
	}
	switch c.Kind {
	case KindCC:
		return e.Type == midi.CC
	case KindNote:
		return e.Type == midi.NoteOn || e.Type == midi.NoteOff
	}
	return false
}

// Surface holds control values between cycles, like host control ports
type Surface struct {
	controls []Control
	values   keymap.Snapshot
}

func New(controls []Control) *Surface {
	s := &Surface{controls: make([]Control, len(controls))}
	copy(s.controls, controls)
	return s
}

// Apply updates every port driven by e and reports whether any was.
// Only the last value of a cycle is scanned, so a note on and off that
// arrive within the same cycle never fire.
func (s *Surface) Apply(e midi.Event) bool {
	applied := false
	for _, c := range s.controls {
		if !c.matches(e) {
			continue
		}
		switch e.Type {
		case midi.CC:
			s.values[c.Port] = CCValue(e.Velocity)
		case midi.NoteOn:
			if e.Velocity > 0 {
				s.values[c.Port] = 1
			} else {
				s.values[c.Port] = 0
			}
		case midi.NoteOff:
			s.values[c.Port] = 0
		}
		applied = true
	}
	return applied
}

// Set writes a port value directly
func (s *Surface) Set(p keymap.Port, v float32) {
	if p < 0 || p >= keymap.NumPorts {
		return
	}
	s.values[p] = v
}

func (s *Surface) Value(p keymap.Port) float32 {
	return s.values[p]
}

// Snapshot returns a copy of all current values
func (s *Surface) Snapshot() keymap.Snapshot {
	return s.values
}

// Controls returns the mapping for port p, if any
func (s *Surface) Controls(p keymap.Port) []Control {
	var out []Control
	for _, c := range s.controls {
		if c.Port == p {
			out = append(out, c)
		}
	}
	return out
}

// CCValue maps a 7-bit controller value to [0, 1] with 64 exactly at 0.5
func CCValue(v uint8) float32 {
	switch {
	case v == 0:
		return 0
	case v == 64:
		return 0.5
	case v >= 127:
		return 1
	case v < 64:
		return float32(v) / 128
	default:
		return float32(v-1) / 126
	}
}
