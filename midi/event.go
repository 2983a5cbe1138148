package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn    uint8 = 0x90
	NoteOff   uint8 = 0x80
	CC        uint8 = 0xB0
	PitchBend uint8 = 0xE0
)

// BendCenter is the 14-bit pitch-bend rest position
const BendCenter uint16 = 8192

// Event is a decoded channel message
type Event struct {
	Type     uint8 // NoteOn, NoteOff, CC, PitchBend
	Channel  uint8
	Note     uint8  // note or controller number
	Velocity uint8  // velocity or controller value
	Bend     uint16 // 14-bit absolute pitch bend, PitchBend only
}

func (e Event) String() string {
	switch e.Type {
	case NoteOn:
		return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%d}", e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return fmt.Sprintf("NoteOff{ch:%d, note:%d}", e.Channel, e.Note)
	case CC:
		return fmt.Sprintf("CC{ch:%d, ctrl:%d, val:%d}", e.Channel, e.Note, e.Velocity)
	case PitchBend:
		return fmt.Sprintf("PitchBend{ch:%d, val:%d}", e.Channel, e.Bend)
	}
	return fmt.Sprintf("Event{type:%#x}", e.Type)
}

// Decode converts the message kinds midikeys uses. Everything else
// (clock, sysex, aftertouch, program change ...) reports false.
func Decode(msg gomidi.Message) (Event, bool) {
	var channel, note, velocity uint8
	var rel int16
	var abs uint16

	switch {
	case msg.GetNoteStart(&channel, &note, &velocity):
		return Event{Type: NoteOn, Channel: channel, Note: note, Velocity: velocity}, true
	case msg.GetNoteEnd(&channel, &note):
		return Event{Type: NoteOff, Channel: channel, Note: note}, true
	case msg.GetControlChange(&channel, &note, &velocity):
		return Event{Type: CC, Channel: channel, Note: note, Velocity: velocity}, true
	case msg.GetPitchBend(&channel, &rel, &abs):
		return Event{Type: PitchBend, Channel: channel, Bend: abs}, true
	}
	return Event{}, false
}
