package surface

import (
	"testing"

	"midikeys/keymap"
	"midikeys/midi"
)

func TestCCValue(t *testing.T) {
	tests := []struct {
		in   uint8
		want float32
	}{
		{0, 0},
		{32, 0.25},
		{64, 0.5},
		{65, 0.5079365},
		{127, 1},
	}
	for _, tt := range tests {
		got := CCValue(tt.in)
		if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("CCValue(%d): expected %v, got %v", tt.in, tt.want, got)
		}
	}

	// 63 and 64 must not cross the press threshold
	if CCValue(63) > keymap.Threshold || CCValue(64) > keymap.Threshold {
		t.Error("Expected values up to 64 to read as released")
	}
	if CCValue(65) <= keymap.Threshold {
		t.Error("Expected 65 to read as pressed")
	}
}

func TestApply(t *testing.T) {
	s := New([]Control{
		{Port: keymap.Play, Kind: KindCC, Channel: midi.AnyChannel, Number: 41},
		{Port: keymap.Stop, Kind: KindNote, Channel: 9, Number: 36},
	})

	tests := []struct {
		name    string
		ev      midi.Event
		applied bool
		port    keymap.Port
		want    float32
	}{
		{"cc press", midi.Event{Type: midi.CC, Channel: 4, Note: 41, Velocity: 127}, true, keymap.Play, 1},
		{"cc other number", midi.Event{Type: midi.CC, Note: 42, Velocity: 0}, false, keymap.Play, 1},
		{"cc release", midi.Event{Type: midi.CC, Note: 41, Velocity: 0}, true, keymap.Play, 0},
		{"note wrong channel", midi.Event{Type: midi.NoteOn, Channel: 0, Note: 36, Velocity: 90}, false, keymap.Stop, 0},
		{"note on", midi.Event{Type: midi.NoteOn, Channel: 9, Note: 36, Velocity: 90}, true, keymap.Stop, 1},
		{"note on zero velocity", midi.Event{Type: midi.NoteOn, Channel: 9, Note: 36}, true, keymap.Stop, 0},
		{"note on again", midi.Event{Type: midi.NoteOn, Channel: 9, Note: 36, Velocity: 1}, true, keymap.Stop, 1},
		{"note off", midi.Event{Type: midi.NoteOff, Channel: 9, Note: 36}, true, keymap.Stop, 0},
		{"cc with note number", midi.Event{Type: midi.CC, Channel: 9, Note: 36, Velocity: 127}, false, keymap.Stop, 0},
		{"pitch bend", midi.Event{Type: midi.PitchBend, Bend: 16383}, false, keymap.Play, 0},
	}

	for _, tt := range tests {
		if got := s.Apply(tt.ev); got != tt.applied {
			t.Errorf("%s: expected applied=%v, got %v", tt.name, tt.applied, got)
		}
		if got := s.Value(tt.port); got != tt.want {
			t.Errorf("%s: expected %s=%v, got %v", tt.name, tt.port, tt.want, got)
		}
	}
}

func TestValuesPersist(t *testing.T) {
	s := New([]Control{{Port: keymap.Mute, Kind: KindCC, Channel: midi.AnyChannel, Number: 48}})
	s.Apply(midi.Event{Type: midi.CC, Note: 48, Velocity: 127})

	for i := 0; i < 3; i++ {
		if snap := s.Snapshot(); snap[keymap.Mute] != 1 {
			t.Fatalf("Snapshot %d: expected mute held at 1, got %v", i, snap[keymap.Mute])
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := New(nil)
	s.Set(keymap.Media, 1)
	snap := s.Snapshot()
	s.Set(keymap.Media, 0)

	if snap[keymap.Media] != 1 {
		t.Error("Expected snapshot to be unaffected by later changes")
	}
	s.Set(keymap.NumPorts, 1) // ignored
}

func TestControls(t *testing.T) {
	s := New([]Control{
		{Port: keymap.Play, Kind: KindCC, Channel: midi.AnyChannel, Number: 41},
		{Port: keymap.Play, Kind: KindNote, Channel: 0, Number: 60},
		{Port: keymap.Stop, Kind: KindCC, Channel: midi.AnyChannel, Number: 42},
	})

	if got := len(s.Controls(keymap.Play)); got != 2 {
		t.Errorf("Expected 2 controls for play, got %d", got)
	}
	if got := len(s.Controls(keymap.Media)); got != 0 {
		t.Errorf("Expected no controls for media, got %d", got)
	}
	if got := s.Controls(keymap.Play)[1].String(); got != "note 60 ch:1" {
		t.Errorf("Expected 'note 60 ch:1', got %q", got)
	}
}

func TestTapWithinOneCycleEndsLow(t *testing.T) {
	s := New([]Control{{Port: keymap.Record, Kind: KindNote, Channel: midi.AnyChannel, Number: 36}})

	s.Apply(midi.Event{Type: midi.NoteOn, Note: 36, Velocity: 90})
	s.Apply(midi.Event{Type: midi.NoteOff, Note: 36})

	if v := s.Snapshot()[keymap.Record]; v != 0 {
		t.Errorf("Expected the cycle snapshot to hold only the last value 0, got %v", v)
	}
}
