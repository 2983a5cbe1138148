package midi_test

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"

	"midikeys/config"
	"midikeys/keymap"
	"midikeys/midi"
	"midikeys/surface"
)

// A binding's own channel wins over the input channel
func TestSourceChannelOverridesInput(t *testing.T) {
	cfg, err := config.Parse([]byte(`
input:
  channel: 1
bindings:
  - port: play
    key: XF86AudioPlay
    source: {kind: cc, number: 41, channel: 2}
  - port: stop
    key: XF86AudioStop
    source: {kind: cc, number: 42}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	sink := make(chan midi.Event, 8)
	sc, err := midi.NewSurfaceController("test", nil, nil, midi.AnyChannel, sink)
	if err != nil {
		t.Fatalf("NewSurfaceController: %v", err)
	}
	surf := surface.New(cfg.Controls())

	sc.Receive(gomidi.ControlChange(1, 41, 127)) // channel 2
	sc.Receive(gomidi.ControlChange(0, 42, 127)) // channel 1
	sc.Receive(gomidi.ControlChange(1, 42, 127)) // stop on the wrong channel
	close(sink)
	for e := range sink {
		surf.Apply(e)
	}

	if v := surf.Value(keymap.Play); v != 1 {
		t.Errorf("Expected play at 1 from channel 2, got %v", v)
	}
	if v := surf.Value(keymap.Stop); v != 1 {
		t.Errorf("Expected stop at 1 from the input channel, got %v", v)
	}

	// stop is only mapped on channel 1
	surf.Set(keymap.Stop, 0)
	surf.Apply(midi.Event{Type: midi.CC, Channel: 1, Note: 42, Velocity: 127})
	if v := surf.Value(keymap.Stop); v != 0 {
		t.Errorf("Expected stop unchanged by channel 2, got %v", v)
	}
}
