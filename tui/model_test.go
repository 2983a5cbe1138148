package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"midikeys/engine"
	"midikeys/host"
	"midikeys/inject"
	"midikeys/keymap"
	"midikeys/seek"
	"midikeys/surface"
	"midikeys/theme"
)

func newTestModel() (Model, *inject.Recorder) {
	rec := &inject.Recorder{}
	inst := engine.New(keymap.DefaultBindings(), rec, engine.Options{})
	rt := host.New(inst, surface.New(nil), nil, host.Options{Recent: rec})
	return NewModel(rt, nil, theme.New(theme.DefaultPalette())), rec
}

func TestPulseKeyPressesBinding(t *testing.T) {
	m, rec := newTestModel()
	m.status = m.Runtime.Status()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	m = next.(Model)
	m.Runtime.Step()

	keys := rec.Keys()
	if len(keys) != 1 || keys[0] != "XF86AudioMedia" {
		t.Errorf("Expected XF86AudioMedia, got %v", keys)
	}
}

func TestToggleSeekKey(t *testing.T) {
	m, _ := newTestModel()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = next.(Model)
	m.Runtime.Step()

	if st := m.Runtime.Status(); !st.SeekEnabled {
		t.Error("Expected seek gate open after s")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if out := next.(Model).View(); out != "" {
		t.Errorf("Expected empty view after quit, got %q", out)
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel()
	next, _ := m.Update(UpdateMsg(host.Status{
		Device:      "nanoKONTROL2",
		SeekEnabled: true,
		Bindings: []host.BindingStatus{
			{Port: keymap.Play, Key: "XF86AudioPlay", Value: 1, Latched: true},
		},
		Bend:      16383,
		Direction: seek.Forward,
		Recent:    []string{"XF86AudioPlay", "Right"},
	}))
	out := next.(Model).View()

	for _, want := range []string{"nanoKONTROL2", "seek:on", "play", "XF86AudioPlay", "forward every 0s", "Right XF86AudioPlay"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected view to contain %q:\n%s", want, out)
		}
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if out := next.(Model).View(); !strings.Contains(out, "toggle the pitch-bend seek gate") {
		t.Errorf("Expected help in view:\n%s", out)
	}
}
