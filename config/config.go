package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"midikeys/inject"
	"midikeys/keymap"
	"midikeys/midi"
	"midikeys/surface"
)

// Source is the MIDI control driving a port
type Source struct {
	Kind    surface.Kind `yaml:"kind"`              // cc or note
	Number  uint8        `yaml:"number"`            // controller or note number
	Channel *int         `yaml:"channel,omitempty"` // 1-16, omitted = input channel
}

// Binding maps a port to a key and the control that drives it
type Binding struct {
	Port   keymap.Port `yaml:"port"`
	Key    string      `yaml:"key"`
	Source *Source     `yaml:"source,omitempty"`
}

// InputConfig selects the MIDI input
type InputConfig struct {
	Port    string `yaml:"port,omitempty"` // case-insensitive substring, empty = first port
	Channel int    `yaml:"channel"`        // 1-16, 0 = any
}

// SeekConfig configures the pitch-bend seek controller
type SeekConfig struct {
	Enabled  bool    `yaml:"enabled"`          // initial state of the seek gate
	Enable   *Source `yaml:"enable,omitempty"` // control driving the gate
	Forward  string  `yaml:"forward"`
	Backward string  `yaml:"backward"`
}

// Config is the main configuration structure
type Config struct {
	Input    InputConfig `yaml:"input"`
	Injector string      `yaml:"injector"`
	CycleMs  int         `yaml:"cycleMs"`
	Feedback bool        `yaml:"feedback"` // light surface buttons while held
	Bindings []Binding   `yaml:"bindings"`
	Seek     SeekConfig  `yaml:"seek"`
}

// Korg nanoKONTROL2 transport section (factory CC assignments)
var defaultSources = map[keymap.Port]uint8{
	keymap.Play:        41,
	keymap.Stop:        42,
	keymap.Rewind:      43,
	keymap.Forward:     44,
	keymap.Record:      45,
	keymap.Repeat:      46, // cycle
	keymap.Prev:        58, // track <
	keymap.Next:        59, // track >
	keymap.Pause:       60, // marker set
	keymap.LowerVolume: 61, // marker <
	keymap.RaiseVolume: 62, // marker >
	keymap.Mute:        48, // M1
	keymap.Media:       32, // S1
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{
		Input:    InputConfig{Port: "nanoKONTROL2"},
		Injector: inject.BackendXdotool,
		CycleMs:  10,
		Seek: SeekConfig{
			Enabled:  true,
			Forward:  "Right",
			Backward: "Left",
		},
	}
	for _, b := range keymap.DefaultBindings() {
		cfg.Bindings = append(cfg.Bindings, Binding{
			Port: b.Source,
			Key:  b.Keysequence,
			Source: &Source{
				Kind:   surface.KindCC,
				Number: defaultSources[b.Source],
			},
		})
	}
	return cfg
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "midikeys"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file; a missing file yields defaults.
// Fields absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Bindings = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Bindings == nil {
		cfg.Bindings = DefaultConfig().Bindings
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

var ErrInvalid = errors.New("invalid config")

// Validate returns the first problem found
func (c *Config) Validate() error {
	if c.Input.Channel < 0 || c.Input.Channel > 16 {
		return fmt.Errorf("%w: input channel %d out of range 0-16", ErrInvalid, c.Input.Channel)
	}
	if c.CycleMs < 1 || c.CycleMs > 1000 {
		return fmt.Errorf("%w: cycleMs %d out of range 1-1000", ErrInvalid, c.CycleMs)
	}
	switch c.Injector {
	case inject.BackendXdotool, inject.BackendUinput, inject.BackendDryRun, inject.BackendNone:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalid, inject.ErrUnknownBackend, c.Injector)
	}
	for i, b := range c.Bindings {
		if b.Port == keymap.SeekEnable {
			return fmt.Errorf("%w: binding %d: %s cannot send keys", ErrInvalid, i, b.Port)
		}
		if b.Key == "" {
			return fmt.Errorf("%w: binding %d (%s): empty key", ErrInvalid, i, b.Port)
		}
		if err := b.Source.validate(); err != nil {
			return fmt.Errorf("%w: binding %d (%s): %v", ErrInvalid, i, b.Port, err)
		}
	}
	if c.Seek.Forward == "" || c.Seek.Backward == "" {
		return fmt.Errorf("%w: seek keys must not be empty", ErrInvalid)
	}
	if err := c.Seek.Enable.validate(); err != nil {
		return fmt.Errorf("%w: seek enable: %v", ErrInvalid, err)
	}
	return nil
}

func (s *Source) validate() error {
	if s == nil {
		return nil
	}
	if s.Kind != surface.KindCC && s.Kind != surface.KindNote {
		return fmt.Errorf("unknown source kind %q", s.Kind)
	}
	if s.Number > 127 {
		return fmt.Errorf("number %d out of range 0-127", s.Number)
	}
	if s.Channel != nil && (*s.Channel < 1 || *s.Channel > 16) {
		return fmt.Errorf("channel %d out of range 1-16", *s.Channel)
	}
	return nil
}

// InputChannel returns the 0-based input channel or midi.AnyChannel
func (c *Config) InputChannel() int {
	if c.Input.Channel == 0 {
		return midi.AnyChannel
	}
	return c.Input.Channel - 1
}

// KeyBindings returns the key table bindings in config order
func (c *Config) KeyBindings() []keymap.Binding {
	out := make([]keymap.Binding, 0, len(c.Bindings))
	for _, b := range c.Bindings {
		out = append(out, keymap.NewBinding(b.Port, b.Key))
	}
	return out
}

// Controls returns the MIDI sources of all ports
func (c *Config) Controls() []surface.Control {
	var out []surface.Control
	for _, b := range c.Bindings {
		if b.Source != nil {
			out = append(out, c.control(b.Port, b.Source))
		}
	}
	if c.Seek.Enable != nil {
		out = append(out, c.control(keymap.SeekEnable, c.Seek.Enable))
	}
	return out
}

func (c *Config) control(p keymap.Port, s *Source) surface.Control {
	ch := c.InputChannel()
	if s.Channel != nil {
		ch = *s.Channel - 1
	}
	return surface.Control{Port: p, Kind: s.Kind, Channel: ch, Number: s.Number}
}
