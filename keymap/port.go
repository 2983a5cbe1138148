package keymap

import (
	"errors"
	"fmt"
)

var ErrUnknownPort = errors.New("unknown port")

// Port identifies one control input of the instance
type Port int

const (
	Play Port = iota
	Pause
	Stop
	Record
	Prev
	Next
	Rewind
	Forward
	Repeat
	LowerVolume
	RaiseVolume
	Mute
	Media
	SeekEnable // gates the pitch-bend seek controller

	NumPorts
)

var portNames = [NumPorts]string{
	Play:        "play",
	Pause:       "pause",
	Stop:        "stop",
	Record:      "record",
	Prev:        "prev",
	Next:        "next",
	Rewind:      "rewind",
	Forward:     "forward",
	Repeat:      "repeat",
	LowerVolume: "lower_volume",
	RaiseVolume: "raise_volume",
	Mute:        "mute",
	Media:       "media",
	SeekEnable:  "seek_enable",
}

func (p Port) String() string {
	if p < 0 || p >= NumPorts {
		return fmt.Sprintf("port(%d)", int(p))
	}
	return portNames[p]
}

// ParsePort looks a port up by its symbolic name
func ParsePort(name string) (Port, error) {
	for i, n := range portNames {
		if n == name {
			return Port(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPort, name)
}

// MarshalText lets ports appear by name in config files
func (p Port) MarshalText() ([]byte, error) {
	if p < 0 || p >= NumPorts {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPort, int(p))
	}
	return []byte(portNames[p]), nil
}

func (p *Port) UnmarshalText(text []byte) error {
	parsed, err := ParsePort(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Snapshot holds every control value for one cycle
type Snapshot [NumPorts]float32
