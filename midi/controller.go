package midi

// Controller is a connected MIDI surface
type Controller interface {
	ID() string

	// SetLED drives a button light through a CC message.
	// Surfaces without an output port ignore it.
	SetLED(channel, number uint8, on bool) error

	// Lifecycle
	Close() error
}

// AnyChannel disables channel filtering on input
const AnyChannel = -1
