package midi

import (
	"fmt"
	"sync/atomic"

	"midikeys/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var droppedEvents uint64

// SurfaceController reads a control surface and optionally lights its buttons
type SurfaceController struct {
	id       string
	inPort   drivers.In
	outPort  drivers.Out
	send     func(msg gomidi.Message) error
	stopFunc func()
	channel  int
	sink     chan<- Event
}

// NewSurfaceController opens the ports and forwards decoded events to sink.
// channel filters input (AnyChannel for all). outPort may be nil.
func NewSurfaceController(id string, inPort drivers.In, outPort drivers.Out, channel int, sink chan<- Event) (*SurfaceController, error) {
	sc := &SurfaceController{
		id:      id,
		inPort:  inPort,
		outPort: outPort,
		channel: channel,
		sink:    sink,
	}

	// Open output
	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		sc.send = send
	}

	// Open input
	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			sc.receive(msg)
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		sc.stopFunc = stop
	}

	return sc, nil
}

func (sc *SurfaceController) receive(msg gomidi.Message) {
	ev, ok := Decode(msg)
	if !ok {
		return
	}
	if sc.channel != AnyChannel && int(ev.Channel) != sc.channel {
		return
	}
	select {
	case sc.sink <- ev:
	default:
		n := atomic.AddUint64(&droppedEvents, 1)
		debug.LogEvery(100, "midi-in", "event queue full, dropped=%d", n)
	}
}

func (sc *SurfaceController) ID() string {
	return sc.id
}

func (sc *SurfaceController) SetLED(channel, number uint8, on bool) error {
	if sc.send == nil {
		return nil
	}
	var value uint8
	if on {
		value = 127
	}
	return sc.send(gomidi.ControlChange(channel, number, value))
}

func (sc *SurfaceController) Close() error {
	if sc.stopFunc != nil {
		sc.stopFunc()
	}
	return nil
}
