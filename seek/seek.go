// Package seek turns a held pitch-bend wheel into repeated seek key presses.
//
// Above center the controller sends the forward key, below center the
// backward key. The farther the wheel is from center, the shorter the delay
// between presses: from MaxDelay*8192/16383 just off center down to zero at
// either extreme. Exactly at center nothing is sent.
package seek

import (
	"time"

	"midikeys/inject"
)

const (
	Center   uint16 = 8192
	MaxValue uint16 = 16383

	// MaxDelay is the delay for a delay-input of MaxValue
	MaxDelay = 500 * time.Millisecond
)

// Direction of the wheel relative to center
type Direction int

const (
	Idle Direction = iota
	Backward
	Forward
)

func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return "idle"
	}
}

// Bend is the pitch-bend reading of one cycle, if any arrived
type Bend struct {
	Value uint16
	OK    bool
}

// Controller holds the last known bend and when it last fired
type Controller struct {
	forward  string
	backward string
	inj      inject.Injector

	value    uint16
	lastFire time.Duration
	fired    bool
}

func New(forward, backward string, inj inject.Injector) *Controller {
	return &Controller{
		forward:  forward,
		backward: backward,
		inj:      inj,
		value:    Center,
	}
}

// Update runs one cycle. Without a new bend the previous value is kept.
// now must come from a monotonic clock.
func (c *Controller) Update(msg Bend, now time.Duration) {
	if msg.OK {
		c.value = clamp(msg.Value)
	}

	dir := DirectionOf(c.value)
	if dir == Idle {
		return
	}

	if c.fired && now-c.lastFire <= Delay(c.value) {
		return
	}

	key := c.forward
	if dir == Backward {
		key = c.backward
	}
	_ = c.inj.SendKeysequence(key)
	c.lastFire = now
	c.fired = true
}

// DirectionOf classifies a 14-bit bend value
func DirectionOf(value uint16) Direction {
	switch {
	case value > Center:
		return Forward
	case value < Center:
		return Backward
	default:
		return Idle
	}
}

// Delay is the minimum interval between seek presses for a bend value.
// The delay input is the distance from the nearer extreme, so a fully
// deflected wheel fires every cycle.
func Delay(value uint16) time.Duration {
	value = clamp(value)

	var in uint16
	switch DirectionOf(value) {
	case Forward:
		in = MaxValue - value
	case Backward:
		in = value
	default:
		return 0
	}
	return MaxDelay * time.Duration(in) / time.Duration(MaxValue)
}

func clamp(v uint16) uint16 {
	if v > MaxValue {
		return MaxValue
	}
	return v
}

func (c *Controller) Value() uint16 {
	return c.value
}

// LastFire returns the time of the last seek press and whether one happened
func (c *Controller) LastFire() (time.Duration, bool) {
	return c.lastFire, c.fired
}

func (c *Controller) Direction() Direction {
	return DirectionOf(c.value)
}
