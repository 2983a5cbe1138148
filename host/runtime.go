// Package host drives an engine.Instance at a fixed control rate, the way a
// plugin host calls its run entry point once per block.
package host

import (
	"context"
	"sync"
	"time"

	"midikeys/debug"
	"midikeys/engine"
	"midikeys/inject"
	"midikeys/keymap"
	"midikeys/midi"
	"midikeys/seek"
	"midikeys/surface"
)

// Clock returns monotonic time since some fixed origin
type Clock interface {
	Now() time.Duration
}

type monotonicClock struct {
	start time.Time
}

// NewClock returns a Clock backed by Go's monotonic clock reading
func NewClock() Clock {
	return monotonicClock{start: time.Now()}
}

func (c monotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// DefaultPeriod is the cycle length when Options.Period is zero
const DefaultPeriod = 10 * time.Millisecond

// maxEventsPerCycle bounds how many MIDI events one cycle drains
const maxEventsPerCycle = 256

// Status refresh rate for the monitor
const statusFPS = 30

// LED feedback refresh rate
const ledFPS = 30

type Options struct {
	Period time.Duration
	Clock  Clock
	Recent *inject.Recorder // source of Status.Recent, may be nil

	// Feedback lights mapped CC buttons while their port is high
	Feedback bool

	// BendChannel limits pitch bend to one channel (1-16, 0 = any)
	BendChannel int
}

type requestKind int

const (
	requestPulse requestKind = iota
	requestToggle
)

type request struct {
	kind requestKind
	port keymap.Port
}

// Runtime owns the instance and the control surface; only its own
// goroutine touches them.
type Runtime struct {
	inst     *engine.Instance
	surface  *surface.Surface
	events   <-chan midi.Event
	clock    Clock
	period   time.Duration
	recent   *inject.Recorder
	feedback bool
	bendCh   int // 0-based, midi.AnyChannel for all

	cycle    engine.Cycle
	buf      []midi.Event
	requests chan request
	held     [keymap.NumPorts]bool // pulsed ports to release next cycle
	deferred [keymap.NumPorts]bool // pulses waiting for a low cycle

	cycles     uint64
	lastStatus time.Duration

	// LED feedback, shared with ledLoop
	mu         sync.Mutex
	controller midi.Controller
	device     string
	leds       [keymap.NumPorts]bool
	prevLEDs   map[keymap.Port]bool
	ledDirty   bool

	// Notify monitor of updates (latest wins)
	UpdateChan chan Status
}

func New(inst *engine.Instance, surf *surface.Surface, events <-chan midi.Event, opts Options) *Runtime {
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}
	if opts.Clock == nil {
		opts.Clock = NewClock()
	}
	bendCh := midi.AnyChannel
	if opts.BendChannel > 0 {
		bendCh = opts.BendChannel - 1
	}
	return &Runtime{
		inst:       inst,
		surface:    surf,
		events:     events,
		clock:      opts.Clock,
		period:     opts.Period,
		recent:     opts.Recent,
		feedback:   opts.Feedback,
		bendCh:     bendCh,
		buf:        make([]midi.Event, 0, maxEventsPerCycle),
		requests:   make(chan request, 16),
		prevLEDs:   make(map[keymap.Port]bool),
		UpdateChan: make(chan Status, 1),
	}
}

// Run steps the instance every period until ctx is done (blocking - run in goroutine)
func (r *Runtime) Run(ctx context.Context) {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	ledCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go r.ledLoop(ledCtx)

	debug.Log("runtime", "started, period=%s", r.period)
	for {
		select {
		case <-ctx.Done():
			debug.Log("runtime", "stopped after %d cycles", r.cycles)
			return
		case <-ticker.C:
			r.Step()
		}
	}
}

// Step runs exactly one cycle
func (r *Runtime) Step() {
	// Pulses from the monitor last one cycle. A port released this cycle
	// must be scanned low once before it can be pulsed again.
	var released [keymap.NumPorts]bool
	for p, held := range r.held {
		if held {
			r.surface.Set(keymap.Port(p), 0)
			r.held[p] = false
			released[p] = true
		}
	}
	for p, wait := range r.deferred {
		if wait && !released[p] {
			r.deferred[p] = false
			r.pulse(keymap.Port(p))
		}
	}
	r.handleRequests(&released)

	events := r.buf[:0]
drain:
	for len(events) < cap(events) {
		select {
		case e := <-r.events:
			r.surface.Apply(e)
			if e.Type == midi.PitchBend && r.bendCh != midi.AnyChannel && int(e.Channel) != r.bendCh {
				continue
			}
			events = append(events, e)
		default:
			break drain
		}
	}

	r.cycle.Controls = r.surface.Snapshot()
	r.cycle.Events = events
	r.cycle.Now = r.clock.Now()
	r.inst.Run(&r.cycle)
	r.cycle.Events = nil
	r.cycles++

	r.updateLEDs()

	if r.cycle.Now-r.lastStatus >= time.Second/statusFPS || r.cycles == 1 {
		r.lastStatus = r.cycle.Now
		r.publish()
	}
}

func (r *Runtime) pulse(p keymap.Port) {
	r.surface.Set(p, 1)
	r.held[p] = true
}

func (r *Runtime) handleRequests(released *[keymap.NumPorts]bool) {
	for {
		select {
		case req := <-r.requests:
			switch req.kind {
			case requestPulse:
				if released[req.port] || r.held[req.port] {
					r.deferred[req.port] = true
				} else {
					r.pulse(req.port)
				}
			case requestToggle:
				if r.surface.Value(req.port) > keymap.Threshold {
					r.surface.Set(req.port, 0)
				} else {
					r.surface.Set(req.port, 1)
				}
			}
		default:
			return
		}
	}
}

// Press holds a port high for one cycle (safe from any goroutine)
func (r *Runtime) Press(p keymap.Port) {
	r.send(request{kind: requestPulse, port: p})
}

// Toggle flips a port between 0 and 1 (safe from any goroutine)
func (r *Runtime) Toggle(p keymap.Port) {
	r.send(request{kind: requestToggle, port: p})
}

func (r *Runtime) send(req request) {
	if req.port < 0 || req.port >= keymap.NumPorts {
		return
	}
	select {
	case r.requests <- req:
	default:
	}
}

// SetController attaches the surface used for LED feedback (nil detaches)
func (r *Runtime) SetController(c midi.Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	debug.Log("ctrl", "SetController called, resetting diff state")
	r.controller = c
	r.device = ""
	if c != nil {
		r.device = c.ID()
		r.prevLEDs = make(map[keymap.Port]bool) // diff will resend everything
		r.ledDirty = true
	}
}

func (r *Runtime) updateLEDs() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for p := keymap.Port(0); p < keymap.NumPorts; p++ {
		on := r.cycle.Controls[p] > keymap.Threshold
		if r.leds[p] != on {
			r.leds[p] = on
			r.ledDirty = true
		}
	}
}

// ledLoop runs at fixed FPS and flushes LED updates
func (r *Runtime) ledLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / ledFPS)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.flushLEDs()
		}
	}
}

// flushLEDs sends only changed port lights to the controller
func (r *Runtime) flushLEDs() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.feedback || !r.ledDirty || r.controller == nil {
		return
	}
	r.ledDirty = false

	sent := 0
	for p := keymap.Port(0); p < keymap.NumPorts; p++ {
		on := r.leds[p]
		if prev, ok := r.prevLEDs[p]; ok && prev == on {
			continue
		}
		for _, c := range r.surface.Controls(p) {
			if c.Kind != surface.KindCC {
				continue
			}
			ch := uint8(0)
			if c.Channel != midi.AnyChannel {
				ch = uint8(c.Channel)
			}
			if err := r.controller.SetLED(ch, c.Number, on); err != nil {
				debug.Log("led", "set %s: %v", p, err)
			}
			sent++
		}
		r.prevLEDs[p] = on
	}
	if sent > 0 {
		debug.Log("led", "flushLEDs: sent=%d", sent)
	}
}

// BindingStatus is one row of the monitor
type BindingStatus struct {
	Port    keymap.Port
	Key     string
	Value   float32
	Latched bool
}

// Status is an immutable view of the runtime for the monitor
type Status struct {
	Cycles      uint64
	Now         time.Duration
	Device      string
	Bindings    []BindingStatus
	SeekEnabled bool
	Bend        uint16
	Direction   seek.Direction
	Delay       time.Duration
	Recent      []string
}

func (r *Runtime) status() Status {
	keys := r.inst.Keys()
	sk := r.inst.Seek()

	st := Status{
		Cycles:      r.cycles,
		Now:         r.cycle.Now,
		Bindings:    make([]BindingStatus, keys.Len()),
		SeekEnabled: r.cycle.Controls[keymap.SeekEnable] > keymap.Threshold,
		Bend:        sk.Value(),
		Direction:   sk.Direction(),
		Delay:       seek.Delay(sk.Value()),
	}
	for i := range st.Bindings {
		b := keys.Binding(i)
		st.Bindings[i] = BindingStatus{
			Port:    b.Source,
			Key:     b.Keysequence,
			Value:   r.cycle.Controls[b.Source],
			Latched: b.Latched(),
		}
	}
	if r.recent != nil {
		st.Recent = r.recent.Keys()
	}

	r.mu.Lock()
	st.Device = r.device
	r.mu.Unlock()
	return st
}

func (r *Runtime) publish() {
	st := r.status()
	select {
	case r.UpdateChan <- st:
	default:
		// drop the stale status, keep the newest
		select {
		case <-r.UpdateChan:
		default:
		}
		select {
		case r.UpdateChan <- st:
		default:
		}
	}
}

// Status returns the current view; only call from the Run goroutine or when Run is not active
func (r *Runtime) Status() Status {
	return r.status()
}
