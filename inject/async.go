package inject

import (
	"errors"
	"sync"
	"sync/atomic"

	"midikeys/debug"
)

var (
	ErrQueueFull = errors.New("injector queue full")
	ErrClosed    = errors.New("injector closed")
)

// DefaultQueueSize is the Async queue length when none is given
const DefaultQueueSize = 64

var droppedKeys uint64

// Async hands keys to a worker goroutine so a slow backend (xdotool spawns a
// process per key) never blocks the caller. Keys are sent in order and
// dropped when the queue is full.
type Async struct {
	next  Injector
	queue chan string
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewAsync(next Injector, size int) *Async {
	if size <= 0 {
		size = DefaultQueueSize
	}
	a := &Async{
		next:  next,
		queue: make(chan string, size),
		done:  make(chan struct{}),
	}
	go a.loop()
	return a
}

func (a *Async) loop() {
	defer close(a.done)
	for name := range a.queue {
		_ = a.next.SendKeysequence(name)
	}
}

// SendKeysequence queues name and returns without waiting for delivery
func (a *Async) SendKeysequence(name string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}
	select {
	case a.queue <- name:
		return nil
	default:
		n := atomic.AddUint64(&droppedKeys, 1)
		debug.LogEvery(100, "inject", "queue full, dropped=%d", n)
		return ErrQueueFull
	}
}

// Close stops accepting keys and waits until the queued ones are sent
func (a *Async) Close() error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()
	<-a.done
	return nil
}
