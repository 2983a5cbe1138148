//go:build linux

package inject

import (
	"fmt"
	"sync"

	"github.com/holoplot/go-evdev"
)

// Uinput injects keys through a virtual keyboard created on /dev/uinput.
// It works under X11 and Wayland alike but needs write access to the device.
type Uinput struct {
	mu  sync.Mutex
	dev *evdev.InputDevice
}

func NewUinput(name string) (*Uinput, error) {
	codes := make([]evdev.EvCode, 0, len(keyCodes))
	for _, c := range keyCodes {
		codes = append(codes, evdev.EvCode(c))
	}

	dev, err := evdev.CreateDevice(name, evdev.InputID{
		BusType: 0x03, // BUS_USB
		Vendor:  0x1209,
		Product: 0x4d4b,
		Version: 1,
	}, map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: codes,
	})
	if err != nil {
		return nil, err
	}
	return &Uinput{dev: dev}, nil
}

func (u *Uinput) SendKeysequence(name string) error {
	code, ok := KeyCode(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.dev == nil {
		return fmt.Errorf("uinput device closed")
	}
	if err := u.emit(evdev.EvCode(code), 1); err != nil {
		return err
	}
	return u.emit(evdev.EvCode(code), 0)
}

func (u *Uinput) emit(code evdev.EvCode, value int32) error {
	if err := u.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}); err != nil {
		return err
	}
	return u.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0})
}

func (u *Uinput) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.dev == nil {
		return nil
	}
	err := u.dev.Close()
	u.dev = nil
	return err
}
