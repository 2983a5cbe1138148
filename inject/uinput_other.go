//go:build !linux

package inject

import "errors"

// Uinput is only available on Linux
type Uinput struct{}

func NewUinput(name string) (*Uinput, error) {
	return nil, errors.New("uinput is only supported on linux")
}

func (u *Uinput) SendKeysequence(name string) error {
	return errors.New("uinput is only supported on linux")
}

func (u *Uinput) Close() error { return nil }
