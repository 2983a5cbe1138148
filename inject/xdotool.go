package inject

import (
	"fmt"
	"os/exec"
)

// Xdotool injects keys through the xdotool command (X11, XWayland).
// Key names are passed through unchanged as keysyms.
type Xdotool struct {
	Path string

	run func(path string, args ...string) error
}

func NewXdotool() *Xdotool {
	return &Xdotool{Path: "xdotool", run: runCommand}
}

func (x *Xdotool) SendKeysequence(name string) error {
	if name == "" {
		return ErrUnknownKey
	}
	run := x.run
	if run == nil {
		run = runCommand
	}
	if err := run(x.Path, "key", "--clearmodifiers", name); err != nil {
		return fmt.Errorf("xdotool key %s: %w", name, err)
	}
	return nil
}

func runCommand(path string, args ...string) error {
	return exec.Command(path, args...).Run()
}
