package inject

import "sort"

// Linux input event codes (input-event-codes.h) for the keys midikeys
// knows how to inject through uinput.
var keyCodes = map[string]uint16{
	"XF86AudioPlay":        164, // KEY_PLAYPAUSE
	"XF86AudioPause":       201, // KEY_PAUSECD
	"XF86AudioStop":        166, // KEY_STOPCD
	"XF86AudioRecord":      167, // KEY_RECORD
	"XF86AudioPrev":        165, // KEY_PREVIOUSSONG
	"XF86AudioNext":        163, // KEY_NEXTSONG
	"XF86AudioRewind":      168, // KEY_REWIND
	"XF86AudioForward":     208, // KEY_FASTFORWARD
	"XF86AudioRepeat":      439, // KEY_MEDIA_REPEAT
	"XF86AudioLowerVolume": 114, // KEY_VOLUMEDOWN
	"XF86AudioRaiseVolume": 115, // KEY_VOLUMEUP
	"XF86AudioMute":        113, // KEY_MUTE
	"XF86AudioMedia":       226, // KEY_MEDIA
	"XF86AudioMicMute":     248, // KEY_MICMUTE

	"Left":   105,
	"Right":  106,
	"Up":     103,
	"Down":   108,
	"Home":   102,
	"End":    107,
	"Prior":  104, // page up
	"Next":   109, // page down
	"space":  57,
	"Return": 28,
	"Escape": 1,
	"comma":  51,
	"period": 52,
	"j":      36,
	"k":      37,
	"l":      38,
}

// KeyCode returns the evdev code for a symbolic key name
func KeyCode(name string) (uint16, bool) {
	code, ok := keyCodes[name]
	return code, ok
}

// KeyNames returns all names KeyCode accepts, sorted
func KeyNames() []string {
	names := make([]string, 0, len(keyCodes))
	for name := range keyCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
