package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderPad renders a single colored symbol
func RenderPad(color [3]uint8, symbol rune) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render(string(symbol))
}

// RenderMeter renders a horizontal bar for a value in [0, 1]
func RenderMeter(value float64, width int, full, empty rune, color [3]uint8) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	n := int(value*float64(width) + 0.5)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render(strings.Repeat(string(full), n)) + strings.Repeat(string(empty), width-n)
}

// RenderBend renders a centered meter for a 14-bit pitch-bend value.
// The left half fills toward 0, the right half toward 16383.
func RenderBend(value uint16, width int, full, empty, center rune, color [3]uint8) string {
	half := width / 2
	if half <= 0 {
		return string(center)
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))

	left := strings.Repeat(string(empty), half)
	right := strings.Repeat(string(empty), half)
	switch {
	case value < 8192:
		n := int(float64(8192-value)/8192*float64(half) + 0.5)
		left = strings.Repeat(string(empty), half-n) + style.Render(strings.Repeat(string(full), n))
	case value > 8192:
		n := int(float64(value-8192)/8191*float64(half) + 0.5)
		right = style.Render(strings.Repeat(string(full), n)) + strings.Repeat(string(empty), half-n)
	}
	return left + string(center) + right
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
