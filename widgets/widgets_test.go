package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

var white = [3]uint8{255, 255, 255}

func TestRenderMeter(t *testing.T) {
	tests := []struct {
		value    float64
		wantFull int
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 5},
		{0.96, 10},
		{1, 10},
		{3, 10},
	}
	for _, tt := range tests {
		out := RenderMeter(tt.value, 10, '#', '.', white)
		if got := strings.Count(out, "#"); got != tt.wantFull {
			t.Errorf("RenderMeter(%v): expected %d full cells, got %d", tt.value, tt.wantFull, got)
		}
		if w := lipgloss.Width(out); w != 10 {
			t.Errorf("RenderMeter(%v): expected width 10, got %d", tt.value, w)
		}
	}

	if out := RenderMeter(1, 0, '#', '.', white); out != "" {
		t.Errorf("Expected empty meter for zero width, got %q", out)
	}
}

func TestRenderBend(t *testing.T) {
	tests := []struct {
		name        string
		value       uint16
		left, right int
	}{
		{"center", 8192, 0, 0},
		{"full backward", 0, 4, 0},
		{"half backward", 4096, 2, 0},
		{"full forward", 16383, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderBend(tt.value, 8, '#', '.', '|', white)
			if w := lipgloss.Width(out); w != 9 {
				t.Errorf("Expected width 9, got %d", w)
			}
			i := strings.Index(out, "|")
			if i < 0 {
				t.Fatalf("Missing center marker in %q", out)
			}
			if got := strings.Count(out[:i], "#"); got != tt.left {
				t.Errorf("Expected %d left cells, got %d", tt.left, got)
			}
			if got := strings.Count(out[i:], "#"); got != tt.right {
				t.Errorf("Expected %d right cells, got %d", tt.right, got)
			}
		})
	}

	if out := RenderBend(0, 1, '#', '.', '|', white); out != "|" {
		t.Errorf("Expected only the center marker, got %q", out)
	}
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{
		{Title: "Seek", Keys: []KeyBinding{{Key: "s", Desc: "toggle"}}},
		{Keys: []KeyBinding{{Key: "q", Desc: "quit"}}},
	})
	want := "Seek\n  s            toggle\n  q            quit"
	if out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}

func TestRGBToHex(t *testing.T) {
	if got := rgbToHex([3]uint8{255, 8, 171}); got != "#ff08ab" {
		t.Errorf("Expected #ff08ab, got %s", got)
	}
}
