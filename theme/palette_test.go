package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseGPL(t *testing.T) {
	src := `GIMP Palette
Name: test
Columns: 2
#
  0   0   0	black
255 128  10	orange
not a color
`
	p, err := ParseGPL(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseGPL: %v", err)
	}
	if p.Name != "test" {
		t.Errorf("Expected name test, got %q", p.Name)
	}
	want := []RGB{{0, 0, 0}, {255, 128, 10}}
	if len(p.Colors) != len(want) {
		t.Fatalf("Expected %d colors, got %d", len(want), len(p.Colors))
	}
	for i := range want {
		if p.Colors[i] != want[i] {
			t.Errorf("Color %d: expected %v, got %v", i, want[i], p.Colors[i])
		}
	}
}

func TestParseGPLEmpty(t *testing.T) {
	if _, err := ParseGPL(strings.NewReader("GIMP Palette\nName: empty\n")); err == nil {
		t.Error("Expected error for a palette without colors")
	}
}

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.gpl")
	if err := os.WriteFile(path, []byte("GIMP Palette\n10 20 30\n40 50 60\n"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadGPL(path)
	if err != nil {
		t.Fatalf("LoadGPL: %v", err)
	}
	if len(p.Colors) != 2 {
		t.Errorf("Expected 2 colors, got %d", len(p.Colors))
	}

	if _, err := LoadGPL(filepath.Join(t.TempDir(), "missing.gpl")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if p.Name != "plasma" || len(p.Colors) != 9 {
		t.Errorf("Unexpected built-in palette %q with %d colors", p.Name, len(p.Colors))
	}
}

func TestLookup(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}

	tests := []struct {
		norm float64
		want RGB
	}{
		{-1, RGB{0, 0, 0}},
		{0, RGB{0, 0, 0}},
		{0.5, RGB{100, 50, 25}},
		{1, RGB{200, 100, 50}},
		{2, RGB{200, 100, 50}},
	}
	for _, tt := range tests {
		if got := p.Lookup(tt.norm); got != tt.want {
			t.Errorf("Lookup(%v): expected %v, got %v", tt.norm, tt.want, got)
		}
	}
}
