package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWriter(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	if !Enabled() {
		t.Fatal("Expected logging to be enabled")
	}
	Log("seek", "fired %s", "Right")

	line := buf.String()
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "seek       fired Right\n") {
		t.Errorf("Unexpected log line %q", line)
	}
}

func TestLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	Disable()

	Log("seek", "dropped")
	if buf.Len() != 0 {
		t.Errorf("Expected no output after Disable, got %q", buf.String())
	}
	if Enabled() {
		t.Error("Expected logging to be disabled")
	}
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	for i := 0; i < 7; i++ {
		LogEvery(3, "midi", "tick-test")
	}
	if got := strings.Count(buf.String(), "tick-test"); got != 2 {
		t.Errorf("Expected 2 lines, got %d:\n%s", got, buf.String())
	}
}

func TestEnableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "debug.log")
	if err := EnableFile(path); err != nil {
		t.Fatalf("EnableFile: %v", err)
	}
	Log("test", "hello")
	Disable()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Debug logging started") || !strings.Contains(string(data), "hello") {
		t.Errorf("Unexpected log file:\n%s", data)
	}
}
