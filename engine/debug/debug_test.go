package debug

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func capture(t *testing.T, lvl int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	Init(lvl)
	t.Cleanup(func() {
		Init(LevelOff)
		SetOutput(nil)
	})
	return &buf
}

func TestLevels_Filter(t *testing.T) {
	buf := capture(t, LevelEvent)

	Info("backend %s", "glfw")
	Event("dropped %d", 1)
	Verbose("hidden")
	Trace("hidden")

	out := buf.String()
	if !strings.Contains(out, "[INFO] backend glfw") {
		t.Errorf("missing info line: %q", out)
	}
	if !strings.Contains(out, "[EVENT] dropped 1") {
		t.Errorf("missing event line: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("verbose output leaked at event level: %q", out)
	}
}

func TestLevels_Off(t *testing.T) {
	buf := capture(t, LevelOff)
	Info("x")
	Error(errors.New("boom"))
	Section("s")
	if buf.Len() != 0 {
		t.Errorf("output at level off: %q", buf.String())
	}
	if IsEnabled(LevelInfo) {
		t.Errorf("IsEnabled(info) at level off")
	}
}

func TestError(t *testing.T) {
	buf := capture(t, LevelInfo)
	Error(nil)
	Error(errors.New("boom"))
	if got := strings.Count(buf.String(), "[ERROR]"); got != 1 {
		t.Errorf("error lines = %d, want 1", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", LevelOff, false},
		{"info", LevelInfo, false},
		{" Verbose ", LevelVerbose, false},
		{"4", LevelTrace, false},
		{"9", LevelOff, true},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = (%d, %v), want (%d, err=%v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
