package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/debug"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panoview.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_EmptyBackendDefersToBuild(t *testing.T) {
	cfg, err := Load(writeConfig(t, "window:\n  backend: \"\"\n  title: Pano\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Backend != BackendDefault {
		t.Errorf("backend = %q, want empty", cfg.Window.Backend)
	}

	shipped, err := Load(filepath.Join("..", "..", "configs", "panoview.yaml"))
	if err != nil {
		t.Fatalf("Load shipped config: %v", err)
	}
	if shipped.Window.Backend != BackendDefault {
		t.Errorf("shipped backend = %q, want empty so build tags decide", shipped.Window.Backend)
	}
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Window.Backend != BackendDefault || cfg.View.Radius != 500 || cfg.View.Fov != 75 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.View.MinFov != 10 || cfg.View.MaxFov != 160 {
		t.Errorf("fov bounds = [%v, %v], want [10, 160]", cfg.View.MinFov, cfg.View.MaxFov)
	}
	if !cfg.SensorEnabled() || cfg.Mode() != camera.ModeLookAt || cfg.DebugLevel() != debug.LevelOff {
		t.Errorf("sensor = %v mode = %v level = %v", cfg.SensorEnabled(), cfg.Mode(), cfg.DebugLevel())
	}
	if cfg.FrameInterval() != time.Second/60 {
		t.Errorf("FrameInterval = %v", cfg.FrameInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
window:
  title: "Courtyard"
  width: 800
  height: 600
  backend: terminal
view:
  radius: 100
  fov: 60
  min_fov: 20
  max_fov: 120
  lng_deg: 90
  lat_deg: -45
  far: 150
control:
  mode: quaternion
  mouse_scale: 40
  wheel_scale: 0.1
  sensor: false
  tick_rate: 30
debug:
  level: verbose
  profiling: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Title != "Courtyard" || cfg.Window.Width != 800 || cfg.Window.Backend != BackendTerminal {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Mode() != camera.ModeQuaternion || cfg.SensorEnabled() {
		t.Errorf("mode = %v sensor = %v", cfg.Mode(), cfg.SensorEnabled())
	}
	if cfg.DebugLevel() != debug.LevelVerbose || !cfg.Debug.Profiling {
		t.Errorf("debug = %+v", cfg.Debug)
	}
	if cfg.Control.MouseScale != 40 || cfg.Control.WheelScale != 0.1 {
		t.Errorf("control = %+v", cfg.Control)
	}
	if d := cfg.LngRad() - 1.5707963267948966; d > 1e-12 || d < -1e-12 {
		t.Errorf("LngRad = %v", cfg.LngRad())
	}
	if cfg.LatRad() >= 0 {
		t.Errorf("LatRad = %v, want negative", cfg.LatRad())
	}
	if cfg.FrameInterval() != time.Second/30 {
		t.Errorf("FrameInterval = %v", cfg.FrameInterval())
	}
}

func TestLoad_FarDefaultsPastRadius(t *testing.T) {
	path := writeConfig(t, "view:\n  radius: 2000\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.View.Far <= cfg.View.Radius {
		t.Errorf("far = %v, radius = %v", cfg.View.Far, cfg.View.Radius)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"backend", "window:\n  backend: sdl\n", "window.backend"},
		{"negative radius", "view:\n  radius: -1\n", "view.radius"},
		{"inverted fov bounds", "view:\n  min_fov: 90\n  max_fov: 30\n", "fov bounds"},
		{"fov bound too wide", "view:\n  max_fov: 180\n", "fov bounds"},
		{"far inside sphere", "view:\n  radius: 500\n  far: 400\n", "view.far"},
		{"near past far", "view:\n  near: 10\n  far: 5\n", "clipping planes"},
		{"mode", "control:\n  mode: orbit\n", "control.mode"},
		{"mouse scale", "control:\n  mouse_scale: -2\n", "control.mouse_scale"},
		{"tick rate", "control:\n  tick_rate: -1\n", "control.tick_rate"},
		{"debug level", "debug:\n  level: loud\n", "debug.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MultipleErrorsJoined(t *testing.T) {
	_, err := Load(writeConfig(t, "window:\n  backend: sdl\ncontrol:\n  mode: orbit\n"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "window.backend") || !strings.Contains(err.Error(), "control.mode") {
		t.Errorf("error = %v, want both problems reported", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "window: [")); err == nil {
		t.Error("expected error for malformed yaml, got nil")
	}
}
