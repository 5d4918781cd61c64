package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/debug"
)

// Backend names accepted in window.backend.
// BackendDefault leaves the choice to the binary, which picks the backend its build tags make the default.
const (
	BackendDefault  = ""
	BackendGLFW     = "glfw"
	BackendEbiten   = "ebiten"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

// WindowConfig describes the viewer window.
type WindowConfig struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`   // pixels (cells for the terminal backend)
	Height  int    `yaml:"height"`  // pixels (cells for the terminal backend)
	Backend string `yaml:"backend"` // "glfw", "ebiten", "terminal", "headless" or empty for the build default
}

// ViewConfig describes the panorama sphere and the initial view.
type ViewConfig struct {
	Radius float64 `yaml:"radius"`  // panorama sphere radius
	Fov    float64 `yaml:"fov"`     // initial field of view (degrees)
	MinFov float64 `yaml:"min_fov"` // field of view lower bound (degrees)
	MaxFov float64 `yaml:"max_fov"` // field of view upper bound (degrees)
	LngDeg float64 `yaml:"lng_deg"` // initial longitude (degrees)
	LatDeg float64 `yaml:"lat_deg"` // initial latitude (degrees)
	Near   float64 `yaml:"near"`    // near clipping plane
	Far    float64 `yaml:"far"`     // far clipping plane, must exceed radius
}

// ControlConfig tunes input handling.
type ControlConfig struct {
	Mode       string  `yaml:"mode"`        // "lookat" or "quaternion"
	MouseScale float64 `yaml:"mouse_scale"` // multiplier for raw mouse movement
	WheelScale float64 `yaml:"wheel_scale"` // degrees of fov per wheel deltaY unit
	Sensor     *bool   `yaml:"sensor"`      // device orientation input; defaults to true
	TickRate   float64 `yaml:"tick_rate"`   // frames per second
}

// DebugConfig controls logging and profiling.
type DebugConfig struct {
	Level     string `yaml:"level"`     // off, info, event, verbose, trace (or 0-4)
	Profiling bool   `yaml:"profiling"` // log frame statistics every second
}

// Config aggregates all viewer configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	View    ViewConfig    `yaml:"view"`
	Control ControlConfig `yaml:"control"`
	Debug   DebugConfig   `yaml:"debug"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML file and returns the configuration with defaults filled in.
// An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, fills in defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Window.Title == "" {
		c.Window.Title = "oxy-pano"
	}
	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 720
	}
	if c.View.Radius == 0 {
		c.View.Radius = 500 // sphere radius of the stock viewer
	}
	if c.View.MinFov == 0 {
		c.View.MinFov = 10
	}
	if c.View.MaxFov == 0 {
		c.View.MaxFov = 160
	}
	if c.View.Fov == 0 {
		c.View.Fov = 75
	}
	if c.View.Near == 0 {
		c.View.Near = 0.1
	}
	if c.View.Far == 0 {
		c.View.Far = 2 * c.View.Radius
	}

	if c.Control.Mode == "" {
		c.Control.Mode = camera.ModeLookAt.String()
	}
	if c.Control.MouseScale == 0 {
		c.Control.MouseScale = 1
	}
	if c.Control.WheelScale == 0 {
		c.Control.WheelScale = 0.05
	}
	if c.Control.Sensor == nil {
		enabled := true
		c.Control.Sensor = &enabled
	}
	if c.Control.TickRate == 0 {
		c.Control.TickRate = 60
	}

	if c.Debug.Level == "" {
		c.Debug.Level = "off"
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error

	switch c.Window.Backend {
	case BackendDefault, BackendGLFW, BackendEbiten, BackendTerminal, BackendHeadless:
	default:
		errs = append(errs, fmt.Errorf("window.backend must be empty or one of glfw, ebiten, terminal, headless, got %q", c.Window.Backend))
	}

	if c.View.Radius <= 0 {
		errs = append(errs, fmt.Errorf("view.radius must be > 0, got %.2f", c.View.Radius))
	}
	if c.View.MinFov <= 0 || c.View.MinFov > c.View.MaxFov || c.View.MaxFov >= 180 {
		errs = append(errs, fmt.Errorf("view fov bounds must satisfy 0 < min_fov <= max_fov < 180, got [%.2f, %.2f]", c.View.MinFov, c.View.MaxFov))
	}
	if c.View.Fov <= 0 {
		errs = append(errs, fmt.Errorf("view.fov must be > 0, got %.2f", c.View.Fov))
	}
	if c.View.Near <= 0 || c.View.Far <= c.View.Near {
		errs = append(errs, fmt.Errorf("view clipping planes must satisfy 0 < near < far, got near=%.2f far=%.2f", c.View.Near, c.View.Far))
	} else if c.View.Far <= c.View.Radius {
		errs = append(errs, fmt.Errorf("view.far (%.2f) must exceed view.radius (%.2f)", c.View.Far, c.View.Radius))
	}

	if _, err := camera.ParseMode(c.Control.Mode); err != nil {
		errs = append(errs, fmt.Errorf("control.mode: %w", err))
	}
	if c.Control.MouseScale <= 0 {
		errs = append(errs, fmt.Errorf("control.mouse_scale must be > 0, got %.2f", c.Control.MouseScale))
	}
	if c.Control.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("control.tick_rate must be > 0, got %.2f", c.Control.TickRate))
	}

	if _, err := debug.ParseLevel(c.Debug.Level); err != nil {
		errs = append(errs, fmt.Errorf("debug.level: %w", err))
	}

	return errors.Join(errs...)
}

// Mode returns the parsed camera mode.
func (c *Config) Mode() camera.Mode {
	m, _ := camera.ParseMode(c.Control.Mode)
	return m
}

// DebugLevel returns the parsed debug level.
func (c *Config) DebugLevel() int {
	l, _ := debug.ParseLevel(c.Debug.Level)
	return l
}

// SensorEnabled reports whether device orientation input is on.
func (c *Config) SensorEnabled() bool {
	return c.Control.Sensor == nil || *c.Control.Sensor
}

// LngRad returns the initial longitude in radians.
func (c *Config) LngRad() float64 {
	return c.View.LngDeg * math.Pi / 180
}

// LatRad returns the initial latitude in radians.
func (c *Config) LatRad() float64 {
	return c.View.LatDeg * math.Pi / 180
}

// FrameInterval returns the duration of one frame at the configured tick rate.
func (c *Config) FrameInterval() time.Duration {
	if c.Control.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Duration(float64(time.Second) / c.Control.TickRate)
}
