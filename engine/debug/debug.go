package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Debug levels
const (
	LevelOff     = 0 // No output
	LevelInfo    = 1 // Session info (backend, mode, profiler stats)
	LevelEvent   = 2 // Input events (dropped events, orientation changes, resizes)
	LevelVerbose = 3 // Per-frame details (angles, poses)
	LevelTrace   = 4 // Raw backend callbacks
)

var levelNames = map[string]int{
	"off":     LevelOff,
	"info":    LevelInfo,
	"event":   LevelEvent,
	"verbose": LevelVerbose,
	"trace":   LevelTrace,
}

var (
	level  int
	output io.Writer = os.Stdout
	logger *log.Logger
)

// Init initializes the debug system with a level (0-4).
// 0 = no output
// 1 = session info
// 2 = input events
// 3 = per-frame details
// 4 = raw backend callbacks
func Init(debugLevel int) {
	level = debugLevel
	logger = nil
	if level > LevelOff {
		logger = log.New(output, "[oxy-pano] ", log.LstdFlags|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output. Takes effect immediately if logging is enabled.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	output = w
	if logger != nil {
		logger.SetOutput(w)
	}
}

// ParseLevel converts a level name ("off", "info", "event", "verbose", "trace") or digit to a level.
func ParseLevel(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	if l, ok := levelNames[s]; ok {
		return l, nil
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '4' {
		return int(s[0] - '0'), nil
	}
	return LevelOff, fmt.Errorf("unknown debug level %q", s)
}

// Level returns the current debug level.
func Level() int {
	return level
}

// IsEnabled returns true if debug level is >= the requested level.
func IsEnabled(minLevel int) bool {
	return level >= minLevel
}

// Info prints a level 1 message.
func Info(format string, args ...any) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] "+format, args...)
	}
}

// Event prints a level 2 message.
func Event(format string, args ...any) {
	if level >= LevelEvent && logger != nil {
		logger.Printf("[EVENT] "+format, args...)
	}
}

// Verbose prints a level 3 message.
func Verbose(format string, args ...any) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] "+format, args...)
	}
}

// Section prints a section separator (level 1).
func Section(name string) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		logger.Printf("  %s", name)
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}
}

// Value prints a named value (level 1).
func Value(name string, value any) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO]   %s = %v", name, value)
	}
}

// Trace prints a level 4 message.
func Trace(format string, args ...any) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[TRACE] "+format, args...)
	}
}

// Error prints an error (level 1+).
func Error(err error) {
	if level >= LevelInfo && logger != nil && err != nil {
		logger.Printf("[ERROR] %v", err)
	}
}
