package window

import "time"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithBackend selects the backend by name ("glfw", "ebiten", "terminal" or "headless").
// An empty name keeps the default for the build.
//
// Parameters:
//   - name: the backend name
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithBackend(name string) WindowBuilderOption {
	return func(w *engineWindow) {
		if name != "" {
			w.backend = name
		}
	}
}

// WithMaxSize sets the maximum allowed window size.
//
// Parameters:
//   - maxWidth: maximum width in pixels
//   - maxHeight: maximum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth = maxWidth
		w.maxHeight = maxHeight
	}
}

// WithMinSize sets the minimum allowed window size.
//
// Parameters:
//   - minWidth: minimum width in pixels
//   - minHeight: minimum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(minWidth, minHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = minWidth
		w.minHeight = minHeight
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if height > 0 {
			w.height = height
		}
	}
}

// WithKeyHoldTimeout sets how long the terminal backend treats a key as held after its last press.
// Terminals report no key releases, so a release is synthesized when no repeat arrives in time.
//
// Parameters:
//   - d: hold duration (ignored if <= 0)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithKeyHoldTimeout(d time.Duration) WindowBuilderOption {
	return func(w *engineWindow) {
		if d > 0 {
			w.keyHoldTimeout = d
		}
	}
}
