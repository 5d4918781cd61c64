package window

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/engine/debug"
	"github.com/Carmen-Shannon/oxy-pano/engine/input"
)

// Backend names.
const (
	BackendGLFW     = "glfw"
	BackendEbiten   = "ebiten"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

// ErrBackendUnavailable is returned when the requested backend is not compiled into the binary.
var ErrBackendUnavailable = errors.New("window backend unavailable")

// Window is the event source and message loop of the viewer.
// Raw platform input is translated into input events and published to subscribers
// on the goroutine that runs ProcessMessages.
type Window interface {
	input.Source

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetTitle changes the window title. The terminal and ebiten backends draw it as a status line.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// Post queues an event for delivery on the message loop goroutine.
	// Safe to call from any goroutine; used to feed sensor readings that arrive off-thread.
	//
	// Parameters:
	//   - e: the event to deliver
	Post(e input.Event)

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never opened, is already closed, or the backend fails to close
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	// A window still open when the loop ends (the user quit through the backend) is closed before returning.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// Backend returns the name of the backend driving the window.
	Backend() string
}

// platformWindow is implemented by each backend.
type platformWindow interface {
	// processMessages polls pending platform events once. Returns false once the window has closed.
	processMessages() bool
	isRunning() bool
	setTitle(title string)
	close() error
}

// platformRunner is implemented by backends that own their main loop and call frame themselves.
type platformRunner interface {
	run(frame func())
}

// platformFactory opens a backend for a configured window.
type platformFactory func(w *engineWindow) (platformWindow, error)

var (
	platforms      = map[string]platformFactory{}
	defaultBackend = BackendTerminal
)

// registerPlatform makes a backend selectable by name. Called from backend init functions.
func registerPlatform(name string, factory platformFactory, isDefault bool) {
	platforms[name] = factory
	if isDefault {
		defaultBackend = name
	}
}

// Backends returns the names of the backends compiled into the binary, sorted.
func Backends() []string {
	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultBackend returns the backend used when none is requested.
func DefaultBackend() string {
	return defaultBackend
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, the backend, and event dispatch state.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// backend is the name of the selected backend.
	backend string

	// keyHoldTimeout is how long the terminal backend keeps a key held without a repeat.
	keyHoldTimeout time.Duration

	// internalWindow holds the backend-specific window.
	internalWindow platformWindow

	// closed is set once the backend has been released.
	closed bool

	// feed publishes translated input events to subscribers.
	feed *input.Feed

	// mu guards pending.
	mu *sync.Mutex

	// pending holds events posted from other goroutines until the next loop iteration.
	pending []input.Event

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options and opens the backend.
// Panics if the backend cannot be opened; use TryNewWindow to handle the error.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
func NewWindow(options ...WindowBuilderOption) Window {
	w, err := TryNewWindow(options...)
	if err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// TryNewWindow creates a new Window with the specified options and opens the backend.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: wraps ErrBackendUnavailable if the backend is not compiled in, or the backend's open error
func TryNewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	factory, ok := platforms[w.backend]
	if !ok {
		return nil, fmt.Errorf("backend %q (available: %v): %w", w.backend, Backends(), ErrBackendUnavailable)
	}
	pw, err := factory(w)
	if err != nil {
		return nil, fmt.Errorf("open %s window: %w", w.backend, err)
	}
	w.internalWindow = pw
	debug.Info("window %q opened with %s backend (%dx%d)", w.title, w.backend, w.width, w.height)
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:          "oxy-pano",
		maxWidth:       3840,
		maxHeight:      2160,
		minWidth:       320,
		minHeight:      200,
		width:          1280,
		height:         720,
		backend:        defaultBackend,
		keyHoldTimeout: 250 * time.Millisecond,
		feed:           input.NewFeed(),
		mu:             &sync.Mutex{},
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) Subscribe(h input.Handler) func() {
	return w.feed.Subscribe(h)
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	if w.internalWindow != nil {
		w.internalWindow.setTitle(title)
	}
}

func (w *engineWindow) Post(e input.Event) {
	if e == nil {
		return
	}
	w.mu.Lock()
	w.pending = append(w.pending, e)
	w.mu.Unlock()
}

func (w *engineWindow) IsRunning() bool {
	return w.internalWindow != nil && w.internalWindow.isRunning()
}

func (w *engineWindow) Close() error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	if w.closed {
		return fmt.Errorf("window is already closed")
	}
	w.closed = true
	return w.internalWindow.close()
}

func (w *engineWindow) ProcessMessages() {
	if w.internalWindow == nil {
		return
	}
	defer w.release()
	if r, ok := w.internalWindow.(platformRunner); ok {
		r.run(w.frame)
		return
	}
	for w.IsRunning() {
		if succ := w.internalWindow.processMessages(); !succ {
			break
		}

		w.frame()

		runtime.Gosched()
	}
}

// release closes a backend the loop exited without, e.g. after Esc in the terminal.
func (w *engineWindow) release() {
	if !w.closed {
		debug.Error(w.Close())
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Backend() string {
	return w.backend
}

// frame runs one loop iteration: posted events are delivered, then the update callback runs.
func (w *engineWindow) frame() {
	w.drain()
	if w.onUpdate != nil {
		w.onUpdate()
	}
}

// drain delivers events queued by Post.
func (w *engineWindow) drain() {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	for _, e := range pending {
		w.emit(e)
	}
}

// emit publishes one event. Resize events also update the stored size and fire the resize callback.
// Must be called on the message loop goroutine.
func (w *engineWindow) emit(e input.Event) {
	if r, ok := e.(input.Resize); ok && r.Validate() == nil {
		if r.Width == w.width && r.Height == w.height {
			return
		}
		w.width, w.height = r.Width, r.Height
		if w.onResize != nil {
			w.onResize(r.Width, r.Height)
		}
	}
	debug.Trace("%s %+v", e.Kind(), e)
	w.feed.Publish(e)
}
