//go:build !ebiten

package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/input"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWheelScale converts GLFW scroll offsets (lines, positive = up) into wheel deltaY (positive = zoom out).
const glfwWheelScale = -100.0

func init() {
	registerPlatform(BackendGLFW, newGLFWWindow, true)
}

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	window  *glfw.Window
	running bool

	// lastX and lastY are the previous cursor position, used to derive per-event movement.
	lastX, lastY float64
	hasCursor    bool
}

// newGLFWWindow creates the GLFW window and registers callbacks that translate GLFW input into events.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newGLFWWindow(w *engineWindow) (platformWindow, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// The renderer attaches its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %v", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		window:  win,
		running: true,
	}

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		// Held keys are level-triggered, so repeats carry no information.
		switch action {
		case glfw.Press:
			w.emit(input.KeyDown{Code: common.KeyCode(key)})
		case glfw.Release:
			w.emit(input.KeyUp{Code: common.KeyCode(key)})
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if yoff != 0 {
			w.emit(input.Wheel{DeltaY: yoff * glfwWheelScale})
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		xpos, ypos := win.GetCursorPos()
		switch action {
		case glfw.Press:
			gw.lastX, gw.lastY, gw.hasCursor = xpos, ypos, true
			w.emit(input.PointerDown{X: xpos, Y: ypos})
		case glfw.Release:
			w.emit(input.PointerUp{})
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		var dx, dy float64
		if gw.hasCursor {
			dx, dy = xpos-gw.lastX, ypos-gw.lastY
		}
		gw.lastX, gw.lastY, gw.hasCursor = xpos, ypos, true
		w.emit(input.PointerMove{X: xpos, Y: ypos, MovementX: dx, MovementY: dy})
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.emit(input.Resize{Width: width, Height: height})
	})

	// Update stored dimensions to reflect actual framebuffer size (may differ from requested on high-DPI).
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return gw, nil
}

// isRunning returns whether the GLFW window is still active.
// Returns false if the running flag is cleared or GLFW reports ShouldClose.
func (gw *glfwWindow) isRunning() bool {
	return gw.running && gw.window != nil && !gw.window.ShouldClose()
}

func (gw *glfwWindow) setTitle(title string) {
	if gw.window != nil {
		gw.window.SetTitle(title)
	}
}

// close destroys the GLFW window and terminates the GLFW library.
func (gw *glfwWindow) close() error {
	if gw.window == nil {
		return fmt.Errorf("window is already closed")
	}
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	gw.window = nil
	glfw.Terminate()
	return nil
}

// processMessages polls GLFW for pending events without blocking.
// Callbacks fire from inside PollEvents, on the message loop goroutine.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (gw *glfwWindow) processMessages() bool {
	if gw.window == nil {
		return false
	}
	glfw.PollEvents()
	return gw.isRunning()
}
