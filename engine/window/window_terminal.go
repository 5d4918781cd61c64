package window

import (
	"fmt"
	"time"
	"unicode"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/input"
	"github.com/gdamore/tcell/v2"
)

// terminalWheelStep is the wheel deltaY reported per wheel notch.
const terminalWheelStep = 100.0

const terminalHelp = "drag / arrows / wasd to look, shift to boost, wheel to zoom, esc to quit"

// newTerminalScreen creates the tcell screen. Tests swap in a simulation screen.
var newTerminalScreen = tcell.NewScreen

func init() {
	registerPlatform(BackendTerminal, newTerminalWindow, false)
}

// terminalWindow drives the viewer from a terminal. Sizes are in character cells.
//
// Terminals report key presses and repeats but never releases, so each press holds its key
// for the window's key hold timeout and a KeyUp is synthesized once no repeat refreshes it.
type terminalWindow struct {
	parent  *engineWindow
	screen  tcell.Screen
	events  chan tcell.Event
	quit    chan struct{}
	running bool

	held map[common.KeyCode]time.Time

	pressed      bool
	lastX, lastY int

	now func() time.Time
}

func newTerminalWindow(w *engineWindow) (platformWindow, error) {
	screen, err := newTerminalScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	t := &terminalWindow{
		parent:  w,
		screen:  screen,
		events:  make(chan tcell.Event, 100),
		quit:    make(chan struct{}),
		running: true,
		held:    make(map[common.KeyCode]time.Time),
		now:     time.Now,
	}
	w.width, w.height = screen.Size()

	go t.pollEvents(screen)
	return t, nil
}

// pollEvents forwards tcell events to the message loop goroutine. Exits when the screen is finalized.
func (t *terminalWindow) pollEvents(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// processMessages handles every queued terminal event, releases expired keys and redraws the status lines.
func (t *terminalWindow) processMessages() bool {
	if !t.running {
		return false
	}
	for drained := false; !drained; {
		select {
		case ev := <-t.events:
			t.handle(ev)
		default:
			drained = true
		}
	}
	if !t.running {
		return false
	}
	t.releaseExpired()
	t.draw()
	return true
}

func (t *terminalWindow) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		width, height := ev.Size()
		t.screen.Sync()
		t.parent.emit(input.Resize{Width: width, Height: height})
	}
}

func (t *terminalWindow) handleKey(ev *tcell.EventKey) {
	shift := ev.Modifiers()&tcell.ModShift != 0
	var code common.KeyCode
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.running = false
		return
	case tcell.KeyLeft:
		code = common.KeyLeft
	case tcell.KeyRight:
		code = common.KeyRight
	case tcell.KeyUp:
		code = common.KeyUp
	case tcell.KeyDown:
		code = common.KeyDown
	case tcell.KeyRune:
		r := ev.Rune()
		switch unicode.ToLower(r) {
		case 'w':
			code = common.KeyW
		case 'a':
			code = common.KeyA
		case 's':
			code = common.KeyS
		case 'd':
			code = common.KeyD
		case 'q':
			t.running = false
			return
		default:
			return
		}
		shift = shift || unicode.IsUpper(r)
	default:
		return
	}

	if shift {
		t.press(common.KeyLeftShift)
	}
	t.press(code)
}

// press emits KeyDown for a key that is not held and extends its hold deadline.
func (t *terminalWindow) press(code common.KeyCode) {
	if _, ok := t.held[code]; !ok {
		t.parent.emit(input.KeyDown{Code: code})
	}
	t.held[code] = t.now().Add(t.parent.keyHoldTimeout)
}

// releaseExpired emits KeyUp for keys whose hold deadline has passed.
func (t *terminalWindow) releaseExpired() {
	now := t.now()
	for code, until := range t.held {
		if now.After(until) {
			delete(t.held, code)
			t.parent.emit(input.KeyUp{Code: code})
		}
	}
}

func (t *terminalWindow) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	if buttons&tcell.WheelUp != 0 {
		t.parent.emit(input.Wheel{DeltaY: -terminalWheelStep})
	}
	if buttons&tcell.WheelDown != 0 {
		t.parent.emit(input.Wheel{DeltaY: terminalWheelStep})
	}

	down := buttons&tcell.Button1 != 0
	switch {
	case down && !t.pressed:
		t.pressed = true
		t.parent.emit(input.PointerDown{X: float64(x), Y: float64(y)})
	case !down && t.pressed:
		t.pressed = false
		t.parent.emit(input.PointerUp{})
	case x != t.lastX || y != t.lastY:
		t.parent.emit(input.PointerMove{
			X:         float64(x),
			Y:         float64(y),
			MovementX: float64(x - t.lastX),
			MovementY: float64(y - t.lastY),
		})
	}
	t.lastX, t.lastY = x, y
}

func (t *terminalWindow) draw() {
	t.screen.Clear()
	drawLine(t.screen, 0, t.parent.title, tcell.StyleDefault.Bold(true))
	_, height := t.screen.Size()
	if height > 1 {
		drawLine(t.screen, height-1, terminalHelp, tcell.StyleDefault.Dim(true))
	}
	t.screen.Show()
}

func drawLine(screen tcell.Screen, row int, text string, style tcell.Style) {
	width, _ := screen.Size()
	col := 0
	for _, r := range text {
		if col >= width {
			return
		}
		screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func (t *terminalWindow) isRunning() bool {
	return t.running
}

// setTitle is a no-op; the title is redrawn from the parent every frame.
func (t *terminalWindow) setTitle(string) {}

// close restores the terminal.
func (t *terminalWindow) close() error {
	if t.screen == nil {
		return fmt.Errorf("window is already closed")
	}
	t.running = false
	close(t.quit)
	t.screen.Fini()
	t.screen = nil
	return nil
}
