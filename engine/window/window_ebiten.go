//go:build ebiten

package window

import (
	"errors"
	"image/color"
	"slices"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/debug"
	"github.com/Carmen-Shannon/oxy-pano/engine/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ebitenWheelScale converts ebiten wheel offsets (positive = up) into wheel deltaY (positive = zoom out).
const ebitenWheelScale = -100.0

// crosshairColor marks the view center.
var crosshairColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xa0}

// ebitenKeys maps the navigation keys ebiten reports to engine key codes.
var ebitenKeys = map[ebiten.Key]common.KeyCode{
	ebiten.KeyW:          common.KeyW,
	ebiten.KeyA:          common.KeyA,
	ebiten.KeyS:          common.KeyS,
	ebiten.KeyD:          common.KeyD,
	ebiten.KeyArrowLeft:  common.KeyLeft,
	ebiten.KeyArrowRight: common.KeyRight,
	ebiten.KeyArrowUp:    common.KeyUp,
	ebiten.KeyArrowDown:  common.KeyDown,
	ebiten.KeyShiftLeft:  common.KeyLeftShift,
	ebiten.KeyShiftRight: common.KeyRightShift,
}

func init() {
	registerPlatform(BackendEbiten, newEbitenWindow, true)
}

// ebitenWindow runs the window as an ebiten.Game. Ebiten owns the main loop, so input is
// polled at the start of each Update and the engine frame runs right after.
type ebitenWindow struct {
	parent  *engineWindow
	running bool
	frame   func()

	pressed      bool
	lastX, lastY int

	touchIDs []ebiten.TouchID
	touches  map[ebiten.TouchID]input.TouchPoint
}

var _ ebiten.Game = &ebitenWindow{}

// newEbitenWindow configures the ebiten window. Nothing is shown until ProcessMessages runs the game.
func newEbitenWindow(w *engineWindow) (platformWindow, error) {
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return &ebitenWindow{
		parent:  w,
		running: true,
		touches: make(map[ebiten.TouchID]input.TouchPoint),
	}, nil
}

// run blocks in ebiten.RunGame until the window closes or close is called.
func (g *ebitenWindow) run(frame func()) {
	g.frame = frame
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		debug.Error(err)
	}
	g.running = false
}

func (g *ebitenWindow) Update() error {
	if !g.running {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.running = false
		return ebiten.Termination
	}

	g.pollKeys()
	g.pollMouse()
	g.pollTouches()

	if g.frame != nil {
		g.frame()
	}
	return nil
}

// Draw shows the title and a crosshair at the view center.
func (g *ebitenWindow) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, g.parent.title)

	b := screen.Bounds()
	cx, cy := float32(b.Dx())/2, float32(b.Dy())/2
	vector.StrokeLine(screen, cx-8, cy, cx+8, cy, 1, crosshairColor, true)
	vector.StrokeLine(screen, cx, cy-8, cx, cy+8, 1, crosshairColor, true)
	vector.StrokeCircle(screen, cx, cy, 12, 1, crosshairColor, true)
}

// Layout reports the logical screen size. Size changes are posted as Resize events.
func (g *ebitenWindow) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.parent.width || outsideHeight != g.parent.height {
		g.parent.Post(input.Resize{Width: outsideWidth, Height: outsideHeight})
	}
	return outsideWidth, outsideHeight
}

func (g *ebitenWindow) pollKeys() {
	for key, code := range ebitenKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.parent.emit(input.KeyDown{Code: code})
		}
		if inpututil.IsKeyJustReleased(key) {
			g.parent.emit(input.KeyUp{Code: code})
		}
	}
}

func (g *ebitenWindow) pollMouse() {
	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressed = true
		g.lastX, g.lastY = x, y
		g.parent.emit(input.PointerDown{X: float64(x), Y: float64(y)})
	}
	if x != g.lastX || y != g.lastY {
		g.parent.emit(input.PointerMove{
			X:         float64(x),
			Y:         float64(y),
			MovementX: float64(x - g.lastX),
			MovementY: float64(y - g.lastY),
		})
		g.lastX, g.lastY = x, y
	}
	if g.pressed && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.pressed = false
		g.parent.emit(input.PointerUp{})
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.parent.emit(input.Wheel{DeltaY: dy * ebitenWheelScale})
	}
}

// pollTouches diffs the active touch set against the previous frame: lifted fingers produce
// TouchEnd with the remaining touches, new fingers TouchStart, and moved fingers TouchMove.
func (g *ebitenWindow) pollTouches() {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	slices.Sort(g.touchIDs)

	current := make([]input.TouchPoint, 0, len(g.touchIDs))
	var started, moved bool
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		tp := input.TouchPoint{ID: int(id), PageX: float64(x), PageY: float64(y)}
		prev, ok := g.touches[id]
		switch {
		case !ok:
			started = true
		case prev.PageX != tp.PageX || prev.PageY != tp.PageY:
			moved = true
		}
		current = append(current, tp)
	}

	ended := false
	for id := range g.touches {
		if !slices.Contains(g.touchIDs, id) {
			ended = true
			delete(g.touches, id)
		}
	}
	for _, tp := range current {
		g.touches[ebiten.TouchID(tp.ID)] = tp
	}

	if ended {
		g.parent.emit(input.TouchEnd{Touches: current})
	}
	switch {
	case started:
		g.parent.emit(input.TouchStart{Touches: current})
	case moved:
		g.parent.emit(input.TouchMove{Touches: current})
	}
}

func (g *ebitenWindow) processMessages() bool {
	return g.running
}

func (g *ebitenWindow) isRunning() bool {
	return g.running
}

func (g *ebitenWindow) setTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// close makes the next Update return ebiten.Termination.
func (g *ebitenWindow) close() error {
	g.running = false
	return nil
}
