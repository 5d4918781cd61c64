package window

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/input"
	"github.com/gdamore/tcell/v2"
)

func TestBackends_Registered(t *testing.T) {
	names := Backends()
	for _, want := range []string{BackendHeadless, BackendTerminal} {
		if !slices.Contains(names, want) {
			t.Errorf("Backends() = %v, missing %q", names, want)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Backends() = %v, want sorted", names)
	}
	if !slices.Contains(names, DefaultBackend()) {
		t.Errorf("DefaultBackend() = %q, not in %v", DefaultBackend(), names)
	}
}

func TestTryNewWindow_UnknownBackend(t *testing.T) {
	w, err := TryNewWindow(WithBackend("vulkan"))
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("TryNewWindow() error = %v, want ErrBackendUnavailable", err)
	}
	if w != nil {
		t.Errorf("TryNewWindow() window = %v, want nil", w)
	}
}

func TestNewWindow_PanicsOnUnknownBackend(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewWindow() did not panic")
		}
	}()
	NewWindow(WithBackend("vulkan"))
}

func newHeadless(t *testing.T, options ...WindowBuilderOption) Window {
	t.Helper()
	options = append([]WindowBuilderOption{WithBackend(BackendHeadless)}, options...)
	w, err := TryNewWindow(options...)
	if err != nil {
		t.Fatalf("TryNewWindow() error = %v", err)
	}
	return w
}

func TestWindowBuilder_Options(t *testing.T) {
	w := newHeadless(t,
		WithTitle("pano"),
		WithWidth(640),
		WithHeight(480),
		WithWidth(0),
		WithKeyHoldTimeout(time.Second),
		WithKeyHoldTimeout(-time.Second),
	)
	ew := w.(*engineWindow)
	if ew.title != "pano" {
		t.Errorf("title = %q, want pano", ew.title)
	}
	if w.Width() != 640 || w.Height() != 480 {
		t.Errorf("size = %dx%d, want 640x480", w.Width(), w.Height())
	}
	if ew.keyHoldTimeout != time.Second {
		t.Errorf("keyHoldTimeout = %v, want 1s", ew.keyHoldTimeout)
	}
	if w.Backend() != BackendHeadless {
		t.Errorf("Backend() = %q, want headless", w.Backend())
	}
}

func TestWithBackend_EmptyKeepsDefault(t *testing.T) {
	ew := newEngineWindow(WithBackend(""))
	if ew.backend != DefaultBackend() {
		t.Errorf("backend = %q, want %q", ew.backend, DefaultBackend())
	}
}

func TestProcessMessages_DeliversPostedEvents(t *testing.T) {
	w := newHeadless(t, WithWidth(800), WithHeight(600))

	var got []input.Kind
	w.Subscribe(func(e input.Event) {
		got = append(got, e.Kind())
	})
	var resized [2]int
	w.SetResizeCallback(func(width, height int) {
		resized = [2]int{width, height}
	})

	w.Post(nil)
	w.Post(input.Resize{Width: 800, Height: 600})
	w.Post(input.Wheel{DeltaY: 100})
	w.Post(input.Resize{Width: 640, Height: 480})

	frames := 0
	w.SetUpdateCallback(func() {
		frames++
		if frames == 3 {
			_ = w.Close()
		}
	})
	w.ProcessMessages()

	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
	want := []input.Kind{input.KindWheel, input.KindResize}
	if !slices.Equal(got, want) {
		t.Errorf("delivered = %v, want %v", got, want)
	}
	if resized != [2]int{640, 480} {
		t.Errorf("resize callback = %v, want [640 480]", resized)
	}
	if w.Width() != 640 || w.Height() != 480 {
		t.Errorf("size = %dx%d, want 640x480", w.Width(), w.Height())
	}
	if w.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}
}

func TestProcessMessages_PostFromUpdate(t *testing.T) {
	w := newHeadless(t)

	var wheel []float64
	w.Subscribe(func(e input.Event) {
		if ev, ok := e.(input.Wheel); ok {
			wheel = append(wheel, ev.DeltaY)
		}
	})

	frames := 0
	w.SetUpdateCallback(func() {
		frames++
		switch frames {
		case 1:
			w.Post(input.Wheel{DeltaY: -100})
			if len(wheel) != 0 {
				t.Error("posted event delivered before the next frame")
			}
		case 2:
			_ = w.Close()
		}
	})
	w.ProcessMessages()

	if !slices.Equal(wheel, []float64{-100}) {
		t.Errorf("wheel = %v, want [-100]", wheel)
	}
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	w := newHeadless(t)
	count := 0
	unsubscribe := w.Subscribe(func(input.Event) { count++ })

	ew := w.(*engineWindow)
	ew.emit(input.Wheel{DeltaY: 1})
	unsubscribe()
	ew.emit(input.Wheel{DeltaY: 1})

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestClose_Uninitialized(t *testing.T) {
	w := newEngineWindow()
	if err := w.Close(); err == nil {
		t.Error("Close() on an unopened window returned nil")
	}
	if w.IsRunning() {
		t.Error("IsRunning() = true for an unopened window")
	}
	w.ProcessMessages()
}

func useSimulationScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	prev := newTerminalScreen
	newTerminalScreen = func() (tcell.Screen, error) { return sim, nil }
	t.Cleanup(func() { newTerminalScreen = prev })
	return sim
}

func newTerminal(t *testing.T) (*engineWindow, *terminalWindow) {
	t.Helper()
	useSimulationScreen(t)
	w, err := TryNewWindow(WithBackend(BackendTerminal), WithKeyHoldTimeout(100*time.Millisecond))
	if err != nil {
		t.Fatalf("TryNewWindow() error = %v", err)
	}
	ew := w.(*engineWindow)
	tw := ew.internalWindow.(*terminalWindow)
	t.Cleanup(func() {
		if tw.screen != nil {
			_ = tw.close()
		}
	})
	return ew, tw
}

func record(w Window) *[]input.Event {
	var got []input.Event
	w.Subscribe(func(e input.Event) {
		got = append(got, e)
	})
	return &got
}

func TestTerminal_SizeFromScreen(t *testing.T) {
	ew, tw := newTerminal(t)
	width, height := tw.screen.Size()
	if ew.Width() != width || ew.Height() != height {
		t.Errorf("size = %dx%d, want %dx%d", ew.Width(), ew.Height(), width, height)
	}
}

func TestTerminal_KeyHoldSynthesizesRelease(t *testing.T) {
	ew, tw := newTerminal(t)
	got := record(ew)

	now := time.Unix(0, 0)
	tw.now = func() time.Time { return now }

	tw.handle(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	now = now.Add(50 * time.Millisecond)
	tw.handle(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	now = now.Add(90 * time.Millisecond)
	tw.releaseExpired()

	if len(*got) != 1 || (*got)[0] != (input.KeyDown{Code: common.KeyA}) {
		t.Fatalf("events after repeat = %v, want a single KeyDown(A)", *got)
	}

	now = now.Add(20 * time.Millisecond)
	tw.releaseExpired()
	if len(*got) != 2 || (*got)[1] != (input.KeyUp{Code: common.KeyA}) {
		t.Errorf("events after timeout = %v, want KeyUp(A) last", *got)
	}
}

func TestTerminal_UppercaseHoldsShift(t *testing.T) {
	ew, tw := newTerminal(t)
	got := record(ew)

	tw.handle(tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModNone))
	tw.handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift))

	want := []input.Event{
		input.KeyDown{Code: common.KeyLeftShift},
		input.KeyDown{Code: common.KeyD},
		input.KeyDown{Code: common.KeyLeft},
	}
	if !slices.Equal(*got, want) {
		t.Errorf("events = %v, want %v", *got, want)
	}
}

func TestTerminal_IgnoredKeys(t *testing.T) {
	ew, tw := newTerminal(t)
	got := record(ew)

	tw.handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	tw.handle(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))

	if len(*got) != 0 {
		t.Errorf("events = %v, want none", *got)
	}
	if !tw.isRunning() {
		t.Error("isRunning() = false after unmapped keys")
	}
}

func TestTerminal_MouseDragAndWheel(t *testing.T) {
	ew, tw := newTerminal(t)
	got := record(ew)

	tw.handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	tw.handle(tcell.NewEventMouse(13, 4, tcell.Button1, tcell.ModNone))
	tw.handle(tcell.NewEventMouse(13, 4, tcell.ButtonNone, tcell.ModNone))
	tw.handle(tcell.NewEventMouse(13, 4, tcell.WheelUp, tcell.ModNone))
	tw.handle(tcell.NewEventMouse(13, 4, tcell.WheelDown, tcell.ModNone))

	want := []input.Event{
		input.PointerDown{X: 10, Y: 5},
		input.PointerMove{X: 13, Y: 4, MovementX: 3, MovementY: -1},
		input.PointerUp{},
		input.Wheel{DeltaY: -terminalWheelStep},
		input.Wheel{DeltaY: terminalWheelStep},
	}
	if !slices.Equal(*got, want) {
		t.Errorf("events = %v, want %v", *got, want)
	}
}

func TestTerminal_Resize(t *testing.T) {
	ew, tw := newTerminal(t)
	got := record(ew)

	tw.handle(tcell.NewEventResize(100, 40))

	if ew.Width() != 100 || ew.Height() != 40 {
		t.Errorf("size = %dx%d, want 100x40", ew.Width(), ew.Height())
	}
	if len(*got) != 1 || (*got)[0] != (input.Resize{Width: 100, Height: 40}) {
		t.Errorf("events = %v, want Resize(100x40)", *got)
	}
}

func TestTerminal_EscapeStopsLoop(t *testing.T) {
	useSimulationScreen(t)
	w, err := TryNewWindow(WithBackend(BackendTerminal), WithTitle("pano"))
	if err != nil {
		t.Fatalf("TryNewWindow() error = %v", err)
	}
	tw := w.(*engineWindow).internalWindow.(*terminalWindow)
	sim := tw.screen.(tcell.SimulationScreen)

	deadline := time.Now().Add(2 * time.Second)
	frames := 0
	w.SetUpdateCallback(func() {
		frames++
		if frames == 1 {
			sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
		}
		if time.Now().After(deadline) {
			t.Error("escape was not handled before the deadline")
			_ = w.Close()
		}
	})
	w.ProcessMessages()

	if w.IsRunning() {
		t.Error("IsRunning() = true after escape")
	}
	if tw.screen != nil {
		t.Error("terminal screen not finalized after the loop ended")
	}
	if err := w.Close(); err == nil {
		t.Error("Close() after the loop released the window returned nil")
	}
}

// stoppingPlatform ends the loop on its own after a number of polls and counts close calls.
type stoppingPlatform struct {
	polls  int
	closes int
}

func (p *stoppingPlatform) processMessages() bool {
	p.polls--
	return p.polls >= 0
}

func (p *stoppingPlatform) isRunning() bool { return p.polls >= 0 }

func (p *stoppingPlatform) setTitle(string) {}

func (p *stoppingPlatform) close() error {
	p.closes++
	return nil
}

func TestProcessMessages_ReleasesBackendOnExit(t *testing.T) {
	p := &stoppingPlatform{polls: 2}
	w := newEngineWindow()
	w.internalWindow = p

	frames := 0
	w.SetUpdateCallback(func() { frames++ })
	w.ProcessMessages()

	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
	if p.closes != 1 {
		t.Errorf("backend closes = %d, want 1", p.closes)
	}
	if err := w.Close(); err == nil {
		t.Error("Close() after release returned nil")
	}
	if p.closes != 1 {
		t.Errorf("backend closes after extra Close = %d, want 1", p.closes)
	}
}

func TestProcessMessages_CloseInsideLoopIsNotRepeated(t *testing.T) {
	p := &stoppingPlatform{polls: 10}
	w := newEngineWindow()
	w.internalWindow = p

	w.SetUpdateCallback(func() {
		if err := w.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
		p.polls = -1
	})
	w.ProcessMessages()

	if p.closes != 1 {
		t.Errorf("backend closes = %d, want 1", p.closes)
	}
}
