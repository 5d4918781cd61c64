package input

import (
	"errors"
	"math"
	"testing"
)

func TestFeed_PublishAndUnsubscribe(t *testing.T) {
	f := NewFeed()
	var a, b int
	unsubA := f.Subscribe(func(Event) { a++ })
	unsubB := f.Subscribe(func(Event) { b++ })

	f.Publish(PointerUp{})
	if a != 1 || b != 1 {
		t.Fatalf("deliveries = (%d, %d), want (1, 1)", a, b)
	}

	unsubA()
	unsubA()
	f.Publish(PointerUp{})
	if a != 1 || b != 2 {
		t.Errorf("deliveries after unsubscribe = (%d, %d), want (1, 2)", a, b)
	}
	if f.Len() != 1 {
		t.Errorf("Len = %d, want 1", f.Len())
	}

	unsubB()
	if f.Len() != 0 {
		t.Errorf("Len = %d, want 0", f.Len())
	}
}

func TestFeed_UnsubscribeDuringPublish(t *testing.T) {
	f := NewFeed()
	var calls int
	var unsub func()
	unsub = f.Subscribe(func(Event) {
		calls++
		unsub()
	})
	f.Publish(PointerUp{})
	f.Publish(PointerUp{})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestFeed_HandlerRemovedByEarlierHandler(t *testing.T) {
	f := NewFeed()
	var second int
	var unsubSecond func()
	f.Subscribe(func(Event) { unsubSecond() })
	unsubSecond = f.Subscribe(func(Event) { second++ })

	f.Publish(PointerUp{})
	if second != 0 {
		t.Errorf("removed handler called %d times, want 0", second)
	}
	if f.Len() != 1 {
		t.Errorf("Len = %d, want 1", f.Len())
	}
}

func TestFeed_HandlerAddedDuringPublish(t *testing.T) {
	f := NewFeed()
	var late int
	added := false
	f.Subscribe(func(Event) {
		if !added {
			added = true
			f.Subscribe(func(Event) { late++ })
		}
	})

	f.Publish(PointerUp{})
	if late != 0 {
		t.Errorf("handler added mid-publish called %d times, want 0", late)
	}
	f.Publish(PointerUp{})
	if late != 1 {
		t.Errorf("late handler calls = %d, want 1", late)
	}
}

func TestFeed_NilHandler(t *testing.T) {
	f := NewFeed()
	f.Subscribe(nil)()
	if f.Len() != 0 {
		t.Errorf("nil handler registered")
	}
}

func TestEvent_Validate(t *testing.T) {
	nan := math.NaN()
	invalid := []Event{
		PointerDown{X: nan},
		PointerMove{MovementX: math.Inf(1)},
		TouchStart{Touches: []TouchPoint{{PageX: nan}}},
		TouchMove{Touches: []TouchPoint{{PageY: nan}}},
		TouchEnd{Touches: []TouchPoint{{PageX: math.Inf(-1)}}},
		Wheel{DeltaY: nan},
		ScreenOrientation{Degrees: nan},
		Resize{Width: 0, Height: 10},
	}
	for _, e := range invalid {
		if err := e.Validate(); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("%s: Validate = %v, want ErrInvalidEvent", e.Kind(), err)
		}
	}

	valid := []Event{
		PointerDown{},
		PointerMove{X: 1, Y: 2, MovementX: 3, MovementY: 4},
		PointerUp{},
		TouchStart{},
		TouchEnd{},
		Wheel{DeltaY: 1e6},
		KeyDown{},
		KeyUp{},
		DeviceOrientation{Alpha: nan, Beta: nan, Gamma: nan},
		ScreenOrientation{Degrees: 90},
		Resize{Width: 800, Height: 600},
	}
	for _, e := range valid {
		if err := e.Validate(); err != nil {
			t.Errorf("%s: Validate = %v, want nil", e.Kind(), err)
		}
	}
}

func TestKind_String(t *testing.T) {
	if KindWheel.String() != "wheel" {
		t.Errorf("KindWheel = %q", KindWheel.String())
	}
	if Kind(99).String() != "kind(99)" {
		t.Errorf("unknown kind = %q", Kind(99).String())
	}
}
