package input

// Handler receives events from a Source.
type Handler func(Event)

// Source is anything that delivers raw input events: a window backend, a sensor bridge, a test feed.
type Source interface {
	// Subscribe registers a handler and returns the function that removes exactly that registration.
	// Calling the returned function more than once is a no-op.
	//
	// Parameters:
	//   - h: the handler to register
	//
	// Returns:
	//   - func(): removes the registration
	Subscribe(h Handler) (unsubscribe func())
}

// Feed is an in-memory Source. Publish delivers an event synchronously to every handler
// in registration order. Not safe for concurrent use; publish from the goroutine that ticks the frame.
type Feed struct {
	nextID   uint64
	handlers []*feedEntry
}

type feedEntry struct {
	id      uint64
	h       Handler
	removed bool
}

var _ Source = &Feed{}

// NewFeed creates an empty Feed.
func NewFeed() *Feed {
	return &Feed{}
}

func (f *Feed) Subscribe(h Handler) func() {
	if h == nil {
		return func() {}
	}
	f.nextID++
	id := f.nextID
	f.handlers = append(f.handlers, &feedEntry{id: id, h: h})
	return func() { f.remove(id) }
}

// Publish delivers e to every handler registered when the call starts.
// A handler removed by an earlier handler during the same call is skipped;
// a handler added during the call first receives the next event.
//
// Parameters:
//   - e: the event to deliver
func (f *Feed) Publish(e Event) {
	entries := make([]*feedEntry, len(f.handlers))
	copy(entries, f.handlers)
	for _, entry := range entries {
		if !entry.removed {
			entry.h(e)
		}
	}
}

// Len returns the number of registered handlers.
func (f *Feed) Len() int {
	return len(f.handlers)
}

func (f *Feed) remove(id uint64) {
	for i, entry := range f.handlers {
		if entry.id == id {
			entry.removed = true
			f.handlers = append(f.handlers[:i], f.handlers[i+1:]...)
			return
		}
	}
}
