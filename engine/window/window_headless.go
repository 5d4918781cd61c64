package window

func init() {
	registerPlatform(BackendHeadless, newHeadlessWindow, false)
}

// headlessWindow has no display and no native input. Events arrive only through Post,
// which makes it suitable for tests and for driving the viewer from another process.
type headlessWindow struct {
	running bool
}

func newHeadlessWindow(*engineWindow) (platformWindow, error) {
	return &headlessWindow{running: true}, nil
}

func (h *headlessWindow) processMessages() bool {
	return h.running
}

func (h *headlessWindow) isRunning() bool {
	return h.running
}

func (h *headlessWindow) setTitle(string) {}

func (h *headlessWindow) close() error {
	h.running = false
	return nil
}
