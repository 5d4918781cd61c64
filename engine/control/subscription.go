package control

// Subscription is the handle returned by Controller.Attach. Closing it removes exactly the
// listener it registered, so a controller can be attached to several sources and detached
// from each independently.
//
//	sub := ctrl.Attach(win)
//	defer sub.Close()
type Subscription struct {
	owner       *controllerImpl
	unsubscribe func()
	closed      bool
}

// Close detaches the controller from the source. Calling Close more than once is a no-op.
//
// Returns:
//   - error: always nil; present so Subscription satisfies io.Closer
func (s *Subscription) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	if s.owner != nil {
		s.owner.release(s)
	}
	return nil
}

// Closed reports whether the subscription has been released.
func (s *Subscription) Closed() bool {
	return s == nil || s.closed
}
