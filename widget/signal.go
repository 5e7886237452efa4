package widget

import "sync/atomic"

// HandlerID identifies a connected signal handler.
type HandlerID uint64

// Inhibit is returned by handlers of a ReturnSignal. True stops the
// emission and suppresses the toolkit's default handling.
type Inhibit bool

var handlerIDs atomic.Uint64

type handler[F any] struct {
	id   HandlerID
	fn   F
	live bool
}

type handlers[F any] struct {
	list []*handler[F]
}

func (hs *handlers[F]) connect(fn F) HandlerID {
	h := &handler[F]{id: HandlerID(handlerIDs.Add(1)), fn: fn, live: true}
	hs.list = append(hs.list, h)
	return h.id
}

func (hs *handlers[F]) disconnect(id HandlerID) bool {
	for i, h := range hs.list {
		if h.id == id {
			h.live = false
			hs.list = append(hs.list[:i], hs.list[i+1:]...)
			return true
		}
	}
	return false
}

func (hs *handlers[F]) snapshot() []*handler[F] {
	return append([]*handler[F](nil), hs.list...)
}

func (hs *handlers[F]) clear() {
	for _, h := range hs.list {
		h.live = false
	}
	hs.list = nil
}

// Signal is a toolkit signal whose handlers receive an argument of type A.
type Signal[A any] struct {
	hs handlers[func(A)]
}

// Connect adds a handler and returns its id.
func (s *Signal[A]) Connect(fn func(A)) HandlerID {
	return s.hs.connect(fn)
}

// Disconnect removes a handler. A handler removed during an emission is
// not called for the rest of it.
func (s *Signal[A]) Disconnect(id HandlerID) bool {
	return s.hs.disconnect(id)
}

// Emit calls the handlers in connection order.
func (s *Signal[A]) Emit(arg A) {
	for _, h := range s.hs.snapshot() {
		if h.live {
			h.fn(arg)
		}
	}
}

// Len returns the number of connected handlers.
func (s *Signal[A]) Len() int {
	return len(s.hs.list)
}

func (s *Signal[A]) clear() { s.hs.clear() }

// ReturnSignal is a signal whose handlers can inhibit further handling.
type ReturnSignal[A any] struct {
	hs handlers[func(A) Inhibit]
}

// Connect adds a handler and returns its id.
func (s *ReturnSignal[A]) Connect(fn func(A) Inhibit) HandlerID {
	return s.hs.connect(fn)
}

// Disconnect removes a handler.
func (s *ReturnSignal[A]) Disconnect(id HandlerID) bool {
	return s.hs.disconnect(id)
}

// Emit calls the handlers in connection order until one inhibits, and
// reports whether one did.
func (s *ReturnSignal[A]) Emit(arg A) Inhibit {
	for _, h := range s.hs.snapshot() {
		if !h.live {
			continue
		}
		if h.fn(arg) {
			return true
		}
	}
	return false
}

// Len returns the number of connected handlers.
func (s *ReturnSignal[A]) Len() int {
	return len(s.hs.list)
}

func (s *ReturnSignal[A]) clear() { s.hs.clear() }
