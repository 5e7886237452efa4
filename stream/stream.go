// Package stream implements the per-component message streams.
//
// An EventStream is a FIFO of messages attached to a main loop context as
// a source. Emitting runs the observers synchronously and appends the
// message to the queue; the loop later pops one message per dispatch and
// hands it to the consumer callback. A stream belongs to the goroutine
// that owns its context and its API is not safe for concurrent use.
// Other goroutines feed a stream through a Channel.
package stream

import (
	"errors"
	"time"

	"github.com/elizafairlady/go-relm/mainloop"
)

var (
	// ErrStreamDropped is the panic value raised when a Handle is used
	// after its stream was closed.
	ErrStreamDropped = errors.New("stream: stream dropped")
	// ErrAlreadyLocked is the panic value raised when a locked stream is
	// locked again.
	ErrAlreadyLocked = errors.New("stream: stream already locked")
)

// EventStream is a queue of messages of type M dispatched by a main loop.
type EventStream[M any] struct {
	ctx       *mainloop.Context
	source    mainloop.SourceID
	events    []M
	observers []func(M)
	callback  func(M)
	locked    bool
	closed    bool
}

// New creates a stream on the calling goroutine's default context.
func New[M any]() *EventStream[M] {
	return NewWithContext[M](mainloop.ThreadDefault())
}

// NewWithContext creates a stream and attaches it to c at the default
// priority.
func NewWithContext[M any](c *mainloop.Context) *EventStream[M] {
	s := &EventStream[M]{ctx: c}
	s.source = c.Attach(&source[M]{s: s}, mainloop.PriorityDefault)
	return s
}

// Emit runs the observers on msg and queues it for the consumer. It does
// nothing while the stream is locked or after it was closed. Observers
// added while Emit runs only see later messages.
func (s *EventStream[M]) Emit(msg M) {
	if s.locked || s.closed {
		return
	}
	for _, observe := range s.observers {
		observe(msg)
		if s.closed {
			return
		}
	}
	s.events = append(s.events, msg)
}

// SetCallback installs the consumer that receives queued messages,
// replacing any previous one. Messages queued before the first callback
// is installed wait for it.
func (s *EventStream[M]) SetCallback(fn func(M)) {
	if s.closed {
		return
	}
	s.callback = fn
	if len(s.events) > 0 {
		s.ctx.Wakeup()
	}
}

// Observe adds fn to the observers. Observers live as long as the stream.
func (s *EventStream[M]) Observe(fn func(M)) {
	if s.closed {
		return
	}
	s.observers = append(s.observers, fn)
}

// Lock suspends Emit until the returned guard is released. Locks do not
// nest: locking a locked stream panics with ErrAlreadyLocked.
func (s *EventStream[M]) Lock() *Lock {
	if s.locked {
		panic(ErrAlreadyLocked)
	}
	s.locked = true
	return &Lock{release: func() { s.locked = false }}
}

// Locked reports whether a lock guard is active.
func (s *EventStream[M]) Locked() bool {
	return s.locked
}

// Downgrade returns a handle to s.
func (s *EventStream[M]) Downgrade() Handle[M] {
	return Handle[M]{s: s}
}

// Close detaches the stream from its context and discards pending
// messages. Further emits are ignored and handles report ErrStreamDropped.
func (s *EventStream[M]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.ctx.Remove(s.source)
	s.events = nil
	s.observers = nil
	s.callback = nil
}

// Closed reports whether Close was called.
func (s *EventStream[M]) Closed() bool {
	return s.closed
}

// Len returns the number of queued messages.
func (s *EventStream[M]) Len() int {
	return len(s.events)
}

// Context returns the context the stream is attached to.
func (s *EventStream[M]) Context() *mainloop.Context {
	return s.ctx
}

func (s *EventStream[M]) ready() bool {
	return !s.closed && s.callback != nil && len(s.events) > 0
}

func (s *EventStream[M]) pop() M {
	msg := s.events[0]
	var zero M
	s.events[0] = zero
	s.events = s.events[1:]
	return msg
}

// Lock is a scoped guard returned by EventStream.Lock.
type Lock struct {
	release func()
}

// Release unlocks the stream. Calling it more than once is harmless.
func (l *Lock) Release() {
	if l.release != nil {
		l.release()
		l.release = nil
	}
}

type source[M any] struct {
	s *EventStream[M]
}

func (src *source[M]) Prepare() (bool, time.Duration) {
	return src.s.ready(), -1
}

func (src *source[M]) Check() bool {
	return src.s.ready()
}

func (src *source[M]) Dispatch() bool {
	s := src.s
	if s.ready() {
		s.callback(s.pop())
	}
	return !s.closed
}
