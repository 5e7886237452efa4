package mainloop

import "time"

// Source is something the loop polls and dispatches.
type Source interface {
	// Prepare reports whether the source is ready. When it is not, timeout
	// is the longest the loop may sleep before polling it again; a negative
	// timeout means the source only becomes ready after a Wakeup.
	Prepare() (ready bool, timeout time.Duration)
	// Check is called after the loop wakes up.
	Check() bool
	// Dispatch does the work. Returning false removes the source.
	Dispatch() bool
}

// Finalizer is implemented by sources that need to know when they are
// removed from their context.
type Finalizer interface {
	Finalize()
}

// SourceFuncs adapts plain functions to the Source interface. Nil
// functions behave as "never ready" and "remove after dispatch".
type SourceFuncs struct {
	PrepareFunc  func() (bool, time.Duration)
	CheckFunc    func() bool
	DispatchFunc func() bool
	FinalizeFunc func()
}

var (
	_ Source    = (*SourceFuncs)(nil)
	_ Finalizer = (*SourceFuncs)(nil)
)

func (s *SourceFuncs) Prepare() (bool, time.Duration) {
	if s.PrepareFunc == nil {
		return false, -1
	}
	return s.PrepareFunc()
}

func (s *SourceFuncs) Check() bool {
	if s.CheckFunc == nil {
		return false
	}
	return s.CheckFunc()
}

func (s *SourceFuncs) Dispatch() bool {
	if s.DispatchFunc == nil {
		return false
	}
	return s.DispatchFunc()
}

func (s *SourceFuncs) Finalize() {
	if s.FinalizeFunc != nil {
		s.FinalizeFunc()
	}
}

type timeoutSource struct {
	interval time.Duration
	deadline time.Time
	fn       func() bool
}

func (t *timeoutSource) Prepare() (bool, time.Duration) {
	left := time.Until(t.deadline)
	if left <= 0 {
		return true, 0
	}
	return false, left
}

func (t *timeoutSource) Check() bool {
	return !time.Now().Before(t.deadline)
}

func (t *timeoutSource) Dispatch() bool {
	if !t.fn() {
		return false
	}
	t.deadline = time.Now().Add(t.interval)
	return true
}

type idleSource struct {
	fn func() bool
}

func (i *idleSource) Prepare() (bool, time.Duration) { return true, 0 }
func (i *idleSource) Check() bool                    { return true }
func (i *idleSource) Dispatch() bool                 { return i.fn() }

// TimeoutAdd calls fn every d until it returns false.
func (c *Context) TimeoutAdd(d time.Duration, fn func() bool) SourceID {
	return c.Attach(&timeoutSource{
		interval: d,
		deadline: time.Now().Add(d),
		fn:       fn,
	}, PriorityDefault)
}

// IdleAdd calls fn whenever no source of a more urgent priority is ready,
// until it returns false.
func (c *Context) IdleAdd(fn func() bool) SourceID {
	return c.Attach(&idleSource{fn: fn}, PriorityDefaultIdle)
}

// Invoke schedules fn to run once on the goroutine that owns c. It may
// be called from any goroutine.
func (c *Context) Invoke(fn func()) SourceID {
	return c.Attach(&idleSource{fn: func() bool {
		fn()
		return false
	}}, PriorityDefault)
}
