// Package mainloop implements the cooperative main loop that the runtime
// schedules message delivery on.
//
// A Context owns a set of Sources. Each Iteration prepares the sources,
// optionally blocks until one of them is ready or Wakeup is called, and
// then dispatches the ready sources of the most urgent priority. Only the
// goroutine that owns a Context may iterate it. Attach, Remove, Wakeup
// and Invoke are safe from any goroutine.
//
// Example usage:
//
//	c := mainloop.ThreadDefault()
//	c.TimeoutAdd(time.Second, func() bool {
//		fmt.Println("tick")
//		return true
//	})
//	mainloop.NewLoop(c).Run()
package mainloop

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
)

// ErrNotOwner is the panic value raised when a goroutine iterates a
// Context owned by another goroutine.
var ErrNotOwner = errors.New("mainloop: context iterated from a goroutine that does not own it")

// SourceID identifies a source attached to a Context.
type SourceID uint64

// Priority orders sources; lower values are dispatched first.
type Priority int

const (
	PriorityHigh        Priority = -100
	PriorityDefault     Priority = 0
	PriorityHighIdle    Priority = 100
	PriorityDefaultIdle Priority = 200
	PriorityLow         Priority = 300
)

type entry struct {
	id          SourceID
	prio        Priority
	src         Source
	destroyed   atomic.Bool
	dispatching bool // owner goroutine only
}

// Context is a set of sources plus the goroutine that owns them.
type Context struct {
	owner atomic.Int64

	mu      sync.Mutex
	entries []*entry // sorted by priority, insertion order within a priority
	byID    map[SourceID]*entry
	nextID  SourceID
	loops   []*Loop

	wake chan struct{}
}

// NewContext returns an empty context. It is owned by the first
// goroutine that iterates it.
func NewContext() *Context {
	return &Context{
		byID: make(map[SourceID]*entry),
		wake: make(chan struct{}, 1),
	}
}

// defaults maps goroutine ids to their default context.
var defaults sync.Map

// ThreadDefault returns the context owned by the calling goroutine,
// creating it on first use. The context stays registered until the
// goroutine calls ReleaseThreadDefault, so short-lived goroutines that
// create streams or components must release it before they exit.
func ThreadDefault() *Context {
	gid := goid.Get()
	if c, ok := defaults.Load(gid); ok {
		return c.(*Context)
	}
	c := NewContext()
	c.owner.Store(gid)
	actual, _ := defaults.LoadOrStore(gid, c)
	return actual.(*Context)
}

// ReleaseThreadDefault forgets the calling goroutine's default context.
// Sources still attached to it are left alone; the next ThreadDefault
// call on this goroutine creates a fresh context.
func ReleaseThreadDefault() {
	defaults.Delete(goid.Get())
}

// Acquire makes the calling goroutine the owner of c if it has none and
// reports whether the calling goroutine owns c.
func (c *Context) Acquire() bool {
	gid := goid.Get()
	if c.owner.CompareAndSwap(0, gid) {
		return true
	}
	return c.owner.Load() == gid
}

// IsOwner reports whether the calling goroutine owns c.
func (c *Context) IsOwner() bool {
	return c.owner.Load() == goid.Get()
}

// Attach adds src to c at the given priority.
func (c *Context) Attach(src Source, prio Priority) SourceID {
	c.mu.Lock()
	c.nextID++
	e := &entry{id: c.nextID, prio: prio, src: src}
	i := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].prio > prio
	})
	c.entries = append(c.entries, nil)
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = e
	c.byID[e.id] = e
	c.mu.Unlock()

	c.Wakeup()
	return e.id
}

// Remove detaches the source with the given id. It reports whether the
// source was still attached. A removed source is never dispatched again,
// even if it was ready in the current iteration.
func (c *Context) Remove(id SourceID) bool {
	c.mu.Lock()
	e, ok := c.byID[id]
	if ok {
		delete(c.byID, id)
		for i, x := range c.entries {
			if x == e {
				c.entries = append(c.entries[:i], c.entries[i+1:]...)
				break
			}
		}
		e.destroyed.Store(true)
	}
	c.mu.Unlock()

	if ok {
		if f, isFinalizer := e.src.(Finalizer); isFinalizer {
			f.Finalize()
		}
	}
	return ok
}

// Len returns the number of attached sources.
func (c *Context) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Wakeup interrupts a blocked Iteration. It never blocks.
func (c *Context) Wakeup() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Pending reports whether any source is ready to be dispatched. Preparing
// a source may change its state, so only the owner may call it.
func (c *Context) Pending() bool {
	if !c.Acquire() {
		panic(ErrNotOwner)
	}
	snap := c.snapshot()
	ready, _ := prepare(snap)
	if len(ready) > 0 {
		return true
	}
	return len(check(snap)) > 0
}

// Iteration runs one iteration of the loop. If no source is ready and
// mayBlock is set, it waits until a source may have become ready. It
// reports whether any source was dispatched.
func (c *Context) Iteration(mayBlock bool) bool {
	if !c.Acquire() {
		panic(ErrNotOwner)
	}

	ready, timeout := prepare(c.snapshot())
	if len(ready) == 0 {
		if !mayBlock {
			return false
		}
		c.wait(timeout)
		ready = check(c.snapshot())
	}

	dispatched := false
	for _, e := range ready {
		if e.destroyed.Load() || e.dispatching {
			continue
		}
		dispatched = true
		if !c.dispatch(e) {
			c.Remove(e.id)
		}
	}
	return dispatched
}

// DispatchPending iterates without blocking until no source is ready and
// returns the number of productive iterations.
func (c *Context) DispatchPending() int {
	n := 0
	for c.Iteration(false) {
		n++
	}
	return n
}

// Quit stops the innermost loop running on c, if any.
func (c *Context) Quit() {
	c.mu.Lock()
	var l *Loop
	if n := len(c.loops); n > 0 {
		l = c.loops[n-1]
	}
	c.mu.Unlock()
	if l != nil {
		l.Quit()
	}
}

func (c *Context) dispatch(e *entry) bool {
	e.dispatching = true
	defer func() { e.dispatching = false }()
	return e.src.Dispatch()
}

func (c *Context) wait(timeout time.Duration) {
	switch {
	case timeout < 0:
		<-c.wake
	case timeout == 0:
	default:
		t := time.NewTimer(timeout)
		defer t.Stop()
		select {
		case <-c.wake:
		case <-t.C:
		}
	}
}

func (c *Context) snapshot() []*entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*entry(nil), c.entries...)
}

func (c *Context) pushLoop(l *Loop) {
	c.mu.Lock()
	c.loops = append(c.loops, l)
	c.mu.Unlock()
}

func (c *Context) popLoop(l *Loop) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.loops) - 1; i >= 0; i-- {
		if c.loops[i] == l {
			c.loops = append(c.loops[:i], c.loops[i+1:]...)
			return
		}
	}
}

// prepare asks each source whether it is ready. Once a ready source is
// found, sources of a lower priority are not consulted. The returned
// timeout is the smallest deadline reported by a source that is not
// ready, or -1.
func prepare(snap []*entry) ([]*entry, time.Duration) {
	var ready []*entry
	timeout := time.Duration(-1)
	for _, e := range snap {
		if len(ready) > 0 && e.prio > ready[0].prio {
			break
		}
		if e.destroyed.Load() || e.dispatching {
			continue
		}
		ok, t := e.src.Prepare()
		if ok {
			ready = append(ready, e)
			continue
		}
		if t >= 0 && (timeout < 0 || t < timeout) {
			timeout = t
		}
	}
	return ready, timeout
}

func check(snap []*entry) []*entry {
	var ready []*entry
	for _, e := range snap {
		if len(ready) > 0 && e.prio > ready[0].prio {
			break
		}
		if e.destroyed.Load() || e.dispatching {
			continue
		}
		if e.src.Check() {
			ready = append(ready, e)
		}
	}
	return ready
}
