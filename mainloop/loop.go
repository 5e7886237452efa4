package mainloop

import (
	"context"
	"sync/atomic"
)

// Loop runs a Context until it is told to quit.
type Loop struct {
	ctx     *Context
	running atomic.Bool
}

// NewLoop returns a loop over c.
func NewLoop(c *Context) *Loop {
	return &Loop{ctx: c}
}

// Context returns the context the loop iterates.
func (l *Loop) Context() *Context {
	return l.ctx
}

// Run iterates the context until Quit is called. It must be called from
// the goroutine that owns the context.
func (l *Loop) Run() {
	l.running.Store(true)
	l.run()
}

// RunContext is like Run but also quits when ctx is done. It returns
// ctx.Err() observed after the loop stopped.
func (l *Loop) RunContext(ctx context.Context) error {
	l.running.Store(true)
	stop := context.AfterFunc(ctx, l.Quit)
	defer stop()
	l.run()
	return ctx.Err()
}

// Quit stops the loop after the current iteration. It may be called from
// any goroutine.
func (l *Loop) Quit() {
	l.running.Store(false)
	l.ctx.Wakeup()
}

// IsRunning reports whether Run has been called and Quit has not.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

func (l *Loop) run() {
	if !l.ctx.Acquire() {
		panic(ErrNotOwner)
	}
	l.ctx.pushLoop(l)
	defer l.ctx.popLoop(l)
	for l.running.Load() {
		l.ctx.Iteration(true)
	}
}
