package mainloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopQuitFromSource(t *testing.T) {
	c := NewContext()
	l := NewLoop(c)
	n := 0
	c.TimeoutAdd(time.Millisecond, func() bool {
		n++
		if n == 3 {
			c.Quit()
		}
		return true
	})

	l.Run()
	assert.Equal(t, 3, n)
	assert.False(t, l.IsRunning())
}

func TestLoopQuitFromOtherGoroutine(t *testing.T) {
	c := NewContext()
	l := NewLoop(c)

	go func() {
		time.Sleep(10 * time.Millisecond)
		l.Quit()
	}()

	start := time.Now()
	l.Run()
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLoopRunContext(t *testing.T) {
	c := NewContext()
	l := NewLoop(c)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := l.RunContext(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestContextQuitInnermost(t *testing.T) {
	c := NewContext()
	outer := NewLoop(c)
	inner := NewLoop(c)
	var order []string

	c.Invoke(func() {
		c.Invoke(func() { c.Quit() })
		inner.Run()
		order = append(order, "inner")
		c.Quit()
	})
	outer.Run()
	order = append(order, "outer")

	assert.Equal(t, []string{"inner", "outer"}, order)
}
