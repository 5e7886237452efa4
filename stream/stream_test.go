package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elizafairlady/go-relm/mainloop"
)

func newStream(t *testing.T) (*EventStream[int], *mainloop.Context) {
	t.Helper()
	c := mainloop.NewContext()
	require.True(t, c.Acquire())
	return NewWithContext[int](c), c
}

func TestEmitFIFO(t *testing.T) {
	s, c := newStream(t)
	var got []int
	s.SetCallback(func(m int) { got = append(got, m) })

	for i := 0; i < 5; i++ {
		s.Emit(i)
	}
	assert.Empty(t, got, "emit must not dispatch")
	assert.Equal(t, 5, s.Len())

	assert.Equal(t, 5, c.DispatchPending())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestObserversRunBeforeQueue(t *testing.T) {
	s, c := newStream(t)
	var log []string
	s.Observe(func(m int) {
		log = append(log, "observe")
		assert.Equal(t, 0, s.Len(), "message queued before observers ran")
	})
	s.SetCallback(func(m int) { log = append(log, "update") })

	s.Emit(1)
	c.DispatchPending()
	assert.Equal(t, []string{"observe", "update"}, log)
}

func TestObserverOrderAndLateObserver(t *testing.T) {
	s, _ := newStream(t)
	var log []string
	s.Observe(func(m int) {
		log = append(log, "first")
		if m == 1 {
			s.Observe(func(int) { log = append(log, "late") })
		}
	})
	s.Observe(func(int) { log = append(log, "second") })

	s.Emit(1)
	assert.Equal(t, []string{"first", "second"}, log)

	log = nil
	s.Emit(2)
	assert.Equal(t, []string{"first", "second", "late"}, log)
}

func TestEmitFromObserver(t *testing.T) {
	s, c := newStream(t)
	seen := map[int]int{}
	s.Observe(func(m int) {
		seen[m]++
		if m == 1 {
			s.Emit(2)
		}
	})
	var got []int
	s.SetCallback(func(m int) { got = append(got, m) })

	s.Emit(1)
	c.DispatchPending()

	assert.Equal(t, map[int]int{1: 1, 2: 1}, seen)
	// The nested emit completes, and queues, before the outer one.
	assert.Equal(t, []int{2, 1}, got)
}

func TestEmitFromCallbackAppends(t *testing.T) {
	s, c := newStream(t)
	var got []int
	s.SetCallback(func(m int) {
		got = append(got, m)
		if m < 3 {
			s.Emit(m + 10)
		}
	})

	s.Emit(1)
	s.Emit(2)
	c.DispatchPending()
	assert.Equal(t, []int{1, 2, 11, 12}, got)
}

func TestLockSealsStream(t *testing.T) {
	s, c := newStream(t)
	observed := 0
	s.Observe(func(int) { observed++ })
	var got []int
	s.SetCallback(func(m int) { got = append(got, m) })

	lock := s.Lock()
	assert.True(t, s.Locked())
	s.Emit(1)
	s.Emit(2)
	assert.PanicsWithValue(t, ErrAlreadyLocked, func() { s.Lock() })
	lock.Release()
	lock.Release()
	assert.False(t, s.Locked())

	s.Emit(3)
	c.DispatchPending()
	assert.Equal(t, 1, observed)
	assert.Equal(t, []int{3}, got)
}

func TestLockRoundTripLeavesStateUnchanged(t *testing.T) {
	run := func(locked bool) int {
		s, c := newStream(t)
		total := 0
		s.SetCallback(func(m int) { total += m })
		s.Emit(1)
		if locked {
			l := s.Lock()
			s.Emit(100)
			s.Emit(200)
			l.Release()
		}
		s.Emit(2)
		c.DispatchPending()
		return total
	}
	assert.Equal(t, run(false), run(true))
}

func TestNoDispatchWithoutCallback(t *testing.T) {
	s, c := newStream(t)
	s.Emit(1)
	s.Emit(2)

	assert.Equal(t, 0, c.DispatchPending())
	assert.False(t, c.Pending())
	assert.Equal(t, 2, s.Len())

	var got []int
	s.SetCallback(func(m int) { got = append(got, m) })
	assert.True(t, c.Pending())
	c.DispatchPending()
	assert.Equal(t, []int{1, 2}, got)
}

func TestSetCallbackReplaces(t *testing.T) {
	s, c := newStream(t)
	var a, b []int
	s.SetCallback(func(m int) { a = append(a, m) })
	s.Emit(1)
	c.DispatchPending()
	s.SetCallback(func(m int) { b = append(b, m) })
	s.Emit(2)
	c.DispatchPending()
	assert.Equal(t, []int{1}, a)
	assert.Equal(t, []int{2}, b)
}

func TestCloseHaltsDispatch(t *testing.T) {
	s, c := newStream(t)
	called := false
	s.SetCallback(func(int) { called = true })
	h := s.Downgrade()

	s.Emit(1)
	s.Close()
	s.Close()
	s.Emit(2)

	assert.Equal(t, 0, c.DispatchPending())
	assert.False(t, called)
	assert.Equal(t, 0, c.Len())
	assert.True(t, s.Closed())
	assert.Equal(t, 0, s.Len())

	assert.False(t, h.Alive())
	assert.PanicsWithValue(t, ErrStreamDropped, func() { h.Emit(3) })
	assert.PanicsWithValue(t, ErrStreamDropped, func() { h.Observe(func(int) {}) })
	assert.PanicsWithValue(t, ErrStreamDropped, func() { h.Lock() })
	assert.ErrorIs(t, h.TryEmit(3), ErrStreamDropped)
}

func TestCloseFromCallback(t *testing.T) {
	s, c := newStream(t)
	var got []int
	s.SetCallback(func(m int) {
		got = append(got, m)
		s.Close()
	})
	s.Emit(1)
	s.Emit(2)
	c.DispatchPending()
	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 0, c.Len())
}

func TestCloseFromObserver(t *testing.T) {
	s, c := newStream(t)
	var seen []string
	s.Observe(func(int) {
		seen = append(seen, "first")
		s.Close()
	})
	s.Observe(func(int) { seen = append(seen, "second") })
	s.SetCallback(func(int) { seen = append(seen, "callback") })

	s.Emit(1)
	c.DispatchPending()
	assert.Equal(t, []string{"first"}, seen)
	assert.Equal(t, 0, s.Len())
}

func TestHandleCopyIsEquivalent(t *testing.T) {
	s, c := newStream(t)
	var got []int
	s.SetCallback(func(m int) { got = append(got, m) })

	h := s.Downgrade()
	clone := h
	h.Emit(1)
	clone.Emit(2)
	require.NoError(t, clone.TryEmit(3))
	c.DispatchPending()

	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Same(t, c, clone.Context())
	assert.Nil(t, Handle[int]{}.Context())
	assert.False(t, Handle[int]{}.Alive())
}

func TestHandleLock(t *testing.T) {
	s, c := newStream(t)
	var got []int
	s.SetCallback(func(m int) { got = append(got, m) })
	h := s.Downgrade()

	l := h.Lock()
	h.Emit(1)
	l.Release()
	h.Emit(2)
	c.DispatchPending()
	assert.Equal(t, []int{2}, got)
}
