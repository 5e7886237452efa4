package relm

import (
	"time"

	"github.com/elizafairlady/go-relm/mainloop"
	"github.com/elizafairlady/go-relm/stream"
)

// Timeout emits f() on h once, after d. Nothing is emitted if the stream
// was closed in the meantime. It panics if the stream is already closed.
func Timeout[Msg any](h stream.Handle[Msg], d time.Duration, f func() Msg) mainloop.SourceID {
	mustAlive(h)
	return h.Context().TimeoutAdd(d, func() bool {
		if h.Alive() {
			h.Emit(f())
		}
		return false
	})
}

// Interval emits f() on h every d until the stream is closed.
func Interval[Msg any](h stream.Handle[Msg], d time.Duration, f func() Msg) mainloop.SourceID {
	mustAlive(h)
	return h.Context().TimeoutAdd(d, func() bool {
		if !h.Alive() {
			return false
		}
		h.Emit(f())
		return h.Alive()
	})
}

func mustAlive[Msg any](h stream.Handle[Msg]) {
	if !h.Alive() {
		panic(stream.ErrStreamDropped)
	}
}
