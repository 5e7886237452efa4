package relm

import (
	"context"
	"sync"

	"github.com/elizafairlady/go-relm/fragile"
	"github.com/elizafairlady/go-relm/stream"
	"github.com/elizafairlady/go-relm/widget"
)

// Connect emits on h the message f builds from each emission of sig. The
// emission is dropped when f reports false. h may be the component's own
// stream or another component's.
func Connect[A, Msg any](sig *widget.Signal[A], h stream.Handle[Msg], f func(A) (Msg, bool)) widget.HandlerID {
	return sig.Connect(func(a A) {
		if msg, ok := f(a); ok {
			h.Emit(msg)
		}
	})
}

// ConnectMsg emits msg on h on each emission of sig.
func ConnectMsg[A, Msg any](sig *widget.Signal[A], h stream.Handle[Msg], msg Msg) widget.HandlerID {
	return sig.Connect(func(A) {
		h.Emit(msg)
	})
}

// ConnectReturn is Connect for signals whose handlers return a value to
// the widget.
func ConnectReturn[A, Msg any](sig *widget.ReturnSignal[A], h stream.Handle[Msg], f func(A) (Msg, bool, widget.Inhibit)) widget.HandlerID {
	return sig.Connect(func(a A) widget.Inhibit {
		msg, ok, inhibit := f(a)
		if ok {
			h.Emit(msg)
		}
		return inhibit
	})
}

// ConnectStream forwards the messages of src that match to dst, converted
// by match. Other messages are ignored.
func ConnectStream[A, B any](src stream.Handle[A], match func(A) (B, bool), dst stream.Handle[B]) {
	src.Observe(func(a A) {
		if b, ok := match(a); ok {
			dst.Emit(b)
		}
	})
}

// AsyncOp starts an asynchronous operation and calls done once with its
// result, on the UI goroutine.
type AsyncOp[T any] func(ctx context.Context, done func(T, error))

// ConnectAsync starts op and emits ok(v) on h when it succeeds. Failures
// are dropped.
func ConnectAsync[T, Msg any](h stream.Handle[Msg], op AsyncOp[T], ok func(T) Msg) {
	connectAsync(context.Background(), h, op, ok, nil)
}

// ConnectAsyncFunc starts op and emits ok(v) or fail(err) on h.
func ConnectAsyncFunc[T, Msg any](h stream.Handle[Msg], op AsyncOp[T], ok func(T) Msg, fail func(error) Msg) {
	connectAsync(context.Background(), h, op, ok, fail)
}

// ConnectAsyncFull is ConnectAsyncFunc with cancellation. Once cancel is
// called the result of op is no longer delivered.
func ConnectAsyncFull[T, Msg any](h stream.Handle[Msg], op AsyncOp[T], ok func(T) Msg, fail func(error) Msg) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	connectAsync(ctx, h, op, ok, fail)
	return cancel
}

// connectAsync wraps h in a Fragile: the completion must run on the
// goroutine that started the operation, and fails loudly otherwise.
func connectAsync[T, Msg any](ctx context.Context, h stream.Handle[Msg], op AsyncOp[T], ok func(T) Msg, fail func(error) Msg) {
	target := fragile.New(h)
	var once sync.Once
	op(ctx, func(v T, err error) {
		once.Do(func() {
			h := target.Get()
			if ctx.Err() != nil {
				return
			}
			switch {
			case err == nil:
				h.Emit(ok(v))
			case fail != nil:
				h.Emit(fail(err))
			}
		})
	})
}
