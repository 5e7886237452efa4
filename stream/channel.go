package stream

import (
	"errors"
	"sync"
	"time"

	"github.com/elizafairlady/go-relm/mainloop"
)

// ErrChannelClosed is matched by the error Send returns once the
// receiving Channel was closed.
var ErrChannelClosed = errors.New("stream: send on closed channel")

// SendError carries back a message that could not be delivered.
type SendError[M any] struct {
	Msg M
}

func (e *SendError[M]) Error() string {
	return ErrChannelClosed.Error()
}

func (e *SendError[M]) Unwrap() error {
	return ErrChannelClosed
}

// queue is the unbounded multi-producer buffer between Senders and the
// Channel source.
type queue[M any] struct {
	mu     sync.Mutex
	items  []M
	closed bool
	ctx    *mainloop.Context
}

func (q *queue[M]) push(msg M) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return &SendError[M]{Msg: msg}
	}
	q.items = append(q.items, msg)
	q.mu.Unlock()
	q.ctx.Wakeup()
	return nil
}

func (q *queue[M]) pop() (M, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero M
	if len(q.items) == 0 {
		return zero, false
	}
	msg := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return msg, true
}

func (q *queue[M]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *queue[M]) close() {
	q.mu.Lock()
	q.closed = true
	q.items = nil
	q.mu.Unlock()
}

// Sender pushes messages into a Channel from any goroutine. Senders are
// values; copies share the same channel.
type Sender[M any] struct {
	q *queue[M]
}

// Send queues msg and wakes the loop of the channel. It fails with a
// *SendError once the channel was closed.
func (s Sender[M]) Send(msg M) error {
	return s.q.push(msg)
}

// Channel is the receiving end of a Sender. It is a main loop source that
// delivers one buffered message per dispatch to its callback on the
// goroutine owning the context.
type Channel[M any] struct {
	q        *queue[M]
	ctx      *mainloop.Context
	source   mainloop.SourceID
	callback func(M)
	peeked   M
	hasPeek  bool
	closed   bool
}

// NewChannel creates a channel on the calling goroutine's default context.
// The callback is typically a stream's Emit.
func NewChannel[M any](callback func(M)) (*Channel[M], Sender[M]) {
	return NewChannelWithContext(mainloop.ThreadDefault(), callback)
}

// NewChannelWithContext creates a channel attached to c.
func NewChannelWithContext[M any](c *mainloop.Context, callback func(M)) (*Channel[M], Sender[M]) {
	q := &queue[M]{ctx: c}
	ch := &Channel[M]{q: q, ctx: c, callback: callback}
	ch.source = c.Attach(&channelSource[M]{ch: ch}, mainloop.PriorityDefault)
	return ch, Sender[M]{q: q}
}

// Close drops the receiver: pending messages are discarded and later
// sends fail.
func (ch *Channel[M]) Close() {
	if ch.closed {
		return
	}
	ch.closed = true
	ch.q.close()
	ch.ctx.Remove(ch.source)
	var zero M
	ch.peeked, ch.hasPeek = zero, false
}

// Len returns the number of messages waiting to be dispatched.
func (ch *Channel[M]) Len() int {
	n := ch.q.len()
	if ch.hasPeek {
		n++
	}
	return n
}

// peek moves one message from the queue into the source so that the
// readiness reported to the loop matches what Dispatch will deliver.
func (ch *Channel[M]) peek() bool {
	if !ch.hasPeek && !ch.closed {
		ch.peeked, ch.hasPeek = ch.q.pop()
	}
	return ch.hasPeek
}

type channelSource[M any] struct {
	ch *Channel[M]
}

func (src *channelSource[M]) Prepare() (bool, time.Duration) {
	return src.ch.peek(), -1
}

func (src *channelSource[M]) Check() bool {
	return src.ch.peek()
}

func (src *channelSource[M]) Dispatch() bool {
	ch := src.ch
	if !ch.peek() {
		return !ch.closed
	}
	msg := ch.peeked
	var zero M
	ch.peeked, ch.hasPeek = zero, false
	ch.callback(msg)
	return !ch.closed
}
