package relm

import (
	"github.com/elizafairlady/go-relm/mainloop"
	"github.com/elizafairlady/go-relm/stream"
	"github.com/elizafairlady/go-relm/widget"
)

// Relm is the context handed to a component's Model, View and
// Subscriptions. It gives the component access to its own stream.
type Relm[Msg any] struct {
	stream stream.Handle[Msg]
	owner  *lifecycle
}

// Stream returns a handle to the component's stream.
func (r *Relm[Msg]) Stream() stream.Handle[Msg] {
	return r.stream
}

// Context returns the main loop context the component runs on.
func (r *Relm[Msg]) Context() *mainloop.Context {
	return r.stream.Context()
}

// Emit emits msg on the component's stream.
func (r *Relm[Msg]) Emit(msg Msg) {
	r.stream.Emit(msg)
}

// Adopt makes the component own child: the child is destroyed with it.
func (r *Relm[Msg]) Adopt(child Child) {
	r.owner.Adopt(child)
}

// Quit stops the innermost loop running on the component's context.
func (r *Relm[Msg]) Quit() {
	r.Context().Quit()
}

// Child is the lifecycle view of a component, independent of its types.
// Parents keep heterogeneous children as Child values.
type Child interface {
	// Root returns the root widget, or nil for components without one.
	Root() widget.Widget
	Alive() bool
	Destroy()
}

// Owner adopts children. *Relm, *Component and *Headless implement it.
type Owner interface {
	Adopt(child Child)
}

var (
	_ Owner = (*Relm[struct{}])(nil)
	_ Owner = (*Component[struct{}, Widget[struct{}]])(nil)
	_ Owner = (*Headless[struct{}, Update[struct{}]])(nil)
	_ Child = (*Component[struct{}, Widget[struct{}]])(nil)
	_ Child = (*Headless[struct{}, Update[struct{}]])(nil)
)
