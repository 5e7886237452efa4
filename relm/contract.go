package relm

import (
	"fmt"

	"github.com/elizafairlady/go-relm/widget"
)

// Update is implemented by every component: it applies one message to
// the component's model.
type Update[Msg any] interface {
	Update(msg Msg)
}

// Subscriber is implemented by components that wire external message
// sources once their view exists. Subscriptions runs before any message
// is dispatched to the component.
type Subscriber[Msg any] interface {
	Subscriptions(r *Relm[Msg])
}

// Widget is a component with a root widget.
type Widget[Msg any] interface {
	Update[Msg]
	Root() widget.Widget
}

// ViewIniter is implemented by components that need a hook after their
// view was built.
type ViewIniter interface {
	InitView()
}

// Adder is implemented by components that want to know which container
// they were inserted into.
type Adder interface {
	OnAdd(parent widget.Container)
}

// ParentIDer is implemented by components that ask a multi-slot
// container for a specific slot. An empty id means the default slot.
type ParentIDer interface {
	ParentID() string
}

// ContainerWidget is a component that accepts child components.
type ContainerWidget[Msg any] interface {
	Widget[Msg]
	// Container is where children go by default.
	Container() widget.Container
	// Containers names additional insertion points; nil if none.
	Containers() Slots
}

// ChildAdder is implemented by container components that choose where
// each child is inserted. AddWidget inserts e.Root and returns the
// container it used.
type ChildAdder interface {
	AddWidget(e Embedded) widget.Container
}

// Embedded describes a child being inserted into a container component.
type Embedded struct {
	Root     widget.Widget
	ParentID string
}

// Slots maps parent ids to insertion points.
type Slots map[string]widget.Container

// Insert adds e.Root to the slot named by e.ParentID, or to fallback when
// the child names no slot or an unknown one, and returns the container
// used.
func (s Slots) Insert(e Embedded, fallback widget.Container) widget.Container {
	target := fallback
	if c, ok := s[e.ParentID]; ok && e.ParentID != "" {
		target = c
	}
	target.Add(e.Root)
	return target
}

// WidgetDef defines a component type: how to build its model from a
// parameter and its view from the model.
type WidgetDef[Param, Model, Msg any, W Widget[Msg]] struct {
	// Name is used in logs and metrics.
	Name string
	// Model builds the initial model. A nil Model yields the zero Model.
	Model func(r *Relm[Msg], param Param) Model
	// View builds the component, its widgets and its signal connections.
	View func(r *Relm[Msg], model Model) W
}

// UpdateDef defines a component type without widgets.
type UpdateDef[Param, Model, Msg any, U Update[Msg]] struct {
	Name  string
	Model func(r *Relm[Msg], param Param) Model
	New   func(r *Relm[Msg], model Model) U
}

// VariantNamer is implemented by message types to name their variants in
// traces.
type VariantNamer interface {
	VariantName() string
}

// VariantName returns the name used for msg in logs and metrics.
func VariantName(msg any) string {
	switch m := msg.(type) {
	case VariantNamer:
		return m.VariantName()
	case fmt.Stringer:
		return m.String()
	default:
		return fmt.Sprintf("%T", msg)
	}
}

func buildModel[Param, Model, Msg any](fn func(*Relm[Msg], Param) Model, r *Relm[Msg], param Param) Model {
	if fn == nil {
		var zero Model
		return zero
	}
	return fn(r, param)
}

func parentID(w any) string {
	if p, ok := w.(ParentIDer); ok {
		return p.ParentID()
	}
	return ""
}
