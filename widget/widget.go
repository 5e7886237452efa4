// Package widget provides a small retained-mode widget toolkit that the
// component runtime drives.
//
// Widgets are reference types identified by an ID and a type name, carry
// string properties, and expose typed signals. Containers own their
// children: destroying a container destroys its children, and destroying
// a widget detaches it from its parent and releases its signal handlers.
// Like native toolkits, widgets belong to the UI goroutine and are not
// safe for concurrent use.
package widget

import (
	"fmt"
	"maps"
)

// Widget is a node of the widget tree.
type Widget interface {
	ID() string
	Type() string
	Parent() Container
	Prop(k string) string
	SetProp(k, v string)
	Props() map[string]string
	Show()
	Visible() bool
	Destroy()
	Destroyed() bool
	ConnectDestroy(fn func()) HandlerID

	base() *Base
}

// Container is a widget that holds children.
type Container interface {
	Widget
	Add(child Widget)
	Remove(child Widget)
	Children() []Widget
}

// Base implements the Widget interface for the concrete widgets.
type Base struct {
	self      Widget
	id        string
	typ       string
	props     map[string]string
	parent    Container
	visible   bool
	destroyed bool
	destroy   Signal[struct{}]
	signals   []interface{ clear() }
}

func (b *Base) init(self Widget, id, typ string) {
	b.self = self
	b.id = id
	b.typ = typ
	b.props = make(map[string]string)
	b.track(&b.destroy)
}

// track registers a signal to be cleared when the widget is destroyed.
func (b *Base) track(s interface{ clear() }) {
	b.signals = append(b.signals, s)
}

func (b *Base) base() *Base { return b }

func (b *Base) ID() string { return b.id }

func (b *Base) Type() string { return b.typ }

func (b *Base) Parent() Container { return b.parent }

func (b *Base) Prop(k string) string { return b.props[k] }

func (b *Base) SetProp(k, v string) { b.props[k] = v }

// Props returns a copy of the widget's properties.
func (b *Base) Props() map[string]string { return maps.Clone(b.props) }

func (b *Base) Show() { b.visible = true }

func (b *Base) Visible() bool { return b.visible }

func (b *Base) Destroyed() bool { return b.destroyed }

// ConnectDestroy registers fn to run when the widget is destroyed.
func (b *Base) ConnectDestroy(fn func()) HandlerID {
	return b.destroy.Connect(func(struct{}) { fn() })
}

// Destroy detaches the widget from its parent, runs the destroy handlers
// and drops every signal handler.
func (b *Base) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	if b.parent != nil {
		b.parent.Remove(b.self)
	}
	b.destroy.Emit(struct{}{})
	for _, s := range b.signals {
		s.clear()
	}
}

// containerBase is embedded by widgets that hold children.
type containerBase struct {
	Base
	children []Widget
	max      int // 0 means unlimited
}

// Add appends child. Adding a widget that already has a parent, or adding
// past the container's capacity, panics as it does in native toolkits.
func (c *containerBase) Add(child Widget) {
	if child.Parent() != nil {
		panic(fmt.Sprintf("widget: %s %q already has a parent", child.Type(), child.ID()))
	}
	if c.max > 0 && len(c.children) >= c.max {
		panic(fmt.Sprintf("widget: %s %q cannot hold more than %d children", c.typ, c.id, c.max))
	}
	if child.Destroyed() {
		panic(fmt.Sprintf("widget: adding destroyed %s %q", child.Type(), child.ID()))
	}
	child.base().parent = c.self.(Container)
	c.children = append(c.children, child)
}

// Remove detaches child. Removing a widget that is not a child is a no-op.
func (c *containerBase) Remove(child Widget) {
	for i, w := range c.children {
		if w == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			child.base().parent = nil
			return
		}
	}
}

// Children returns a copy of the children in insertion order.
func (c *containerBase) Children() []Widget {
	return append([]Widget(nil), c.children...)
}

// Show shows the container and all of its descendants.
func (c *containerBase) Show() {
	c.visible = true
	for _, w := range c.children {
		w.Show()
	}
}

// Destroy destroys the children, last first, then the container.
func (c *containerBase) Destroy() {
	if c.destroyed {
		return
	}
	children := c.Children()
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Destroy()
	}
	c.Base.Destroy()
}
