package relm

import (
	"github.com/elizafairlady/go-relm/mainloop"
	"github.com/elizafairlady/go-relm/widget"
)

// Init creates a component that has no parent on the calling goroutine's
// default context. The caller owns it and must Destroy it.
func Init[Param, Model, Msg any, W Widget[Msg]](def WidgetDef[Param, Model, Msg, W], param Param) *Component[Msg, W] {
	c, r := construct(mainloop.ThreadDefault(), def, param)
	c.start(r)
	return c
}

// InitContainer is Init for container components.
func InitContainer[Param, Model, Msg any, W ContainerWidget[Msg]](def WidgetDef[Param, Model, Msg, W], param Param) *ContainerComponent[Msg, W] {
	c, r := construct(mainloop.ThreadDefault(), def, param)
	cc := newContainerComponent(c)
	c.start(r)
	return cc
}

// AddWidget creates a component and adds its root to the native container
// parent. When owner is not nil the child is adopted by it.
func AddWidget[Param, Model, Msg any, W Widget[Msg]](owner Owner, parent widget.Container, def WidgetDef[Param, Model, Msg, W], param Param) *Component[Msg, W] {
	c, r := construct(mainloop.ThreadDefault(), def, param)
	attach(c, func() widget.Container {
		parent.Add(c.root)
		return parent
	})
	c.start(r)
	adopt(owner, c)
	return c
}

// AddChild creates a component and inserts its root into the container
// component parent, which picks the slot.
func AddChild[Param, Model, Msg any, W Widget[Msg]](owner Owner, parent Host, def WidgetDef[Param, Model, Msg, W], param Param) *Component[Msg, W] {
	c, r := construct(mainloop.ThreadDefault(), def, param)
	attach(c, func() widget.Container {
		return parent.insert(Embedded{Root: c.root, ParentID: parentID(c.widget)})
	})
	c.start(r)
	adopt(owner, c)
	return c
}

// AddContainer is AddWidget for container components.
func AddContainer[Param, Model, Msg any, W ContainerWidget[Msg]](owner Owner, parent widget.Container, def WidgetDef[Param, Model, Msg, W], param Param) *ContainerComponent[Msg, W] {
	c, r := construct(mainloop.ThreadDefault(), def, param)
	cc := newContainerComponent(c)
	attach(c, func() widget.Container {
		parent.Add(c.root)
		return parent
	})
	c.start(r)
	adopt(owner, cc)
	return cc
}

// attach inserts the root of c with insert and notifies the component.
// The component is destroyed if insertion panics.
func attach[Msg any, W Widget[Msg]](c *Component[Msg, W], insert func() widget.Container) {
	ok := false
	defer func() {
		if !ok {
			c.Destroy()
		}
	}()
	used := insert()
	if a, isAdder := any(c.widget).(Adder); isAdder {
		a.OnAdd(used)
	}
	ok = true
}

func adopt(owner Owner, child Child) {
	if owner != nil {
		owner.Adopt(child)
	}
}
