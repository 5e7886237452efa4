package relm

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/elizafairlady/go-relm/mainloop"
	"github.com/elizafairlady/go-relm/stream"
	"github.com/elizafairlady/go-relm/widget"
)

// Phase is the lifecycle state of a component.
type Phase int

const (
	PhaseUninit Phase = iota
	PhaseConstructed
	PhaseViewed
	PhaseRunning
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninit:
		return "uninit"
	case PhaseConstructed:
		return "constructed"
	case PhaseViewed:
		return "viewed"
	case PhaseRunning:
		return "running"
	case PhaseDestroyed:
		return "destroyed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// lifecycle is the state shared by every kind of component.
type lifecycle struct {
	id       uuid.UUID
	name     string
	phase    Phase
	updating bool
	children []Child
}

func newLifecycle(name string) lifecycle {
	return lifecycle{id: uuid.New(), name: name}
}

// ID returns the unique id of the component instance.
func (l *lifecycle) ID() uuid.UUID { return l.id }

// Name returns the name of the component's definition.
func (l *lifecycle) Name() string { return l.name }

// Phase returns the lifecycle phase.
func (l *lifecycle) Phase() Phase { return l.phase }

// Alive reports whether the component has not been destroyed.
func (l *lifecycle) Alive() bool { return l.phase != PhaseDestroyed }

// Adopt makes the component own child: child is destroyed with it, or
// right away if the component is already destroyed. Children destroyed
// on their own are dropped here.
func (l *lifecycle) Adopt(child Child) {
	if l.phase == PhaseDestroyed {
		child.Destroy()
		return
	}
	live := l.children[:0]
	for _, c := range l.children {
		if c.Alive() {
			live = append(live, c)
		}
	}
	clear(l.children[len(live):])
	l.children = append(live, child)
}

func (l *lifecycle) destroyChildren() {
	children := l.children
	l.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Destroy()
	}
}

func (l *lifecycle) started() {
	l.phase = PhaseRunning
	s := loadSettings()
	s.log().Debug("component started", "component", l.name, "id", l.id)
	if s.hooks != nil {
		s.hooks.ComponentCreated(l.name)
	}
}

func (l *lifecycle) stopped(wasRunning bool) {
	s := loadSettings()
	s.log().Debug("component destroyed", "component", l.name, "id", l.id)
	if wasRunning && s.hooks != nil {
		s.hooks.ComponentDestroyed(l.name)
	}
}

// update runs one Update call, timing it. Updates of a component never
// overlap: the stream source is not dispatched recursively, so a second
// update can only start here through a bug in the loop.
func update[Msg any](l *lifecycle, u Update[Msg], msg Msg) {
	if l.updating {
		panic(fmt.Sprintf("relm: overlapping update of component %s", l.name))
	}
	l.updating = true
	defer func() { l.updating = false }()

	start := time.Now()
	u.Update(msg)
	elapsed := time.Since(start)

	s := loadSettings()
	slow := s.slowUpdate > 0 && elapsed > s.slowUpdate
	if s.hooks == nil && !slow {
		return
	}
	variant := VariantName(msg)
	if s.hooks != nil {
		s.hooks.UpdateFinished(l.name, variant, elapsed)
	}
	if slow {
		s.log().Warn("slow update",
			"component", l.name,
			"id", l.id,
			"msg", variant,
			"elapsed", elapsed,
		)
		if s.hooks != nil {
			s.hooks.SlowUpdate(l.name, variant, elapsed)
		}
	}
}

// Component is the owning handle of a live component. It keeps the
// component's stream open; Destroy tears the component down.
type Component[Msg any, W Widget[Msg]] struct {
	lifecycle
	stream *stream.EventStream[Msg]
	widget W
	root   widget.Widget
}

// Emit emits msg on the component's stream.
func (c *Component[Msg, W]) Emit(msg Msg) {
	c.stream.Emit(msg)
}

// Stream returns a handle to the component's stream.
func (c *Component[Msg, W]) Stream() stream.Handle[Msg] {
	return c.stream.Downgrade()
}

// Root returns the component's root widget.
func (c *Component[Msg, W]) Root() widget.Widget {
	return c.root
}

// Instance returns the value built by the component's View.
func (c *Component[Msg, W]) Instance() W {
	return c.widget
}

// Destroy closes the stream, discarding pending messages, destroys the
// adopted children, last first, and destroys the root widget, which
// detaches it from its parent. Destroying twice is harmless.
func (c *Component[Msg, W]) Destroy() {
	if c.phase == PhaseDestroyed {
		return
	}
	wasRunning := c.phase == PhaseRunning
	c.phase = PhaseDestroyed
	c.stream.Close()
	c.destroyChildren()
	if c.root != nil {
		c.root.Destroy()
	}
	c.stopped(wasRunning)
}

// construct runs the first half of the creation sequence: stream, model,
// view and InitView. If Model or View panics, the partial component is
// destroyed and the panic propagates.
func construct[Param, Model, Msg any, W Widget[Msg]](ctx *mainloop.Context, def WidgetDef[Param, Model, Msg, W], param Param) (*Component[Msg, W], *Relm[Msg]) {
	if def.View == nil {
		panic(fmt.Sprintf("relm: component %s has no View", def.Name))
	}
	c := &Component[Msg, W]{
		lifecycle: newLifecycle(def.Name),
		stream:    stream.NewWithContext[Msg](ctx),
	}
	r := &Relm[Msg]{stream: c.stream.Downgrade(), owner: &c.lifecycle}

	ok := false
	defer func() {
		if !ok {
			c.Destroy()
		}
	}()

	model := buildModel(def.Model, r, param)
	c.widget = def.View(r, model)
	c.root = c.widget.Root()
	c.phase = PhaseConstructed
	if v, isIniter := any(c.widget).(ViewIniter); isIniter {
		v.InitView()
	}
	c.phase = PhaseViewed
	ok = true
	return c, r
}

// start installs the consumer callback and runs Subscriptions.
func (c *Component[Msg, W]) start(r *Relm[Msg]) {
	c.stream.SetCallback(func(msg Msg) {
		update[Msg](&c.lifecycle, c.widget, msg)
	})
	c.started()
	if s, ok := any(c.widget).(Subscriber[Msg]); ok {
		s.Subscriptions(r)
	}
}

// ContainerComponent is a Component that accepts child components.
type ContainerComponent[Msg any, W ContainerWidget[Msg]] struct {
	*Component[Msg, W]
	container  widget.Container
	containers Slots
}

// Host is a container component seen independently of its types.
type Host interface {
	Container() widget.Container
	Containers() Slots
	insert(e Embedded) widget.Container
}

var _ Host = (*ContainerComponent[struct{}, ContainerWidget[struct{}]])(nil)

func newContainerComponent[Msg any, W ContainerWidget[Msg]](c *Component[Msg, W]) *ContainerComponent[Msg, W] {
	return &ContainerComponent[Msg, W]{
		Component:  c,
		container:  c.widget.Container(),
		containers: c.widget.Containers(),
	}
}

// Container returns the default insertion point for children.
func (c *ContainerComponent[Msg, W]) Container() widget.Container {
	return c.container
}

// Containers returns the named insertion points.
func (c *ContainerComponent[Msg, W]) Containers() Slots {
	return c.containers
}

func (c *ContainerComponent[Msg, W]) insert(e Embedded) widget.Container {
	if a, ok := any(c.widget).(ChildAdder); ok {
		return a.AddWidget(e)
	}
	c.container.Add(e.Root)
	return c.container
}

// Headless is the owning handle of a component without widgets.
type Headless[Msg any, U Update[Msg]] struct {
	lifecycle
	stream   *stream.EventStream[Msg]
	instance U
}

// Emit emits msg on the component's stream.
func (h *Headless[Msg, U]) Emit(msg Msg) {
	h.stream.Emit(msg)
}

// Stream returns a handle to the component's stream.
func (h *Headless[Msg, U]) Stream() stream.Handle[Msg] {
	return h.stream.Downgrade()
}

// Instance returns the value built by New.
func (h *Headless[Msg, U]) Instance() U {
	return h.instance
}

// Root returns nil: headless components have no widgets.
func (h *Headless[Msg, U]) Root() widget.Widget {
	return nil
}

// Destroy closes the stream and destroys adopted children.
func (h *Headless[Msg, U]) Destroy() {
	if h.phase == PhaseDestroyed {
		return
	}
	wasRunning := h.phase == PhaseRunning
	h.phase = PhaseDestroyed
	h.stream.Close()
	h.destroyChildren()
	h.stopped(wasRunning)
}

// Execute creates a headless component on the calling goroutine's default
// context.
func Execute[Param, Model, Msg any, U Update[Msg]](def UpdateDef[Param, Model, Msg, U], param Param) *Headless[Msg, U] {
	if def.New == nil {
		panic(fmt.Sprintf("relm: component %s has no New", def.Name))
	}
	h := &Headless[Msg, U]{
		lifecycle: newLifecycle(def.Name),
		stream:    stream.NewWithContext[Msg](mainloop.ThreadDefault()),
	}
	r := &Relm[Msg]{stream: h.stream.Downgrade(), owner: &h.lifecycle}

	ok := false
	defer func() {
		if !ok {
			h.Destroy()
		}
	}()

	model := buildModel(def.Model, r, param)
	h.instance = def.New(r, model)
	h.phase = PhaseViewed
	h.stream.SetCallback(func(msg Msg) {
		update[Msg](&h.lifecycle, h.instance, msg)
	})
	h.started()
	if s, isSub := any(h.instance).(Subscriber[Msg]); isSub {
		s.Subscriptions(r)
	}
	ok = true
	return h
}
