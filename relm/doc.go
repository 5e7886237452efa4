// Package relm is a Model-View-Update component runtime for the widget
// toolkit.
//
// A component owns a model and its widgets. Its state changes only in
// Update, which receives the messages emitted on the component's stream.
// Messages are queued and delivered one per main loop dispatch on the UI
// goroutine, so emitting from inside Update never recurses into another
// Update: it schedules it.
//
// A component type is described by a WidgetDef, which provides the model
// constructor and the view constructor:
//
//	var Counter = relm.WidgetDef[int, int, Msg, *counter]{
//		Name:  "counter",
//		Model: func(_ *relm.Relm[Msg], start int) int { return start },
//		View: func(r *relm.Relm[Msg], model int) *counter {
//			c := &counter{model: model, inc: widget.NewButton("inc", "+")}
//			relm.ConnectMsg(&c.inc.Clicked, r.Stream(), Inc)
//			...
//			return c
//		},
//	}
//
//	err := relm.Run(Counter, 0)
//
// Components are created in this order: stream, model, view, InitView,
// consumer callback, Subscriptions. Destroying a component closes its
// stream, destroys the children it adopted and destroys its root widget.
package relm
