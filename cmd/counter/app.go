package main

import (
	"github.com/elizafairlady/go-relm/relm"
	"github.com/elizafairlady/go-relm/stream"
	"github.com/elizafairlady/go-relm/widget"
)

type appMsg int

const (
	clickA appMsg = iota
	clickB
	finish
)

func (m appMsg) VariantName() string {
	switch m {
	case clickA:
		return "ClickA"
	case clickB:
		return "ClickB"
	}
	return "Finish"
}

type app struct {
	r      *relm.Relm[appMsg]
	clicks int
	win    *widget.Window
	a, b   *relm.Component[counterMsg, *counter]
	dump   string
}

func (a *app) Update(m appMsg) {
	switch m {
	case clickA:
		a.a.Instance().inc.Click()
	case clickB:
		a.b.Instance().inc.Click()
	case finish:
		// Counters may still hold queued messages; close once they drained.
		a.r.Context().IdleAdd(func() bool {
			a.dump = widget.Dump(a.win)
			a.win.Close()
			return false
		})
	}
}

func (a *app) Root() widget.Widget { return a.win }

// Subscriptions feeds simulated clicks from a worker goroutine, as a
// background task would report progress.
func (a *app) Subscriptions(r *relm.Relm[appMsg]) {
	ch, tx := stream.NewChannelWithContext(r.Context(), func(m appMsg) { r.Emit(m) })
	a.win.ConnectDestroy(ch.Close)
	go func() {
		for i := 0; i < a.clicks; i++ {
			m := clickA
			if i%3 == 2 {
				m = clickB
			}
			if err := tx.Send(m); err != nil {
				return
			}
		}
		if err := tx.Send(finish); err != nil {
			return
		}
	}()
}

// App is a window holding two counters. Incrementing the first one
// decrements the second.
var App = relm.WidgetDef[int, int, appMsg, *app]{
	Name:  "app",
	Model: func(_ *relm.Relm[appMsg], clicks int) int { return clicks },
	View: func(r *relm.Relm[appMsg], clicks int) *app {
		a := &app{r: r, clicks: clicks, win: widget.NewWindow("main", "Counters")}
		box := widget.NewVBox("counters")
		a.win.Add(box)
		a.a = relm.AddWidget(r, box, Counter, "a")
		a.b = relm.AddWidget(r, box, Counter, "b")
		relm.ConnectStream(a.a.Stream(), func(m counterMsg) (counterMsg, bool) {
			return Dec, m == Inc
		}, a.b.Stream())
		return a
	},
}
