package main

import (
	"strconv"

	"github.com/elizafairlady/go-relm/relm"
	"github.com/elizafairlady/go-relm/widget"
)

type counterMsg int

const (
	Inc counterMsg = iota
	Dec
)

func (m counterMsg) VariantName() string {
	if m == Inc {
		return "Inc"
	}
	return "Dec"
}

type counter struct {
	count    int
	root     *widget.Box
	inc, dec *widget.Button
	label    *widget.Label
}

func (c *counter) Update(m counterMsg) {
	switch m {
	case Inc:
		c.count++
	case Dec:
		c.count--
	}
	c.label.SetText(strconv.Itoa(c.count))
}

func (c *counter) Root() widget.Widget { return c.root }

// Counter shows a count with buttons to change it. The parameter names
// the counter and prefixes its widget ids.
var Counter = relm.WidgetDef[string, string, counterMsg, *counter]{
	Name:  "counter",
	Model: func(_ *relm.Relm[counterMsg], name string) string { return name },
	View: func(r *relm.Relm[counterMsg], name string) *counter {
		c := &counter{
			dec:   widget.NewButton(name+"-dec", "-"),
			label: widget.NewLabel(name+"-count", "0"),
			inc:   widget.NewButton(name+"-inc", "+"),
		}
		c.root = widget.NewHBox(name, c.dec, c.label, c.inc)
		relm.ConnectMsg(&c.inc.Clicked, r.Stream(), Inc)
		relm.ConnectMsg(&c.dec.Clicked, r.Stream(), Dec)
		return c
	},
}
