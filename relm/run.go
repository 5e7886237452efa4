package relm

import (
	"context"

	"github.com/elizafairlady/go-relm/mainloop"
)

// Run creates the component described by def, shows its root and runs the
// main loop of the calling goroutine until the root widget is destroyed or
// Quit is called on the component's Relm. The component is destroyed
// before Run returns.
func Run[Param, Model, Msg any, W Widget[Msg]](def WidgetDef[Param, Model, Msg, W], param Param) error {
	return RunContext(context.Background(), def, param)
}

// RunContext is like Run but also stops when ctx is done.
func RunContext[Param, Model, Msg any, W Widget[Msg]](ctx context.Context, def WidgetDef[Param, Model, Msg, W], param Param) error {
	mc := mainloop.ThreadDefault()
	if !mc.Acquire() {
		return mainloop.ErrNotOwner
	}
	loop := mainloop.NewLoop(mc)

	c := Init(def, param)
	defer c.Destroy()

	if root := c.Root(); root != nil {
		root.ConnectDestroy(loop.Quit)
		root.Show()
	}

	log := loadSettings().log()
	log.Info("main loop started", "component", c.Name(), "id", c.ID())
	if err := loop.RunContext(ctx); err != nil {
		log.Info("main loop cancelled", "component", c.Name(), "id", c.ID(), "err", err)
		return nil
	}
	log.Info("main loop stopped", "component", c.Name(), "id", c.ID())
	return nil
}
