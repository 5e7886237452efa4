package relm_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/elizafairlady/go-relm/relm"
	"github.com/elizafairlady/go-relm/stream"
	"github.com/elizafairlady/go-relm/widget"
)

type appMsg int

const (
	closeWindow appMsg = iota
	quitLoop
)

type app struct {
	r   *relm.Relm[appMsg]
	win *widget.Window
}

func (a *app) Update(m appMsg) {
	switch m {
	case closeWindow:
		a.win.Close()
	case quitLoop:
		a.r.Quit()
	}
}

func (a *app) Root() widget.Widget { return a.win }

func appDef(got **app, first ...appMsg) relm.WidgetDef[struct{}, struct{}, appMsg, *app] {
	return relm.WidgetDef[struct{}, struct{}, appMsg, *app]{
		Name: "app",
		View: func(r *relm.Relm[appMsg], _ struct{}) *app {
			a := &app{r: r, win: widget.NewWindow("main", "app")}
			a.win.Add(widget.NewLabel("hello", "hello"))
			for _, m := range first {
				m := m
				relm.Timeout(r.Stream(), time.Millisecond, func() appMsg { return m })
			}
			*got = a
			return a
		},
	}
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	setup(t)
	var a *app
	require.NoError(t, relm.Run(appDef(&a, closeWindow), struct{}{}))
	assert.True(t, a.win.Destroyed())
	assert.True(t, a.win.Visible())
	assert.Empty(t, a.win.Children())
}

func TestRunStopsOnQuit(t *testing.T) {
	mc := setup(t)
	var a *app
	require.NoError(t, relm.Run(appDef(&a, quitLoop), struct{}{}))
	assert.True(t, a.win.Destroyed(), "component not destroyed after Run")
	assert.Equal(t, 0, mc.Len())
}

func TestRunContextCancel(t *testing.T) {
	setup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var a *app
	require.NoError(t, relm.RunContext(ctx, appDef(&a), struct{}{}))
	assert.True(t, a.win.Destroyed())
}

func TestTimeout(t *testing.T) {
	mc := setup(t)
	rec := relm.Execute(recorderDef, struct{}{})
	defer rec.Destroy()

	relm.Timeout(rec.Stream(), time.Millisecond, func() string { return "fired" })
	for len(rec.Instance().got) == 0 {
		mc.Iteration(true)
	}
	assert.Equal(t, []string{"fired"}, rec.Instance().got)
	assert.Equal(t, 1, mc.Len(), "one-shot timer still attached")
}

func TestIntervalStopsWithStream(t *testing.T) {
	mc := setup(t)
	rec := relm.Execute(recorderDef, struct{}{})

	n := 0
	relm.Interval(rec.Stream(), time.Millisecond, func() string {
		n++
		return "tick"
	})
	for len(rec.Instance().got) < 3 {
		mc.Iteration(true)
	}
	rec.Destroy()
	ticks := n
	for mc.Len() > 0 {
		mc.Iteration(true)
	}
	assert.Equal(t, ticks, n)
}

func TestTimerOnDestroyedStream(t *testing.T) {
	setup(t)
	rec := relm.Execute(recorderDef, struct{}{})
	h := rec.Stream()
	rec.Destroy()
	assert.PanicsWithValue(t, stream.ErrStreamDropped, func() {
		relm.Timeout(h, time.Millisecond, func() string { return "late" })
	})
}

type accumulator struct {
	sum   int
	order []int
}

func (a *accumulator) Update(i int) {
	a.sum += i
	a.order = append(a.order, i)
}

func TestChannelIngress(t *testing.T) {
	const n = 1000
	mc := setup(t)
	acc := relm.Execute(relm.UpdateDef[struct{}, struct{}, int, *accumulator]{
		Name: "accumulator",
		New:  func(*relm.Relm[int], struct{}) *accumulator { return &accumulator{} },
	}, struct{}{})
	defer acc.Destroy()

	ch, tx := stream.NewChannel(func(i int) { acc.Emit(i) })
	defer ch.Close()

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < n; i++ {
			if err := tx.Send(i); err != nil {
				return err
			}
		}
		return nil
	})
	for len(acc.Instance().order) < n {
		mc.Iteration(true)
	}
	require.NoError(t, g.Wait())

	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, acc.Instance().order)
	assert.Equal(t, n*(n-1)/2, acc.Instance().sum)
}

func TestExecuteWithoutNew(t *testing.T) {
	setup(t)
	assert.Panics(t, func() {
		relm.Execute(relm.UpdateDef[struct{}, struct{}, string, *recorder]{Name: "empty"}, struct{}{})
	})
}

func TestHeadlessRoot(t *testing.T) {
	setup(t)
	rec := relm.Execute(recorderDef, struct{}{})
	defer rec.Destroy()
	assert.Nil(t, rec.Root())
	assert.Equal(t, relm.PhaseRunning, rec.Phase())
}

type hookEvent struct {
	kind, name, msg string
}

type fakeHooks struct {
	events []hookEvent
}

func (f *fakeHooks) ComponentCreated(name string) {
	f.events = append(f.events, hookEvent{kind: "created", name: name})
}

func (f *fakeHooks) ComponentDestroyed(name string) {
	f.events = append(f.events, hookEvent{kind: "destroyed", name: name})
}

func (f *fakeHooks) UpdateFinished(name, msg string, _ time.Duration) {
	f.events = append(f.events, hookEvent{kind: "update", name: name, msg: msg})
}

func (f *fakeHooks) SlowUpdate(name, msg string, _ time.Duration) {
	f.events = append(f.events, hookEvent{kind: "slow", name: name, msg: msg})
}

func configure(t *testing.T, opts ...relm.Option) {
	t.Helper()
	relm.Configure(opts...)
	t.Cleanup(func() {
		relm.Configure(
			relm.WithLogger(nil),
			relm.WithHooks(nil),
			relm.WithSlowUpdateThreshold(relm.DefaultSlowUpdate),
		)
	})
}

func TestHooksAndSlowUpdate(t *testing.T) {
	mc := setup(t)
	var buf bytes.Buffer
	hooks := &fakeHooks{}
	configure(t,
		relm.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		relm.WithHooks(hooks),
		relm.WithSlowUpdateThreshold(time.Millisecond),
	)

	c := relm.Init(counterDef, 0)
	c.Emit(Inc)
	c.Emit(Sleep)
	mc.DispatchPending()
	c.Destroy()

	assert.Equal(t, []hookEvent{
		{kind: "created", name: "counter"},
		{kind: "update", name: "counter", msg: "Inc"},
		{kind: "update", name: "counter", msg: "Sleep"},
		{kind: "slow", name: "counter", msg: "Sleep"},
		{kind: "destroyed", name: "counter"},
	}, hooks.events)
	assert.Contains(t, buf.String(), `msg="slow update"`)
	assert.Contains(t, buf.String(), "component=counter")
	assert.Contains(t, buf.String(), "msg=Sleep")
	assert.NotContains(t, buf.String(), "msg=Inc")
}

func TestSlowUpdateDisabled(t *testing.T) {
	mc := setup(t)
	var buf bytes.Buffer
	configure(t,
		relm.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		relm.WithSlowUpdateThreshold(0),
	)

	c := relm.Init(counterDef, 0)
	defer c.Destroy()
	c.Emit(Sleep)
	mc.DispatchPending()
	assert.Empty(t, buf.String())
}

func TestVariantName(t *testing.T) {
	assert.Equal(t, "Dec", relm.VariantName(Dec))
	assert.Equal(t, "closed", relm.VariantName(stringer("closed")))
	assert.Equal(t, "int", relm.VariantName(3))
}

type stringer string

func (s stringer) String() string { return string(s) }
