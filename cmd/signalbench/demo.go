package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/urfave/cli/v3"
)

func runtimeOptions(cmd *cli.Command, opts ...reactive.Option) []reactive.Option {
	if cmd.Bool(verboseKey) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, reactive.WithLogger(logger))
	}
	return opts
}

const (
	demoWindow reactive.WindowID = 1
	demoLabel  reactive.WidgetID = 1
	demoMeter  reactive.WidgetID = 2
	demoGain   reactive.ParamID  = 1
)

type demoWidget struct {
	text string
}

// demoHost is an in-memory window with two widgets and one parameter.
type demoHost struct {
	widgets map[reactive.WidgetID]*demoWidget
	params  map[reactive.ParamID]float64
	layouts int
	renders int
}

func newDemoHost() *demoHost {
	return &demoHost{
		widgets: map[reactive.WidgetID]*demoWidget{
			demoLabel: {},
			demoMeter: {},
		},
		params: map[reactive.ParamID]float64{},
	}
}

func (h *demoHost) RequestLayout(reactive.WindowID) { h.layouts++ }
func (h *demoHost) RequestRender(reactive.WidgetID) { h.renders++ }

func (h *demoHost) WidgetMut(id reactive.WidgetID) (reactive.Widget, reactive.WindowID, bool) {
	w, ok := h.widgets[id]
	return w, demoWindow, ok
}

func (h *demoHost) ParameterValue(id reactive.ParamID) float64 { return h.params[id] }

func (h *demoHost) SetParameterValue(id reactive.ParamID, v float64) { h.params[id] = v }

func (h *demoHost) host() reactive.Host {
	return reactive.Host{Layout: h, Widgets: h, Params: h}
}

func setText(text string) func(reactive.Widget) {
	return func(w reactive.Widget) {
		w.(*demoWidget).text = text
	}
}

// demo is a small UI-shaped graph: a tick counter drives a parity memo and a gain
// level, two widgets render them and the gain is bound to a host parameter.
type demo struct {
	tick    *reactive.Signal[int]
	gain    *reactive.Signal[float64]
	binding *reactive.Binding
}

func buildDemo(rt *reactive.Runtime) *demo {
	d := &demo{
		tick: reactive.NewSignal(rt, 0, reactive.WithLabel("tick")),
		gain: reactive.NewSignal(rt, 0.0, reactive.WithLabel("gain")),
	}
	parity := reactive.NewMemo(rt, func() string {
		if d.tick.Get(rt)%2 == 0 {
			return "even"
		}
		return "odd"
	}, reactive.WithLabel("parity"))
	level := reactive.NewMemo(rt, func() int {
		return int(d.gain.Get(rt) * 10)
	}, reactive.WithLabel("level"))

	reactive.NewEffect(rt, func() {
		rt.QueueWidgetUpdate(demoLabel, setText(fmt.Sprintf("tick is %s", parity.Get(rt))))
	}, reactive.WithLabel("label"))
	reactive.NewEffect(rt, func() {
		rt.QueueWidgetUpdate(demoMeter, setText(fmt.Sprintf("level %d", level.Get(rt))))
	}, reactive.WithLabel("meter"))
	reactive.NewEffect(rt, func() {
		n := d.tick.Get(rt)
		rt.Untrack(func() {
			d.gain.Set(rt, float64(n%10)/10)
		})
	}, reactive.WithLabel("sweep"))

	d.binding = reactive.BindParameter(rt, demoGain, d.gain)
	return d
}

func (d *demo) step(rt *reactive.Runtime) {
	d.tick.Update(rt, func(n int) int { return n + 1 })
	rt.Flush()
}
