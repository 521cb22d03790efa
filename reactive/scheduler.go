package reactive

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Flush runs all pending work to quiescence. Tasks queued while flushing run in the
// same call, in FIFO order. Windows touched by widget or animation updates get one
// layout request each, after the queue is empty. Nodes whose last handle was dropped
// are removed before and after the drain. Calling Flush from inside a flush is a no-op.
//
// A panic from user code propagates to the caller; the runtime stays usable and the
// remaining tasks run on the next Flush.
func (rt *Runtime) Flush() {
	rt.checkGoroutine()
	if rt.flushing {
		return
	}
	rt.flushing = true
	start := time.Now()
	_, span := rt.cfg.Tracer.Start(context.Background(), "reactive.flush")
	defer func() {
		rt.flushing = false
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, fmt.Sprint(r))
			span.End()
			panic(r)
		}
		span.End()
	}()

	removed := rt.sweep()
	ran := 0
	for rt.queue.len() > 0 {
		if rt.cfg.FlushBudget > 0 && ran >= rt.cfg.FlushBudget {
			fatalf(ErrFlushBudget, "more than %d tasks in one flush", rt.cfg.FlushBudget)
		}
		t, _ := rt.queue.pop()
		ran++
		rt.execute(t)
	}

	layouts := rt.requestLayouts()
	removed += rt.sweep()
	rt.flushes++

	span.SetAttributes(
		attribute.Int("reactive.tasks", ran),
		attribute.Int("reactive.layouts", layouts),
		attribute.Int("reactive.removed", removed),
		attribute.Int("reactive.nodes", rt.nodes.len()),
	)
	rt.cfg.Metrics.observeFlush(time.Since(start), layouts)
	if ran > 0 || removed > 0 {
		rt.log.Debug("reactive: flush",
			"tasks", ran,
			"layouts", layouts,
			"removed", removed,
			"nodes", rt.nodes.len(),
		)
	}

	for _, hook := range rt.cfg.AfterFlush {
		hook(rt)
	}
}

// Flushes returns the number of completed flushes.
func (rt *Runtime) Flushes() uint64 {
	rt.checkGoroutine()
	return rt.flushes
}

func (rt *Runtime) execute(t Task) {
	outcome := "ran"
	switch t.kind {
	case TaskRunEffect:
		body := t.effect.Value()
		if body == nil || body.fn == nil {
			outcome = "skipped"
			break
		}
		rt.runQueuedEffect(body)

	case TaskUpdateBinding:
		b := t.binding.Value()
		if b == nil || !b.live(rt) {
			outcome = "skipped"
			break
		}
		b.apply(rt, t.direction)

	case TaskUpdateWidget:
		if rt.cfg.Host.Widgets == nil {
			outcome = "skipped"
			break
		}
		w, window, ok := rt.cfg.Host.Widgets.WidgetMut(t.widget)
		if !ok {
			rt.log.Debug("reactive: widget gone", "widget", t.widget)
			outcome = "skipped"
			break
		}
		t.update(w)
		if rt.cfg.Host.Layout != nil {
			rt.cfg.Host.Layout.RequestRender(t.widget)
		}
		rt.touch(window)

	case TaskHandleEvent:
		h := t.handler.Value()
		if h == nil || h.fn == nil {
			outcome = "skipped"
			break
		}
		h.fn(t.payload)

	case TaskUpdateAnimation:
		if rt.cfg.Host.Animations == nil {
			outcome = "skipped"
			break
		}
		rt.cfg.Host.Animations.MarkAnimationPending(t.window, t.node)
		rt.touch(t.window)

	default:
		panic(fmt.Sprintf("reactive: unknown task kind %s", t.kind))
	}
	rt.cfg.Metrics.countTask(t.kind, outcome)
}

func (rt *Runtime) requestLayouts() int {
	n := rt.touched.len()
	if n == 0 {
		return 0
	}
	if rt.cfg.Host.Layout != nil {
		for _, window := range rt.touched.items() {
			rt.cfg.Host.Layout.RequestLayout(window)
		}
	}
	rt.touched.clear()
	return n
}
