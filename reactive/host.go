package reactive

// Widget is an opaque mutable widget handed out by the host widget tree.
type Widget any

// LayoutHost receives layout and render requests produced by a flush.
type LayoutHost interface {
	RequestLayout(window WindowID)
	RequestRender(widget WidgetID)
}

// WidgetTree resolves widget ids. ok is false once the widget was removed.
type WidgetTree interface {
	WidgetMut(id WidgetID) (w Widget, window WindowID, ok bool)
}

// ParameterHost is the plugin host's parameter store.
type ParameterHost interface {
	ParameterValue(id ParamID) float64
	SetParameterValue(id ParamID, value float64)
}

// AnimationHost steps animations. The runtime only flags them as pending.
type AnimationHost interface {
	MarkAnimationPending(window WindowID, node NodeID)
}

// Host groups the collaborators. Nil members turn the matching tasks into no-ops.
type Host struct {
	Layout     LayoutHost
	Widgets    WidgetTree
	Params     ParameterHost
	Animations AnimationHost
}

// QueueWidgetUpdate queues update to be applied to widget during the next flush. The
// widget's window gets a layout pass at the end of that flush.
func (rt *Runtime) QueueWidgetUpdate(widget WidgetID, update func(Widget)) {
	rt.checkGoroutine()
	rt.queue.push(updateWidgetTask(widget, update))
}

// QueueAnimation flags the animation driven by node in window as pending during the
// next flush.
func (rt *Runtime) QueueAnimation(window WindowID, node NodeID) {
	rt.checkGoroutine()
	rt.queue.push(updateAnimationTask(window, node))
}

// QueueEvent queues payload for h. The queue holds h weakly: if h is closed or
// collected before the flush, the event is dropped.
func (rt *Runtime) QueueEvent(h *Handler, payload any) {
	rt.checkGoroutine()
	rt.queue.push(handleEventTask(h, payload))
}

// QueueLen returns the number of pending tasks.
func (rt *Runtime) QueueLen() int {
	rt.checkGoroutine()
	return rt.queue.len()
}

func (rt *Runtime) touch(window WindowID) {
	rt.touched.add(window)
}
