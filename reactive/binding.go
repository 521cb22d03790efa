package reactive

// BindingDirection says which side a binding task copies from.
type BindingDirection uint8

const (
	// ToHost pushes the signal value into the host parameter.
	ToHost BindingDirection = iota + 1
	// FromHost pulls the host parameter into the signal.
	FromHost
)

func (d BindingDirection) String() string {
	if d == FromHost {
		return "from_host"
	}
	return "to_host"
}

// Binding keeps a host parameter and a signal in step. Each UpdateBinding task moves
// the value one way only and skips equal values, so a pull never echoes back as a push.
type Binding struct {
	param  ParamID
	signal *Signal[float64]
	effect *Effect
	closed bool
}

// BindParameter binds param to s. Later writes to s queue a push to the host; call
// PullFromHost to adopt the host's value. Creating the binding queues nothing.
func BindParameter(rt *Runtime, param ParamID, s *Signal[float64]) *Binding {
	b := &Binding{param: param, signal: s.Clone()}
	first := true
	b.effect = NewEffect(rt, func() {
		b.signal.Get(rt)
		if first {
			first = false
			return
		}
		rt.queue.push(updateBindingTask(b, ToHost))
	}, WithLabel("binding"))
	if rt.owner != nil {
		rt.owner.OnCleanup(func() { b.Close(rt) })
	}
	return b
}

// Param returns the bound parameter.
func (b *Binding) Param() ParamID {
	return b.param
}

// PullFromHost queues a host-to-signal sync.
func (b *Binding) PullFromHost(rt *Runtime) {
	rt.checkGoroutine()
	if !b.live(rt) {
		return
	}
	rt.queue.push(updateBindingTask(b, FromHost))
}

// Close disposes the binding; queued tasks for it are dropped.
func (b *Binding) Close(rt *Runtime) {
	if b.closed {
		return
	}
	b.closed = true
	b.effect.Dispose(rt)
	b.signal.Drop()
}

// live reports whether tasks for b may still touch its signal. An owner teardown can
// evict the signal while tasks for it are queued.
func (b *Binding) live(rt *Runtime) bool {
	return !b.closed && !b.effect.Disposed() && rt.Contains(b.signal.ID())
}

func (b *Binding) apply(rt *Runtime, dir BindingDirection) {
	host := rt.cfg.Host.Params
	if host == nil {
		rt.log.Debug("reactive: no parameter host", "param", b.param)
		return
	}
	switch dir {
	case ToHost:
		v := b.signal.GetUntracked(rt)
		if host.ParameterValue(b.param) != v {
			host.SetParameterValue(b.param, v)
		}
	case FromHost:
		v := host.ParameterValue(b.param)
		if b.signal.GetUntracked(rt) != v {
			b.signal.Set(rt, v)
		}
	}
}
