package reactive

// Owner collects the nodes created while it runs, such as everything belonging to one
// widget, and tears them down together. Disposal ignores refcounts: handles to owned
// signals and memos become invalid once their owner is gone.
type Owner struct {
	parent   *Owner
	nodes    []NodeID
	children []*Owner
	cleanups []func()
	disposed bool
}

// NewOwner creates an owner. When called inside another owner's Run, or inside an
// effect, the new owner is disposed together with that parent.
func (rt *Runtime) NewOwner() *Owner {
	rt.checkGoroutine()
	o := &Owner{parent: rt.owner}
	if rt.owner != nil {
		rt.owner.children = append(rt.owner.children, o)
	}
	return o
}

// Run executes fn with o as the current owner.
func (o *Owner) Run(rt *Runtime, fn func()) {
	rt.checkGoroutine()
	if o.disposed {
		fatalf(ErrOwnerDisposed, "run")
	}
	prev := rt.owner
	rt.owner = o
	defer func() {
		rt.owner = prev
	}()
	fn()
}

// OnCleanup registers fn to run when the owner is disposed. Cleanups run in reverse
// registration order.
func (o *Owner) OnCleanup(fn func()) {
	o.cleanups = append(o.cleanups, fn)
}

// Disposed reports whether Dispose was called.
func (o *Owner) Disposed() bool {
	return o.disposed
}

// Dispose tears down child owners, disposes owned effects immediately and schedules
// every owned node for removal at the next flush. Disposing twice is a no-op.
func (o *Owner) Dispose(rt *Runtime) {
	rt.checkGoroutine()
	if o.disposed {
		return
	}
	o.reset(rt)
	o.disposed = true
	if o.parent != nil {
		o.parent.forget(o)
	}
}

func (o *Owner) adopt(id NodeID) {
	o.nodes = append(o.nodes, id)
}

func (o *Owner) forget(child *Owner) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// reset releases everything owned but leaves the owner usable. Effects call it before
// each re-run.
func (o *Owner) reset(rt *Runtime) {
	children := o.children
	o.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].parent = nil
		children[i].Dispose(rt)
	}

	nodes := o.nodes
	o.nodes = nil
	for i := len(nodes) - 1; i >= 0; i-- {
		id := nodes[i]
		n, ok := rt.nodes.lookup(id)
		if !ok {
			continue
		}
		if n.kind == KindEffect {
			rt.disposeEffect(n.effect)
			continue
		}
		rt.refs.evict(id)
	}

	cleanups := o.cleanups
	o.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
