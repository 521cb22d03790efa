package reactive

// effectBody is owned by the arena node. Queued tasks reference it weakly; a nil fn
// means the effect was disposed.
type effectBody struct {
	id     NodeID
	fn     func()
	queued bool
	owner  *Owner
}

// Effect is a handle to a side-effecting subscriber. Effects have no refcount: they
// live until disposed directly or through their Owner.
type Effect struct {
	body *effectBody
	rt   *Runtime
}

// NewEffect creates an effect and runs fn once immediately, recording what it reads.
// Afterwards fn re-runs during Flush whenever one of those reads changed. Effects,
// signals and memos created inside fn belong to this effect and are torn down before
// each re-run.
func NewEffect(rt *Runtime, fn func(), opts ...NodeOption) *Effect {
	rt.checkGoroutine()
	body := &effectBody{fn: fn, owner: &Owner{}}
	n := &node{kind: KindEffect, state: CacheDirty, effect: body}
	for _, opt := range opts {
		opt(n)
	}
	body.id = rt.insert(n)
	rt.runEffect(body.id, n)
	return &Effect{body: body, rt: rt}
}

// ID returns the effect's node id.
func (e *Effect) ID() NodeID {
	return e.body.id
}

// Disposed reports whether the effect was torn down.
func (e *Effect) Disposed() bool {
	return e.body.fn == nil
}

// Dispose stops the effect. Tasks already queued for it become no-ops and its node is
// removed at the next flush. Disposing twice is a no-op.
func (e *Effect) Dispose(rt *Runtime) {
	rt.checkGoroutine()
	if e.rt != rt {
		fatalf(ErrForeignHandle, "%s", e.body.id)
	}
	rt.disposeEffect(e.body)
}

func (rt *Runtime) disposeEffect(body *effectBody) {
	if body.fn == nil {
		return
	}
	body.fn = nil
	body.queued = false
	body.owner.reset(rt)
	rt.refs.evict(body.id)
}

func (rt *Runtime) runEffect(id NodeID, n *node) {
	body := n.effect
	if body.fn == nil {
		return
	}
	body.owner.reset(rt)
	rt.graph.clearDependencies(id)
	n.state = CacheClean

	prevOwner := rt.owner
	rt.owner = body.owner
	defer func() {
		rt.owner = prevOwner
	}()
	rt.withScope(Scope{Kind: ScopeEffect, Node: id}, body.fn)
}

// scheduleEffect queues a RunEffect task unless one is already pending.
func (rt *Runtime) scheduleEffect(body *effectBody) {
	if body == nil || body.fn == nil || body.queued {
		return
	}
	body.queued = true
	rt.queue.push(runEffectTask(body))
}

// runQueuedEffect executes a RunEffect task. The effect stays marked queued while its
// dependencies are resolved so memo recomputes cannot queue it a second time.
func (rt *Runtime) runQueuedEffect(body *effectBody) {
	n, ok := rt.nodes.lookup(body.id)
	if !ok {
		body.queued = false
		return
	}
	dirty := rt.resolve(body.id, n)
	body.queued = false
	if !dirty {
		n.state = CacheClean
		return
	}
	rt.runEffect(body.id, n)
}
