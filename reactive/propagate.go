package reactive

// notify marks the direct subscribers of a written signal Dirty. Memos pass Check on
// to their own subscribers; effects are queued.
func (rt *Runtime) notify(id NodeID) {
	for _, sub := range rt.graph.subscribersOf(id) {
		rt.stale(sub, CacheDirty)
	}
}

func (rt *Runtime) stale(id NodeID, state CacheState) {
	n, ok := rt.nodes.lookup(id)
	if !ok || n.state >= state {
		return
	}
	n.state = state
	switch n.kind {
	case KindEffect:
		rt.scheduleEffect(n.effect)
	case KindMemo:
		for _, sub := range rt.graph.subscribersOf(id) {
			rt.stale(sub, CacheCheck)
		}
	}
}

// markDirty is used by a memo whose value changed to condemn its readers.
func (rt *Runtime) markDirty(id NodeID) {
	n, ok := rt.nodes.lookup(id)
	if !ok {
		return
	}
	n.state = CacheDirty
	if n.kind == KindEffect {
		rt.scheduleEffect(n.effect)
	}
}

// resolve settles a Check node by refreshing its memo dependencies in the order they
// were read, stopping at the first one whose value changed. It reports whether the
// node has to run again.
func (rt *Runtime) resolve(id NodeID, n *node) bool {
	if n.state == CacheCheck {
		for _, dep := range rt.graph.dependenciesOf(id) {
			if d, ok := rt.nodes.lookup(dep); ok && d.kind == KindMemo {
				rt.refreshMemo(dep, d)
			}
			if n.state == CacheDirty {
				break
			}
		}
	}
	return n.state == CacheDirty
}

// refreshMemo brings a memo up to date. A memo that was never evaluated always runs.
func (rt *Runtime) refreshMemo(id NodeID, n *node) {
	if rt.resolve(id, n) || !n.hasValue {
		rt.recompute(id, n)
	}
	n.state = CacheClean
}

// recompute re-runs a memo body with fresh dependency tracking. Readers are only
// condemned when the new value differs from the cached one.
func (rt *Runtime) recompute(id NodeID, n *node) {
	if n.computing {
		fatalf(ErrCycle, "%s", id)
	}
	n.computing = true
	defer func() {
		n.computing = false
	}()

	rt.graph.clearDependencies(id)

	prevOwner := rt.owner
	rt.owner = nil
	var next any
	func() {
		defer func() {
			rt.owner = prevOwner
		}()
		rt.withScope(Scope{Kind: ScopeMemo, Node: id}, func() {
			next = n.compute()
		})
	}()

	changed := !n.hasValue || !n.equal(n.value, next)
	n.value = next
	n.hasValue = true
	if !changed {
		return
	}
	for _, sub := range rt.graph.subscribersOf(id) {
		rt.markDirty(sub)
	}
}
