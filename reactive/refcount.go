package reactive

import "weak"

// refTable counts live Signal and Memo handles per node. It sits beside the arena so
// handles can be cloned and dropped without a Runtime. Nodes whose count reaches zero,
// and nodes torn down by an Owner, wait in pending until the next sweep.
type refTable struct {
	counts  map[NodeID]int
	pending []NodeID
}

func newRefTable() *refTable {
	return &refTable{counts: map[NodeID]int{}}
}

func (t *refTable) register(id NodeID) {
	t.counts[id] = 1
}

func (t *refTable) retain(id NodeID) bool {
	c, ok := t.counts[id]
	if !ok {
		return false
	}
	t.counts[id] = c + 1
	return true
}

func (t *refTable) release(id NodeID) {
	c, ok := t.counts[id]
	if !ok {
		return
	}
	if c > 1 {
		t.counts[id] = c - 1
		return
	}
	delete(t.counts, id)
	t.pending = append(t.pending, id)
}

// evict schedules id for removal regardless of its count.
func (t *refTable) evict(id NodeID) {
	delete(t.counts, id)
	t.pending = append(t.pending, id)
}

func (t *refTable) count(id NodeID) int {
	return t.counts[id]
}

func (t *refTable) takePending() []NodeID {
	p := t.pending
	t.pending = nil
	return p
}

// handle is the shared part of Signal and Memo. It links to the refcount table weakly:
// a handle never keeps a Runtime alive, and dropping it after the Runtime is gone is a
// no-op.
type handle struct {
	id      NodeID
	refs    weak.Pointer[refTable]
	dropped bool
}

func (rt *Runtime) newHandle(id NodeID) handle {
	return handle{id: id, refs: rt.weakRefs}
}

// ID returns the node the handle points at.
func (h *handle) ID() NodeID {
	return h.id
}

func (h *handle) clone() handle {
	if h.dropped {
		fatalf(ErrNodeRemoved, "%s: clone of dropped handle", h.id)
	}
	if t := h.refs.Value(); t != nil {
		t.retain(h.id)
	}
	return handle{id: h.id, refs: h.refs}
}

func (h *handle) drop() {
	if h.dropped {
		return
	}
	h.dropped = true
	if t := h.refs.Value(); t != nil {
		t.release(h.id)
	}
}

// node resolves the handle against rt, enforcing ownership and kind.
func (h *handle) node(rt *Runtime, kind NodeKind) *node {
	rt.checkGoroutine()
	if h.refs != rt.weakRefs {
		fatalf(ErrForeignHandle, "%s", h.id)
	}
	if h.dropped {
		fatalf(ErrNodeRemoved, "%s: handle dropped", h.id)
	}
	n := rt.nodes.get(h.id)
	if n.kind != kind {
		fatalf(ErrKindMismatch, "%s is a %s, not a %s", h.id, n.kind, kind)
	}
	return n
}
