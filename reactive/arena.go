package reactive

// node is the arena payload. Exactly one of the kind-specific groups is used.
type node struct {
	kind  NodeKind
	state CacheState
	label string

	// signal value or memo cache
	value    any
	hasValue bool
	equal    func(a, b any) bool

	// memo only
	compute   func() any
	computing bool

	// effect only; the arena is the sole strong owner besides the Effect handle
	effect *effectBody
}

type slot struct {
	generation uint32
	node       *node
}

// arena is a generational slot map. Freed slots are reused LIFO and every reuse bumps
// the slot generation.
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

func (a *arena) insert(n *node) NodeID {
	var idx uint32
	if k := len(a.free); k > 0 {
		idx = a.free[k-1]
		a.free = a.free[:k-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}

	s := &a.slots[idx]
	s.generation++
	if s.generation == 0 {
		// wrapped, zero is reserved for the invalid id
		s.generation++
	}
	s.node = n
	a.live++
	return NodeID{index: idx, generation: s.generation}
}

func (a *arena) lookup(id NodeID) (*node, bool) {
	if id.generation == 0 || int(id.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[id.index]
	if s.generation != id.generation || s.node == nil {
		return nil, false
	}
	return s.node, true
}

// get is lookup for callers holding a handle; a miss is a lifecycle bug.
func (a *arena) get(id NodeID) *node {
	n, ok := a.lookup(id)
	if !ok {
		fatalf(ErrNodeRemoved, "%s", id)
	}
	return n
}

// remove frees the slot of id. Removing a stale id is a no-op.
func (a *arena) remove(id NodeID) bool {
	if _, ok := a.lookup(id); !ok {
		return false
	}
	a.slots[id.index].node = nil
	a.free = append(a.free, id.index)
	a.live--
	return true
}

func (a *arena) len() int {
	return a.live
}

// each visits live nodes in slot order.
func (a *arena) each(fn func(NodeID, *node)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.node == nil {
			continue
		}
		fn(NodeID{index: uint32(i), generation: s.generation}, s.node)
	}
}
