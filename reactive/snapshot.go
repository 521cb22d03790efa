package reactive

// NodeInfo describes one node in a Snapshot.
type NodeInfo struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	State        string   `json:"state"`
	Label        string   `json:"label,omitempty"`
	Refs         int      `json:"refs"`
	Subscribers  []string `json:"subscribers,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// Snapshot is a point-in-time copy of the graph. It shares nothing with the Runtime
// and may be handed to other goroutines.
type Snapshot struct {
	Nodes   []NodeInfo `json:"nodes"`
	Queued  []string   `json:"queued,omitempty"`
	Flushes uint64     `json:"flushes"`
}

// Snapshot copies the current graph in arena order.
func (rt *Runtime) Snapshot() Snapshot {
	rt.checkGoroutine()
	snap := Snapshot{
		Nodes:   make([]NodeInfo, 0, rt.nodes.len()),
		Flushes: rt.flushes,
	}
	rt.nodes.each(func(id NodeID, n *node) {
		snap.Nodes = append(snap.Nodes, NodeInfo{
			ID:           id.String(),
			Kind:         n.kind.String(),
			State:        n.state.String(),
			Label:        n.label,
			Refs:         rt.refs.count(id),
			Subscribers:  idStrings(rt.graph.subscribersOf(id)),
			Dependencies: idStrings(rt.graph.dependenciesOf(id)),
		})
	})
	for _, k := range rt.queue.pending() {
		snap.Queued = append(snap.Queued, k.String())
	}
	return snap
}

func idStrings(ids []NodeID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// Subscribers returns the nodes that read id, in the order they first subscribed.
func (rt *Runtime) Subscribers(id NodeID) []NodeID {
	rt.checkGoroutine()
	return rt.graph.subscribersOf(id)
}

// Dependencies returns the nodes id read during its last run, in read order.
func (rt *Runtime) Dependencies(id NodeID) []NodeID {
	rt.checkGoroutine()
	return rt.graph.dependenciesOf(id)
}

// State returns the cache state of id, CacheClean for ids that are no longer live.
func (rt *Runtime) State(id NodeID) CacheState {
	rt.checkGoroutine()
	if n, ok := rt.nodes.lookup(id); ok {
		return n.state
	}
	return CacheClean
}
