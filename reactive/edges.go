package reactive

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// orderedSet keeps insertion order on top of a set. Removal is O(1) and leaves a
// tombstone in order; a re-add appends a fresh entry, so the last occurrence of a member
// is its position. Tombstones are compacted once they make up half of order, or when
// the set is listed.
type orderedSet[T comparable] struct {
	order   []T
	members mapset.Set[T]
	stale   int
}

func newOrderedSet[T comparable]() *orderedSet[T] {
	return &orderedSet[T]{members: mapset.NewThreadUnsafeSet[T]()}
}

func (s *orderedSet[T]) add(v T) bool {
	if !s.members.Add(v) {
		return false
	}
	s.order = append(s.order, v)
	return true
}

func (s *orderedSet[T]) remove(v T) bool {
	if !s.members.Contains(v) {
		return false
	}
	s.members.Remove(v)
	s.stale++
	if s.stale > len(s.order)/2 {
		s.compact()
	}
	return true
}

func (s *orderedSet[T]) contains(v T) bool {
	return s.members.Contains(v)
}

func (s *orderedSet[T]) len() int {
	return s.members.Cardinality()
}

// items returns a copy in insertion order, safe to hold while the set is mutated.
func (s *orderedSet[T]) items() []T {
	s.compact()
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}

func (s *orderedSet[T]) clear() {
	clear(s.order)
	s.order = s.order[:0]
	s.members.Clear()
	s.stale = 0
}

// compact drops tombstones, keeping only the last occurrence of each member.
func (s *orderedSet[T]) compact() {
	if s.stale == 0 {
		return
	}
	seen := mapset.NewThreadUnsafeSetWithSize[T](s.members.Cardinality())
	w := len(s.order)
	for i := len(s.order) - 1; i >= 0; i-- {
		v := s.order[i]
		if s.members.Contains(v) && seen.Add(v) {
			w--
			s.order[w] = v
		}
	}
	n := copy(s.order, s.order[w:])
	clear(s.order[n:])
	s.order = s.order[:n]
	s.stale = 0
}

// edges is the subscription graph. For any A, B: A is in subscribers[B] iff B is in
// dependencies[A]. Every method below keeps both sides in step.
type edges struct {
	subscribers  map[NodeID]*orderedSet[NodeID]
	dependencies map[NodeID]*orderedSet[NodeID]
}

func newEdges() edges {
	return edges{
		subscribers:  map[NodeID]*orderedSet[NodeID]{},
		dependencies: map[NodeID]*orderedSet[NodeID]{},
	}
}

func setFor(m map[NodeID]*orderedSet[NodeID], id NodeID) *orderedSet[NodeID] {
	s, ok := m[id]
	if !ok {
		s = newOrderedSet[NodeID]()
		m[id] = s
	}
	return s
}

func dropFrom(m map[NodeID]*orderedSet[NodeID], id, v NodeID) {
	s, ok := m[id]
	if !ok {
		return
	}
	s.remove(v)
	if s.len() == 0 {
		delete(m, id)
	}
}

// link records that sub read dep. It reports whether the edge is new.
func (g *edges) link(dep, sub NodeID) bool {
	if !setFor(g.subscribers, dep).add(sub) {
		return false
	}
	setFor(g.dependencies, sub).add(dep)
	return true
}

func (g *edges) unlink(dep, sub NodeID) {
	dropFrom(g.subscribers, dep, sub)
	dropFrom(g.dependencies, sub, dep)
}

// clearDependencies removes every edge where sub is the reader.
func (g *edges) clearDependencies(sub NodeID) {
	deps, ok := g.dependencies[sub]
	if !ok {
		return
	}
	for _, dep := range deps.items() {
		dropFrom(g.subscribers, dep, sub)
	}
	delete(g.dependencies, sub)
}

// detach removes every edge touching id in both directions.
func (g *edges) detach(id NodeID) {
	g.clearDependencies(id)
	subs, ok := g.subscribers[id]
	if !ok {
		return
	}
	for _, sub := range subs.items() {
		dropFrom(g.dependencies, sub, id)
	}
	delete(g.subscribers, id)
}

func (g *edges) subscribersOf(id NodeID) []NodeID {
	if s, ok := g.subscribers[id]; ok {
		return s.items()
	}
	return nil
}

func (g *edges) dependenciesOf(id NodeID) []NodeID {
	if s, ok := g.dependencies[id]; ok {
		return s.items()
	}
	return nil
}

func (g *edges) hasEdge(dep, sub NodeID) bool {
	s, ok := g.subscribers[dep]
	return ok && s.contains(sub)
}
