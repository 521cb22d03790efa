package reactive

import "fmt"

// ScopeKind says what, if anything, is currently being evaluated.
type ScopeKind uint8

const (
	ScopeRoot ScopeKind = iota
	ScopeMemo
	ScopeEffect
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeRoot:
		return "root"
	case ScopeMemo:
		return "memo"
	case ScopeEffect:
		return "effect"
	default:
		return fmt.Sprintf("scope(%d)", k)
	}
}

// Scope identifies the node whose body is running. Reads made while a Memo or Effect
// scope is active record a dependency edge for that node.
type Scope struct {
	Kind ScopeKind
	Node NodeID
}

var rootScope = Scope{Kind: ScopeRoot}

// CurrentScope returns the scope reads are currently attributed to.
func (rt *Runtime) CurrentScope() Scope {
	rt.checkGoroutine()
	return rt.scope
}

// Untrack runs fn with tracking suspended, so nothing it reads becomes a dependency
// of the surrounding memo or effect.
func (rt *Runtime) Untrack(fn func()) {
	rt.checkGoroutine()
	rt.withScope(rootScope, fn)
}

func (rt *Runtime) withScope(s Scope, fn func()) {
	prev := rt.scope
	rt.scope = s
	defer func() {
		rt.scope = prev
	}()
	fn()
}

// track records an edge from id to the running node, if any.
func (rt *Runtime) track(id NodeID) {
	if rt.scope.Kind == ScopeRoot || rt.scope.Node == id {
		return
	}
	rt.graph.link(id, rt.scope.Node)
}
