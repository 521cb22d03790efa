package reactive

// Memo is a handle to a cached derived value. The body runs lazily on the first read
// and afterwards only when a dependency actually changed.
type Memo[T any] struct {
	handle
}

var _ Readable[int] = (*Memo[int])(nil)

// NewMemo creates a memo whose results are compared with ==.
func NewMemo[T comparable](rt *Runtime, fn func() T, opts ...NodeOption) *Memo[T] {
	return NewMemoFunc(rt, fn, func(a, b T) bool { return a == b }, opts...)
}

// NewMemoFunc creates a memo whose results are compared with equal. When a recompute
// yields an equal value, readers of the memo are not re-run.
func NewMemoFunc[T any](rt *Runtime, fn func() T, equal func(a, b T) bool, opts ...NodeOption) *Memo[T] {
	rt.checkGoroutine()
	n := &node{
		kind:    KindMemo,
		state:   CacheCheck,
		equal:   eraseEqual(equal),
		compute: func() any { return fn() },
	}
	for _, opt := range opts {
		opt(n)
	}
	return &Memo[T]{handle: rt.newHandle(rt.insert(n))}
}

// Get returns the up-to-date value and, inside a memo or effect, subscribes to it. The
// memo is refreshed before the edge is recorded, so a change found here does not
// condemn the reader that is already running.
func (m *Memo[T]) Get(rt *Runtime) T {
	n := m.node(rt, KindMemo)
	rt.refreshMemo(m.id, n)
	rt.track(m.id)
	return as[T](m.id, n.value)
}

// GetUntracked returns the up-to-date value without recording a dependency.
func (m *Memo[T]) GetUntracked(rt *Runtime) T {
	n := m.node(rt, KindMemo)
	rt.refreshMemo(m.id, n)
	return as[T](m.id, n.value)
}

// Clone returns a new handle sharing the node.
func (m *Memo[T]) Clone() *Memo[T] {
	return &Memo[T]{handle: m.clone()}
}

// Drop releases this handle. Dropping twice is a no-op.
func (m *Memo[T]) Drop() {
	m.drop()
}
