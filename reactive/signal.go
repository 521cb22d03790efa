package reactive

// Readable is implemented by Signal and Memo.
type Readable[T any] interface {
	Get(rt *Runtime) T
	GetUntracked(rt *Runtime) T
	ID() NodeID
}

// Signal is a handle to a mutable reactive cell. The value itself lives in the
// Runtime's arena; the handle only shares ownership of the node. Every handle returned
// by NewSignal or Clone must eventually be dropped.
type Signal[T any] struct {
	handle
}

var _ Readable[int] = (*Signal[int])(nil)

// NewSignal creates a signal compared with ==.
func NewSignal[T comparable](rt *Runtime, value T, opts ...NodeOption) *Signal[T] {
	return NewSignalFunc(rt, value, func(a, b T) bool { return a == b }, opts...)
}

// NewSignalFunc creates a signal compared with equal. equal is only consulted under
// the NotifyOnChange write policy.
func NewSignalFunc[T any](rt *Runtime, value T, equal func(a, b T) bool, opts ...NodeOption) *Signal[T] {
	rt.checkGoroutine()
	n := &node{
		kind:     KindSignal,
		state:    CacheClean,
		value:    value,
		hasValue: true,
		equal:    eraseEqual(equal),
	}
	for _, opt := range opts {
		opt(n)
	}
	return &Signal[T]{handle: rt.newHandle(rt.insert(n))}
}

// Get returns the value and, inside a memo or effect, subscribes it to the signal.
func (s *Signal[T]) Get(rt *Runtime) T {
	n := s.node(rt, KindSignal)
	rt.track(s.id)
	return as[T](s.id, n.value)
}

// GetUntracked returns the value without recording a dependency.
func (s *Signal[T]) GetUntracked(rt *Runtime) T {
	n := s.node(rt, KindSignal)
	return as[T](s.id, n.value)
}

// Set stores value and notifies subscribers. Effects only run on the next Flush.
func (s *Signal[T]) Set(rt *Runtime, value T) {
	n := s.node(rt, KindSignal)
	if rt.cfg.WritePolicy == NotifyOnChange && n.equal(n.value, value) {
		return
	}
	n.value = value
	rt.notify(s.id)
	rt.maybeAutoFlush()
}

// Update sets the signal to fn applied to its current value.
func (s *Signal[T]) Update(rt *Runtime, fn func(T) T) {
	s.Set(rt, fn(s.GetUntracked(rt)))
}

// Clone returns a new handle sharing the node.
func (s *Signal[T]) Clone() *Signal[T] {
	return &Signal[T]{handle: s.clone()}
}

// Drop releases this handle. The node is removed at the next flush once every handle
// is dropped. Dropping twice is a no-op.
func (s *Signal[T]) Drop() {
	s.drop()
}

func as[T any](id NodeID, v any) T {
	if v == nil {
		var zero T
		return zero
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		fatalf(ErrTypeMismatch, "%s holds %T, read as %T", id, v, zero)
	}
	return t
}

func eraseEqual[T any](equal func(a, b T) bool) func(a, b any) bool {
	return func(a, b any) bool {
		return equal(as[T](NodeID{}, a), as[T](NodeID{}, b))
	}
}
