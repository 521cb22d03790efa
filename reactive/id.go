package reactive

import "fmt"

// NodeID addresses a node in a Runtime's arena. The generation is bumped every time a
// slot is reused, so an id kept past its node's removal never aliases a newer node.
// The zero NodeID is never valid.
type NodeID struct {
	index      uint32
	generation uint32
}

// IsZero reports whether id is the zero NodeID.
func (id NodeID) IsZero() bool {
	return id.generation == 0
}

func (id NodeID) String() string {
	return fmt.Sprintf("%d@%d", id.index, id.generation)
}

// NodeKind tags what a node holds.
type NodeKind uint8

const (
	KindSignal NodeKind = iota + 1
	KindMemo
	KindEffect
)

func (k NodeKind) String() string {
	switch k {
	case KindSignal:
		return "signal"
	case KindMemo:
		return "memo"
	case KindEffect:
		return "effect"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// CacheState is the staleness tag carried by every node.
type CacheState uint8

const (
	CacheClean CacheState = iota // value is valid
	CacheCheck                   // a transitive dependency changed, resolve on next read
	CacheDirty                   // definitely stale, recompute on next read
)

func (s CacheState) String() string {
	switch s {
	case CacheClean:
		return "clean"
	case CacheCheck:
		return "check"
	case CacheDirty:
		return "dirty"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// WindowID identifies a host window that owns a layout pass.
type WindowID uint64

// WidgetID identifies a widget in the host widget tree.
type WidgetID uint64

// ParamID identifies a plugin-host parameter.
type ParamID uint32
