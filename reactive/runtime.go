package reactive

import (
	"log/slog"
	"weak"

	"github.com/petermattis/goid"
	"go.opentelemetry.io/otel"
)

// Runtime owns one reactive graph: the node arena, the subscription graph, the current
// scope, the refcount table and the task queue. Its lifetime matches the application
// object that created it.
type Runtime struct {
	cfg Config
	log *slog.Logger
	gid int64

	nodes    arena
	graph    edges
	scope    Scope
	refs     *refTable
	weakRefs weak.Pointer[refTable]
	owner    *Owner

	queue    taskQueue
	touched  *orderedSet[WindowID]
	flushing bool
	batch    int
	flushes  uint64
}

// NewRuntime creates a runtime bound to the calling goroutine.
func NewRuntime(opts ...Option) *Runtime {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer(defaultTracerName)
	}

	refs := newRefTable()
	return &Runtime{
		cfg:      cfg,
		log:      cfg.Logger,
		gid:      goid.Get(),
		graph:    newEdges(),
		scope:    rootScope,
		refs:     refs,
		weakRefs: weak.Make(refs),
		touched:  newOrderedSet[WindowID](),
	}
}

func (rt *Runtime) checkGoroutine() {
	if !rt.cfg.GoroutineCheck {
		return
	}
	if id := goid.Get(); id != rt.gid {
		fatalf(ErrWrongGoroutine, "created on goroutine %d, used on %d", rt.gid, id)
	}
}

// NodeCount returns the number of live nodes, including nodes awaiting removal at the
// next flush.
func (rt *Runtime) NodeCount() int {
	rt.checkGoroutine()
	return rt.nodes.len()
}

// RefCount returns the number of live handles to id, 0 once it is scheduled for removal.
func (rt *Runtime) RefCount(id NodeID) int {
	rt.checkGoroutine()
	return rt.refs.count(id)
}

// Contains reports whether id still addresses a live node.
func (rt *Runtime) Contains(id NodeID) bool {
	rt.checkGoroutine()
	_, ok := rt.nodes.lookup(id)
	return ok
}

// Batch runs fn and flushes once the outermost batch returns. Writes made inside only
// enqueue work.
func (rt *Runtime) Batch(fn func()) {
	rt.checkGoroutine()
	rt.batch++
	func() {
		defer func() {
			rt.batch--
		}()
		fn()
	}()
	if rt.batch == 0 {
		rt.Flush()
	}
}

// insert allocates a node and attaches it to the current owner.
func (rt *Runtime) insert(n *node) NodeID {
	id := rt.nodes.insert(n)
	if n.kind != KindEffect {
		rt.refs.register(id)
	}
	if rt.owner != nil {
		rt.owner.adopt(id)
	}
	rt.cfg.Metrics.setNodes(rt.nodes.len())
	return id
}

// sweep applies pending removals. It only runs between flush cycles.
func (rt *Runtime) sweep() int {
	removed := 0
	for {
		pending := rt.refs.takePending()
		if len(pending) == 0 {
			break
		}
		for _, id := range pending {
			n, ok := rt.nodes.lookup(id)
			if !ok {
				continue
			}
			rt.graph.detach(id)
			if n.effect != nil {
				n.effect.fn = nil
			}
			n.value = nil
			n.compute = nil
			rt.nodes.remove(id)
			removed++
		}
	}
	if removed > 0 {
		rt.log.Debug("reactive: swept nodes", "removed", removed, "live", rt.nodes.len())
		rt.cfg.Metrics.addRemovals(removed)
		rt.cfg.Metrics.setNodes(rt.nodes.len())
	}
	return removed
}

func (rt *Runtime) maybeAutoFlush() {
	if rt.cfg.AutoFlush && !rt.flushing && rt.batch == 0 && rt.scope.Kind == ScopeRoot {
		rt.Flush()
	}
}
