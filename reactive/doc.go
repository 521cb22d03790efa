// Package reactive implements a single-threaded reactive dependency graph made of
// signals (mutable cells), memos (lazily recomputed derived values) and effects
// (deferred side-effecting subscribers).
//
// All state lives in a Runtime, which is passed explicitly to every operation:
//
//	rt := reactive.NewRuntime()
//	count := reactive.NewSignal(rt, 1)
//	double := reactive.NewMemo(rt, func() int { return count.Get(rt) * 2 })
//	reactive.NewEffect(rt, func() {
//		fmt.Println("double is", double.Get(rt))
//	})
//	count.Set(rt, 2)
//	rt.Flush() // prints "double is 4"
//
// Writes never run effects synchronously. They enqueue tasks that Flush drains in FIFO
// order, after which every window touched during the flush receives exactly one
// layout request. Node payloads are owned by a generational arena; dependency edges are
// kept in two mirrored adjacency maps keyed by NodeID.
//
// A Runtime is bound to the goroutine that created it. It takes no locks.
package reactive
