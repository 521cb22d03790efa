package reactive_test

import (
	"fmt"
	"testing"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffect(t *testing.T) {
	t.Run("runs once on creation and again after flush", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 1)
		var seen []int
		reactive.NewEffect(rt, func() {
			seen = append(seen, a.Get(rt))
		})
		assert.Equal(t, []int{1}, seen)

		a.Set(rt, 2)
		assert.Equal(t, []int{1}, seen, "writes never run effects synchronously")
		assert.Equal(t, 1, rt.QueueLen())

		rt.Flush()
		assert.Equal(t, []int{1, 2}, seen)
		assert.Equal(t, 0, rt.QueueLen())
	})

	t.Run("queued once per pending run", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 1)
		runs := 0
		reactive.NewEffect(rt, func() {
			a.Get(rt)
			runs++
		})

		a.Set(rt, 2)
		a.Set(rt, 3)
		a.Set(rt, 4)
		assert.Equal(t, 1, rt.QueueLen())
		rt.Flush()
		assert.Equal(t, 2, runs)
	})

	//     A
	//   /   \
	//  B     C
	//   \   /
	//     E
	t.Run("diamond runs effect once", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 1)
		b := reactive.NewMemo(rt, func() int { return a.Get(rt) + 1 })
		c := reactive.NewMemo(rt, func() int { return a.Get(rt) * 2 })
		var seen [][2]int
		reactive.NewEffect(rt, func() {
			seen = append(seen, [2]int{b.Get(rt), c.Get(rt)})
		})

		a.Set(rt, 2)
		rt.Flush()
		assert.Equal(t, [][2]int{{2, 2}, {3, 4}}, seen)
		assert.Equal(t, 0, rt.QueueLen())
	})

	t.Run("equal memo value skips effect", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 0)
		even := reactive.NewMemo(rt, func() bool { return a.Get(rt)%2 == 0 })
		runs := 0
		e := reactive.NewEffect(rt, func() {
			even.Get(rt)
			runs++
		})

		a.Set(rt, 2)
		assert.Equal(t, reactive.CacheCheck, rt.State(e.ID()))
		rt.Flush()
		assert.Equal(t, 1, runs)
		assert.Equal(t, reactive.CacheClean, rt.State(e.ID()))

		a.Set(rt, 3)
		rt.Flush()
		assert.Equal(t, 2, runs)
	})

	t.Run("conditional dependencies are replaced on rerun", func(t *testing.T) {
		rt := reactive.NewRuntime()
		cond := reactive.NewSignal(rt, true)
		a := reactive.NewSignal(rt, "a")
		b := reactive.NewSignal(rt, "b")
		var seen []string
		e := reactive.NewEffect(rt, func() {
			if cond.Get(rt) {
				seen = append(seen, a.Get(rt))
				return
			}
			seen = append(seen, b.Get(rt))
		})
		assert.Equal(t, []reactive.NodeID{cond.ID(), a.ID()}, rt.Dependencies(e.ID()))

		cond.Set(rt, false)
		rt.Flush()
		assert.Equal(t, []reactive.NodeID{cond.ID(), b.ID()}, rt.Dependencies(e.ID()))
		assert.Empty(t, rt.Subscribers(a.ID()))

		a.Set(rt, "a2")
		rt.Flush()
		assert.Equal(t, []string{"a", "b"}, seen, "a is no longer read")

		b.Set(rt, "b2")
		rt.Flush()
		assert.Equal(t, []string{"a", "b", "b2"}, seen)
	})

	t.Run("effects run in subscription order", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 0)
		var order []string
		for _, name := range []string{"first", "second", "third"} {
			reactive.NewEffect(rt, func() {
				if a.Get(rt) > 0 {
					order = append(order, name)
				}
			})
		}

		a.Set(rt, 1)
		rt.Flush()
		assert.Equal(t, []string{"first", "second", "third"}, order)
	})

	t.Run("writes during flush run in the same flush", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 0)
		b := reactive.NewSignal(rt, 0)
		reactive.NewEffect(rt, func() {
			v := a.Get(rt)
			rt.Untrack(func() {
				b.Set(rt, v*10)
			})
		})
		var seen []int
		reactive.NewEffect(rt, func() {
			seen = append(seen, b.Get(rt))
		})

		a.Set(rt, 2)
		rt.Flush()
		assert.Equal(t, []int{0, 20}, seen)
		assert.Equal(t, 0, rt.QueueLen())
	})

	t.Run("dispose turns queued task into a no-op", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 1)
		runs := 0
		e := reactive.NewEffect(rt, func() {
			a.Get(rt)
			runs++
		})

		a.Set(rt, 2)
		require.Equal(t, 1, rt.QueueLen())
		e.Dispose(rt)
		e.Dispose(rt)
		assert.True(t, e.Disposed())

		rt.Flush()
		assert.Equal(t, 1, runs)
		assert.False(t, rt.Contains(e.ID()))
		assert.Empty(t, rt.Subscribers(a.ID()))
	})

	t.Run("stops memo recomputation once disposed", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 1)
		bRuns := 0
		b := reactive.NewMemo(rt, func() int {
			bRuns++
			return a.Get(rt) * 2
		})
		e := reactive.NewEffect(rt, func() {
			b.Get(rt)
		})
		assert.Equal(t, 1, bRuns)

		a.Set(rt, 2)
		rt.Flush()
		assert.Equal(t, 2, bRuns)

		e.Dispose(rt)
		rt.Flush()
		a.Set(rt, 3)
		rt.Flush()
		assert.Equal(t, 2, bRuns)
	})

	t.Run("outer effect tears down inner effects before rerun", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 1)
		b := reactive.NewSignal(rt, 1)
		innerRuns := 0

		reactive.NewEffect(rt, func() {
			if a.Get(rt) != 0 {
				reactive.NewEffect(rt, func() {
					assert.NotZero(t, a.Get(rt), "inner effect must not see a == 0")
					b.Get(rt)
					innerRuns++
				})
			}
		})
		assert.Equal(t, 1, innerRuns)

		rt.Batch(func() {
			a.Set(rt, 0)
			b.Set(rt, 0)
		})
		assert.Equal(t, 1, innerRuns)
		assert.Empty(t, rt.Subscribers(b.ID()))
	})

	t.Run("inner effect is not rerun when its memo settles", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 0)
		b := reactive.NewMemo(rt, func() bool { return a.Get(rt)%2 == 0 })
		innerRuns := 0

		reactive.NewEffect(rt, func() {
			reactive.NewEffect(rt, func() {
				b.Get(rt)
				innerRuns++
			})
		})

		a.Set(rt, 2)
		rt.Flush()
		assert.Equal(t, 1, innerRuns)
	})

	t.Run("batch flushes once at the outermost level", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 0)
		b := reactive.NewSignal(rt, 0)
		var seen []int
		reactive.NewEffect(rt, func() {
			seen = append(seen, a.Get(rt)+b.Get(rt))
		})

		rt.Batch(func() {
			a.Set(rt, 1)
			rt.Batch(func() {
				b.Set(rt, 2)
			})
			assert.Equal(t, []int{0}, seen, "inner batch must not flush")
		})
		assert.Equal(t, []int{0, 3}, seen)
	})

	t.Run("auto flush", func(t *testing.T) {
		rt := reactive.NewRuntime(reactive.WithAutoFlush(true))
		a := reactive.NewSignal(rt, 0)
		var seen []int
		reactive.NewEffect(rt, func() {
			seen = append(seen, a.Get(rt))
		})

		a.Set(rt, 1)
		assert.Equal(t, []int{0, 1}, seen)

		rt.Batch(func() {
			a.Set(rt, 2)
			a.Set(rt, 3)
		})
		assert.Equal(t, []int{0, 1, 3}, seen)
	})
}

func TestSignalWritePolicy(t *testing.T) {
	t.Run("notify always", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 7)
		runs := 0
		reactive.NewEffect(rt, func() {
			a.Get(rt)
			runs++
		})

		a.Set(rt, 7)
		rt.Flush()
		assert.Equal(t, 2, runs)
	})

	t.Run("notify on change", func(t *testing.T) {
		rt := reactive.NewRuntime(reactive.WithSignalWritePolicy(reactive.NotifyOnChange))
		a := reactive.NewSignal(rt, 7)
		runs := 0
		reactive.NewEffect(rt, func() {
			a.Get(rt)
			runs++
		})

		a.Set(rt, 7)
		assert.Equal(t, 0, rt.QueueLen())
		rt.Flush()
		assert.Equal(t, 1, runs)

		a.Update(rt, func(v int) int { return v + 1 })
		rt.Flush()
		assert.Equal(t, 2, runs)
		assert.Equal(t, 8, a.GetUntracked(rt))
	})

	assert.Equal(t, "notify-on-change", reactive.NotifyOnChange.String())
}

func fanOut(rt *reactive.Runtime, n int) (*reactive.Signal[int], *int) {
	src := reactive.NewSignal(rt, 0)
	runs := 0
	for range n {
		reactive.NewEffect(rt, func() {
			src.Get(rt)
			runs++
		})
	}
	return src, &runs
}

func TestFanOut(t *testing.T) {
	const n = 5000
	rt := reactive.NewRuntime()
	src, runs := fanOut(rt, n)
	require.Equal(t, n, *runs)

	for i := 1; i <= 3; i++ {
		src.Set(rt, i)
		rt.Flush()
	}
	assert.Equal(t, 4*n, *runs)
	assert.Len(t, rt.Subscribers(src.ID()), n)
}

func BenchmarkFanOut(b *testing.B) {
	for _, n := range []int{1000, 4000, 16000} {
		b.Run(fmt.Sprintf("effects=%d", n), func(b *testing.B) {
			rt := reactive.NewRuntime()
			src, _ := fanOut(rt, n)
			b.ResetTimer()
			for i := range b.N {
				src.Set(rt, i+1)
				rt.Flush()
			}
		})
	}
}
