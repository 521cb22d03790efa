package reactive_test

import (
	"fmt"
	"testing"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/stretchr/testify/assert"
)

func TestTopology(t *testing.T) {
	//     A
	//   / |
	//  B  |
	//   \ |
	//     C
	//     |
	//     D
	t.Run("drop ABA updates", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 2)
		b := reactive.NewMemo(rt, func() int {
			return a.Get(rt) - 1
		})
		c := reactive.NewMemo(rt, func() int {
			return a.Get(rt) + b.Get(rt)
		})
		callCount := 0
		d := reactive.NewMemo(rt, func() string {
			callCount++
			return fmt.Sprintf("d: %d", c.Get(rt))
		})

		assert.Equal(t, "d: 3", d.Get(rt))
		assert.Equal(t, 1, callCount)

		a.Set(rt, 4)
		d.Get(rt)
		assert.Equal(t, 2, callCount)
	})

	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	//     |
	//     E
	t.Run("diamond tail updates once", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, "a")
		b := reactive.NewMemo(rt, func() string {
			return a.Get(rt)
		})
		c := reactive.NewMemo(rt, func() string {
			return a.Get(rt)
		})
		d := reactive.NewMemo(rt, func() string {
			return b.Get(rt) + " " + c.Get(rt)
		})

		eCallCount := 0
		e := reactive.NewMemo(rt, func() string {
			eCallCount++
			return d.Get(rt)
		})

		assert.Equal(t, "a a", e.Get(rt))
		assert.Equal(t, 1, eCallCount)

		a.Set(rt, "aa")
		assert.Equal(t, "aa aa", e.Get(rt))
		assert.Equal(t, 2, eCallCount)
	})

	//     A
	//   / | \
	//  B  C  D
	//   \ | /
	//     E
	t.Run("wide fan in", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 1)
		var deps []*reactive.Memo[int]
		for i := 1; i <= 3; i++ {
			deps = append(deps, reactive.NewMemo(rt, func() int {
				return a.Get(rt) * i
			}))
		}
		runs := 0
		var sum int
		reactive.NewEffect(rt, func() {
			runs++
			sum = 0
			for _, m := range deps {
				sum += m.Get(rt)
			}
		})
		assert.Equal(t, 6, sum)

		a.Set(rt, 2)
		rt.Flush()
		assert.Equal(t, 12, sum)
		assert.Equal(t, 2, runs)
	})

	//     A
	//     |
	//     B
	//   /   \
	//  C     D (=)
	//  |     |
	//  E     F
	t.Run("only changed branch reruns", func(t *testing.T) {
		rt := reactive.NewRuntime()
		a := reactive.NewSignal(rt, 1)
		b := reactive.NewMemo(rt, func() int { return a.Get(rt) })
		c := reactive.NewMemo(rt, func() int { return b.Get(rt) * 10 })
		d := reactive.NewMemo(rt, func() bool { return b.Get(rt) > 0 })

		var eRuns, fRuns int
		reactive.NewEffect(rt, func() {
			c.Get(rt)
			eRuns++
		})
		reactive.NewEffect(rt, func() {
			d.Get(rt)
			fRuns++
		})

		a.Set(rt, 2)
		rt.Flush()
		assert.Equal(t, 2, eRuns)
		assert.Equal(t, 1, fRuns)
	})
}
