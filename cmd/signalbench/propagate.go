package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

// powersOfTen lists 1, 10, 100, ... up to limit.
func powersOfTen(limit int) []int {
	var out []int
	for n := 1; n <= limit; n *= 10 {
		out = append(out, n)
	}
	return out
}

func propagate(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Uint(itersKey))
	if iters < 1 {
		return fmt.Errorf("--%s must be positive", itersKey)
	}
	ww := powersOfTen(int(cmd.Uint(widthKey)))
	hh := powersOfTen(int(cmd.Uint(heightKey)))

	log.Printf("propagate: widths %v, heights %v, %d writes each", ww, hh, iters)

	tbl := table.NewWriter()
	tbl.SetTitle("Propagate")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "nodes"})

	for _, w := range ww {
		for _, h := range hh {
			if err := ctx.Err(); err != nil {
				return err
			}

			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			rt := reactive.NewRuntime(runtimeOptions(cmd)...)
			src := reactive.NewSignal(rt, 1)
			for i := 0; i < w; i++ {
				var last reactive.Readable[int] = src
				for j := 0; j < h; j++ {
					prev := last
					last = reactive.NewMemo(rt, func() int {
						return prev.Get(rt) + 1
					})
				}

				reactive.NewEffect(rt, func() {
					last.Get(rt)
				})
			}
			rt.Flush()

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(rt, src.GetUntracked(rt)+1)
				rt.Flush()
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
					rt.NodeCount(),
				},
			})
		}
	}

	if cmd.Bool(renderKey) {
		tbl.Render()
	}
	return nil
}
