package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

type graphConfig struct {
	name           string  // friendly name, unique
	width          int     // width of the dependency graph
	totalLayers    int     // depth of the dependency graph
	staticFraction float64 // fraction of nodes that always read all their sources
	nSources       int     // sources read by each node
	readFraction   float64 // fraction of the last layer read in each iteration
	iterations     int
}

var graphConfigs = []graphConfig{
	{
		name:           "simple component",
		width:          10,
		staticFraction: 1,
		nSources:       2,
		totalLayers:    5,
		readFraction:   0.2,
		iterations:     600000,
	},
	{
		name:           "dynamic component",
		width:          10,
		totalLayers:    10,
		staticFraction: 0.75,
		nSources:       6,
		readFraction:   0.2,
		iterations:     15000,
	},
	{
		name:           "large web app",
		width:          1000,
		totalLayers:    12,
		staticFraction: 0.95,
		nSources:       4,
		readFraction:   1,
		iterations:     7000,
	},
	{
		name:           "wide dense",
		width:          1000,
		totalLayers:    5,
		staticFraction: 1,
		nSources:       25,
		readFraction:   1,
		iterations:     3000,
	},
	{
		name:           "deep",
		width:          5,
		totalLayers:    500,
		staticFraction: 1,
		nSources:       3,
		readFraction:   1,
		iterations:     500,
	},
	{
		name:           "very dynamic",
		width:          100,
		totalLayers:    15,
		staticFraction: 0.5,
		nSources:       6,
		readFraction:   1,
		iterations:     2000,
	},
}

func (cfg graphConfig) title() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}

type graphResult struct {
	sum      int
	count    int64
	duration time.Duration
	checksum uint64
}

func graph(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting graph benchmark, please wait...")
	defer log.Print("Finished graph benchmark")

	only := cmd.String(configKey)
	repeats := int(cmd.Uint(repeatsKey))
	if repeats < 1 {
		repeats = 1
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "updateRate", "nodes", "checksum", "title",
	})

	ran := 0
	for _, cfg := range graphConfigs {
		if only != "" && cfg.name != only {
			continue
		}
		ran++
		log.Printf("Running '%s' config", cfg.name)

		best := graphResult{duration: time.Hour}
		nodes := 0
		// the first run warms up and is not reported
		for i := 0; i <= repeats; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, n := runGraphOnce(cmd, cfg)
			nodes = n
			if i > 0 && res.duration < best.duration {
				best = res
			}
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(int64(cfg.iterations)),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(int64(updateRate)),
			humanize.Comma(int64(nodes)),
			fmt.Sprintf("%016x", best.checksum),
			cfg.title(),
		})
	}
	if ran == 0 {
		return fmt.Errorf("unknown config %q", only)
	}
	table.Render()
	return nil
}

func runGraphOnce(cmd *cli.Command, cfg graphConfig) (graphResult, int) {
	rt := reactive.NewRuntime(runtimeOptions(cmd)...)
	var counter int64
	g := makeGraph(rt, &counter, cfg)

	start := time.Now()
	sum, checksum := runGraph(rt, g, cfg)
	return graphResult{
		sum:      sum,
		count:    counter,
		duration: time.Since(start),
		checksum: checksum,
	}, rt.NodeCount()
}

type layeredGraph struct {
	sources []*reactive.Signal[int]
	layers  [][]reactive.Readable[int]
}

func makeGraph(rt *reactive.Runtime, counter *int64, cfg graphConfig) *layeredGraph {
	sources := make([]*reactive.Signal[int], cfg.width)
	prevRow := make([]reactive.Readable[int], cfg.width)
	for i := range sources {
		sources[i] = reactive.NewSignal(rt, i)
		prevRow[i] = sources[i]
	}

	random := rand.New(rand.NewSource(0))
	g := &layeredGraph{sources: sources}
	for l := 0; l < cfg.totalLayers-1; l++ {
		row := makeRow(rt, prevRow, counter, cfg, random)
		g.layers = append(g.layers, row)
		prevRow = row
	}
	return g
}

func makeRow(rt *reactive.Runtime, sources []reactive.Readable[int], counter *int64, cfg graphConfig, random *rand.Rand) []reactive.Readable[int] {
	row := make([]reactive.Readable[int], len(sources))
	for myDex := range sources {
		mySources := make([]reactive.Readable[int], 0, cfg.nSources)
		for sourceDex := 0; sourceDex < cfg.nSources; sourceDex++ {
			mySources = append(mySources, sources[(myDex+sourceDex)%len(sources)])
		}

		if random.Float64() < cfg.staticFraction {
			row[myDex] = reactive.NewMemo(rt, func() int {
				*counter++
				sum := 0
				for _, source := range mySources {
					sum += source.Get(rt)
				}
				return sum
			})
			continue
		}

		first := mySources[0]
		tail := mySources[1:]
		row[myDex] = reactive.NewMemo(rt, func() int {
			*counter++
			sum := first.Get(rt)
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)
			for i := range tail {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += tail[i].Get(rt)
			}
			return sum
		})
	}
	return row
}

// runGraph writes one source per iteration and reads some or all of the leaves. It
// returns the final leaf sum and an xxhash of the leaf values.
func runGraph(rt *reactive.Runtime, g *layeredGraph, cfg graphConfig) (int, uint64) {
	random := rand.New(rand.NewSource(0))
	leaves := g.layers[len(g.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - cfg.readFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	for i := 0; i < cfg.iterations; i++ {
		sourceDex := i % len(g.sources)
		g.sources[sourceDex].Set(rt, i+sourceDex)
		for _, leaf := range readLeaves {
			leaf.Get(rt)
		}
	}
	rt.Flush()

	digest := xxhash.New()
	var buf [8]byte
	sum := 0
	for _, leaf := range readLeaves {
		v := leaf.Get(rt)
		sum += v
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		digest.Write(buf[:])
	}
	return sum, digest.Sum64()
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
