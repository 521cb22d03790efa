package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const (
	widthKey    = "width"
	heightKey   = "height"
	itersKey    = "iters"
	renderKey   = "render"
	configKey   = "config"
	repeatsKey  = "repeats"
	addrKey     = "addr"
	intervalKey = "interval"
	verboseKey  = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "signalbench",
		Usage: "Benchmarks and a live inspector for the reactive graph",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log runtime debug records",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "propagate",
				Usage: "Time a write propagating through W chains of H memos",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  widthKey,
						Usage: "Largest number of chains",
						Value: 1_000,
					},
					&cli.UintFlag{
						Name:  heightKey,
						Usage: "Largest chain length",
						Value: 100,
					},
					&cli.UintFlag{
						Name:  itersKey,
						Usage: "Writes timed per shape",
						Value: 100,
					},
					&cli.BoolFlag{
						Name:  renderKey,
						Usage: "Print the result table",
						Value: true,
					},
				},
				Action: propagate,
			},
			{
				Name:  "graph",
				Usage: "Run the layered dynamic graph benchmarks",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  configKey,
						Usage: "Only run the named config",
					},
					&cli.UintFlag{
						Name:  repeatsKey,
						Usage: "Runs per config, the best one is reported",
						Value: 5,
					},
				},
				Action: graph,
			},
			{
				Name:   "dot",
				Usage:  "Print the demo graph as Graphviz DOT",
				Action: dot,
			},
			{
				Name:  "serve",
				Usage: "Tick the demo graph and serve the inspector",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  addrKey,
						Usage: "Listen address",
						Value: "localhost:8080",
					},
					&cli.StringFlag{
						Name:  intervalKey,
						Usage: "Time between ticks",
						Value: "500ms",
					},
				},
				Action: serve,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
