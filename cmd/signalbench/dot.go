package main

import (
	"context"
	"os"

	"github.com/delaneyj/signalgraph/inspect/templates"
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/urfave/cli/v3"
)

func dot(ctx context.Context, cmd *cli.Command) error {
	host := newDemoHost()
	rt := reactive.NewRuntime(runtimeOptions(cmd, reactive.WithHost(host.host()))...)
	d := buildDemo(rt)
	d.step(rt)

	templates.WriteGraph(os.Stdout, rt.Snapshot())
	return nil
}
