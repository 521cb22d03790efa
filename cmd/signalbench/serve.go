package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/delaneyj/signalgraph/inspect"
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v3"
)

func serve(ctx context.Context, cmd *cli.Command) error {
	interval, err := time.ParseDuration(cmd.String(intervalKey))
	if err != nil {
		return fmt.Errorf("--%s: %w", intervalKey, err)
	}
	if interval <= 0 {
		return fmt.Errorf("--%s must be positive", intervalKey)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := reactive.NewMetrics(reg)
	in := inspect.New(inspect.WithGatherer(reg))

	host := newDemoHost()
	rt := reactive.NewRuntime(runtimeOptions(cmd,
		reactive.WithHost(host.host()),
		reactive.WithMetrics(metrics),
		reactive.WithAfterFlush(in.Observe),
	)...)
	d := buildDemo(rt)
	rt.Flush()

	srv := &http.Server{
		Addr:              cmd.String(addrKey),
		Handler:           in.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	log.Printf("inspector on http://%s/graph, ticking every %s", srv.Addr, interval)

	// The runtime stays on this goroutine; HTTP handlers only see published snapshots.
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("shutting down after %s flushes, %s layouts",
				humanize.Comma(int64(rt.Flushes())), humanize.Comma(int64(host.layouts)))
			d.binding.Close(rt)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ticker.C:
			d.step(rt)
		}
	}
}
