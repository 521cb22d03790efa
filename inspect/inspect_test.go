package inspect_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/delaneyj/signalgraph/inspect"
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diamond builds a -> (b, c) -> effect and flushes once.
func diamond(t *testing.T, opts ...reactive.Option) (*reactive.Runtime, *reactive.Signal[int]) {
	t.Helper()
	rt := reactive.NewRuntime(opts...)
	a := reactive.NewSignal(rt, 1, reactive.WithLabel("a"))
	b := reactive.NewMemo(rt, func() int { return a.Get(rt) + 1 }, reactive.WithLabel("b"))
	c := reactive.NewMemo(rt, func() int { return a.Get(rt) * 2 }, reactive.WithLabel("c"))
	reactive.NewEffect(rt, func() {
		b.Get(rt)
		c.Get(rt)
	}, reactive.WithLabel("sink"))
	rt.Flush()
	return rt, a
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestInspector(t *testing.T) {
	t.Run("nothing published", func(t *testing.T) {
		in := inspect.New()
		srv := httptest.NewServer(in.Handler())
		defer srv.Close()

		res, _ := get(t, srv.URL+"/graph")
		assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

		res, _ = get(t, srv.URL+"/metrics")
		assert.Equal(t, http.StatusNotFound, res.StatusCode, "no gatherer, no metrics route")
	})

	t.Run("json snapshot", func(t *testing.T) {
		in := inspect.New()
		diamond(t, reactive.WithAfterFlush(in.Observe))
		srv := httptest.NewServer(in.Handler())
		defer srv.Close()

		res, body := get(t, srv.URL+"/graph")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

		var snap reactive.Snapshot
		require.NoError(t, json.Unmarshal([]byte(body), &snap))
		require.Len(t, snap.Nodes, 4)
		assert.Equal(t, "a", snap.Nodes[0].Label)
		assert.Len(t, snap.Nodes[0].Subscribers, 2)
		assert.Equal(t, uint64(1), snap.Flushes)
	})

	t.Run("dot rendering", func(t *testing.T) {
		in := inspect.New()
		diamond(t, reactive.WithAfterFlush(in.Observe))
		srv := httptest.NewServer(in.Handler())
		defer srv.Close()

		res, body := get(t, srv.URL+"/graph.dot")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(body), "digraph signalgraph {"))
		assert.Equal(t, 4, strings.Count(body, " -> "), "a->b, a->c, b->sink, c->sink")
		assert.Contains(t, body, "shape=diamond")
		assert.Contains(t, body, `"sink\neffect`)
	})

	t.Run("metrics", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := reactive.NewMetrics(reg)
		in := inspect.New(inspect.WithGatherer(reg))
		diamond(t, reactive.WithMetrics(m), reactive.WithAfterFlush(in.Observe))
		srv := httptest.NewServer(in.Handler())
		defer srv.Close()

		res, body := get(t, srv.URL+"/metrics")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "signalgraph_reactive_flushes_total 1")
		assert.Contains(t, body, "signalgraph_reactive_nodes 4")
	})

	t.Run("stream", func(t *testing.T) {
		in := inspect.New()
		rt, a := diamond(t, reactive.WithAfterFlush(in.Observe))
		srv := httptest.NewServer(in.Handler())
		defer srv.Close()

		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/graph/stream"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer conn.Close()

		read := func() reactive.Snapshot {
			t.Helper()
			require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
			var snap reactive.Snapshot
			require.NoError(t, conn.ReadJSON(&snap))
			return snap
		}

		first := read()
		assert.Equal(t, uint64(1), first.Flushes)
		assert.Equal(t, 1, in.ClientCount())

		a.Set(rt, 5)
		rt.Flush()
		second := read()
		assert.Equal(t, uint64(2), second.Flushes)
	})

	t.Run("slow client drops frames", func(t *testing.T) {
		in := inspect.New(inspect.WithStreamBuffer(1))
		assert.NotPanics(t, func() {
			for i := 0; i < 10; i++ {
				in.Publish(reactive.Snapshot{Flushes: uint64(i)})
			}
		})
		snap, ok := in.Snapshot()
		require.True(t, ok)
		assert.Equal(t, uint64(9), snap.Flushes)
	})
}
