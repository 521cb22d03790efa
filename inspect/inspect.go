// Package inspect serves published graph snapshots for debugging: JSON, Graphviz DOT,
// a live websocket stream and Prometheus metrics.
//
// The Runtime is never touched from HTTP goroutines. Snapshots are taken on the
// runtime goroutine by Observe, installed with reactive.WithAfterFlush, and swapped in
// atomically.
package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/delaneyj/signalgraph/inspect/templates"
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures an Inspector.
type Config struct {
	// Gatherer backs /metrics; nil leaves the route unmounted.
	Gatherer prometheus.Gatherer

	// Logger receives connection and publish failures (default: discard).
	Logger *slog.Logger

	// StreamBuffer is the per-client frame buffer. A client that falls further
	// behind loses frames (default: 8).
	StreamBuffer int
}

// Option configures an Inspector.
type Option func(*Config)

// WithGatherer mounts /metrics for g.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(c *Config) {
		c.Gatherer = g
	}
}

// WithLogger sets the inspector logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithStreamBuffer sets the per-client frame buffer.
func WithStreamBuffer(n int) Option {
	return func(c *Config) {
		c.StreamBuffer = n
	}
}

// Inspector holds the latest published snapshot and the connected stream clients.
type Inspector struct {
	cfg      Config
	log      *slog.Logger
	snap     atomic.Pointer[reactive.Snapshot]
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New creates an Inspector with nothing published.
func New(opts ...Option) *Inspector {
	cfg := Config{
		Logger:       slog.New(slog.DiscardHandler),
		StreamBuffer: 8,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.StreamBuffer < 1 {
		cfg.StreamBuffer = 1
	}
	return &Inspector{
		cfg: cfg,
		log: cfg.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: map[*client]struct{}{},
	}
}

// Observe publishes a snapshot of rt. Its signature matches reactive.WithAfterFlush.
func (in *Inspector) Observe(rt *reactive.Runtime) {
	in.Publish(rt.Snapshot())
}

// Publish stores snap and pushes it to every stream client.
func (in *Inspector) Publish(snap reactive.Snapshot) {
	in.snap.Store(&snap)

	data, err := json.Marshal(snap)
	if err != nil {
		in.log.Error("inspect: encode snapshot", "error", err)
		return
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	for c := range in.clients {
		select {
		case c.send <- data:
		default:
			in.log.Debug("inspect: client behind, frame dropped", "remote", c.conn.RemoteAddr())
		}
	}
}

// Snapshot returns the latest published snapshot.
func (in *Inspector) Snapshot() (reactive.Snapshot, bool) {
	s := in.snap.Load()
	if s == nil {
		return reactive.Snapshot{}, false
	}
	return *s, true
}

// ClientCount returns the number of connected stream clients.
func (in *Inspector) ClientCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.clients)
}

// Handler returns the inspector routes.
func (in *Inspector) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/graph", in.handleJSON)
	r.Get("/graph.dot", in.handleDOT)
	r.Get("/graph/stream", in.handleStream)
	if in.cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(in.cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (in *Inspector) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap, ok := in.Snapshot()
	if !ok {
		http.Error(w, "no snapshot published", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		in.log.Debug("inspect: write snapshot", "error", err)
	}
}

func (in *Inspector) handleDOT(w http.ResponseWriter, r *http.Request) {
	snap, ok := in.Snapshot()
	if !ok {
		http.Error(w, "no snapshot published", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	templates.WriteGraph(w, snap)
}

func (in *Inspector) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := in.upgrader.Upgrade(w, r, nil)
	if err != nil {
		in.log.Debug("inspect: upgrade", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, in.cfg.StreamBuffer)}
	in.mu.Lock()
	if s := in.snap.Load(); s != nil {
		if data, err := json.Marshal(s); err == nil {
			c.send <- data
		}
	}
	in.clients[c] = struct{}{}
	in.mu.Unlock()

	done := make(chan struct{})
	go in.writeLoop(c, done)

	// Keep the connection open until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	in.mu.Lock()
	delete(in.clients, c)
	in.mu.Unlock()
	close(done)
	conn.Close()
}

func (in *Inspector) writeLoop(c *client, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case data := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				in.log.Debug("inspect: write frame", "error", err)
				c.conn.Close()
				return
			}
		}
	}
}
