package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alder-ui/alder/pkg/engine"
	"github.com/alder-ui/alder/pkg/protocol"
	"github.com/alder-ui/alder/pkg/snapshot"
)

// App builds one session's application. The server calls it once per
// connection (and once per server-rendered page), passing the engine
// options the session needs wired in; the app mounts its tree with
// those options and returns the handle.
type App func(opts ...engine.Option) *engine.Handle

// Server hosts an App over HTTP: server-rendered pages on GET /, live
// sessions on GET /ws, and Prometheus metrics on GET /metrics.
type Server struct {
	config   *Config
	app      App
	log      *slog.Logger
	upgrader websocket.Upgrader

	registry *prometheus.Registry
	metrics  *engine.Metrics

	snapshots snapshot.Store

	mu       sync.Mutex
	sessions map[string]*Session

	httpServer *http.Server
}

// New creates a server for app. A nil config uses DefaultConfig.
func New(app App, config *Config) *Server {
	config = fillDefaults(config)

	registry := prometheus.NewRegistry()
	s := &Server{
		config: config,
		app:    app,
		log:    slog.Default().With("component", "server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		registry: registry,
		metrics:  engine.NewMetrics(registry),
		sessions: make(map[string]*Session),
	}
	return s
}

// SetSnapshotStore enables end-of-session snapshots: when a session
// closes, its rendered state is written to store keyed by session ID.
func (s *Server) SetSnapshotStore(store snapshot.Store) {
	s.snapshots = store
}

// Handler returns the HTTP handler for mounting in external routers.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "address", s.config.Address)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown closes all live sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()

	for _, sess := range open {
		sess.Close()
	}

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// handleIndex serves the server-rendered page: a throwaway mount of the
// app, serialized into the HTML shell the thin client boots from.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	handle := s.app(engine.WithFramer(&engine.ManualFramer{}))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, handle.HTML())
}

const pageShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body>%s
<script src="/client.js" defer></script>
</body>
</html>
`

// handleWebSocket upgrades the connection, performs the hello
// exchange, and runs the session until the client disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	hello, err := s.readHello(conn)
	if err != nil {
		s.log.Warn("hello failed", "error", err)
		conn.Close()
		return
	}

	if s.config.MaxSessions > 0 && s.SessionCount() >= s.config.MaxSessions {
		s.rejectHello(conn, protocol.HelloServerBusy)
		conn.Close()
		return
	}
	if hello.Version != protocol.Version {
		s.rejectHello(conn, protocol.HelloVersionMismatch)
		conn.Close()
		return
	}
	// Resume is not supported: a returning session ID gets a fresh
	// session and a full page from the Replace stream.
	if hello.SessionID != "" {
		s.rejectHello(conn, protocol.HelloSessionUnknown)
		conn.Close()
		return
	}

	sess := newSession(newSessionID(), conn, s)
	ack := &protocol.HelloAck{Status: protocol.HelloOK, SessionID: sess.ID}
	if err := sess.writeFrame(protocol.NewFrame(protocol.FrameHello, protocol.EncodeHelloAck(ack))); err != nil {
		s.log.Warn("hello ack failed", "error", err)
		conn.Close()
		return
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.log.Info("session opened", "session_id", sess.ID)

	sess.run()

	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()

	if s.snapshots != nil {
		snap := &snapshot.Snapshot{
			SessionID: sess.ID,
			Seq:       sess.seq.Load(),
			HTML:      sess.handle.HTML(),
			TakenAt:   timeNow(),
		}
		ctx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout)
		if err := s.snapshots.Save(ctx, snap); err != nil {
			s.log.Warn("snapshot save failed", "session_id", sess.ID, "error", err)
		}
		cancel()
	}
	s.log.Info("session closed", "session_id", sess.ID)
}

func (s *Server) readHello(conn *websocket.Conn) (*protocol.Hello, error) {
	conn.SetReadDeadline(timeNow().Add(s.config.HandshakeTimeout))
	defer conn.SetReadDeadline(timeNow().Add(s.config.IdleTimeout))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		return nil, err
	}
	if frame.Type != protocol.FrameHello {
		return nil, fmt.Errorf("server: expected hello frame, got %s", frame.Type)
	}
	return protocol.DecodeHello(frame.Payload)
}

func (s *Server) rejectHello(conn *websocket.Conn, status protocol.HelloStatus) {
	ack := &protocol.HelloAck{Status: status}
	frame := protocol.NewFrame(protocol.FrameHello, protocol.EncodeHelloAck(ack))
	conn.SetWriteDeadline(timeNow().Add(s.config.WriteTimeout))
	conn.WriteMessage(websocket.BinaryMessage, frame.Encode())
}

func newSessionID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
