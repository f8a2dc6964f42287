// Package stream serves generator output over WebSocket. Each connection
// gets a private generator on its own stream, so no generator is ever
// shared between goroutines.
package stream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/pcg128/internal/tracelog"
	"github.com/lox/pcg128/pcg"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	shutdownTimeout = 5 * time.Second
)

// Server hands out generators over WebSocket connections.
type Server struct {
	upgrader websocket.Upgrader
	logger   zerolog.Logger
	clock    quartz.Clock
	seed     *pcg.Uint128
	trace    bool

	// nextSeq hands every connection without an explicit sequence its own
	// stream
	nextSeq atomic.Uint64

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used for default seeds and trace durations.
func WithClock(c quartz.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithSeed fixes the seed used by connections that do not pass one.
func WithSeed(seed pcg.Uint128) Option {
	return func(s *Server) { s.seed = &seed }
}

// WithTrace logs every generator operation at debug level.
func WithTrace(enabled bool) Option {
	return func(s *Server) { s.trace = enabled }
}

// NewServer creates a new stream server
func NewServer(logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With().Str("component", "stream").Logger(),
		clock:  quartz.NewReal(),
		conns:  make(map[*websocket.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully and closes every open WebSocket.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{Handler: s.Handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("Starting stream server")
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info().Msg("Shutting down stream server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		s.closeAll()
		return err
	})
	return g.Wait()
}

// ConnectionCount returns the number of open WebSocket connections.
func (s *Server) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
	}
}

// generatorFor builds the connection generator from the seed and sequence
// query parameters, falling back to the server seed and a fresh stream.
func (s *Server) generatorFor(r *http.Request) (*pcg.Generator, error) {
	q := r.URL.Query()

	var seed pcg.Uint128
	switch {
	case q.Get("seed") != "":
		v, err := pcg.ParseUint128(q.Get("seed"))
		if err != nil {
			return nil, err
		}
		seed = v
	case s.seed != nil:
		seed = *s.seed
	default:
		seed = pcg.Uint128FromInt64(s.clock.Now().UnixMilli())
	}

	var seq pcg.Uint128
	if q.Get("sequence") != "" {
		v, err := pcg.ParseUint128(q.Get("sequence"))
		if err != nil {
			return nil, err
		}
		seq = v
	} else {
		seq = pcg.Uint128From64(s.nextSeq.Add(1))
	}

	opts := []pcg.Option{pcg.WithClock(s.clock)}
	if s.trace {
		opts = append(opts, pcg.WithTrace(true), pcg.WithObserver(tracelog.NewZerolog(s.logger)))
	}
	return pcg.New128(seed, seq, opts...), nil
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gen, err := s.generatorFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	total := len(s.conns)
	s.mu.Unlock()
	s.logger.Info().Int("total", total).Str("increment", gen.Increment().Hex()).Msg("Client connected")

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		total := len(s.conns)
		s.mu.Unlock()
		_ = conn.Close()
		s.logger.Info().Int("total", total).Msg("Client disconnected")
	}()

	s.serveConn(conn, &session{gen: gen})
}

// serveConn answers requests in order until the peer goes away or sends
// something that is not a request.
func (s *Server) serveConn(conn *websocket.Conn, sess *session) {
	conn.SetReadLimit(maxMessageSize)

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug().Err(err).Msg("Read failed")
			}
			return
		}

		resp := sess.handle(req)
		if resp.Error != "" {
			s.logger.Debug().Str("op", req.Op).Str("error", resp.Error).Msg("Request rejected")
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Debug().Err(err).Msg("Write failed")
			return
		}
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
