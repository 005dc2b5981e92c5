// Package server exposes the chaosgame pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz        liveness probe
//	GET  /version        build information
//	GET  /games          the game catalog
//	GET  /presets        the built-in presets
//	POST /render         render options (JSON body) to one artifact
//	GET  /renders        recent render records
//	GET  /renders/{id}   one render record
//	GET  /stream         WebSocket stream of point batches
//	GET  /stats          operation counters, when Config.Stats is set
//
// Rendering goes through a cached [pipeline.Runner]; every successful render
// is recorded in a [store.Store] and its ID returned in the X-Render-ID
// header.
//
// # Streaming
//
// A client opens /stream and sends one JSON message holding pipeline options
// plus an optional batch size. The server answers with messages of the form
//
//	{"points":[{"x":0.1,"y":0.2,"color":"#e4572e"}, ...]}
//
// until the requested number of points has been sent, then a final
// {"done":true} message. A stuck attractor ends the stream early with
// {"done":true,"stuck":true}.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chaosgame/pkg/buildinfo"
	"github.com/matzehuels/chaosgame/pkg/observability"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
	"github.com/matzehuels/chaosgame/pkg/store"
)

// Defaults for the server.
const (
	DefaultAddr        = ":8080"
	DefaultStreamBatch = 500
	MaxStreamBatch     = 10000

	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 1 << 20

	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address.
	Addr string

	// Runner executes render requests. Nil uses an uncached runner.
	Runner *pipeline.Runner

	// Store records renders. Nil uses an in-memory store.
	Store store.Store

	// RecordTTL is how long render records are kept.
	RecordTTL time.Duration

	// StreamBatch is the default number of points per stream message.
	StreamBatch int

	// Stats is served at /stats. The caller registers it as an observer.
	Stats *observability.Counters

	// Logger receives request logs. Nil discards them.
	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	cfg    Config
	router chi.Router
}

// New creates a server and its routes.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.RecordTTL == 0 {
		cfg.RecordTTL = store.DefaultTTL
	}
	if cfg.StreamBatch <= 0 {
		cfg.StreamBatch = DefaultStreamBatch
	}

	s := &Server{cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/games", s.handleGames)
	r.Get("/presets", s.handlePresets)
	r.Post("/render", s.handleRender)
	r.Route("/renders", func(r chi.Router) {
		r.Get("/", s.handleListRenders)
		r.Get("/{id}", s.handleGetRender)
	})
	r.Get("/stream", s.handleStream)
	if s.cfg.Stats != nil {
		r.Get("/stats", s.handleStats)
	}
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.cfg.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs each request and emits an OpRequest event for it.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		dur := time.Since(start)
		observability.Emit(r.Context(), observability.Event{
			Op:       observability.OpRequest,
			Name:     r.Method + " " + route,
			Count:    ww.Status(),
			Duration: dur,
		})
		s.cfg.Logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", dur)
	})
}

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", buildinfo.Server())
		next.ServeHTTP(w, r)
	})
}
