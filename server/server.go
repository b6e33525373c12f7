// Package server exposes parsing, formatting and content assist for JPQL
// queries over HTTP and a websocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/hermes/jpql/parser"
)

var log = commonlog.GetLogger("hermes.server")

type Server struct {
	cfg      Config
	cache    *treeCache
	metrics  *metrics
	promReg  *prometheus.Registry
	registry *parser.Registry

	mu       sync.Mutex
	sessions map[string]*session
}

func New(cfg Config) *Server {
	if cfg.Version == 0 {
		cfg.Version = parser.DefaultVersion
	}
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = DefaultConfig().MaxRequestBytes
	}
	promReg := prometheus.NewRegistry()
	return &Server{
		cfg:      cfg,
		cache:    newTreeCache(cfg.CacheSize),
		metrics:  newMetrics(promReg),
		promReg:  promReg,
		registry: parser.DefaultRegistry(),
		sessions: make(map[string]*session),
	}
}

// Handler returns the router serving all endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.promReg, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/format", s.handleFormat)
		r.Post("/complete", s.handleComplete)
		r.Get("/grammar", s.handleGrammar)
		r.Get("/keywords", s.handleKeywords)
		r.Get("/assist", s.handleAssist)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		log.Infof("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// parse returns the tree for query, from the cache when possible.
func (s *Server) parse(query string, version parser.Version, tolerant bool) *parser.JPQLExpression {
	key := cacheKey(query, version, tolerant)
	if root, ok := s.cache.get(key); ok {
		s.metrics.cacheHits.Inc()
		return root
	}
	s.metrics.cacheMisses.Inc()

	opts := []parser.Option{parser.WithVersion(version), parser.WithRegistry(s.registry)}
	if tolerant {
		opts = append(opts, parser.WithTolerant())
	}
	start := time.Now()
	root := parser.ParseQuery(query, opts...)
	s.metrics.parseDuration.Observe(time.Since(start).Seconds())
	s.metrics.parses.Inc()

	s.cache.put(key, root)
	return root
}

// version resolves a version name from a request, falling back to the
// configured default.
func (s *Server) version(name string) (parser.Version, error) {
	if name == "" {
		return s.cfg.Version, nil
	}
	return parser.ParseVersion(name)
}
