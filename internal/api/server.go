package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/kiwiland/railquery/internal/cache"
	"github.com/kiwiland/railquery/internal/engine"
	"github.com/kiwiland/railquery/internal/graph"
	"github.com/kiwiland/railquery/internal/metrics"
	"github.com/kiwiland/railquery/internal/model"
)

// RequestIDHeader carries the server-generated request ID back to the
// client.
const RequestIDHeader = "X-Request-ID"

type Server struct {
	Mux *http.ServeMux
	Log *logrus.Logger
	QC  *cache.QueryCache

	mu  sync.RWMutex
	eng *engine.Engine
}

func New(g *graph.Graph, qc *cache.QueryCache, log *logrus.Logger) *Server {
	s := &Server{
		Mux: http.NewServeMux(),
		Log: log,
		QC:  qc,
		eng: engine.New(g),
	}
	metrics.GraphStations.Set(float64(g.StationCount()))
	metrics.GraphEdges.Set(float64(g.EdgeCount()))

	s.routes()
	return s
}

// SwapGraph replaces the graph all subsequent queries run against and
// bumps the cache epoch so stale results can never be served.
func (s *Server) SwapGraph(g *graph.Graph) {
	s.mu.Lock()
	s.eng = engine.New(g)
	s.mu.Unlock()

	s.QC.BumpEpoch()
	metrics.GraphRebuilds.Inc()
	metrics.GraphStations.Set(float64(g.StationCount()))
	metrics.GraphEdges.Set(float64(g.EdgeCount()))
	s.Log.WithFields(logrus.Fields{
		"stations": g.StationCount(),
		"edges":    g.EdgeCount(),
	}).Info("graph swapped")
}

func (s *Server) engine() *engine.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng
}

// Handler wraps the mux with request-ID tagging and access logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		s.Mux.ServeHTTP(w, r)
		s.Log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"elapsed":    time.Since(start).String(),
		}).Debug("request served")
	})
}

func (s *Server) routes() {
	s.Mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	s.Mux.Handle("/metrics", promhttp.Handler())

	s.Mux.HandleFunc("/route/distance", s.handleDistance)
	s.Mux.HandleFunc("/route/shortest", s.handleShortest)
	s.Mux.HandleFunc("/route/count/exact", s.handleExact)
	s.Mux.HandleFunc("/route/count/circular", s.handleCircular)
	s.Mux.HandleFunc("/route/count/under", s.handleUnder)

	s.Mux.HandleFunc("/debug/cache_stats", func(w http.ResponseWriter, _ *http.Request) {
		gets, hits, puts, evictions := s.QC.Stats()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.CacheStats{
			Gets:      gets,
			Hits:      hits,
			Puts:      puts,
			Evictions: evictions,
		})
	})

	s.Mux.HandleFunc("/debug/clear_cache", func(w http.ResponseWriter, _ *http.Request) {
		s.QC.Clear()
		w.Write([]byte("cleared"))
	})
}

// serve runs one query through the result cache. A miss computes the
// answer, records latency, and stores it under the current epoch.
func (s *Server) serve(w http.ResponseWriter, kind, args string, run func(e *engine.Engine) (int, bool)) {
	key := cache.QueryKey{Kind: kind, Args: args, Epoch: s.QC.Epoch()}

	if v, ok := s.QC.Get(key); ok {
		metrics.CacheHits.Inc()
		v.CacheHit = true
		writeJSON(w, v)
		return
	}
	metrics.CacheMisses.Inc()

	start := time.Now()
	value, ok := run(s.engine())
	metrics.QueryDuration.Observe(float64(time.Since(start).Microseconds()) / 1000.0)

	status := "ok"
	if !ok {
		status = "no_route"
	}
	metrics.QueriesTotal.WithLabelValues(kind, status).Inc()

	resp := model.QueryResponse{Kind: kind, Value: value, Ok: ok}
	s.QC.Put(key, resp)
	writeJSON(w, resp)
}

func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	stops := splitStations(r.URL.Query().Get("stops"))
	if len(stops) == 0 {
		http.Error(w, "stops required", http.StatusBadRequest)
		return
	}
	s.serve(w, "distance", r.URL.Query().Get("stops"), func(e *engine.Engine) (int, bool) {
		return e.RouteDistance(stops...)
	})
}

func (s *Server) handleShortest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	src, dst := model.Station(q.Get("src")), model.Station(q.Get("dst"))
	if src == "" || dst == "" {
		http.Error(w, "src and dst required", http.StatusBadRequest)
		return
	}
	s.serve(w, "shortest", string(src)+":"+string(dst), func(e *engine.Engine) (int, bool) {
		return e.ShortestRoute(src, dst)
	})
}

func (s *Server) handleExact(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	src, dst := model.Station(q.Get("src")), model.Station(q.Get("dst"))
	stops, err := strconv.Atoi(q.Get("stops"))
	if src == "" || dst == "" || err != nil || stops < 0 {
		http.Error(w, "src, dst and non-negative stops required", http.StatusBadRequest)
		return
	}
	s.serve(w, "exact", string(src)+":"+string(dst)+":"+q.Get("stops"), func(e *engine.Engine) (int, bool) {
		return e.ExactStops(src, dst, stops)
	})
}

func (s *Server) handleCircular(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start := model.Station(q.Get("start"))
	stops, err := strconv.Atoi(q.Get("stops"))
	if start == "" || err != nil || stops < 0 {
		http.Error(w, "start and non-negative stops required", http.StatusBadRequest)
		return
	}
	s.serve(w, "circular", string(start)+":"+q.Get("stops"), func(e *engine.Engine) (int, bool) {
		return e.CircularRoutes(start, stops)
	})
}

func (s *Server) handleUnder(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	src, dst := model.Station(q.Get("src")), model.Station(q.Get("dst"))
	limit, err := strconv.Atoi(q.Get("limit"))
	if src == "" || dst == "" || err != nil || limit < 0 {
		http.Error(w, "src, dst and non-negative limit required", http.StatusBadRequest)
		return
	}
	s.serve(w, "under", string(src)+":"+string(dst)+":"+q.Get("limit"), func(e *engine.Engine) (int, bool) {
		return e.RoutesLessThan(src, dst, limit)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func splitStations(raw string) []model.Station {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	stops := make([]model.Station, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		stops = append(stops, model.Station(p))
	}
	return stops
}
