// Package dashboard serves a computed season report over HTTP: the HTML
// documents, chart images, JSON views and Prometheus gauges.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/render"
	"github.com/aatrey56/fpl-season-report/internal/report"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

type Options struct {
	// RateLimit caps /api requests per client per minute; zero disables it.
	RateLimit      int
	AllowedOrigins []string
}

type Server struct {
	rep     *report.Report
	log     *zap.Logger
	opts    Options
	reg     *prometheus.Registry
	awards  []byte
	summary []byte
	router  chi.Router
}

// New renders both documents up front so requests only copy bytes.
func New(rep *report.Report, log *zap.Logger, opts Options) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	s := &Server{rep: rep, log: log, opts: opts, reg: prometheus.NewRegistry()}

	var buf bytes.Buffer
	if err := render.Awards(&buf, rep.AwardsPage()); err != nil {
		return nil, err
	}
	s.awards = bytes.Clone(buf.Bytes())
	buf.Reset()
	if err := render.Report(&buf, rep.ReportPage()); err != nil {
		return nil, err
	}
	s.summary = bytes.Clone(buf.Bytes())

	newSeasonMetrics(s.reg).observe(rep)
	s.router = s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.html(s.summary))
	r.Get("/awards", s.html(s.awards))
	r.Get("/charts/{file}", s.handleChart)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "season": s.rep.Season})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		if s.opts.RateLimit > 0 {
			rate := limiter.Rate{Period: time.Minute, Limit: int64(s.opts.RateLimit)}
			r.Use(stdlib.NewMiddleware(limiter.New(memory.NewStore(), rate)).Handler)
		}
		r.Get("/aggregates", s.api(func() any { return s.aggregatesByPoints() }))
		r.Get("/awards", s.api(func() any { return s.rep.Awards }))
		r.Get("/positions", s.api(func() any { return s.rep.Positions }))
		r.Get("/top-captains", s.api(func() any { return s.rep.TopCaptains }))
		r.Get("/head-to-head", s.api(func() any { return s.rep.HeadToHeads }))
		r.Get("/charts", s.api(func() any { return s.chartIndex() }))
	})
	return r
}

func (s *Server) html(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}
}

func (s *Server) api(view func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, view())
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}
	c, ok := s.rep.Chart(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(c.PNG)
}

func (s *Server) aggregatesByPoints() []season.Aggregate {
	return season.SortBy(s.rep.Aggregates, func(a season.Aggregate) float64 { return float64(a.Points) }, false)
}

type chartRef struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (s *Server) chartIndex() []chartRef {
	out := make([]chartRef, 0, len(s.rep.Charts))
	for _, c := range s.rep.Charts {
		out = append(out, chartRef{Name: c.Name, Title: c.Title, URL: "/charts/" + c.Name + ".png"})
	}
	return out
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
