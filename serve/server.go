package serve

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/midbel/effcharts"
	"github.com/midbel/effcharts/decode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	svgContentType  = "image/svg+xml"
	htmlContentType = "text/html; charset=utf-8"
	jsonContentType = "application/json"

	svgExt      = ".svg"
	maxBodySize = 1 << 20
	unknownKind = "unknown"
)

var startedAt = time.Now().UTC()

type Options struct {
	Width     int
	Height    int
	Precision int
	Strict    bool
	Timeout   time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return 10 * time.Second
	}
	return o.Timeout
}

// Server renders charts over HTTP. Every request works on its own frame.
type Server struct {
	registry *charts.Registry
	logger   *slog.Logger
	opts     Options
	router   chi.Router
	metrics  *renderCollector

	mu         sync.Mutex
	httpServer *http.Server
}

func New(registry *charts.Registry, logger *slog.Logger, opts Options) *Server {
	if registry == nil {
		registry = charts.Builtin()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 450
	}
	s := &Server{
		registry: registry,
		logger:   logger,
		opts:     opts,
		router:   chi.NewRouter(),
		metrics:  newRenderCollector(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(addr string) error {
	hs := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.timeout(),
		WriteTimeout: s.opts.timeout(),
	}
	s.mu.Lock()
	s.httpServer = hs
	s.mu.Unlock()

	s.logger.Info("server listening", "addr", addr)
	return hs.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	hs := s.httpServer
	s.mu.Unlock()
	if hs == nil {
		return nil
	}
	return hs.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.router.Use(s.loggingMiddleware)

	s.router.Get("/healthz", s.healthz)
	s.router.Get("/kinds", s.listKinds)
	s.router.Get("/charts/{kind}", s.renderQuery)
	s.router.Post("/charts/{kind}", s.renderBody)
	s.router.Post("/charts/{kind}/tooltip", s.tooltip)

	reg := prometheus.NewRegistry()
	_ = reg.Register(collectors.NewGoCollector())
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "effcharts_uptime_seconds",
		Help: "Process uptime in seconds.",
	}, func() float64 {
		return time.Since(startedAt).Seconds()
	}))
	reg.MustRegister(s.metrics)
	s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}

func (s *Server) listKinds(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", jsonContentType)
	json.NewEncoder(w).Encode(s.registry.Kinds())
}

func (s *Server) renderQuery(w http.ResponseWriter, r *http.Request) {
	kind := chartKind(r)
	if _, err := s.registry.Lookup(kind); err != nil {
		s.fail(w, kind, http.StatusNotFound, err)
		return
	}
	str := r.URL.Query().Get("config")
	if str == "" {
		s.fail(w, kind, http.StatusBadRequest, charts.ErrEmptyInput)
		return
	}
	s.serveChart(w, r, strings.NewReader(str))
}

func (s *Server) renderBody(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, http.MaxBytesReader(w, r.Body, maxBodySize))
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, body io.Reader) {
	var (
		kind  = chartKind(r)
		now   = time.Now()
		query = r.URL.Query()
	)
	frame, code, err := s.frame(kind, body, r)
	if err != nil {
		s.fail(w, kind, code, err)
		return
	}
	m := frame.Render(frame.Config())
	if str := query.Get("active"); str != "" {
		index, err := strconv.Atoi(str)
		if err != nil {
			s.fail(w, kind, http.StatusBadRequest, fmt.Errorf("active: %w", err))
			return
		}
		m = frame.SetActive(index, query.Get("series"))
	}
	var (
		buf    bytes.Buffer
		width  = intParam(query.Get("width"), s.opts.Width)
		height = intParam(query.Get("height"), s.opts.Height)
	)
	if err := m.WriteDocument(&buf, width, height); err != nil {
		s.fail(w, kind, http.StatusInternalServerError, err)
		return
	}
	s.metrics.observe(kind, time.Since(now))
	w.Header().Set("Content-Type", svgContentType)
	w.Write(buf.Bytes())
}

// tooltip renders the chart described by the body and returns the
// tooltip of the row given by index, or of the row under x and y.
func (s *Server) tooltip(w http.ResponseWriter, r *http.Request) {
	var (
		kind  = chartKind(r)
		query = r.URL.Query()
	)
	frame, code, err := s.frame(kind, http.MaxBytesReader(w, r.Body, maxBodySize), r)
	if err != nil {
		s.fail(w, kind, code, err)
		return
	}
	frame.Render(frame.Config())

	index := -1
	if str := query.Get("index"); str != "" {
		index, err = strconv.Atoi(str)
	} else {
		var x, y float64
		if x, err = strconv.ParseFloat(query.Get("x"), 64); err == nil {
			y, err = strconv.ParseFloat(query.Get("y"), 64)
		}
		bounds := charts.Bounds{
			Width:  float64(intParam(query.Get("width"), s.opts.Width)),
			Height: float64(intParam(query.Get("height"), s.opts.Height)),
		}
		frame.SetActive(-1, query.Get("series"))
		index = frame.ActiveIndex(x, y, bounds)
	}
	if err != nil {
		s.fail(w, kind, http.StatusBadRequest, err)
		return
	}
	frame.SetActive(index, query.Get("series"))
	str, err := frame.Tooltip(index)
	if err != nil {
		s.fail(w, kind, http.StatusNotFound, err)
		return
	}
	w.Header().Set("Content-Type", htmlContentType)
	io.WriteString(w, str)
}

// frame decodes the config read from body and prepares a frame with the
// layout given in the query. The returned status code is meaningful only
// when err is not nil.
func (s *Server) frame(kind string, body io.Reader, r *http.Request) (*charts.Frame, int, error) {
	frame, err := s.registry.Frame(kind)
	if err != nil {
		return nil, http.StatusNotFound, err
	}
	dec := decode.NewDecoder(body)
	dec.SetStrict(s.opts.Strict)
	cfg, err := dec.Decode()
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	if cfg.Precision == nil && s.opts.Precision > 0 {
		p := s.opts.Precision
		cfg.Precision = &p
	}
	query := r.URL.Query()
	if palette := query.Get("palette"); palette != "" {
		p, ok := charts.PaletteByName(palette)
		if !ok {
			return nil, http.StatusBadRequest, fmt.Errorf("%s: unknown palette", palette)
		}
		cfg = p.Apply(cfg, charts.IsPolar(frame.Renderer))
	}
	frame.SetLayout(charts.ParseAxis(query.Get("axis")), query.Get("ratio"))
	frame.Update(cfg)
	return frame, http.StatusOK, nil
}

func (s *Server) fail(w http.ResponseWriter, kind string, code int, err error) {
	if errors.Is(err, charts.ErrUnknownKind) {
		kind = unknownKind
	}
	s.metrics.fail(kind)
	s.logger.Warn("render failed", "kind", kind, "status", code, "err", err)
	http.Error(w, err.Error(), code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "dur", time.Since(start), "bytes", rec.size)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// chartKind reads the kind from the url. A trailing .svg is ignored.
func chartKind(r *http.Request) string {
	return strings.TrimSuffix(chi.URLParam(r, "kind"), svgExt)
}

func intParam(str string, def int) int {
	n, err := strconv.Atoi(str)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
