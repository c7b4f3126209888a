// Package httpapi exposes the zoo service as a JSON API under /api/v1.
package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"zoocore/internal/blob"
	"zoocore/internal/core"
	"zoocore/internal/suncalc"
)

// Handler serves the API. Archive and Sun are optional; the endpoints that
// need them answer 400 when they are missing.
type Handler struct {
	svc     *core.Service
	archive *blob.Archive
	sun     *suncalc.SunCalc
	logger  *slog.Logger
	metrics http.Handler
	now     func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithArchive enables report archiving.
func WithArchive(archive *blob.Archive) Option {
	return func(h *Handler) { h.archive = archive }
}

// WithSunCalc enables location-aware day cycles.
func WithSunCalc(sun *suncalc.SunCalc) Option {
	return func(h *Handler) { h.sun = sun }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(metrics http.Handler) Option {
	return func(h *Handler) { h.metrics = metrics }
}

// WithNow overrides the clock used for day-cycle lookups without ?at=.
func WithNow(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// New constructs a Handler over svc.
func New(svc *core.Service, opts ...Option) *Handler {
	h := &Handler{
		svc:    svc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router builds the chi router with every route mounted.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/zoos", h.zooRoutes)
		r.Route("/enclosures", h.enclosureRoutes)
		r.Route("/animals", h.animalRoutes)
		r.Route("/categories", h.categoryRoutes)
		r.Get("/reports/*", h.getReport)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found"})
	})
	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.LogAttrs(r.Context(), slog.LevelDebug, "http request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
