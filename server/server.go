// Package server exposes a Scorer over HTTP.
package server

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/akualab/seqprob"
	"github.com/akualab/seqprob/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ModelInfo describes the model served by the API.
type ModelInfo interface {
	Name() string
	States() []string
	Symbols() []string
}

type Metrics struct {
	queries  *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seqprob",
			Name:      "queries_total",
			Help:      "Number of probability queries by status.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seqprob",
			Name:      "query_duration_seconds",
			Help:      "Time spent computing sequence probabilities.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}
	reg.MustRegister(m.queries, m.duration)
	return m
}

type Handler struct {
	scorer  *seqprob.Scorer
	info    ModelInfo
	metrics *Metrics
}

// NewRouter returns the API routes and a /metrics endpoint backed by reg.
func NewRouter(s *seqprob.Scorer, info ModelInfo, reg *prometheus.Registry) *chi.Mux {

	h := &Handler{scorer: s, info: info, metrics: NewMetrics(reg)}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Route("/api", func(r chi.Router) {
		r.Post("/probability", h.Probability)
		r.Get("/model", h.Model)
	})
	return r
}

type ProbabilityRequest struct {
	ID      string   `json:"id"`
	Symbols []string `json:"symbols"`
}

func (p *ProbabilityRequest) Bind(r *http.Request) error {
	if p.Symbols == nil {
		return errors.New("missing symbols")
	}
	return nil
}

type ProbabilityResponse struct {
	ID      string   `json:"id,omitempty"`
	Prob    float64  `json:"prob"`
	LogProb *float64 `json:"log_prob"`
}

func (h *Handler) Probability(w http.ResponseWriter, r *http.Request) {
	data := &ProbabilityRequest{}
	if err := render.Bind(r, data); err != nil {
		h.metrics.queries.WithLabelValues("bad_request").Inc()
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	start := time.Now()
	res := h.scorer.Score(model.Seq{ID: data.ID, Symbols: data.Symbols})
	h.metrics.duration.Observe(time.Since(start).Seconds())

	if res.Err != "" {
		h.metrics.queries.WithLabelValues("error").Inc()
		render.Render(w, r, ErrInvalidRequest(errors.New(res.Err)))
		return
	}
	h.metrics.queries.WithLabelValues("ok").Inc()
	if glog.V(3) {
		glog.Infof("request %s: P(%v) = %v", middleware.GetReqID(r.Context()), data.Symbols, res.Prob)
	}

	resp := &ProbabilityResponse{ID: res.ID, Prob: res.Prob}
	if !math.IsInf(res.LogProb, -1) {
		resp.LogProb = &res.LogProb
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

type ModelResponse struct {
	Name    string   `json:"name"`
	States  []string `json:"states"`
	Symbols []string `json:"symbols"`
}

func (h *Handler) Model(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &ModelResponse{
		Name:    h.info.Name(),
		States:  h.info.States(),
		Symbols: h.info.Symbols(),
	})
}

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}
