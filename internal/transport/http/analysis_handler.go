package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "gradecli/internal/errors"
	"gradecli/internal/services"
	"gradecli/pkg/contracts/domain"
)

// AnalysisHandler serves analysis views over the configured roster.
type AnalysisHandler struct {
	service      *services.RosterService
	errorHandler *apierrors.ErrorHandler
}

// NewAnalysisHandler creates an analysis handler.
func NewAnalysisHandler(service *services.RosterService, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		errorHandler: errorHandler,
	}
}

// Routes returns the analysis routes.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/distribution", h.Distribution)
	r.Get("/percentiles", h.Percentiles)
	r.Get("/sections", h.Sections)
	r.Get("/outliers", h.Outliers)
	r.Get("/improvements", h.Improvements)
	r.Get("/at-risk", h.AtRisk)
	r.Get("/top", h.Top)
	return r
}

// Distribution handles GET /api/analysis/distribution.
func (h *AnalysisHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Distribution(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}

// Percentiles handles GET /api/analysis/percentiles. Keys are rendered as
// strings so the JSON object is stable across encoders.
func (h *AnalysisHandler) Percentiles(w http.ResponseWriter, r *http.Request) {
	cuts, err := h.service.Percentiles(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	out := make(map[string]float64, len(cuts))
	for p, v := range cuts {
		out[strconv.FormatFloat(p, 'f', -1, 64)] = v
	}
	render.JSON(w, r, out)
}

// Sections handles GET /api/analysis/sections.
func (h *AnalysisHandler) Sections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.service.Sections(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, sections)
}

// Outliers handles GET /api/analysis/outliers?method=iqr|zscore. Method
// defaults to iqr.
func (h *AnalysisHandler) Outliers(w http.ResponseWriter, r *http.Request) {
	method := domain.OutlierMethod(r.URL.Query().Get("method"))
	report, err := h.service.Outliers(r.Context(), method)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// Improvements handles GET /api/analysis/improvements.
func (h *AnalysisHandler) Improvements(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Improvements(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, entries)
}

// AtRisk handles GET /api/analysis/at-risk.
func (h *AnalysisHandler) AtRisk(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.AtRisk(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, records)
}

// Top handles GET /api/analysis/top?n=. n is optional; omitted or zero
// returns every student with a computed grade.
func (h *AnalysisHandler) Top(w http.ResponseWriter, r *http.Request) {
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("n",
				"n must be a non-negative integer"))
			return
		}
		n = parsed
	}

	records, err := h.service.Top(r.Context(), n)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, records)
}
