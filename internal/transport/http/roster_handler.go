// Package http wires the analysis services to chi routes. Handlers stay
// thin: decode the request, call the service, render JSON or an RFC 7807
// problem document.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "gradecli/internal/errors"
	"gradecli/internal/middleware"
	"gradecli/internal/services"
)

// maxUploadBytes caps roster uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// RosterHandler handles roster upload and analysis requests.
type RosterHandler struct {
	service      *services.RosterService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewRosterHandler creates a roster handler.
func NewRosterHandler(service *services.RosterService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *RosterHandler {
	return &RosterHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "roster_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the roster routes.
func (h *RosterHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/analyze", h.Analyze)
	return r
}

// Analyze handles POST /api/roster/analyze: a multipart upload carrying a
// csv or xlsx roster in the "file" field. Rows that fail validation come
// back in the rejects list; only an unreadable upload is an error.
func (h *RosterHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file",
			"multipart upload with a \"file\" field is required"))
		return
	}
	defer file.Close()

	analysis, err := h.service.AnalyzeUpload(r.Context(), header.Filename, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "roster upload analyzed",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("filename", header.Filename),
		slog.Int("students", len(analysis.Records)),
		slog.Int("rejects", len(analysis.Rejects)),
	)
	render.JSON(w, r, analysis)
}
