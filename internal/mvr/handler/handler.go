// Package handler exposes the MVR evaluation HTTP API
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/export"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/service"
	"github.com/fleetgate/fleetgate-backend/pkg/errors"
	"github.com/fleetgate/fleetgate-backend/pkg/httputil"
	"github.com/fleetgate/fleetgate-backend/pkg/logger"
)

// maxDocumentSize bounds the accepted document text payload
const maxDocumentSize = 5 << 20 // 5MB

// Handler handles HTTP requests for MVR evaluations
type Handler struct {
	service *service.Service
	log     *logger.Logger
}

// NewHandler creates a new evaluation handler
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, log: log}
}

// Routes mounts the evaluation endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/export", h.Export)
	r.Get("/{id}", h.Get)
	return r
}

// createRequest is the POST payload. The document text arrives already
// extracted; rendering PDFs to text is the caller's concern.
type createRequest struct {
	DocumentText string `json:"documentText" validate:"required"`
	DriverType   string `json:"driverType" validate:"required,oneof=essential non-essential"`
	DateOfBirth  string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	DriverName   string `json:"driverName"`
}

// Create handles POST /evaluations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize)

	var req createRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, errors.BadRequest("invalid JSON body"))
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	rec, err := h.service.Evaluate(r.Context(), domain.EvaluationInput{
		RawText:     req.DocumentText,
		DriverType:  domain.DriverType(req.DriverType),
		DateOfBirth: req.DateOfBirth,
		ManualName:  req.DriverName,
	})
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, rec)
}

// List handles GET /evaluations
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, records)
}

// Get handles GET /evaluations/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid evaluation ID"))
		return
	}

	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, rec)
}

// Export handles GET /evaluations/export?format=csv|xlsx
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httputil.Error(w, errors.BadRequest(err.Error()))
		return
	}

	records, err := h.service.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename(time.Now())+`"`)

	switch format {
	case export.FormatXLSX:
		err = export.WriteXLSX(w, records)
	default:
		err = export.WriteCSV(w, records)
	}
	if err != nil {
		// Headers are already sent; log instead of writing a second response
		h.log.WithError(err).Error().Msg("failed to stream evaluation log export")
		return
	}

	h.service.NotifyExported(r.Context(), string(format), len(records))
}
