// internal/api/handler.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"guardmatch/internal/common/errors"
	"guardmatch/internal/common/logger"
	"guardmatch/internal/engine"
	"guardmatch/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler exposes the recommendation pipeline over HTTP. Each request runs
// one synchronous fetch+score+rank pass; session semantics live with
// interactive embedders, not here.
type Handler struct {
	rec    *engine.Recommender
	logger logger.Logger
}

func NewHandler(rec *engine.Recommender, log logger.Logger) *Handler {
	return &Handler{
		rec:    rec,
		logger: log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// Router builds the HTTP routing table.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/v1/recommendations", h.handleRecommendations)

	return r
}

type recommendationRequest struct {
	SiteID                 string             `json:"siteId"`
	SiteCoordinate         *models.Coordinate `json:"siteCoordinate,omitempty"`
	Date                   string             `json:"date"`
	RequiredGuardType      string             `json:"requiredGuardType,omitempty"`
	RequiredCertifications []string           `json:"requiredCertifications,omitempty"`
}

type recommendationResponse struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Count           int                     `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *Handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log := h.logger.WithFields(map[string]interface{}{"requestId": requestID})

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.NewInvalidShiftContextError("malformed request body"))
		return
	}

	if req.SiteID == "" {
		h.writeError(w, http.StatusBadRequest, errors.NewInvalidShiftContextError("siteId is required"))
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.NewInvalidShiftContextError("date must be an ISO date (YYYY-MM-DD)"))
		return
	}

	shift := models.ShiftContext{
		SiteID:                 req.SiteID,
		SiteCoordinate:         req.SiteCoordinate,
		Date:                   date,
		RequiredGuardType:      req.RequiredGuardType,
		RequiredCertifications: req.RequiredCertifications,
	}

	recs, err := h.rec.Recommend(r.Context(), shift)
	if err != nil {
		log.Warn("recommendation request failed", map[string]interface{}{
			"siteId":    req.SiteID,
			"errorCode": errors.CodeOf(err),
			"error":     err,
		})
		h.writeError(w, http.StatusBadGateway, err)
		return
	}

	if recs == nil {
		recs = []models.Recommendation{}
	}
	h.writeJSON(w, http.StatusOK, recommendationResponse{
		Recommendations: recs,
		Count:           len(recs),
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.CodeOf(err)),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", map[string]interface{}{
			"error": err,
		})
	}
}
