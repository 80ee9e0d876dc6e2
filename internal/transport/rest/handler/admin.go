package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"readiness/internal/model"
	"readiness/internal/service"
)

// AdminHandler serves analytics and A/B results to admins
type AdminHandler struct {
	assessmentSvc  *service.AssessmentService
	improvementSvc *service.ImprovementService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(assessmentSvc *service.AssessmentService, improvementSvc *service.ImprovementService) *AdminHandler {
	return &AdminHandler{
		assessmentSvc:  assessmentSvc,
		improvementSvc: improvementSvc,
	}
}

// PersonaDistribution handles GET /v1/analytics/personas/{type}
func (h *AdminHandler) PersonaDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.assessmentSvc.PersonaDistribution(r.Context(), model.AssessmentType(mux.Vars(r)["type"]))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dist)
}

// VariantStats handles GET /v1/improvement/{type}/stats
func (h *AdminHandler) VariantStats(w http.ResponseWriter, r *http.Request) {
	t, ok := h.assessmentType(w, r)
	if !ok {
		return
	}
	stats, err := h.improvementSvc.Stats(r.Context(), t)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Variants handles GET /v1/improvement/{type}/variants
func (h *AdminHandler) Variants(w http.ResponseWriter, r *http.Request) {
	t, ok := h.assessmentType(w, r)
	if !ok {
		return
	}
	variants, err := h.improvementSvc.Variants(r.Context(), t)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if variants == nil {
		variants = []*model.Variant{}
	}
	writeJSON(w, http.StatusOK, variants)
}

func (h *AdminHandler) assessmentType(w http.ResponseWriter, r *http.Request) (model.AssessmentType, bool) {
	if h.improvementSvc == nil {
		writeError(w, http.StatusNotFound, "improvement tracking is disabled")
		return "", false
	}
	t := model.AssessmentType(mux.Vars(r)["type"])
	if _, err := h.assessmentSvc.Metadata(t); err != nil {
		writeServiceError(w, err)
		return "", false
	}
	return t, true
}
