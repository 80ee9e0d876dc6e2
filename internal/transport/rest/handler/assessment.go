package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"readiness/internal/model"
	"readiness/internal/service"
	"readiness/internal/transport/rest/middleware"
)

// AssessmentHandler handles the respondent-facing assessment endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// Types handles GET /v1/assessments/types
func (h *AssessmentHandler) Types(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.assessmentSvc.Catalog())
}

// Type handles GET /v1/assessments/types/{type}
func (h *AssessmentHandler) Type(w http.ResponseWriter, r *http.Request) {
	meta, err := h.assessmentSvc.Metadata(model.AssessmentType(mux.Vars(r)["type"]))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// Recommend handles POST /v1/assessments/recommend
func (h *AssessmentHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var uc model.UserContext
	if err := json.NewDecoder(r.Body).Decode(&uc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, h.assessmentSvc.Recommend(uc))
}

// Start handles POST /v1/assessments
func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req model.StartAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(string(req.AssessmentType)) == "" {
		writeError(w, http.StatusBadRequest, "assessmentType is required")
		return
	}

	resp, err := h.assessmentSvc.Start(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Question handles GET /v1/assessments/{id}/question
func (h *AssessmentHandler) Question(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	q, err := h.assessmentSvc.CurrentQuestion(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if q == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"question": nil, "done": true})
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Submit handles POST /v1/assessments/{id}/responses
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var resp model.AssessmentResponse
	if err := json.NewDecoder(r.Body).Decode(&resp); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if resp.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}

	result, err := h.assessmentSvc.Submit(r.Context(), id, resp)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Progress handles GET /v1/assessments/{id}/progress
func (h *AssessmentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	progress, err := h.assessmentSvc.Progress(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Abandon handles POST /v1/assessments/{id}/abandon
func (h *AssessmentHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.assessmentSvc.Abandon(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Result handles GET /v1/assessments/{id}/result
func (h *AssessmentHandler) Result(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	result, err := h.assessmentSvc.Result(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// sessionID returns the path session, rejecting tokens scoped to another one
func (h *AssessmentHandler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if middleware.GetSessionID(r.Context()) != id {
		writeServiceError(w, service.ErrForbidden)
		return "", false
	}
	return id, true
}
