package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"surveyforge/internal/model"
	"surveyforge/internal/service"
)

// SurveyHandler handles survey endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// SurveyRequest is the request body for creating or updating a survey
type SurveyRequest struct {
	Title     string           `json:"title"`
	Status    string           `json:"status"`
	Questions []model.Question `json:"questions"`
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := h.surveySvc.Create(r.Context(), &model.Survey{
		Title:     req.Title,
		Status:    req.Status,
		Questions: req.Questions,
	})
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, survey)
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	survey, err := h.surveySvc.GetByID(r.Context(), surveyID)
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// List handles GET /v1/surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveySvc.List(r.Context())
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": surveys})
}

// Update handles PUT /v1/surveys/{surveyId}
func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := h.surveySvc.Update(r.Context(), &model.Survey{
		ID:        surveyID,
		Title:     req.Title,
		Status:    req.Status,
		Questions: req.Questions,
	})
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// Delete handles DELETE /v1/surveys/{surveyId}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	if err := h.surveySvc.Delete(r.Context(), surveyID); err != nil {
		writeFault(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
