package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"surveyforge/internal/service"
)

// LogicHandler handles rule CRUD, the logic map and evaluation endpoints
type LogicHandler struct {
	logicSvc *service.LogicService
}

// NewLogicHandler creates a new logic handler
func NewLogicHandler(logicSvc *service.LogicService) *LogicHandler {
	return &LogicHandler{logicSvc: logicSvc}
}

// ReorderRequest is the request body for bulk priority reassignment
type ReorderRequest struct {
	LogicIDs []string `json:"logicIds"`
}

// EvaluateRequest is the request body for an evaluation preview. Answers
// use the submitted string encoding; multi-select values are pipe-delimited.
type EvaluateRequest struct {
	Answers []AnswerEntry `json:"answers"`
}

// AnswerEntry is one submitted answer
type AnswerEntry struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// List handles GET /v1/surveys/{surveyId}/questions/{questionId}/logic
func (h *LogicHandler) List(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	rules, err := h.logicSvc.Rules(r.Context(), vars["surveyId"], vars["questionId"])
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

// Create handles POST /v1/surveys/{surveyId}/questions/{questionId}/logic
func (h *LogicHandler) Create(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var input service.RuleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule, err := h.logicSvc.AddRule(r.Context(), vars["surveyId"], vars["questionId"], input)
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rule)
}

// Update handles PUT /v1/surveys/{surveyId}/questions/{questionId}/logic/{logicId}
func (h *LogicHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var input service.RuleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule, err := h.logicSvc.UpdateRule(r.Context(), vars["surveyId"], vars["questionId"], vars["logicId"], input)
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// Delete handles DELETE /v1/surveys/{surveyId}/questions/{questionId}/logic/{logicId}
func (h *LogicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.logicSvc.DeleteRule(r.Context(), vars["surveyId"], vars["questionId"], vars["logicId"]); err != nil {
		writeFault(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles PUT /v1/surveys/{surveyId}/questions/{questionId}/logic/reorder
func (h *LogicHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.logicSvc.Reorder(r.Context(), vars["surveyId"], vars["questionId"], req.LogicIDs); err != nil {
		writeFault(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Map handles GET /v1/surveys/{surveyId}/logic-map
func (h *LogicHandler) Map(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	m, err := h.logicSvc.Map(r.Context(), surveyID)
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// Evaluate handles POST /v1/surveys/{surveyId}/evaluate-logic. The endpoint
// is anonymous: survey takers call it from the public runner.
func (h *LogicHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answers := make(map[string]string, len(req.Answers))
	for _, a := range req.Answers {
		answers[a.QuestionID] = a.Value
	}

	result, err := h.logicSvc.Evaluate(r.Context(), surveyID, answers)
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
