package handler

import (
	"encoding/json"
	"net/http"

	"surveyforge/pkg/fault"
)

// Helper functions shared by all handlers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeFault maps the error taxonomy onto status codes: validation -> 400,
// not found -> 404, anything else -> 500.
func writeFault(w http.ResponseWriter, err error) {
	switch {
	case fault.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case fault.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
