package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest/middleware"
)

// ResultsHandler handles aggregated results endpoints
type ResultsHandler struct {
	resultsSvc *service.ResultsService
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(resultsSvc *service.ResultsService) *ResultsHandler {
	return &ResultsHandler{resultsSvc: resultsSvc}
}

// Get handles GET /v1/surveys/{surveyId}/results
func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	results, err := h.resultsSvc.Summarize(r.Context(), surveyID, middleware.GetRole(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// Overview handles GET /v1/admin/overview
func (h *ResultsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.resultsSvc.Overview(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": overview})
}
