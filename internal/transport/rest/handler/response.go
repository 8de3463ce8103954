package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"surveypulse/internal/model"
	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest/middleware"
)

// ResponseHandler handles response submission endpoints
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// SubmitRequest is the request body for submitting a response
type SubmitRequest struct {
	Answers []model.Answer `json:"answers"`
}

// Submit handles POST /v1/surveys/{surveyId}/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	userID := middleware.GetUserID(r.Context())

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.responseSvc.Submit(r.Context(), surveyID, userID, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// HasResponded handles GET /v1/surveys/{surveyId}/responses/me
func (h *ResponseHandler) HasResponded(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	userID := middleware.GetUserID(r.Context())

	responded, err := h.responseSvc.HasResponded(r.Context(), surveyID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"hasResponded": responded})
}
