package handler

import (
	"encoding/json"
	"net/http"

	"surveyhub/internal/model"
	"surveyhub/internal/service"
	"surveyhub/internal/transport/rest/middleware"
)

// ResponseHandler handles submission and reporting endpoints
type ResponseHandler struct {
	responseSvc *service.ResponseService
	statsSvc    *service.StatsService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService, statsSvc *service.StatsService) *ResponseHandler {
	return &ResponseHandler{
		responseSvc: responseSvc,
		statsSvc:    statsSvc,
	}
}

// SubmitRequest is the request body for submitting a response
type SubmitRequest struct {
	IntroResponses []model.IntroResponse  `json:"introResponses"`
	Responses      []model.QuestionAnswer `json:"responses"`
}

// Submit handles POST /v1/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, _, err := h.responseSvc.Submit(r.Context(), identity.UserID, req.IntroResponses, req.Responses)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": response})
}

// Stats handles GET /v1/responses/stats
func (h *ResponseHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.statsSvc.BuildQuestionStats(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": stats})
}

// Detail handles GET /v1/responses/detail
func (h *ResponseHandler) Detail(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	details, err := h.statsSvc.ResponsesForCreator(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": details})
}
