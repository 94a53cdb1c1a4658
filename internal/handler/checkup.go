package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medilog-backend/internal/httputil"
	"medilog-backend/internal/model"
	"medilog-backend/internal/service"
	"medilog-backend/internal/transport/http/middleware"
)

// CheckupHandler exposes the recurring checkup endpoints.
type CheckupHandler struct {
	service *service.CheckupService
}

func NewCheckupHandler(service *service.CheckupService) *CheckupHandler {
	return &CheckupHandler{service: service}
}

// List returns the caller's checkups
// GET /checkups
func (h *CheckupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	checkups, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list checkups")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, checkups)
}

// Get returns one checkup
// GET /checkups/{id}
func (h *CheckupHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	checkup, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		if errors.Is(err, model.ErrCheckupNotFound) {
			httputil.WriteNotFound(w, "Checkup not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get checkup")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, checkup)
}

// Create adds a recurring checkup
// POST /checkups
func (h *CheckupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CheckupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	checkup, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidFrequency) {
			httputil.WriteBadRequest(w, "Frequency must be a positive number of months or years")
			return
		}
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, checkup)
}

// Update replaces a checkup's fields
// PUT /checkups/{id}
func (h *CheckupHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CheckupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	checkup, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCheckupNotFound):
			httputil.WriteNotFound(w, "Checkup not found")
		case errors.Is(err, model.ErrInvalidFrequency):
			httputil.WriteBadRequest(w, "Frequency must be a positive number of months or years")
		default:
			httputil.WriteBadRequest(w, err.Error())
		}
		return
	}
	httputil.WriteJSON(w, http.StatusOK, checkup)
}

// Complete records an actual visit and rolls the due date forward
// POST /checkups/{id}/complete
func (h *CheckupHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CompleteCheckupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	checkup, err := h.service.Complete(r.Context(), chi.URLParam(r, "id"), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrCheckupNotFound) {
			httputil.WriteNotFound(w, "Checkup not found")
			return
		}
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, checkup)
}

// Delete removes a checkup
// DELETE /checkups/{id}
func (h *CheckupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		if errors.Is(err, model.ErrCheckupNotFound) {
			httputil.WriteNotFound(w, "Checkup not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to delete checkup")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
