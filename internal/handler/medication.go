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

// MedicationHandler exposes the medication inventory endpoints.
type MedicationHandler struct {
	service *service.MedicationService
}

func NewMedicationHandler(service *service.MedicationService) *MedicationHandler {
	return &MedicationHandler{service: service}
}

// List returns the caller's inventory
// GET /medications
func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	meds, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list medications")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, meds)
}

// Get returns one medication
// GET /medications/{id}
func (h *MedicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	med, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		if errors.Is(err, model.ErrMedicationNotFound) {
			httputil.WriteNotFound(w, "Medication not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get medication")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, med)
}

// Create adds a medication
// POST /medications
func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.MedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	med, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, med)
}

// Update replaces a medication's fields
// PUT /medications/{id}
func (h *MedicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.MedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	med, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrMedicationNotFound) {
			httputil.WriteNotFound(w, "Medication not found")
			return
		}
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, med)
}

// Delete removes a medication
// DELETE /medications/{id}
func (h *MedicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		if errors.Is(err, model.ErrMedicationNotFound) {
			httputil.WriteNotFound(w, "Medication not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to delete medication")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeductWeek subtracts a week of dosages from the whole inventory
// POST /medications/deduct-week
func (h *MedicationHandler) DeductWeek(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.service.DeductWeek(r.Context(), userID); err != nil {
		httputil.WriteInternalError(w, "Failed to deduct stock")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
