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

// CareHandler exposes the caregiver relationship endpoints.
type CareHandler struct {
	service *service.CareService
}

func NewCareHandler(service *service.CareService) *CareHandler {
	return &CareHandler{service: service}
}

// Invite sends a care request to a user by email
// POST /care/invites
func (h *CareHandler) Invite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.InviteCaregiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.Invite(r.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, model.ErrInviteRateLimited):
			httputil.WriteTooManyRequests(w, "Too many invites, try again later")
		case errors.Is(err, model.ErrSelfInvite):
			httputil.WriteBadRequest(w, "You cannot invite yourself")
		default:
			httputil.WriteBadRequest(w, err.Error())
		}
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Respond accepts or declines a pending invite
// POST /care/invites/{id}/respond
func (h *CareHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.RespondInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.Respond(r.Context(), chi.URLParam(r, "id"), userID, &req); err != nil {
		if errors.Is(err, model.ErrRelationshipNotFound) {
			httputil.WriteNotFound(w, "Invite not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to respond to invite")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Remove revokes a caregiver relationship
// DELETE /care/caregivers/{id}
func (h *CareHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		if errors.Is(err, model.ErrRelationshipNotFound) {
			httputil.WriteNotFound(w, "Relationship not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to remove caregiver")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListCaregivers returns the caller's caregivers, pending and accepted
// GET /care/caregivers
func (h *CareHandler) ListCaregivers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	caregivers, err := h.service.ListCaregivers(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list caregivers")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, caregivers)
}

// ListPendingInvites returns open requests where the caller is invited
// GET /care/invites
func (h *CareHandler) ListPendingInvites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	invites, err := h.service.ListPendingInvites(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list invites")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, invites)
}
