package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medilog-backend/internal/config"
	"medilog-backend/internal/httputil"
	"medilog-backend/internal/model"
	"medilog-backend/internal/service"
	"medilog-backend/internal/transport/http/middleware"
)

// SubscriptionHandler exposes the push device registration endpoints.
type SubscriptionHandler struct {
	service *service.SubscriptionService
	config  *config.Config
}

func NewSubscriptionHandler(service *service.SubscriptionService, cfg *config.Config) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		config:  cfg,
	}
}

// PublicKey serves the VAPID public key clients subscribe against
// GET /push/public-key
func (h *SubscriptionHandler) PublicKey(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"public_key": h.config.VAPIDPublicKey,
	})
}

// Subscribe registers a device for the caller
// POST /push/subscribe
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	sub, err := h.service.Subscribe(r.Context(), userID, &req)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sub)
}

// Unsubscribe removes one device registration by endpoint
// DELETE /push/subscribe
func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.UnsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.Unsubscribe(r.Context(), userID, req.Endpoint); err != nil {
		if errors.Is(err, model.ErrSubscriptionNotFound) {
			httputil.WriteNotFound(w, "Subscription not found")
			return
		}
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SendTest pushes a test message to all of the caller's devices
// POST /push/test
func (h *SubscriptionHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	result, err := h.service.SendTest(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to send test push")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{
		"sent":   result.Sent,
		"failed": result.Failed,
	})
}
