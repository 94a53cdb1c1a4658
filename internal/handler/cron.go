package handler

import (
	"net/http"
	"strings"

	"medilog-backend/internal/config"
	"medilog-backend/internal/engine"
	"medilog-backend/internal/httputil"
	"medilog-backend/internal/runlock"
)

// CronHandler is the trigger surface for the alert engine. External
// schedulers hit it on whatever cadence the deployment uses.
type CronHandler struct {
	coordinator *engine.Coordinator
	locker      runlock.Locker
	config      *config.Config
}

func NewCronHandler(coordinator *engine.Coordinator, locker runlock.Locker, cfg *config.Config) *CronHandler {
	return &CronHandler{
		coordinator: coordinator,
		locker:      locker,
		config:      cfg,
	}
}

// CheckNotifications runs one evaluation pass and returns its summary
// GET /cron/check-notifications
func (h *CronHandler) CheckNotifications(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		httputil.WriteUnauthorized(w, "Invalid cron secret")
		return
	}

	acquired, err := h.locker.TryAcquire(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, "Failed to acquire run lock")
		return
	}
	if !acquired {
		httputil.WriteConflict(w, "A run is already in progress")
		return
	}
	defer h.locker.Release(r.Context())

	summary, err := h.coordinator.Run(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, "Alert run failed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"alerts_generated": summary.AlertsGenerated,
		"sent":             summary.Sent,
		"failed":           summary.Failed,
	})
}

// authorized checks the optional bearer secret. With no secret configured
// the endpoint is open, matching deployments where the platform scheduler
// calls it from inside the network.
func (h *CronHandler) authorized(r *http.Request) bool {
	if h.config.CronSecret == "" {
		return true
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return false
	}
	return parts[1] == h.config.CronSecret
}
