package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"medilog-backend/internal/handler"
	"medilog-backend/internal/httputil"
	authmw "medilog-backend/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	MedicationHandler   *handler.MedicationHandler
	CheckupHandler      *handler.CheckupHandler
	CareHandler         *handler.CareHandler
	SubscriptionHandler *handler.SubscriptionHandler
	CronHandler         *handler.CronHandler
	JWTSecret           string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes - no authentication required
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/logout", cfg.AuthHandler.Logout)
		})

		// The trigger endpoint carries its own optional secret instead of
		// a user session: it is called by schedulers, not people.
		r.Get("/cron/check-notifications", cfg.CronHandler.CheckNotifications)

		r.Get("/push/public-key", cfg.SubscriptionHandler.PublicKey)

		// Protected routes - require authentication
		r.Group(func(r chi.Router) {
			r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

			r.Get("/me", cfg.AuthHandler.Me)

			r.Route("/medications", func(r chi.Router) {
				r.Get("/", cfg.MedicationHandler.List)
				r.Post("/", cfg.MedicationHandler.Create)
				r.Post("/deduct-week", cfg.MedicationHandler.DeductWeek)
				r.Get("/{id}", cfg.MedicationHandler.Get)
				r.Put("/{id}", cfg.MedicationHandler.Update)
				r.Delete("/{id}", cfg.MedicationHandler.Delete)
			})

			r.Route("/checkups", func(r chi.Router) {
				r.Get("/", cfg.CheckupHandler.List)
				r.Post("/", cfg.CheckupHandler.Create)
				r.Get("/{id}", cfg.CheckupHandler.Get)
				r.Put("/{id}", cfg.CheckupHandler.Update)
				r.Post("/{id}/complete", cfg.CheckupHandler.Complete)
				r.Delete("/{id}", cfg.CheckupHandler.Delete)
			})

			r.Route("/care", func(r chi.Router) {
				r.Get("/invites", cfg.CareHandler.ListPendingInvites)
				r.Post("/invites", cfg.CareHandler.Invite)
				r.Post("/invites/{id}/respond", cfg.CareHandler.Respond)
				r.Get("/caregivers", cfg.CareHandler.ListCaregivers)
				r.Delete("/caregivers/{id}", cfg.CareHandler.Remove)
			})

			r.Route("/push", func(r chi.Router) {
				r.Post("/subscribe", cfg.SubscriptionHandler.Subscribe)
				r.Delete("/subscribe", cfg.SubscriptionHandler.Unsubscribe)
				r.Post("/test", cfg.SubscriptionHandler.SendTest)
			})
		})
	})

	return r
}
