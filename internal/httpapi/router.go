package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hotreminder/backend/internal/domain"
	"github.com/hotreminder/backend/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Users     domain.UserService
	Medicines domain.MedicineService
	Reminders domain.ReminderService
	History   domain.HistoryService

	RateLimiter *RateLimiter
	Collector   *metrics.Collector
	Registry    *prometheus.Registry
}

// NewRouter wires all API endpoints and the middleware chain.
//
// Middleware order: Recovery -> RequestLogger -> Metrics -> RateLimiter.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(RequestLogger)
	if deps.Collector != nil {
		r.Use(Metrics(deps.Collector))
	}
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware)
	}

	userHandler := NewUserHandler(deps.Users)
	medicineHandler := NewMedicineHandler(deps.Medicines)
	reminderHandler := NewReminderHandler(deps.Reminders)
	historyHandler := NewHistoryHandler(deps.History)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, "Medicine Reminder API is running", envelope{"status": "OK"})
	})
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Registry))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", userHandler.Signup)
		r.Get("/user/{userId}", userHandler.GetUser)
		r.Put("/avatar/{userId}", userHandler.UpdateAvatar)
	})

	r.Route("/api/medicines", func(r chi.Router) {
		r.Post("/", medicineHandler.Create)
		r.Get("/user/{userId}", medicineHandler.List)
		r.Put("/{id}", medicineHandler.Update)
		r.Delete("/{id}", medicineHandler.Delete)
	})

	r.Route("/api/reminders", func(r chi.Router) {
		r.Post("/", reminderHandler.Create)
		r.Get("/user/{userId}", reminderHandler.List)
		r.Get("/user/{userId}/today", reminderHandler.ListToday)
		r.Put("/{id}", reminderHandler.Update)
		r.Put("/{id}/toggle", reminderHandler.Toggle)
		r.Delete("/{id}", reminderHandler.Delete)
	})

	r.Route("/api/history", func(r chi.Router) {
		r.Post("/", historyHandler.Create)
		r.Get("/user/{userId}", historyHandler.List)
		r.Get("/user/{userId}/stats", historyHandler.Stats)
		r.Delete("/{id}", historyHandler.Delete)
	})

	return r
}
