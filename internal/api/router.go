package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/skyroute/internal/booking"
	"github.com/starford/skyroute/internal/routing"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(routes *routing.Resolver, bookings *booking.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(routes, bookings)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Route planning.
	r.Get("/routes", h.BestRoutes)

	// Bookings.
	r.Get("/bookings", h.ListBookings)
	r.Post("/bookings", h.CreateBooking)
	r.Get("/bookings/{code}", h.GetBooking)

	// Category catalog.
	r.Get("/categories", h.ListCategories)
	r.Post("/categories", h.EnsureCategory)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
