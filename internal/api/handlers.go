package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/skyroute/internal/booking"
	"github.com/starford/skyroute/internal/routing"
)

// Handler holds API route handlers.
type Handler struct {
	routes   *routing.Resolver
	bookings *booking.Service
}

// NewHandler creates a new Handler.
func NewHandler(routes *routing.Resolver, bookings *booking.Service) *Handler {
	return &Handler{routes: routes, bookings: bookings}
}

// BestRoutes handles GET /api/routes.
//
//	@Summary		Best itinerary per criterion between two nodes
//	@Tags			routes
//	@Produce		json
//	@Param			origin		query		string	true	"Origin node"
//	@Param			destination	query		string	true	"Destination node"
//	@Success		200			{object}	RoutesResponse
//	@Failure		400			{object}	errResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/routes [get]
func (h *Handler) BestRoutes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin := q.Get("origin")
	destination := q.Get("destination")

	rs, err := h.routes.BestRoutes(origin, destination)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RoutesResponse{
		Origin:      origin,
		Destination: destination,
		Cost:        itineraryDTO(rs.Cost),
		Distance:    itineraryDTO(rs.Distance),
		Time:        itineraryDTO(rs.Time),
	})
}

// CreateBooking handles POST /api/bookings.
//
//	@Summary		Book an itinerary for a holder and optional companions
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			body	body		BookRequest	true	"Booking to create"
//	@Success		201		{object}	BookResult
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/bookings [post]
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	res, err := h.bookings.Book(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ListBookings handles GET /api/bookings.
//
//	@Summary		List reservation codes in creation order
//	@Tags			bookings
//	@Produce		json
//	@Success		200	{object}	BookingListResponse
//	@Security		BearerAuth
//	@Router			/bookings [get]
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	codes, err := h.bookings.ReservationCodes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BookingListResponse{Codes: codes})
}

// GetBooking handles GET /api/bookings/{code}.
//
//	@Summary		Full ticketing payload for one reservation
//	@Tags			bookings
//	@Produce		json
//	@Param			code	path		string	true	"Reservation code"
//	@Success		200		{object}	ReservationDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/bookings/{code} [get]
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	d, err := h.bookings.Reservation(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ListCategories handles GET /api/categories.
//
//	@Summary		List the category catalog, case-insensitive order
//	@Tags			categories
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Security		BearerAuth
//	@Router			/categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.bookings.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CategoryListResponse{Categories: cats})
}

// EnsureCategory handles POST /api/categories.
//
//	@Summary		Get-or-create a category by normalized name
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			body	body		EnsureCategoryRequest	true	"Category to register"
//	@Success		200		{object}	store.Category
//	@Success		201		{object}	store.Category
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/categories [post]
func (h *Handler) EnsureCategory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4<<10)
	var req EnsureCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	cat, created, err := h.bookings.EnsureCategory(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, cat)
}
