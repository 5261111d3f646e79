package api

import (
	"github.com/starford/skyroute/internal/booking"
	"github.com/starford/skyroute/internal/models"
	"github.com/starford/skyroute/internal/routing"
	"github.com/starford/skyroute/internal/store"
)

// BookRequest is the request body for creating a booking (aliased from the
// domain layer).
type BookRequest = booking.BookRequest

// BookResult is the booking response (aliased from the domain layer).
type BookResult = booking.BookResult

// ReservationDetail is the ticketing payload (aliased from the domain layer).
type ReservationDetail = models.ReservationDetail

// EnsureCategoryRequest is the request body for registering a category.
type EnsureCategoryRequest struct {
	Name string `json:"name" example:"Adulto Mayor" validate:"required"`
}

// CategoryListResponse wraps the catalog listing.
type CategoryListResponse struct {
	Categories []store.Category `json:"categories" validate:"required"`
}

// BookingListResponse wraps the reservation code listing.
type BookingListResponse struct {
	Codes []string `json:"codes" validate:"required"`
}

// ItineraryDTO is one best route in a response. Totals is omitted when the
// destination is unreachable under that criterion.
type ItineraryDTO struct {
	Path      []string        `json:"path"`
	Reachable bool            `json:"reachable"`
	Totals    *routing.Totals `json:"totals,omitempty"`
}

// RoutesResponse holds the best itinerary per criterion for one query.
type RoutesResponse struct {
	Origin      string       `json:"origin"`
	Destination string       `json:"destination"`
	Cost        ItineraryDTO `json:"cost"`
	Distance    ItineraryDTO `json:"distance"`
	Time        ItineraryDTO `json:"time"`
}

func itineraryDTO(it routing.Itinerary) ItineraryDTO {
	dto := ItineraryDTO{Path: it.Path, Reachable: it.Reachable()}
	if dto.Path == nil {
		dto.Path = []string{}
	}
	if dto.Reachable {
		totals := it.Totals
		dto.Totals = &totals
	}
	return dto
}
