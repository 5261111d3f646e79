// Package models defines the persisted domain entities of the booking store.
package models

import "time"

// Trip classifications stored on a segment.
const (
	TripDomestic      = "domestic"
	TripInternational = "international"
)

// Reservation passenger roles.
const (
	RoleHolder    = "holder"
	RoleCompanion = "companion"
)

// Traveler is a registered passenger. Email and phone are globally unique;
// Category always references the canonical catalog, never free text.
type Traveler struct {
	ID              int64
	GivenName       string
	PaternalSurname string
	MaternalSurname string // optional
	BirthDate       string // ISO date, YYYY-MM-DD
	Nationality     string
	CategoryID      int64
	Email           string
	Phone           string
}

// Segment is one directed leg of a booking. Numeric fields are pointers so
// that absent source columns stay NULL in the store instead of turning into
// zeroes.
type Segment struct {
	ID          int64
	Origin      string
	Destination string
	FlightDate  string
	TripType    string
	Airport     string
	Aircraft    string
	Lounge      string
	Gate        string

	DistanceKm   *float64
	FlightHours  *float64
	WaitHours    *float64
	CustomsHours *float64
	TotalHours   *float64
	BaseFare     *float64
	AirportFee   *float64
	Tax          *float64
	Discount     *float64
	TotalFare    *float64
}

// Reservation is the booking header. Created once, terminal state
// "confirmed" in this core.
type Reservation struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"`
	HolderID     int64     `json:"holder_id"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Passenger is a traveler as linked to a reservation, holder first.
type Passenger struct {
	TravelerID      int64  `json:"traveler_id"`
	GivenName       string `json:"given_name"`
	PaternalSurname string `json:"paternal_surname"`
	MaternalSurname string `json:"maternal_surname,omitempty"`
	BirthDate       string `json:"birth_date"`
	Nationality     string `json:"nationality"`
	Category        string `json:"category"`
	Role            string `json:"role"`
	Seat            string `json:"seat"`
}

// Leg is a segment as linked to a reservation, in leg order.
type Leg struct {
	LegOrder  int     `json:"leg_order"`
	FareClass string  `json:"fare_class,omitempty"`
	Segment   Segment `json:"-"`

	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	FlightDate  string   `json:"flight_date"`
	TripType    string   `json:"trip_type"`
	Airport     string   `json:"airport,omitempty"`
	Aircraft    string   `json:"aircraft"`
	Lounge      string   `json:"lounge"`
	Gate        string   `json:"gate"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
	TotalHours  *float64 `json:"total_hours,omitempty"`
	TotalFare   *float64 `json:"total_fare,omitempty"`
}

// ItineraryTotals aggregates a reservation's legs for presentation:
// per-passenger fare times passenger count gives the grand total.
type ItineraryTotals struct {
	DistanceKm       float64 `json:"distance_km"`
	Hours            float64 `json:"hours"`
	DurationHours    int     `json:"duration_hours"`
	DurationMinutes  int     `json:"duration_minutes"`
	FarePerPassenger float64 `json:"fare_per_passenger"`
	Passengers       int     `json:"passengers"`
	GrandTotal       float64 `json:"grand_total"`
}

// ReservationDetail is the full ticketing payload for one reservation.
type ReservationDetail struct {
	Reservation Reservation     `json:"reservation"`
	Passengers  []Passenger     `json:"passengers"`
	Legs        []Leg           `json:"legs"`
	Totals      ItineraryTotals `json:"totals"`
}
