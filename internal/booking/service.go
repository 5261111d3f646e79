package booking

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/starford/skyroute/internal/apperr"
	"github.com/starford/skyroute/internal/models"
	"github.com/starford/skyroute/internal/store"
)

// Events receives domain notifications. Nil-safe through noopEvents.
type Events interface {
	Publish(event string, payload any)
}

type noopEvents struct{}

func (noopEvents) Publish(string, any) {}

// BookRequest is the input for one booking attempt. Path carries the
// itinerary nodes in travel order; ContactEmail/ContactPhone override the
// holder's when set.
type BookRequest struct {
	Holder       Person   `json:"holder"`
	Companions   []Person `json:"companions,omitempty"`
	Path         []string `json:"path"`
	FlightDate   string   `json:"flight_date"`
	FareClass    string   `json:"fare_class,omitempty"`
	ContactEmail string   `json:"contact_email,omitempty"`
	ContactPhone string   `json:"contact_phone,omitempty"`
}

// CompanionResult reports one companion registration, which succeeds or
// fails independently of the committed booking.
type CompanionResult struct {
	Email string `json:"email"`
	Error string `json:"error,omitempty"`
}

// BookResult is the outcome of a successful booking.
type BookResult struct {
	Reservation models.Reservation `json:"reservation"`
	SegmentIDs  []int64            `json:"segment_ids"`
	Companions  []CompanionResult  `json:"companions,omitempty"`
}

// Service coordinates the booking store and the metrics catalogs.
type Service struct {
	db      *store.Store
	metrics *MetricsIndex
	events  Events
}

// NewService creates a booking service. events may be nil.
func NewService(db *store.Store, metrics *MetricsIndex, events Events) *Service {
	if events == nil {
		events = noopEvents{}
	}
	return &Service{db: db, metrics: metrics, events: events}
}

// Book registers the holder, the reservation, and all materialized
// segments inside one immediate transaction; any failure rolls the whole
// booking back with zero rows written. Companions are registered after the
// commit, one transaction each, so a bad companion never voids the booking.
func (s *Service) Book(_ context.Context, req BookRequest) (*BookResult, error) {
	if err := req.Holder.Validate(); err != nil {
		return nil, err
	}
	if len(req.Path) < 2 {
		return nil, apperr.Validationf("itinerary path needs at least two nodes")
	}
	if err := validateFlightDate(req.FlightDate); err != nil {
		return nil, err
	}

	segments, err := s.metrics.Segments(req.Path, req.FlightDate)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	cat, err := s.db.ResolveCategory(tx, req.Holder.Category)
	if err != nil {
		return nil, err
	}
	holderID, err := s.db.InsertTraveler(tx, travelerOf(req.Holder, cat.ID))
	if err != nil {
		return nil, err
	}

	code, err := newReservationCode(func(c string) (bool, error) {
		return s.db.ReservationCodeExists(tx, c)
	})
	if err != nil {
		return nil, err
	}

	res := models.Reservation{
		Code:         code,
		HolderID:     holderID,
		ContactEmail: coalesceStr(req.ContactEmail, req.Holder.Email),
		ContactPhone: coalesceStr(req.ContactPhone, req.Holder.Phone),
		Status:       "confirmed",
	}
	res.ID, err = s.db.InsertReservation(tx, res)
	if err != nil {
		return nil, err
	}

	seat := req.Holder.Seat
	if seat == "" {
		seat = randomSeat()
	}
	if err := s.db.LinkTraveler(tx, res.ID, holderID, models.RoleHolder, seat); err != nil {
		return nil, err
	}

	segmentIDs := make([]int64, 0, len(segments))
	for i, seg := range segments {
		segID, err := s.db.InsertSegment(tx, seg)
		if err != nil {
			return nil, err
		}
		if err := s.db.LinkSegment(tx, res.ID, segID, i+1, req.FareClass); err != nil {
			return nil, err
		}
		segmentIDs = append(segmentIDs, segID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("booking: commit: %w", err)
	}
	res.CreatedAt = time.Now().UTC()

	out := &BookResult{Reservation: res, SegmentIDs: segmentIDs}
	for _, c := range req.Companions {
		cr := CompanionResult{Email: c.Email}
		if err := s.addCompanion(res.ID, c); err != nil {
			cr.Error = err.Error()
		}
		out.Companions = append(out.Companions, cr)
	}

	s.events.Publish("booking.created", res)
	return out, nil
}

// addCompanion registers one companion in its own immediate transaction.
func (s *Service) addCompanion(reservationID int64, c Person) error {
	if err := c.Validate(); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	cat, err := s.db.ResolveCategory(tx, c.Category)
	if err != nil {
		return err
	}
	travelerID, err := s.db.InsertTraveler(tx, travelerOf(c, cat.ID))
	if err != nil {
		return err
	}
	seat := c.Seat
	if seat == "" {
		seat = randomSeat()
	}
	if err := s.db.LinkTraveler(tx, reservationID, travelerID, models.RoleCompanion, seat); err != nil {
		return err
	}
	return tx.Commit()
}

// Reservation loads the ticketing payload for a code and fills in the
// aggregate totals.
func (s *Service) Reservation(_ context.Context, code string) (*models.ReservationDetail, error) {
	d, err := s.db.GetReservation(code)
	if err != nil {
		return nil, err
	}
	d.Totals = totalsOf(d)
	return d, nil
}

// ReservationCodes lists every reservation code in creation order.
func (s *Service) ReservationCodes(_ context.Context) ([]string, error) {
	return s.db.ReservationCodes()
}

// EnsureCategory gets-or-creates a catalog entry. It reports whether a row
// was actually inserted and publishes category.created only then.
func (s *Service) EnsureCategory(_ context.Context, name string) (store.Category, bool, error) {
	before, err := s.db.ListCategories()
	if err != nil {
		return store.Category{}, false, err
	}
	cat, err := s.db.EnsureCategory(name)
	if err != nil {
		return store.Category{}, false, err
	}
	for _, c := range before {
		if c.ID == cat.ID {
			return cat, false, nil
		}
	}
	s.events.Publish("category.created", cat)
	return cat, true, nil
}

// ListCategories returns the catalog ordered case-insensitively.
func (s *Service) ListCategories(_ context.Context) ([]store.Category, error) {
	return s.db.ListCategories()
}

// totalsOf aggregates the legs: distances and hours sum across the
// itinerary, the per-passenger fare times the passenger count gives the
// grand total.
func totalsOf(d *models.ReservationDetail) models.ItineraryTotals {
	t := models.ItineraryTotals{Passengers: len(d.Passengers)}
	for _, l := range d.Legs {
		seg := l.Segment
		t.DistanceKm += deref(seg.DistanceKm)
		if seg.TotalHours != nil {
			t.Hours += *seg.TotalHours
		} else {
			t.Hours += deref(seg.FlightHours)
		}
		if seg.TotalFare != nil {
			t.FarePerPassenger += *seg.TotalFare
		} else {
			t.FarePerPassenger += deref(seg.BaseFare) + deref(seg.AirportFee) + deref(seg.Tax) - deref(seg.Discount)
		}
	}
	t.DurationHours, t.DurationMinutes = HoursMinutes(t.Hours)
	t.GrandTotal = t.FarePerPassenger * float64(t.Passengers)
	return t
}

// HoursMinutes splits fractional hours for presentation, rounding to the
// nearest minute.
func HoursMinutes(hours float64) (int, int) {
	minutes := int(math.Round(hours * 60))
	return minutes / 60, minutes % 60
}

func travelerOf(p Person, categoryID int64) models.Traveler {
	return models.Traveler{
		GivenName:       p.GivenName,
		PaternalSurname: p.PaternalSurname,
		MaternalSurname: p.MaternalSurname,
		BirthDate:       p.BirthDate,
		Nationality:     p.Nationality,
		CategoryID:      categoryID,
		Email:           p.Email,
		Phone:           p.Phone,
	}
}

func coalesceStr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
