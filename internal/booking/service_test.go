package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/starford/skyroute/internal/apperr"
	"github.com/starford/skyroute/internal/models"
	"github.com/starford/skyroute/internal/store"
)

func testService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	s, idx := seededIndex(t)
	if _, err := s.EnsureCategory("general"); err != nil {
		t.Fatal(err)
	}
	return NewService(s, idx, nil), s
}

func holder() Person {
	return Person{
		GivenName:       "Frodo",
		PaternalSurname: "Baggins",
		BirthDate:       "2968-09-22",
		Nationality:     "Shire",
		Category:        "General",
		Email:           "frodo@shire.me",
		Phone:           "555-0001",
	}
}

func TestBookMultiLegOrder(t *testing.T) {
	svc, s := testService(t)

	res, err := svc.Book(context.Background(), BookRequest{
		Holder:     holder(),
		Path:       []string{"Shire", "Isengard", "Mordor", "Gondor"},
		FlightDate: "2026-10-01",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if len(res.Reservation.Code) != 6 {
		t.Errorf("code = %q, want 6 chars", res.Reservation.Code)
	}
	if len(res.SegmentIDs) != 3 {
		t.Fatalf("segment ids = %v, want 3", res.SegmentIDs)
	}

	d, err := s.GetReservation(res.Reservation.Code)
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	wantLegs := [][2]string{{"Shire", "Isengard"}, {"Isengard", "Mordor"}, {"Mordor", "Gondor"}}
	if len(d.Legs) != 3 {
		t.Fatalf("legs = %+v, want 3", d.Legs)
	}
	for i, w := range wantLegs {
		l := d.Legs[i]
		if l.LegOrder != i+1 || l.Origin != w[0] || l.Destination != w[1] {
			t.Errorf("leg %d = %d %s→%s, want %d %s→%s",
				i, l.LegOrder, l.Origin, l.Destination, i+1, w[0], w[1])
		}
	}
	if len(d.Passengers) != 1 || d.Passengers[0].Role != models.RoleHolder {
		t.Errorf("passengers = %+v, want single holder", d.Passengers)
	}
	if d.Passengers[0].Seat == "" {
		t.Error("holder seat not assigned")
	}
}

func TestBookRollsBackOnDuplicateEmail(t *testing.T) {
	svc, s := testService(t)
	ctx := context.Background()

	if _, err := svc.Book(ctx, BookRequest{
		Holder: holder(), Path: []string{"Shire", "Isengard"}, FlightDate: "2026-10-01",
	}); err != nil {
		t.Fatalf("first Book: %v", err)
	}

	// Same holder again: the traveler insert must fail and leave no trace.
	_, err := svc.Book(ctx, BookRequest{
		Holder: holder(), Path: []string{"Shire", "Isengard"}, FlightDate: "2026-10-01",
	})
	if !errors.Is(err, apperr.ErrUniqueness) {
		t.Fatalf("err = %v, want ErrUniqueness", err)
	}

	// Only the first booking's rows survive.
	codes, err := s.ReservationCodes()
	if err != nil || len(codes) != 1 {
		t.Fatalf("reservation codes = %v, %v, want exactly one", codes, err)
	}
	d, err := s.GetReservation(codes[0])
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	if len(d.Legs) != 1 {
		t.Errorf("legs = %d, want 1", len(d.Legs))
	}
}

func TestBookUnknownCategoryRollsBack(t *testing.T) {
	svc, s := testService(t)

	h := holder()
	h.Category = "stowaway"
	_, err := svc.Book(context.Background(), BookRequest{
		Holder: h, Path: []string{"Shire", "Isengard"}, FlightDate: "2026-10-01",
	})
	if !errors.Is(err, apperr.ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}

	codes, err := s.ReservationCodes()
	if err != nil {
		t.Fatal(err)
	}
	if len(codes) != 0 {
		t.Errorf("reservations = %v, want none after rollback", codes)
	}
}

func TestBookMissingMetricsFailsBeforeAnyWrite(t *testing.T) {
	svc, s := testService(t)

	_, err := svc.Book(context.Background(), BookRequest{
		Holder: holder(), Path: []string{"Shire", "Rivendell"}, FlightDate: "2026-10-01",
	})
	if !errors.Is(err, apperr.ErrMissingRouteMetrics) {
		t.Fatalf("err = %v, want ErrMissingRouteMetrics", err)
	}
	codes, err := s.ReservationCodes()
	if err != nil || len(codes) != 0 {
		t.Errorf("reservations = %v, %v, want none", codes, err)
	}
}

func TestBookCompanionFailureIsolated(t *testing.T) {
	svc, s := testService(t)

	good := holder()
	good.GivenName = "Samwise"
	good.Email = "sam@shire.me"
	good.Phone = "555-0002"

	bad := holder() // duplicate email/phone with the holder

	res, err := svc.Book(context.Background(), BookRequest{
		Holder:     holder(),
		Companions: []Person{good, bad},
		Path:       []string{"Shire", "Isengard"},
		FlightDate: "2026-10-01",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if len(res.Companions) != 2 {
		t.Fatalf("companion results = %+v", res.Companions)
	}
	if res.Companions[0].Error != "" {
		t.Errorf("good companion failed: %s", res.Companions[0].Error)
	}
	if res.Companions[1].Error == "" {
		t.Error("duplicate companion should have failed")
	}

	d, err := s.GetReservation(res.Reservation.Code)
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	if len(d.Passengers) != 2 {
		t.Fatalf("passengers = %+v, want holder + one companion", d.Passengers)
	}
	if d.Passengers[0].Role != models.RoleHolder || d.Passengers[1].Role != models.RoleCompanion {
		t.Errorf("roles = %s,%s, want holder first", d.Passengers[0].Role, d.Passengers[1].Role)
	}
}

func TestBookValidation(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	h := holder()
	h.Email = "not-an-email"
	if _, err := svc.Book(ctx, BookRequest{Holder: h, Path: []string{"Shire", "Isengard"}, FlightDate: "2026-10-01"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad email: err = %v, want ErrValidation", err)
	}

	if _, err := svc.Book(ctx, BookRequest{Holder: holder(), Path: []string{"Shire"}, FlightDate: "2026-10-01"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("short path: err = %v, want ErrValidation", err)
	}

	if _, err := svc.Book(ctx, BookRequest{Holder: holder(), Path: []string{"Shire", "Isengard"}, FlightDate: "01/10/2026"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad date: err = %v, want ErrValidation", err)
	}

	if _, err := svc.Book(ctx, BookRequest{Holder: holder(), Path: []string{"Shire", "Isengard"}, FlightDate: "2026-10-01 15:30:00"}); err != nil {
		t.Errorf("date-time flight date rejected: %v", err)
	}
}

func TestReservationTotals(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	sam := holder()
	sam.GivenName = "Samwise"
	sam.Email = "sam@shire.me"
	sam.Phone = "555-0002"

	res, err := svc.Book(ctx, BookRequest{
		Holder:     holder(),
		Companions: []Person{sam},
		Path:       []string{"Shire", "Isengard", "Mordor"},
		FlightDate: "2026-10-01",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	d, err := svc.Reservation(ctx, res.Reservation.Code)
	if err != nil {
		t.Fatalf("Reservation: %v", err)
	}
	// Leg 1: derived fare 130, derived hours 1.75. Leg 2: explicit 300 / 5.
	if d.Totals.FarePerPassenger != 430 {
		t.Errorf("fare per passenger = %v, want 430", d.Totals.FarePerPassenger)
	}
	if d.Totals.Hours != 6.75 {
		t.Errorf("hours = %v, want 6.75", d.Totals.Hours)
	}
	if d.Totals.DurationHours != 6 || d.Totals.DurationMinutes != 45 {
		t.Errorf("duration = %dh%dm, want 6h45m", d.Totals.DurationHours, d.Totals.DurationMinutes)
	}
	if d.Totals.DistanceKm != 1200 {
		t.Errorf("distance = %v, want 1200", d.Totals.DistanceKm)
	}
	if d.Totals.Passengers != 2 || d.Totals.GrandTotal != 860 {
		t.Errorf("grand total = %v over %d passengers, want 860 over 2",
			d.Totals.GrandTotal, d.Totals.Passengers)
	}
}

func TestEnsureCategoryPublishesOnce(t *testing.T) {
	s, idx := seededIndex(t)
	events := &captureEvents{}
	svc := NewService(s, idx, events)
	ctx := context.Background()

	_, created, err := svc.EnsureCategory(ctx, "Hobbit")
	if err != nil || !created {
		t.Fatalf("EnsureCategory = created %v, %v; want true, nil", created, err)
	}
	_, created, err = svc.EnsureCategory(ctx, "HOBBIT")
	if err != nil || created {
		t.Fatalf("EnsureCategory repeat = created %v, %v; want false, nil", created, err)
	}
	if got := events.count("category.created"); got != 1 {
		t.Errorf("category.created published %d times, want 1", got)
	}
}

type captureEvents struct {
	names []string
}

func (c *captureEvents) Publish(event string, _ any) { c.names = append(c.names, event) }

func (c *captureEvents) count(event string) int {
	n := 0
	for _, e := range c.names {
		if e == event {
			n++
		}
	}
	return n
}
