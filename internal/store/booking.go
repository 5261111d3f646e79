package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/skyroute/internal/apperr"
	"github.com/starford/skyroute/internal/models"
)

// InsertTraveler persists a traveler within tx. A duplicate email or phone
// surfaces as apperr.ErrUniqueness naming the column.
func (s *Store) InsertTraveler(tx *sql.Tx, t models.Traveler) (int64, error) {
	var maternal any
	if t.MaternalSurname != "" {
		maternal = t.MaternalSurname
	}
	res, err := tx.Exec(`
		INSERT INTO travelers (given_name, paternal_surname, maternal_surname,
			birth_date, nationality, category_id, email, phone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.GivenName, t.PaternalSurname, maternal, t.BirthDate, t.Nationality, t.CategoryID, t.Email, t.Phone)
	if err != nil {
		return 0, fmt.Errorf("store: insert traveler: %w", uniqueErr(err))
	}
	return res.LastInsertId()
}

// ReservationCodeExists reports whether a reservation already uses code.
func (s *Store) ReservationCodeExists(q Querier, code string) (bool, error) {
	var n int
	err := q.QueryRow(`SELECT COUNT(1) FROM reservations WHERE code = ?`, code).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("store: check code: %w", err)
	}
	return n > 0, nil
}

// InsertReservation persists the booking header within tx.
func (s *Store) InsertReservation(tx *sql.Tx, r models.Reservation) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO reservations (code, holder_id, contact_email, contact_phone, status)
		VALUES (?, ?, ?, ?, ?)
	`, r.Code, r.HolderID, r.ContactEmail, r.ContactPhone, r.Status)
	if err != nil {
		return 0, fmt.Errorf("store: insert reservation: %w", uniqueErr(err))
	}
	return res.LastInsertId()
}

// LinkTraveler attaches a traveler to a reservation with a role and seat.
func (s *Store) LinkTraveler(tx *sql.Tx, reservationID, travelerID int64, role, seat string) error {
	_, err := tx.Exec(`
		INSERT INTO reservation_travelers (reservation_id, traveler_id, role, seat)
		VALUES (?, ?, ?, ?)
	`, reservationID, travelerID, role, seat)
	if err != nil {
		return fmt.Errorf("store: link traveler: %w", uniqueErr(err))
	}
	return nil
}

// InsertSegment persists one materialized leg within tx. Nil metric
// pointers stay NULL.
func (s *Store) InsertSegment(tx *sql.Tx, seg models.Segment) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO segments (origin, destination, flight_date, trip_type, airport,
			aircraft, lounge, gate, distance_km, flight_hours, wait_hours,
			customs_hours, total_hours, base_fare, airport_fee, tax, discount, total_fare)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, seg.Origin, seg.Destination, seg.FlightDate, seg.TripType, seg.Airport,
		seg.Aircraft, seg.Lounge, seg.Gate, seg.DistanceKm, seg.FlightHours, seg.WaitHours,
		seg.CustomsHours, seg.TotalHours, seg.BaseFare, seg.AirportFee, seg.Tax, seg.Discount, seg.TotalFare)
	if err != nil {
		return 0, fmt.Errorf("store: insert segment: %w", err)
	}
	return res.LastInsertId()
}

// LinkSegment attaches a segment to a reservation at a 1-based leg position.
func (s *Store) LinkSegment(tx *sql.Tx, reservationID, segmentID int64, legOrder int, fareClass string) error {
	_, err := tx.Exec(`
		INSERT INTO reservation_segments (reservation_id, segment_id, leg_order, fare_class)
		VALUES (?, ?, ?, ?)
	`, reservationID, segmentID, legOrder, fareClass)
	if err != nil {
		return fmt.Errorf("store: link segment: %w", uniqueErr(err))
	}
	return nil
}

// ReservationCodes lists every reservation code in creation order.
func (s *Store) ReservationCodes() ([]string, error) {
	rows, err := s.conn.Query(`SELECT code FROM reservations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: reservation codes: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetReservation loads the full ticketing payload for one code: the header,
// passengers holder-first, and legs in leg order. Aggregate totals are left
// for the booking service to fill in.
func (s *Store) GetReservation(code string) (*models.ReservationDetail, error) {
	var d models.ReservationDetail
	err := s.conn.QueryRow(`
		SELECT id, code, holder_id, contact_email, contact_phone, status, created_at
		FROM reservations WHERE code = ?
	`, code).Scan(&d.Reservation.ID, &d.Reservation.Code, &d.Reservation.HolderID,
		&d.Reservation.ContactEmail, &d.Reservation.ContactPhone,
		&d.Reservation.Status, &d.Reservation.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: reservation %q", apperr.ErrNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get reservation: %w", err)
	}

	d.Passengers, err = s.reservationPassengers(d.Reservation.ID)
	if err != nil {
		return nil, err
	}
	d.Legs, err = s.reservationLegs(d.Reservation.ID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) reservationPassengers(reservationID int64) ([]models.Passenger, error) {
	rows, err := s.conn.Query(`
		SELECT t.id, t.given_name, t.paternal_surname, COALESCE(t.maternal_surname, ''),
			t.birth_date, t.nationality, c.name, rt.role, rt.seat
		FROM reservation_travelers rt
		JOIN travelers t  ON t.id = rt.traveler_id
		JOIN categories c ON c.id = t.category_id
		WHERE rt.reservation_id = ?
		ORDER BY CASE rt.role WHEN 'holder' THEN 0 ELSE 1 END, t.id
	`, reservationID)
	if err != nil {
		return nil, fmt.Errorf("store: reservation passengers: %w", err)
	}
	defer rows.Close()

	var out []models.Passenger
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.TravelerID, &p.GivenName, &p.PaternalSurname, &p.MaternalSurname,
			&p.BirthDate, &p.Nationality, &p.Category, &p.Role, &p.Seat); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) reservationLegs(reservationID int64) ([]models.Leg, error) {
	rows, err := s.conn.Query(`
		SELECT rs.leg_order, rs.fare_class,
			sg.id, sg.origin, sg.destination, sg.flight_date, sg.trip_type, sg.airport,
			sg.aircraft, sg.lounge, sg.gate,
			sg.distance_km, sg.flight_hours, sg.wait_hours, sg.customs_hours, sg.total_hours,
			sg.base_fare, sg.airport_fee, sg.tax, sg.discount, sg.total_fare
		FROM reservation_segments rs
		JOIN segments sg ON sg.id = rs.segment_id
		WHERE rs.reservation_id = ?
		ORDER BY rs.leg_order
	`, reservationID)
	if err != nil {
		return nil, fmt.Errorf("store: reservation legs: %w", err)
	}
	defer rows.Close()

	var out []models.Leg
	for rows.Next() {
		var l models.Leg
		sg := &l.Segment
		if err := rows.Scan(&l.LegOrder, &l.FareClass,
			&sg.ID, &sg.Origin, &sg.Destination, &sg.FlightDate, &sg.TripType, &sg.Airport,
			&sg.Aircraft, &sg.Lounge, &sg.Gate,
			&sg.DistanceKm, &sg.FlightHours, &sg.WaitHours, &sg.CustomsHours, &sg.TotalHours,
			&sg.BaseFare, &sg.AirportFee, &sg.Tax, &sg.Discount, &sg.TotalFare); err != nil {
			return nil, err
		}
		l.Origin = sg.Origin
		l.Destination = sg.Destination
		l.FlightDate = sg.FlightDate
		l.TripType = sg.TripType
		l.Airport = sg.Airport
		l.Aircraft = sg.Aircraft
		l.Lounge = sg.Lounge
		l.Gate = sg.Gate
		l.DistanceKm = sg.DistanceKm
		l.TotalHours = sg.TotalHours
		l.TotalFare = sg.TotalFare
		out = append(out, l)
	}
	return out, rows.Err()
}
