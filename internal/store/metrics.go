package store

import "fmt"

// RouteMetric is one row of the detailed per-leg metrics catalog.
type RouteMetric struct {
	Origin      string
	Destination string
	TripType    string

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

// RouteSummary is one row of the coarse fallback catalog.
type RouteSummary struct {
	Origin      string
	Destination string
	TripType    string

	DistanceKm *float64
	TotalHours *float64
	TotalFare  *float64
}

// Location maps a node name to its country and airport.
type Location struct {
	Name    string
	Country string
	Airport string
}

// RouteMetrics loads the entire detailed metrics catalog.
func (s *Store) RouteMetrics() ([]RouteMetric, error) {
	rows, err := s.conn.Query(`
		SELECT origin, destination, COALESCE(trip_type, ''),
			distance_km, flight_hours, wait_hours, customs_hours, total_hours,
			base_fare, airport_fee, tax, discount, total_fare
		FROM route_metrics
	`)
	if err != nil {
		return nil, fmt.Errorf("store: route metrics: %w", err)
	}
	defer rows.Close()

	var out []RouteMetric
	for rows.Next() {
		var m RouteMetric
		if err := rows.Scan(&m.Origin, &m.Destination, &m.TripType,
			&m.DistanceKm, &m.FlightHours, &m.WaitHours, &m.CustomsHours, &m.TotalHours,
			&m.BaseFare, &m.AirportFee, &m.Tax, &m.Discount, &m.TotalFare); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RouteSummaries loads the entire fallback catalog.
func (s *Store) RouteSummaries() ([]RouteSummary, error) {
	rows, err := s.conn.Query(`
		SELECT origin, destination, COALESCE(trip_type, ''), distance_km, total_hours, total_fare
		FROM route_summary
	`)
	if err != nil {
		return nil, fmt.Errorf("store: route summaries: %w", err)
	}
	defer rows.Close()

	var out []RouteSummary
	for rows.Next() {
		var m RouteSummary
		if err := rows.Scan(&m.Origin, &m.Destination, &m.TripType,
			&m.DistanceKm, &m.TotalHours, &m.TotalFare); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Locations loads the location catalog.
func (s *Store) Locations() ([]Location, error) {
	rows, err := s.conn.Query(`SELECT name, country, airport FROM locations`)
	if err != nil {
		return nil, fmt.Errorf("store: locations: %w", err)
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.Name, &l.Country, &l.Airport); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SeedRouteMetric inserts one detailed catalog row. Used by catalog loaders
// and tests.
func (s *Store) SeedRouteMetric(m RouteMetric) error {
	_, err := s.conn.Exec(`
		INSERT INTO route_metrics (origin, destination, trip_type,
			distance_km, flight_hours, wait_hours, customs_hours, total_hours,
			base_fare, airport_fee, tax, discount, total_fare)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.Origin, m.Destination, nullIfEmpty(m.TripType),
		m.DistanceKm, m.FlightHours, m.WaitHours, m.CustomsHours, m.TotalHours,
		m.BaseFare, m.AirportFee, m.Tax, m.Discount, m.TotalFare)
	if err != nil {
		return fmt.Errorf("store: seed route metric: %w", err)
	}
	return nil
}

// SeedRouteSummary inserts one fallback catalog row.
func (s *Store) SeedRouteSummary(m RouteSummary) error {
	_, err := s.conn.Exec(`
		INSERT INTO route_summary (origin, destination, trip_type, distance_km, total_hours, total_fare)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.Origin, m.Destination, nullIfEmpty(m.TripType), m.DistanceKm, m.TotalHours, m.TotalFare)
	if err != nil {
		return fmt.Errorf("store: seed route summary: %w", err)
	}
	return nil
}

// SeedLocation inserts one location row.
func (s *Store) SeedLocation(l Location) error {
	_, err := s.conn.Exec(`
		INSERT INTO locations (name, country, airport) VALUES (?, ?, ?)
	`, l.Name, l.Country, l.Airport)
	if err != nil {
		return fmt.Errorf("store: seed location: %w", uniqueErr(err))
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
