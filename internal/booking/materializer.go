package booking

import (
	"fmt"

	"github.com/starford/skyroute/internal/apperr"
	"github.com/starford/skyroute/internal/canon"
	"github.com/starford/skyroute/internal/models"
	"github.com/starford/skyroute/internal/store"
)

type pairKey struct {
	origin      string
	destination string
}

// MetricsIndex is the in-memory view of the route catalogs, keyed by
// canonical (origin, destination) so lookups tolerate spelling variants.
// Built once at startup; the catalogs are reference data, not live state.
type MetricsIndex struct {
	metrics   map[pairKey]store.RouteMetric
	summaries map[pairKey]store.RouteSummary
	locations map[string]store.Location
}

// LoadMetricsIndex reads the three catalogs from the store and indexes
// them. Later duplicate rows for the same pair win, matching a reloaded
// catalog overriding a stale one.
func LoadMetricsIndex(s *store.Store) (*MetricsIndex, error) {
	idx := &MetricsIndex{
		metrics:   make(map[pairKey]store.RouteMetric),
		summaries: make(map[pairKey]store.RouteSummary),
		locations: make(map[string]store.Location),
	}

	metrics, err := s.RouteMetrics()
	if err != nil {
		return nil, err
	}
	for _, m := range metrics {
		idx.metrics[pairOf(m.Origin, m.Destination)] = m
	}

	summaries, err := s.RouteSummaries()
	if err != nil {
		return nil, err
	}
	for _, m := range summaries {
		idx.summaries[pairOf(m.Origin, m.Destination)] = m
	}

	locations, err := s.Locations()
	if err != nil {
		return nil, err
	}
	for _, l := range locations {
		idx.locations[canon.Node(l.Name)] = l
	}
	return idx, nil
}

func pairOf(origin, destination string) pairKey {
	return pairKey{origin: canon.Node(origin), destination: canon.Node(destination)}
}

// Airport returns the airport recorded for a location, or "" when unknown.
func (idx *MetricsIndex) Airport(name string) string {
	return idx.locations[canon.Node(name)].Airport
}

// tripType classifies one leg. An explicit catalog marker wins: N is
// domestic, I is international. Without a marker the endpoint countries
// decide; an endpoint missing from the locations catalog classifies as
// international.
func (idx *MetricsIndex) tripType(marker, origin, destination string) string {
	switch marker {
	case "N":
		return models.TripDomestic
	case "I":
		return models.TripInternational
	}
	from, okFrom := idx.locations[canon.Node(origin)]
	to, okTo := idx.locations[canon.Node(destination)]
	if okFrom && okTo && from.Country == to.Country {
		return models.TripDomestic
	}
	return models.TripInternational
}

// Segments materializes one segment per consecutive node pair of path.
// The detailed catalog wins over the summary fallback; a leg in neither
// fails the whole materialization. Operational fields absent from the
// catalogs are drawn from the assignment pools.
func (idx *MetricsIndex) Segments(path []string, flightDate string) ([]models.Segment, error) {
	segments := make([]models.Segment, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		origin, destination := path[i], path[i+1]
		key := pairOf(origin, destination)

		var seg models.Segment
		if m, ok := idx.metrics[key]; ok {
			seg = models.Segment{
				TripType:     idx.tripType(m.TripType, origin, destination),
				DistanceKm:   m.DistanceKm,
				FlightHours:  m.FlightHours,
				WaitHours:    m.WaitHours,
				CustomsHours: m.CustomsHours,
				TotalHours:   coalesceHours(m),
				BaseFare:     m.BaseFare,
				AirportFee:   m.AirportFee,
				Tax:          m.Tax,
				Discount:     m.Discount,
				TotalFare:    coalesceFare(m),
			}
		} else if m, ok := idx.summaries[key]; ok {
			seg = models.Segment{
				TripType:   idx.tripType(m.TripType, origin, destination),
				DistanceKm: m.DistanceKm,
				TotalHours: m.TotalHours,
				TotalFare:  m.TotalFare,
			}
		} else {
			return nil, fmt.Errorf("%w: leg %s→%s", apperr.ErrMissingRouteMetrics, origin, destination)
		}

		seg.Origin = origin
		seg.Destination = destination
		seg.FlightDate = flightDate
		seg.Airport = idx.Airport(origin)
		if seg.Aircraft == "" {
			seg.Aircraft = randomAircraft()
		}
		if seg.Lounge == "" {
			seg.Lounge = randomLounge()
		}
		if seg.Gate == "" {
			seg.Gate = randomGate()
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// coalesceHours prefers the explicit total and otherwise derives one from
// the phase breakdown. All phases absent means no total at all.
func coalesceHours(m store.RouteMetric) *float64 {
	if m.TotalHours != nil {
		return m.TotalHours
	}
	if m.FlightHours == nil && m.WaitHours == nil && m.CustomsHours == nil {
		return nil
	}
	total := deref(m.FlightHours) + deref(m.WaitHours) + deref(m.CustomsHours)
	return &total
}

// coalesceFare prefers the explicit total and otherwise derives
// base + fee + tax − discount from whatever components exist.
func coalesceFare(m store.RouteMetric) *float64 {
	if m.TotalFare != nil {
		return m.TotalFare
	}
	if m.BaseFare == nil && m.AirportFee == nil && m.Tax == nil && m.Discount == nil {
		return nil
	}
	total := deref(m.BaseFare) + deref(m.AirportFee) + deref(m.Tax) - deref(m.Discount)
	return &total
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
