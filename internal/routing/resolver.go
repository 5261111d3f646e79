package routing

import (
	"math"

	"github.com/starford/skyroute/internal/apperr"
	"github.com/starford/skyroute/internal/canon"
	"github.com/starford/skyroute/internal/graphstore"
)

// Totals carries all three metrics summed along one path.
type Totals struct {
	Cost     float64 `json:"cost"`
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`
}

// Itinerary is the best path under one criterion plus its cross-metric
// totals. An unreachable destination yields an empty Path and an infinite
// own-criterion total; callers must treat that as "no route".
type Itinerary struct {
	Criterion graphstore.Criterion
	Path      []string
	Totals    Totals
}

// Reachable reports whether the itinerary holds an actual route.
func (it Itinerary) Reachable() bool { return len(it.Path) > 0 }

// RouteSet holds the best itinerary per criterion for one query.
type RouteSet struct {
	Cost     Itinerary
	Distance Itinerary
	Time     Itinerary
}

// ByCriterion returns the itinerary for c.
func (rs *RouteSet) ByCriterion(c graphstore.Criterion) Itinerary {
	switch c {
	case graphstore.CriterionDistance:
		return rs.Distance
	case graphstore.CriterionTime:
		return rs.Time
	default:
		return rs.Cost
	}
}

// Resolver computes best routes against the loaded graph store.
type Resolver struct {
	graphs *graphstore.Store
}

// NewResolver creates a Resolver over the given graph store.
func NewResolver(graphs *graphstore.Store) *Resolver {
	return &Resolver{graphs: graphs}
}

// BestRoutes runs Dijkstra once per criterion and cross-evaluates the other
// two metrics along each winning path. The own-criterion total is the
// shortest-path distance itself; the other two are edge-weight sums over
// the same path in the other graphs, where a missing edge is a hard error.
func (r *Resolver) BestRoutes(origin, destination string) (*RouteSet, error) {
	if canon.Node(origin) == "" || canon.Node(destination) == "" {
		return nil, apperr.Validationf("origin and destination are required")
	}
	if canon.Node(origin) == canon.Node(destination) {
		return nil, apperr.Validationf("origin and destination must differ")
	}

	rs := &RouteSet{}
	for _, c := range graphstore.Criteria {
		it, err := r.bestRoute(c, origin, destination)
		if err != nil {
			return nil, err
		}
		switch c {
		case graphstore.CriterionCost:
			rs.Cost = it
		case graphstore.CriterionDistance:
			rs.Distance = it
		case graphstore.CriterionTime:
			rs.Time = it
		}
	}
	return rs, nil
}

func (r *Resolver) bestRoute(c graphstore.Criterion, origin, destination string) (Itinerary, error) {
	g, err := r.graphs.Graph(c)
	if err != nil {
		return Itinerary{}, err
	}
	path, total, err := shortestPath(g, origin, destination)
	if err != nil {
		return Itinerary{}, err
	}
	it := Itinerary{Criterion: c, Path: path}
	if len(path) == 0 {
		inf := math.Inf(1)
		it.Totals = Totals{Cost: inf, Distance: inf, Time: inf}
		return it, nil
	}

	for _, other := range graphstore.Criteria {
		var v float64
		if other == c {
			v = total
		} else {
			og, gerr := r.graphs.Graph(other)
			if gerr != nil {
				return Itinerary{}, gerr
			}
			v, err = sumPath(og, path, other)
			if err != nil {
				return Itinerary{}, err
			}
		}
		switch other {
		case graphstore.CriterionCost:
			it.Totals.Cost = v
		case graphstore.CriterionDistance:
			it.Totals.Distance = v
		case graphstore.CriterionTime:
			it.Totals.Time = v
		}
	}
	return it, nil
}
