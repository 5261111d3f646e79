// Package graphstore loads and holds the three directed weighted graphs
// (cost, distance, time) that share one node set.
package graphstore

import (
	"fmt"

	"github.com/starford/skyroute/internal/canon"
	"github.com/starford/skyroute/internal/matrix"
)

// Criterion selects one of the three weighted graphs.
type Criterion string

const (
	CriterionCost     Criterion = "cost"
	CriterionDistance Criterion = "distance"
	CriterionTime     Criterion = "time"
)

// Criteria lists all criteria in their fixed presentation order.
var Criteria = []Criterion{CriterionCost, CriterionDistance, CriterionTime}

// Valid reports whether c is a known criterion.
func (c Criterion) Valid() bool {
	return c == CriterionCost || c == CriterionDistance || c == CriterionTime
}

// Edge is one directed weighted edge. To is the display name of the target
// node.
type Edge struct {
	To     string
	Weight float64
}

// Graph is a directed weighted adjacency list. Node identity is the
// canonical form (trimmed, whitespace-collapsed, case-folded); display
// names keep their first-seen spelling.
type Graph struct {
	order []string          // display names, first-seen order
	names map[string]string // canonical -> display
	adj   map[string][]Edge // canonical -> outgoing edges
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		names: make(map[string]string),
		adj:   make(map[string][]Edge),
	}
}

// FromMatrix builds a graph from a parsed weight matrix. The node set is
// the ordered union of row and column labels; duplicates merge on canonical
// form. A present, non-zero cell (u,v) becomes the directed edge u→v.
func FromMatrix(m *matrix.Matrix) (*Graph, error) {
	g := NewGraph()
	for _, label := range m.Rows {
		g.addNode(label)
	}
	for _, label := range m.Cols {
		g.addNode(label)
	}
	if len(g.order) == 0 {
		return nil, fmt.Errorf("graphstore: matrix has no nodes")
	}
	for _, row := range m.Rows {
		for _, col := range m.Cols {
			w, ok := m.Value(row, col)
			if !ok || w == 0 {
				continue
			}
			g.AddEdge(row, col, w)
		}
	}
	return g, nil
}

func (g *Graph) addNode(display string) string {
	key := canon.Node(display)
	if key == "" {
		return key
	}
	if _, seen := g.names[key]; !seen {
		g.names[key] = display
		g.order = append(g.order, display)
	}
	return key
}

// AddEdge inserts a directed edge from u to v.
func (g *Graph) AddEdge(u, v string, weight float64) {
	uk := g.addNode(u)
	g.addNode(v)
	g.adj[uk] = append(g.adj[uk], Edge{To: v, Weight: weight})
}

// Nodes returns the display names in first-seen order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// HasNode reports whether name (canonically matched) is part of the node set.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.names[canon.Node(name)]
	return ok
}

// DisplayName returns the first-seen spelling for name, or name itself when
// unknown.
func (g *Graph) DisplayName(name string) string {
	if d, ok := g.names[canon.Node(name)]; ok {
		return d
	}
	return name
}

// Neighbors returns the outgoing edges of u.
func (g *Graph) Neighbors(u string) []Edge {
	return g.adj[canon.Node(u)]
}

// EdgeWeight returns the weight of the edge u→v, and false when absent.
func (g *Graph) EdgeWeight(u, v string) (float64, bool) {
	vk := canon.Node(v)
	for _, e := range g.adj[canon.Node(u)] {
		if canon.Node(e.To) == vk {
			return e.Weight, true
		}
	}
	return 0, false
}

// Edges iterates every directed edge, calling fn with display names.
// Iteration stops early when fn returns false.
func (g *Graph) Edges(fn func(from, to string, weight float64) bool) {
	for _, display := range g.order {
		for _, e := range g.adj[canon.Node(display)] {
			if !fn(display, e.To, e.Weight) {
				return
			}
		}
	}
}
