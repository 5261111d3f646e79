// Package routing computes best itineraries per criterion over the three
// shared-node weighted graphs.
package routing

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/starford/skyroute/internal/apperr"
	"github.com/starford/skyroute/internal/canon"
	"github.com/starford/skyroute/internal/graphstore"
)

// shortestPath runs single-source Dijkstra from origin with early exit once
// goal is settled. Returns the path as display names and its total weight.
// An unreachable goal yields (nil, +Inf, nil). The graph is pre-scanned for
// negative weights; a violation fails with apperr.ErrInvalidGraph naming
// the edge. A missing origin fails with apperr.ErrUnknownNode.
func shortestPath(g *graphstore.Graph, origin, goal string) ([]string, float64, error) {
	if !g.HasNode(origin) {
		return nil, 0, fmt.Errorf("%w: origin %q", apperr.ErrUnknownNode, origin)
	}

	var scanErr error
	g.Edges(func(from, to string, w float64) bool {
		if w < 0 {
			scanErr = fmt.Errorf("%w: negative edge weight %s→%s = %v", apperr.ErrInvalidGraph, from, to, w)
			return false
		}
		return true
	})
	if scanErr != nil {
		return nil, 0, scanErr
	}

	origin = canon.Node(origin)
	goalKey := canon.Node(goal)

	dist := map[string]float64{origin: 0}
	parent := make(map[string]string)
	visited := make(map[string]bool)

	pq := nodePQ{{id: origin, dist: 0}}
	heap.Init(&pq)

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u := item.id
		if visited[u] {
			continue // stale lazy-decrease-key entry
		}
		visited[u] = true

		if u == goalKey {
			break
		}

		for _, e := range g.Neighbors(u) {
			v := canon.Node(e.To)
			nd := item.dist + e.Weight
			if cur, seen := dist[v]; seen && nd >= cur {
				continue
			}
			dist[v] = nd
			parent[v] = u
			heap.Push(&pq, &nodeItem{id: v, dist: nd})
		}
	}

	total, reached := dist[goalKey]
	if !reached || !visited[goalKey] {
		return nil, math.Inf(1), nil
	}

	// Reconstruct goal → origin, then reverse.
	var path []string
	for cur := goalKey; ; {
		path = append(path, g.DisplayName(cur))
		if cur == origin {
			break
		}
		cur = parent[cur]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, total, nil
}

// sumPath sums the edge weights of path in g. A missing edge is a hard
// error naming the leg, never a silent zero.
func sumPath(g *graphstore.Graph, path []string, criterion graphstore.Criterion) (float64, error) {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		w, ok := g.EdgeWeight(path[i], path[i+1])
		if !ok {
			return 0, fmt.Errorf("%w: edge %s→%s absent in %s graph",
				apperr.ErrIncompleteCrossMetric, path[i], path[i+1], criterion)
		}
		total += w
	}
	return total, nil
}

// nodeItem is a (node, distance) entry in the priority queue.
type nodeItem struct {
	id   string
	dist float64
}

// nodePQ is a min-heap of *nodeItem under the lazy-decrease-key strategy:
// improved distances push duplicates, stale entries are skipped on pop.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
