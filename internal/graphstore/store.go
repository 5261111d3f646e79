package graphstore

import (
	"fmt"
	"sync"

	"github.com/starford/skyroute/internal/matrix"
	"github.com/starford/skyroute/internal/storage"
)

// Store loads the per-criterion weight matrices through a storage.Provider
// and holds the resulting graphs. Reads are concurrent; Reload swaps a
// graph atomically so route queries never observe a half-built graph.
type Store struct {
	provider storage.Provider
	files    map[Criterion]string

	mu     sync.RWMutex
	graphs map[Criterion]*Graph
}

// New creates a store reading the given matrix file per criterion.
func New(provider storage.Provider, files map[Criterion]string) *Store {
	return &Store{
		provider: provider,
		files:    files,
		graphs:   make(map[Criterion]*Graph),
	}
}

// Load reads, parses, and installs the graph for one criterion.
func (s *Store) Load(c Criterion) (*Graph, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("graphstore: unknown criterion %q", c)
	}
	file, ok := s.files[c]
	if !ok {
		return nil, fmt.Errorf("graphstore: no matrix file configured for %s", c)
	}
	data, err := s.provider.Read(file)
	if err != nil {
		return nil, fmt.Errorf("graphstore: %s: %w", c, err)
	}
	m, err := matrix.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("graphstore: %s: %w", c, err)
	}
	g, err := FromMatrix(m)
	if err != nil {
		return nil, fmt.Errorf("graphstore: %s: %w", c, err)
	}

	s.mu.Lock()
	s.graphs[c] = g
	s.mu.Unlock()
	return g, nil
}

// LoadAll loads every configured criterion.
func (s *Store) LoadAll() error {
	for c := range s.files {
		if _, err := s.Load(c); err != nil {
			return err
		}
	}
	return nil
}

// Graph returns the loaded graph for c.
func (s *Store) Graph(c Criterion) (*Graph, error) {
	s.mu.RLock()
	g, ok := s.graphs[c]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("graphstore: graph %s not loaded", c)
	}
	return g, nil
}

// Nodes returns the node set of the cost graph (all three share it).
func (s *Store) Nodes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.graphs[CriterionCost]; ok {
		return g.Nodes()
	}
	return nil
}

// CriterionForFile maps a matrix file name back to its criterion, for the
// watcher. Returns "" when the file is not a configured matrix.
func (s *Store) CriterionForFile(name string) Criterion {
	for c, f := range s.files {
		if f == name {
			return c
		}
	}
	return ""
}
