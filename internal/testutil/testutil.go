// Package testutil provides shared test helpers for setting up graph
// directories and booking databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/skyroute/internal/graphstore"
	"github.com/starford/skyroute/internal/storage"
	"github.com/starford/skyroute/internal/store"
)

// TestStore creates a temporary SQLite booking store that is automatically
// cleaned up.
func TestStore(t *testing.T) *store.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "skyroute-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	s, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestGraphs writes the three weight matrices into a temp directory and
// returns a fully loaded graph store plus the directory.
func TestGraphs(t *testing.T, costCSV, distanceCSV, timeCSV string) (*graphstore.Store, string) {
	t.Helper()
	dir := t.TempDir()
	files := map[graphstore.Criterion]string{
		graphstore.CriterionCost:     "cost.csv",
		graphstore.CriterionDistance: "distance.csv",
		graphstore.CriterionTime:     "time.csv",
	}
	for c, content := range map[graphstore.Criterion]string{
		graphstore.CriterionCost:     costCSV,
		graphstore.CriterionDistance: distanceCSV,
		graphstore.CriterionTime:     timeCSV,
	} {
		if err := os.WriteFile(filepath.Join(dir, files[c]), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	provider, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	gs := graphstore.New(provider, files)
	if err := gs.LoadAll(); err != nil {
		t.Fatal(err)
	}
	return gs, dir
}

func f(v float64) *float64 { return &v }

// SeedCatalogs fills the route and location catalogs with the standard
// Shire/Isengard/Mordor fixture and registers the "general" category.
func SeedCatalogs(t *testing.T, s *store.Store) {
	t.Helper()
	metrics := []store.RouteMetric{
		{Origin: "Shire", Destination: "Isengard", TripType: "N",
			DistanceKm: f(400), FlightHours: f(1), BaseFare: f(100), Tax: f(16)},
		{Origin: "Isengard", Destination: "Mordor",
			DistanceKm: f(800), TotalHours: f(5), TotalFare: f(300)},
	}
	for _, m := range metrics {
		if err := s.SeedRouteMetric(m); err != nil {
			t.Fatal(err)
		}
	}
	locations := []store.Location{
		{Name: "Shire", Country: "Eriador", Airport: "SHR"},
		{Name: "Isengard", Country: "Eriador", Airport: "ISG"},
		{Name: "Mordor", Country: "Mordor", Airport: "MRD"},
	}
	for _, l := range locations {
		if err := s.SeedLocation(l); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.EnsureCategory("general"); err != nil {
		t.Fatal(err)
	}
}
