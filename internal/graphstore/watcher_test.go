package graphstore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/skyroute/internal/storage"
)

func TestWatchReloadsChangedMatrix(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("cost.csv", ",A,B\nA,0,10\nB,,0\n")

	provider, err := storage.NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	s := New(provider, map[Criterion]string{CriterionCost: "cost.csv"})
	if err := s.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	reloaded := make(chan Criterion, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	go func() {
		_ = Watch(ctx, s, dir, logger, func(c Criterion) { reloaded <- c })
	}()

	// Give the watcher a moment to register before mutating the file.
	time.Sleep(100 * time.Millisecond)
	write("cost.csv", ",A,B\nA,0,99\nB,,0\n")

	select {
	case c := <-reloaded:
		if c != CriterionCost {
			t.Fatalf("reloaded criterion = %q, want cost", c)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload callback")
	}

	g, err := s.Graph(CriterionCost)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if w, _ := g.EdgeWeight("A", "B"); w != 99 {
		t.Errorf("EdgeWeight after reload = %v, want 99", w)
	}
}
