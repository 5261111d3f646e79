package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func testFS(t *testing.T) (*FS, string) {
	t.Helper()
	dir := t.TempDir()
	f, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return f, dir
}

func TestNewFSRejectsMissingDir(t *testing.T) {
	if _, err := NewFS(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestListOnlyMatrixFiles(t *testing.T) {
	f, dir := testFS(t)
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("cost.csv", ",A\nA,0\n")
	write("distance.csv", ",A\nA,0\n")
	write("notes.txt", "not a matrix")

	metas, err := f.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("List = %v, want the two csv files", metas)
	}
	for _, m := range metas {
		if m.Checksum == "" {
			t.Errorf("%s has empty checksum", m.Path)
		}
		if m.UpdatedAt.IsZero() {
			t.Errorf("%s has zero mtime", m.Path)
		}
	}
}

func TestReadRoundtrip(t *testing.T) {
	f, dir := testFS(t)
	if err := os.WriteFile(filepath.Join(dir, "cost.csv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := f.Read("cost.csv")
	if err != nil || string(data) != "x" {
		t.Fatalf("Read = %q, %v", data, err)
	}
}

func TestReadRejectsTraversal(t *testing.T) {
	f, _ := testFS(t)
	for _, p := range []string{"../escape.csv", "/etc/passwd"} {
		if _, err := f.Read(p); err == nil {
			t.Errorf("Read(%q) should fail", p)
		}
	}
}
