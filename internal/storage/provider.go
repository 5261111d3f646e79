// Package storage defines the read-only abstraction over the directory
// holding the weight-matrix files.
package storage

import "time"

// FileMetadata describes one matrix file on disk.
type FileMetadata struct {
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// Provider is the interface for matrix-file access. The graph store and the
// watcher depend on this rather than the concrete FS type.
type Provider interface {
	// List returns metadata for every .csv file under the root.
	List() ([]FileMetadata, error)
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
}
