package ports

import "go.trai.ch/cwaimg/internal/core/domain"

// Storage persists downloaded files in task directories.
//
//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks
type Storage interface {
	// EnsureDir creates dir and its parents if needed.
	EnsureDir(dir string) error

	// ListFiles returns the completed files currently present in dir.
	ListFiles(dir string) (domain.LocalFileSet, error)

	// Save writes body to dir/name so that the final name only ever holds a
	// complete file. It returns the final path.
	Save(dir, name string, body []byte) (string, error)
}
