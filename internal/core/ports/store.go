package ports

import "go.trai.ch/cwaimg/internal/core/domain"

// ResultStore keeps the last result of each category.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Get retrieves the last result for a category.
	// Returns nil, nil if not found.
	Get(category string) (*domain.TaskResult, error)

	// Put stores the result, replacing the previous one for its category.
	Put(result domain.TaskResult) error

	// List returns every stored result ordered by category.
	List() ([]domain.TaskResult, error)
}

// ResultStoreOpener opens the result store kept under a download root.
type ResultStoreOpener interface {
	// Open returns the store for root. It does not touch the filesystem.
	Open(root string) ResultStore
}
