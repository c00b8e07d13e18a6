package ports

import "go.trai.ch/cwaimg/internal/core/domain"

// ConfigLoader defines the interface for loading custom tasks from a task file.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the task file at path and returns its custom tasks.
	Load(path string) ([]domain.CustomTask, error)
}
