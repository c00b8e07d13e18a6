// Package config loads custom tasks from a YAML task file.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/cwaimg/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader for YAML task files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load reads the task file at path. Every returned error carries
// domain.ErrConfigInvalid.
func (l *Loader) Load(path string) ([]domain.CustomTask, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, configError(domain.ErrConfigReadFailed, path, err)
	}

	var file Taskfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, configError(domain.ErrConfigParseFailed, path, err)
	}

	if file.Version != SupportedVersion {
		err := zerr.With(zerr.Wrap(domain.ErrUnsupportedConfigVersion, "cannot load task file"), "version", file.Version)
		return nil, domain.Classify(domain.ErrConfigInvalid, zerr.With(err, "path", path))
	}

	if len(file.Tasks) == 0 && l.Logger != nil {
		l.Logger.Warn("task file defines no tasks", "path", path)
	}

	tasks := make([]domain.CustomTask, 0, len(file.Tasks))
	for _, dto := range file.Tasks {
		task := domain.CustomTask{
			Name:     dto.Name,
			Pattern:  dto.Pattern,
			ListPath: dto.List,
			ImageDir: dto.Dir,
		}
		// An empty entry is only a "no task" on the command line.
		if task.IsZero() {
			err := zerr.With(zerr.Wrap(domain.ErrCustomTaskIncomplete, "invalid task entry"), "task", dto.Name)
			err = zerr.With(err, "missing", "pattern, list, dir")
			return nil, domain.Classify(domain.ErrConfigInvalid, zerr.With(err, "path", path))
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func configError(kind error, path string, cause error) error {
	return errors.Join(domain.ErrConfigInvalid, kind, zerr.With(cause, "path", path))
}
