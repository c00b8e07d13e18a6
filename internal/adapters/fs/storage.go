// Package fs stores downloaded images on the local filesystem.
package fs

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/zerr"
)

// Storage implements ports.Storage on the local filesystem.
type Storage struct{}

// NewStorage creates a new Storage.
func NewStorage() *Storage {
	return &Storage{}
}

// EnsureDir creates dir and its parents if needed.
func (s *Storage) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return ioError(domain.ErrLocalDirCreateFailed, dir, err)
	}
	return nil
}

// ListFiles returns the regular files in dir. Dotfiles are left out and
// temporary files of unfinished downloads are removed. A missing dir yields an
// empty set.
func (s *Storage) ListFiles(dir string) (domain.LocalFileSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewLocalFileSet(), nil
		}
		return nil, ioError(domain.ErrLocalDirReadFailed, dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		// Left behind by an interrupted run.
		if domain.IsTempFile(e.Name()) {
			_ = os.Remove(filepath.Join(dir, e.Name()))
			continue
		}
		names = append(names, e.Name())
	}
	return domain.NewLocalFileSet(names...), nil
}

// Save writes body to a temporary file in dir and renames it to name once the
// data is synced. The temporary file is removed on any failure.
func (s *Storage) Save(dir, name string, body []byte) (path string, err error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ioError(domain.ErrLocalWriteFailed, filepath.Join(dir, name), zerr.New("invalid file name"))
	}
	path = filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, domain.TempFilePattern(name))
	if err != nil {
		return "", ioError(domain.ErrLocalWriteFailed, path, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(body); err != nil {
		return "", ioError(domain.ErrLocalWriteFailed, path, err)
	}
	if err = tmp.Sync(); err != nil {
		return "", ioError(domain.ErrLocalWriteFailed, path, err)
	}
	if err = tmp.Chmod(domain.FilePerm); err != nil {
		return "", ioError(domain.ErrLocalWriteFailed, path, err)
	}
	if err = tmp.Close(); err != nil {
		return "", ioError(domain.ErrLocalWriteFailed, path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return "", ioError(domain.ErrLocalWriteFailed, path, err)
	}

	return path, nil
}

func ioError(kind error, path string, cause error) error {
	return errors.Join(domain.ErrIO, kind, zerr.With(cause, "path", path))
}
