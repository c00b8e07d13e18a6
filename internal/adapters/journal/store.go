// Package journal keeps the last cycle result of every category as a small
// JSON file under the download root.
package journal

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/zerr"
)

const entryExt = ".json"

// Store implements ports.ResultStore with one file per category.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a Store that keeps its entries in dir.
// The directory is created on the first Put.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// EntryName returns the file name of a category's entry.
func EntryName(category string) string {
	return strconv.FormatUint(xxhash.Sum64String(category), 16) + entryExt
}

func (s *Store) entryPath(category string) string {
	return filepath.Join(s.dir, EntryName(category))
}

// Get retrieves the last result for a category.
// Returns nil, nil if there is none.
func (s *Store) Get(category string) (*domain.TaskResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, err := s.read(s.entryPath(category))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(err, "category", category)
	}
	return result, nil
}

// Put stores result, replacing the previous entry of its category.
func (s *Store) Put(result domain.TaskResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Join(domain.ErrJournalMarshalFailed, zerr.With(err, "category", result.Category))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return writeError(s.dir, err)
	}

	path := s.entryPath(result.Category)
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return writeError(path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return writeError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return writeError(path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return writeError(path, err)
	}
	return nil
}

// List returns every stored result ordered by category. A missing journal
// directory yields no results.
func (s *Store) List() ([]domain.TaskResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Join(domain.ErrJournalReadFailed, zerr.With(err, "path", s.dir))
	}

	var results []domain.TaskResult
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != entryExt {
			continue
		}
		result, err := s.read(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	slices.SortFunc(results, func(a, b domain.TaskResult) int {
		return strings.Compare(a.Category, b.Category)
	})
	return results, nil
}

func (s *Store) read(path string) (*domain.TaskResult, error) {
	//nolint:gosec // path is built from the journal directory and a hash
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, errors.Join(domain.ErrJournalReadFailed, zerr.With(err, "path", path))
	}

	var result domain.TaskResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Join(domain.ErrJournalUnmarshalFailed, zerr.With(err, "path", path))
	}
	return &result, nil
}

func writeError(path string, err error) error {
	return errors.Join(domain.ErrJournalWriteFailed, zerr.With(err, "path", path))
}
