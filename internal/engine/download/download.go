// Package download fetches matched images that are not yet present locally.
package download

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/cwaimg/internal/core/ports"
	"go.trai.ch/zerr"
)

// Request describes one matched file.
type Request struct {
	Category string
	ImageURL string
	Filename string
	LocalDir string
	Existing domain.LocalFileSet

	// Timeout bounds the fetch. Zero leaves it bounded by ctx only.
	Timeout time.Duration
}

// Result is the outcome of one Request.
type Result struct {
	Filename string
	Outcome  domain.Outcome
	Path     string
	Bytes    int64
	Err      error
}

// Manager downloads single files. It is safe for concurrent use as long as
// concurrent requests target different directories.
type Manager struct {
	fetcher ports.Fetcher
	storage ports.Storage
	logger  ports.Logger
}

// NewManager creates a new Manager.
func NewManager(fetcher ports.Fetcher, storage ports.Storage, logger ports.Logger) *Manager {
	return &Manager{
		fetcher: fetcher,
		storage: storage,
		logger:  logger,
	}
}

// Download skips req when its file is already present, otherwise fetches and
// saves it. Errors are reported in the Result and logged, never returned.
func (m *Manager) Download(ctx context.Context, req Request) Result {
	res := Result{Filename: req.Filename}

	if req.Existing.Contains(req.Filename) {
		res.Outcome = domain.OutcomeSkipped
		m.logger.Debug("skipped " + req.Filename)
		return res
	}

	if ctx.Err() != nil {
		res.Outcome = domain.OutcomeCanceled
		return res
	}

	fetchCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	body, err := m.fetcher.FetchBytes(fetchCtx, req.ImageURL)
	if err != nil {
		if ctx.Err() != nil {
			res.Outcome = domain.OutcomeCanceled
			return res
		}
		return m.fail(res, req, err)
	}

	path, err := m.storage.Save(req.LocalDir, req.Filename, body)
	if err != nil {
		return m.fail(res, req, err)
	}

	res.Outcome = domain.OutcomeDownloaded
	res.Path = path
	res.Bytes = int64(len(body))
	m.logger.Info(fmt.Sprintf("saved %s %s", path, domain.HumanSize(res.Bytes)))
	return res
}

func (m *Manager) fail(res Result, req Request, err error) Result {
	err = zerr.With(zerr.Wrap(err, "download image failed"), "file", req.Filename)
	err = zerr.With(err, "category", req.Category)
	m.logger.Error(err)

	res.Outcome = domain.OutcomeFailed
	res.Err = err
	return res
}
