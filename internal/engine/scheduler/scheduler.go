// Package scheduler runs the poll-extract-filter-download cycle over every
// registered task, once or periodically.
package scheduler

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/cwaimg/internal/core/ports"
	"go.trai.ch/cwaimg/internal/engine/download"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options controls a run.
type Options struct {
	// Root is the local download root. Each category gets a subdirectory.
	Root string
	// Host is the upstream base URL.
	Host string
	// Interval between cycles. Zero runs a single cycle.
	Interval time.Duration
	// Timeout bounds each HTTP request. Zero means domain.DefaultTimeout.
	Timeout time.Duration
	// Jobs is the number of tasks processed concurrently.
	Jobs int
	// Journal receives each task result. Nil disables journaling.
	Journal ports.ResultStore
}

func (o Options) withDefaults() Options {
	if o.Root == "" {
		o.Root = domain.DefaultRootDir
	}
	if o.Host == "" {
		o.Host = domain.DefaultHost
	}
	if o.Timeout <= 0 {
		o.Timeout = domain.DefaultTimeout
	}
	if o.Jobs < 1 {
		o.Jobs = 1
	}
	return o
}

// Scheduler drives the download cycle.
type Scheduler struct {
	fetcher    ports.Fetcher
	extractor  ports.Extractor
	storage    ports.Storage
	downloader *download.Manager
	tracer     ports.Tracer
	logger     ports.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	fetcher ports.Fetcher,
	extractor ports.Extractor,
	storage ports.Storage,
	downloader *download.Manager,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		fetcher:    fetcher,
		extractor:  extractor,
		storage:    storage,
		downloader: downloader,
		tracer:     tracer,
		logger:     logger,
	}
}

// Run executes cycles over reg until done.
//
// With a zero interval a single cycle runs and any task or file failure is
// reported as domain.ErrCycleFailed. Cancellation returns ctx.Err().
// With a positive interval cycles repeat until ctx is canceled, which ends the
// loop cleanly with a nil error.
func (s *Scheduler) Run(ctx context.Context, reg *domain.Registry, opts Options) error {
	opts = opts.withDefaults()

	if opts.Interval <= 0 {
		result := s.RunCycle(ctx, reg, opts)
		if err := ctx.Err(); err != nil {
			return err
		}
		return cycleError(result)
	}

	for {
		s.RunCycle(ctx, reg, opts)
		if ctx.Err() != nil {
			return nil
		}

		timer := time.NewTimer(opts.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// RunCycle processes every task in reg once. Tasks never abort each other.
func (s *Scheduler) RunCycle(ctx context.Context, reg *domain.Registry, opts Options) domain.CycleResult {
	opts = opts.withDefaults()

	ctx, span := s.tracer.Start(ctx, "cycle",
		ports.WithAttribute("tasks", reg.Len()),
		ports.WithAttribute("jobs", opts.Jobs),
	)
	defer span.End()

	s.tracer.EmitPlan(ctx, reg.Categories())
	s.logger.Info("run tasks", "tasks", strings.Join(reg.Categories(), ","))

	results := make([]domain.TaskResult, reg.Len())

	var g errgroup.Group
	g.SetLimit(opts.Jobs)

	i := 0
	for task := range reg.Tasks() {
		idx := i
		i++
		g.Go(func() error {
			results[idx] = s.runTask(ctx, task, opts)
			return nil
		})
	}
	_ = g.Wait()

	cycle := domain.CycleResult{Tasks: results}
	span.SetAttribute("downloaded", cycle.Downloaded())
	if cycle.Failed() {
		span.RecordError(domain.ErrCycleFailed)
	}

	s.logger.Info("tasks finished", "downloaded", cycle.Downloaded())
	return cycle
}

func (s *Scheduler) runTask(ctx context.Context, task domain.Task, opts Options) domain.TaskResult {
	ctx, span := s.tracer.Start(ctx, "task "+task.Category,
		ports.WithAttribute("category", task.Category),
	)
	defer span.End()

	res := domain.TaskResult{
		Category:  task.Category,
		StartedAt: time.Now().UTC(),
	}

	if err := s.processTask(ctx, task, opts, &res); err != nil {
		res.Error = err.Error()
		span.RecordError(err)
		if ctx.Err() == nil {
			s.logger.Error(err)
		}
	}
	res.FinishedAt = time.Now().UTC()

	span.SetAttribute("listed", res.Listed)
	span.SetAttribute("matched", res.Matched)
	span.SetAttribute("downloaded", res.Downloaded)
	span.SetAttribute("skipped", res.Skipped)
	span.SetAttribute("failed", res.Failed)
	span.SetAttribute("bytes", res.Bytes)

	if opts.Journal != nil {
		if err := opts.Journal.Put(res); err != nil {
			s.logger.Warn("journal unavailable", "category", task.Category, "error", err.Error())
		}
	}

	return res
}

// processTask fills res and returns the task-level error, if any.
func (s *Scheduler) processTask(ctx context.Context, task domain.Task, opts Options, res *domain.TaskResult) error {
	dir := domain.TaskDir(opts.Root, task.Category)

	if err := s.storage.EnsureDir(dir); err != nil {
		return zerr.With(err, "category", task.Category)
	}

	existing, err := s.storage.ListFiles(dir)
	if err != nil {
		return zerr.With(err, "category", task.Category)
	}

	raw, err := s.fetchListing(ctx, task, opts)
	if err != nil {
		return err
	}

	names := s.extractor.Extract(raw)
	res.Listed = len(names)

	for _, entry := range names {
		if !task.Matches(entry) {
			continue
		}
		res.Matched++
		name := domain.LocalName(entry)

		imageURL, err := domain.ResolveURL(opts.Host, task.ImagePath(entry))
		if err != nil {
			res.Record(name, domain.OutcomeFailed, 0, err)
			s.logger.Error(err)
			continue
		}

		out := s.downloader.Download(ctx, download.Request{
			Category: task.Category,
			ImageURL: imageURL,
			Filename: name,
			LocalDir: dir,
			Existing: existing,
			Timeout:  opts.Timeout,
		})
		res.Record(name, out.Outcome, out.Bytes, out.Err)
		if out.Outcome == domain.OutcomeDownloaded {
			existing.Add(name)
		}
	}

	return nil
}

func (s *Scheduler) fetchListing(ctx context.Context, task domain.Task, opts Options) (string, error) {
	listURL, err := domain.ResolveURL(opts.Host, task.ListPath)
	if err != nil {
		return "", err
	}

	s.logger.Debug("download list", "category", task.Category, "url", listURL)

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	raw, err := s.fetcher.FetchText(ctx, listURL)
	if err != nil {
		return "", errors.Join(domain.ErrListingFetchFailed, zerr.With(err, "category", task.Category))
	}
	return raw, nil
}

func cycleError(result domain.CycleResult) error {
	if !result.Failed() {
		return nil
	}

	var failed []string
	for _, t := range result.Tasks {
		if t.HasFailure() {
			failed = append(failed, t.Category)
		}
	}
	return errors.Join(
		domain.ErrCycleFailed,
		zerr.With(zerr.New("failed tasks: "+strings.Join(failed, ", ")), "count", len(failed)),
	)
}
