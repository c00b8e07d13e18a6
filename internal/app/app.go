// Package app implements the application layer for cwaimg.
package app

import (
	"context"
	"time"

	"go.trai.ch/cwaimg/internal/adapters/telemetry"
	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/cwaimg/internal/core/ports"
	"go.trai.ch/cwaimg/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scheduler    *scheduler.Scheduler
	journal      ports.ResultStoreOpener
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	journal ports.ResultStoreOpener,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		scheduler:    sched,
		journal:      journal,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Root is the local download root.
	Root string
	// Host is the upstream base URL.
	Host string

	// Satellite, RadarCloud and RadarRain are the built-in filter patterns.
	// An empty pattern disables the category.
	Satellite  string
	RadarCloud string
	RadarRain  string

	// Custom is the task given on the command line. The zero value means none.
	Custom domain.CustomTask
	// TaskFile is an optional YAML file with additional custom tasks.
	TaskFile string

	// Interval between cycles. Zero runs a single cycle.
	Interval time.Duration
	// Timeout bounds each HTTP request and must be positive.
	Timeout time.Duration
	Jobs    int
}

// Run builds the task registry and runs the scheduler until it is done.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	// 1. Load and validate the task configuration
	reg, err := a.buildRegistry(opts)
	if err != nil {
		return err
	}

	if err := validateOptions(opts); err != nil {
		return err
	}

	if opts.Host == "" {
		opts.Host = domain.DefaultHost
	}
	if _, err := domain.ParseHost(opts.Host); err != nil {
		return err
	}

	root := opts.Root
	if root == "" {
		root = domain.DefaultRootDir
	}

	// 2. Initialize Telemetry
	shutdown := telemetry.Setup(a.logger)
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	// 3. Run the scheduler
	err = a.scheduler.Run(ctx, reg, scheduler.Options{
		Root:     root,
		Host:     opts.Host,
		Interval: opts.Interval,
		Timeout:  opts.Timeout,
		Jobs:     opts.Jobs,
		Journal:  a.journal.Open(root),
	})

	a.logger.Info("program exited")
	return err
}

func (a *App) buildRegistry(opts RunOptions) (*domain.Registry, error) {
	custom := []domain.CustomTask{opts.Custom}
	if custom[0].Name == "" {
		custom[0].Name = domain.CategoryCustom
	}

	if opts.TaskFile != "" {
		tasks, err := a.configLoader.Load(opts.TaskFile)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to load configuration")
		}
		custom = append(custom, tasks...)
	}

	return domain.BuildRegistry(domain.RegistryConfig{
		Satellite:  opts.Satellite,
		RadarCloud: opts.RadarCloud,
		RadarRain:  opts.RadarRain,
		Custom:     custom,
	})
}

func validateOptions(opts RunOptions) error {
	check := func(name string, bad bool, value any) error {
		if !bad {
			return nil
		}
		return domain.Classify(domain.ErrConfigInvalid,
			zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidOption, "cannot run"), "option", name), "value", value))
	}

	if err := check("interval", opts.Interval < 0, opts.Interval); err != nil {
		return err
	}
	if err := check("timeout", opts.Timeout <= 0, opts.Timeout); err != nil {
		return err
	}
	return check("jobs", opts.Jobs < 0, opts.Jobs)
}
