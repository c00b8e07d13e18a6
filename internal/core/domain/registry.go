package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// Built-in categories.
const (
	CategorySatellite  = "satellite"
	CategoryRadarCloud = "radar-cloud"
	CategoryRadarRain  = "radar-rain"

	// CategoryCustom is the category of the custom task given on the command line.
	CategoryCustom = "custom"
)

// Upstream locations of the built-in categories.
const (
	SatelliteListPath  = "/Data/js/obs_img/Observe_sat.js"
	SatelliteImageDir  = "/Data/satellite/"
	RadarCloudListPath = "/Data/js/obs_img/Observe_radar.js"
	RadarCloudImageDir = "/Data/radar/"
	RadarRainListPath  = "/Data/js/obs_img/Observe_radar_rain.js"
	RadarRainImageDir  = "/Data/radar_rain/"
)

// CustomTask is an operator-defined task. All of Pattern, ListPath and
// ImageDir are required once any of them is set.
type CustomTask struct {
	Name     string
	Pattern  string
	ListPath string
	ImageDir string
}

// IsZero reports whether no field besides the name is set.
func (c CustomTask) IsZero() bool {
	return c.Pattern == "" && c.ListPath == "" && c.ImageDir == ""
}

func (c CustomTask) missing() []string {
	var fields []string
	if c.Pattern == "" {
		fields = append(fields, "pattern")
	}
	if c.ListPath == "" {
		fields = append(fields, "list")
	}
	if c.ImageDir == "" {
		fields = append(fields, "dir")
	}
	return fields
}

// RegistryConfig is the operator input the registry is built from.
// An empty built-in pattern disables that category.
type RegistryConfig struct {
	Satellite  string
	RadarCloud string
	RadarRain  string
	Custom     []CustomTask
}

// Registry is the ordered set of active tasks keyed by category.
// It is read-only once BuildRegistry returns.
type Registry struct {
	tasks []Task
	index map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Add registers a task. It returns an error if the task is invalid or its
// category is already taken.
func (r *Registry) Add(t Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, exists := r.index[t.Category]; exists {
		return zerr.With(zerr.Wrap(ErrDuplicateCategory, "cannot register task"), "category", t.Category)
	}
	r.index[t.Category] = len(r.tasks)
	r.tasks = append(r.tasks, t)
	return nil
}

// Get returns the task registered for category.
func (r *Registry) Get(category string) (Task, bool) {
	i, ok := r.index[category]
	if !ok {
		return Task{}, false
	}
	return r.tasks[i], true
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Tasks returns an iterator over the registered tasks in insertion order.
func (r *Registry) Tasks() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, t := range r.tasks {
			if !yield(t) {
				return
			}
		}
	}
}

// Categories returns the registered category names in insertion order.
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.tasks))
	for _, t := range r.tasks {
		names = append(names, t.Category)
	}
	return names
}

// BuildRegistry builds the registry from cfg. Every returned error carries
// ErrConfigInvalid.
func BuildRegistry(cfg RegistryConfig) (*Registry, error) {
	r := NewRegistry()

	builtins := []Task{
		{Category: CategorySatellite, ListPath: SatelliteListPath, ImageDir: SatelliteImageDir, Pattern: cfg.Satellite},
		{Category: CategoryRadarCloud, ListPath: RadarCloudListPath, ImageDir: RadarCloudImageDir, Pattern: cfg.RadarCloud},
		{Category: CategoryRadarRain, ListPath: RadarRainListPath, ImageDir: RadarRainImageDir, Pattern: cfg.RadarRain},
	}
	for _, t := range builtins {
		if t.Pattern == "" {
			continue
		}
		if err := r.Add(t); err != nil {
			return nil, Classify(ErrConfigInvalid, err)
		}
	}

	for _, c := range cfg.Custom {
		if c.IsZero() {
			continue
		}
		if missing := c.missing(); len(missing) > 0 {
			err := zerr.Wrap(ErrCustomTaskIncomplete, "invalid custom task")
			err = zerr.With(err, "task", c.Name)
			err = zerr.With(err, "missing", strings.Join(missing, ", "))
			return nil, Classify(ErrConfigInvalid, err)
		}
		t := Task{Category: c.Name, ListPath: c.ListPath, ImageDir: c.ImageDir, Pattern: c.Pattern}
		if err := r.Add(t); err != nil {
			return nil, Classify(ErrConfigInvalid, err)
		}
	}

	if r.Len() == 0 {
		return nil, Classify(ErrConfigInvalid, ErrNoTasksConfigured)
	}
	return r, nil
}
