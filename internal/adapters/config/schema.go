package config

// SupportedVersion is the only task file version understood by the loader.
const SupportedVersion = "1"

// Taskfile is the structure of a YAML task file.
type Taskfile struct {
	Version string    `yaml:"version"`
	Tasks   []TaskDTO `yaml:"tasks"`
}

// TaskDTO is one custom task in a task file.
type TaskDTO struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	List    string `yaml:"list"`
	Dir     string `yaml:"dir"`
}
