// Package domain contains the core types of the image poller: tasks, the task
// registry, cycle results and the on-disk layout.
package domain

import (
	"path"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

var categoryPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Task binds a category to its listing resource, its image directory and the
// substring a filename must contain to belong to it.
type Task struct {
	Category string
	ListPath string
	ImageDir string
	Pattern  string
}

// Matches reports whether a listing entry belongs to the task's category.
func (t Task) Matches(entry string) bool {
	return Matches(entry, t.Pattern)
}

// ImagePath returns the upstream path of a listing entry. Absolute entries are
// used as they are; relative ones live below the task's image directory.
func (t Task) ImagePath(entry string) string {
	if path.IsAbs(entry) {
		return entry
	}
	return path.Join(t.ImageDir, entry)
}

// LocalName returns the file name a listing entry is stored under.
func LocalName(entry string) string {
	return path.Base(entry)
}

// Validate checks that the task can be registered.
func (t Task) Validate() error {
	if !categoryPattern.MatchString(t.Category) {
		return zerr.With(zerr.Wrap(ErrInvalidCategory, "invalid task"), "category", t.Category)
	}
	if t.Pattern == "" || t.ListPath == "" || t.ImageDir == "" {
		return zerr.With(zerr.Wrap(ErrCustomTaskIncomplete, "invalid task"), "category", t.Category)
	}
	return nil
}

// Matches reports whether pattern is a non-empty, case-sensitive substring of filename.
func Matches(filename, pattern string) bool {
	return pattern != "" && strings.Contains(filename, pattern)
}
