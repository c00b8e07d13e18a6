package domain

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultRootDir is the local root directory used when none is given.
	DefaultRootDir = "images"

	// DefaultHost is the upstream base URL used when neither --host nor CWA_HOST is set.
	DefaultHost = "https://www.cwa.gov.tw"

	// HostEnvVar names the environment variable overriding the default host.
	HostEnvVar = "CWA_HOST"

	// StateDirName is the name of the internal directory under the root.
	StateDirName = ".cwaimg"

	// TempFileSuffix marks an in-progress download.
	TempFileSuffix = ".part"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// DefaultTimeout bounds each upstream request when no timeout is given.
	DefaultTimeout = 30 * time.Second
)

// TaskDir returns the local directory of a category under root.
func TaskDir(root, category string) string {
	return filepath.Join(root, category)
}

// StatePath returns the internal state directory under root.
func StatePath(root string) string {
	return filepath.Join(root, StateDirName)
}

// TempFilePattern returns the os.CreateTemp pattern for an in-progress download of name.
func TempFilePattern(name string) string {
	return "." + name + ".*" + TempFileSuffix
}

// IsTempFile reports whether name is an in-progress download.
func IsTempFile(name string) bool {
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, TempFileSuffix)
}

// LocalFileSet is the set of completed files present in a task directory.
type LocalFileSet map[string]struct{}

// NewLocalFileSet builds a set from names, dropping dotfiles.
func NewLocalFileSet(names ...string) LocalFileSet {
	s := make(LocalFileSet, len(names))
	for _, n := range names {
		if strings.HasPrefix(n, ".") {
			continue
		}
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is present.
func (s LocalFileSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Add marks name as present.
func (s LocalFileSet) Add(name string) {
	s[name] = struct{}{}
}
