// Package listing extracts image filenames from the script-like listing
// resources published by the weather service.
package listing

import (
	"path"
	"regexp"
	"strings"
)

// literal matches a double or single quoted literal whose content ends in an
// image extension. The content may not contain quotes, whitespace, query or
// fragment markers; an escaped slash is the only backslash sequence allowed.
var literal = regexp.MustCompile(
	`"((?:[^"'\\\s?#]|\\/)+\.(?i:png|jpe?g|gif|webp|bmp))"` +
		`|'((?:[^"'\\\s?#]|\\/)+\.(?i:png|jpe?g|gif|webp|bmp))'`,
)

// Extractor finds image filenames by pattern instead of parsing the listing,
// so changes to the surrounding syntax do not break it.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns all quoted image paths in raw, unescaped and cleaned, in
// source order with duplicates removed. Paths whose base name is hidden are
// dropped. It never returns nil.
func (e *Extractor) Extract(raw string) []string {
	names := make([]string, 0)
	seen := make(map[string]struct{})

	for _, m := range literal.FindAllStringSubmatch(raw, -1) {
		value := m[1]
		if value == "" {
			value = m[2]
		}

		name := path.Clean(strings.ReplaceAll(value, `\/`, "/"))
		if strings.HasPrefix(path.Base(name), ".") {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
