package logger

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ErrorEntry is one level of an error chain: its own message and metadata.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries flattens err into entries, outermost first. A zerr error
// contributes its own message and metadata. A joined error contributes each
// member in order. Any other error ends its branch with its full text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var walk func(error)
	walk = func(e error) {
		// zerr.With on a foreign error adds a layer without a message; its
		// metadata goes to the next entry of the same chain.
		var pending map[string]any
		add := func(entry ErrorEntry) {
			if len(pending) > 0 {
				if entry.Metadata == nil {
					entry.Metadata = make(map[string]any, len(pending))
				}
				for k, v := range pending {
					entry.Metadata[k] = v
				}
				pending = nil
			}
			entries = append(entries, entry)
		}

		for e != nil {
			switch v := e.(type) {
			case *zerr.Error:
				if v.Message() == "" {
					if pending == nil {
						pending = make(map[string]any)
					}
					for k, val := range v.Metadata() {
						pending[k] = val
					}
				} else {
					add(ErrorEntry{Message: v.Message(), Metadata: v.Metadata()})
				}
				e = v.Unwrap()
			case interface{ Unwrap() []error }:
				first := len(entries)
				for _, inner := range v.Unwrap() {
					walk(inner)
				}
				if len(pending) > 0 && len(entries) > first {
					entry := &entries[first]
					if entry.Metadata == nil {
						entry.Metadata = make(map[string]any, len(pending))
					}
					for k, val := range pending {
						entry.Metadata[k] = val
					}
				}
				return
			default:
				add(ErrorEntry{Message: e.Error()})
				return
			}
		}
	}
	walk(err)
	return entries
}

// formatErrorEntries renders entries as an "Error:" headline followed by a
// "Caused by:" list. Metadata keys are sorted.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, indent string
		if i == 0 {
			head = "Error: "
			indent = "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head = "    → "
			indent = "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, l := range msgLines[1:] {
			lines = append(lines, indent+l)
		}

		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
