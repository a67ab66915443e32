package logger

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the error chain. zerr errors contribute their own
// message and metadata, the first foreign error ends the walk. Metadata
// attached through an anonymous zerr wrapper is folded into the next entry.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	for current := err; current != nil; {
		z, ok := current.(*zerr.Error)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		if z.Message() == "" {
			pending = mergeMetadata(pending, z.Metadata())
		} else {
			entries = append(entries, ErrorEntry{Message: z.Message(), Metadata: mergeMetadata(pending, z.Metadata())})
			pending = nil
		}
		current = z.Unwrap()
	}

	return entries
}

func mergeMetadata(pending, meta map[string]any) map[string]any {
	if len(pending) == 0 {
		return meta
	}
	merged := maps.Clone(pending)
	maps.Copy(merged, meta)
	return merged
}

// formatErrorEntries renders the chain as "Error: ..." followed by an
// indented "Caused by:" list. Metadata keys are sorted.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		prefix, indent := "    → ", "      "
		if i == 0 {
			prefix, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		msgLines := strings.Split(entry.Message, "\n")
		lines = append(lines, prefix+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			valueLines := strings.Split(strings.TrimRight(fmt.Sprint(entry.Metadata[key]), "\n"), "\n")
			lines = append(lines, indent+key+": "+valueLines[0])
			for _, line := range valueLines[1:] {
				lines = append(lines, indent+"  "+line)
			}
		}
	}

	return strings.Join(lines, "\n")
}
