package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// LockDocument is the sorted, fully pinned dependency list an environment is built from.
// No two entries share the same Key.
type LockDocument struct {
	Specs []DependencySpec
}

// NewLockDocument validates the given specs and returns them as a sorted lock document.
func NewLockDocument(specs []DependencySpec) (LockDocument, error) {
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if _, dup := seen[spec.Key()]; dup {
			return LockDocument{}, zerr.With(ErrDuplicateDependency, "dependency", spec.Key())
		}
		seen[spec.Key()] = struct{}{}
	}

	sorted := slices.Clone(specs)
	sortSpecs(sorted)
	return LockDocument{Specs: sorted}, nil
}

// ParseLockDocument parses the contents of a lock file.
func ParseLockDocument(data []byte) (LockDocument, error) {
	specs, err := ParseRequirements(data)
	if err != nil {
		return LockDocument{}, zerr.Wrap(err, "failed to parse lock document")
	}
	return NewLockDocument(specs)
}

// Bytes serializes the document, one spec per line with a trailing newline.
func (l LockDocument) Bytes() []byte {
	if len(l.Specs) == 0 {
		return nil
	}

	lines := make([]string, len(l.Specs))
	for i, spec := range l.Specs {
		lines[i] = spec.String()
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// Names returns the dependency keys in document order.
func (l LockDocument) Names() []string {
	names := make([]string, len(l.Specs))
	for i, spec := range l.Specs {
		names[i] = spec.Key()
	}
	return names
}

// Len returns the number of pinned dependencies.
func (l LockDocument) Len() int {
	return len(l.Specs)
}

// MergeLock combines the requested specs with the set resolved by the installer.
// Requested specs pinned to a URL are authoritative and always win over a
// resolved spec of the same name. Every other dependency comes from resolved.
func MergeLock(requested, resolved []DependencySpec) LockDocument {
	merged := make(map[string]DependencySpec, len(resolved))
	for _, spec := range requested {
		if spec.HasURL() {
			merged[spec.Key()] = spec
		}
	}

	pinned := make(map[string]DependencySpec, len(resolved))
	for _, spec := range resolved {
		pinned[spec.Key()] = spec
	}
	for key, spec := range pinned {
		if _, ok := merged[key]; !ok {
			merged[key] = spec
		}
	}

	specs := make([]DependencySpec, 0, len(merged))
	for _, spec := range merged {
		specs = append(specs, spec)
	}
	sortSpecs(specs)

	return LockDocument{Specs: specs}
}

func sortSpecs(specs []DependencySpec) {
	slices.SortFunc(specs, func(a, b DependencySpec) int {
		return strings.Compare(a.String(), b.String())
	})
}
