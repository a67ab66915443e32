package domain

import (
	"bufio"
	"bytes"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

var (
	namePattern   = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)
	separatorRun  = regexp.MustCompile(`[-_.]+`)
	urlPattern    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
	clauseOps     = []string{"===", "==", "!=", "<=", ">=", "~=", "<", ">"}
	nameStopChars = "[@;(<>=!~ \t"
)

// DependencySpec is a single named package constraint as found in a
// requirements file or a lock document.
type DependencySpec struct {
	// Name is the project name as written by the author.
	Name string
	// Extras are the optional feature sets requested with the project.
	Extras []string
	// Constraint is the normalized version specifier, e.g. "==1.2.3" or "<2,>=1".
	Constraint string
	// URL is the direct source reference, if any.
	URL string
	// Marker is the environment marker following the ';' separator.
	Marker string
	// Editable reports whether the spec was given with -e/--editable.
	Editable bool
}

// NormalizeName returns the canonical identity key of a project name.
func NormalizeName(name string) string {
	return strings.ToLower(separatorRun.ReplaceAllString(name, "-"))
}

// Key returns the normalized identity key of the dependency.
// Two specs with the same key describe the same logical dependency.
func (d DependencySpec) Key() string {
	return NormalizeName(d.Name)
}

// HasURL reports whether the spec is pinned to a direct source.
func (d DependencySpec) HasURL() bool {
	return d.URL != ""
}

// String returns the canonical single-line form of the spec.
func (d DependencySpec) String() string {
	if d.Editable {
		if d.Marker != "" {
			return "-e " + d.URL + " ; " + d.Marker
		}
		return "-e " + d.URL
	}

	var b strings.Builder
	b.WriteString(d.Name)
	if len(d.Extras) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(d.Extras, ","))
		b.WriteString("]")
	}

	if d.URL != "" {
		b.WriteString(" @ ")
		b.WriteString(d.URL)
		if d.Marker != "" {
			b.WriteString(" ; ")
			b.WriteString(d.Marker)
		}
		return b.String()
	}

	b.WriteString(d.Constraint)
	if d.Marker != "" {
		b.WriteString("; ")
		b.WriteString(d.Marker)
	}
	return b.String()
}

// ParseDependencySpec parses a single requirement line.
func ParseDependencySpec(line string) (DependencySpec, error) {
	raw := line
	line = strings.TrimSpace(stripComment(line))
	if line == "" {
		return DependencySpec{}, invalidRequirement(raw, "empty requirement")
	}

	for _, opt := range []string{"-e", "--editable"} {
		if rest, ok := strings.CutPrefix(line, opt); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '=') {
			rest = strings.TrimSpace(strings.TrimPrefix(rest, "="))
			spec, err := parseDirectReference(rest, raw)
			if err != nil {
				return DependencySpec{}, err
			}
			spec.Editable = true
			return spec, nil
		}
	}

	if strings.HasPrefix(line, "-") {
		return DependencySpec{}, invalidRequirement(raw, "unsupported option")
	}

	if urlPattern.MatchString(line) {
		return parseDirectReference(line, raw)
	}

	return parseNamedSpec(line, raw)
}

// ParseRequirements parses a requirements document, one spec per line.
// Blank lines and comment lines are skipped. Duplicate names are allowed.
func ParseRequirements(data []byte) ([]DependencySpec, error) {
	var specs []DependencySpec

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		spec, err := ParseDependencySpec(line)
		if err != nil {
			return nil, zerr.With(err, "line_number", lineNumber)
		}
		specs = append(specs, spec)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read requirements")
	}

	return specs, nil
}

func parseNamedSpec(line, raw string) (DependencySpec, error) {
	end := strings.IndexAny(line, nameStopChars)
	if end < 0 {
		end = len(line)
	}

	spec := DependencySpec{Name: line[:end]}
	if !namePattern.MatchString(spec.Name) {
		return DependencySpec{}, invalidRequirement(raw, "invalid project name")
	}

	rest := strings.TrimSpace(line[end:])
	if strings.HasPrefix(rest, "[") {
		closing := strings.Index(rest, "]")
		if closing < 0 {
			return DependencySpec{}, invalidRequirement(raw, "unterminated extras")
		}
		extras, err := parseExtras(rest[1:closing], raw)
		if err != nil {
			return DependencySpec{}, err
		}
		spec.Extras = extras
		rest = strings.TrimSpace(rest[closing+1:])
	}

	if after, ok := strings.CutPrefix(rest, "@"); ok {
		url, marker := splitURLMarker(strings.TrimSpace(after))
		if url == "" {
			return DependencySpec{}, invalidRequirement(raw, "missing url")
		}
		spec.URL = url
		spec.Marker = marker
		return spec, nil
	}

	constraint, marker, hasMarker := strings.Cut(rest, ";")
	if hasMarker {
		spec.Marker = strings.TrimSpace(marker)
		if spec.Marker == "" {
			return DependencySpec{}, invalidRequirement(raw, "empty marker")
		}
	}

	normalized, err := normalizeConstraint(constraint, raw)
	if err != nil {
		return DependencySpec{}, err
	}
	spec.Constraint = normalized

	return spec, nil
}

// parseDirectReference handles bare URLs, which carry their name in an
// "#egg=" fragment.
func parseDirectReference(ref, raw string) (DependencySpec, error) {
	url, marker := splitURLMarker(ref)
	if url == "" {
		return DependencySpec{}, invalidRequirement(raw, "missing url")
	}

	_, fragment, ok := strings.Cut(url, "#")
	if !ok {
		return DependencySpec{}, invalidRequirement(raw, "cannot determine project name from url")
	}

	var name string
	for part := range strings.SplitSeq(fragment, "&") {
		if egg, found := strings.CutPrefix(part, "egg="); found {
			name = egg
		}
	}
	extras := []string(nil)
	if open := strings.Index(name, "["); open >= 0 && strings.HasSuffix(name, "]") {
		parsed, err := parseExtras(name[open+1:len(name)-1], raw)
		if err != nil {
			return DependencySpec{}, err
		}
		extras = parsed
		name = name[:open]
	}
	if !namePattern.MatchString(name) {
		return DependencySpec{}, invalidRequirement(raw, "cannot determine project name from url")
	}

	return DependencySpec{Name: name, Extras: extras, URL: url, Marker: marker}, nil
}

func parseExtras(list, raw string) ([]string, error) {
	var extras []string
	for extra := range strings.SplitSeq(list, ",") {
		extra = strings.TrimSpace(extra)
		if extra == "" {
			continue
		}
		if !namePattern.MatchString(extra) {
			return nil, invalidRequirement(raw, "invalid extra")
		}
		extras = append(extras, extra)
	}
	return extras, nil
}

// splitURLMarker separates a URL from its marker. A marker after a URL must be
// preceded by whitespace, since ';' is legal inside URLs.
func splitURLMarker(s string) (string, string) {
	for _, sep := range []string{" ;", "\t;"} {
		if url, marker, ok := strings.Cut(s, sep); ok {
			return strings.TrimSpace(url), strings.TrimSpace(marker)
		}
	}
	return strings.TrimSpace(s), ""
}

func normalizeConstraint(constraint, raw string) (string, error) {
	constraint = strings.Join(strings.Fields(constraint), "")
	if strings.HasPrefix(constraint, "(") {
		if !strings.HasSuffix(constraint, ")") {
			return "", invalidRequirement(raw, "unbalanced parenthesis")
		}
		constraint = constraint[1 : len(constraint)-1]
	}
	if constraint == "" {
		return "", nil
	}

	clauses := strings.Split(constraint, ",")
	for _, clause := range clauses {
		if !validClause(clause) {
			return "", invalidRequirement(raw, "invalid version specifier "+strconv.Quote(clause))
		}
	}
	slices.Sort(clauses)

	return strings.Join(clauses, ","), nil
}

func validClause(clause string) bool {
	for _, op := range clauseOps {
		if version, ok := strings.CutPrefix(clause, op); ok {
			return version != "" && !strings.ContainsAny(version, "<>=!~")
		}
	}
	return false
}

func stripComment(line string) string {
	for i, r := range line {
		if r == '#' && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t') {
			return line[:i]
		}
	}
	return line
}

func invalidRequirement(line, reason string) error {
	err := zerr.With(ErrInvalidRequirement, "line", strings.TrimSpace(line))
	return zerr.With(err, "reason", reason)
}
