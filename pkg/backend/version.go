package backend

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// versionRe matches the release version in "dot -V" output. Development
// builds carry a "~dev.YYYYmmdd.HHMM" suffix in place of the last component.
var versionRe = regexp.MustCompile(`graphviz version` +
	` ` +
	`(\d+)\.(\d+)` +
	`(?:\.(\d+)` +
	`(?:` +
	`~dev\.\d{8}\.\d{4}` +
	`|` +
	`\.(\d+)` +
	`)?` +
	`)?` +
	` `)

// Version runs "dot -V" and returns the Graphviz version as a slice of two,
// three, or four components. The ~dev suffix of development builds is
// ignored.
func Version(ctx context.Context, opts ...Option) ([]int, error) {
	o := buildOptions(opts)
	bin := o.binary
	if bin == "" {
		bin = DefaultDotBinary
	}

	// dot -V prints to stderr.
	out, err := runner{argv: []string{bin, "-V"}, quiet: true, combine: true}.run(ctx)
	if err != nil {
		return nil, err
	}

	version, err := parseVersion(string(out))
	if err != nil {
		return nil, err
	}
	return version, nil
}

// parseVersion extracts the numeric version components from "dot -V" output.
func parseVersion(out string) ([]int, error) {
	m := versionRe.FindStringSubmatch(out)
	if m == nil {
		return nil, fmt.Errorf("cannot parse version from %q", strings.TrimSpace(out))
	}

	var version []int
	for _, part := range m[1:] {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("cannot parse version component %q: %w", part, err)
		}
		version = append(version, n)
	}
	return version, nil
}

// FormatVersion joins version components with dots ("2.50.0").
func FormatVersion(version []int) string {
	parts := make([]string, len(version))
	for i, n := range version {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}
