package git

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter keeps or drops committed files by glob pattern.
type PathFilter struct {
	include []string
	exclude []string
}

// NewPathFilter validates the patterns and returns a filter.
func NewPathFilter(include, exclude []string) (PathFilter, error) {
	for _, p := range include {
		if !doublestar.ValidatePattern(p) {
			return PathFilter{}, fmt.Errorf("invalid include pattern %q", p)
		}
	}
	for _, p := range exclude {
		if !doublestar.ValidatePattern(p) {
			return PathFilter{}, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return PathFilter{include: include, exclude: exclude}, nil
}

// IsEmpty reports whether the filter accepts every path.
func (f PathFilter) IsEmpty() bool {
	return len(f.include) == 0 && len(f.exclude) == 0
}

// Match checks a path against the exclude patterns first, then the include
// patterns. No include patterns means everything not excluded matches.
func (f PathFilter) Match(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range f.exclude {
		if doublestar.MatchUnvalidated(pattern, path) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}

	for _, pattern := range f.include {
		if doublestar.MatchUnvalidated(pattern, path) {
			return true
		}
	}
	return false
}

// Signature identifies the filter's pattern set. It is empty for a filter
// that accepts every path and ignores pattern order.
func (f PathFilter) Signature() string {
	if f.IsEmpty() {
		return ""
	}
	return "include=" + sortedJoin(f.include) + "\x00exclude=" + sortedJoin(f.exclude)
}

func sortedJoin(patterns []string) string {
	sorted := append([]string(nil), patterns...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}
