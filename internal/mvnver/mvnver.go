// Package mvnver orders Maven version strings. Versions that parse as
// semantic versions compare semantically; everything else falls back to a
// lexical comparison, which keeps the ordering total.
package mvnver

import (
	"sort"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Compare returns -1, 0 or 1 ordering a before, equal to or after b.
func Compare(a, b string) int {
	va, errA := mm.NewVersion(a)
	vb, errB := mm.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	return strings.Compare(a, b)
}

// SortDescending orders versions newest first, in place, and returns the slice.
func SortDescending(versions []string) []string {
	sort.SliceStable(versions, func(i, j int) bool {
		return Compare(versions[i], versions[j]) > 0
	})
	return versions
}
