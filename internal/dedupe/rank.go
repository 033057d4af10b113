package dedupe

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var numberedCopyPattern = regexp.MustCompile(`^(.+) \((\d+)\)\.(jpe?g)$`)

// preferKeep implements survivor-selection ranking: returns true if a
// should be kept over b (a ranks higher). preferKeep defines a strict
// total order over a bucket's members, so the survivor of any group is
// always unique.
func preferKeep(a, b string, opts Options) bool {
	if opts.PreferRemovalSubstr != "" {
		aMatch := strings.Contains(a, opts.PreferRemovalSubstr)
		bMatch := strings.Contains(b, opts.PreferRemovalSubstr)
		if aMatch != bMatch {
			return !aMatch // the matching one ranks lower
		}
	}

	aNumbered := numberedCopyPattern.MatchString(filepath.Base(a))
	bNumbered := numberedCopyPattern.MatchString(filepath.Base(b))
	if aNumbered != bNumbered {
		return !aNumbered
	}

	aHeic := strings.EqualFold(filepath.Ext(a), ".heic")
	bHeic := strings.EqualFold(filepath.Ext(b), ".heic")
	if aHeic != bHeic {
		return aHeic
	}

	aSpaces := strings.Count(filepath.Base(a), " ")
	bSpaces := strings.Count(filepath.Base(b), " ")
	if aSpaces != bSpaces {
		return aSpaces < bSpaces
	}

	aDepth := strings.Count(filepath.ToSlash(a), "/")
	bDepth := strings.Count(filepath.ToSlash(b), "/")
	if aDepth != bDepth {
		return aDepth < bDepth
	}

	// Final, deterministic tiebreaker so the total order (and the
	// unique-survivor property) holds even when every ranking rule
	// above is tied.
	return a < b
}

// rankGroup sorts paths by preferKeep (highest-ranked first) and splits
// off the survivor.
func rankGroup(paths []string, opts Options) Group {
	sorted := append([]string(nil), paths...)
	sortByPreference(sorted, opts)

	g := Group{Survivor: sorted[0]}
	for _, p := range sorted[1:] {
		if opts.RemovalFilter == "" || strings.HasPrefix(p, opts.RemovalFilter) {
			g.Removed = append(g.Removed, p)
		}
	}
	return g
}

func sortByPreference(paths []string, opts Options) {
	// Simple insertion sort: buckets are small (duplicate groups, not
	// whole libraries), so O(n^2) here is not a concern, and it keeps
	// preferKeep's strict-weak-order usage obviously correct.
	for i := 1; i < len(paths); i++ {
		for j := i; j > 0 && preferKeep(paths[j], paths[j-1], opts); j-- {
			paths[j], paths[j-1] = paths[j-1], paths[j]
		}
	}
}

// numberedCopySuffix extracts the "(n)" integer of a "<name> (n).ext"
// basename, used only for diagnostics/tests — ranking itself only needs
// to know whether the pattern matches.
func numberedCopySuffix(path string) (int, bool) {
	m := numberedCopyPattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return n, true
}
