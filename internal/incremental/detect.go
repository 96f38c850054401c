package incremental

import (
	"sort"
	"strings"

	"repoatlas/internal/paths"
)

// DetectChanges diffs the current state against the previous one.
//
// With no usable previous state (nil, or a different format version) every
// current path is reported as added and a full re-analysis is forced — the
// cold-start case. Otherwise the decision is per path: absent before means
// added, differing hash means modified, same hash means unchanged, and
// previous-only paths are deleted.
//
// A full re-analysis is forced when a manifest file changed, or when the
// change density exceeds the ratio threshold.
func DetectChanges(current, previous *State) *ChangeReport {
	report := &ChangeReport{}

	if current == nil {
		return report
	}

	if previous == nil || previous.Version != StateVersion {
		for p := range current.Files {
			report.Added = append(report.Added, p)
		}
		sortPaths(report.Added)
		report.ShouldFullReanalyze = true
		return report
	}

	for p, cur := range current.Files {
		prev, ok := previous.Files[p]
		switch {
		case !ok:
			report.Added = append(report.Added, p)
		case prev.Hash != cur.Hash:
			report.Modified = append(report.Modified, p)
		default:
			report.Unchanged = append(report.Unchanged, p)
		}
	}

	for p := range previous.Files {
		if _, ok := current.Files[p]; !ok {
			report.Deleted = append(report.Deleted, p)
		}
	}

	sortPaths(report.Added)
	sortPaths(report.Modified)
	sortPaths(report.Deleted)
	sortPaths(report.Unchanged)

	report.ShouldFullReanalyze = decideFullReanalysis(report, len(current.Files))
	return report
}

func decideFullReanalysis(report *ChangeReport, totalCurrent int) bool {
	for _, group := range [][]string{report.Added, report.Modified, report.Deleted} {
		for _, p := range group {
			if isManifestFile(p) {
				return true
			}
		}
	}

	if totalCurrent == 0 {
		return report.ChangedCount() > 0
	}
	return float64(report.ChangedCount())/float64(totalCurrent) > fullReanalyzeRatio
}

// isManifestFile reports whether a path's basename is a package manifest,
// lockfile, language config, or linter config.
func isManifestFile(path string) bool {
	return manifestBasenames[strings.ToLower(paths.Base(path))]
}

func sortPaths(ps []string) {
	sort.Strings(ps)
}
