// Package incremental provides hash-based change tracking between analysis
// runs. It fingerprints file contents, diffs against the previous run's
// recorded state, and decides whether the repository needs a full or partial
// re-analysis.
package incremental

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"time"
)

// StateVersion is the current persisted state format version. A loaded
// state with any other version is treated as absent, never partially
// trusted.
const StateVersion = 2

// fullReanalyzeRatio is the change density past which incremental patching
// costs more than a fresh pass.
const fullReanalyzeRatio = 0.3

// FileState is the per-file fingerprint recorded after a successful run.
type FileState struct {
	// Hash is the truncated content hash from HashContent
	Hash string `json:"hash"`

	// AnalyzedAt is when the file was last analyzed
	AnalyzedAt time.Time `json:"analyzedAt"`

	// SymbolCount is the number of symbols the parser found
	SymbolCount int `json:"symbolCount"`
}

// State is the versioned snapshot produced once per successful run. It is
// the only value that outlives a run; everything else is rebuilt from
// immutable input every time.
type State struct {
	Version int `json:"version"`

	// Commit identifies the analyzed revision when known
	Commit string `json:"commit,omitempty"`

	Files map[string]FileState `json:"files"`
}

// ChangeReport is the diff between the current file set and the previous
// state, plus the full-vs-partial decision.
type ChangeReport struct {
	Added     []string `json:"added,omitempty"`
	Modified  []string `json:"modified,omitempty"`
	Deleted   []string `json:"deleted,omitempty"`
	Unchanged []string `json:"unchanged,omitempty"`

	ShouldFullReanalyze bool `json:"shouldFullReanalyze"`
}

// ChangedCount returns added+modified+deleted.
func (r *ChangeReport) ChangedCount() int {
	return len(r.Added) + len(r.Modified) + len(r.Deleted)
}

// HashContent returns the change-identity fingerprint of raw file content:
// the first 16 hex characters of its SHA-256. This is a cache key, not a
// security hash; truncation keeps persisted state small.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:16]
}

// BuildState snapshots the current run. order is the discovery-ordered path
// list; contents holds raw bytes per path; symbolCounts may be nil.
func BuildState(commit string, order []string, contents map[string][]byte, symbolCounts map[string]int) *State {
	now := time.Now().UTC()
	s := &State{
		Version: StateVersion,
		Commit:  commit,
		Files:   make(map[string]FileState, len(order)),
	}
	for _, p := range order {
		content, ok := contents[p]
		if !ok {
			continue
		}
		s.Files[p] = FileState{
			Hash:        HashContent(content),
			AnalyzedAt:  now,
			SymbolCount: symbolCounts[p],
		}
	}
	return s
}

// Fingerprint condenses a state's path→hash map into one identifier.
// Deterministic over insertion order; timestamps and symbol counts do not
// participate, so re-hashing unchanged content yields the same fingerprint.
func Fingerprint(state *State) string {
	if state == nil || len(state.Files) == 0 {
		return "empty"
	}
	keys := make([]string, 0, len(state.Files))
	for p := range state.Files {
		keys = append(keys, p)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, p := range keys {
		h.Write([]byte(p))
		h.Write([]byte{0})
		h.Write([]byte(state.Files[p].Hash))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// manifestBasenames lists files whose edits can alter resolution or
// classification repo-wide; any change to one forces a full re-analysis.
var manifestBasenames = map[string]bool{
	"package.json":      true,
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"bun.lockb":         true,
	"go.mod":            true,
	"go.sum":            true,
	"cargo.toml":        true,
	"cargo.lock":        true,
	"requirements.txt":  true,
	"pyproject.toml":    true,
	"poetry.lock":       true,
	"pipfile":           true,
	"pipfile.lock":      true,
	"composer.json":     true,
	"composer.lock":     true,
	"gemfile":           true,
	"gemfile.lock":      true,
	"pom.xml":           true,
	"build.gradle":      true,
	"build.gradle.kts":  true,
	"tsconfig.json":     true,
	"jsconfig.json":     true,
	".eslintrc":         true,
	".eslintrc.js":      true,
	".eslintrc.json":    true,
	"babel.config.js":   true,
	"webpack.config.js": true,
	"vite.config.ts":    true,
	"vite.config.js":    true,
	"deno.json":         true,
}
