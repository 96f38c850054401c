// Package skeleton derives the deterministic, AI-free scaffold of a
// repository: quick-access paths, high-signal search patterns, directory
// entities, and coarse detected patterns. The scaffold is later enriched
// with externally generated prose; nothing in this package depends on that
// step.
package skeleton

import (
	"fmt"
	"sort"
	"strings"

	"repoatlas/internal/analysis"
	"repoatlas/internal/paths"
)

// QuickPath is a file worth reading first, with a human-readable reason.
type QuickPath struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// SearchPattern is a high-signal symbol name, optionally scoped to the one
// directory that defines it.
type SearchPattern struct {
	Pattern string `json:"pattern"`

	// Directory scopes the pattern when the name occurs in exactly one
	// file; empty means repo-wide.
	Directory string `json:"directory,omitempty"`
}

// Entity is a directory-grouped cluster of files.
type Entity struct {
	// Name is the top-level directory, or "root" for top-level files
	Name string `json:"name"`

	// Path is the directory path, "." for root
	Path string `json:"path"`

	Files []string `json:"files"`
}

// DetectedPatterns summarizes coarse repository traits.
type DetectedPatterns struct {
	DominantLanguage string `json:"dominantLanguage"`
	HasTests         bool   `json:"hasTests"`
	HasDocs          bool   `json:"hasDocs"`
}

// Skeleton is the full deterministic scaffold.
type Skeleton struct {
	QuickPaths       []QuickPath      `json:"quickPaths"`
	SearchPatterns   []SearchPattern  `json:"searchPatterns"`
	Entities         []Entity         `json:"entities"`
	DetectedPatterns DetectedPatterns `json:"detectedPatterns"`
}

// Limits controls output sizes. Zero values fall back to defaults.
type Limits struct {
	QuickPaths     int
	SearchPatterns int
}

// DefaultLimits returns the fixed limits the engine ships with.
func DefaultLimits() Limits {
	return Limits{QuickPaths: 20, SearchPatterns: 10}
}

// entityDenylist holds build/vendor-style directories whose files never
// form entities.
var entityDenylist = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"target":       true,
	".git":         true,
	"__pycache__":  true,
	".next":        true,
	"coverage":     true,
}

// genericNames are symbol names too common to be useful search patterns.
var genericNames = map[string]bool{
	"get": true, "set": true, "main": true, "init": true, "index": true,
	"app": true, "data": true, "test": true, "run": true, "util": true,
	"utils": true, "config": true, "setup": true, "handler": true,
	"helper": true, "default": true, "create": true, "update": true,
	"delete": true, "value": true, "object": true, "item": true,
	"list": true, "new": true,
}

// languageNames maps parser language tags to display names.
var languageNames = map[string]string{
	"typescript": "TypeScript",
	"javascript": "JavaScript",
	"python":     "Python",
	"go":         "Go",
	"rust":       "Rust",
	"java":       "Java",
	"ruby":       "Ruby",
	"csharp":     "C#",
	"cpp":        "C++",
	"c":          "C",
	"php":        "PHP",
	"swift":      "Swift",
	"kotlin":     "Kotlin",
	"dart":       "Dart",
}

// Build derives the skeleton from the ranked file index and the parsed file
// set. Fully deterministic: same input, same skeleton.
func Build(index []analysis.FileIndexEntry, files map[string]*analysis.ParsedFile, limits Limits) *Skeleton {
	if limits.QuickPaths <= 0 {
		limits.QuickPaths = DefaultLimits().QuickPaths
	}
	if limits.SearchPatterns <= 0 {
		limits.SearchPatterns = DefaultLimits().SearchPatterns
	}

	return &Skeleton{
		QuickPaths:       buildQuickPaths(index, files, limits.QuickPaths),
		SearchPatterns:   buildSearchPatterns(index, files, limits.SearchPatterns),
		Entities:         buildEntities(index),
		DetectedPatterns: detectPatterns(index, files),
	}
}

var roleLabels = map[analysis.Role]string{
	analysis.RoleEntry:  "entry point",
	analysis.RoleConfig: "configuration",
	analysis.RoleTypes:  "type definitions",
	analysis.RoleTest:   "tests",
	analysis.RoleUtil:   "utilities",
	analysis.RoleDoc:    "documentation",
	analysis.RoleCore:   "core logic",
}

// buildQuickPaths takes the top files by importance and derives a reason
// string from the role label plus export and function counts.
func buildQuickPaths(index []analysis.FileIndexEntry, files map[string]*analysis.ParsedFile, limit int) []QuickPath {
	var qps []QuickPath
	for _, entry := range index {
		if len(qps) >= limit {
			break
		}
		qps = append(qps, QuickPath{
			Path:   entry.Path,
			Reason: quickPathReason(entry, files[entry.Path]),
		})
	}
	return qps
}

func quickPathReason(entry analysis.FileIndexEntry, f *analysis.ParsedFile) string {
	var parts []string
	if label, ok := roleLabels[entry.Role]; ok && entry.Role != analysis.RoleCore {
		parts = append(parts, label)
	}
	if f != nil {
		if n := f.ExportCount(); n > 0 {
			parts = append(parts, fmt.Sprintf("%d exports", n))
		}
		if n := len(f.Functions); n > 0 {
			parts = append(parts, fmt.Sprintf("%d functions", n))
		}
	}
	if len(parts) == 0 {
		return "source file"
	}
	return strings.Join(parts, ", ")
}

// buildSearchPatterns counts exported function and class names across all
// files, filters noise, and keeps the top names by occurrence. A name
// defined in exactly one file is scoped to that file's directory.
func buildSearchPatterns(index []analysis.FileIndexEntry, files map[string]*analysis.ParsedFile, limit int) []SearchPattern {
	type nameStat struct {
		name  string
		count int
		files map[string]bool
		first int // first-seen index, for deterministic ties
	}

	stats := make(map[string]*nameStat)
	seen := 0

	record := func(name, path string) {
		if !usefulPattern(name) {
			return
		}
		s, ok := stats[name]
		if !ok {
			s = &nameStat{name: name, files: make(map[string]bool), first: seen}
			stats[name] = s
			seen++
		}
		s.count++
		s.files[path] = true
	}

	for _, entry := range index {
		f := files[entry.Path]
		if f == nil {
			continue
		}
		for _, fn := range f.Functions {
			record(fn.Name, entry.Path)
		}
		for _, c := range f.Classes {
			record(c.Name, entry.Path)
		}
	}

	ordered := make([]*nameStat, 0, len(stats))
	for _, s := range stats {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].first < ordered[j].first
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	patterns := make([]SearchPattern, 0, len(ordered))
	for _, s := range ordered {
		p := SearchPattern{Pattern: s.name}
		if len(s.files) == 1 {
			for f := range s.files {
				p.Directory = paths.Dir(f)
			}
		}
		patterns = append(patterns, p)
	}
	return patterns
}

var lowercaseWord = func(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// usefulPattern filters out short, generic, or low-signal names.
func usefulPattern(name string) bool {
	if len(name) < 4 {
		return false
	}
	if genericNames[strings.ToLower(name)] {
		return false
	}
	// Short all-lowercase single words are usually too generic to search.
	if len(name) < 6 && lowercaseWord(name) {
		return false
	}
	return true
}

// buildEntities groups files by first path segment, skipping denylisted
// build/vendor directories, sorted descending by member count.
func buildEntities(index []analysis.FileIndexEntry) []Entity {
	groups := make(map[string]*Entity)
	var order []string

	for _, entry := range index {
		seg := paths.TopSegment(entry.Path)
		name := seg
		dir := seg
		if seg == "" {
			name = "root"
			dir = "."
		} else if entityDenylist[seg] {
			continue
		}

		e, ok := groups[name]
		if !ok {
			e = &Entity{Name: name, Path: dir}
			groups[name] = e
			order = append(order, name)
		}
		e.Files = append(e.Files, entry.Path)
	}

	entities := make([]Entity, 0, len(order))
	for _, name := range order {
		entities = append(entities, *groups[name])
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return len(entities[i].Files) > len(entities[j].Files)
	})
	return entities
}

func detectPatterns(index []analysis.FileIndexEntry, files map[string]*analysis.ParsedFile) DetectedPatterns {
	counts := make(map[string]int)
	var langs []string
	hasTests := false
	hasDocs := false

	for _, entry := range index {
		if entry.Role == analysis.RoleTest {
			hasTests = true
		}
		if entry.Role == analysis.RoleDoc ||
			strings.Contains(strings.ToLower(paths.Base(entry.Path)), "readme") {
			hasDocs = true
		}
		if f := files[entry.Path]; f != nil && f.Language != "" {
			if counts[f.Language] == 0 {
				langs = append(langs, f.Language)
			}
			counts[f.Language]++
		}
	}

	dominant := "unknown"
	best := 0
	for _, lang := range langs {
		if counts[lang] > best {
			best = counts[lang]
			dominant = displayLanguage(lang)
		}
	}

	return DetectedPatterns{
		DominantLanguage: dominant,
		HasTests:         hasTests,
		HasDocs:          hasDocs,
	}
}

func displayLanguage(tag string) string {
	if name, ok := languageNames[strings.ToLower(tag)]; ok {
		return name
	}
	return tag
}
