// Package graph builds the file-level import dependency graph.
//
// Only relative import specifiers ("./x", "../y") become edges. Bare package
// specifiers are recorded on the importing node for diagnostics but never
// resolved; package-resolution crawling is a deliberate scope limit. A file
// that failed to parse contributes no outgoing edges but remains a valid
// edge target.
package graph

import (
	"sort"

	"repoatlas/internal/analysis"
	"repoatlas/internal/paths"
)

// Node is one file in the dependency graph.
type Node struct {
	Path string `json:"path"`

	// ImportedBy lists files with a resolved import of this file,
	// in discovery order of the importers
	ImportedBy []string `json:"importedBy,omitempty"`

	// Unresolved holds import specifiers that did not resolve to a
	// discovered file: bare packages plus dangling relative imports.
	// Diagnostics only; they never become edges.
	Unresolved []string `json:"unresolved,omitempty"`
}

// Edge is one resolved import, deduplicated per (source,target) pair.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the per-run dependency graph. It is rebuilt from immutable input
// on every run and never mutated after Build returns.
type Graph struct {
	Nodes map[string]*Node `json:"nodes"`
	Edges []Edge           `json:"edges"`

	order []string
}

// Options controls import resolution.
type Options struct {
	// Extensions tried after an exact match fails, in order
	Extensions []string

	// IndexNames tried as directory index files, in order
	IndexNames []string

	// HubThreshold is the minimum in-degree for hub status
	HubThreshold int
}

// DefaultOptions returns the fixed resolution lists the engine ships with.
func DefaultOptions() Options {
	return Options{
		Extensions: []string{
			".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs",
			".py", ".go", ".rs", ".java", ".rb", ".php", ".cs", ".swift", ".kt",
		},
		IndexNames: []string{
			"index.ts", "index.tsx", "index.js", "index.jsx",
			"__init__.py", "mod.rs",
		},
		HubThreshold: 3,
	}
}

// Build constructs the dependency graph for the discovered file set.
// order is the discovery-ordered path list; files may hold nil entries for
// unparseable files.
func Build(files map[string]*analysis.ParsedFile, order []string, opts Options) *Graph {
	if opts.HubThreshold <= 0 {
		opts.HubThreshold = DefaultOptions().HubThreshold
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultOptions().Extensions
	}
	if len(opts.IndexNames) == 0 {
		opts.IndexNames = DefaultOptions().IndexNames
	}

	g := &Graph{
		Nodes: make(map[string]*Node, len(order)),
		order: append([]string(nil), order...),
	}

	known := make(map[string]bool, len(order))
	for _, p := range order {
		p = paths.Normalize(p)
		known[p] = true
		g.Nodes[p] = &Node{Path: p}
	}

	seen := make(map[Edge]bool)
	resolver := resolver{known: known, opts: opts}

	for _, source := range g.order {
		source = paths.Normalize(source)
		f := files[source]
		if f == nil {
			// Parse failure: no outgoing edges, still a valid target.
			continue
		}

		node := g.Nodes[source]
		for _, spec := range f.Imports {
			target, ok := resolver.resolve(source, spec)
			if !ok {
				node.Unresolved = append(node.Unresolved, spec)
				continue
			}
			if target == source {
				continue
			}

			edge := Edge{Source: source, Target: target}
			if seen[edge] {
				continue
			}
			seen[edge] = true
			g.Edges = append(g.Edges, edge)
			g.Nodes[target].ImportedBy = append(g.Nodes[target].ImportedBy, source)
		}
	}

	return g
}

// resolver tries a relative specifier against the discovered path set:
// exact match, then each extension, then each index filename.
type resolver struct {
	known map[string]bool
	opts  Options
}

func (r resolver) resolve(source, spec string) (string, bool) {
	if !paths.IsRelativeImport(spec) {
		return "", false
	}

	base := paths.Join(paths.Dir(source), spec)

	if r.known[base] {
		return base, true
	}
	for _, ext := range r.opts.Extensions {
		if candidate := base + ext; r.known[candidate] {
			return candidate, true
		}
	}
	for _, index := range r.opts.IndexNames {
		if candidate := paths.Join(base, index); r.known[candidate] {
			return candidate, true
		}
	}

	return "", false
}

// InDegrees returns the importedBy count per path.
func (g *Graph) InDegrees() map[string]int {
	in := make(map[string]int, len(g.Nodes))
	for p, n := range g.Nodes {
		in[p] = len(n.ImportedBy)
	}
	return in
}

// MaxInDegree returns the largest importedBy count in the graph.
func (g *Graph) MaxInDegree() int {
	max := 0
	for _, n := range g.Nodes {
		if len(n.ImportedBy) > max {
			max = len(n.ImportedBy)
		}
	}
	return max
}

// Hubs returns nodes with in-degree at or above the hub threshold, sorted
// by descending in-degree. A hub is structurally significant regardless of
// its role.
func (g *Graph) Hubs(opts Options) []*Node {
	threshold := opts.HubThreshold
	if threshold <= 0 {
		threshold = DefaultOptions().HubThreshold
	}

	var hubs []*Node
	for _, p := range g.order {
		n := g.Nodes[paths.Normalize(p)]
		if n != nil && len(n.ImportedBy) >= threshold {
			hubs = append(hubs, n)
		}
	}

	sort.SliceStable(hubs, func(i, j int) bool {
		return len(hubs[i].ImportedBy) > len(hubs[j].ImportedBy)
	})

	return hubs
}

// Order returns the discovery-ordered path list the graph was built from.
func (g *Graph) Order() []string {
	return g.order
}
