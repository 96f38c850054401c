// Package architecture layers symbol-level relations on top of the file
// dependency graph: inheritance, interface implementation, and re-exports,
// plus an architectural layer per file and a diagram renderer.
package architecture

import (
	"regexp"
	"sort"

	"repoatlas/internal/analysis"
	"repoatlas/internal/graph"
	"repoatlas/internal/paths"
	"repoatlas/internal/symbols"
)

// EdgeType classifies an architecture edge.
type EdgeType string

const (
	EdgeImports    EdgeType = "imports"
	EdgeExtends    EdgeType = "extends"
	EdgeImplements EdgeType = "implements"
	EdgeExports    EdgeType = "exports"
	EdgeReExports  EdgeType = "re-exports"
)

// Edge is one typed relation between two files. Symbol-level edges carry
// the participating symbol names.
type Edge struct {
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Type         EdgeType `json:"type"`
	SourceSymbol string   `json:"sourceSymbol,omitempty"`
	TargetSymbol string   `json:"targetSymbol,omitempty"`
}

// Node is one file in the architecture graph.
type Node struct {
	Path string `json:"path"`

	// Symbols lists the file's exported symbol names in declaration order
	Symbols []string `json:"symbols,omitempty"`

	// IsHub marks the top files by in-degree
	IsHub bool `json:"isHub"`

	Layer Layer `json:"layer"`
}

// Graph is the symbol-level architecture graph.
type Graph struct {
	Nodes map[string]*Node `json:"nodes"`
	Edges []Edge           `json:"edges"`

	order []string
}

// hubFlagLimit caps how many top in-degree files get the hub flag on their
// architecture node. Distinct from the dependency graph's hub threshold.
const hubFlagLimit = 20

// reExportPattern matches wildcard re-export statements like
// `export * from './mod'`.
var reExportPattern = regexp.MustCompile(`\*\s+from\s+['"]([^'"]+)['"]`)

// Build constructs the architecture graph from the dependency graph and the
// parsed file set. The symbol table is built once here; unresolved parent or
// interface names (external base classes) are silently dropped, not edges.
func Build(files map[string]*analysis.ParsedFile, dep *graph.Graph, opts graph.Options) *Graph {
	order := dep.Order()
	table := symbols.Build(files, order)

	g := &Graph{
		Nodes: make(map[string]*Node, len(order)),
		order: append([]string(nil), order...),
	}

	topHubs := topByInDegree(dep, hubFlagLimit)

	for _, p := range order {
		p = paths.Normalize(p)
		node := &Node{
			Path:  p,
			Layer: ClassifyLayer(p),
			IsHub: topHubs[p],
		}
		if f := files[p]; f != nil {
			for _, fn := range f.Functions {
				if fn.Exported {
					node.Symbols = append(node.Symbols, fn.Name)
				}
			}
			for _, c := range f.Classes {
				if c.Exported {
					node.Symbols = append(node.Symbols, c.Name)
				}
			}
		}
		g.Nodes[p] = node
	}

	// Import edges come straight from the dependency graph.
	for _, e := range dep.Edges {
		g.Edges = append(g.Edges, Edge{Source: e.Source, Target: e.Target, Type: EdgeImports})
	}

	known := make(map[string]bool, len(order))
	for _, p := range order {
		known[paths.Normalize(p)] = true
	}

	for _, source := range order {
		source = paths.Normalize(source)
		f := files[source]
		if f == nil {
			continue
		}

		for _, c := range f.Classes {
			if c.Extends != "" {
				if entry, ok := table.Resolve(c.Extends); ok && entry.Path != source {
					g.Edges = append(g.Edges, Edge{
						Source:       source,
						Target:       entry.Path,
						Type:         EdgeExtends,
						SourceSymbol: c.Name,
						TargetSymbol: c.Extends,
					})
				}
			}
			for _, iface := range c.Implements {
				if entry, ok := table.Resolve(iface); ok && entry.Path != source {
					g.Edges = append(g.Edges, Edge{
						Source:       source,
						Target:       entry.Path,
						Type:         EdgeImplements,
						SourceSymbol: c.Name,
						TargetSymbol: iface,
					})
				}
			}
		}

		g.Edges = append(g.Edges, reExportEdges(source, f, known, opts)...)
	}

	return g
}

// reExportEdges resolves `* from <path>` export statements with the same
// path resolution rules as imports.
func reExportEdges(source string, f *analysis.ParsedFile, known map[string]bool, opts graph.Options) []Edge {
	var edges []Edge
	for _, stmt := range f.Exports {
		m := reExportPattern.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		target, ok := resolveRelative(source, m[1], known, opts)
		if !ok || target == source {
			continue
		}
		edges = append(edges, Edge{Source: source, Target: target, Type: EdgeReExports})
	}
	return edges
}

func resolveRelative(source, spec string, known map[string]bool, opts graph.Options) (string, bool) {
	if !paths.IsRelativeImport(spec) {
		return "", false
	}
	if len(opts.Extensions) == 0 {
		opts = graph.DefaultOptions()
	}

	base := paths.Join(paths.Dir(source), spec)
	if known[base] {
		return base, true
	}
	for _, ext := range opts.Extensions {
		if candidate := base + ext; known[candidate] {
			return candidate, true
		}
	}
	for _, index := range opts.IndexNames {
		if candidate := paths.Join(base, index); known[candidate] {
			return candidate, true
		}
	}
	return "", false
}

func topByInDegree(dep *graph.Graph, limit int) map[string]bool {
	type ranked struct {
		path string
		in   int
	}

	nodes := make([]ranked, 0, len(dep.Nodes))
	for _, p := range dep.Order() {
		p = paths.Normalize(p)
		if n := dep.Nodes[p]; n != nil && len(n.ImportedBy) > 0 {
			nodes = append(nodes, ranked{path: p, in: len(n.ImportedBy)})
		}
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].in > nodes[j].in
	})

	if len(nodes) > limit {
		nodes = nodes[:limit]
	}

	top := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		top[n.path] = true
	}
	return top
}

// Order returns the discovery-ordered path list.
func (g *Graph) Order() []string {
	return g.order
}
