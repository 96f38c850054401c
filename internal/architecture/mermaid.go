package architecture

import (
	"fmt"
	"strings"
)

// RenderOptions controls diagram output.
type RenderOptions struct {
	// Include restricts the diagram to these paths. Empty renders every
	// node. Edges touching excluded nodes are dropped with them.
	Include []string
}

// RenderMermaid emits the architecture graph in Mermaid flowchart notation
// for embedding in generated documentation. Nodes are grouped into per-layer
// subgraphs; edge arrows encode the relation type.
func RenderMermaid(g *Graph, opts RenderOptions) string {
	included := make(map[string]bool)
	if len(opts.Include) == 0 {
		for p := range g.Nodes {
			included[p] = true
		}
	} else {
		for _, p := range opts.Include {
			if _, ok := g.Nodes[p]; ok {
				included[p] = true
			}
		}
	}

	var b strings.Builder
	b.WriteString("flowchart TD\n")

	for _, layer := range Layers() {
		var members []string
		for _, p := range g.order {
			node := g.Nodes[p]
			if node != nil && node.Layer == layer && included[p] {
				members = append(members, p)
			}
		}
		if len(members) == 0 {
			continue
		}

		b.WriteString(fmt.Sprintf("  subgraph %s\n", layer))
		for _, p := range members {
			b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", sanitizeID(p), p))
		}
		b.WriteString("  end\n")
	}

	for _, e := range g.Edges {
		if e.Source == e.Target {
			continue
		}
		if !included[e.Source] || !included[e.Target] {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			sanitizeID(e.Source), arrowFor(e.Type), sanitizeID(e.Target)))
	}

	return b.String()
}

// arrowFor maps an edge type to its Mermaid arrow style.
func arrowFor(t EdgeType) string {
	switch t {
	case EdgeExtends:
		return "--|>"
	case EdgeImplements:
		return "..|>"
	case EdgeReExports:
		return "-.->"
	default:
		return "-->"
	}
}

// sanitizeID converts a path to a Mermaid-safe node ID:
// non-alphanumerics become underscores, letters are lowercased, and an
// empty result falls back to "node".
func sanitizeID(s string) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, s)
	if id == "" {
		return "node"
	}
	return id
}
