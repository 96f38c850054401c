package graph

import (
	"testing"

	"repoatlas/internal/analysis"
)

func file(path string, imports ...string) *analysis.ParsedFile {
	return &analysis.ParsedFile{Path: path, Language: "typescript", Imports: imports}
}

func build(files map[string]*analysis.ParsedFile, order []string) *Graph {
	return Build(files, order, DefaultOptions())
}

func TestResolveWithExtension(t *testing.T) {
	files := map[string]*analysis.ParsedFile{
		"src/a.ts":    file("src/a.ts", "./util"),
		"src/util.ts": file("src/util.ts"),
	}
	g := build(files, []string{"src/a.ts", "src/util.ts"})

	if len(g.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(g.Edges))
	}
	if g.Edges[0] != (Edge{Source: "src/a.ts", Target: "src/util.ts"}) {
		t.Errorf("unexpected edge %+v", g.Edges[0])
	}
}

func TestResolveIndexFile(t *testing.T) {
	files := map[string]*analysis.ParsedFile{
		"src/a.ts":            file("src/a.ts", "./lib"),
		"src/lib/index.ts":    file("src/lib/index.ts"),
		"pkg/b.py":            file("pkg/b.py", "./sub"),
		"pkg/sub/__init__.py": file("pkg/sub/__init__.py"),
	}
	g := build(files, []string{"src/a.ts", "src/lib/index.ts", "pkg/b.py", "pkg/sub/__init__.py"})

	if len(g.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(g.Edges))
	}
	if got := len(g.Nodes["src/lib/index.ts"].ImportedBy); got != 1 {
		t.Errorf("index.ts importedBy = %d, want 1", got)
	}
}

func TestParentRelativeImport(t *testing.T) {
	files := map[string]*analysis.ParsedFile{
		"src/deep/a.ts": file("src/deep/a.ts", "../util.ts"),
		"src/util.ts":   file("src/util.ts"),
	}
	g := build(files, []string{"src/deep/a.ts", "src/util.ts"})

	if len(g.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(g.Edges))
	}
}

func TestEdgeDeduplication(t *testing.T) {
	// Repeated imports of the same module in one file produce one edge.
	files := map[string]*analysis.ParsedFile{
		"src/a.ts":    file("src/a.ts", "./util", "./util.ts", "./util"),
		"src/util.ts": file("src/util.ts"),
	}
	g := build(files, []string{"src/a.ts", "src/util.ts"})

	if len(g.Edges) != 1 {
		t.Fatalf("edges = %d, want 1 (deduplicated)", len(g.Edges))
	}
	if got := len(g.Nodes["src/util.ts"].ImportedBy); got != 1 {
		t.Errorf("importedBy = %d, want 1", got)
	}
}

func TestSelfEdgeDropped(t *testing.T) {
	files := map[string]*analysis.ParsedFile{
		"src/a.ts": file("src/a.ts", "./a"),
	}
	g := build(files, []string{"src/a.ts"})

	if len(g.Edges) != 0 {
		t.Errorf("self-edge must be dropped, got %+v", g.Edges)
	}
}

func TestBareSpecifierUnresolved(t *testing.T) {
	files := map[string]*analysis.ParsedFile{
		"src/a.ts": file("src/a.ts", "react", "node:fs", "./missing"),
	}
	g := build(files, []string{"src/a.ts"})

	if len(g.Edges) != 0 {
		t.Errorf("no edges expected, got %+v", g.Edges)
	}
	if got := len(g.Nodes["src/a.ts"].Unresolved); got != 3 {
		t.Errorf("unresolved = %d, want 3", got)
	}
}

func TestParseFailureStillValidTarget(t *testing.T) {
	files := map[string]*analysis.ParsedFile{
		"src/a.ts":      file("src/a.ts", "./broken"),
		"src/broken.ts": nil, // parse failure
	}
	g := build(files, []string{"src/a.ts", "src/broken.ts"})

	if len(g.Edges) != 1 {
		t.Fatalf("unparseable file must remain an edge target, edges = %d", len(g.Edges))
	}
	if got := len(g.Nodes["src/broken.ts"].ImportedBy); got != 1 {
		t.Errorf("importedBy = %d, want 1", got)
	}
}

func TestHubThreshold(t *testing.T) {
	files := map[string]*analysis.ParsedFile{
		"a.ts":   file("a.ts", "./hub"),
		"b.ts":   file("b.ts", "./hub"),
		"c.ts":   file("c.ts", "./hub"),
		"hub.ts": file("hub.ts"),
	}
	g := build(files, []string{"a.ts", "b.ts", "c.ts", "hub.ts"})

	hubs := g.Hubs(DefaultOptions())
	if len(hubs) != 1 || hubs[0].Path != "hub.ts" {
		t.Fatalf("hubs = %+v, want [hub.ts]", hubs)
	}
}

func TestTwoImportersIsNotAHub(t *testing.T) {
	// index.ts and util.test.ts both import util.ts; two importers stay
	// below the threshold of three.
	files := map[string]*analysis.ParsedFile{
		"src/index.ts":     file("src/index.ts", "./util"),
		"src/util.ts":      file("src/util.ts"),
		"src/util.test.ts": file("src/util.test.ts", "./util"),
	}
	g := build(files, []string{"src/index.ts", "src/util.ts", "src/util.test.ts"})

	if hubs := g.Hubs(DefaultOptions()); len(hubs) != 0 {
		t.Errorf("hubs = %+v, want none", hubs)
	}
	if got := len(g.Nodes["src/util.ts"].ImportedBy); got != 2 {
		t.Errorf("util.ts importedBy = %d, want 2", got)
	}
}

func TestHubsSortedByInDegree(t *testing.T) {
	files := map[string]*analysis.ParsedFile{
		"big.ts":   file("big.ts"),
		"small.ts": file("small.ts"),
	}
	order := []string{"big.ts", "small.ts"}
	for _, name := range []string{"u1.ts", "u2.ts", "u3.ts", "u4.ts"} {
		files[name] = file(name, "./big", "./small")
		order = append(order, name)
	}
	// One more importer for big only.
	files["u5.ts"] = file("u5.ts", "./big")
	order = append(order, "u5.ts")

	g := build(files, order)
	hubs := g.Hubs(DefaultOptions())
	if len(hubs) != 2 {
		t.Fatalf("hubs = %d, want 2", len(hubs))
	}
	if hubs[0].Path != "big.ts" {
		t.Errorf("hubs not sorted by in-degree: %s first", hubs[0].Path)
	}
}

func TestMaxInDegree(t *testing.T) {
	files := map[string]*analysis.ParsedFile{
		"a.ts": file("a.ts", "./b"),
		"b.ts": file("b.ts"),
	}
	g := build(files, []string{"a.ts", "b.ts"})
	if g.MaxInDegree() != 1 {
		t.Errorf("MaxInDegree = %d, want 1", g.MaxInDegree())
	}
	if g.InDegrees()["b.ts"] != 1 {
		t.Errorf("InDegrees[b.ts] = %d", g.InDegrees()["b.ts"])
	}
}
