package architecture

import (
	"strings"

	"repoatlas/internal/paths"
)

// Layer is an architectural bucket inferred from directory naming.
// The set is closed; every file gets exactly one layer.
type Layer string

const (
	LayerUI     Layer = "ui"
	LayerAPI    Layer = "api"
	LayerDomain Layer = "domain"
	LayerInfra  Layer = "infra"
	LayerUtil   Layer = "util"
	LayerConfig Layer = "config"
	LayerTest   Layer = "test"
	LayerOther  Layer = "other"
)

// layerPattern pairs a layer tag with the directory names that select it.
// Classification scans the ordered list and assigns the first layer whose
// directory set intersects the file's path segments.
type layerPattern struct {
	layer Layer
	dirs  map[string]bool
}

var layerPatterns = []layerPattern{
	{LayerTest, set("test", "tests", "__tests__", "spec", "specs", "e2e")},
	{LayerUI, set("ui", "components", "pages", "views", "screens", "frontend", "client", "widgets")},
	{LayerAPI, set("api", "routes", "controllers", "handlers", "endpoints", "server", "rpc", "graphql")},
	{LayerDomain, set("domain", "models", "entities", "services", "core", "business", "usecases")},
	{LayerInfra, set("infra", "infrastructure", "db", "database", "storage", "repositories", "adapters", "gateway", "clients")},
	{LayerUtil, set("utils", "util", "helpers", "lib", "common", "shared")},
	{LayerConfig, set("config", "configs", "settings", "env")},
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// ClassifyLayer assigns exactly one layer to a repo-relative path by
// first-matching directory name. Files whose directories match nothing
// land in "other".
func ClassifyLayer(path string) Layer {
	segments := strings.Split(strings.ToLower(paths.Dir(path)), "/")
	for _, p := range layerPatterns {
		for _, seg := range segments {
			if p.dirs[seg] {
				return p.layer
			}
		}
	}
	return LayerOther
}

// Layers returns the closed layer set in rendering order.
func Layers() []Layer {
	return []Layer{
		LayerUI, LayerAPI, LayerDomain, LayerInfra,
		LayerUtil, LayerConfig, LayerTest, LayerOther,
	}
}
