package analysis

import (
	"strings"

	"repoatlas/internal/paths"
)

// Role is a coarse per-file purpose tag biasing importance scoring.
type Role string

const (
	RoleEntry  Role = "entry"
	RoleConfig Role = "config"
	RoleTypes  Role = "types"
	RoleTest   Role = "test"
	RoleUtil   Role = "util"
	RoleDoc    Role = "doc"
	RoleCore   Role = "core"
)

// rolePattern pairs a role tag with its path predicate. Classification is an
// ordered scan over these pairs; the first match wins, so precedence lives
// in the slice order, not in the predicates.
type rolePattern struct {
	role  Role
	match func(path string) bool
}

// rolePatterns is evaluated in fixed precedence order:
// entry > config > types > test > util > doc. Anything unmatched is core.
var rolePatterns = []rolePattern{
	{RoleEntry, isEntryPath},
	{RoleConfig, isConfigPath},
	{RoleTypes, isTypesPath},
	{RoleTest, isTestPath},
	{RoleUtil, isUtilPath},
	{RoleDoc, isDocPath},
}

// ClassifyRole assigns exactly one role to a repo-relative path.
func ClassifyRole(path string) Role {
	normalized := strings.ToLower(paths.Normalize(path))
	for _, p := range rolePatterns {
		if p.match(normalized) {
			return p.role
		}
	}
	return RoleCore
}

var entryBasenames = map[string]bool{
	"main":     true,
	"index":    true,
	"app":      true,
	"server":   true,
	"cli":      true,
	"__main__": true,
}

func isEntryPath(p string) bool {
	base := paths.Base(p)
	name := strings.TrimSuffix(base, paths.Ext(base))
	// "index.test.ts" is not an entry file; only single-extension basenames
	// qualify.
	if strings.Contains(name, ".") {
		return false
	}
	return entryBasenames[name]
}

var configExts = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
	".ini":  true,
	".env":  true,
}

func isConfigPath(p string) bool {
	base := paths.Base(p)
	if configExts[paths.Ext(base)] {
		return true
	}
	stripped := stripAllExts(base)
	return strings.Contains(stripped, "config") ||
		strings.Contains(stripped, "settings") ||
		strings.HasPrefix(base, ".env")
}

var typesBasenames = map[string]bool{
	"types":      true,
	"interfaces": true,
	"models":     true,
	"schema":     true,
	"schemas":    true,
}

func isTypesPath(p string) bool {
	if strings.HasSuffix(p, ".d.ts") {
		return true
	}
	return typesBasenames[stripAllExts(paths.Base(p))]
}

func isTestPath(p string) bool {
	base := paths.Base(p)
	stripped := stripAllExts(base)
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}
	if strings.HasSuffix(stripped, "_test") || strings.HasPrefix(stripped, "test_") {
		return true
	}
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "__tests__", "test", "tests", "spec", "specs":
			return true
		}
	}
	return false
}

func isUtilPath(p string) bool {
	stripped := stripAllExts(paths.Base(p))
	if strings.Contains(stripped, "util") || strings.Contains(stripped, "helper") {
		return true
	}
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "utils", "util", "helpers", "lib", "common", "shared":
			return true
		}
	}
	return false
}

var docBasenames = map[string]bool{
	"readme":       true,
	"changelog":    true,
	"license":      true,
	"contributing": true,
	"authors":      true,
}

func isDocPath(p string) bool {
	base := paths.Base(p)
	switch paths.Ext(base) {
	case ".md", ".rst", ".txt", ".adoc":
		return true
	}
	return docBasenames[stripAllExts(base)]
}

// stripAllExts removes every extension, so "index.test.ts" becomes "index".
func stripAllExts(base string) string {
	for {
		ext := paths.Ext(base)
		if ext == "" || ext == base {
			return base
		}
		base = strings.TrimSuffix(base, ext)
	}
}
