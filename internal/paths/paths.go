// Package paths provides canonical path handling for the analysis engine.
// All paths flowing through the engine are repo-relative with forward slashes,
// regardless of the platform the engine runs on.
package paths

import (
	"path"
	"path/filepath"
	"strings"
)

// Normalize converts a path to canonical engine form:
// forward slashes, no leading "./", cleaned of redundant segments.
func Normalize(p string) string {
	p = filepath.ToSlash(p)
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "./")
	return p
}

// Dir returns the canonical directory of a repo-relative path.
// The directory of a top-level file is ".".
func Dir(p string) string {
	return path.Dir(Normalize(p))
}

// Base returns the final path element.
func Base(p string) string {
	return path.Base(Normalize(p))
}

// TopSegment returns the first path segment of a repo-relative path,
// or "" for top-level files.
func TopSegment(p string) string {
	p = Normalize(p)
	idx := strings.Index(p, "/")
	if idx < 0 {
		return ""
	}
	return p[:idx]
}

// Join joins path elements into canonical form.
func Join(elems ...string) string {
	return Normalize(path.Join(elems...))
}

// IsRelativeImport reports whether an import specifier is relative
// ("./x" or "../y"). Bare specifiers are never resolved by the engine.
func IsRelativeImport(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}

// Ext returns the file extension including the dot, or "".
func Ext(p string) string {
	return path.Ext(p)
}

// StripExt returns the path without its extension.
func StripExt(p string) string {
	p = Normalize(p)
	return strings.TrimSuffix(p, path.Ext(p))
}
