// Package analysis defines the engine's per-file data model and the
// heuristic file classification and importance scoring built on top of it.
//
// The engine never parses source itself. ParsedFile records are produced by
// an external multi-language parser and handed in as an already-discovered,
// already-filtered set; a file the parser could not handle is represented by
// a nil entry and still participates as an import target.
package analysis

// ParsedFile is the per-file symbol record produced by the external parser.
type ParsedFile struct {
	// Path is the repo-relative path with forward slashes
	Path string `json:"path"`

	// Language is the parser's lowercase language tag (e.g. "typescript")
	Language string `json:"language"`

	// Functions are top-level functions in declaration order
	Functions []FunctionInfo `json:"functions,omitempty"`

	// Classes are classes/interfaces in declaration order
	Classes []ClassInfo `json:"classes,omitempty"`

	// Exports are raw export statements as they appear in the source
	Exports []string `json:"exports,omitempty"`

	// Imports are raw import specifiers ("./util", "react", "node:fs")
	Imports []string `json:"imports,omitempty"`
}

// FunctionInfo describes a top-level function declaration.
type FunctionInfo struct {
	Name     string `json:"name"`
	Exported bool   `json:"exported"`
}

// ClassInfo describes a class or interface declaration.
type ClassInfo struct {
	Name string `json:"name"`

	// Kind is "class" or "interface"
	Kind string `json:"kind"`

	Exported bool `json:"exported"`

	// Extends names the declared parent class, if any. The name may not
	// resolve within the repository (external base classes).
	Extends string `json:"extends,omitempty"`

	// Implements names the declared interfaces, if any
	Implements []string `json:"implements,omitempty"`
}

// ExportCount returns the number of exported symbols in the file.
func (f *ParsedFile) ExportCount() int {
	n := 0
	for _, fn := range f.Functions {
		if fn.Exported {
			n++
		}
	}
	for _, c := range f.Classes {
		if c.Exported {
			n++
		}
	}
	return n
}

// FileIndexEntry is one ranked file in the per-run file index.
type FileIndexEntry struct {
	Path string `json:"path"`

	// Importance is the heuristic score in [0,1]
	Importance float64 `json:"importance"`

	Role Role `json:"role"`

	// Imports carries the file's raw import specifiers when available
	Imports []string `json:"imports,omitempty"`
}
