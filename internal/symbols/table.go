// Package symbols provides the global exported-symbol table used for
// resolving inheritance and implementation edges across files.
package symbols

import (
	"repoatlas/internal/analysis"
)

// Kind classifies a symbol table entry.
type Kind string

const (
	KindFunction  Kind = "function"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
)

// Entry maps an exported name to its defining file.
type Entry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Kind     Kind   `json:"kind"`
	Exported bool   `json:"exported"`
}

// Table indexes exported functions, classes, and interfaces by name across
// all files.
//
// Names are globally unique in the table. When two files export the same
// name, the later insertion (in discovery order) wins and the earlier entry
// is dropped. Collisions reports how often that happened so callers can
// surface the ambiguity as a diagnostic.
type Table struct {
	entries    map[string]Entry
	collisions int
}

// Build indexes all exported symbols in discovery order.
func Build(files map[string]*analysis.ParsedFile, order []string) *Table {
	t := &Table{entries: make(map[string]Entry)}

	for _, path := range order {
		f := files[path]
		if f == nil {
			continue
		}

		for _, fn := range f.Functions {
			if !fn.Exported {
				continue
			}
			t.insert(Entry{Name: fn.Name, Path: path, Kind: KindFunction, Exported: true})
		}

		for _, c := range f.Classes {
			if !c.Exported {
				continue
			}
			kind := KindClass
			if c.Kind == "interface" {
				kind = KindInterface
			}
			t.insert(Entry{Name: c.Name, Path: path, Kind: kind, Exported: true})
		}
	}

	return t
}

func (t *Table) insert(e Entry) {
	if _, exists := t.entries[e.Name]; exists {
		t.collisions++
	}
	t.entries[e.Name] = e
}

// Resolve looks up an exported name.
func (t *Table) Resolve(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Len returns the number of distinct names in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Collisions returns how many insertions overwrote an existing name.
func (t *Table) Collisions() int {
	return t.collisions
}
