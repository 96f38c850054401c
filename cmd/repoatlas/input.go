package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"repoatlas/internal/analysis"
	"repoatlas/internal/pipeline"
)

// snapshotFile is one file in an analysis snapshot: the parser's symbol
// record plus the raw content used for change hashing.
type snapshotFile struct {
	Path     string                  `json:"path"`
	Content  string                  `json:"content"`
	Failed   bool                    `json:"failed,omitempty"`
	Language string                  `json:"language,omitempty"`
	Funcs    []analysis.FunctionInfo `json:"functions,omitempty"`
	Classes  []analysis.ClassInfo    `json:"classes,omitempty"`
	Exports  []string                `json:"exports,omitempty"`
	Imports  []string                `json:"imports,omitempty"`
}

// snapshot is the JSON document the CLI consumes: a pre-discovered,
// pre-parsed file set in discovery order. Parsing and discovery happen
// upstream; repoatlas only analyzes.
type snapshot struct {
	RepoKey string         `json:"repoKey"`
	Commit  string         `json:"commit,omitempty"`
	Files   []snapshotFile `json:"files"`
}

// loadSnapshot reads a snapshot from path, or stdin when path is "-".
func loadSnapshot(path string) (*snapshot, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if len(snap.Files) == 0 {
		return nil, fmt.Errorf("snapshot contains no files")
	}
	return &snap, nil
}

// toInput converts a snapshot into pipeline input. A file marked failed
// maps to a nil parse record: no outgoing edges, still an import target.
func (s *snapshot) toInput(repoKey string) pipeline.Input {
	if repoKey == "" {
		repoKey = s.RepoKey
	}

	input := pipeline.Input{
		RepoKey:  repoKey,
		Commit:   s.Commit,
		Order:    make([]string, 0, len(s.Files)),
		Parsed:   make(map[string]*analysis.ParsedFile, len(s.Files)),
		Contents: make(map[string][]byte, len(s.Files)),
	}

	for _, f := range s.Files {
		input.Order = append(input.Order, f.Path)
		input.Contents[f.Path] = []byte(f.Content)
		if f.Failed {
			input.Parsed[f.Path] = nil
			continue
		}
		input.Parsed[f.Path] = &analysis.ParsedFile{
			Path:      f.Path,
			Language:  f.Language,
			Functions: f.Funcs,
			Classes:   f.Classes,
			Exports:   f.Exports,
			Imports:   f.Imports,
		}
	}
	return input
}
