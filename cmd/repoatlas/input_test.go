package main

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleSnapshot = `{
  "repoKey": "example/app",
  "commit": "abc123",
  "files": [
    {
      "path": "src/index.ts",
      "content": "import './util';\n",
      "language": "typescript",
      "imports": ["./util"]
    },
    {
      "path": "src/util.ts",
      "content": "export function helperFn() {}\n",
      "language": "typescript",
      "functions": [{"name": "helperFn", "exported": true}]
    },
    {
      "path": "src/broken.ts",
      "content": "not parseable",
      "failed": true
    }
  ]
}`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSnapshot(t *testing.T) {
	snap, err := loadSnapshot(writeSnapshot(t, sampleSnapshot))
	if err != nil {
		t.Fatalf("loadSnapshot() error = %v", err)
	}
	if snap.RepoKey != "example/app" {
		t.Errorf("repoKey = %q", snap.RepoKey)
	}
	if len(snap.Files) != 3 {
		t.Errorf("files = %d, want 3", len(snap.Files))
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	if _, err := loadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should error")
	}
	if _, err := loadSnapshot(writeSnapshot(t, "{not json")); err == nil {
		t.Error("malformed JSON should error")
	}
	if _, err := loadSnapshot(writeSnapshot(t, `{"repoKey": "x", "files": []}`)); err == nil {
		t.Error("empty file set should error")
	}
}

func TestSnapshotToInput(t *testing.T) {
	snap, err := loadSnapshot(writeSnapshot(t, sampleSnapshot))
	if err != nil {
		t.Fatal(err)
	}

	input := snap.toInput("")
	if input.RepoKey != "example/app" {
		t.Errorf("repoKey = %q", input.RepoKey)
	}
	if len(input.Order) != 3 || input.Order[0] != "src/index.ts" {
		t.Errorf("order = %v", input.Order)
	}

	// Failed files map to nil parse records but keep their content.
	if input.Parsed["src/broken.ts"] != nil {
		t.Error("failed file must have a nil parse record")
	}
	if string(input.Contents["src/broken.ts"]) != "not parseable" {
		t.Error("failed file content missing")
	}

	parsed := input.Parsed["src/util.ts"]
	if parsed == nil || len(parsed.Functions) != 1 || parsed.Functions[0].Name != "helperFn" {
		t.Errorf("parsed util = %+v", parsed)
	}
}

func TestSnapshotToInputKeyOverride(t *testing.T) {
	snap, err := loadSnapshot(writeSnapshot(t, sampleSnapshot))
	if err != nil {
		t.Fatal(err)
	}
	input := snap.toInput("override/key")
	if input.RepoKey != "override/key" {
		t.Errorf("repoKey = %q, want override", input.RepoKey)
	}
}
