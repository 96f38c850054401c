package paths

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"src/index.ts", "src/index.ts"},
		{"./src/index.ts", "src/index.ts"},
		{"src\\win\\file.ts", "src/win/file.ts"},
		{"src/./a/../b.ts", "src/b.ts"},
		{"a//b.go", "a/b.go"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTopSegment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"src/index.ts", "src"},
		{"main.go", ""},
		{"a/b/c.py", "a"},
	}

	for _, tt := range tests {
		if got := TopSegment(tt.input); got != tt.expected {
			t.Errorf("TopSegment(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDir(t *testing.T) {
	if got := Dir("main.go"); got != "." {
		t.Errorf("Dir(main.go) = %q, want .", got)
	}
	if got := Dir("src/util/str.ts"); got != "src/util" {
		t.Errorf("Dir = %q, want src/util", got)
	}
}

func TestIsRelativeImport(t *testing.T) {
	if !IsRelativeImport("./util") {
		t.Error("./util should be relative")
	}
	if !IsRelativeImport("../lib/a") {
		t.Error("../lib/a should be relative")
	}
	if IsRelativeImport("react") {
		t.Error("bare specifier should not be relative")
	}
	if IsRelativeImport("@scope/pkg") {
		t.Error("scoped package should not be relative")
	}
}
