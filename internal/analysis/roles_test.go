package analysis

import "testing"

func TestClassifyRole(t *testing.T) {
	tests := []struct {
		path     string
		expected Role
	}{
		{"src/index.ts", RoleEntry},
		{"main.go", RoleEntry},
		{"cmd/app/main.go", RoleEntry},
		{"app.py", RoleEntry},
		{"src/config.ts", RoleConfig},
		{"package.json", RoleConfig},
		{"settings.py", RoleConfig},
		{".env", RoleConfig},
		{"src/types.ts", RoleTypes},
		{"src/api.d.ts", RoleTypes},
		{"src/models.py", RoleTypes},
		{"src/util.test.ts", RoleTest},
		{"src/__tests__/helper.ts", RoleTest},
		{"pkg/server_test.go", RoleTest},
		{"tests/test_parser.py", RoleTest},
		{"src/utils/strings.ts", RoleUtil},
		{"src/helpers.ts", RoleUtil},
		{"lib/format.rb", RoleUtil},
		{"README.md", RoleDoc},
		{"docs/guide.md", RoleDoc},
		{"src/engine.ts", RoleCore},
		{"internal/graph/builder.go", RoleCore},
	}

	for _, tt := range tests {
		if got := ClassifyRole(tt.path); got != tt.expected {
			t.Errorf("ClassifyRole(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestRolePrecedence(t *testing.T) {
	// Entry patterns outrank test patterns, but only for clean entry
	// basenames; a .test. infix disqualifies the entry match.
	if got := ClassifyRole("src/index.test.ts"); got != RoleTest {
		t.Errorf("index.test.ts classified %q, want test", got)
	}
	// Config beats util: a file named config inside utils/ is config.
	if got := ClassifyRole("src/utils/config.ts"); got != RoleConfig {
		t.Errorf("utils/config.ts classified %q, want config", got)
	}
	// Test beats util: util.test.ts is a test despite the util stem.
	if got := ClassifyRole("src/util.test.ts"); got != RoleTest {
		t.Errorf("util.test.ts classified %q, want test", got)
	}
}

func TestScoreBounds(t *testing.T) {
	roles := []Role{RoleEntry, RoleConfig, RoleTypes, RoleTest, RoleUtil, RoleDoc, RoleCore}
	for _, role := range roles {
		for _, in := range []int{0, 1, 5, 100} {
			for _, max := range []int{0, 1, 100} {
				s := Score(in, max, role)
				if s < 0 || s > 1 {
					t.Errorf("Score(%d, %d, %s) = %f out of [0,1]", in, max, role, s)
				}
			}
		}
	}
}

func TestScoreMaxInDegreeDominates(t *testing.T) {
	// The file holding the maximal in-degree gets the full in-degree term.
	full := Score(10, 10, RoleCore)
	partial := Score(5, 10, RoleCore)
	if full <= partial {
		t.Errorf("max in-degree file should outrank: %f vs %f", full, partial)
	}
	if full != clamp01(inDegreeWeight+coreBonus) {
		t.Errorf("full in-degree term wrong: %f", full)
	}
}

func TestTestMultiplier(t *testing.T) {
	// Equal in-degree, but the test role multiplier pushes the test file
	// below the util file.
	util := Score(1, 1, RoleUtil)
	test := Score(1, 1, RoleTest)
	if test >= util {
		t.Errorf("test file should score below util: test=%f util=%f", test, util)
	}
}

func TestRankDiscoveryOrderTies(t *testing.T) {
	order := []string{"a/one.ts", "a/two.ts", "a/three.ts"}
	files := map[string]*ParsedFile{}
	index := Rank(order, files, map[string]int{})

	// All core, all tied: discovery order preserved.
	for i, p := range order {
		if index[i].Path != p {
			t.Errorf("tie at %d broke discovery order: got %s want %s", i, index[i].Path, p)
		}
	}
}

func TestRankSortsByImportance(t *testing.T) {
	order := []string{"src/leaf.ts", "src/hub.ts"}
	index := Rank(order, map[string]*ParsedFile{}, map[string]int{"src/hub.ts": 4})

	if index[0].Path != "src/hub.ts" {
		t.Errorf("expected hub first, got %s", index[0].Path)
	}
	for _, e := range index {
		if e.Importance < 0 || e.Importance > 1 {
			t.Errorf("importance out of range: %f", e.Importance)
		}
	}
}

func TestExportCount(t *testing.T) {
	f := &ParsedFile{
		Functions: []FunctionInfo{{Name: "pub", Exported: true}, {Name: "priv"}},
		Classes:   []ClassInfo{{Name: "Widget", Kind: "class", Exported: true}},
	}
	if got := f.ExportCount(); got != 2 {
		t.Errorf("ExportCount = %d, want 2", got)
	}
}
