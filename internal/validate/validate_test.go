package validate

import (
	"testing"

	"repoatlas/internal/skeleton"
)

func twoEntitySkeleton() *skeleton.Skeleton {
	return &skeleton.Skeleton{
		Entities: []skeleton.Entity{
			{Name: "src", Path: "src", Files: []string{"src/a.ts"}},
			{Name: "docs", Path: "docs", Files: []string{"docs/readme.md"}},
		},
	}
}

func TestCheckAllConsistent(t *testing.T) {
	prose := &Prose{
		Descriptions: map[string]string{
			"src":  "application code",
			"docs": "documentation",
		},
		Relationships: []Relationship{
			{From: "src", To: "docs", Kind: "documents"},
		},
	}

	report := Check(twoEntitySkeleton(), prose)
	if !report.Passed {
		t.Errorf("passed = false, issues: %+v", report.Issues)
	}
	if len(report.Issues) != 0 {
		t.Errorf("issues = %+v, want none", report.Issues)
	}
}

func TestCheckMissingDescriptionWarns(t *testing.T) {
	prose := &Prose{
		Descriptions: map[string]string{"src": "application code"},
	}

	report := Check(twoEntitySkeleton(), prose)
	if !report.Passed {
		t.Error("missing description must not fail validation")
	}
	if len(report.Issues) != 1 {
		t.Fatalf("issues = %+v, want one warning", report.Issues)
	}
	issue := report.Issues[0]
	if issue.Severity != SeverityWarning || issue.Code != CodeMissingDescription || issue.Entity != "docs" {
		t.Errorf("issue = %+v", issue)
	}
}

func TestCheckUnknownDescriptionFails(t *testing.T) {
	prose := &Prose{
		Descriptions: map[string]string{
			"src":     "application code",
			"docs":    "documentation",
			"phantom": "does not exist",
		},
	}

	report := Check(twoEntitySkeleton(), prose)
	if report.Passed {
		t.Error("description of an unknown entity must fail validation")
	}
	errs := report.Errors()
	if len(errs) != 1 || errs[0].Code != CodeUnknownEntity || errs[0].Entity != "phantom" {
		t.Errorf("errors = %+v", errs)
	}
}

func TestCheckUnknownRelationshipFails(t *testing.T) {
	prose := &Prose{
		Descriptions: map[string]string{
			"src":  "application code",
			"docs": "documentation",
		},
		Relationships: []Relationship{
			{From: "ghost", To: "src", Kind: "uses"},
		},
	}

	report := Check(twoEntitySkeleton(), prose)
	if report.Passed {
		t.Error("relationship from an unknown entity must fail validation")
	}
	errs := report.Errors()
	if len(errs) != 1 || errs[0].Code != CodeUnknownRelationship || errs[0].Entity != "ghost" {
		t.Errorf("errors = %+v", errs)
	}
}

func TestCheckBothEndpointsUnknown(t *testing.T) {
	prose := &Prose{
		Relationships: []Relationship{{From: "a", To: "b"}},
	}

	report := Check(twoEntitySkeleton(), prose)
	if got := len(report.Errors()); got != 2 {
		t.Errorf("errors = %d, want one per unknown endpoint", got)
	}
}

func TestCheckNilInputs(t *testing.T) {
	report := Check(nil, nil)
	if !report.Passed {
		t.Error("empty skeleton and prose must pass")
	}

	report = Check(twoEntitySkeleton(), nil)
	if !report.Passed {
		t.Error("nil prose yields only missing-description warnings")
	}
	if len(report.Issues) != 2 {
		t.Errorf("issues = %+v, want two warnings", report.Issues)
	}
}
