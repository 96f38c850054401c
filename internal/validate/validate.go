// Package validate checks externally produced prose against a skeleton's
// entity set. It is the one boundary between the deterministic engine and
// generated content: prose crosses it as an immutable snapshot and every
// name in it must resolve against the skeleton.
package validate

import (
	"fmt"
	"sort"

	"repoatlas/internal/skeleton"
)

// Severity grades an issue. Errors fail validation; warnings never do.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes.
const (
	CodeMissingDescription  = "missing_description"
	CodeUnknownEntity       = "unknown_entity"
	CodeUnknownRelationship = "unknown_relationship_entity"
)

// Relationship links two described entities.
type Relationship struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind,omitempty"`
}

// Prose is the externally generated enhancement layer: per-entity
// descriptions plus inter-entity relationships. Its schema is owned by the
// generator; this package only checks referential consistency.
type Prose struct {
	Descriptions  map[string]string `json:"descriptions"`
	Relationships []Relationship    `json:"relationships,omitempty"`
}

// Issue is one consistency finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`

	// Entity is the name the issue is about
	Entity string `json:"entity,omitempty"`
}

// Report is the validation outcome. Passed means no error-severity issues;
// downstream policy decides what to do about warnings.
type Report struct {
	Passed bool    `json:"passed"`
	Issues []Issue `json:"issues,omitempty"`
}

// Errors returns the error-severity issues.
func (r *Report) Errors() []Issue {
	var errs []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Check validates prose against the skeleton's entities.
//
// A skeleton entity with no description is a warning. A description for a
// name the skeleton does not contain is an error, as is a relationship
// whose from or to references an unknown entity. Issues come out in a
// stable order: skeleton entity order, then description names sorted, then
// relationship order.
func Check(sk *skeleton.Skeleton, prose *Prose) *Report {
	report := &Report{Passed: true}
	if sk == nil {
		sk = &skeleton.Skeleton{}
	}
	if prose == nil {
		prose = &Prose{}
	}

	known := make(map[string]bool, len(sk.Entities))
	for _, e := range sk.Entities {
		known[e.Name] = true
	}

	for _, e := range sk.Entities {
		if _, ok := prose.Descriptions[e.Name]; !ok {
			report.add(Issue{
				Severity: SeverityWarning,
				Code:     CodeMissingDescription,
				Message:  fmt.Sprintf("entity %q has no description", e.Name),
				Entity:   e.Name,
			})
		}
	}

	for _, name := range sortedKeys(prose.Descriptions) {
		if !known[name] {
			report.add(Issue{
				Severity: SeverityError,
				Code:     CodeUnknownEntity,
				Message:  fmt.Sprintf("description references unknown entity %q", name),
				Entity:   name,
			})
		}
	}

	for _, rel := range prose.Relationships {
		for _, name := range []string{rel.From, rel.To} {
			if !known[name] {
				report.add(Issue{
					Severity: SeverityError,
					Code:     CodeUnknownRelationship,
					Message:  fmt.Sprintf("relationship %s -> %s references unknown entity %q", rel.From, rel.To, name),
					Entity:   name,
				})
			}
		}
	}

	return report
}

func (r *Report) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
	if issue.Severity == SeverityError {
		r.Passed = false
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
