package types

import "fmt"

// Severity classifies a validation Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one non-fatal validation finding: a missing parameter, a type
// mismatch, a dangling reference. Issues are collected and surfaced, never
// thrown, so the editor can show partial problems without blocking work.
type Issue struct {
	Severity Severity
	Code     string // stable machine code, e.g. "missing_param", "dangling_ref"

	// Location. Empty fields don't apply to this issue.
	GraphID string
	NodeID  string
	RuleID  string
	Field   string

	Message string
}

// String renders the issue with its location for terminal display.
func (i Issue) String() string {
	loc := ""
	switch {
	case i.GraphID != "" && i.NodeID != "":
		loc = fmt.Sprintf(" [graph %s, node %s]", i.GraphID, i.NodeID)
	case i.GraphID != "":
		loc = fmt.Sprintf(" [graph %s]", i.GraphID)
	case i.RuleID != "":
		loc = fmt.Sprintf(" [rule %s]", i.RuleID)
	}
	return fmt.Sprintf("%s: %s%s", i.Severity, i.Message, loc)
}

// Errors filters issues down to error severity.
func Errors(issues []Issue) []Issue {
	var errs []Issue
	for _, i := range issues {
		if i.Severity == SeverityError {
			errs = append(errs, i)
		}
	}
	return errs
}
