// Package diag carries the two-tier error model this module uses
// throughout: fatal Errors that abort the current pass (see errors.go), and
// accumulating Diagnostics that do not. Diagnostics are data, appended to a
// list, never thrown — the only exception-like path in this module is the
// fatal Error type.
package diag

import "fmt"

// Severity orders a Diagnostic's importance. Error outranks Warning
// outranks Info outranks Hint; AnalysisResult.HasErrors is true iff any
// Diagnostic in a list carries SeverityError.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Location is a lightweight, diag-local copy of ast.Location's shape so
// this package has no dependency on package ast; semantic and parse
// convert from ast.Location when attaching a Diagnostic.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l == (Location{}) {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Diagnostic is one reported issue: a severity, a message, and optionally a
// source Location and a stable Code for test assertions (e.g.
// "E-UNDEF-RULE", "W-LEFT-RECURSION").
type Diagnostic struct {
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Location *Location `json:"location"`
	Code     string    `json:"code"`
}

// String renders a Diagnostic as
// "[<code>] <severity>: <message> at <file>:<line>:<col>", omitting the
// code and location clauses when absent. This exact format is part of the
// external contract — test suites assert on it.
func (d Diagnostic) String() string {
	var out string
	if d.Code != "" {
		out += "[" + d.Code + "] "
	}
	out += d.Severity.String() + ": " + d.Message
	if d.Location != nil && !(*d.Location == Location{}) {
		out += " at " + d.Location.String()
	}
	return out
}

// Error constructs a SeverityError Diagnostic.
func Error(code, message string, loc *Location) Diagnostic {
	return Diagnostic{Severity: SeverityError, Message: message, Location: loc, Code: code}
}

// Warning constructs a SeverityWarning Diagnostic.
func Warning(code, message string, loc *Location) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Message: message, Location: loc, Code: code}
}

// Info constructs a SeverityInfo Diagnostic.
func Info(code, message string, loc *Location) Diagnostic {
	return Diagnostic{Severity: SeverityInfo, Message: message, Location: loc, Code: code}
}

// Hint constructs a SeverityHint Diagnostic.
func Hint(code, message string, loc *Location) Diagnostic {
	return Diagnostic{Severity: SeverityHint, Message: message, Location: loc, Code: code}
}

// HasErrors reports whether any Diagnostic in diags carries SeverityError.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CountBySeverity tallies diags by severity, for reporting summaries.
func CountBySeverity(diags []Diagnostic) map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range diags {
		counts[d.Severity]++
	}
	return counts
}
