package domain

import "fmt"

// ParseError means a file could not be tokenized at all, so not even lexical
// rules could run.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RuleConflictError is a catalog bug: a rule's rewritten output re-triggers
// its own detector, or its documented example fails to trigger it at all.
// Raised by the startup self-check, never per file at runtime.
type RuleConflictError struct {
	RuleID string
	Reason string
}

func (e *RuleConflictError) Error() string {
	return fmt.Sprintf("rule %s failed self-check: %s", e.RuleID, e.Reason)
}

// NotFoundError reports an unknown rule id.
type NotFoundError struct {
	RuleID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no rule with id %q", e.RuleID)
}
