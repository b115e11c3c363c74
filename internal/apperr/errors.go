package apperr

import (
	"fmt"
	"sort"
	"strings"
)

// Violations accumulates field-level failures as code -> offending value.
// All checks run to completion before anything is raised, so a caller always
// sees the full set of problems at once.
type Violations map[Code]string

// Add records a violation. A repeated code keeps the last offending value.
func (v Violations) Add(code Code, value string) {
	v[code] = value
}

// Merge folds another violation set into this one.
func (v Violations) Merge(other Violations) {
	for code, value := range other {
		v[code] = value
	}
}

// Empty reports whether no violation has been recorded.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// ValidationError reports one or more rejected input values.
type ValidationError struct {
	// Details maps error codes to the offending input values.
	Details Violations
}

// NewValidation builds a ValidationError from a single code/value pair.
func NewValidation(code Code, value string) *ValidationError {
	return &ValidationError{Details: Violations{code: value}}
}

// NewValidationMap builds a ValidationError carrying a whole violation set.
func NewValidationMap(details Violations) *ValidationError {
	return &ValidationError{Details: details}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Details))
	for code, value := range e.Details {
		parts = append(parts, fmt.Sprintf("%s=%q", code, value))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether the error carries the given code.
func (e *ValidationError) Has(code Code) bool {
	_, ok := e.Details[code]
	return ok
}

// NotFoundError reports that a referenced id does not resolve to a live row.
type NotFoundError struct {
	Resource string
	ID       int64
}

func NewNotFound(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

// ConflictError reports a uniqueness violation surfaced by the storage layer.
// The code tells which name collided (tag, certificate or user).
type ConflictError struct {
	Code  Code
	Value string
}

func NewConflict(code Code, value string) *ConflictError {
	return &ConflictError{Code: code, Value: value}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %q already exists", e.Code, e.Value)
}

// AsValidation converts the conflict into the duplicated-name validation
// error callers are expected to see.
func (e *ConflictError) AsValidation() *ValidationError {
	return NewValidation(e.Code, e.Value)
}
