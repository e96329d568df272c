/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrUnsupportedType is returned when no registered converter pattern
	// matches a resolved type descriptor
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnboundTypeVariable is returned when an aggregate field depends on
	// a type parameter that was not supplied
	ErrUnboundTypeVariable = errors.New("unbound type variable")

	// ErrShapeMismatch is returned when the input value's shape does not
	// match what the selected converter requires
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrMissingField is returned when a required aggregate field is absent
	ErrMissingField = errors.New("missing required field")

	// ErrNoMatchingUnionCase is returned when no union alternative converts
	ErrNoMatchingUnionCase = errors.New("no matching union case")

	// ErrMissingDependency is returned when a converter requests a
	// dependency not present in the conversion context
	ErrMissingDependency = errors.New("missing dependency")

	// ErrAsyncRequired is returned when an async converter is reached from
	// the non-suspending entry point
	ErrAsyncRequired = errors.New("async converter requires context entry point")
)

// UnsupportedTypeError represents a type descriptor with no matching converter
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("no converter registered for type %q", e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// UnboundTypeVariableError represents an aggregate used without the type
// arguments one of its fields depends on
type UnboundTypeVariableError struct {
	Aggregate string
	Var       string
}

func (e *UnboundTypeVariableError) Error() string {
	if e.Aggregate != "" {
		return fmt.Sprintf("unbound type variable %q in %s", e.Var, e.Aggregate)
	}
	return fmt.Sprintf("unbound type variable %q", e.Var)
}

func (e *UnboundTypeVariableError) Is(target error) bool {
	return target == ErrUnboundTypeVariable
}

// ShapeMismatchError represents an input value whose JSON shape does not
// match the target type
type ShapeMismatchError struct {
	Expected string
	Got      string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// MissingFieldError represents a required aggregate field absent from the input
type MissingFieldError struct {
	Aggregate string
	Field     string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Aggregate, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// NoMatchingUnionCaseError represents a union value no alternative accepted.
// It carries each attempted alternative and its individual failure for
// diagnostics.
type NoMatchingUnionCaseError struct {
	Alternatives []string
	Attempts     []error
}

func (e *NoMatchingUnionCaseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no union case matched among [%s]", strings.Join(e.Alternatives, " | "))
	for i, att := range e.Attempts {
		fmt.Fprintf(&b, "\n  %s: %v", e.Alternatives[i], att)
	}
	return b.String()
}

func (e *NoMatchingUnionCaseError) Is(target error) bool {
	return target == ErrNoMatchingUnionCase
}

// MissingDependencyError represents a dependency marker with no registered
// provider in the enclosing call
type MissingDependencyError struct {
	Marker string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("no dependency registered for marker type %s", e.Marker)
}

func (e *MissingDependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}

// AsyncRequiredError represents an async converter reached from the
// non-suspending entry point
type AsyncRequiredError struct {
	Type string
}

func (e *AsyncRequiredError) Error() string {
	return fmt.Sprintf("converter for type %q is async; use the context entry point", e.Type)
}

func (e *AsyncRequiredError) Is(target error) bool {
	return target == ErrAsyncRequired
}

// Helper functions for creating errors

// NewUnsupportedType creates a new UnsupportedTypeError
func NewUnsupportedType(typeKey string) error {
	return &UnsupportedTypeError{Type: typeKey}
}

// NewUnboundTypeVariable creates a new UnboundTypeVariableError
func NewUnboundTypeVariable(aggregate, name string) error {
	return &UnboundTypeVariableError{Aggregate: aggregate, Var: name}
}

// NewShapeMismatch creates a new ShapeMismatchError
func NewShapeMismatch(expected, got string) error {
	return &ShapeMismatchError{Expected: expected, Got: got}
}

// NewMissingField creates a new MissingFieldError
func NewMissingField(aggregate, field string) error {
	return &MissingFieldError{Aggregate: aggregate, Field: field}
}

// NewNoMatchingUnionCase creates a new NoMatchingUnionCaseError
func NewNoMatchingUnionCase(alternatives []string, attempts []error) error {
	return &NoMatchingUnionCaseError{Alternatives: alternatives, Attempts: attempts}
}

// NewMissingDependency creates a new MissingDependencyError
func NewMissingDependency(marker string) error {
	return &MissingDependencyError{Marker: marker}
}

// NewAsyncRequired creates a new AsyncRequiredError
func NewAsyncRequired(typeKey string) error {
	return &AsyncRequiredError{Type: typeKey}
}

// IsUnsupportedType checks if an error is an unsupported type error
func IsUnsupportedType(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

// IsUnboundTypeVariable checks if an error is an unbound type variable error
func IsUnboundTypeVariable(err error) bool {
	return errors.Is(err, ErrUnboundTypeVariable)
}

// IsShapeMismatch checks if an error is a shape mismatch error
func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

// IsMissingField checks if an error is a missing field error
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsNoMatchingUnionCase checks if an error is a union disambiguation failure
func IsNoMatchingUnionCase(err error) bool {
	return errors.Is(err, ErrNoMatchingUnionCase)
}

// IsMissingDependency checks if an error is a missing dependency error
func IsMissingDependency(err error) bool {
	return errors.Is(err, ErrMissingDependency)
}

// IsAsyncRequired checks if an error is an async misuse error
func IsAsyncRequired(err error) bool {
	return errors.Is(err, ErrAsyncRequired)
}
