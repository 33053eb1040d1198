package model

import "fmt"

// EmptyError reports a required field that was blank or whitespace-only.
type EmptyError struct {
	Field string
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// NewEmptyError creates a new empty-value error
func NewEmptyError(field string) *EmptyError {
	return &EmptyError{Field: field}
}

// TooLongError reports a string field that exceeded its length bound.
type TooLongError struct {
	Field  string
	Max    int
	Actual int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("%s is too long: %d characters, limit is %d", e.Field, e.Actual, e.Max)
}

// NewTooLongError creates a new too-long error
func NewTooLongError(field string, max, actual int) *TooLongError {
	return &TooLongError{Field: field, Max: max, Actual: actual}
}

// TooHighError reports a numeric value that exceeded its upper bound.
// Max and Actual carry the offending values as decimal strings.
type TooHighError struct {
	Field  string
	Max    string
	Actual string
}

func (e *TooHighError) Error() string {
	return fmt.Sprintf("%s is too high: %s, limit is %s", e.Field, e.Actual, e.Max)
}

// NewTooHighError creates a new too-high error
func NewTooHighError(field, max, actual string) *TooHighError {
	return &TooHighError{Field: field, Max: max, Actual: actual}
}

// TooManyError reports a collection whose capacity would be exceeded.
// The rejected transition adds no elements at all.
type TooManyError struct {
	Collection string
	Max        int
	Attempted  int
}

func (e *TooManyError) Error() string {
	return fmt.Sprintf("too many %s: %d, limit is %d", e.Collection, e.Attempted, e.Max)
}

// NewTooManyError creates a new too-many error
func NewTooManyError(collection string, max, attempted int) *TooManyError {
	return &TooManyError{Collection: collection, Max: max, Attempted: attempted}
}

// FormatError reports a value that failed a pattern, range, or
// enum-membership check.
type FormatError struct {
	Field    string
	Value    string
	Expected string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s has invalid value %q: expected %s", e.Field, e.Value, e.Expected)
}

// NewFormatError creates a new invalid-format error
func NewFormatError(field, value, expected string) *FormatError {
	return &FormatError{Field: field, Value: value, Expected: expected}
}

// MissingError reports a mandatory sub-entity or field that was still
// unset when a document was serialized.
type MissingError struct {
	Entity string
	Field  string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s is incomplete: %s is required", e.Entity, e.Field)
}

// NewMissingError creates a new missing-field error
func NewMissingError(entity, field string) *MissingError {
	return &MissingError{Entity: entity, Field: field}
}

// ElementTypeError reports an element whose concrete type does not match
// a collection's declared element type. This is a programming-contract
// violation, not an input error.
type ElementTypeError struct {
	Collection string
	Expected   string
	Actual     interface{}
}

func (e *ElementTypeError) Error() string {
	return fmt.Sprintf("wrong element in %s: expected %s, got %v", e.Collection, e.Expected, e.Actual)
}

// NewElementTypeError creates a new wrong-element-type error
func NewElementTypeError(collection, expected string, actual interface{}) *ElementTypeError {
	return &ElementTypeError{Collection: collection, Expected: expected, Actual: actual}
}
