package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSchema indicates a required column or sheet is missing from a table.
	ErrSchema = errors.New("schema mismatch")

	// ErrUnknownCategory indicates a category selector that is not registered.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrRead indicates the underlying spreadsheet could not be read or parsed.
	ErrRead = errors.New("read failed")

	// ErrDisposal indicates a processed file could not be archived or deleted.
	ErrDisposal = errors.New("disposal failed")
)

// SchemaKind names what a SchemaError found missing.
type SchemaKind string

const (
	// SchemaColumn means one or more required columns are absent.
	SchemaColumn SchemaKind = "column"

	// SchemaSheet means a required worksheet is absent.
	SchemaSheet SchemaKind = "sheet"
)

// SchemaError reports every required column or sheet missing from a table,
// not just the first one found.
type SchemaError struct {
	Kind    SchemaKind
	Missing []string
}

func (e *SchemaError) Error() string {
	noun := string(e.Kind)
	if len(e.Missing) != 1 {
		noun += "s"
	}
	return fmt.Sprintf("missing required %s: %s", noun, strings.Join(e.Missing, ", "))
}

// Is reports whether target is ErrSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// MissingColumns returns a SchemaError for the given column names.
func MissingColumns(names ...string) *SchemaError {
	return &SchemaError{Kind: SchemaColumn, Missing: names}
}

// MissingSheet returns a SchemaError for a worksheet name.
func MissingSheet(name string) *SchemaError {
	return &SchemaError{Kind: SchemaSheet, Missing: []string{name}}
}

// UnknownCategoryError is returned when a selector does not match any
// registered category.
type UnknownCategoryError struct {
	Name string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category: %q", e.Name)
}

// Is reports whether target is ErrUnknownCategory.
func (e *UnknownCategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}

// ReadError wraps a failure of the tabular reader for a given path.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

// Unwrap returns the reader's cause.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRead.
func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

// DisposalError wraps a failure to archive or delete a file after it was
// processed and its stats were saved.
type DisposalError struct {
	Path   string
	Policy DisposalPolicy
	Err    error
}

func (e *DisposalError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Policy.verb(), e.Path, e.Err)
}

// Unwrap returns the filesystem cause.
func (e *DisposalError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDisposal.
func (e *DisposalError) Is(target error) bool {
	return target == ErrDisposal
}
