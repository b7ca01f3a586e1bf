package service

import (
	"errors"
	"fmt"
	"strings"
)

// Expected failure classes. Authentication and validation failures are
// detected before any transaction; every persistence-layer failure is mapped
// to ErrSomethingWentWrong at this boundary, with the underlying cause going
// to the log only.
var (
	// ErrNotAuthenticated means no actor was attached to the context.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSomethingWentWrong is the single generic failure surfaced for any
	// storage-level error. Callers never see constraint or driver detail.
	ErrSomethingWentWrong = errors.New("something went wrong")

	// ErrBoardNotFound is the not-found signal of the board read model.
	ErrBoardNotFound = errors.New("board not found")
)

// ValidationError carries field-scoped messages so the caller can annotate
// the specific input that failed.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// DomainError is a named rejection of a structurally valid request, e.g.
// reordering an empty set. Distinct from both validation failures and the
// generic storage failure.
type DomainError struct {
	Field   string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
