// Package errors defines the core's error kinds and a fluent builder
// for constructing them with position and diagnostic context, in the
// style of the teacher toolchain's CompilerError/ErrorBuilder pair.
package errors

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Kind distinguishes the error variants the core can produce. Parsing
// and construction errors are returned as values; the engine never
// panics on user input.
type Kind string

const (
	KindParseError                Kind = "ParseError"
	KindSystemMismatch            Kind = "SystemMismatch"
	KindInvalidFormula            Kind = "InvalidFormula"
	KindResourceExhausted         Kind = "ResourceExhausted"
	KindCancelled                 Kind = "Cancelled"
	KindInternalInvariantViolated Kind = "InternalInvariantViolated"
)

// Position locates a diagnostic in source text.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Line == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// CoreError is the concrete error type returned by every fallible core
// operation. It satisfies the standard error interface.
type CoreError struct {
	Kind     Kind
	Message  string
	Position Position
	Notes    []string
}

func (e *CoreError) Error() string {
	if e.Position.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Position, e.Message)
}

// Builder provides a fluent interface for constructing a CoreError,
// mirroring the teacher's NewSemanticError(...).WithNote(...).Build().
type Builder struct {
	err CoreError
}

func New(kind Kind, message string) *Builder {
	return &Builder{err: CoreError{Kind: kind, Message: message}}
}

func (b *Builder) At(pos Position) *Builder {
	b.err.Position = pos
	return b
}

func (b *Builder) WithNote(note string) *Builder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *Builder) Build() *CoreError {
	return &b.err
}

// ParseError is a convenience constructor for the common case of a
// malformed-input diagnostic with a position.
func ParseError(message string, pos Position) *CoreError {
	return New(KindParseError, message).At(pos).Build()
}

// SystemMismatch reports a signed formula whose sign does not belong
// to the engine's configured system (e.g. U with a CPL engine).
func SystemMismatch(message string) *CoreError {
	return New(KindSystemMismatch, message).Build()
}

// InvalidFormula reports a structural violation detected at
// construction time (empty predicate name, ill-formed quantifier).
func InvalidFormula(message string) *CoreError {
	return New(KindInvalidFormula, message).Build()
}

// ResourceExhausted reports a safety bound tripped during Engine.Build.
func ResourceExhausted(message string) *CoreError {
	return New(KindResourceExhausted, message).Build()
}

// Cancelled reports that a cooperative cancellation token fired
// during Engine.Build.
func Cancelled(message string) *CoreError {
	return New(KindCancelled, message).Build()
}

// InternalInvariantViolated reports a self-check failure (e.g. a model
// post-condition), distinguishing an engine bug from a logical outcome.
func InternalInvariantViolated(message string) *CoreError {
	return New(KindInternalInvariantViolated, message).Build()
}

// Append aggregates multiple independent diagnostics — such as
// several per-system failures from CompareSystems — using
// hashicorp/go-multierror rather than a hand-rolled slice-of-errors
// wrapper. Nil errors are skipped; nil is returned if none remain.
func Append(existing error, errs ...error) error {
	var merr *multierror.Error
	if existing != nil {
		merr = multierror.Append(merr, existing)
	}
	for _, e := range errs {
		if e != nil {
			merr = multierror.Append(merr, e)
		}
	}
	if merr == nil {
		return nil
	}
	return merr
}
