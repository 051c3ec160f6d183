package report

import (
	"errors"
	"fmt"
)

// TextSpan represents a range or "span" of source text. It is used to specify
// erroneous or otherwise significant source text in an ember program.  Text
// spans are inclusive on both sides: the starting position is the position of
// the first character in the span and the ending position is the position of
// the last character in the span.  The line and column numbers are
// zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	if start == nil {
		return end
	} else if end == nil {
		return start
	}

	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// -----------------------------------------------------------------------------

// LocalCompileError is a compilation error that occurs in a context in which
// the phase and file are known by the error handler and thus don't need to be
// passed along with the error.  Local errors are raised by panicking and are
// caught by CatchErrors at the boundary of the phase that raised them.
type LocalCompileError struct {
	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (lce *LocalCompileError) Error() string {
	return lce.Message
}

// Raise creates a new local compile error.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// Phase identifies the compilation phase which produced an error.
type Phase int

// Enumeration of compilation phases.
const (
	PhaseLex      Phase = iota // Invalid characters and malformed literals.
	PhaseParse                 // Unexpected, missing or unbalanced tokens.
	PhaseGenerate              // Semantic errors found while lowering to IR.
)

func (p Phase) String() string {
	switch p {
	case PhaseLex:
		return "lex"
	case PhaseParse:
		return "syntax"
	default:
		return "generation"
	}
}

// CompileError is an error in the user's source code.  It is the only kind of
// error returned by the compilation phases: the driver decides what to do with
// it.
type CompileError struct {
	// The phase which raised the error.
	Phase Phase

	// The error message.
	Message string

	// The span over which the error occurs.  This may be nil.
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	if ce.Span == nil {
		return fmt.Sprintf("%s error: %s", ce.Phase, ce.Message)
	}

	return fmt.Sprintf("%d:%d: %s error: %s", ce.Span.StartLine+1, ce.Span.StartCol+1, ce.Phase, ce.Message)
}

// IsPhase returns whether err is a compile error raised by the given phase.
func IsPhase(err error, phase Phase) bool {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		return cerr.Phase == phase
	}

	return false
}

// CatchErrors catches any local compile errors thrown by a `panic` during a
// phase of compilation and stores them into err as a CompileError tagged with
// the given phase.  Any other panic is an internal compiler error and keeps
// bubbling.
// NB: This function must ALWAYS be deferred.
func CatchErrors(phase Phase, err *error) {
	if x := recover(); x != nil {
		if lerr, ok := x.(*LocalCompileError); ok {
			*err = &CompileError{
				Phase:   phase,
				Message: lerr.Message,
				Span:    lerr.Span,
			}
		} else {
			panic(x)
		}
	}
}
