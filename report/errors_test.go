package report

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nalgeon/be"
)

func TestNewSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 1, StartCol: 4, EndLine: 1, EndCol: 6}
	end := &TextSpan{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 2}

	span := NewSpanOver(start, end)
	be.Equal(t, *span, TextSpan{StartLine: 1, StartCol: 4, EndLine: 3, EndCol: 2})

	be.Equal(t, NewSpanOver(nil, end), end)
	be.Equal(t, NewSpanOver(start, nil), start)
}

func TestCompileErrorMessage(t *testing.T) {
	err := &CompileError{
		Phase:   PhaseParse,
		Message: "unexpected `}`",
		Span:    &TextSpan{StartLine: 2, StartCol: 0},
	}
	be.Equal(t, err.Error(), "3:1: syntax error: unexpected `}`")

	err = &CompileError{Phase: PhaseGenerate, Message: "boom"}
	be.Equal(t, err.Error(), "generation error: boom")
}

func raiseIn(phase Phase, msg string) (err error) {
	defer CatchErrors(phase, &err)

	panic(Raise(&TextSpan{}, "bad %s", msg))
}

func TestCatchErrors(t *testing.T) {
	err := raiseIn(PhaseLex, "char")
	be.Equal(t, err.Error(), "1:1: lex error: bad char")
	be.True(t, IsPhase(err, PhaseLex))
	be.True(t, !IsPhase(err, PhaseParse))

	wrapped := fmt.Errorf("compiling: %w", err)
	be.True(t, IsPhase(wrapped, PhaseLex))

	var cerr *CompileError
	be.True(t, errors.As(wrapped, &cerr))
	be.Equal(t, cerr.Message, "bad char")
}

func TestCatchErrorsRepanics(t *testing.T) {
	defer func() {
		be.Equal(t, recover(), any("internal"))
	}()

	func() (err error) {
		defer CatchErrors(PhaseGenerate, &err)
		panic("internal")
	}()

	t.Fatal("panic was swallowed")
}

func TestIsPhaseOtherErrors(t *testing.T) {
	be.True(t, !IsPhase(errors.New("plain"), PhaseLex))
	be.True(t, !IsPhase(nil, PhaseLex))
}
