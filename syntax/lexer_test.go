package syntax

import (
	"strings"
	"testing"

	"ember/report"

	"github.com/nalgeon/be"
)

func tokenKinds(t *testing.T, src string) []int {
	t.Helper()

	toks, err := Tokenize(src)
	be.Err(t, err, nil)

	kinds := make([]int, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}

	return kinds
}

func lexOne(t *testing.T, src string) *Token {
	t.Helper()

	toks, err := Tokenize(src)
	be.Err(t, err, nil)
	be.Equal(t, len(toks), 2)

	return toks[0]
}

func TestKeywordsAndIdents(t *testing.T) {
	kinds := tokenKinds(t, "func main() i64 { return x }")
	be.Equal(t, kinds, []int{
		TOK_FUNC, TOK_IDENT, TOK_LPAREN, TOK_RPAREN, TOK_I64, TOK_LBRACE,
		TOK_RETURN, TOK_IDENT, TOK_RBRACE, TOK_EOF,
	})
}

func TestBoolLiterals(t *testing.T) {
	tok := lexOne(t, "true")
	be.Equal(t, tok.Kind, TOK_BOOLLIT)
	be.Equal(t, tok.Value, "true")

	tok = lexOne(t, "false")
	be.Equal(t, tok.Kind, TOK_BOOLLIT)
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  int
	}{
		{"+", TOK_PLUS},
		{"-", TOK_MINUS},
		{"*", TOK_STAR},
		{"/", TOK_DIV},
		{"%", TOK_MOD},
		{"&", TOK_BWAND},
		{"|", TOK_BWOR},
		{"^", TOK_BWXOR},
		{"<<", TOK_LSHIFT},
		{">>", TOK_RSHIFT},
		{"==", TOK_EQ},
		{"!=", TOK_NEQ},
		{"<", TOK_LT},
		{"<=", TOK_LTEQ},
		{">", TOK_GT},
		{">=", TOK_GTEQ},
		{"=", TOK_ASSIGN},
		{"!", TOK_NOT},
		{"->", TOK_ARROW},
		{"::", TOK_PATHSEP},
		{".", TOK_DOT},
		{",", TOK_COMMA},
	}

	for _, tt := range tests {
		be.Equal(t, lexOne(t, tt.input).Kind, tt.kind)
	}
}

func TestLongestMatch(t *testing.T) {
	kinds := tokenKinds(t, "a<<=b")
	be.Equal(t, kinds, []int{TOK_IDENT, TOK_LSHIFT, TOK_ASSIGN, TOK_IDENT, TOK_EOF})

	kinds = tokenKinds(t, "x->f32")
	be.Equal(t, kinds, []int{TOK_IDENT, TOK_ARROW, TOK_F32, TOK_EOF})
}

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  int
		value string
	}{
		{"12345", TOK_INTLIT, "12345"},
		{"1_000_000", TOK_INTLIT, "1000000"},
		{"0xff", TOK_INTLIT, "0xff"},
		{"0b101", TOK_INTLIT, "0b101"},
		{"0o17", TOK_INTLIT, "0o17"},
		{"3.25", TOK_FLOATLIT, "3.25"},
		{"1e10", TOK_FLOATLIT, "1e10"},
		{"2.5e-3", TOK_FLOATLIT, "2.5e-3"},
		{"0x_ff", TOK_INTLIT, "0xff"},
		{"7E2", TOK_FLOATLIT, "7E2"},
	}

	for _, tt := range tests {
		tok := lexOne(t, tt.input)
		be.Equal(t, tok.Kind, tt.kind)
		be.Equal(t, tok.Value, tt.value)
	}
}

func TestIntThenFieldAccess(t *testing.T) {
	kinds := tokenKinds(t, "arr[1].x")
	be.Equal(t, kinds, []int{
		TOK_IDENT, TOK_LBRACKET, TOK_INTLIT, TOK_RBRACKET, TOK_DOT, TOK_IDENT, TOK_EOF,
	})
}

func TestStringLiteral(t *testing.T) {
	tok := lexOne(t, `"hello\n\t\"world\"\\"`)
	be.Equal(t, tok.Kind, TOK_STRINGLIT)
	be.Equal(t, tok.Value, "hello\n\t\"world\"\\")
}

func TestNewlinesCollapse(t *testing.T) {
	kinds := tokenKinds(t, "\n\na\n\n\n// comment\n\nb\n")
	be.Equal(t, kinds, []int{TOK_IDENT, TOK_NEWLINE, TOK_IDENT, TOK_NEWLINE, TOK_EOF})
}

func TestCommentVsDivision(t *testing.T) {
	kinds := tokenKinds(t, "a / b // a / b")
	be.Equal(t, kinds, []int{TOK_IDENT, TOK_DIV, TOK_IDENT, TOK_EOF})
}

func TestTokenSpans(t *testing.T) {
	toks, err := Tokenize("let i64 x = 10\n  return")
	be.Err(t, err, nil)

	x := toks[2]
	be.Equal(t, x.Value, "x")
	be.Equal(t, x.Span.StartLine, 0)
	be.Equal(t, x.Span.StartCol, 8)

	ret := toks[6]
	be.Equal(t, ret.Kind, TOK_RETURN)
	be.Equal(t, ret.Span.StartLine, 1)
	be.Equal(t, ret.Span.StartCol, 2)
	be.Equal(t, ret.Span.EndCol, 7)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"let x = $", "invalid character"},
		{`"unclosed`, "unclosed string literal"},
		{"\"a\nb\"", "cannot contain a newline"},
		{`"\q"`, "unknown escape sequence"},
		{"0x", "incomplete numeric literal"},
		{"1e", "incomplete numeric literal"},
		{"0b2", "incomplete numeric literal"},
		{"2.5e-", "incomplete numeric literal"},
		{`"\'"`, "unknown escape sequence"},
		{`"\r"`, "unknown escape sequence"},
	}

	for _, tt := range tests {
		_, err := Tokenize(tt.input)
		be.True(t, report.IsPhase(err, report.PhaseLex))
		be.True(t, strings.Contains(err.Error(), tt.msg))
	}
}
