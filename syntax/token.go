package syntax

import (
	"ember/report"
	"fmt"
)

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.
	Value string

	// The text span over which the token exists.  This may not directly
	// correspond to its value: eg. the value of a string token has the leading
	// quotes trimmed off for convenience.
	Span *report.TextSpan
}

func (tok *Token) String() string {
	if tok.Value == "" {
		return fmt.Sprintf("%d:%d %s", tok.Span.StartLine+1, tok.Span.StartCol+1, KindName(tok.Kind))
	}

	return fmt.Sprintf("%d:%d %s %q", tok.Span.StartLine+1, tok.Span.StartCol+1, KindName(tok.Kind), tok.Value)
}

// Enumeration of token kinds.
const (
	TOK_STRUCT = iota
	TOK_FUNC
	TOK_IMPORT
	TOK_LET
	TOK_RETURN
	TOK_IF
	TOK_ELSE
	TOK_LOOP
	TOK_RANGE
	TOK_BREAK

	// The primitive type keywords are ordered the same as the primitive types
	// in the typing package.
	TOK_U8
	TOK_U16
	TOK_U32
	TOK_U64
	TOK_I8
	TOK_I16
	TOK_I32
	TOK_I64
	TOK_F32
	TOK_F64
	TOK_BOOL
	TOK_STRING

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_BWAND
	TOK_BWOR
	TOK_BWXOR
	TOK_LSHIFT
	TOK_RSHIFT

	TOK_ASSIGN
	TOK_NOT
	TOK_ARROW
	TOK_PATHSEP

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA
	TOK_DOT

	TOK_IDENT
	TOK_INTLIT
	TOK_FLOATLIT
	TOK_BOOLLIT
	TOK_STRINGLIT

	TOK_NEWLINE
	TOK_EOF
)

// keywords maps keyword strings to their token kinds.
var keywords = map[string]int{
	"struct": TOK_STRUCT,
	"func":   TOK_FUNC,
	"import": TOK_IMPORT,
	"let":    TOK_LET,
	"return": TOK_RETURN,
	"if":     TOK_IF,
	"else":   TOK_ELSE,
	"loop":   TOK_LOOP,
	"range":  TOK_RANGE,
	"break":  TOK_BREAK,
	"u8":     TOK_U8,
	"u16":    TOK_U16,
	"u32":    TOK_U32,
	"u64":    TOK_U64,
	"i8":     TOK_I8,
	"i16":    TOK_I16,
	"i32":    TOK_I32,
	"i64":    TOK_I64,
	"f32":    TOK_F32,
	"f64":    TOK_F64,
	"bool":   TOK_BOOL,
	"string": TOK_STRING,
	"true":   TOK_BOOLLIT,
	"false":  TOK_BOOLLIT,
}

// kindNames is used to display token kinds in error messages.
var kindNames = map[int]string{
	TOK_IDENT:     "identifier",
	TOK_INTLIT:    "integer literal",
	TOK_FLOATLIT:  "float literal",
	TOK_BOOLLIT:   "bool literal",
	TOK_STRINGLIT: "string literal",
	TOK_DIV:       "`/`",
	TOK_NEWLINE:   "newline",
	TOK_EOF:       "end of file",
}

func init() {
	for name, kind := range keywords {
		if kind != TOK_BOOLLIT {
			kindNames[kind] = "`" + name + "`"
		}
	}

	for pattern, kind := range symbolPatterns {
		kindNames[kind] = "`" + pattern + "`"
	}
}

// KindName returns a displayable name for a token kind.
func KindName(kind int) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}

	return fmt.Sprintf("<token %d>", kind)
}
