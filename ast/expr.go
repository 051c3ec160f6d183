package ast

import (
	"ember/report"
	"ember/typing"
	"strconv"
	"strings"
)

// Expr represents an expression simple or complex.
type Expr interface {
	Node

	isExpr()
}

// -----------------------------------------------------------------------------

// Expression is a node of a binary expression tree.  It is either a leaf, in
// which case only Left is set, or a binary operator application with all three
// fields set.
type Expression struct {
	ASTBase

	Left  Expr
	Op    *Oper
	Right Expr
}

// IsLeaf returns whether the expression has no operator.
func (e *Expression) IsLeaf() bool {
	return e.Op == nil
}

// Oper is a binary operator used in the AST.
type Oper struct {
	// Kind must be one of the enumerated operator kinds.
	Kind int

	// Name is the source text of the operator.
	Name string

	Span *report.TextSpan
}

// Enumeration of operator kinds.
const (
	OP_ADD = iota
	OP_SUB
	OP_MUL
	OP_DIV
	OP_MOD

	OP_EQ
	OP_NEQ
	OP_LT
	OP_GT
	OP_LTEQ
	OP_GTEQ

	OP_BWAND
	OP_BWOR
	OP_BWXOR
	OP_LSHIFT
	OP_RSHIFT
)

// -----------------------------------------------------------------------------

// Enumeration of literal kinds.
const (
	LIT_INT = iota
	LIT_FLOAT
	LIT_BOOL
	LIT_STRING
)

// Literal is a literal value.  Its text is interpreted against the type it is
// lowered to.
type Literal struct {
	ASTBase

	Text string
	Kind int
}

// ParseIntText parses the text of an integer literal into its sign and
// magnitude.  The text may begin with a minus sign and a `0x`, `0o` or `0b`
// base prefix.
func ParseIntText(text string) (neg bool, mag uint64, err error) {
	if strings.HasPrefix(text, "-") {
		neg = true
		text = text[1:]
	}

	base := 10
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}

		if base != 10 {
			text = text[2:]
		}
	}

	mag, err = strconv.ParseUint(text, base, 64)
	return
}

// Variable is a named variable reference.
type Variable struct {
	ASTBase

	Name string
}

// FunctionCall is a call to a named function.
type FunctionCall struct {
	ASTBase

	Name string
	Args []*Expression
}

// Method is a call of the form `recv.f(args)`.
type Method struct {
	ASTBase

	Receiver Expr
	Call     *FunctionCall
}

// ImportCall is a call through an import path such as `std::io::println(s)`.
// Path holds every segment before the called function's name.
type ImportCall struct {
	ASTBase

	Path []string
	Call *FunctionCall
}

// Attr is a struct field access: `parent.name`.
type Attr struct {
	ASTBase

	Parent Expr
	Name   string
}

// ArrayIndex is an array element access: `parent[index]`.
type ArrayIndex struct {
	ASTBase

	Parent Expr
	Index  *Expression
}

// Cast is a type conversion: `src -> T`.
type Cast struct {
	ASTBase

	Src  Expr
	Type typing.DataType
}

// StructLiteral is a struct value `{ name value, ... }`.  Its struct type is
// given by the context it is lowered in.
type StructLiteral struct {
	ASTBase

	Fields []*FieldInit
}

// FieldInit is a single field initializer of a struct literal.
type FieldInit struct {
	ASTBase

	Name  string
	Value *Expression
}

// ArrayLiteral is an array value `[a, b, ...]`.
type ArrayLiteral struct {
	ASTBase

	Elems []*Expression
}

func (*Expression) isExpr()    {}
func (*Literal) isExpr()       {}
func (*Variable) isExpr()      {}
func (*FunctionCall) isExpr()  {}
func (*Method) isExpr()        {}
func (*ImportCall) isExpr()    {}
func (*Attr) isExpr()          {}
func (*ArrayIndex) isExpr()    {}
func (*Cast) isExpr()          {}
func (*StructLiteral) isExpr() {}
func (*ArrayLiteral) isExpr()  {}
