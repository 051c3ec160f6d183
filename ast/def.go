package ast

import "ember/typing"

// Def represents a top level definition in user source code.  The set of
// definitions is closed: FuncDef, StructDef and ImportDef.
type Def interface {
	Node

	isDef()
}

// -----------------------------------------------------------------------------

// FuncDef is an AST node for a function.
type FuncDef struct {
	ASTBase

	Name   string
	Params []*Param

	// ReturnType is nil if the function returns nothing.
	ReturnType typing.DataType

	Body *Block
}

// Param represents a function parameter.
type Param struct {
	ASTBase

	Name    string
	Type    typing.DataType
	Mutable bool
}

func (*FuncDef) isDef() {}

// -----------------------------------------------------------------------------

// StructDef is an AST node for a struct definition.
type StructDef struct {
	ASTBase

	Name   string
	Fields []*StructField
}

// StructField is a single named field of a struct definition.
type StructField struct {
	ASTBase

	Name string
	Type typing.DataType
}

func (*StructDef) isDef() {}

// -----------------------------------------------------------------------------

// ImportDef is an AST node for an import declaration such as `import std::io`.
type ImportDef struct {
	ASTBase

	// Path is the list of `::` separated path segments.
	Path []string
}

func (*ImportDef) isDef() {}
