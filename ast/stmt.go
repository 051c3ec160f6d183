package ast

import "ember/typing"

// Stmt represents a statement within a function body.
type Stmt interface {
	Node

	isStmt()
}

// Block is a scoped block of statements delimited by braces.
type Block struct {
	ASTBase

	Stmts []Stmt
}

// LetStmt represents a variable declaration: `let T! name = expr`.
type LetStmt struct {
	ASTBase

	Name    string
	Type    typing.DataType
	Mutable bool
	Init    *Expression
}

// AssignStmt represents an assignment statement.  The target is a Variable,
// Attr or ArrayIndex.
type AssignStmt struct {
	ASTBase

	Target Expr
	Value  *Expression
}

// Conditional represents an if statement along with its else-if chain.  Else is
// either nil, a *Conditional (else if) or a *Block (plain else).
type Conditional struct {
	ASTBase

	Cond *Expression
	Then *Block
	Else Stmt
}

// Loop represents an unconditional loop (Cond is nil) or a conditional loop.
type Loop struct {
	ASTBase

	Cond *Expression
	Body *Block
}

// ForLoop represents a range loop: `loop range v, i = iterable { ... }`.
type ForLoop struct {
	ASTBase

	ElemVar, IndexVar string
	Iterable          *Expression
	Body              *Block
}

// Return represents a return statement.  Value is nil for a bare return.
type Return struct {
	ASTBase

	Value *Expression
}

// Break represents a break statement.
type Break struct {
	ASTBase
}

// ExprStmt is a call evaluated for its side effects.  Call is a FunctionCall,
// Method or ImportCall.
type ExprStmt struct {
	ASTBase

	Call Expr
}

func (*Block) isStmt()       {}
func (*LetStmt) isStmt()     {}
func (*AssignStmt) isStmt()  {}
func (*Conditional) isStmt() {}
func (*Loop) isStmt()        {}
func (*ForLoop) isStmt()     {}
func (*Return) isStmt()      {}
func (*Break) isStmt()       {}
func (*ExprStmt) isStmt()    {}
