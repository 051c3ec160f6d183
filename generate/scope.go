package generate

import (
	"ember/ast"
	"ember/report"
	"ember/typing"
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// LLVMIdent is an entry in the variable table.  Every variable is stored in
// memory: Val is always the address of the variable.
type LLVMIdent struct {
	Val     value.Value
	Type    typing.DataType
	Mutable bool
}

// scope is a single level of the variable table.  Each function body starts a
// new root scope and each block opens a child scope.  The whole chain is
// dropped when the function's lowering returns.
type scope struct {
	parent *scope
	vars   map[string]*LLVMIdent
}

// newScope creates a new scope nested in parent.  parent may be nil.
func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]*LLVMIdent)}
}

// define declares a variable in the scope.  A variable with the same name in
// an enclosing scope or declared earlier in this scope is shadowed.
func (s *scope) define(name string, ident *LLVMIdent) {
	s.vars[name] = ident
}

// lookup looks up a variable by name starting from the innermost scope.
func (s *scope) lookup(name string) (*LLVMIdent, bool) {
	for ; s != nil; s = s.parent {
		if ident, ok := s.vars[name]; ok {
			return ident, true
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// loopContext is the loop state threaded through every lowering call.  It is
// nil outside of a loop.
type loopContext struct {
	// cont is the block that `break` branches to.
	cont *ir.Block
}

// -----------------------------------------------------------------------------

// funcContext holds the state of the function currently being lowered.
type funcContext struct {
	g *Generator

	def *ast.FuncDef
	fn  *ir.Func

	// entry is the function's entry block: all allocas are placed in it.
	entry *ir.Block

	// block is the block currently being generated.
	block *ir.Block

	// names counts the uses of each local name so that repeated roles get a
	// `.N` suffix.
	names map[string]int

	// preds counts the branches into each block.
	preds map[*ir.Block]int

	// nallocas is the number of allocas at the start of the entry block.
	nallocas int
}

// uniqueName returns a local name derived from name that has not been used in
// the function yet.
func (fc *funcContext) uniqueName(name string) string {
	n, ok := fc.names[name]
	fc.names[name] = n + 1

	if !ok {
		return name
	}

	return fmt.Sprintf("%s.%d", name, n)
}

// newBlock appends a new block with the given role to the current function.
// It does *not* set the current block to this new block.
func (fc *funcContext) newBlock(role string) *ir.Block {
	return fc.fn.NewBlock(fc.uniqueName(role))
}

// newDetachedBlock creates a new block which is not yet part of the function.
// This is used for continuation blocks so that they are placed after the
// blocks of the construct they continue.
func (fc *funcContext) newDetachedBlock(role string) *ir.Block {
	return ir.NewBlock(fc.uniqueName(role))
}

// enterContinuation attaches a continuation block to the function and makes it
// the current block.  A continuation that nothing branches to is unreachable
// and is terminated right away so that no code is lowered into it.
func (fc *funcContext) enterContinuation(block *ir.Block) {
	block.Parent = fc.fn
	fc.fn.Blocks = append(fc.fn.Blocks, block)

	fc.block = block
	if fc.preds[block] == 0 {
		block.NewUnreachable()
	}
}

// terminated returns whether the current block already has a terminator.
func (fc *funcContext) terminated() bool {
	return fc.block.Term != nil
}

// br branches from the current block to target unless the current block is
// already terminated.
func (fc *funcContext) br(target *ir.Block) {
	if fc.terminated() {
		return
	}

	fc.block.NewBr(target)
	fc.preds[target]++
}

// condBr terminates the current block with a conditional branch.
func (fc *funcContext) condBr(cond value.Value, ifTrue, ifFalse *ir.Block) {
	fc.block.NewCondBr(cond, ifTrue, ifFalse)
	fc.preds[ifTrue]++
	fc.preds[ifFalse]++
}

// alloca allocates storage for a variable of the given type in the entry
// block.  Allocas are kept together at the start of the entry block.
func (fc *funcContext) alloca(name string, typ typing.DataType, span *report.TextSpan) *ir.InstAlloca {
	alloca := ir.NewAlloca(fc.g.convType(typ, span))
	alloca.SetName(fc.uniqueName(name + ".addr"))

	insts := fc.entry.Insts
	insts = append(insts, nil)
	copy(insts[fc.nallocas+1:], insts[fc.nallocas:])
	insts[fc.nallocas] = alloca
	fc.entry.Insts = insts
	fc.nallocas++

	return alloca
}

// load loads a value of the given type from addr.
func (fc *funcContext) load(typ typing.DataType, addr value.Value) value.Value {
	return fc.block.NewLoad(fc.g.convType(typ, nil), addr)
}

// spill stores a value into a fresh temporary and returns its address.
func (fc *funcContext) spill(val value.Value, typ typing.DataType, span *report.TextSpan) value.Value {
	tmp := fc.alloca("tmp", typ, span)
	fc.block.NewStore(val, tmp)
	return tmp
}

// error raises a generation error over the given span.
func (fc *funcContext) error(span *report.TextSpan, msg string, args ...interface{}) {
	fc.g.error(span, msg, args...)
}
