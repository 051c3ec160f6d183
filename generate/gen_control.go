package generate

import (
	"ember/ast"
	"ember/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genConditional lowers an if/else-if/else chain.  Every level of the chain
// shares the same continuation block.
func (fc *funcContext) genConditional(cond *ast.Conditional, sc *scope, lc *loopContext) {
	cont := fc.newDetachedBlock("if_cont")

	fc.genCondBranch(cond, sc, lc, cont)

	fc.enterContinuation(cont)
}

// genCondBranch lowers one level of a conditional chain.  If there is no else,
// the continuation block itself is the else target.
func (fc *funcContext) genCondBranch(cond *ast.Conditional, sc *scope, lc *loopContext, cont *ir.Block) {
	condVal := fc.genCond(cond.Cond, sc)

	thenBlock := fc.newBlock("then")

	var elseBlock *ir.Block
	if cond.Else == nil {
		elseBlock = cont
	} else {
		elseBlock = fc.newBlock("else")
	}

	fc.condBr(condVal, thenBlock, elseBlock)

	fc.block = thenBlock
	fc.genBlock(cond.Then, sc, lc)
	fc.br(cont)

	// translate `else if` into a conditional nested in the else block
	switch v := cond.Else.(type) {
	case *ast.Conditional:
		fc.block = elseBlock
		fc.genCondBranch(v, sc, lc, cont)
	case *ast.Block:
		fc.block = elseBlock
		fc.genBlock(v, sc, lc)
		fc.br(cont)
	}
}

// genCond lowers a condition, which must be a boolean.
func (fc *funcContext) genCond(expr *ast.Expression, sc *scope) value.Value {
	val, typ := fc.genExpr(expr, typing.PrimBool, sc)
	if !typing.IsBool(typ) {
		fc.error(expr.Span(), "condition must be of type `bool` but got %s", describeType(typ))
	}

	return val
}

// -----------------------------------------------------------------------------

// genLoop lowers an unconditional or a conditional loop.  The condition of a
// conditional loop is evaluated in an init block entered before the first
// iteration and at the end of every iteration.
func (fc *funcContext) genLoop(loop *ast.Loop, sc *scope) {
	var loopTop, body *ir.Block
	if loop.Cond == nil {
		body = fc.newBlock("loop")
		loopTop = body
	} else {
		loopTop = fc.newBlock("loop_init")
		body = fc.newBlock("loop")
	}

	cont := fc.newDetachedBlock("loop_cont")

	fc.br(loopTop)

	if loop.Cond != nil {
		fc.block = loopTop
		condVal := fc.genCond(loop.Cond, sc)
		fc.condBr(condVal, body, cont)
	}

	fc.block = body
	fc.genBlock(loop.Body, sc, &loopContext{cont: cont})
	fc.br(loopTop)

	fc.enterContinuation(cont)
}

// genForLoop lowers a range loop over an array.  A hidden counter indexes the
// array: it is checked against the array's length in the init block and
// incremented in the cond block at the end of each iteration.
func (fc *funcContext) genForLoop(loop *ast.ForLoop, sc *scope) {
	arrAddr, arrType := fc.genIterable(loop.Iterable, sc)

	counter := fc.alloca("for_idx", typing.PrimU64, loop.Span())
	fc.block.NewStore(constant.NewInt(types.I64, 0), counter)

	initBlock := fc.newBlock("for_init")
	bodyBlock := fc.newBlock("for_body")
	condBlock := fc.newBlock("for_cond")
	cont := fc.newDetachedBlock("for_cont")

	fc.br(initBlock)

	// bounds check
	fc.block = initBlock
	ndx := fc.block.NewLoad(types.I64, counter)
	inBounds := fc.block.NewICmp(enum.IPredULT, ndx, constant.NewInt(types.I64, int64(arrType.Len)))
	fc.condBr(inBounds, bodyBlock, cont)

	// bind the index and element for the duration of the body
	fc.block = bodyBlock
	bodyScope := newScope(sc)

	ndx = fc.block.NewLoad(types.I64, counter)
	ndxAddr := fc.alloca(loop.IndexVar, typing.PrimU64, loop.Span())
	fc.block.NewStore(ndx, ndxAddr)
	bodyScope.define(loop.IndexVar, &LLVMIdent{Val: ndxAddr, Type: typing.PrimU64})

	elemAddr := fc.block.NewGetElementPtr(
		fc.g.convType(arrType, nil),
		arrAddr,
		constant.NewInt(types.I64, 0),
		ndx,
	)
	bodyScope.define(loop.ElemVar, &LLVMIdent{Val: elemAddr, Type: arrType.ElemType})

	fc.genBlock(loop.Body, bodyScope, &loopContext{cont: cont})
	fc.br(condBlock)

	// increment
	fc.block = condBlock
	ndx = fc.block.NewLoad(types.I64, counter)
	fc.block.NewStore(fc.block.NewAdd(ndx, constant.NewInt(types.I64, 1)), counter)
	fc.br(initBlock)

	fc.enterContinuation(cont)
}

// genIterable returns the address and type of the array a range loop iterates
// over.
func (fc *funcContext) genIterable(iterable *ast.Expression, sc *scope) (value.Value, *typing.ArrayType) {
	var addr value.Value
	var typ typing.DataType
	if iterable.IsLeaf() && isAddressable(iterable.Left) {
		addr, typ, _ = fc.genAddr(iterable.Left, sc)
	} else {
		var val value.Value
		val, typ = fc.genExpr(iterable, nil, sc)
		addr = fc.spill(val, typ, iterable.Span())
	}

	at, ok := typ.(*typing.ArrayType)
	if !ok {
		fc.error(iterable.Span(), "cannot range over a value of type %s", describeType(typ))
	}

	return addr, at
}
