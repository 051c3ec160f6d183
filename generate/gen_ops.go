package generate

import (
	"ember/ast"
	"ember/typing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// isComparison returns whether an operator kind is one of the six relational
// operators.
func isComparison(opKind int) bool {
	return ast.OP_EQ <= opKind && opKind <= ast.OP_GTEQ
}

// isBitwise returns whether an operator kind is a bitwise or shift operator.
func isBitwise(opKind int) bool {
	return ast.OP_BWAND <= opKind && opKind <= ast.OP_RSHIFT
}

// genBinaryOp lowers a binary operator application.  Both operands must have
// the same type.  The operand type is taken from whichever operand has an
// inferable type; if neither does, arithmetic takes the expected type and
// comparisons fall back to the literals' default types.
func (fc *funcContext) genBinaryOp(expr *ast.Expression, expected typing.DataType, sc *scope) (value.Value, typing.DataType) {
	op := expr.Op

	operandType := fc.typeOf(expr.Left, sc)
	if operandType == nil {
		operandType = fc.typeOf(expr.Right, sc)
	}

	if operandType == nil && !isComparison(op.Kind) {
		operandType = expected
	}

	lhs, lhsType := fc.genOperand(expr.Left, operandType, sc)
	if operandType == nil {
		operandType = lhsType
	}

	rhs, rhsType := fc.genOperand(expr.Right, operandType, sc)

	if !typing.Equals(lhsType, rhsType) {
		fc.error(op.Span, "mismatched operand types for `%s`: %s and %s", op.Name, describeType(lhsType), describeType(rhsType))
	}

	switch {
	case isComparison(op.Kind):
		return fc.genComparison(op, lhs, rhs, lhsType), typing.PrimBool
	case isBitwise(op.Kind):
		return fc.genBitwiseOp(op, lhs, rhs, lhsType), lhsType
	default:
		return fc.genArithOp(op, lhs, rhs, lhsType), lhsType
	}
}

// genArithOp lowers an arithmetic operator.  Division and remainder are signed
// or unsigned depending on the operand type.
func (fc *funcContext) genArithOp(op *ast.Oper, lhs, rhs value.Value, typ typing.DataType) value.Value {
	if typing.IsFloat(typ) {
		switch op.Kind {
		case ast.OP_ADD:
			return fc.block.NewFAdd(lhs, rhs)
		case ast.OP_SUB:
			return fc.block.NewFSub(lhs, rhs)
		case ast.OP_MUL:
			return fc.block.NewFMul(lhs, rhs)
		case ast.OP_DIV:
			return fc.block.NewFDiv(lhs, rhs)
		case ast.OP_MOD:
			return fc.block.NewFRem(lhs, rhs)
		}
	} else if typing.IsInteger(typ) {
		signed := typing.IsSigned(typ)

		switch op.Kind {
		case ast.OP_ADD:
			return fc.block.NewAdd(lhs, rhs)
		case ast.OP_SUB:
			return fc.block.NewSub(lhs, rhs)
		case ast.OP_MUL:
			return fc.block.NewMul(lhs, rhs)
		case ast.OP_DIV:
			if signed {
				return fc.block.NewSDiv(lhs, rhs)
			}

			return fc.block.NewUDiv(lhs, rhs)
		case ast.OP_MOD:
			if signed {
				return fc.block.NewSRem(lhs, rhs)
			}

			return fc.block.NewURem(lhs, rhs)
		}
	}

	fc.error(op.Span, "operator `%s` is not defined for type %s", op.Name, describeType(typ))
	return nil
}

// intPreds maps comparison operators to their signed and unsigned integer
// predicates.
var intPreds = map[int][2]enum.IPred{
	ast.OP_EQ:   {enum.IPredEQ, enum.IPredEQ},
	ast.OP_NEQ:  {enum.IPredNE, enum.IPredNE},
	ast.OP_LT:   {enum.IPredSLT, enum.IPredULT},
	ast.OP_GT:   {enum.IPredSGT, enum.IPredUGT},
	ast.OP_LTEQ: {enum.IPredSLE, enum.IPredULE},
	ast.OP_GTEQ: {enum.IPredSGE, enum.IPredUGE},
}

// floatPreds maps comparison operators to ordered float predicates.
var floatPreds = map[int]enum.FPred{
	ast.OP_EQ:   enum.FPredOEQ,
	ast.OP_NEQ:  enum.FPredONE,
	ast.OP_LT:   enum.FPredOLT,
	ast.OP_GT:   enum.FPredOGT,
	ast.OP_LTEQ: enum.FPredOLE,
	ast.OP_GTEQ: enum.FPredOGE,
}

// genComparison lowers a comparison operator.  Booleans only support equality.
func (fc *funcContext) genComparison(op *ast.Oper, lhs, rhs value.Value, typ typing.DataType) value.Value {
	switch {
	case typing.IsFloat(typ):
		return fc.block.NewFCmp(floatPreds[op.Kind], lhs, rhs)
	case typing.IsInteger(typ):
		preds := intPreds[op.Kind]
		if typing.IsSigned(typ) {
			return fc.block.NewICmp(preds[0], lhs, rhs)
		}

		return fc.block.NewICmp(preds[1], lhs, rhs)
	case typing.IsBool(typ) && (op.Kind == ast.OP_EQ || op.Kind == ast.OP_NEQ):
		return fc.block.NewICmp(intPreds[op.Kind][0], lhs, rhs)
	}

	fc.error(op.Span, "operator `%s` is not defined for type %s", op.Name, describeType(typ))
	return nil
}

// genBitwiseOp lowers a bitwise or shift operator.  These are only defined for
// integers.  Right shifts are arithmetic for signed types and logical for
// unsigned types.
func (fc *funcContext) genBitwiseOp(op *ast.Oper, lhs, rhs value.Value, typ typing.DataType) value.Value {
	if !typing.IsInteger(typ) {
		fc.error(op.Span, "bitwise operator `%s` requires integer operands but got %s", op.Name, describeType(typ))
	}

	switch op.Kind {
	case ast.OP_BWAND:
		return fc.block.NewAnd(lhs, rhs)
	case ast.OP_BWOR:
		return fc.block.NewOr(lhs, rhs)
	case ast.OP_BWXOR:
		return fc.block.NewXor(lhs, rhs)
	case ast.OP_LSHIFT:
		return fc.block.NewShl(lhs, rhs)
	default:
		// ast.OP_RSHIFT
		if typing.IsSigned(typ) {
			return fc.block.NewAShr(lhs, rhs)
		}

		return fc.block.NewLShr(lhs, rhs)
	}
}

// zeroOf returns the zero value of an LLVM type.
func zeroOf(typ types.Type) constant.Constant {
	switch v := typ.(type) {
	case *types.IntType:
		return constant.NewInt(v, 0)
	case *types.FloatType:
		return constant.NewFloat(v, 0)
	}

	return constant.NewZeroInitializer(typ)
}
