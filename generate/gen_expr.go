package generate

import (
	"ember/ast"
	"ember/typing"
	"math"
	"math/big"
	"strconv"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genExpr lowers an expression tree.  expected is the type the surrounding
// context wants: it decides how untyped literals, struct literals and array
// literals are lowered.  It may be nil.  genExpr returns the value and its
// type, which may differ from expected.
func (fc *funcContext) genExpr(expr *ast.Expression, expected typing.DataType, sc *scope) (value.Value, typing.DataType) {
	if expr.IsLeaf() {
		return fc.genOperand(expr.Left, expected, sc)
	}

	return fc.genBinaryOp(expr, expected, sc)
}

// genOperand lowers a single operand.
func (fc *funcContext) genOperand(expr ast.Expr, expected typing.DataType, sc *scope) (value.Value, typing.DataType) {
	switch v := expr.(type) {
	case *ast.Expression:
		return fc.genExpr(v, expected, sc)
	case *ast.Literal:
		return fc.genLiteral(v, expected)
	case *ast.Variable, *ast.Attr, *ast.ArrayIndex:
		addr, typ, _ := fc.genAddr(v, sc)
		return fc.load(typ, addr), typ
	case *ast.FunctionCall, *ast.Method, *ast.ImportCall:
		return fc.genCall(v, sc, true)
	case *ast.Cast:
		return fc.genCast(v, sc)
	case *ast.StructLiteral:
		return fc.genStructLiteral(v, expected, sc)
	case *ast.ArrayLiteral:
		return fc.genArrayLiteral(v, expected, sc)
	}

	fc.error(expr.Span(), "invalid operand")
	return nil, nil
}

// typeOf infers the type of an expression without lowering it.  It returns nil
// for expressions whose type depends on their context: numeric literals as
// well as struct and array literals.
func (fc *funcContext) typeOf(expr ast.Expr, sc *scope) typing.DataType {
	switch v := expr.(type) {
	case *ast.Expression:
		if v.IsLeaf() {
			return fc.typeOf(v.Left, sc)
		} else if isComparison(v.Op.Kind) {
			return typing.PrimBool
		}

		if lt := fc.typeOf(v.Left, sc); lt != nil {
			return lt
		}

		return fc.typeOf(v.Right, sc)
	case *ast.Literal:
		switch v.Kind {
		case ast.LIT_BOOL:
			return typing.PrimBool
		case ast.LIT_STRING:
			return typing.PrimString
		}
	case *ast.Variable:
		if ident, ok := sc.lookup(v.Name); ok {
			return ident.Type
		}
	case *ast.FunctionCall:
		if fe, ok := fc.g.funcs[v.Name]; ok {
			return fe.def.ReturnType
		}
	case *ast.Method:
		if fe, ok := fc.g.funcs[v.Call.Name]; ok {
			return fe.def.ReturnType
		}
	case *ast.Attr:
		if st, ok := fc.typeOf(v.Parent, sc).(*typing.StructType); ok {
			if se, ok := fc.g.structs[st.Name]; ok {
				if ndx, ok := se.fieldIndices[v.Name]; ok {
					return se.fieldType(ndx)
				}
			}
		}
	case *ast.ArrayIndex:
		if at, ok := fc.typeOf(v.Parent, sc).(*typing.ArrayType); ok {
			return at.ElemType
		}
	case *ast.Cast:
		return v.Type
	}

	return nil
}

// -----------------------------------------------------------------------------

// genLiteral lowers a literal against the type expected of it.  Numeric
// literals with no expected type default to `i64` and `f64`.
func (fc *funcContext) genLiteral(lit *ast.Literal, expected typing.DataType) (value.Value, typing.DataType) {
	switch lit.Kind {
	case ast.LIT_BOOL:
		return constant.NewBool(lit.Text == "true"), typing.PrimBool
	case ast.LIT_STRING:
		return fc.g.genStringLit(lit.Text), typing.PrimString
	case ast.LIT_INT:
		if expected == nil {
			expected = typing.PrimI64
		}

		if typing.IsFloat(expected) {
			return fc.genFloatLit(lit, expected.(typing.PrimType)), expected
		} else if typing.IsInteger(expected) {
			return fc.genIntLit(lit, expected.(typing.PrimType)), expected
		}

		fc.error(lit.Span(), "cannot use integer literal as a value of type `%s`", expected.Repr())
	default:
		// ast.LIT_FLOAT
		if expected == nil {
			expected = typing.PrimF64
		}

		if typing.IsFloat(expected) {
			return fc.genFloatLit(lit, expected.(typing.PrimType)), expected
		}

		fc.error(lit.Span(), "cannot use float literal as a value of type `%s`", expected.Repr())
	}

	return nil, nil
}

// genIntLit lowers an integer literal as the integer type pt.  The literal must
// fit in the type.
func (fc *funcContext) genIntLit(lit *ast.Literal, pt typing.PrimType) value.Value {
	neg, mag, err := ast.ParseIntText(lit.Text)
	if err != nil {
		fc.error(lit.Span(), "integer literal `%s` is too large", lit.Text)
	}

	bits := uint(typing.BitSize(pt))

	x := new(big.Int).SetUint64(mag)
	if neg {
		x.Neg(x)
	}

	var min, max *big.Int
	if typing.IsSigned(pt) {
		min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), bits-1))
		max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits-1), big.NewInt(1))
	} else {
		min = big.NewInt(0)
		max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
	}

	if x.Cmp(min) < 0 || x.Cmp(max) > 0 {
		fc.error(lit.Span(), "integer literal `%s` does not fit in type `%s`", lit.Text, pt.Repr())
	}

	return &constant.Int{Typ: fc.g.convPrimType(pt).(*types.IntType), X: x}
}

// genFloatLit lowers a numeric literal as the float type pt.
func (fc *funcContext) genFloatLit(lit *ast.Literal, pt typing.PrimType) value.Value {
	var x float64
	if lit.Kind == ast.LIT_INT {
		neg, mag, err := ast.ParseIntText(lit.Text)
		if err != nil {
			fc.error(lit.Span(), "integer literal `%s` is too large", lit.Text)
		}

		x = float64(mag)
		if neg {
			x = -x
		}
	} else {
		var err error
		if x, err = strconv.ParseFloat(lit.Text, 64); err != nil {
			fc.error(lit.Span(), "invalid float literal `%s`", lit.Text)
		}
	}

	if pt == typing.PrimF32 {
		if math.Abs(x) > math.MaxFloat32 {
			fc.error(lit.Span(), "float literal `%s` does not fit in type `f32`", lit.Text)
		}

		return constant.NewFloat(types.Float, float64(float32(x)))
	}

	return constant.NewFloat(types.Double, x)
}

// genStringLit returns a constant string value.  The bytes of each distinct
// string are stored once in a NUL-terminated global.
func (g *Generator) genStringLit(text string) value.Value {
	glob, ok := g.strings[text]
	if !ok {
		glob = g.mod.NewGlobalDef(
			"__strlit."+strconv.Itoa(len(g.strings)),
			constant.NewCharArrayFromString(text+"\x00"),
		)
		glob.Immutable = true

		g.strings[text] = glob
	}

	bytesPtr := constant.NewGetElementPtr(
		glob.ContentType,
		glob,
		constant.NewInt(types.I64, 0),
		constant.NewInt(types.I64, 0),
	)

	return constant.NewStruct(g.stringType, bytesPtr, constant.NewInt(types.I64, int64(len(text))))
}

// -----------------------------------------------------------------------------

// genCast lowers a type cast between numeric and boolean types.
func (fc *funcContext) genCast(cast *ast.Cast, sc *scope) (value.Value, typing.DataType) {
	// untyped literals are lowered with their default type
	srcVal, srcType := fc.genOperand(cast.Src, fc.typeOf(cast.Src, sc), sc)
	dstType := cast.Type

	if typing.Equals(srcType, dstType) {
		return srcVal, dstType
	}

	dstLL := fc.g.convType(dstType, cast.Span())
	srcBits, dstBits := typing.BitSize(srcType), typing.BitSize(dstType)

	switch {
	case typing.IsInteger(srcType) && typing.IsInteger(dstType):
		if srcBits > dstBits {
			return fc.block.NewTrunc(srcVal, dstLL), dstType
		} else if srcBits < dstBits {
			if typing.IsSigned(srcType) {
				return fc.block.NewSExt(srcVal, dstLL), dstType
			}

			return fc.block.NewZExt(srcVal, dstLL), dstType
		}

		// same size: only the interpretation of the bits changes
		return srcVal, dstType
	case typing.IsInteger(srcType) && typing.IsFloat(dstType):
		if typing.IsSigned(srcType) {
			return fc.block.NewSIToFP(srcVal, dstLL), dstType
		}

		return fc.block.NewUIToFP(srcVal, dstLL), dstType
	case typing.IsFloat(srcType) && typing.IsInteger(dstType):
		if typing.IsSigned(dstType) {
			return fc.block.NewFPToSI(srcVal, dstLL), dstType
		}

		return fc.block.NewFPToUI(srcVal, dstLL), dstType
	case typing.IsFloat(srcType) && typing.IsFloat(dstType):
		if srcBits < dstBits {
			return fc.block.NewFPExt(srcVal, dstLL), dstType
		}

		return fc.block.NewFPTrunc(srcVal, dstLL), dstType
	case typing.IsBool(srcType) && typing.IsInteger(dstType):
		return fc.block.NewZExt(srcVal, dstLL), dstType
	case typing.IsBool(srcType) && typing.IsFloat(dstType):
		return fc.block.NewUIToFP(srcVal, dstLL), dstType
	case typing.IsInteger(srcType) && typing.IsBool(dstType):
		return fc.block.NewICmp(enum.IPredNE, srcVal, zeroOf(srcVal.Type())), dstType
	case typing.IsFloat(srcType) && typing.IsBool(dstType):
		return fc.block.NewFCmp(enum.FPredUNE, srcVal, zeroOf(srcVal.Type())), dstType
	}

	fc.error(cast.Span(), "cannot cast %s to `%s`", describeType(srcType), dstType.Repr())
	return nil, nil
}
