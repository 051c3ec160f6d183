package generate

import (
	"ember/ast"
	"ember/typing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// isAddressable returns whether an expression is an access chain rooted in a
// variable and thus has an address of its own.
func isAddressable(expr ast.Expr) bool {
	switch v := expr.(type) {
	case *ast.Variable:
		return true
	case *ast.Attr:
		return isAddressable(v.Parent)
	case *ast.ArrayIndex:
		return isAddressable(v.Parent)
	}

	return false
}

// genAddr computes the address of an access chain.  Each hop of the chain
// replaces the working address with the address of a field or element within
// it.  It returns the address, the type stored there and the variable the chain
// is rooted in.  The root is nil if the chain starts from a temporary value
// such as the result of a call: that value is spilled to memory first.
func (fc *funcContext) genAddr(expr ast.Expr, sc *scope) (value.Value, typing.DataType, *LLVMIdent) {
	switch v := expr.(type) {
	case *ast.Variable:
		ident, ok := sc.lookup(v.Name)
		if !ok {
			fc.error(v.Span(), "undefined variable `%s`", v.Name)
		}

		return ident.Val, ident.Type, ident
	case *ast.Attr:
		parentAddr, parentType, root := fc.genAddr(v.Parent, sc)

		st, ok := parentType.(*typing.StructType)
		if !ok {
			fc.error(v.Span(), "type %s has no field `%s`", describeType(parentType), v.Name)
		}

		se := fc.g.structs[st.Name]
		ndx, ok := se.fieldIndices[v.Name]
		if !ok {
			fc.error(v.Span(), "struct `%s` has no field named `%s`", st.Name, v.Name)
		}

		fieldAddr := fc.block.NewGetElementPtr(
			se.llType,
			parentAddr,
			constant.NewInt(types.I32, 0),
			constant.NewInt(types.I32, int64(ndx)),
		)

		return fieldAddr, se.fieldType(ndx), root
	case *ast.ArrayIndex:
		parentAddr, parentType, root := fc.genAddr(v.Parent, sc)

		at, ok := parentType.(*typing.ArrayType)
		if !ok {
			fc.error(v.Span(), "cannot index a value of type %s", describeType(parentType))
		}

		ndx := fc.genIndex(v.Index, at, sc)

		elemAddr := fc.block.NewGetElementPtr(
			fc.g.convType(at, v.Span()),
			parentAddr,
			constant.NewInt(types.I64, 0),
			ndx,
		)

		return elemAddr, at.ElemType, root
	default:
		val, typ := fc.genOperand(expr, nil, sc)
		if typ == nil {
			fc.error(expr.Span(), "call to function returning nothing used as a value")
		}

		return fc.spill(val, typ, expr.Span()), typ, nil
	}
}

// genIndex lowers an array index as an `i64`.  Constant indices are checked
// against the length of the array.
func (fc *funcContext) genIndex(index *ast.Expression, at *typing.ArrayType, sc *scope) value.Value {
	ndx, ndxType := fc.genExpr(index, nil, sc)
	if !typing.IsInteger(ndxType) {
		fc.error(index.Span(), "array index must be an integer but got %s", describeType(ndxType))
	}

	if c, ok := ndx.(*constant.Int); ok {
		if c.X.Sign() < 0 || !c.X.IsInt64() || c.X.Int64() >= int64(at.Len) {
			fc.error(index.Span(), "index %s is out of bounds for `%s`", c.X.String(), at.Repr())
		}
	}

	switch bits := typing.BitSize(ndxType); {
	case bits == 64:
		return ndx
	case typing.IsSigned(ndxType):
		return fc.block.NewSExt(ndx, types.I64)
	default:
		return fc.block.NewZExt(ndx, types.I64)
	}
}

// -----------------------------------------------------------------------------

// genStructLiteral lowers a struct literal as a value of the expected struct
// type.  Every field must be initialized exactly once; the order of the
// initializers does not matter.
func (fc *funcContext) genStructLiteral(lit *ast.StructLiteral, expected typing.DataType, sc *scope) (value.Value, typing.DataType) {
	st, ok := expected.(*typing.StructType)
	if !ok {
		fc.error(lit.Span(), "struct literal cannot be used as a value of type %s", describeType(expected))
	}

	se, ok := fc.g.structs[st.Name]
	if !ok {
		fc.error(lit.Span(), "undefined struct `%s`", st.Name)
	}

	if len(lit.Fields) != len(se.def.Fields) {
		fc.error(
			lit.Span(),
			"struct `%s` has %d fields but %d were initialized",
			st.Name,
			len(se.def.Fields),
			len(lit.Fields),
		)
	}

	var agg value.Value = constant.NewZeroInitializer(se.llType)
	initialized := make(map[string]struct{})
	for _, field := range lit.Fields {
		ndx, ok := se.fieldIndices[field.Name]
		if !ok {
			fc.error(field.Span(), "struct `%s` has no field named `%s`", st.Name, field.Name)
		} else if _, ok := initialized[field.Name]; ok {
			fc.error(field.Span(), "field `%s` initialized multiple times", field.Name)
		}

		initialized[field.Name] = struct{}{}

		fieldVal := fc.genExprAs(field.Value, se.fieldType(ndx), sc)
		agg = fc.block.NewInsertValue(agg, fieldVal, uint64(ndx))
	}

	return agg, st
}

// genArrayLiteral lowers an array literal as a value of the expected array
// type.  The number of elements must match the length of the type.
func (fc *funcContext) genArrayLiteral(lit *ast.ArrayLiteral, expected typing.DataType, sc *scope) (value.Value, typing.DataType) {
	at, ok := expected.(*typing.ArrayType)
	if !ok {
		fc.error(lit.Span(), "array literal cannot be used as a value of type %s", describeType(expected))
	}

	if len(lit.Elems) != at.Len {
		fc.error(lit.Span(), "array literal has %d elements but `%s` has %d", len(lit.Elems), at.Repr(), at.Len)
	}

	var agg value.Value = constant.NewZeroInitializer(fc.g.convType(at, lit.Span()))
	for i, elem := range lit.Elems {
		elemVal := fc.genExprAs(elem, at.ElemType, sc)
		agg = fc.block.NewInsertValue(agg, elemVal, uint64(i))
	}

	return agg, at
}
