package generate

import (
	"ember/report"
	"ember/typing"

	"github.com/llir/llvm/ir/types"
)

// convType converts an ember data type into its LLVM type.  span is used to
// report references to undefined structs.
func (g *Generator) convType(typ typing.DataType, span *report.TextSpan) types.Type {
	switch v := typ.(type) {
	case typing.PrimType:
		return g.convPrimType(v)
	case *typing.ArrayType:
		return types.NewArray(uint64(v.Len), g.convType(v.ElemType, span))
	case *typing.StructType:
		if se, ok := g.structs[v.Name]; ok {
			return se.llType
		}

		g.error(span, "undefined struct `%s`", v.Name)
	}

	// nil is the return type of functions returning nothing
	return types.Void
}

func (g *Generator) convPrimType(pt typing.PrimType) types.Type {
	switch pt {
	case typing.PrimI8, typing.PrimU8:
		return types.I8
	case typing.PrimI16, typing.PrimU16:
		return types.I16
	case typing.PrimI32, typing.PrimU32:
		return types.I32
	case typing.PrimI64, typing.PrimU64:
		return types.I64
	case typing.PrimF32:
		return types.Float
	case typing.PrimF64:
		return types.Double
	case typing.PrimBool:
		return types.I1
	default:
		// PrimString
		return g.stringType
	}
}
