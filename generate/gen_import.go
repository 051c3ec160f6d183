package generate

import (
	"ember/ast"
	"ember/report"
	"ember/resolve"
	"ember/typing"
	"ember/util"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genCall lowers a function call, method call or import call.  needValue
// indicates whether the result of the call is used: calls to functions that
// return nothing cannot be used as values.
func (fc *funcContext) genCall(call ast.Expr, sc *scope, needValue bool) (value.Value, typing.DataType) {
	var result value.Value
	var rtType typing.DataType

	switch v := call.(type) {
	case *ast.FunctionCall:
		if fe, ok := fc.g.funcs[v.Name]; ok {
			args := fc.genArgs(fe, v, nil, sc)
			result, rtType = fc.block.NewCall(fe.fn, args...), fe.def.ReturnType
		} else if rf, ok := fc.g.resolver.Resolve(nil, v.Name); ok {
			result = fc.genRuntimeCall(rf, v, sc)
		} else {
			fc.error(v.Span(), "undefined function `%s`", v.Name)
		}
	case *ast.Method:
		// `recv.f(args)` is a call to `f` with the receiver as its first
		// argument
		fe, ok := fc.g.funcs[v.Call.Name]
		if !ok {
			fc.error(v.Call.Span(), "undefined function `%s`", v.Call.Name)
		}

		args := fc.genArgs(fe, v.Call, v.Receiver, sc)
		result, rtType = fc.block.NewCall(fe.fn, args...), fe.def.ReturnType
	case *ast.ImportCall:
		rf, ok := fc.g.resolver.Resolve(v.Path, v.Call.Name)
		if !ok {
			fc.error(v.Span(), "unresolved import call `%s::%s`", joinPath(v.Path), v.Call.Name)
		}

		result = fc.genRuntimeCall(rf, v.Call, sc)
	}

	if needValue && rtType == nil {
		fc.error(call.Span(), "call to function returning nothing used as a value")
	}

	return result, rtType
}

// genArgs lowers the arguments of a call to a user defined function.  recv is
// the receiver of a method call or nil.
func (fc *funcContext) genArgs(fe *funcEntry, call *ast.FunctionCall, recv ast.Expr, sc *scope) []value.Value {
	params := fe.def.Params

	nargs := len(call.Args)
	if recv != nil {
		nargs++
	}

	if nargs != len(params) {
		fc.error(call.Span(), "function `%s` expects %d arguments but got %d", fe.def.Name, len(params), nargs)
	}

	var args []value.Value
	if recv != nil {
		recvVal, recvType := fc.genOperand(recv, params[0].Type, sc)
		if !typing.Equals(recvType, params[0].Type) {
			fc.error(recv.Span(), "expected a receiver of type `%s` but got %s", params[0].Type.Repr(), describeType(recvType))
		}

		args = append(args, recvVal)
		params = params[1:]
	}

	for i, arg := range call.Args {
		args = append(args, fc.genExprAs(arg, params[i].Type, sc))
	}

	return args
}

// -----------------------------------------------------------------------------

// genRuntimeCall lowers a call to a runtime function.  Strings are passed to
// the runtime as a pointer to their bytes.
func (fc *funcContext) genRuntimeCall(rf *resolve.RuntimeFunc, call *ast.FunctionCall, sc *scope) value.Value {
	if len(call.Args) != len(rf.Params) {
		fc.error(call.Span(), "function `%s` expects %d arguments but got %d", rf.Name(), len(rf.Params), len(call.Args))
	}

	var args []value.Value
	for i, arg := range call.Args {
		argVal := fc.genExprAs(arg, rf.Params[i], sc)

		if rf.Params[i] == typing.PrimString {
			argVal = fc.block.NewExtractValue(argVal, 0)
		}

		args = append(args, argVal)
	}

	return fc.block.NewCall(fc.g.declareRuntime(rf, call.Span()), args...)
}

// declareRuntime declares a runtime function in the module if it has not
// already been declared.
func (g *Generator) declareRuntime(rf *resolve.RuntimeFunc, span *report.TextSpan) *ir.Func {
	if fn, ok := g.runtimeDecls[rf.Symbol()]; ok {
		return fn
	}

	params := util.Map(rf.Params, func(ptyp typing.DataType) *ir.Param {
		if ptyp == typing.PrimString {
			return ir.NewParam("", types.I8Ptr)
		}

		return ir.NewParam("", g.convType(ptyp, span))
	})

	fn := g.mod.NewFunc(rf.Symbol(), types.Void, params...)
	fn.Linkage = enum.LinkageExternal
	fn.FuncAttrs = append(fn.FuncAttrs, enum.FuncAttrNoUnwind)

	g.runtimeDecls[rf.Symbol()] = fn
	return fn
}
