package generate

import (
	"ember/ast"
	"ember/report"
	"ember/util"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
)

// declareFunc adds the signature of a function to the module and the function
// table.
func (g *Generator) declareFunc(fd *ast.FuncDef) {
	if _, ok := g.funcs[fd.Name]; ok {
		g.error(fd.Span(), "multiple functions named `%s`", fd.Name)
	}

	params := util.Map(fd.Params, func(param *ast.Param) *ir.Param {
		return ir.NewParam(param.Name, g.convType(param.Type, param.Span()))
	})

	llvmFunc := g.mod.NewFunc(fd.Name, g.convType(fd.ReturnType, fd.Span()), params...)

	// ember does not use exceptions in any form and thus all functions are
	// marked `nounwind`
	llvmFunc.FuncAttrs = append(llvmFunc.FuncAttrs, enum.FuncAttrNoUnwind)

	g.funcs[fd.Name] = &funcEntry{def: fd, fn: llvmFunc}
}

// genFuncBody lowers the body of a declared function.  The function's variable
// table only lives for the duration of this call.
func (g *Generator) genFuncBody(fe *funcEntry) {
	fc := &funcContext{
		g:     g,
		def:   fe.def,
		fn:    fe.fn,
		names: make(map[string]int),
		preds: make(map[*ir.Block]int),
	}

	for _, param := range fe.def.Params {
		fc.names[param.Name]++
	}

	fc.entry = fc.newBlock("entry")
	fc.block = fc.entry

	// parameters are copied into allocas so they can be addressed like any
	// other variable
	params := newScope(nil)
	for i, param := range fe.def.Params {
		addr := fc.alloca(param.Name, param.Type, param.Span())
		fc.block.NewStore(fe.fn.Params[i], addr)

		params.define(param.Name, &LLVMIdent{
			Val:     addr,
			Type:    param.Type,
			Mutable: param.Mutable,
		})
	}

	fc.genBlock(fe.def.Body, params, nil)

	if !fc.terminated() {
		if fe.def.ReturnType != nil {
			fc.error(endOf(fe.def.Body.Span()), "missing return statement in function `%s`", fe.def.Name)
		}

		fc.block.NewRet(nil)
	}
}

// endOf returns a span over the last character of span.
func endOf(span *report.TextSpan) *report.TextSpan {
	if span == nil {
		return nil
	}

	return &report.TextSpan{
		StartLine: span.EndLine,
		StartCol:  span.EndCol,
		EndLine:   span.EndLine,
		EndCol:    span.EndCol,
	}
}
