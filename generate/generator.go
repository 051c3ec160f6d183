package generate

import (
	"ember/ast"
	"ember/report"
	"ember/resolve"
	"ember/typing"
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// Generator is responsible for converting the ember AST into LLVM IR.  It
// converts each source file into a single LLVM module.
type Generator struct {
	// mod is the LLVM module being generated.
	mod *ir.Module

	// resolver maps import calls to the runtime functions they call.
	resolver *resolve.Resolver

	// structs is the module's struct table.  It is append-only.
	structs map[string]*structEntry

	// funcs is the table of user defined functions.
	funcs map[string]*funcEntry

	// runtimeDecls stores the runtime functions that have been declared in the
	// module by their symbol.
	runtimeDecls map[string]*ir.Func

	// stringType stores the type used `string`: {i8*, i64}.
	stringType *types.StructType

	// strings maps string literal values to the globals storing their bytes.
	strings map[string]*ir.Global
}

// funcEntry is an entry in the function table.
type funcEntry struct {
	def *ast.FuncDef
	fn  *ir.Func
}

// Generate lowers a list of top-level definitions into an LLVM module.  The
// first semantic error aborts generation: no partial module is returned.
func Generate(defs []ast.Def) (mod *ir.Module, err error) {
	g := &Generator{
		mod:          ir.NewModule(),
		resolver:     resolve.NewResolver(),
		structs:      make(map[string]*structEntry),
		funcs:        make(map[string]*funcEntry),
		runtimeDecls: make(map[string]*ir.Func),
		strings:      make(map[string]*ir.Global),
	}

	defer report.CatchErrors(report.PhaseGenerate, &err)

	g.generate(defs)
	return g.mod, nil
}

// generate runs the main generation algorithm.  All globally visible names are
// declared before any function body is lowered so that definitions may appear
// in any order.
func (g *Generator) generate(defs []ast.Def) {
	g.stringType = types.NewStruct(types.I8Ptr, types.I64)
	g.mod.NewTypeDef("string", g.stringType)

	var structDefs []*ast.StructDef
	var funcDefs []*ast.FuncDef
	for _, def := range defs {
		switch v := def.(type) {
		case *ast.ImportDef:
			if !g.resolver.AddImport(v.Path) {
				g.error(v.Span(), "unknown import `%s`", joinPath(v.Path))
			}
		case *ast.StructDef:
			g.declareStruct(v)
			structDefs = append(structDefs, v)
		case *ast.FuncDef:
			funcDefs = append(funcDefs, v)
		}
	}

	// struct bodies may refer to structs defined after them
	for _, sd := range structDefs {
		g.defineStruct(sd)
	}

	for _, fd := range funcDefs {
		g.declareFunc(fd)
	}

	for _, fd := range funcDefs {
		g.genFuncBody(g.funcs[fd.Name])
	}
}

// -----------------------------------------------------------------------------

// error raises a generation error over the given span.
func (g *Generator) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(span, msg, args...))
}

// joinPath formats an import path as it is written in source.
func joinPath(path []string) string {
	s := path[0]
	for _, seg := range path[1:] {
		s += "::" + seg
	}

	return s
}

// describeType returns a printable name for a possibly nil data type.
func describeType(typ typing.DataType) string {
	if typ == nil {
		return "nothing"
	}

	return fmt.Sprintf("`%s`", typ.Repr())
}
