package generate

import (
	"ember/ast"
	"ember/typing"

	"github.com/llir/llvm/ir/value"
)

// genBlock lowers a block of statements in a new child scope of sc.  Lowering
// stops at the first statement that terminates the current block: anything
// after it can never run.
func (fc *funcContext) genBlock(block *ast.Block, sc *scope, lc *loopContext) {
	blockScope := newScope(sc)

	for _, stmt := range block.Stmts {
		if fc.terminated() {
			break
		}

		fc.genStmt(stmt, blockScope, lc)
	}
}

// genStmt lowers a single statement.
func (fc *funcContext) genStmt(stmt ast.Stmt, sc *scope, lc *loopContext) {
	switch v := stmt.(type) {
	case *ast.Block:
		fc.genBlock(v, sc, lc)
	case *ast.LetStmt:
		fc.genLetStmt(v, sc)
	case *ast.AssignStmt:
		fc.genAssignStmt(v, sc)
	case *ast.Conditional:
		fc.genConditional(v, sc, lc)
	case *ast.Loop:
		fc.genLoop(v, sc)
	case *ast.ForLoop:
		fc.genForLoop(v, sc)
	case *ast.Return:
		fc.genReturn(v, sc)
	case *ast.Break:
		if lc == nil {
			fc.error(v.Span(), "break statement outside of loop")
		}

		fc.br(lc.cont)
	case *ast.ExprStmt:
		fc.genCall(v.Call, sc, false)
	}
}

// -----------------------------------------------------------------------------

// genLetStmt lowers a variable declaration.  The initializer is lowered before
// the variable is declared so it may refer to a variable it shadows.
func (fc *funcContext) genLetStmt(let *ast.LetStmt, sc *scope) {
	init := fc.genExprAs(let.Init, let.Type, sc)

	addr := fc.alloca(let.Name, let.Type, let.Span())
	fc.block.NewStore(init, addr)

	sc.define(let.Name, &LLVMIdent{
		Val:     addr,
		Type:    let.Type,
		Mutable: let.Mutable,
	})
}

// genAssignStmt lowers an assignment.  Assigning to a variable requires it to
// be mutable; assigning through a field or index chain requires the chain's
// root variable to be mutable.
func (fc *funcContext) genAssignStmt(assign *ast.AssignStmt, sc *scope) {
	addr, typ, root := fc.genAddr(assign.Target, sc)

	switch target := assign.Target.(type) {
	case *ast.Variable:
		if !root.Mutable {
			fc.error(target.Span(), "cannot assign to immutable variable `%s`", target.Name)
		}
	default:
		if root == nil {
			fc.error(target.Span(), "cannot assign to a temporary value")
		} else if !root.Mutable {
			fc.error(target.Span(), "cannot assign through immutable variable `%s`", rootName(target))
		}
	}

	val := fc.genExprAs(assign.Value, typ, sc)
	fc.block.NewStore(val, addr)
}

// rootName returns the name of the variable at the root of an access chain.
func rootName(expr ast.Expr) string {
	for {
		switch v := expr.(type) {
		case *ast.Variable:
			return v.Name
		case *ast.Attr:
			expr = v.Parent
		case *ast.ArrayIndex:
			expr = v.Parent
		default:
			return ""
		}
	}
}

// genReturn lowers a return statement.
func (fc *funcContext) genReturn(ret *ast.Return, sc *scope) {
	rtType := fc.def.ReturnType

	if ret.Value == nil {
		if rtType != nil {
			fc.error(ret.Span(), "function `%s` must return a value of type `%s`", fc.def.Name, rtType.Repr())
		}

		fc.block.NewRet(nil)
		return
	}

	if rtType == nil {
		fc.error(ret.Value.Span(), "function `%s` does not return a value", fc.def.Name)
	}

	fc.block.NewRet(fc.genExprAs(ret.Value, rtType, sc))
}

// genExprAs lowers an expression which must have the given type.
func (fc *funcContext) genExprAs(expr *ast.Expression, typ typing.DataType, sc *scope) value.Value {
	val, valType := fc.genExpr(expr, typ, sc)
	if !typing.Equals(valType, typ) {
		fc.error(expr.Span(), "expected a value of type `%s` but got %s", typ.Repr(), describeType(valType))
	}

	return val
}
