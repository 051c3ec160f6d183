package syntax

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"ember/ast"
	"ember/report"
	"ember/typing"

	"github.com/nalgeon/be"
)

// sexpr renders an expression tree in a compact prefix form so that tree shape
// can be compared as a string.
func sexpr(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Expression:
		if v.IsLeaf() {
			return sexpr(v.Left)
		}

		return fmt.Sprintf("(%s %s %s)", v.Op.Name, sexpr(v.Left), sexpr(v.Right))
	case *ast.Literal:
		return v.Text
	case *ast.Variable:
		return v.Name
	case *ast.Cast:
		return fmt.Sprintf("(-> %s %s)", sexpr(v.Src), v.Type.Repr())
	case *ast.FunctionCall:
		args := make([]string, len(v.Args))
		for i, arg := range v.Args {
			args[i] = sexpr(arg)
		}

		return fmt.Sprintf("%s(%s)", v.Name, strings.Join(args, ", "))
	case *ast.Method:
		return fmt.Sprintf("%s.%s", sexpr(v.Receiver), sexpr(v.Call))
	case *ast.ImportCall:
		return fmt.Sprintf("%s::%s", strings.Join(v.Path, "::"), sexpr(v.Call))
	case *ast.Attr:
		return fmt.Sprintf("%s.%s", sexpr(v.Parent), v.Name)
	case *ast.ArrayIndex:
		return fmt.Sprintf("%s[%s]", sexpr(v.Parent), sexpr(v.Index))
	case *ast.ArrayLiteral:
		elems := make([]string, len(v.Elems))
		for i, elem := range v.Elems {
			elems[i] = sexpr(elem)
		}

		return "[" + strings.Join(elems, ", ") + "]"
	case *ast.StructLiteral:
		fields := make([]string, len(v.Fields))
		for i, field := range v.Fields {
			fields[i] = field.Name + " " + sexpr(field.Value)
		}

		return "{" + strings.Join(fields, ", ") + "}"
	}

	return fmt.Sprintf("<%T>", e)
}

// parseBody parses src as the body of a function and returns its statements.
func parseBody(t *testing.T, src string) []ast.Stmt {
	t.Helper()

	defs, err := ParseSource("func main() {\n" + src + "\n}")
	be.Err(t, err, nil)
	be.Equal(t, len(defs), 1)

	return defs[0].(*ast.FuncDef).Body.Stmts
}

// parseExprText parses src as the initializer of a let statement.
func parseExprText(t *testing.T, src string) string {
	t.Helper()

	stmts := parseBody(t, "let i64 v = "+src)
	be.Equal(t, len(stmts), 1)

	return sexpr(stmts[0].(*ast.LetStmt).Init)
}

// parseErr parses src and returns the error message of the parse error it
// must produce.
func parseErr(t *testing.T, src string) string {
	t.Helper()

	_, err := ParseSource(src)
	be.True(t, report.IsPhase(err, report.PhaseParse))

	return err.Error()
}

// -----------------------------------------------------------------------------

func TestExprPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"a + 1 < b * 2", "(< (+ a 1) (* b 2))"},
		{"a | b & c", "(| a (& b c))"},
		{"a ^ b << 2", "(^ a (<< b 2))"},
		{"a % 2 == 0", "(== (% a 2) 0)"},
		{"((a))", "a"},
		{"(a + (b - c)) * d", "(* (+ a (- b c)) d)"},
	}

	for _, tt := range tests {
		be.Equal(t, parseExprText(t, tt.input), tt.want)
	}
}

func TestExprTreeShape(t *testing.T) {
	stmts := parseBody(t, "let i64 v = 1 + 2")
	expr := stmts[0].(*ast.LetStmt).Init

	// every node is either a leaf or a full binary node
	be.True(t, !expr.IsLeaf())
	be.Equal(t, expr.Op.Kind, ast.OP_ADD)
	be.True(t, expr.Left.(*ast.Expression).IsLeaf())
	be.True(t, expr.Right.(*ast.Expression).IsLeaf())
	be.Equal(t, expr.Left.(*ast.Expression).Right, nil)
}

func TestNegativeLiterals(t *testing.T) {
	be.Equal(t, parseExprText(t, "-5"), "-5")
	be.Equal(t, parseExprText(t, "-2.5 * x"), "(* -2.5 x)")
	be.Equal(t, parseExprText(t, "x - 5"), "(- x 5)")
	be.Equal(t, parseExprText(t, "x * -5"), "(* x -5)")

	stmts := parseBody(t, "let i64 v = -5")
	lit := stmts[0].(*ast.LetStmt).Init.Left.(*ast.Literal)
	be.Equal(t, lit.Kind, ast.LIT_INT)
	be.Equal(t, lit.Span().StartCol, 12)
}

func TestCasts(t *testing.T) {
	be.Equal(t, parseExprText(t, "x -> f32"), "(-> x f32)")
	be.Equal(t, parseExprText(t, "x -> f64 + 1.0"), "(+ (-> x f64) 1.0)")
	be.Equal(t, parseExprText(t, "1 + x -> i64"), "(+ 1 (-> x i64))")
	be.Equal(t, parseExprText(t, "(a + b) -> u8"), "(-> (+ a b) u8)")
	be.Equal(t, parseExprText(t, "x -> i32 -> f32"), "(-> (-> x i32) f32)")
}

func TestExprNewlinesInParens(t *testing.T) {
	be.Equal(t, parseExprText(t, "(1 +\n 2\n) * 3"), "(* (+ 1 2) 3)")
}

func TestChains(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a.b.c", "a.b.c"},
		{"a[1].b", "a[1].b"},
		{"a.b[i + 1]", "a.b[(+ i 1)]"},
		{"f(1, g(x))", "f(1, g(x))"},
		{"p.dist(q)", "p.dist(q)"},
		{"f().x", "f().x"},
		{"grid[1][2]", "grid[1][2]"},
	}

	for _, tt := range tests {
		be.Equal(t, parseExprText(t, tt.input), tt.want)
	}
}

func TestLiterals(t *testing.T) {
	be.Equal(t, parseExprText(t, "[1, 2,\n 3]"), "[1, 2, 3]")
	be.Equal(t, parseExprText(t, "{a 1, b x + 2}"), "{a 1, b (+ x 2)}")
	be.Equal(t, parseExprText(t, "{\n  a 1\n  b 2\n}"), "{a 1, b 2}")

	stmts := parseBody(t, `let string s = "hi"`)
	lit := stmts[0].(*ast.LetStmt).Init.Left.(*ast.Literal)
	be.Equal(t, lit.Kind, ast.LIT_STRING)
	be.Equal(t, lit.Text, "hi")
}

func TestExprErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"let i64 x = (1 + 2", "unclosed parenthesis"},
		{"let i64 x = 1 +", "expected an expression"},
		{"let i64 x = * 2", "expected an expression"},
		{"let i64 x = ()", "expected an expression"},
		{"let i64 x = 1 -> i64[]", "must be specified"},
	}

	for _, tt := range tests {
		msg := parseErr(t, "func main() {\n"+tt.input+"\n}")
		be.True(t, strings.Contains(msg, tt.msg))
	}
}

// -----------------------------------------------------------------------------

func TestFuncDef(t *testing.T) {
	defs, err := ParseSource("func add(a i64, b i64!) i64 {\n  return a + b\n}\n\nfunc nothing() {}")
	be.Err(t, err, nil)
	be.Equal(t, len(defs), 2)

	add := defs[0].(*ast.FuncDef)
	be.Equal(t, add.Name, "add")
	be.Equal(t, len(add.Params), 2)
	be.Equal(t, add.Params[0].Name, "a")
	be.True(t, !add.Params[0].Mutable)
	be.True(t, add.Params[1].Mutable)
	be.True(t, typing.Equals(add.ReturnType, typing.PrimI64))

	ret := add.Body.Stmts[0].(*ast.Return)
	be.Equal(t, sexpr(ret.Value), "(+ a b)")

	nothing := defs[1].(*ast.FuncDef)
	be.Equal(t, nothing.ReturnType, nil)
	be.Equal(t, len(nothing.Body.Stmts), 0)
}

func TestStructDef(t *testing.T) {
	defs, err := ParseSource("struct Point {\n  x f64, y f64\n  tags u8[4]\n}")
	be.Err(t, err, nil)

	sd := defs[0].(*ast.StructDef)
	be.Equal(t, sd.Name, "Point")
	be.Equal(t, len(sd.Fields), 3)
	be.Equal(t, sd.Fields[2].Name, "tags")
	be.True(t, typing.Equals(sd.Fields[2].Type, &typing.ArrayType{ElemType: typing.PrimU8, Len: 4}))
}

func TestImportDef(t *testing.T) {
	defs, err := ParseSource("import std::io\nimport std::io::println")
	be.Err(t, err, nil)

	be.Equal(t, defs[0].(*ast.ImportDef).Path, []string{"std", "io"})
	be.Equal(t, defs[1].(*ast.ImportDef).Path, []string{"std", "io", "println"})
}

func TestLetStmt(t *testing.T) {
	stmts := parseBody(t, "let u32! a = 0\nlet i64[] xs = [1, 2, 3]\nlet i64[][] m = [[1, 2], [3, 4]]")

	a := stmts[0].(*ast.LetStmt)
	be.Equal(t, a.Name, "a")
	be.True(t, a.Mutable)
	be.True(t, typing.Equals(a.Type, typing.PrimU32))

	xs := stmts[1].(*ast.LetStmt)
	be.True(t, !xs.Mutable)
	be.True(t, typing.Equals(xs.Type, &typing.ArrayType{ElemType: typing.PrimI64, Len: 3}))

	m := stmts[2].(*ast.LetStmt)
	want := &typing.ArrayType{ElemType: &typing.ArrayType{ElemType: typing.PrimI64, Len: 2}, Len: 2}
	be.True(t, typing.Equals(m.Type, want))
}

func TestAssignAndCallStmts(t *testing.T) {
	stmts := parseBody(t, "a = 1\np.x.y = a * 2\nxs[0] = 3\nf(a)\nio::println(\"hi\")\np.move(1, 2)")
	be.Equal(t, len(stmts), 6)

	assign := stmts[1].(*ast.AssignStmt)
	be.Equal(t, sexpr(assign.Target), "p.x.y")
	be.Equal(t, sexpr(assign.Value), "(* a 2)")

	be.Equal(t, sexpr(stmts[2].(*ast.AssignStmt).Target), "xs[0]")

	_, ok := stmts[3].(*ast.ExprStmt).Call.(*ast.FunctionCall)
	be.True(t, ok)

	ic := stmts[4].(*ast.ExprStmt).Call.(*ast.ImportCall)
	be.Equal(t, ic.Path, []string{"io"})
	be.Equal(t, ic.Call.Name, "println")

	method := stmts[5].(*ast.ExprStmt).Call.(*ast.Method)
	be.Equal(t, method.Call.Name, "move")
	be.Equal(t, len(method.Call.Args), 2)
}

func TestConditionalChain(t *testing.T) {
	stmts := parseBody(t, "if a {\n} else if b {\n}\nelse if c {\n} else {\n  return\n}")
	be.Equal(t, len(stmts), 1)

	cond := stmts[0].(*ast.Conditional)
	be.Equal(t, sexpr(cond.Cond), "a")

	second := cond.Else.(*ast.Conditional)
	be.Equal(t, sexpr(second.Cond), "b")

	third := second.Else.(*ast.Conditional)
	be.Equal(t, sexpr(third.Cond), "c")

	last := third.Else.(*ast.Block)
	be.Equal(t, len(last.Stmts), 1)
}

func TestConditionalWithoutElse(t *testing.T) {
	stmts := parseBody(t, "if a {\n}\n\nf()")
	be.Equal(t, len(stmts), 2)
	be.Equal(t, stmts[0].(*ast.Conditional).Else, nil)
}

func TestLoops(t *testing.T) {
	stmts := parseBody(t, "loop {\n  break\n}\nloop a < 10 {\n  a = a + 1\n}\nloop range v, i = xs {\n}")
	be.Equal(t, len(stmts), 3)

	inf := stmts[0].(*ast.Loop)
	be.True(t, inf.Cond == nil)
	_, ok := inf.Body.Stmts[0].(*ast.Break)
	be.True(t, ok)

	cond := stmts[1].(*ast.Loop)
	be.Equal(t, sexpr(cond.Cond), "(< a 10)")

	fl := stmts[2].(*ast.ForLoop)
	be.Equal(t, fl.ElemVar, "v")
	be.Equal(t, fl.IndexVar, "i")
	be.Equal(t, sexpr(fl.Iterable), "xs")
}

func TestNestedBlock(t *testing.T) {
	stmts := parseBody(t, "{\n  let i64 x = 1\n}")
	be.Equal(t, len(stmts[0].(*ast.Block).Stmts), 1)
}

func TestStmtErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"return 1", "return statement outside of function body"},
		{"let i64 x = 1", "expected a definition"},
		{"}", "unexpected `}`"},
		{"func f() {\n  func g() {}\n}", "must occur at the top level"},
		{"func f() {\n  import std::io\n}", "must occur at the top level"},
		{"func f() {\n  let i64 x = 1", "unclosed block"},
		{"func f(a i64, a i64) {}", "multiple parameters named `a`"},
		{"func f(a i64[]) {}", "must be specified"},
		{"struct S {}", "must have at least one field"},
		{"struct S { a i64, a i64 }", "multiple fields named `a`"},
		{"func f() {\n  f() = 1\n}", "cannot assign to a call"},
		{"func f() {\n  a.b\n}", "expression is not a statement"},
		{"func f() {\n  let i64[] x = g()\n}", "cannot infer the length"},
		{"func f() {\n  loop range v, v = xs {}\n}", "distinct names"},
		{"func f() {\n  let i64 x = 1 2\n}", "unexpected"},
	}

	for _, tt := range tests {
		msg := parseErr(t, tt.input)
		be.True(t, strings.Contains(msg, tt.msg))
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := ParseSource("func f() {\n  let i64 x = (1 + 2\n}")

	var cerr *report.CompileError
	be.True(t, errors.As(err, &cerr))
	be.Equal(t, cerr.Span.StartLine, 1)
	be.Equal(t, cerr.Span.StartCol, 14)
}
