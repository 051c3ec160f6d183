package syntax

import (
	"ember/ast"
	"ember/typing"
)

// block := '{' {newline | stmt} '}' ;
func (p *Parser) parseBlock() *ast.Block {
	startSpan := p.want(TOK_LBRACE).Span

	var stmts []ast.Stmt
	for {
		p.newlines()

		if p.has(TOK_RBRACE) {
			p.next()
			break
		} else if p.has(TOK_EOF) {
			p.rejectWithMsg("unclosed block: expected `}` before end of file")
		}

		stmts = append(stmts, p.parseStmt(true).(ast.Stmt))
	}

	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Stmts:   stmts,
	}
}

// parseStmt dispatches on the leading token of a statement.  nested indicates
// whether the parser is inside a function body: definitions are only legal when
// it is not, and everything else is only legal when it is.  The returned node
// is an ast.Def when nested is false and an ast.Stmt otherwise.
//
// definition := struct_def | import_def | func_def ;
// stmt := let_stmt | assign_or_call | if_stmt | loop_stmt | return_stmt
//      | 'break' | block ;
func (p *Parser) parseStmt(nested bool) ast.Node {
	switch p.tok.Kind {
	case TOK_STRUCT, TOK_IMPORT, TOK_FUNC:
		if nested {
			p.rejectWithMsg("%s definition must occur at the top level", KindName(p.tok.Kind))
		}

		switch p.tok.Kind {
		case TOK_STRUCT:
			return p.parseStructDef()
		case TOK_IMPORT:
			return p.parseImportDef()
		default:
			return p.parseFuncDef()
		}
	case TOK_RBRACE:
		// Blocks consume their own closing brace.
		p.rejectWithMsg("unexpected `}` outside of a block")
	case TOK_RETURN:
		if !nested {
			p.rejectWithMsg("return statement outside of function body")
		}

		return p.parseReturn()
	}

	if !nested {
		p.rejectWithMsg("expected a definition but got %s", describeToken(p.tok))
	}

	switch p.tok.Kind {
	case TOK_LET:
		return p.parseLetStmt()
	case TOK_IDENT:
		return p.parseAssignOrCall()
	case TOK_IF:
		return p.parseConditional()
	case TOK_LOOP:
		return p.parseLoop()
	case TOK_BREAK:
		return &ast.Break{ASTBase: ast.NewASTBaseOn(p.want(TOK_BREAK).Span)}
	case TOK_LBRACE:
		return p.parseBlock()
	}

	p.reject()
	return nil
}

// -----------------------------------------------------------------------------

// let_stmt := 'let' type_label ['!'] 'IDENT' '=' expr ;
func (p *Parser) parseLetStmt() *ast.LetStmt {
	startSpan := p.want(TOK_LET).Span

	typeSpan := p.tok.Span
	typ := p.parseTypeLabel()

	mutable := false
	if p.has(TOK_NOT) {
		p.next()
		mutable = true
	}

	name := p.want(TOK_IDENT).Value

	p.want(TOK_ASSIGN)

	init := p.parseExpr()

	if !typing.IsBound(typ) {
		// Array lengths left off the declared type are taken from the array
		// literal initializing the variable.
		if !inferArrayLen(typ, init) {
			p.error(typeSpan, "cannot infer the length of `%s` from its initializer", typ.Repr())
		}
	}

	return &ast.LetStmt{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Name:    name,
		Type:    typ,
		Mutable: mutable,
		Init:    init,
	}
}

// inferArrayLen resolves the unbound lengths of an array type from a literal
// initializer.  It returns whether every length could be resolved.
func inferArrayLen(typ typing.DataType, init *ast.Expression) bool {
	at, ok := typ.(*typing.ArrayType)
	if !ok {
		return typing.IsBound(typ)
	}

	if init == nil || !init.IsLeaf() {
		return typing.IsBound(typ)
	}

	lit, ok := init.Left.(*ast.ArrayLiteral)
	if !ok {
		return typing.IsBound(typ)
	}

	if at.Len == typing.UnboundLen {
		at.Len = len(lit.Elems)
	}

	if typing.IsBound(at.ElemType) {
		return true
	} else if len(lit.Elems) == 0 {
		return false
	}

	return inferArrayLen(at.ElemType, lit.Elems[0])
}

// assign_or_call := chain ['=' expr] ;
func (p *Parser) parseAssignOrCall() ast.Stmt {
	startSpan := p.tok.Span

	target := p.parseChain()

	if p.has(TOK_ASSIGN) {
		switch target.(type) {
		case *ast.Variable, *ast.Attr, *ast.ArrayIndex:
		default:
			p.error(target.Span(), "cannot assign to a call")
		}

		p.next()

		value := p.parseExpr()

		return &ast.AssignStmt{
			ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
			Target:  target,
			Value:   value,
		}
	}

	switch target.(type) {
	case *ast.FunctionCall, *ast.Method, *ast.ImportCall:
		return &ast.ExprStmt{
			ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
			Call:    target,
		}
	}

	p.error(target.Span(), "expression is not a statement")
	return nil
}

// return_stmt := 'return' [expr] ;
func (p *Parser) parseReturn() *ast.Return {
	startSpan := p.want(TOK_RETURN).Span

	var value *ast.Expression
	switch p.tok.Kind {
	case TOK_NEWLINE, TOK_RBRACE, TOK_EOF:
	default:
		value = p.parseExpr()
	}

	return &ast.Return{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Value:   value,
	}
}
