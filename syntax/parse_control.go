package syntax

import "ember/ast"

// if_stmt := 'if' expr block [{newline} 'else' (if_stmt | block)] ;
func (p *Parser) parseConditional() *ast.Conditional {
	startSpan := p.want(TOK_IF).Span

	cond := p.parseExpr()
	then := p.parseBlock()

	var elseBranch ast.Stmt

	// `else` may begin on the line after the closing brace.
	save := p.ndx
	p.newlines()

	if p.has(TOK_ELSE) {
		p.next()

		if p.has(TOK_IF) {
			elseBranch = p.parseConditional()
		} else {
			elseBranch = p.parseBlock()
		}
	} else {
		p.rewind(save)
	}

	return &ast.Conditional{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Cond:    cond,
		Then:    then,
		Else:    elseBranch,
	}
}

// rewind moves the parser back to the token at ndx.
func (p *Parser) rewind(ndx int) {
	p.ndx = ndx
	p.tok = p.toks[ndx]

	if ndx > 0 {
		p.lookbehind = p.toks[ndx-1]
	}
}

// -----------------------------------------------------------------------------

// loop_stmt := 'loop' [expr] block
//           | 'loop' 'range' 'IDENT' ',' 'IDENT' '=' expr block ;
func (p *Parser) parseLoop() ast.Stmt {
	startSpan := p.want(TOK_LOOP).Span

	switch p.tok.Kind {
	case TOK_LBRACE:
		body := p.parseBlock()

		return &ast.Loop{
			ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
			Body:    body,
		}
	case TOK_RANGE:
		p.next()

		elemVar := p.want(TOK_IDENT)
		p.want(TOK_COMMA)
		indexVar := p.want(TOK_IDENT)

		if elemVar.Value == indexVar.Value {
			p.error(indexVar.Span, "range variables must have distinct names")
		}

		p.want(TOK_ASSIGN)

		iterable := p.parseExpr()
		body := p.parseBlock()

		return &ast.ForLoop{
			ASTBase:  ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
			ElemVar:  elemVar.Value,
			IndexVar: indexVar.Value,
			Iterable: iterable,
			Body:     body,
		}
	default:
		cond := p.parseExpr()
		body := p.parseBlock()

		return &ast.Loop{
			ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
			Cond:    cond,
			Body:    body,
		}
	}
}
