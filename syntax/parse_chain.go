package syntax

import "ember/ast"

// chain := chain_root {'.' 'IDENT' [call_args] | '[' expr ']'} ;
// chain_root := 'IDENT' [call_args] | import_call ;
func (p *Parser) parseChain() ast.Expr {
	rootTok := p.want(TOK_IDENT)

	var node ast.Expr
	switch p.tok.Kind {
	case TOK_PATHSEP:
		node = p.parseImportCall(rootTok)
	case TOK_LPAREN:
		node = p.parseCall(rootTok)
	default:
		node = &ast.Variable{
			ASTBase: ast.NewASTBaseOn(rootTok.Span),
			Name:    rootTok.Value,
		}
	}

	for {
		switch p.tok.Kind {
		case TOK_DOT:
			p.next()

			nameTok := p.want(TOK_IDENT)
			if p.has(TOK_LPAREN) {
				call := p.parseCall(nameTok)

				node = &ast.Method{
					ASTBase:  ast.NewASTBaseOver(node.Span(), call.Span()),
					Receiver: node,
					Call:     call,
				}
			} else {
				node = &ast.Attr{
					ASTBase: ast.NewASTBaseOver(node.Span(), nameTok.Span),
					Parent:  node,
					Name:    nameTok.Value,
				}
			}
		case TOK_LBRACKET:
			p.next()

			index := p.parseExpr()

			node = &ast.ArrayIndex{
				ASTBase: ast.NewASTBaseOver(node.Span(), p.want(TOK_RBRACKET).Span),
				Parent:  node,
				Index:   index,
			}
		default:
			return node
		}
	}
}

// import_call := 'IDENT' '::' 'IDENT' {'::' 'IDENT'} call_args ;
func (p *Parser) parseImportCall(rootTok *Token) *ast.ImportCall {
	path := []string{rootTok.Value}

	var nameTok *Token
	for {
		p.want(TOK_PATHSEP)
		nameTok = p.want(TOK_IDENT)

		if p.has(TOK_PATHSEP) {
			path = append(path, nameTok.Value)
			continue
		}

		break
	}

	call := p.parseCall(nameTok)

	return &ast.ImportCall{
		ASTBase: ast.NewASTBaseOver(rootTok.Span, call.Span()),
		Path:    path,
		Call:    call,
	}
}

// call_args := '(' [expr {',' expr}] ')' ;
func (p *Parser) parseCall(nameTok *Token) *ast.FunctionCall {
	p.want(TOK_LPAREN)
	p.newlines()

	var args []*ast.Expression
	for !p.has(TOK_RPAREN) {
		args = append(args, p.parseExpr())
		p.newlines()

		if p.has(TOK_COMMA) {
			p.next()
			p.newlines()
		} else if !p.has(TOK_RPAREN) {
			p.reject()
		}
	}

	p.want(TOK_RPAREN)

	return &ast.FunctionCall{
		ASTBase: ast.NewASTBaseOver(nameTok.Span, p.lookbehind.Span),
		Name:    nameTok.Value,
		Args:    args,
	}
}

// -----------------------------------------------------------------------------

// struct_lit := '{' {newline} [field_init {(',' | newline) {newline} field_init}] '}' ;
// field_init := 'IDENT' expr ;
func (p *Parser) parseStructLit() *ast.StructLiteral {
	startSpan := p.want(TOK_LBRACE).Span
	p.newlines()

	var fields []*ast.FieldInit
	for !p.has(TOK_RBRACE) {
		nameTok := p.want(TOK_IDENT)
		value := p.parseExpr()

		fields = append(fields, &ast.FieldInit{
			ASTBase: ast.NewASTBaseOver(nameTok.Span, p.lookbehind.Span),
			Name:    nameTok.Value,
			Value:   value,
		})

		if p.has(TOK_COMMA) {
			p.next()
		} else if !p.has(TOK_RBRACE) {
			p.want(TOK_NEWLINE)
		}

		p.newlines()
	}

	p.want(TOK_RBRACE)

	return &ast.StructLiteral{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Fields:  fields,
	}
}

// array_lit := '[' {newline} [expr {',' {newline} expr}] {newline} ']' ;
func (p *Parser) parseArrayLit() *ast.ArrayLiteral {
	startSpan := p.want(TOK_LBRACKET).Span
	p.newlines()

	var elems []*ast.Expression
	for !p.has(TOK_RBRACKET) {
		elems = append(elems, p.parseExpr())
		p.newlines()

		if p.has(TOK_COMMA) {
			p.next()
			p.newlines()
		} else if !p.has(TOK_RBRACKET) {
			p.reject()
		}
	}

	p.want(TOK_RBRACKET)

	return &ast.ArrayLiteral{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Elems:   elems,
	}
}
