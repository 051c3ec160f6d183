package syntax

import (
	"ember/ast"
	"ember/typing"
)

// import_def := 'import' 'IDENT' {'::' 'IDENT'} ;
func (p *Parser) parseImportDef() *ast.ImportDef {
	startSpan := p.want(TOK_IMPORT).Span

	path := []string{p.want(TOK_IDENT).Value}
	for p.has(TOK_PATHSEP) {
		p.next()

		path = append(path, p.want(TOK_IDENT).Value)
	}

	return &ast.ImportDef{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Path:    path,
	}
}

// -----------------------------------------------------------------------------

// func_def := 'func' 'IDENT' '(' [func_params] ')' [type_label] block ;
// func_params := func_param {',' func_param} ;
// func_param := 'IDENT' type_label ['!'] ;
func (p *Parser) parseFuncDef() *ast.FuncDef {
	startSpan := p.want(TOK_FUNC).Span

	name := p.want(TOK_IDENT).Value

	p.want(TOK_LPAREN)

	var params []*ast.Param
	paramNames := make(map[string]struct{})
	if !p.has(TOK_RPAREN) {
		for {
			paramTok := p.want(TOK_IDENT)
			typ := p.parseBoundTypeLabel()

			mutable := false
			if p.has(TOK_NOT) {
				p.next()
				mutable = true
			}

			if _, ok := paramNames[paramTok.Value]; ok {
				p.error(paramTok.Span, "multiple parameters named `%s`", paramTok.Value)
			}
			paramNames[paramTok.Value] = struct{}{}

			params = append(params, &ast.Param{
				ASTBase: ast.NewASTBaseOver(paramTok.Span, p.lookbehind.Span),
				Name:    paramTok.Value,
				Type:    typ,
				Mutable: mutable,
			})

			if p.has(TOK_COMMA) {
				p.next()
				continue
			}

			break
		}
	}

	p.want(TOK_RPAREN)

	var returnType typing.DataType
	if !p.has(TOK_LBRACE) {
		returnType = p.parseBoundTypeLabel()
	}

	body := p.parseBlock()

	return &ast.FuncDef{
		ASTBase:    ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}
}

// -----------------------------------------------------------------------------

// struct_def := 'struct' 'IDENT' '{' {newline} struct_field {(',' | newline) {newline} struct_field} '}' ;
// struct_field := 'IDENT' type_label ;
func (p *Parser) parseStructDef() *ast.StructDef {
	startSpan := p.want(TOK_STRUCT).Span

	name := p.want(TOK_IDENT).Value

	p.want(TOK_LBRACE)
	p.newlines()

	var fields []*ast.StructField
	fieldNames := make(map[string]struct{})
	for !p.has(TOK_RBRACE) {
		fieldTok := p.want(TOK_IDENT)
		typ := p.parseBoundTypeLabel()

		if _, ok := fieldNames[fieldTok.Value]; ok {
			p.error(fieldTok.Span, "multiple fields named `%s`", fieldTok.Value)
		}
		fieldNames[fieldTok.Value] = struct{}{}

		fields = append(fields, &ast.StructField{
			ASTBase: ast.NewASTBaseOver(fieldTok.Span, p.lookbehind.Span),
			Name:    fieldTok.Value,
			Type:    typ,
		})

		if p.has(TOK_COMMA) {
			p.next()
		} else if !p.has(TOK_RBRACE) {
			p.want(TOK_NEWLINE)
		}

		p.newlines()
	}

	if len(fields) == 0 {
		p.rejectWithMsg("struct `%s` must have at least one field", name)
	}

	p.want(TOK_RBRACE)

	return &ast.StructDef{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Name:    name,
		Fields:  fields,
	}
}

// -----------------------------------------------------------------------------

// type_label := (prim_type | 'IDENT') {'[' ['INTLIT'] ']'} ;
// prim_type := 'u8' | 'u16' | 'u32' | 'u64' | 'i8' | 'i16' | 'i32' | 'i64'
//           | 'f32' | 'f64' | 'bool' | 'string' ;
func (p *Parser) parseTypeLabel() typing.DataType {
	var typ typing.DataType

	switch {
	case TOK_U8 <= p.tok.Kind && p.tok.Kind <= TOK_STRING:
		// The token kinds are numerically aligned with the primitive types.
		typ = typing.PrimType(p.tok.Kind - TOK_U8)
	case p.has(TOK_IDENT):
		typ = &typing.StructType{Name: p.tok.Value}
	default:
		p.rejectWithMsg("expected type label but got %s", describeToken(p.tok))
	}

	p.next()

	for p.has(TOK_LBRACKET) {
		p.next()

		length := typing.UnboundLen
		if p.has(TOK_INTLIT) {
			neg, n, err := ast.ParseIntText(p.tok.Value)
			if err != nil || neg || n > 1<<31 {
				p.rejectWithMsg("invalid array length: `%s`", p.tok.Value)
			}

			length = int(n)
			p.next()
		}

		p.want(TOK_RBRACKET)

		typ = &typing.ArrayType{ElemType: typ, Len: length}
	}

	return typ
}

// parseBoundTypeLabel parses a type label whose array lengths must all be
// written explicitly.
func (p *Parser) parseBoundTypeLabel() typing.DataType {
	startSpan := p.tok.Span

	typ := p.parseTypeLabel()
	if !typing.IsBound(typ) {
		p.error(startSpan, "array length of `%s` must be specified", typ.Repr())
	}

	return typ
}
