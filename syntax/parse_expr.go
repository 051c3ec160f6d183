package syntax

import (
	"ember/ast"
	"ember/report"
	"ember/typing"
)

// binaryOps maps binary operator tokens to their AST operator kinds.
var binaryOps = map[int]int{
	TOK_PLUS:   ast.OP_ADD,
	TOK_MINUS:  ast.OP_SUB,
	TOK_STAR:   ast.OP_MUL,
	TOK_DIV:    ast.OP_DIV,
	TOK_MOD:    ast.OP_MOD,
	TOK_EQ:     ast.OP_EQ,
	TOK_NEQ:    ast.OP_NEQ,
	TOK_LT:     ast.OP_LT,
	TOK_GT:     ast.OP_GT,
	TOK_LTEQ:   ast.OP_LTEQ,
	TOK_GTEQ:   ast.OP_GTEQ,
	TOK_BWAND:  ast.OP_BWAND,
	TOK_BWOR:   ast.OP_BWOR,
	TOK_BWXOR:  ast.OP_BWXOR,
	TOK_LSHIFT: ast.OP_LSHIFT,
	TOK_RSHIFT: ast.OP_RSHIFT,
}

// precBarrier is the precedence of a grouping parenthesis on the operator
// stack.  It is lower than any operator so flushing always stops at it.
const precBarrier = 0

// precedence returns the binding strength of an operator.
func precedence(opKind int) int {
	switch opKind {
	case ast.OP_MUL, ast.OP_DIV, ast.OP_MOD, ast.OP_LSHIFT, ast.OP_RSHIFT, ast.OP_BWAND:
		return 5
	case ast.OP_ADD, ast.OP_SUB, ast.OP_BWOR, ast.OP_BWXOR:
		return 4
	default:
		// comparisons
		return 3
	}
}

// stackedOp is an entry on the operator stack: either a binary operator or a
// grouping parenthesis.
type stackedOp struct {
	oper *ast.Oper
	span *report.TextSpan
}

func (so stackedOp) prec() int {
	if so.oper == nil {
		return precBarrier
	}

	return precedence(so.oper.Kind)
}

// postfixItem is a single item of the postfix sequence produced by the
// shunting-yard algorithm: an operand, a binary operator marker or a cast
// marker.
type postfixItem struct {
	operand ast.Expr
	oper    *ast.Oper

	castType typing.DataType
	castSpan *report.TextSpan
}

// expr := operand {binary_op operand} ;
// operand := ['-'] 'INTLIT' | ['-'] 'FLOATLIT' | 'BOOLLIT' | 'STRINGLIT'
//          | chain | struct_lit | array_lit | '(' expr ')' | operand '->' type_label ;
//
// parseExpr parses an expression using the shunting-yard algorithm: operands
// are pushed directly onto the output sequence and operators are held on an
// operator stack until an operator of lower precedence arrives.  The postfix
// output sequence is then rebuilt into a binary expression tree.
func (p *Parser) parseExpr() *ast.Expression {
	startSpan := p.tok.Span

	var output []postfixItem
	var opStack []stackedOp
	parenDepth := 0
	expectOperand := true

	flush := func(minPrec int) {
		for len(opStack) > 0 {
			top := opStack[len(opStack)-1]
			if top.oper == nil || top.prec() < minPrec {
				break
			}

			output = append(output, postfixItem{oper: top.oper})
			opStack = opStack[:len(opStack)-1]
		}
	}

exprLoop:
	for {
		// Newlines are only insignificant inside parentheses.
		if parenDepth > 0 {
			p.newlines()
		}

		if expectOperand {
			if p.has(TOK_LPAREN) {
				opStack = append(opStack, stackedOp{span: p.tok.Span})
				parenDepth++
				p.next()
				continue
			}

			output = append(output, postfixItem{operand: p.parseOperand()})
			expectOperand = false
			continue
		}

		if opKind, ok := binaryOps[p.tok.Kind]; ok {
			oper := &ast.Oper{Kind: opKind, Name: p.tok.Value, Span: p.tok.Span}
			flush(precedence(opKind))
			opStack = append(opStack, stackedOp{oper: oper})

			p.next()
			expectOperand = true
			continue
		}

		switch p.tok.Kind {
		case TOK_ARROW:
			// Casts are postfix: they apply directly to the operand or group
			// immediately before them.
			arrowSpan := p.tok.Span
			p.next()

			typeSpan := p.tok.Span
			typ := p.parseBoundTypeLabel()

			output = append(output, postfixItem{
				castType: typ,
				castSpan: report.NewSpanOver(arrowSpan, typeSpan),
			})
		case TOK_RPAREN:
			if parenDepth == 0 {
				// The parenthesis belongs to an enclosing construct.
				break exprLoop
			}

			flush(precBarrier + 1)
			if len(opStack) == 0 {
				p.rejectWithMsg("unmatched `)`")
			}

			opStack = opStack[:len(opStack)-1]
			parenDepth--
			p.next()
		default:
			break exprLoop
		}
	}

	flush(precBarrier + 1)
	if len(opStack) > 0 {
		p.error(opStack[len(opStack)-1].span, "unclosed parenthesis")
	}

	expr := buildExprTree(&output)
	if expr == nil {
		p.error(startSpan, "expected an expression")
	} else if len(output) > 0 {
		p.error(startSpan, "invalid expression")
	}

	return expr
}

// buildExprTree converts the postfix sequence into a binary expression tree by
// popping from the end of the sequence: an operator marker pops its right
// subtree and then its left subtree; anything else is a leaf.  It returns nil
// if the sequence runs out.
func buildExprTree(output *[]postfixItem) *ast.Expression {
	if len(*output) == 0 {
		return nil
	}

	top := (*output)[len(*output)-1]
	*output = (*output)[:len(*output)-1]

	switch {
	case top.oper != nil:
		right := buildExprTree(output)
		if right == nil {
			return nil
		}

		left := buildExprTree(output)
		if left == nil {
			return nil
		}

		return &ast.Expression{
			ASTBase: ast.NewASTBaseOver(left.Span(), right.Span()),
			Left:    left,
			Op:      top.oper,
			Right:   right,
		}
	case top.castType != nil:
		src := buildExprTree(output)
		if src == nil {
			return nil
		}

		span := report.NewSpanOver(src.Span(), top.castSpan)
		return &ast.Expression{
			ASTBase: ast.NewASTBaseOn(span),
			Left: &ast.Cast{
				ASTBase: ast.NewASTBaseOn(span),
				Src:     src,
				Type:    top.castType,
			},
		}
	default:
		return &ast.Expression{
			ASTBase: ast.NewASTBaseOn(top.operand.Span()),
			Left:    top.operand,
		}
	}
}

// -----------------------------------------------------------------------------

// parseOperand parses a single operand of an expression.
func (p *Parser) parseOperand() ast.Expr {
	switch p.tok.Kind {
	case TOK_MINUS:
		// A minus in operand position followed by a number is a negative
		// literal.
		if kind := p.peek(); kind == TOK_INTLIT || kind == TOK_FLOATLIT {
			minusSpan := p.tok.Span
			p.next()

			lit := p.parseLiteral()
			lit.Text = "-" + lit.Text
			lit.ASTBase = ast.NewASTBaseOver(minusSpan, p.lookbehind.Span)
			return lit
		}
	case TOK_INTLIT, TOK_FLOATLIT, TOK_BOOLLIT, TOK_STRINGLIT:
		return p.parseLiteral()
	case TOK_IDENT:
		return p.parseChain()
	case TOK_LBRACE:
		return p.parseStructLit()
	case TOK_LBRACKET:
		return p.parseArrayLit()
	}

	p.rejectWithMsg("expected an expression but got %s", describeToken(p.tok))
	return nil
}

// literalKinds maps literal tokens to literal kinds.
var literalKinds = map[int]int{
	TOK_INTLIT:    ast.LIT_INT,
	TOK_FLOATLIT:  ast.LIT_FLOAT,
	TOK_BOOLLIT:   ast.LIT_BOOL,
	TOK_STRINGLIT: ast.LIT_STRING,
}

// parseLiteral parses a literal token.
func (p *Parser) parseLiteral() *ast.Literal {
	kind, ok := literalKinds[p.tok.Kind]
	if !ok {
		p.reject()
	}

	tok := p.tok
	p.next()

	return &ast.Literal{
		ASTBase: ast.NewASTBaseOn(tok.Span),
		Text:    tok.Value,
		Kind:    kind,
	}
}
