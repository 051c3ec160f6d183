package syntax

import (
	"ember/ast"
	"ember/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser for an ember token stream.  All parsing
// functions assume that they begin with the parser centered on the first token
// of their production and must consume all tokens (including the last) of
// their production, leaving the parser on the next token.  Errors are raised by
// panicking and caught by Parse.
type Parser struct {
	// toks is the token stream being parsed.  It always ends with an EOF token.
	toks []*Token

	// ndx is the index of the current token.
	ndx int

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the token the parser was positioned on before tok.
	lookbehind *Token
}

// Parse parses a token stream produced by Tokenize into a list of top-level
// definitions.  No partial AST is returned if an error occurs.
func Parse(toks []*Token) (defs []ast.Def, err error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != TOK_EOF {
		toks = append(toks, &Token{Kind: TOK_EOF, Span: lastSpan(toks)})
	}

	p := &Parser{toks: toks, tok: toks[0]}

	defer report.CatchErrors(report.PhaseParse, &err)

	defs = p.parseFile()
	return
}

// ParseSource lexes and parses a source string.
func ParseSource(src string) ([]ast.Def, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	return Parse(toks)
}

// lastSpan returns the span to attach to a synthesized EOF token.
func lastSpan(toks []*Token) *report.TextSpan {
	if len(toks) == 0 {
		return &report.TextSpan{}
	}

	return toks[len(toks)-1].Span
}

// file := {newline | definition} 'EOF' ;
func (p *Parser) parseFile() []ast.Def {
	var defs []ast.Def

	for {
		p.newlines()

		if p.has(TOK_EOF) {
			return defs
		}

		defs = append(defs, p.parseStmt(false).(ast.Def))
	}
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.  The parser never moves past the
// terminating EOF token.
func (p *Parser) next() {
	p.lookbehind = p.tok

	if p.ndx < len(p.toks)-1 {
		p.ndx++
	}

	p.tok = p.toks[p.ndx]
}

// has returns whether the parser is on a token of the given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// peek returns the kind of the token after the current token.
func (p *Parser) peek() int {
	if p.ndx < len(p.toks)-1 {
		return p.toks[p.ndx+1].Kind
	}

	return TOK_EOF
}

// want asserts that the parser is on a token of the given kind, moves the
// parser forward and returns the matched token.
func (p *Parser) want(kind int) *Token {
	if !p.has(kind) {
		p.rejectWithMsg("expected %s but got %s", KindName(kind), describeToken(p.tok))
	}

	tok := p.tok
	p.next()
	return tok
}

// newlines skips any newlines the parser is positioned on.
func (p *Parser) newlines() {
	for p.has(TOK_NEWLINE) {
		p.next()
	}
}

// -----------------------------------------------------------------------------

// reject raises an unexpected token error on the current token.
func (p *Parser) reject() {
	p.rejectWithMsg("unexpected %s", describeToken(p.tok))
}

// rejectWithMsg raises an error on the current token with a specific message.
func (p *Parser) rejectWithMsg(msg string, args ...interface{}) {
	panic(report.Raise(p.tok.Span, msg, args...))
}

// error raises an error over the given span.
func (p *Parser) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(span, msg, args...))
}

// describeToken returns a description of a token for error messages.
func describeToken(tok *Token) string {
	switch tok.Kind {
	case TOK_NEWLINE, TOK_EOF:
		return KindName(tok.Kind)
	case TOK_IDENT, TOK_INTLIT, TOK_FLOATLIT, TOK_BOOLLIT:
		return "token `" + tok.Value + "`"
	case TOK_STRINGLIT:
		return "string literal"
	default:
		return "token " + KindName(tok.Kind)
	}
}
