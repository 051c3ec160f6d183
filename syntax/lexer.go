package syntax

import (
	"bufio"
	"ember/report"
	"errors"
	"io"
	"strings"
	"unicode"
)

// Lexer is responsible for tokenizing a source file.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int

	// lastKind is the kind of the last token produced.  It is used to collapse
	// runs of newlines into a single newline token.
	lastKind int
}

// NewLexer creates a new lexer for the given source file.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:     file,
		tokBuff:  &strings.Builder{},
		lastKind: TOK_NEWLINE,
	}
}

// Tokenize lexes the whole of src into a flat token list terminated by an EOF
// token.  Any lexical error is returned as a compile error of the lex phase.
func Tokenize(src string) ([]*Token, error) {
	l := NewLexer(bufio.NewReader(strings.NewReader(src)))

	var toks []*Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			var lerr *report.LocalCompileError
			if errors.As(err, &lerr) {
				return nil, &report.CompileError{
					Phase:   report.PhaseLex,
					Message: lerr.Message,
					Span:    lerr.Span,
				}
			}

			return nil, err
		}

		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			return toks, nil
		}
	}
}

// NextToken retrieves the next token from the input file. If the file has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	tok, err := l.nextToken()
	if tok != nil {
		l.lastKind = tok.Kind
	}

	return tok, err
}

func (l *Lexer) nextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n':
			if l.lastKind == TOK_NEWLINE {
				l.skip()
				continue
			}

			l.mark()
			l.skip()
			return l.makeToken(TOK_NEWLINE), nil
		case '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok, err := l.lexCommentOrDiv(); tok != nil || err != nil {
				return tok, err
			}
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF), nil
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	// Division operator is handled with comment logic.
	"%": TOK_MOD,

	"&":  TOK_BWAND,
	"|":  TOK_BWOR,
	"^":  TOK_BWXOR,
	"<<": TOK_LSHIFT,
	">>": TOK_RSHIFT,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"=":  TOK_ASSIGN,
	"!":  TOK_NOT,
	"->": TOK_ARROW,
	"::": TOK_PATHSEP,

	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,
	"[": TOK_LBRACKET,
	"]": TOK_RBRACKET,
	",": TOK_COMMA,
	".": TOK_DOT,
}

// lexPunctOrOper lexes a punctuation or operator symbol.  The longest matching
// symbol pattern is always selected.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		if _, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
		} else {
			break
		}
	}

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		return nil, report.Raise(l.getSpan(), "invalid character: `%s`", l.tokBuff.String())
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isFirstIdentChar(c) && !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	var kind int
	if _kind, ok := keywords[l.tokBuff.String()]; ok {
		kind = _kind
	} else {
		kind = TOK_IDENT
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// basePrefixes maps the prefix letter of a non-decimal integer literal to the
// digits allowed after it.
var basePrefixes = map[rune]func(rune) bool{
	'x': isHexDigit,
	'o': func(c rune) bool { return '0' <= c && c <= '7' },
	'b': func(c rune) bool { return c == '0' || c == '1' },
}

// lexNumericLit lexes an integer or float literal.  Integer literals may carry
// a `0x`, `0o` or `0b` prefix; float literals are always decimal and may have
// an exponent.
func (l *Lexer) lexNumericLit() (*Token, error) {
	l.mark()
	first, _ := l.eat()

	if first == '0' {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if isDigit, ok := basePrefixes[c]; ok {
			l.eat()

			if err := l.requireDigits(isDigit); err != nil {
				return nil, err
			}

			return l.makeToken(TOK_INTLIT), nil
		}
	}

	if _, err := l.readDigits(isDecimalDigit); err != nil {
		return nil, err
	}

	kind := TOK_INTLIT

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	// a dot not followed by a digit is a field access
	if c == '.' {
		next, err := l.peekSecond()
		if err != nil {
			return nil, err
		}

		if isDecimalDigit(next) {
			l.eat()
			kind = TOK_FLOATLIT

			if _, err := l.readDigits(isDecimalDigit); err != nil {
				return nil, err
			}

			if c, err = l.peek(); err != nil {
				return nil, err
			}
		}
	}

	if c == 'e' || c == 'E' {
		l.eat()
		kind = TOK_FLOATLIT

		if c, err = l.peek(); err != nil {
			return nil, err
		} else if c == '-' {
			l.eat()
		}

		if err := l.requireDigits(isDecimalDigit); err != nil {
			return nil, err
		}
	}

	return l.makeToken(kind), nil
}

// readDigits consumes a run of digits accepted by isDigit and returns how many
// were read.  `_` separators are dropped from the token.
func (l *Lexer) readDigits(isDigit func(rune) bool) (int, error) {
	n := 0
	for {
		c, err := l.peek()
		if err != nil {
			return n, err
		}

		switch {
		case c == '_':
			l.skip()
		case c != -1 && isDigit(c):
			l.eat()
			n++
		default:
			return n, nil
		}
	}
}

// requireDigits is readDigits for positions where at least one digit must
// follow.
func (l *Lexer) requireDigits(isDigit func(rune) bool) error {
	n, err := l.readDigits(isDigit)
	if err != nil {
		return err
	} else if n == 0 {
		return report.Raise(l.getSpan(), "incomplete numeric literal")
	}

	return nil
}

// -----------------------------------------------------------------------------

// lexStringLit lexes a standard string literal.  The value of the produced token
// has its quotes removed and its escape sequences decoded.
func (l *Lexer) lexStringLit() (*Token, error) {
	l.mark()
	l.skip()

	for {
		c, err := l.skip()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1:
			return nil, report.Raise(l.getSpan(), "unclosed string literal")
		case '"':
			return l.makeToken(TOK_STRINGLIT), nil
		case '\\':
			if err = l.readEscapeSequence(); err != nil {
				return nil, err
			}
		case '\n':
			return nil, report.Raise(l.getSpan(), "string literal cannot contain a newline")
		default:
			l.tokBuff.WriteRune(c)
		}
	}
}

// escapeCodes maps the supported escape characters to the runes they denote.
var escapeCodes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'0':  0,
	'\\': '\\',
	'"':  '"',
}

// readEscapeSequence decodes an escape sequence into the token buffer.  This
// assumes the leading `\` has already been consumed.
func (l *Lexer) readEscapeSequence() error {
	c, err := l.skip()
	if err != nil {
		return err
	}

	if c == -1 {
		return report.Raise(l.getSpan(), "expected escape sequence not end of file")
	}

	if r, ok := escapeCodes[c]; ok {
		l.tokBuff.WriteRune(r)
		return nil
	}

	return report.Raise(l.getSpan(), "unknown escape sequence: `\\%c`", c)
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv lexes a comment or a division token.  Comments produce no
// token: in that case, the returned token is nil.
func (l *Lexer) lexCommentOrDiv() (*Token, error) {
	l.mark()
	l.eat()

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	if c == '/' {
		// the trailing newline is left to be lexed as a newline token
		for c != '\n' && c != -1 {
			l.skip()

			if c, err = l.peek(); err != nil {
				return nil, err
			}
		}

		l.tokBuff.Reset()
		return nil, nil
	}

	return l.makeToken(TOK_DIV), nil
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start line and column to its current position.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span based on the lexer's current state.
func (l *Lexer) getSpan() *report.TextSpan {
	endLine, endCol := l.line, l.col-1
	if endCol < 0 {
		// the token ended with a newline
		endLine, endCol = l.startLine, l.startCol
	}

	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   endLine,
		EndCol:    endCol,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, err := l.skip()
	if c > 0 {
		l.tokBuff.WriteRune(c)
	}

	return c, err
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters an EOF, -1 is returned as the rune
// value.
func (l *Lexer) skip() (rune, error) {
	c, err := l.readRune()
	if err == nil && c != -1 {
		l.updatePos(c)
	}

	return c, err
}

// peek returns the next rune in the file without moving the lexer forward.  If
// the lexer encounters an EOF, -1 is returned as rune value.
func (l *Lexer) peek() (rune, error) {
	c, err := l.readRune()
	if err == nil && c != -1 {
		err = l.file.UnreadRune()
	}

	return c, err
}

// readRune reads a single rune from the source, mapping EOF to -1.
func (l *Lexer) readRune() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err == io.EOF {
		return -1, nil
	} else if err != nil {
		return 0, err
	}

	return c, nil
}

// peekSecond returns the rune after the next rune without moving the lexer
// forward.  Only ASCII lookahead is needed so this peeks at raw bytes.
func (l *Lexer) peekSecond() (rune, error) {
	buf, err := l.file.Peek(2)
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	return rune(buf[1]), nil
}

// updatePos updates the lexer's position based on input character.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isHexDigit returns whether  c is a hexadecimal digit.
func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}
