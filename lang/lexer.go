package lang

import (
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/daex/model"
)

// operators lists the operator spellings, longest first within each
// leading rune.
var operators = []string{
	"**", "<=", ">=", "==", "!=", "&&", "||",
	"+", "-", "*", "/", "^", "<", ">", "!",
}

const punctuation = "(),"

// Lexer splits a formula into tokens. A Lexer is consumed once: after it
// returns the end marker or an error, every further call to [Lexer.Next]
// returns the same result.
type Lexer struct {
	input string
	pos   int
	last  *Token
	err   error
}

// NewLexer returns a Lexer over formula.
func NewLexer(formula string) *Lexer {
	return &Lexer{input: formula}
}

// Tokenize returns the tokens of formula in order, ending with a [KindEnd]
// token. Iteration stops after the end marker or the first error.
func Tokenize(formula string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		lex := NewLexer(formula)

		for {
			tok, err := lex.Next()
			if !yield(tok, err) || err != nil || tok.Kind == KindEnd {
				return
			}
		}
	}
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}

	if l.last != nil {
		return *l.last, nil
	}

	tok, err := l.scan()
	if err != nil {
		l.err = err

		return Token{}, err
	}

	if tok.Kind == KindEnd {
		l.last = &tok
	}

	return tok, nil
}

func (l *Lexer) scan() (Token, error) {
	l.skipWhitespace()

	if l.eof() {
		return Token{Kind: KindEnd, Offset: len(l.input)}, nil
	}

	start := l.pos
	ch := l.peek()

	switch {
	case model.IsIdentifierStart(ch):
		return l.scanName(start), nil

	case isDigit(ch) || ch == '.' && isDigit(l.peekAt(1)):
		return l.scanNumber(start)

	case ch == '"' || ch == '\'':
		return l.scanString(start, ch)

	case strings.ContainsRune(punctuation, ch):
		l.advance()

		return Token{Kind: KindPunct, Text: l.input[start:l.pos], Offset: start}, nil
	}

	for _, op := range operators {
		if strings.HasPrefix(l.input[l.pos:], op) {
			l.pos += len(op)

			return Token{Kind: KindOperator, Text: op, Offset: start}, nil
		}
	}

	return Token{}, newSyntaxError(l.input, start,
		"unexpected character "+strconv.QuoteRune(ch))
}

func (l *Lexer) scanName(start int) Token {
	l.advance()

	for !l.eof() && model.IsIdentifierContinue(l.peek()) {
		l.advance()
	}

	return Token{Kind: KindName, Text: l.input[start:l.pos], Offset: start}
}

// scanNumber scans digits[.digits][(e|E)[+|-]digits] or .digits[...].
func (l *Lexer) scanNumber(start int) (Token, error) {
	l.skipDigits()

	if l.peek() == '.' {
		l.advance()
		l.skipDigits()
	}

	if r := l.peek(); r == 'e' || r == 'E' {
		mark := l.pos

		l.advance()

		if r := l.peek(); r == '+' || r == '-' {
			l.advance()
		}

		if !isDigit(l.peek()) {
			return Token{}, newSyntaxError(l.input, mark,
				"invalid numeric literal: exponent has no digits")
		}

		l.skipDigits()
	}

	if r := l.peek(); !l.eof() && (r == '.' || model.IsIdentifierContinue(r)) {
		return Token{}, newSyntaxError(l.input, l.pos,
			"invalid numeric literal "+strconv.Quote(l.input[start:l.pos]+string(r)))
	}

	return Token{Kind: KindNumber, Text: l.input[start:l.pos], Offset: start}, nil
}

func (l *Lexer) scanString(start int, quote rune) (Token, error) {
	l.advance() // skip opening quote

	for !l.eof() {
		ch := l.peek()
		if ch == '\\' {
			l.advance() // skip backslash

			if !l.eof() {
				l.advance() // skip escaped char
			}

			continue
		}

		l.advance()

		if ch == quote {
			return Token{Kind: KindString, Text: l.input[start:l.pos], Offset: start}, nil
		}
	}

	return Token{}, newSyntaxError(l.input, start, "unterminated string")
}

// Helper methods

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt returns the rune n runes past the current position, or 0.
func (l *Lexer) peekAt(n int) rune {
	pos := l.pos

	for ; n > 0 && pos < len(l.input); n-- {
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}

	if pos >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[pos:])

	return r
}

func (l *Lexer) advance() {
	if l.eof() {
		return
	}

	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) skipDigits() {
	for isDigit(l.peek()) {
		l.advance()
	}
}

// Character classification

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
