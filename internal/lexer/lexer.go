// Package lexer scans Lux source bytes into a token stream, generalizing
// wut4's lang/ylex peek/peekN/advance/skipWhitespace discipline
// (lang/ylex/lexer.go) from a stdin-oriented, line-buffered scanner into
// one that holds the whole source buffer and hands out Offset/Length
// references into it, per spec.md §4.3.
package lexer

import (
	"github.com/luxlang/luxc/internal/diag"
	"github.com/luxlang/luxc/internal/token"
)

// Lexer scans one source buffer. The zero value is not usable; use New.
type Lexer struct {
	src    []byte
	file   string
	sink   *diag.Sink
	offset int
	line   int
	column int
}

// New creates a Lexer over src. file names the source for diagnostics;
// sink receives lexical error records (spec.md §4.3: "the lexer never
// allocates AST memory; it writes error records to the sink").
func New(src []byte, file string, sink *diag.Sink) *Lexer {
	return &Lexer{src: src, file: file, sink: sink, line: 1, column: 1}
}

func (l *Lexer) atEnd() bool { return l.offset >= len(l.src) }

func (l *Lexer) peek(n int) byte {
	i := l.offset + n
	if i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.offset]
	l.offset++
	if ch == '\n' {
		l.line++
		l.column = 0
	}
	l.column++
	return ch
}

// skipWhitespace consumes whitespace, "::" line comments, and "/* */"
// block comments, returning the number of bytes skipped.
func (l *Lexer) skipWhitespace() int {
	start := l.offset
	for !l.atEnd() {
		ch := l.peek(0)
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == ':' && l.peek(1) == ':':
			for !l.atEnd() && l.peek(0) != '\n' {
				l.advance()
			}
		case ch == '/' && l.peek(1) == '*':
			l.advance()
			l.advance()
			for !l.atEnd() && !(l.peek(0) == '*' && l.peek(1) == '/') {
				l.advance()
			}
			if !l.atEnd() {
				l.advance()
				l.advance()
			}
		default:
			return l.offset - start
		}
	}
	return l.offset - start
}

func isAlpha(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
func isAlnum(ch byte) bool { return isAlpha(ch) || isDigit(ch) }

var twoCharSymbols = map[string]token.Kind{
	"==": token.EqEq, "!=": token.NotEq, "<=": token.LtEq, ">=": token.GtEq,
	"&&": token.AmpAmp, "||": token.PipePipe, "<<": token.Shl, ">>": token.Shr,
	"++": token.PlusPlus, "--": token.MinusMinus, "::": token.ColonColon,
}

var oneCharSymbols = map[byte]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'%': token.Percent, '<': token.Lt, '>': token.Gt, '&': token.Amp,
	'|': token.Pipe, '^': token.Caret, '~': token.Tilde, '=': token.Eq,
	'?': token.Question, ':': token.Colon, '(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace, '[': token.LBracket, ']': token.RBracket,
	',': token.Comma, ';': token.Semicolon, '.': token.Dot, '!': token.Bang,
}

// Next scans and returns the next token. Called repeatedly until it
// returns a token.EOF token.
func (l *Lexer) Next() token.Token {
	wsLen := l.skipWhitespace()

	startLine, startCol, startOffset := l.line, l.column, l.offset

	mk := func(kind token.Kind, length int) token.Token {
		return token.Token{
			Kind: kind, Offset: startOffset, Length: length,
			Line: startLine, Column: startCol, WhitespaceLen: wsLen,
		}
	}

	if l.atEnd() {
		return mk(token.EOF, 0)
	}

	ch := l.peek(0)

	if ch == '@' {
		l.advance()
		idStart := l.offset
		for !l.atEnd() && isAlnum(l.peek(0)) {
			l.advance()
		}
		name := string(l.src[idStart:l.offset])
		if kind, ok := token.LookupDirective(name); ok {
			return mk(kind, l.offset-startOffset)
		}
		l.sink.Errorf(diag.Lexical, l.file, startLine, startCol, l.currentSourceLine(startOffset), l.offset-startOffset,
			"Unknown preprocessor directive '@%s'", name)
		return mk(token.Error, l.offset-startOffset)
	}

	if isAlpha(ch) {
		for !l.atEnd() && isAlnum(l.peek(0)) {
			l.advance()
		}
		text := string(l.src[startOffset:l.offset])
		if kind, ok := token.LookupKeyword(text); ok {
			return mk(kind, l.offset-startOffset)
		}
		return mk(token.Ident, l.offset-startOffset)
	}

	if isDigit(ch) {
		for !l.atEnd() && isDigit(l.peek(0)) {
			l.advance()
		}
		if !l.atEnd() && l.peek(0) == '.' && isDigit(l.peek(1)) {
			l.advance() // '.'
			for !l.atEnd() && isDigit(l.peek(0)) {
				l.advance()
			}
			return mk(token.FloatLiteral, l.offset-startOffset)
		}
		return mk(token.IntLiteral, l.offset-startOffset)
	}

	if ch == '"' {
		l.advance()
		interiorStart := l.offset
		for !l.atEnd() && l.peek(0) != '"' {
			l.advance()
		}
		interiorLen := l.offset - interiorStart
		if l.atEnd() {
			l.sink.Errorf(diag.Lexical, l.file, startLine, startCol, l.currentSourceLine(startOffset), l.offset-startOffset,
				"Unterminated string literal")
			return token.Token{
				Kind: token.Error, Offset: interiorStart, Length: interiorLen,
				Line: startLine, Column: startCol, WhitespaceLen: wsLen,
			}
		}
		l.advance() // closing quote
		return token.Token{
			Kind: token.StringLiteral, Offset: interiorStart, Length: interiorLen,
			Line: startLine, Column: startCol, WhitespaceLen: wsLen,
		}
	}

	if ch == '\'' {
		l.advance()
		interiorStart := l.offset
		if !l.atEnd() && l.peek(0) == '\\' {
			l.advance()
		}
		if !l.atEnd() {
			l.advance()
		}
		interiorLen := l.offset - interiorStart
		if l.atEnd() || l.peek(0) != '\'' {
			l.sink.Errorf(diag.Lexical, l.file, startLine, startCol, l.currentSourceLine(startOffset), l.offset-startOffset,
				"Unterminated char literal")
			return mk(token.Error, l.offset-startOffset)
		}
		l.advance()
		return token.Token{
			Kind: token.CharLiteral, Offset: interiorStart, Length: interiorLen,
			Line: startLine, Column: startCol, WhitespaceLen: wsLen,
		}
	}

	if l.offset+1 < len(l.src) {
		two := string(l.src[l.offset : l.offset+2])
		if kind, ok := twoCharSymbols[two]; ok {
			l.advance()
			l.advance()
			return mk(kind, 2)
		}
	}

	if kind, ok := oneCharSymbols[ch]; ok {
		l.advance()
		return mk(kind, 1)
	}

	l.advance()
	l.sink.Errorf(diag.Lexical, l.file, startLine, startCol, l.currentSourceLine(startOffset), 1,
		"Token not found: '%c'", ch)
	return mk(token.Error, 1)
}

// currentSourceLine reconstructs the full source line containing offset,
// for diagnostic display (spec.md §6's caret-underlined format).
func (l *Lexer) currentSourceLine(offset int) string {
	start := offset
	for start > 0 && l.src[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(l.src) && l.src[end] != '\n' {
		end++
	}
	return string(l.src[start:end])
}

// ScanAll pumps tokens until EOF, appending each (including the final EOF
// token) in order. This is the shape the driver uses per spec.md §4.8.
func ScanAll(src []byte, file string, sink *diag.Sink) []token.Token {
	lx := New(src, file, sink)
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks
}
