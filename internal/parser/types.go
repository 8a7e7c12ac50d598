package parser

import (
	"github.com/luxlang/luxc/internal/ast"
	"github.com/luxlang/luxc/internal/token"
)

var basicTypeKeywords = map[token.Kind]string{
	token.KwVoid:   "void",
	token.KwChar:   "char",
	token.KwStr:    "str",
	token.KwInt:    "int",
	token.KwFloat:  "float",
	token.KwDouble: "double",
	token.KwBool:   "bool",
}

func isTypeStart(k token.Kind) bool {
	if _, ok := basicTypeKeywords[k]; ok {
		return true
	}
	return k == token.Star || k == token.LBracket || k == token.Ident
}

// parseType shares the nud/led pattern spec.md §4.5 describes for types:
// basic-type keywords produce named basic types; '*' produces a pointer
// to the subsequent type; '[' produces an array type; identifiers
// produce named references to struct/enum declarations.
func (p *Parser) parseType() ast.Type {
	t := p.current()

	if name, ok := basicTypeKeywords[t.Kind]; ok {
		p.advance()
		return ast.NewBasicType(p.arena, p.posOf(t), name)
	}

	switch t.Kind {
	case token.Star:
		p.advance()
		pointee := p.parseType()
		return ast.NewPointerType(p.arena, p.posOf(t), pointee)
	case token.LBracket:
		p.advance()
		elem := p.parseType()
		p.consume(token.Semicolon, "Expected ';' between array element type and size")
		size := p.parseExpr(bpAssign)
		p.consume(token.RBracket, "Expected ']' to close array type")
		return ast.NewArrayType(p.arena, p.posOf(t), elem, size)
	case token.Ident:
		p.advance()
		return ast.NewNamedType(p.arena, p.posOf(t), t.Lexeme(p.src))
	case token.KwFn:
		return p.parseFunctionType()
	}

	p.errorHere("Expected a type, found '%s'", t.Kind)
	p.advance()
	return ast.NewBasicType(p.arena, p.posOf(t), "void")
}

// parseFunctionType parses `fn(ParamType, ...) ReturnType` as a type
// expression (used for function-valued parameters; ordinary function
// declarations parse their own signature in stmt.go).
func (p *Parser) parseFunctionType() ast.Type {
	t := p.advance() // 'fn'
	p.consume(token.LParen, "Expected '(' in function type")
	var params []ast.Type
	for p.hasTokens() && p.current().Kind != token.RParen {
		params = append(params, p.parseType())
		if p.current().Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	p.consume(token.RParen, "Expected ')' to close function type parameters")
	ret := p.parseType()
	return ast.NewFunctionType(p.arena, p.posOf(t), params, ret)
}
