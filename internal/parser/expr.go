package parser

import (
	"github.com/luxlang/luxc/internal/ast"
	"github.com/luxlang/luxc/internal/token"
)

// nudFn is a null-denotation parser: given the parser positioned at the
// token that starts an expression, consume it (and whatever it
// introduces) and return the expression. ledFn is a left-denotation
// parser: given the already-parsed left operand (with the operator
// token still current), consume the operator and its right-hand side.
// Both are looked up by token kind in fixed tables built once in init,
// per spec.md §4.5/§9: "encode as two pure functions keyed by token
// kind; binding powers in a single static table."
type nudFn func(p *Parser) ast.Expr
type ledFn func(p *Parser, left ast.Expr) ast.Expr

var nudTable map[token.Kind]nudFn
var ledTable map[token.Kind]ledFn

func init() {
	nudTable = map[token.Kind]nudFn{
		token.IntLiteral:    nudIntLiteral,
		token.FloatLiteral:  nudFloatLiteral,
		token.StringLiteral: nudStringLiteral,
		token.CharLiteral:   nudCharLiteral,
		token.KwTrue:        nudBoolLiteral(true),
		token.KwFalse:       nudBoolLiteral(false),
		token.Ident:         nudIdentifier,
		token.Minus:         nudUnaryPrefix(ast.UnaryNeg),
		token.Plus:          nudUnaryPrefix(ast.UnaryPlus),
		token.Bang:          nudUnaryPrefix(ast.UnaryLNot),
		token.Tilde:         nudUnaryPrefix(ast.UnaryBitNot),
		token.PlusPlus:      nudUnaryPrefix(ast.UnaryPreInc),
		token.MinusMinus:    nudUnaryPrefix(ast.UnaryPreDec),
		token.Star:          nudDereference,
		token.Amp:           nudAddress,
		token.LParen:        nudGrouping,
		token.LBracket:      nudArrayLiteral,
		token.KwCast:        nudCast,
		token.KwSizeof:      nudSizeof,
		token.KwAlloc:       nudAlloc,
		token.KwFree:        nudRelease,
		token.KwMemcpy:      nudCopy,
	}

	ledTable = map[token.Kind]ledFn{
		token.Eq:         ledAssign,
		token.Question:   ledTernary,
		token.PipePipe:   ledBinary(ast.OpLOr),
		token.AmpAmp:     ledBinary(ast.OpLAnd),
		token.Pipe:       ledBinary(ast.OpBitOr),
		token.Caret:      ledBinary(ast.OpBitXor),
		token.Amp:        ledBinary(ast.OpBitAnd),
		token.EqEq:       ledBinary(ast.OpEqEq),
		token.NotEq:      ledBinary(ast.OpNotEq),
		token.Lt:         ledBinary(ast.OpLt),
		token.LtEq:       ledBinary(ast.OpLtEq),
		token.Gt:         ledBinary(ast.OpGt),
		token.GtEq:       ledBinary(ast.OpGtEq),
		token.Shl:        ledBinary(ast.OpShl),
		token.Shr:        ledBinary(ast.OpShr),
		token.Plus:       ledBinary(ast.OpAdd),
		token.Minus:      ledBinary(ast.OpSub),
		token.Star:       ledBinary(ast.OpMul),
		token.Slash:      ledBinary(ast.OpDiv),
		token.Percent:    ledBinary(ast.OpMod),
		token.PlusPlus:   ledPostfix(ast.UnaryPostInc),
		token.MinusMinus: ledPostfix(ast.UnaryPostDec),
		token.Dot:        ledMember,
		token.LBracket:   ledIndex,
		token.LParen:     ledCall,
		token.KwAs:       ledCast,
	}
}

// parseExpr is the Pratt core (spec.md §4.5): obtain a nud result, then
// while the current token's led binding power exceeds minBP, replace the
// accumulated expression with that token's led result.
func (p *Parser) parseExpr(minBP bp) ast.Expr {
	t := p.current()
	nud, ok := nudTable[t.Kind]
	if !ok {
		p.errorHere("Unexpected token in expression: '%s'", t.Kind)
		p.advance()
		return nil
	}
	left := nud(p)

	for {
		t := p.current()
		power, ok := ledBindingPower[t.Kind]
		if !ok || power <= minBP {
			break
		}
		led := ledTable[t.Kind]
		if led == nil {
			break
		}
		left = led(p, left)
	}
	return left
}

func (p *Parser) parseExpression() ast.Expr {
	return p.parseExpr(bpLowest)
}

// --- nud functions ---

func nudIntLiteral(p *Parser) ast.Expr {
	t := p.advance()
	return ast.NewIntLiteral(p.arena, p.posOf(t), parseIntLiteral(t.Lexeme(p.src)))
}

func nudFloatLiteral(p *Parser) ast.Expr {
	t := p.advance()
	return ast.NewFloatLiteral(p.arena, p.posOf(t), parseFloatLiteral(t.Lexeme(p.src)))
}

func nudStringLiteral(p *Parser) ast.Expr {
	t := p.advance()
	return ast.NewStringLiteral(p.arena, p.posOf(t), t.Lexeme(p.src))
}

func nudCharLiteral(p *Parser) ast.Expr {
	t := p.advance()
	lex := t.Lexeme(p.src)
	var v byte
	if len(lex) > 0 {
		v = lex[0]
	}
	return ast.NewCharLiteral(p.arena, p.posOf(t), v)
}

func nudBoolLiteral(v bool) nudFn {
	return func(p *Parser) ast.Expr {
		t := p.advance()
		return ast.NewBoolLiteral(p.arena, p.posOf(t), v)
	}
}

// nudIdentifier also recognizes struct-literal construction
// (`Name{ field: expr, ... }`), a supplemental expression form per
// SPEC_FULL.md §4.
func nudIdentifier(p *Parser) ast.Expr {
	t := p.advance()
	name := t.Lexeme(p.src)
	if p.current().Kind == token.LBrace {
		return p.parseStructLiteral(p.posOf(t), name)
	}
	return ast.NewIdentifier(p.arena, p.posOf(t), name)
}

func (p *Parser) parseStructLiteral(pos Pos, structName string) ast.Expr {
	p.advance() // '{'
	var fields []ast.StructFieldInit
	for p.hasTokens() && p.current().Kind != token.RBrace {
		fieldTok := p.consume(token.Ident, "Expected field name in struct literal")
		fieldName := fieldTok.Lexeme(p.src)
		p.consume(token.Colon, "Expected ':' after field name")
		value := p.parseExpr(bpAssign)
		fields = append(fields, ast.StructFieldInit{Field: p.arena.DupString(fieldName), Value: value})
		if p.current().Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	p.consume(token.RBrace, "Expected '}' to close struct literal")
	return ast.NewStructLiteral(p.arena, pos, structName, fields)
}

func nudUnaryPrefix(op ast.UnaryOp) nudFn {
	return func(p *Parser) ast.Expr {
		t := p.advance()
		operand := p.parseExpr(bpUnary)
		return ast.NewUnary(p.arena, p.posOf(t), op, operand)
	}
}

func nudDereference(p *Parser) ast.Expr {
	t := p.advance()
	operand := p.parseExpr(bpUnary)
	return ast.NewDereference(p.arena, p.posOf(t), operand)
}

func nudAddress(p *Parser) ast.Expr {
	t := p.advance()
	operand := p.parseExpr(bpUnary)
	return ast.NewAddress(p.arena, p.posOf(t), operand)
}

func nudGrouping(p *Parser) ast.Expr {
	t := p.advance() // '('
	inner := p.parseExpr(bpLowest)
	p.consume(token.RParen, "Expected ')' to close grouping")
	return ast.NewGrouping(p.arena, p.posOf(t), inner)
}

func nudArrayLiteral(p *Parser) ast.Expr {
	t := p.advance() // '['
	var elems []ast.Expr
	for p.hasTokens() && p.current().Kind != token.RBracket {
		elems = append(elems, p.parseExpr(bpAssign))
		if p.current().Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	p.consume(token.RBracket, "Expected ']' to close array literal")
	return ast.NewArrayLiteral(p.arena, p.posOf(t), elems)
}

func nudCast(p *Parser) ast.Expr {
	t := p.advance() // 'cast'
	p.consume(token.LParen, "Expected '(' after 'cast'")
	target := p.parseType()
	p.consume(token.Comma, "Expected ',' between cast target type and expression")
	operand := p.parseExpr(bpAssign)
	p.consume(token.RParen, "Expected ')' to close cast")
	return ast.NewCast(p.arena, p.posOf(t), target, operand)
}

func nudSizeof(p *Parser) ast.Expr {
	t := p.advance() // 'sizeof'
	p.consume(token.LParen, "Expected '(' after 'sizeof'")
	if isTypeStart(p.current().Kind) {
		target := p.parseType()
		p.consume(token.RParen, "Expected ')' to close sizeof")
		return ast.NewSizeofType(p.arena, p.posOf(t), target)
	}
	operand := p.parseExpr(bpAssign)
	p.consume(token.RParen, "Expected ')' to close sizeof")
	return ast.NewSizeofExpr(p.arena, p.posOf(t), operand)
}

func nudAlloc(p *Parser) ast.Expr {
	t := p.advance() // 'alloc'
	p.consume(token.LParen, "Expected '(' after 'alloc'")
	size := p.parseExpr(bpAssign)
	p.consume(token.RParen, "Expected ')' to close alloc")
	return ast.NewAlloc(p.arena, p.posOf(t), size)
}

func nudRelease(p *Parser) ast.Expr {
	t := p.advance() // 'free'
	p.consume(token.LParen, "Expected '(' after 'free'")
	operand := p.parseExpr(bpAssign)
	p.consume(token.RParen, "Expected ')' to close free")
	return ast.NewRelease(p.arena, p.posOf(t), operand)
}

func nudCopy(p *Parser) ast.Expr {
	t := p.advance() // 'memcpy'
	p.consume(token.LParen, "Expected '(' after 'memcpy'")
	dest := p.parseExpr(bpAssign)
	p.consume(token.Comma, "Expected ',' after memcpy destination")
	src := p.parseExpr(bpAssign)
	p.consume(token.Comma, "Expected ',' after memcpy source")
	size := p.parseExpr(bpAssign)
	p.consume(token.RParen, "Expected ')' to close memcpy")
	return ast.NewCopy(p.arena, p.posOf(t), dest, src, size)
}

// --- led functions ---

func ledBinary(op ast.BinaryOp) ledFn {
	return func(p *Parser, left ast.Expr) ast.Expr {
		t := p.advance()
		power := ledBindingPower[t.Kind]
		right := p.parseExpr(power)
		return ast.NewBinary(p.arena, p.posOf(t), op, left, right)
	}
}

func ledAssign(p *Parser, left ast.Expr) ast.Expr {
	t := p.advance() // '='
	// Right-associative: re-enter at one below assign's own power.
	right := p.parseExpr(bpAssign - 1)
	return ast.NewAssign(p.arena, p.posOf(t), left, right)
}

func ledTernary(p *Parser, left ast.Expr) ast.Expr {
	t := p.advance() // '?'
	then := p.parseExpr(bpAssign)
	p.consume(token.Colon, "Expected ':' in ternary expression")
	els := p.parseExpr(bpAssign)
	return ast.NewTernary(p.arena, p.posOf(t), left, then, els)
}

func ledPostfix(op ast.UnaryOp) ledFn {
	return func(p *Parser, left ast.Expr) ast.Expr {
		t := p.advance()
		return ast.NewUnary(p.arena, p.posOf(t), op, left)
	}
}

func ledMember(p *Parser, left ast.Expr) ast.Expr {
	t := p.advance() // '.'
	fieldTok := p.consume(token.Ident, "Expected field name after '.'")
	return ast.NewMember(p.arena, p.posOf(t), left, fieldTok.Lexeme(p.src))
}

func ledIndex(p *Parser, left ast.Expr) ast.Expr {
	t := p.advance() // '['
	idx := p.parseExpr(bpLowest)
	p.consume(token.RBracket, "Expected ']' to close index")
	return ast.NewIndex(p.arena, p.posOf(t), left, idx)
}

// ledCast handles the infix `expr as Type` cast form, distinct from the
// prefix `cast(Type, expr)` nud form — both produce a CastExpr.
func ledCast(p *Parser, left ast.Expr) ast.Expr {
	t := p.advance() // 'as'
	target := p.parseType()
	return ast.NewCast(p.arena, p.posOf(t), target, left)
}

func ledCall(p *Parser, left ast.Expr) ast.Expr {
	t := p.advance() // '('
	var args []ast.Expr
	for p.hasTokens() && p.current().Kind != token.RParen {
		args = append(args, p.parseExpr(bpAssign))
		if p.current().Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	p.consume(token.RParen, "Expected ')' to close call arguments")
	return ast.NewCall(p.arena, p.posOf(t), left, args)
}
