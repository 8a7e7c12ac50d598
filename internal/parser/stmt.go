package parser

import (
	"github.com/luxlang/luxc/internal/ast"
	"github.com/luxlang/luxc/internal/token"
)

// parseTopLevel parses one item at program or module-body level: a
// `@module` / `@use` directive, or a bare declaration/statement (for a
// module-less single file).
func (p *Parser) parseTopLevel() ast.Node {
	switch p.current().Kind {
	case token.AtModule:
		return p.parseModuleDirective()
	case token.AtUse:
		return p.parseUseDirective()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseModuleDirective() ast.Node {
	t := p.advance() // '@module'
	nameTok := p.consume(token.Ident, "Expected module name after '@module'")
	name := nameTok.Lexeme(p.src)
	p.consume(token.LBrace, "Expected '{' to open module body")

	var body []ast.Node
	for p.hasTokens() && p.current().Kind != token.RBrace {
		item := p.parseTopLevel()
		if item != nil {
			body = append(body, item)
		}
	}
	p.consume(token.RBrace, "Expected '}' to close module body")
	return ast.NewModuleDirective(p.arena, p.posOf(t), name, body)
}

func (p *Parser) parseUseDirective() ast.Node {
	t := p.advance() // '@use'
	nameTok := p.consume(token.Ident, "Expected module name after '@use'")
	alias := ""
	if p.current().Kind == token.KwAs {
		p.advance()
		aliasTok := p.consume(token.Ident, "Expected alias name after 'as'")
		alias = aliasTok.Lexeme(p.src)
	}
	p.consume(token.Semicolon, "Expected ';' after use directive")
	return ast.NewUseDirective(p.arena, p.posOf(t), nameTok.Lexeme(p.src), alias)
}

// parseStatement is the statement-head dispatch spec.md §4.5 describes:
// consume an optional pub/priv modifier, then switch on the current
// token. A parse failure inside a statement records a diagnostic; most
// sub-parsers still return a partial node, and only a nil sub-parser
// result (a malformed extern declaration) makes it resynchronize and
// return nil, which the caller (parseTopLevel's block/module loop)
// skips, matching spec.md §4.5's error policy.
func (p *Parser) parseStatement() ast.Stmt {
	stmt := p.parseStatementInner()
	return stmt
}

func (p *Parser) parseStatementInner() ast.Stmt {
	public := false
	hasVisibility := false
	if p.current().Kind == token.KwPub {
		public, hasVisibility = true, true
		p.advance()
	} else if p.current().Kind == token.KwPriv {
		public, hasVisibility = false, true
		p.advance()
	}

	var result ast.Stmt
	switch p.current().Kind {
	case token.KwConst:
		result = p.parseVarDecl(false, public)
	case token.KwLet:
		result = p.parseVarDecl(true, public)
	case token.KwFn:
		result = p.parseFuncDecl(public)
	case token.KwStruct:
		result = p.parseStructDecl()
	case token.KwEnum:
		result = p.parseEnumDecl(public)
	case token.KwExtern:
		result = p.parseExternDecl(public)
	case token.KwReturn:
		result = p.parseReturn()
	case token.LBrace:
		result = p.parseBlock()
	case token.KwIf:
		result = p.parseIf()
	case token.KwLoop:
		result = p.parseLoop()
	case token.KwOutput:
		result = p.parsePrint(false)
	case token.KwOutputln:
		result = p.parsePrint(true)
	case token.KwContinue:
		result = p.parseLoopControl(false)
	case token.KwBreak:
		result = p.parseLoopControl(true)
	case token.KwDefer:
		result = p.parseDefer()
	default:
		if hasVisibility {
			p.errorHere("'pub'/'priv' is not valid on this statement")
		}
		result = p.parseExprStmt()
	}

	if result == nil {
		p.synchronize()
	}
	return result
}

func (p *Parser) parseVarDecl(mutable, public bool) ast.Stmt {
	t := p.advance() // 'let' or 'const'
	nameTok := p.consume(token.Ident, "Expected variable name")
	name := nameTok.Lexeme(p.src)

	var annotation ast.Type
	if isTypeStart(p.current().Kind) && p.current().Kind != token.Eq {
		annotation = p.parseType()
	}

	var init ast.Expr
	if p.current().Kind == token.Eq {
		p.advance()
		init = p.parseExpr(bpAssign)
	}

	p.consume(token.Semicolon, "Expected ';' after variable declaration")
	return ast.NewVarDecl(p.arena, p.posOf(t), name, mutable, public, annotation, init)
}

func (p *Parser) parseFuncDecl(public bool) ast.Stmt {
	t := p.advance() // 'fn'
	name := p.getName()
	p.consume(token.LParen, "Expected '(' after function name")

	var params []ast.Param
	for p.hasTokens() && p.current().Kind != token.RParen {
		paramTok := p.consume(token.Ident, "Expected parameter name")
		paramType := p.parseType()
		params = append(params, ast.Param{
			Name: paramTok.Lexeme(p.src), ParamType: paramType, Pos: p.posOf(paramTok),
		})
		if p.current().Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	p.consume(token.RParen, "Expected ')' to close parameter list")

	returnType := p.parseType()
	body := p.parseBlock().(*ast.BlockStmt)
	return ast.NewFuncDecl(p.arena, p.posOf(t), name, public, params, returnType, body)
}

func (p *Parser) parseFieldList(terminator token.Kind) []ast.FieldDecl {
	var fields []ast.FieldDecl
	for p.hasTokens() && p.current().Kind != terminator && p.current().Kind != token.RBrace {
		fieldPublic := false
		if p.current().Kind == token.KwPub {
			fieldPublic = true
			p.advance()
		} else if p.current().Kind == token.KwPriv {
			p.advance()
		}
		nameTok := p.consume(token.Ident, "Expected field name")
		fieldType := p.parseType()
		p.consume(token.Semicolon, "Expected ';' after field declaration")
		fields = append(fields, ast.FieldDecl{
			Name: nameTok.Lexeme(p.src), FieldType: fieldType, Public: fieldPublic, Pos: p.posOf(nameTok),
		})
	}
	return fields
}

func (p *Parser) parseStructDecl() ast.Stmt {
	t := p.advance() // 'struct'
	name := p.getName()
	p.consume(token.LBrace, "Expected '{' to open struct body")
	fields := p.parseFieldList(token.RBrace)
	p.consume(token.RBrace, "Expected '}' to close struct body")

	var public, private []ast.FieldDecl
	for _, f := range fields {
		if f.Public {
			public = append(public, f)
		} else {
			private = append(private, f)
		}
	}
	return ast.NewStructDecl(p.arena, p.posOf(t), name, public, private)
}

func (p *Parser) parseEnumDecl(public bool) ast.Stmt {
	t := p.advance() // 'enum'
	name := p.getName()
	p.consume(token.LBrace, "Expected '{' to open enum body")

	var members []string
	for p.hasTokens() && p.current().Kind != token.RBrace {
		memberTok := p.consume(token.Ident, "Expected enum member name")
		members = append(members, p.arena.DupString(memberTok.Lexeme(p.src)))
		if p.current().Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	p.consume(token.RBrace, "Expected '}' to close enum body")
	return ast.NewEnumDecl(p.arena, p.posOf(t), name, public, members)
}

// parseExternDecl parses the supplemental `extern fn ...;` and
// `extern let name Type;` module-level forms (SPEC_FULL.md §4), reusing
// FuncDecl/VarDecl with a nil body/initializer to mark "declared but
// defined elsewhere."
func (p *Parser) parseExternDecl(public bool) ast.Stmt {
	p.advance() // 'extern'
	switch p.current().Kind {
	case token.KwFn:
		t := p.advance()
		name := p.getName()
		p.consume(token.LParen, "Expected '(' after function name")
		var params []ast.Param
		for p.hasTokens() && p.current().Kind != token.RParen {
			paramTok := p.consume(token.Ident, "Expected parameter name")
			paramType := p.parseType()
			params = append(params, ast.Param{Name: paramTok.Lexeme(p.src), ParamType: paramType, Pos: p.posOf(paramTok)})
			if p.current().Kind == token.Comma {
				p.advance()
			} else {
				break
			}
		}
		p.consume(token.RParen, "Expected ')' to close parameter list")
		returnType := p.parseType()
		p.consume(token.Semicolon, "Expected ';' after extern function declaration")
		return ast.NewFuncDecl(p.arena, p.posOf(t), name, public, params, returnType, nil)
	case token.KwLet:
		t := p.advance()
		nameTok := p.consume(token.Ident, "Expected variable name")
		annotation := p.parseType()
		p.consume(token.Semicolon, "Expected ';' after extern variable declaration")
		return ast.NewVarDecl(p.arena, p.posOf(t), nameTok.Lexeme(p.src), true, public, annotation, nil)
	default:
		p.errorHere("Expected 'fn' or 'let' after 'extern'")
		return nil
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	t := p.advance() // 'return'
	var value ast.Expr
	if p.current().Kind != token.Semicolon {
		value = p.parseExpression()
	}
	p.consume(token.Semicolon, "Expected ';' after return statement")
	return ast.NewReturn(p.arena, p.posOf(t), value)
}

func (p *Parser) parseBlock() ast.Stmt {
	t := p.consume(token.LBrace, "Expected '{' to open block")
	var stmts []ast.Stmt
	for p.hasTokens() && p.current().Kind != token.RBrace {
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RBrace, "Expected '}' to close block")
	return ast.NewBlock(p.arena, p.posOf(t), stmts)
}

// parseIf parses `if (cond) then [elif (cond) then ...] [else ...]`, per
// spec.md §4.5: all branches are block statements or single statements
// indistinguishably.
func (p *Parser) parseIf() ast.Stmt {
	t := p.advance() // 'if'
	p.consume(token.LParen, "Expected '(' after 'if'")
	cond := p.parseExpression()
	p.consume(token.RParen, "Expected ')' after if condition")
	then := p.parseBranch()

	var elifs []ast.ElifArm
	for p.current().Kind == token.KwElif {
		p.advance()
		p.consume(token.LParen, "Expected '(' after 'elif'")
		elifCond := p.parseExpression()
		p.consume(token.RParen, "Expected ')' after elif condition")
		elifs = append(elifs, ast.ElifArm{Cond: elifCond, Then: p.parseBranch()})
	}

	var elseBranch ast.Stmt
	if p.current().Kind == token.KwElse {
		p.advance()
		elseBranch = p.parseBranch()
	}
	return ast.NewIf(p.arena, p.posOf(t), cond, then, elifs, elseBranch)
}

func (p *Parser) parseBranch() ast.Stmt {
	if p.current().Kind == token.LBrace {
		return p.parseBlock()
	}
	return p.parseStatement()
}

// parseLoop detects the three shapes spec.md §4.5 names by which
// optional sub-fields end up populated: infinite (no initialisers, no
// condition), while-like (condition in parens, optional `:` increment),
// for-like (initialisers in `[...]`, condition in `(...)`, optional `:`
// increment, `{...}` body).
func (p *Parser) parseLoop() ast.Stmt {
	t := p.advance() // 'loop'

	var inits []ast.Stmt
	if p.current().Kind == token.LBracket {
		p.advance()
		for p.hasTokens() && p.current().Kind != token.RBracket {
			s := p.parseStatement()
			if s != nil {
				inits = append(inits, s)
			}
		}
		p.consume(token.RBracket, "Expected ']' to close loop initialisers")
	}

	var cond ast.Expr
	if p.current().Kind == token.LParen {
		p.advance()
		cond = p.parseExpression()
		p.consume(token.RParen, "Expected ')' after loop condition")
	}

	var increment ast.Expr
	if p.current().Kind == token.Colon {
		p.advance()
		p.consume(token.LParen, "Expected '(' after ':' in loop increment")
		increment = p.parseExpression()
		p.consume(token.RParen, "Expected ')' after loop increment")
	}

	body := p.parseBlock()
	return ast.NewLoop(p.arena, p.posOf(t), inits, cond, increment, body)
}

func (p *Parser) parsePrint(newline bool) ast.Stmt {
	t := p.advance() // 'output' or 'outputln'
	p.consume(token.LParen, "Expected '(' after print statement")
	var args []ast.Expr
	for p.hasTokens() && p.current().Kind != token.RParen {
		args = append(args, p.parseExpr(bpAssign))
		if p.current().Kind == token.Comma {
			p.advance()
		} else {
			break
		}
	}
	p.consume(token.RParen, "Expected ')' to close print arguments")
	p.consume(token.Semicolon, "Expected ';' after print statement")
	return ast.NewPrint(p.arena, p.posOf(t), args, newline)
}

func (p *Parser) parseLoopControl(isBreak bool) ast.Stmt {
	t := p.advance() // 'break' or 'continue'
	p.consume(token.Semicolon, "Expected ';' after break/continue")
	return ast.NewLoopControl(p.arena, p.posOf(t), isBreak)
}

func (p *Parser) parseDefer() ast.Stmt {
	t := p.advance() // 'defer'
	inner := p.parseStatement()
	return ast.NewDefer(p.arena, p.posOf(t), inner)
}

func (p *Parser) parseExprStmt() ast.Stmt {
	if p.current().Kind == token.Semicolon {
		t := p.advance()
		return ast.NewExprStmt(p.arena, p.posOf(t), nil)
	}
	t := p.current()
	expr := p.parseExpression()
	p.consume(token.Semicolon, "Expected ';' after expression statement")
	return ast.NewExprStmt(p.arena, p.posOf(t), expr)
}
