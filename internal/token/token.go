// Package token defines the lexical token kinds and the Token value type
// shared by the lexer and parser, generalizing wut4's ylex/yparse token
// categories (KEY/ID/PUNCT/LIT/EOF strings) into a single closed Kind
// enumeration with richer diagnostic metadata, per spec.md §3.
package token

import "fmt"

// Kind enumerates every lexical token kind. Grouped by role; the zero
// value is never a valid emitted token.
type Kind int

const (
	Invalid Kind = iota

	EOF
	Error

	Ident
	IntLiteral
	FloatLiteral
	StringLiteral
	CharLiteral

	// Keywords
	KwIf
	KwElif
	KwElse
	KwLoop
	KwReturn
	KwBreak
	KwContinue
	KwStruct
	KwEnum
	KwMod
	KwImport
	KwTrue
	KwFalse
	KwPub
	KwPriv
	KwVoid
	KwChar
	KwStr
	KwInt
	KwFloat
	KwDouble
	KwBool
	KwLet
	KwConst
	KwFn
	KwOutput
	KwOutputln
	KwAlloc
	KwFree
	KwCast
	KwMemcpy
	KwSizeof
	KwAs
	KwDefer  // not in spec.md §6's keyword table, but required to spell
	         // the "deferred-cleanup statement" spec.md §1/§4.7/§9/GLOSSARY
	         // otherwise has no surface syntax to produce; see DESIGN.md.
	KwExtern // supplemental, see SPEC_FULL.md §4

	// Preprocessor directives
	AtModule
	AtUse

	// Punctuation / operators
	Plus
	Minus
	Star
	Slash
	Percent
	EqEq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	AmpAmp
	PipePipe
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	Eq
	PlusPlus
	MinusMinus
	Question
	Colon
	ColonColon
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Dot
	Bang
	At
)

var keywords = map[string]Kind{
	"if": KwIf, "elif": KwElif, "else": KwElse, "loop": KwLoop,
	"return": KwReturn, "break": KwBreak, "continue": KwContinue,
	"struct": KwStruct, "enum": KwEnum, "mod": KwMod, "import": KwImport,
	"true": KwTrue, "false": KwFalse, "pub": KwPub, "priv": KwPriv,
	"void": KwVoid, "char": KwChar, "str": KwStr, "int": KwInt,
	"float": KwFloat, "double": KwDouble, "bool": KwBool, "let": KwLet,
	"const": KwConst, "fn": KwFn, "output": KwOutput, "outputln": KwOutputln,
	"alloc": KwAlloc, "free": KwFree, "cast": KwCast, "memcpy": KwMemcpy,
	"sizeof": KwSizeof, "as": KwAs, "defer": KwDefer, "extern": KwExtern,
}

// LookupKeyword returns the keyword Kind for ident, and false if ident is
// not a reserved word.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

var directives = map[string]Kind{
	"module": AtModule,
	"use":    AtUse,
}

// LookupDirective returns the directive Kind for the identifier following
// '@', and false if name is not a recognized directive.
func LookupDirective(name string) (Kind, bool) {
	k, ok := directives[name]
	return k, ok
}

var kindNames = map[Kind]string{
	Invalid: "<invalid>", EOF: "<eof>", Error: "<error>",
	Ident: "identifier", IntLiteral: "int literal", FloatLiteral: "float literal",
	StringLiteral: "string literal", CharLiteral: "char literal",
	KwIf: "if", KwElif: "elif", KwElse: "else", KwLoop: "loop",
	KwReturn: "return", KwBreak: "break", KwContinue: "continue",
	KwStruct: "struct", KwEnum: "enum", KwMod: "mod", KwImport: "import",
	KwTrue: "true", KwFalse: "false", KwPub: "pub", KwPriv: "priv",
	KwVoid: "void", KwChar: "char", KwStr: "str", KwInt: "int",
	KwFloat: "float", KwDouble: "double", KwBool: "bool", KwLet: "let",
	KwConst: "const", KwFn: "fn", KwOutput: "output", KwOutputln: "outputln",
	KwAlloc: "alloc", KwFree: "free", KwCast: "cast", KwMemcpy: "memcpy",
	KwSizeof: "sizeof", KwAs: "as", KwDefer: "defer", KwExtern: "extern",
	AtModule: "@module", AtUse: "@use",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	EqEq: "==", NotEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	AmpAmp: "&&", PipePipe: "||", Amp: "&", Pipe: "|", Caret: "^",
	Tilde: "~", Shl: "<<", Shr: ">>", Eq: "=", PlusPlus: "++",
	MinusMinus: "--", Question: "?", Colon: ":", ColonColon: "::",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Semicolon: ";", Dot: ".",
	Bang: "!", At: "@",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is an immutable, value-typed, copyable record of one lexical
// token. Lexeme is a reference into the source buffer (Offset, Length);
// the reference is valid for the lifetime of that buffer and no string
// copy is made for it (spec.md §3's round-trip invariant: the caller
// re-derives source[Offset:Offset+Length] from the original buffer).
type Token struct {
	Kind          Kind
	Offset        int
	Length        int
	Line          int // 1-based
	Column        int // 1-based
	WhitespaceLen int // bytes of whitespace/comments preceding this token
}

// Lexeme returns the token's source text given the buffer it was lexed
// from.
func (t Token) Lexeme(source []byte) string {
	return string(source[t.Offset : t.Offset+t.Length])
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%d:%d", t.Kind, t.Line, t.Column)
}
