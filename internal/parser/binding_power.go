package parser

import "github.com/luxlang/luxc/internal/token"

// bp is a binding-power level. Higher binds tighter. The ordering
// follows spec.md §4.5's table exactly.
type bp int

const (
	bpNone bp = iota
	bpLowest
	bpAssign
	bpTernary
	bpLogicalOr
	bpLogicalAnd
	bpBitOr
	bpBitXor
	bpBitAnd
	bpEquality
	bpRelational
	bpShift
	bpAdditive
	bpMultiplicative
	bpExponent
	bpUnary
	bpPostfix
	bpCall
	bpPrimary
)

// ledBindingPower maps a token kind, when it appears in led (infix /
// postfix) position, to its binding power. A token absent from this
// table has no led role and stops parse_expr's loop (spec.md §4.5: "the
// same token kind may appear in both nud and led roles").
var ledBindingPower = map[token.Kind]bp{
	token.Eq:         bpAssign,
	token.Question:   bpTernary,
	token.PipePipe:   bpLogicalOr,
	token.AmpAmp:     bpLogicalAnd,
	token.Pipe:       bpBitOr,
	token.Caret:      bpBitXor,
	token.Amp:        bpBitAnd,
	token.EqEq:       bpEquality,
	token.NotEq:      bpEquality,
	token.Lt:         bpRelational,
	token.LtEq:       bpRelational,
	token.Gt:         bpRelational,
	token.GtEq:       bpRelational,
	token.Shl:        bpShift,
	token.Shr:        bpShift,
	token.Plus:       bpAdditive,
	token.Minus:      bpAdditive,
	token.Star:       bpMultiplicative,
	token.Slash:      bpMultiplicative,
	token.Percent:    bpMultiplicative,
	token.PlusPlus:   bpPostfix,
	token.MinusMinus: bpPostfix,
	token.Dot:        bpPostfix,
	token.LBracket:   bpPostfix,
	token.LParen:     bpCall,
	token.KwAs:       bpUnary,
}
