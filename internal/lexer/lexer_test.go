package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxlang/luxc/internal/diag"
	"github.com/luxlang/luxc/internal/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Sink) {
	t.Helper()
	var sink diag.Sink
	toks := ScanAll([]byte(src), "test.lux", &sink)
	return toks, &sink
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tk := range toks {
		ks[i] = tk.Kind
	}
	return ks
}

func TestScansKeywordsAndIdentifiers(t *testing.T) {
	toks, sink := scan(t, "fn main let x pub")
	require.False(t, sink.HasErrors())
	require.Equal(t, []token.Kind{
		token.KwFn, token.Ident, token.KwLet, token.Ident, token.KwPub, token.EOF,
	}, kinds(toks))
}

func TestScansIntAndFloatLiterals(t *testing.T) {
	toks, sink := scan(t, "42 3.14 7")
	require.False(t, sink.HasErrors())
	require.Equal(t, []token.Kind{
		token.IntLiteral, token.FloatLiteral, token.IntLiteral, token.EOF,
	}, kinds(toks))
}

func TestScansStringLiteralLexeme(t *testing.T) {
	toks, sink := scan(t, `"hello, lux"`)
	require.False(t, sink.HasErrors())
	require.Equal(t, token.StringLiteral, toks[0].Kind)
	require.Equal(t, "hello, lux", toks[0].Lexeme([]byte(`"hello, lux"`)))
}

func TestUnterminatedStringReportsDiagnostic(t *testing.T) {
	_, sink := scan(t, `"never closes`)
	require.True(t, sink.HasErrors())
	require.Contains(t, sink.Records()[0].Message, "Unterminated string literal")
}

func TestLineCommentIsSkipped(t *testing.T) {
	toks, sink := scan(t, "let x :: this is ignored\nlet y")
	require.False(t, sink.HasErrors())
	require.Equal(t, []token.Kind{
		token.KwLet, token.Ident, token.KwLet, token.Ident, token.EOF,
	}, kinds(toks))
	// "let y" begins on line 2.
	require.Equal(t, 2, toks[2].Line)
}

func TestBlockCommentIsSkipped(t *testing.T) {
	toks, sink := scan(t, "let /* skip\nthis */ x = 1;")
	require.False(t, sink.HasErrors())
	require.Equal(t, []token.Kind{
		token.KwLet, token.Ident, token.Eq, token.IntLiteral, token.Semicolon, token.EOF,
	}, kinds(toks))
}

func TestTwoCharOperatorsPreferredOverOneChar(t *testing.T) {
	toks, sink := scan(t, "a == b != c <= d >= e && f || g")
	require.False(t, sink.HasErrors())
	require.Equal(t, []token.Kind{
		token.Ident, token.EqEq, token.Ident, token.NotEq, token.Ident, token.LtEq,
		token.Ident, token.GtEq, token.Ident, token.AmpAmp, token.Ident, token.PipePipe,
		token.Ident, token.EOF,
	}, kinds(toks))
}

func TestModuleDirective(t *testing.T) {
	toks, sink := scan(t, "@module foo")
	require.False(t, sink.HasErrors())
	require.Equal(t, token.AtModule, toks[0].Kind)
}

func TestUnknownDirectiveReportsDiagnostic(t *testing.T) {
	_, sink := scan(t, "@bogus")
	require.True(t, sink.HasErrors())
	require.Contains(t, sink.Records()[0].Message, "Unknown preprocessor directive")
}

func TestUnknownCharacterReportsDiagnostic(t *testing.T) {
	_, sink := scan(t, "let x = `;")
	require.True(t, sink.HasErrors())
	require.Contains(t, sink.Records()[0].Message, "Token not found")
}

func TestWhitespaceLenAccounting(t *testing.T) {
	toks, _ := scan(t, "a    b")
	require.Equal(t, 0, toks[0].WhitespaceLen)
	require.Equal(t, 4, toks[1].WhitespaceLen)
}
