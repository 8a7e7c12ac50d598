package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxlang/luxc/internal/arena"
	"github.com/luxlang/luxc/internal/ast"
	"github.com/luxlang/luxc/internal/diag"
	"github.com/luxlang/luxc/internal/lexer"
)

func parseExprFrom(t *testing.T, src string) (ast.Expr, *diag.Sink) {
	t.Helper()
	a := arena.New(0)
	var sink diag.Sink
	toks := lexer.ScanAll([]byte(src), "test.lux", &sink)
	p := New(a, []byte(src), "test.lux", &sink, toks)
	return p.parseExpression(), &sink
}

func parseProgramFrom(t *testing.T, src string) (*ast.ProgramStmt, *diag.Sink) {
	t.Helper()
	a := arena.New(0)
	var sink diag.Sink
	toks := lexer.ScanAll([]byte(src), "test.lux", &sink)
	p := New(a, []byte(src), "test.lux", &sink, toks)
	return p.Parse(), &sink
}

func TestPratPrecedenceAddBeforeMul(t *testing.T) {
	expr, sink := parseExprFrom(t, "a + b * c")
	require.False(t, sink.HasErrors())

	bin, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpAdd, bin.Op)

	_, leftIsIdent := bin.Left.(*ast.IdentifierExpr)
	require.True(t, leftIsIdent)

	right, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpMul, right.Op)
}

func TestPrattPrecedenceEqBeforeAnd(t *testing.T) {
	expr, sink := parseExprFrom(t, "a == b && c")
	require.False(t, sink.HasErrors())

	bin, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpLAnd, bin.Op)

	left, ok := bin.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpEqEq, left.Op)
}

func TestAssignIsRightAssociative(t *testing.T) {
	expr, sink := parseExprFrom(t, "a = b = c")
	require.False(t, sink.HasErrors())

	outer, ok := expr.(*ast.AssignExpr)
	require.True(t, ok)
	inner, ok := outer.Value.(*ast.AssignExpr)
	require.True(t, ok)
	_ = inner
}

func TestStarIsBothNudAndLed(t *testing.T) {
	deref, sink := parseExprFrom(t, "*p")
	require.False(t, sink.HasErrors())
	_, ok := deref.(*ast.DereferenceExpr)
	require.True(t, ok)

	mul, sink2 := parseExprFrom(t, "a * b")
	require.False(t, sink2.HasErrors())
	_, ok = mul.(*ast.BinaryExpr)
	require.True(t, ok)
}

func TestStructLiteralExpression(t *testing.T) {
	expr, sink := parseExprFrom(t, `Point{x: 1, y: 2}`)
	require.False(t, sink.HasErrors())
	lit, ok := expr.(*ast.StructLiteralExpr)
	require.True(t, ok)
	require.Equal(t, "Point", lit.StructName)
	require.Len(t, lit.Fields, 2)
}

func TestHelloProgramParses(t *testing.T) {
	src := `@module main { fn main() int { outputln("hi"); return 0; } }`
	prog, sink := parseProgramFrom(t, src)
	require.False(t, sink.HasErrors())
	require.Len(t, prog.Items, 1)

	mod, ok := prog.Items[0].(*ast.ModuleDirective)
	require.True(t, ok)
	require.Equal(t, "main", mod.Name)
	require.Len(t, mod.Body, 1)

	fn, ok := mod.Body[0].(*ast.FuncDecl)
	require.True(t, ok)
	require.Equal(t, "main", fn.Name)
	require.Empty(t, fn.Params)
	require.Len(t, fn.Body.Stmts, 2)
}

func TestLoopShapesParseDistinctly(t *testing.T) {
	infinite, sink := parseProgramFrom(t, `fn f() void { loop { break; } }`)
	require.False(t, sink.HasErrors())
	loop := findFirstLoop(t, infinite)
	require.Empty(t, loop.Inits)
	require.Nil(t, loop.Cond)

	whileLike, sink2 := parseProgramFrom(t, `fn f() void { let i int = 0; loop (i < 10) : (i++) { } }`)
	require.False(t, sink2.HasErrors())
	loop2 := findFirstLoop(t, whileLike)
	require.Empty(t, loop2.Inits)
	require.NotNil(t, loop2.Cond)
	require.NotNil(t, loop2.Increment)

	forLike, sink3 := parseProgramFrom(t, `fn f() void { loop [let i int = 0;](i < 10) : (i++) { } }`)
	require.False(t, sink3.HasErrors())
	loop3 := findFirstLoop(t, forLike)
	require.NotEmpty(t, loop3.Inits)
	require.NotNil(t, loop3.Cond)
}

func findFirstLoop(t *testing.T, prog *ast.ProgramStmt) *ast.LoopStmt {
	t.Helper()
	fn, ok := prog.Items[0].(*ast.FuncDecl)
	require.True(t, ok)
	for _, s := range fn.Body.Stmts {
		if loop, ok := s.(*ast.LoopStmt); ok {
			return loop
		}
	}
	t.Fatal("no loop statement found")
	return nil
}

func TestIfElifElseChain(t *testing.T) {
	src := `fn f() void { if (a) { return; } elif (b) { return; } else { return; } }`
	prog, sink := parseProgramFrom(t, src)
	require.False(t, sink.HasErrors())
	fn := prog.Items[0].(*ast.FuncDecl)
	ifStmt, ok := fn.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifStmt.Elifs, 1)
	require.NotNil(t, ifStmt.Else)
}

func TestDeferParsesAsOwnStatement(t *testing.T) {
	src := `fn f() void { defer output("A"); defer output("B"); return; }`
	prog, sink := parseProgramFrom(t, src)
	require.False(t, sink.HasErrors())
	fn := prog.Items[0].(*ast.FuncDecl)
	require.Len(t, fn.Body.Stmts, 3)
	_, ok := fn.Body.Stmts[0].(*ast.DeferStmt)
	require.True(t, ok)
	_, ok = fn.Body.Stmts[1].(*ast.DeferStmt)
	require.True(t, ok)
}

func TestUndefinedIdentifierProgramStillParses(t *testing.T) {
	src := `@module main { fn main() int { return x; } }`
	_, sink := parseProgramFrom(t, src)
	require.False(t, sink.HasErrors(), "parsing alone shouldn't flag an undefined identifier; that's the checker's job")
}

func TestSyntaxErrorRecordsDiagnosticAndResynchronizes(t *testing.T) {
	src := `fn f() void { let ; return 0; }`
	_, sink := parseProgramFrom(t, src)
	require.True(t, sink.HasErrors())
}
