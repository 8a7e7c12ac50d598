package checker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxlang/luxc/internal/arena"
	"github.com/luxlang/luxc/internal/diag"
	"github.com/luxlang/luxc/internal/lexer"
	"github.com/luxlang/luxc/internal/parser"
	"github.com/luxlang/luxc/internal/scope"
)

func checkSource(t *testing.T, src string) (*scope.Global, *diag.Sink) {
	t.Helper()
	a := arena.New(0)
	var sink diag.Sink
	toks := lexer.ScanAll([]byte(src), "test.lux", &sink)
	p := parser.New(a, []byte(src), "test.lux", &sink, toks)
	prog := p.Parse()
	require.False(t, sink.HasErrors(), "parse errors: %v", sink)

	c := NewChecker(a, &sink, "test.lux", []byte(src))
	g := c.Check(prog)
	return g, &sink
}

func TestVarDeclInfersFromInit(t *testing.T) {
	_, sink := checkSource(t, `let x = 1;`)
	require.False(t, sink.HasErrors())
}

func TestVarDeclAnnotationMatchesInit(t *testing.T) {
	_, sink := checkSource(t, `let x int = 1;`)
	require.False(t, sink.HasErrors())
}

func TestVarDeclAnnotationMismatchErrors(t *testing.T) {
	_, sink := checkSource(t, `let x bool = 1;`)
	require.True(t, sink.HasErrors())
}

func TestVarDeclNeedsAnnotationOrInit(t *testing.T) {
	_, sink := checkSource(t, `let x;`)
	require.True(t, sink.HasErrors())
}

func TestUndefinedIdentifierErrors(t *testing.T) {
	_, sink := checkSource(t, `let x = y;`)
	require.True(t, sink.HasErrors())
}

func TestMainConventionPromotesVisibility(t *testing.T) {
	a := arena.New(0)
	var sink diag.Sink
	toks := lexer.ScanAll([]byte(`fn main() int { return 0; }`), "test.lux", &sink)
	p := parser.New(a, []byte(`fn main() int { return 0; }`), "test.lux", &sink, toks)
	prog := p.Parse()
	require.False(t, sink.HasErrors())

	c := NewChecker(a, &sink, "test.lux", []byte(`fn main() int { return 0; }`))
	g := c.Check(prog)
	require.False(t, sink.HasErrors(), "promoting private main must not be a fatal diagnostic")
	require.Len(t, c.Warnings, 1, "private main should warn that it's being promoted")
	sym, ok := g.Lookup("main")
	require.True(t, ok)
	require.True(t, sym.Public)
}

func TestMainConventionAlreadyPublicNoWarning(t *testing.T) {
	_, sink := checkSource(t, `pub fn main() int { return 0; }`)
	require.False(t, sink.HasErrors())
}

func TestMainConventionRequiresIntReturn(t *testing.T) {
	_, sink := checkSource(t, `fn main() bool { return true; }`)
	require.True(t, sink.HasErrors())
}

func TestFunctionReturnTypeMismatchErrors(t *testing.T) {
	_, sink := checkSource(t, `fn f() int { return true; }`)
	require.True(t, sink.HasErrors())
}

func TestFunctionVoidMustNotReturnValue(t *testing.T) {
	_, sink := checkSource(t, `fn f() void { return 1; }`)
	require.True(t, sink.HasErrors())
}

func TestFunctionNonVoidMustReturnValue(t *testing.T) {
	_, sink := checkSource(t, `fn f() int { return; }`)
	require.True(t, sink.HasErrors())
}

func TestReturnOutsideFunctionErrors(t *testing.T) {
	_, sink := checkSource(t, `return 1;`)
	require.True(t, sink.HasErrors())
}

func TestIfConditionMustBeBool(t *testing.T) {
	_, sink := checkSource(t, `fn f() void { if (1) { } }`)
	require.True(t, sink.HasErrors())
}

func TestIfConditionBoolPasses(t *testing.T) {
	_, sink := checkSource(t, `fn f() void { if (true) { } }`)
	require.False(t, sink.HasErrors())
}

func TestLoopConditionMustBeBool(t *testing.T) {
	_, sink := checkSource(t, `fn f() void { loop (1) { } }`)
	require.True(t, sink.HasErrors())
}

func TestBreakOutsideLoopErrors(t *testing.T) {
	_, sink := checkSource(t, `fn f() void { break; }`)
	require.True(t, sink.HasErrors())
}

func TestBreakInsideLoopPasses(t *testing.T) {
	_, sink := checkSource(t, `fn f() void { loop { break; } }`)
	require.False(t, sink.HasErrors())
}

func TestEnumMemberRegistersQualifiedName(t *testing.T) {
	g, sink := checkSource(t, `enum Color { Red, Green, Blue }`)
	require.False(t, sink.HasErrors())
	_, ok := g.Lookup("Color.Red")
	require.True(t, ok)
}

func TestStructPrivateFieldRejectedOutsideModule(t *testing.T) {
	src := `
@module a {
	struct Point { pub x int; priv y int; }
	pub fn make() Point { return Point{x: 1, y: 2}; }
}
@module b {
	@use a;
	fn f() void {
		let p = a.make();
		let v = p.y;
	}
}
`
	_, sink := checkSource(t, src)
	require.True(t, sink.HasErrors())
}

func TestStructPublicFieldAllowedOutsideModule(t *testing.T) {
	src := `
@module a {
	struct Point { pub x int; priv y int; }
	pub fn make() Point { return Point{x: 1, y: 2}; }
}
@module b {
	@use a;
	fn f() void {
		let p = a.make();
		let v = p.x;
	}
}
`
	_, sink := checkSource(t, src)
	require.False(t, sink.HasErrors())
}

func TestQualifiedAccessRespectsPrivateFunction(t *testing.T) {
	src := `
@module a {
	fn helper() int { return 1; }
}
@module b {
	@use a;
	fn f() void {
		let x = a.helper();
	}
}
`
	_, sink := checkSource(t, src)
	require.True(t, sink.HasErrors())
}

func TestQualifiedAccessAllowsPublicFunction(t *testing.T) {
	src := `
@module a {
	pub fn helper() int { return 1; }
}
@module b {
	@use a;
	fn f() void {
		let x = a.helper();
	}
}
`
	_, sink := checkSource(t, src)
	require.False(t, sink.HasErrors())
}

func TestExternDeclTolerantOfLocalDefinition(t *testing.T) {
	src := `
extern fn helper() int;
fn helper() int { return 1; }
`
	_, sink := checkSource(t, src)
	require.False(t, sink.HasErrors())
}

func TestDuplicateModuleErrors(t *testing.T) {
	src := `
@module a { }
@module a { }
`
	_, sink := checkSource(t, src)
	require.True(t, sink.HasErrors())
}

func TestArithmeticMixesIntAndFloat(t *testing.T) {
	_, sink := checkSource(t, `let x = 1 + 2.0;`)
	require.False(t, sink.HasErrors())
}

func TestArithmeticRejectsNonNumeric(t *testing.T) {
	_, sink := checkSource(t, `let x = true + 1;`)
	require.True(t, sink.HasErrors())
}

func TestCallArgumentCountMismatchErrors(t *testing.T) {
	src := `
fn f(a int) int { return a; }
fn g() void {
	let x = f(1, 2);
}
`
	_, sink := checkSource(t, src)
	require.True(t, sink.HasErrors())
}

func TestAssignmentRequiresLvalue(t *testing.T) {
	_, sink := checkSource(t, `fn f() void { 1 = 2; }`)
	require.True(t, sink.HasErrors())
}

func TestArrayLiteralElementTypeMismatchErrors(t *testing.T) {
	_, sink := checkSource(t, `let x = [1, true];`)
	require.True(t, sink.HasErrors())
}

func TestDereferenceNonPointerErrors(t *testing.T) {
	_, sink := checkSource(t, `let x = 1; let y = *x;`)
	require.True(t, sink.HasErrors())
}

func TestAddressOfNonLvalueErrors(t *testing.T) {
	_, sink := checkSource(t, `let x = &1;`)
	require.True(t, sink.HasErrors())
}

func TestLoopShapesOpenDistinctlyNamedScopes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"infinite", `fn f() void { loop { break; } }`, "loop-infinite"},
		{"while", `fn f() void { loop (true) { break; } }`, "loop-while"},
		{"for", `fn f() void { loop [let i int = 0;](i < 1) : (i++) { break; } }`, "loop-for"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := arena.New(0)
			var sink diag.Sink
			toks := lexer.ScanAll([]byte(tc.src), "test.lux", &sink)
			p := parser.New(a, []byte(tc.src), "test.lux", &sink, toks)
			prog := p.Parse()
			require.False(t, sink.HasErrors())

			c := NewChecker(a, &sink, "test.lux", []byte(tc.src))
			g := c.Check(prog)
			require.False(t, sink.HasErrors())

			fnScope := findChildByPrefix(g.Scope, "fn:")
			require.NotNil(t, fnScope)
			loopScope := findChildByPrefix(fnScope, "loop-")
			require.NotNil(t, loopScope)
			require.Equal(t, tc.want, loopScope.Name)
		})
	}
}

func findChildByPrefix(s *scope.Scope, prefix string) *scope.Scope {
	for _, child := range s.Children {
		if len(child.Name) >= len(prefix) && child.Name[:len(prefix)] == prefix {
			return child
		}
		if found := findChildByPrefix(child, prefix); found != nil {
			return found
		}
	}
	return nil
}

func TestCastChangesExpressionType(t *testing.T) {
	src := `let x = cast(float, 1);`
	_, sink := checkSource(t, src)
	require.False(t, sink.HasErrors())
}

func TestSizeofAcceptsTypeOrExpr(t *testing.T) {
	_, sink := checkSource(t, `let x = sizeof(int);`)
	require.False(t, sink.HasErrors())
}
