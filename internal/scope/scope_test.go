package scope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeDepthInvariant(t *testing.T) {
	g := NewGlobal()
	mod, existed := g.Module("util")
	require.False(t, existed)
	require.Equal(t, g.Depth+1, mod.Depth)

	fn := CreateChildScope(mod, "add")
	require.Equal(t, mod.Depth+1, fn.Depth)
}

func TestAddSymbolRejectsDuplicateInSameScopeOnly(t *testing.T) {
	g := NewGlobal()
	mod, _ := g.Module("main")

	require.NoError(t, mod.AddSymbol("x", nil, false, true))
	require.Error(t, mod.AddSymbol("x", nil, false, true))

	child := CreateChildScope(mod, "block")
	require.NoError(t, child.AddSymbol("x", nil, false, true), "shadowing in a nested scope must be allowed")
}

func TestLookupWalksParents(t *testing.T) {
	g := NewGlobal()
	mod, _ := g.Module("main")
	require.NoError(t, mod.AddSymbol("counter", nil, false, true))

	child := CreateChildScope(mod, "block")
	sym, ok := child.Lookup("counter")
	require.True(t, ok)
	require.Equal(t, "counter", sym.Name)

	_, ok = child.LookupCurrentOnly("counter")
	require.False(t, ok, "LookupCurrentOnly must not ascend")
}

func TestModuleSymmetry(t *testing.T) {
	g := NewGlobal()
	g.Module("a")
	g.Module("b")
	g.Module("a") // re-registering returns the same scope

	count := 0
	for _, child := range g.Children {
		if child.IsModule && child.ModuleName == "a" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestQualifiedLookupRespectsVisibility(t *testing.T) {
	g := NewGlobal()
	util, _ := g.Module("util")
	require.NoError(t, util.AddSymbol("add", nil, true, false))
	require.NoError(t, util.AddSymbol("helper", nil, false, false))

	main, _ := g.Module("main")
	main.AddImport("util", "util", util)

	_, ok := main.LookupQualified("util", "add")
	require.True(t, ok, "public symbol must be visible across modules")

	_, ok = main.LookupQualified("util", "helper")
	require.False(t, ok, "private symbol must not be visible across modules")

	// From within util itself, the private symbol is visible.
	utilCaller := CreateChildScope(util, "somefunc")
	utilCaller.AddImport("util", "util", util)
	_, ok = utilCaller.LookupQualified("util", "helper")
	require.True(t, ok, "private symbol is visible to code within its own module")
}

func TestNoDuplicatesAfterMultipleInserts(t *testing.T) {
	g := NewGlobal()
	mod, _ := g.Module("main")
	require.NoError(t, mod.AddSymbol("a", nil, false, true))
	require.NoError(t, mod.AddSymbol("b", nil, false, true))

	_, okA := mod.LookupCurrentOnly("a")
	_, okB := mod.LookupCurrentOnly("b")
	require.True(t, okA)
	require.True(t, okB)
	require.Len(t, mod.Symbols(), 2)
}
