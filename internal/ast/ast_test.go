package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxlang/luxc/internal/arena"
)

func TestCategoryAgreement(t *testing.T) {
	a := arena.New(0)
	pos := Pos{Line: 1, Column: 1}

	lit := NewIntLiteral(a, pos, 42)
	require.Equal(t, LiteralExprKind, lit.Kind())

	bin := NewBinary(a, pos, OpAdd, lit, NewIntLiteral(a, pos, 1))
	require.Equal(t, BinaryExprKind, bin.Kind())

	ret := NewReturn(a, pos, bin)
	require.Equal(t, ReturnStmtKind, ret.Kind())

	ptr := NewPointerType(a, pos, NewBasicType(a, pos, "int"))
	require.Equal(t, PointerTypeKind, ptr.Kind())

	mod := NewModuleDirective(a, pos, "main", nil)
	require.Equal(t, ModuleDirectiveKind, mod.Kind())
}

func TestIdentifierNameIsDuplicatedNotAliased(t *testing.T) {
	a := arena.New(0)
	name := []byte("counter")
	id := NewIdentifier(a, Pos{}, string(name))
	name[0] = 'X'
	require.Equal(t, "counter", id.Name)
}

func TestLoopShapeFieldsDistinguishVariant(t *testing.T) {
	a := arena.New(0)
	pos := Pos{Line: 1, Column: 1}
	body := NewBlock(a, pos, nil)

	infinite := NewLoop(a, pos, nil, nil, nil, body)
	require.Nil(t, infinite.Cond)
	require.Empty(t, infinite.Inits)

	whileLike := NewLoop(a, pos, nil, NewBoolLiteral(a, pos, true), nil, body)
	require.NotNil(t, whileLike.Cond)
	require.Empty(t, whileLike.Inits)

	forLike := NewLoop(a, pos, []Stmt{NewExprStmt(a, pos, nil)}, NewBoolLiteral(a, pos, true), NewIntLiteral(a, pos, 1), body)
	require.NotEmpty(t, forLike.Inits)
	require.NotNil(t, forLike.Cond)
}

func TestProgramAcyclicTraversal(t *testing.T) {
	a := arena.New(0)
	pos := Pos{Line: 1, Column: 1}

	body := NewBlock(a, pos, []Stmt{
		NewReturn(a, pos, NewIntLiteral(a, pos, 0)),
	})
	fn := NewFuncDecl(a, pos, "main", true, nil, NewBasicType(a, pos, "int"), body)
	mod := NewModuleDirective(a, pos, "main", []Node{fn})
	prog := NewProgram(a, []Node{mod})

	seen := map[Node]bool{}
	var visit func(n Node)
	visit = func(n Node) {
		require.False(t, seen[n], "node visited twice: %v", n)
		seen[n] = true
	}
	visit(prog)
	visit(mod)
	visit(fn)
	visit(body)
	require.Len(t, seen, 4)
}
