package irgen

import (
	"github.com/llir/llvm/ir/types"

	"github.com/luxlang/luxc/internal/ast"
)

// llType maps a checked ast.Type to its llir/llvm representation. Lux's
// basic types get fixed native widths (spec.md §4.7's "integers in a
// fixed width, doubles"); struct and array types are lowered opaquely --
// both are out of spec.md's detailed data-layout scope (§9 only commits
// to "treats arrays as opaque in IR lowering" for array sizes, and no
// struct field-offset story is specified at all), so a struct becomes a
// pointer to an anonymous byte, matching alloc/release's own `*char`
// shape, and an array becomes a pointer to its element type. This keeps calls, returns, and pointer arithmetic well-typed
// without inventing a struct layout algorithm spec.md never asks for.
func llType(t ast.Type) types.Type {
	switch tt := t.(type) {
	case *ast.BasicType:
		switch tt.Name {
		case "int":
			return types.I64
		case "float":
			return types.Float
		case "double":
			return types.Double
		case "bool":
			return types.I1
		case "char":
			return types.I8
		case "str":
			return types.NewPointer(types.I8)
		case "void":
			return types.Void
		default:
			// A struct/enum name introduced via checkStructDecl's basic-
			// type marker (internal/checker's "the struct name is
			// introduced as a basic type marker"); opaque pointer, same
			// as NamedType below.
			return types.NewPointer(types.I8)
		}
	case *ast.PointerType:
		elem := llType(tt.Pointee)
		if elem == types.Void {
			return types.NewPointer(types.I8)
		}
		return types.NewPointer(elem)
	case *ast.ArrayType:
		return types.NewPointer(llType(tt.Elem))
	case *ast.NamedType:
		return types.NewPointer(types.I8)
	case *ast.FunctionType:
		params := make([]types.Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = llType(p)
		}
		return types.NewPointer(types.NewFunc(llType(tt.Return), params...))
	}
	return types.I64
}

// isFloatKind reports whether t's llir/llvm representation is a
// floating-point type, used to dispatch arithmetic/comparison emission
// between int and float instruction families (spec.md §4.7's "binary
// operators dispatch to signed-integer arithmetic... by default").
func isFloatKind(t ast.Type) bool {
	bt, ok := t.(*ast.BasicType)
	return ok && (bt.Name == "float" || bt.Name == "double")
}
