package checker

import "github.com/luxlang/luxc/internal/ast"

// MatchKind is the three-way result types_match returns (spec.md §4.6).
type MatchKind int

const (
	NoMatch MatchKind = iota
	Compatible
	Exact
)

var numericRank = map[string]int{"int": 1, "float": 2, "double": 3}

// numericName reports t's basic-type name if it's one of the numeric
// basics, along with whether it qualifies at all.
func numericName(t ast.Type) (string, bool) {
	bt, ok := t.(*ast.BasicType)
	if !ok {
		return "", false
	}
	_, numeric := numericRank[bt.Name]
	return bt.Name, numeric
}

// typesMatch implements spec.md §4.6's types_match: identity and
// identical-name basics are exact; int<->float is compatible; pointer
// and array compare their element type recursively; named types (struct/
// enum references) match by name; everything else is none.
func typesMatch(a, b ast.Type) MatchKind {
	if a == nil || b == nil {
		return NoMatch
	}
	if a == b {
		return Exact
	}
	if a.Kind() != b.Kind() {
		return NoMatch
	}
	switch at := a.(type) {
	case *ast.BasicType:
		bt := b.(*ast.BasicType)
		if at.Name == bt.Name {
			return Exact
		}
		if (at.Name == "int" && bt.Name == "float") || (at.Name == "float" && bt.Name == "int") {
			return Compatible
		}
		return NoMatch
	case *ast.PointerType:
		bt := b.(*ast.PointerType)
		return typesMatch(at.Pointee, bt.Pointee)
	case *ast.ArrayType:
		bt := b.(*ast.ArrayType)
		return typesMatch(at.Elem, bt.Elem)
	case *ast.NamedType:
		bt := b.(*ast.NamedType)
		if at.Name == bt.Name {
			return Exact
		}
		return NoMatch
	case *ast.FunctionType:
		return NoMatch
	}
	return NoMatch
}

// typeName renders t for diagnostic messages.
func typeName(t ast.Type) string {
	if t == nil {
		return "<error>"
	}
	switch tt := t.(type) {
	case *ast.BasicType:
		return tt.Name
	case *ast.PointerType:
		return "*" + typeName(tt.Pointee)
	case *ast.ArrayType:
		return "[" + typeName(tt.Elem) + "]"
	case *ast.FunctionType:
		return "fn(...)"
	case *ast.NamedType:
		return tt.Name
	}
	return "?"
}
