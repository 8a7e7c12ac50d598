// Package scope implements the scope forest and symbol table that the
// type checker (component F) builds while walking the AST, generalizing
// wut4's lang/yparse/symtab.go map-based SymbolTable/FuncScope (global
// map plus a flat per-function map) into the nested scope tree with
// module imports and visibility spec.md §3/§4.6 calls for.
package scope

import (
	"fmt"

	"github.com/luxlang/luxc/internal/ast"
)

// modulePrefix keys the synthetic symbol used to reach a module's scope
// from the global scope during duplicate-detection on module
// registration (spec.md §3's "Module table").
const modulePrefix = "@module$"

// Symbol is a binding in a scope: name, type, visibility, and
// mutability, plus the scope depth it was inserted at (spec.md §3).
type Symbol struct {
	Name       string
	Type       ast.Type
	Public     bool
	Mutable    bool
	ScopeDepth int
}

// Import is a module-import record: the imported module's name, the
// local alias it's reachable under, and its scope.
type Import struct {
	ModuleName string
	Alias      string
	Module     *Scope
}

// Scope is one node of the scope forest.
type Scope struct {
	Parent     *Scope
	Children   []*Scope
	Name       string
	Depth      int
	IsFunction bool
	FuncNode   *ast.FuncDecl // back-link, set when IsFunction
	IsModule   bool
	ModuleName string
	Imports    []Import

	symbols map[string]*Symbol
	order   []string // insertion order, for deterministic iteration
}

// InitScope initializes a root scope (no parent) with the given name.
func InitScope(name string) *Scope {
	return &Scope{Name: name, Depth: 0, symbols: make(map[string]*Symbol)}
}

// CreateChildScope allocates, initializes, and appends a new scope to
// parent's children.
func CreateChildScope(parent *Scope, name string) *Scope {
	child := &Scope{
		Parent:  parent,
		Name:    name,
		Depth:   parent.Depth + 1,
		symbols: make(map[string]*Symbol),
	}
	parent.Children = append(parent.Children, child)
	return child
}

// AddSymbol refuses duplicates in the current scope only, preserving
// shadowing in nested scopes (spec.md §4.6).
func (s *Scope) AddSymbol(name string, typ ast.Type, public, mutable bool) error {
	if _, exists := s.symbols[name]; exists {
		return fmt.Errorf("redefinition of '%s' in scope '%s'", name, s.Name)
	}
	s.symbols[name] = &Symbol{
		Name: name, Type: typ, Public: public, Mutable: mutable, ScopeDepth: s.Depth,
	}
	s.order = append(s.order, name)
	return nil
}

// Lookup searches the current scope then walks parents.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupCurrentOnly searches only the current scope, without ascending.
func (s *Scope) LookupCurrentOnly(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Symbols returns the scope's own symbols in insertion order.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.symbols[name])
	}
	return out
}

// AddImport records a module import on the current scope.
func (s *Scope) AddImport(moduleName, alias string, module *Scope) {
	s.Imports = append(s.Imports, Import{ModuleName: moduleName, Alias: alias, Module: module})
}

// findImport returns the import whose alias matches, walking from s
// upward (imports are recorded on whichever scope issued the @use, which
// may be an ancestor of the scope doing the lookup).
func (s *Scope) findImport(alias string) (Import, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		for _, imp := range cur.Imports {
			if imp.Alias == alias {
				return imp, true
			}
		}
	}
	return Import{}, false
}

// containingModule walks parents to find the nearest enclosing module
// scope, or nil if s is not nested under one.
func (s *Scope) containingModule() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.IsModule {
			return cur
		}
	}
	return nil
}

// ContainingModule exposes containingModule to other packages (the
// checker needs it to judge struct-member visibility against the
// requesting scope's enclosing module).
func (s *Scope) ContainingModule() *Scope {
	return s.containingModule()
}

// LookupQualified resolves `alias.symbol`: finds the import whose alias
// matches, then performs a current-only lookup in the imported module's
// scope, filtered by visibility — the symbol is only accessible if it is
// public, or if the requesting scope's containing module is the same as
// the import's module (spec.md §3, §4.6, §8's "qualified lookup respects
// visibility" invariant).
func (s *Scope) LookupQualified(alias, name string) (*Symbol, bool) {
	imp, ok := s.findImport(alias)
	if !ok {
		return nil, false
	}
	sym, ok := imp.Module.LookupCurrentOnly(name)
	if !ok {
		return nil, false
	}
	if sym.Public {
		return sym, true
	}
	requester := s.containingModule()
	if requester != nil && requester == imp.Module {
		return sym, true
	}
	return nil, false
}

// Global is the root of the scope forest: the synthetic global scope
// whose children are module scopes, per spec.md §3's "Module table".
type Global struct {
	*Scope
}

// NewGlobal creates the global scope.
func NewGlobal() *Global {
	return &Global{Scope: InitScope("<global>")}
}

// Module returns the module scope named name, creating it if it doesn't
// already exist. The second return reports whether the scope already
// existed (used by the module directive's duplicate-registration check
// via the synthetic `@module$name` symbol).
func (g *Global) Module(name string) (*Scope, bool) {
	key := modulePrefix + name
	if _, exists := g.symbols[key]; exists {
		for _, child := range g.Children {
			if child.IsModule && child.ModuleName == name {
				return child, true
			}
		}
	}
	mod := CreateChildScope(g.Scope, name)
	mod.IsModule = true
	mod.ModuleName = name
	// Synthetic marker symbol; never looked up by ordinary code, only
	// used to detect "this module name was already registered" (spec.md
	// §3's reserved-prefix module table entry).
	g.symbols[key] = &Symbol{Name: key, ScopeDepth: g.Depth}
	g.order = append(g.order, key)
	return mod, false
}

// LookupModule finds an already-registered module scope by name.
func (g *Global) LookupModule(name string) (*Scope, bool) {
	for _, child := range g.Children {
		if child.IsModule && child.ModuleName == name {
			return child, true
		}
	}
	return nil, false
}
