// Package irgen implements component G: lowering a type-checked AST into
// per-module object files. It generalizes wut4's lang/ya/main.go driver
// pattern of shelling out to external compiler stages with os/exec and
// capturing stderr for error propagation (findBinary/runStage) to the one
// place spec.md §6 names an actual external framework: object-file
// emission, since github.com/llir/llvm only serializes LLVM IR text and
// has no target-machine or object-emission API of its own. Everything
// upstream of that (building the IR module itself) goes through
// llir/llvm's pure-Go object model directly, behind the Backend
// interface so the rest of the compiler has "no direct dependence on the
// framework's concrete types" (spec.md §9).
package irgen

import (
	"fmt"

	"github.com/llir/llvm/ir"

	"github.com/luxlang/luxc/internal/arena"
	"github.com/luxlang/luxc/internal/ast"
	"github.com/luxlang/luxc/internal/diag"
)

// symbolRecord is one entry of a module's symbol table: name, IR value,
// IR type, and whether it names a function -- spec.md §4.7's "per module:
// a singly-linked list of (name, IR value, IR type, is-function flag)
// records."
type symbolRecord struct {
	name       string
	value      ir.Value
	typ        ast.Type
	isFunction bool
	next       *symbolRecord
}

// symbolTable is the singly-linked O(n)-lookup list spec.md §4.7
// specifies, kept literally instead of reaching for a map: the slow
// lookup is the point, mirroring wut4's own small-N linear symbol
// tables (lang/yparse/symtab.go) at a scale where it never matters.
type symbolTable struct {
	head *symbolRecord
}

func (t *symbolTable) add(name string, value ir.Value, typ ast.Type, isFunction bool) {
	t.head = &symbolRecord{name: name, value: value, typ: typ, isFunction: isFunction, next: t.head}
}

func (t *symbolTable) lookup(name string) (*symbolRecord, bool) {
	for r := t.head; r != nil; r = r.next {
		if r.name == name {
			return r, true
		}
	}
	return nil, false
}

// compilationUnit is one `@module` directive's lowering state: its own
// IR module, symbol table, and a flag marking the entry module
// (spec.md §4.7's "flag marking the entry module").
type compilationUnit struct {
	name    string
	module  *ir.Module
	symbols symbolTable
	isEntry bool
	next    *compilationUnit
}

// loopDest names the blocks `break`/`continue` jump to inside the loop
// currently being lowered.
type loopDest struct {
	continueBlock *ir.Block
	breakBlock    *ir.Block
}

// structField is one member of a structLayout: its name and checked
// type, in declaration order (public fields first, then private).
type structField struct {
	name string
	typ  ast.Type
}

// structLayout records one struct's field order so member access and
// struct-literal construction can compute a slot address; see types.go's
// doc comment for why structs are lowered as a flat sequence of 8-byte
// slots rather than a real layout engine.
type structLayout struct {
	fields []structField
}

func (l *structLayout) indexOf(field string) (int, ast.Type, bool) {
	for i, f := range l.fields {
		if f.name == field {
			return i, f.typ, true
		}
	}
	return 0, nil, false
}

// Context is the code-generation context spec.md §4.7 names as IR
// lowering's input: the IR builder handle (here, simply the current
// *ir.Module/*ir.Func/*ir.Block triad, since llir/llvm's builder *is*
// the block), arena, current module, current function, loop
// continue/break destinations, and a deferred-statement stack.
type Context struct {
	arena *arena.Arena
	sink  *diag.Sink
	file  string

	units      *compilationUnit // chain head
	unitsTail  *compilationUnit
	unitByName map[string]*compilationUnit
	cur        *compilationUnit

	curFunc  *ir.Func
	curBlock *ir.Block

	// retSlot/retType describe the function currently being lowered;
	// retSlot is nil for a void function.
	retSlot ir.Value
	retType ast.Type

	loopStack []loopDest

	// deferStack is function-scoped (not block-scoped): every `defer`
	// anywhere in a function body appends here, and every return point
	// (explicit or fallthrough) unwinds the whole stack LIFO before
	// emitting its terminator, the same shape as Go's defer. This is a
	// known, narrower-than-spec simplification -- see the defer entry
	// in DESIGN.md -- not an equivalent restatement of block-local
	// defer semantics.
	deferStack []ast.Stmt

	// locals is a lexical scope chain of stack-slot bindings, the
	// lowering-time analog of internal/checker's scope forest (not
	// reused directly: the checker's scope forest is discarded after
	// Check returns, and lowering needs allocas/IR values alongside
	// types, not just visibility facts).
	locals []map[string]localVar

	// structs records field order per struct name, gathered in a
	// pre-pass over the whole program before any function is lowered
	// (struct declarations may be used before their textual position,
	// same as internal/checker's symbol registration).
	structs map[string]*structLayout

	// enumMembers maps "EnumName.Member" to its ordinal value, gathered
	// in the same pre-pass as structs (enum members are lowered as
	// plain integer constants, never boxed).
	enumMembers map[string]int64

	printfDecl map[*ir.Module]*ir.Func
	mallocDecl map[*ir.Module]*ir.Func
	freeDecl   map[*ir.Module]*ir.Func
	strCount   map[*ir.Module]int
}

// NewContext creates an empty lowering context. a is the same arena the
// driver threads through every pipeline stage (spec.md §4.1/§9); irgen
// uses it only to construct the occasional ast.Type value for a symbol
// table record, never to allocate new program structure.
func NewContext(a *arena.Arena, sink *diag.Sink, file string) *Context {
	return &Context{
		arena:       a,
		sink:        sink,
		file:        file,
		unitByName:  make(map[string]*compilationUnit),
		structs:     make(map[string]*structLayout),
		enumMembers: make(map[string]int64),
		printfDecl:  make(map[*ir.Module]*ir.Func),
		mallocDecl:  make(map[*ir.Module]*ir.Func),
		freeDecl:    make(map[*ir.Module]*ir.Func),
		strCount:    make(map[*ir.Module]int),
	}
}

func (c *Context) pushDefer(stmt ast.Stmt) {
	c.deferStack = append(c.deferStack, stmt)
}

// runDefers executes every deferred statement registered so far, in
// LIFO order, and empties the stack -- called at every return point of
// the function being lowered (spec.md §4.7/§9's LIFO defer ordering).
func (c *Context) runDefers() {
	for i := len(c.deferStack) - 1; i >= 0; i-- {
		c.lowerStmt(c.deferStack[i])
	}
	c.deferStack = nil
}

func (c *Context) errorf(pos ast.Pos, format string, args ...any) {
	c.sink.Append(diag.Record{
		Category: diag.Lowering,
		File:     c.file,
		Message:  fmt.Sprintf(format, args...),
		Line:     pos.Line,
		Column:   pos.Column,
	})
}

// newUnit creates and chains a new compilation unit for a module
// directive, marking the first one seen as the entry module.
func (c *Context) newUnit(name string) *compilationUnit {
	u := &compilationUnit{name: name, module: ir.NewModule()}
	u.module.SourceFilename = name
	if c.units == nil {
		u.isEntry = true
		c.units = u
	} else {
		c.unitsTail.next = u
	}
	c.unitsTail = u
	c.unitByName[name] = u
	return u
}

// lookupGlobal implements spec.md §4.7's "global lookup first inspects
// the current module and then the rest."
func (c *Context) lookupGlobal(name string) (*symbolRecord, *compilationUnit, bool) {
	if rec, ok := c.cur.symbols.lookup(name); ok {
		return rec, c.cur, true
	}
	for u := c.units; u != nil; u = u.next {
		if u == c.cur {
			continue
		}
		if rec, ok := u.symbols.lookup(name); ok {
			return rec, u, true
		}
	}
	return nil, nil, false
}

func (c *Context) pushLoop(cont, brk *ir.Block) {
	c.loopStack = append(c.loopStack, loopDest{continueBlock: cont, breakBlock: brk})
}

func (c *Context) popLoop() {
	c.loopStack = c.loopStack[:len(c.loopStack)-1]
}

func (c *Context) currentLoop() (loopDest, bool) {
	if len(c.loopStack) == 0 {
		return loopDest{}, false
	}
	return c.loopStack[len(c.loopStack)-1], true
}

// terminated reports whether b already ends in a terminator instruction,
// used throughout statement emission to decide whether a trailing branch
// is still needed (spec.md §4.7's "only if the arm didn't already
// terminate").
func terminated(b *ir.Block) bool {
	return b.Term != nil
}

// localVar is one lexical binding: the stack slot holding the variable
// (or, for a bare function value, the function itself) and its checked
// Lux type.
type localVar struct {
	slot ir.Value
	typ  ast.Type
}

func (c *Context) pushScope() {
	c.locals = append(c.locals, make(map[string]localVar))
}

func (c *Context) popScope() {
	c.locals = c.locals[:len(c.locals)-1]
}

func (c *Context) bindLocal(name string, slot ir.Value, typ ast.Type) {
	c.locals[len(c.locals)-1][name] = localVar{slot: slot, typ: typ}
}

func (c *Context) lookupLocal(name string) (localVar, bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if v, ok := c.locals[i][name]; ok {
			return v, true
		}
	}
	return localVar{}, false
}
