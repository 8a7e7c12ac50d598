package irgen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/luxlang/luxc/internal/arena"
	"github.com/luxlang/luxc/internal/ast"
	"github.com/luxlang/luxc/internal/diag"
)

// defaultTargetTriple names the common ELF x86-64 triple rather than
// leaving Module.TargetTriple blank; spec.md §4.7 only asks for "the
// platform default" without naming one. Documented in DESIGN.md.
const defaultTargetTriple = "x86_64-unknown-linux-gnu"

// pendingBody is one function whose signature has been declared but
// whose body has not yet been lowered; populated by the declaration
// pass, consumed by the body pass.
type pendingBody struct {
	unit *compilationUnit
	fn   *ir.Func
	decl *ast.FuncDecl
}

// Lower walks a type-checked program and builds one *ir.Module per
// `@module` directive (spec.md §4.7's module pass), returning the
// finished modules in declaration order. a is the arena shared by every
// pipeline stage; sink collects lowering-time diagnostics (spec.md
// §4.7's "emits a diagnostic and skips the construct" error mode, e.g.
// break/continue outside a loop slipping past the checker in a
// standalone lowering test).
//
// Lower runs three passes over the program, not one, so that a call to
// another module's function always resolves to a declaration already
// present in the *calling* unit's own module rather than to the actual
// *ir.Func value owned by a different *ir.Module (an IR value can only
// be referenced from the module that owns it; spec.md §4.7's "scan
// every other module's symbol table" external-declarations step only
// works if it runs before any call site is lowered, not after):
//
//  1. declare every module's top-level signatures (functions, globals)
//     into their own unit, with no bodies lowered yet;
//  2. add external declarations for every public function a unit
//     doesn't already have a symbol for;
//  3. lower every function body, now that every call target --
//     in-module or cross-module -- already has a symbol-table entry.
func Lower(a *arena.Arena, prog *ast.ProgramStmt, sink *diag.Sink, file string) []*ir.Module {
	c := NewContext(a, sink, file)
	c.collectDecls(prog.Items)

	var pending []pendingBody
	declareItems(c, prog.Items, &pending)

	c.emitExternalDeclarations()

	for _, p := range pending {
		c.cur = p.unit
		c.lowerFuncBody(p.fn, p.decl)
	}

	var modules []*ir.Module
	for u := c.units; u != nil; u = u.next {
		u.module.TargetTriple = defaultTargetTriple
		modules = append(modules, u.module)
	}
	return modules
}

func declareItems(c *Context, items []ast.Node, pending *[]pendingBody) {
	for _, item := range items {
		switch n := item.(type) {
		case *ast.ModuleDirective:
			unit := c.newUnit(n.Name)
			c.cur = unit
			declareItems(c, n.Body, pending)
		case *ast.FuncDecl:
			if c.units == nil {
				c.cur = c.newUnit("main")
			}
			fn := c.declareFunc(n)
			if n.Body != nil {
				*pending = append(*pending, pendingBody{unit: c.cur, fn: fn, decl: n})
			}
		case *ast.VarDecl:
			if c.units == nil {
				c.cur = c.newUnit("main")
			}
			c.lowerGlobalVarDecl(n)
		}
		// UseDirective and StructDecl/EnumDecl carry no declaration
		// action here: the former resolves by bare name through the
		// symbol chain, the latter were already gathered by
		// collectDecls and are lowered opaquely (types.go).
	}
}

// collectDecls gathers every struct's field order and every enum
// member's ordinal up front, module-independent: struct and enum names
// are global (internal/checker keys its own tables the same way), so
// one flat pass over every item -- module bodies included -- is enough.
func (c *Context) collectDecls(items []ast.Node) {
	for _, item := range items {
		switch n := item.(type) {
		case *ast.ModuleDirective:
			c.collectDecls(n.Body)
		case *ast.StructDecl:
			fields := make([]structField, 0, len(n.PublicFields)+len(n.PrivateFields))
			for _, f := range n.PublicFields {
				fields = append(fields, structField{name: f.Name, typ: f.FieldType})
			}
			for _, f := range n.PrivateFields {
				fields = append(fields, structField{name: f.Name, typ: f.FieldType})
			}
			c.structs[n.Name] = &structLayout{fields: fields}
		case *ast.EnumDecl:
			for i, member := range n.Members {
				c.enumMembers[n.Name+"."+member] = int64(i)
			}
		}
	}
}

// emitExternalDeclarations implements spec.md §4.7's "before emitting a
// module's final object, scan every other module's symbol table; for
// each public function not already named in the current module, add an
// external declaration."
func (c *Context) emitExternalDeclarations() {
	for u := c.units; u != nil; u = u.next {
		for other := c.units; other != nil; other = other.next {
			if other == u {
				continue
			}
			for r := other.symbols.head; r != nil; r = r.next {
				if !r.isFunction {
					continue
				}
				if fn, ok := r.value.(*ir.Func); ok && fn.Linkage == enum.LinkageInternal {
					continue
				}
				if _, exists := u.symbols.lookup(r.name); exists {
					continue
				}
				fnType, ok := r.typ.(*ast.FunctionType)
				if !ok {
					continue
				}
				params := make([]*ir.Param, len(fnType.Params))
				for i, pt := range fnType.Params {
					params[i] = ir.NewParam("", llType(pt))
				}
				decl := u.module.NewFunc(r.name, llType(fnType.Return), params...)
				decl.Linkage = enum.LinkageExternal
				u.symbols.add(r.name, decl, r.typ, true)
			}
		}
	}
}

func (c *Context) lowerGlobalVarDecl(v *ast.VarDecl) {
	declType := v.Annotation
	if declType == nil {
		declType = c.exprType(v.Init)
	}
	llt := llType(declType)

	var init constant.Constant = constant.NewZeroInitializer(llt)
	if v.Init != nil {
		if lit, ok := c.constExprOf(v.Init, declType); ok {
			init = lit
		}
	}

	g := c.cur.module.NewGlobalDef(v.Name, init)
	if v.Public {
		g.Linkage = enum.LinkageExternal
	} else {
		g.Linkage = enum.LinkageInternal
	}
	c.cur.symbols.add(v.Name, g, declType, false)
}

// constExprOf folds the handful of expression forms that can appear as a
// global initializer into an llir/llvm constant; anything else falls
// back to a zero initializer (spec.md §4.7 asks only for "the evaluated
// constant or zero").
func (c *Context) constExprOf(e ast.Expr, declType ast.Type) (constant.Constant, bool) {
	lit, ok := e.(*ast.LiteralExpr)
	if !ok {
		return nil, false
	}
	switch lit.LitKind {
	case ast.LitInt:
		if isFloatKind(declType) {
			ft, _ := llType(declType).(*types.FloatType)
			return constant.NewFloat(ft, float64(lit.IntVal)), true
		}
		it, _ := llType(declType).(*types.IntType)
		return constant.NewInt(it, lit.IntVal), true
	case ast.LitFloat:
		ft, _ := llType(declType).(*types.FloatType)
		return constant.NewFloat(ft, lit.FloatVal), true
	case ast.LitBool:
		v := int64(0)
		if lit.BoolVal {
			v = 1
		}
		return constant.NewInt(types.I1, v), true
	}
	return nil, false
}

// declareFunc registers f's signature and linkage in the current unit
// without touching its body (spec.md §4.7's symbol-table registration
// "before the body is lowered," pushed further still to before *any*
// unit's body is lowered, so every cross-module call target already has
// a symbol-table entry by the time bodies are emitted).
func (c *Context) declareFunc(f *ast.FuncDecl) *ir.Func {
	// An extern declaration and the definition it names share one
	// function; the definition's body is lowered into it.
	if rec, ok := c.cur.symbols.lookup(f.Name); ok && rec.isFunction {
		if fn, ok := rec.value.(*ir.Func); ok {
			if f.Body != nil && f.Name != "main" && !f.Public {
				fn.Linkage = enum.LinkageInternal
			}
			return fn
		}
	}
	paramTypes := make([]ast.Type, len(f.Params))
	for i, p := range f.Params {
		paramTypes[i] = p.ParamType
	}
	sig := ast.NewFunctionType(c.arena, f.Position(), paramTypes, f.ReturnType)

	irParams := make([]*ir.Param, len(f.Params))
	for i, p := range f.Params {
		irParams[i] = ir.NewParam(p.Name, llType(p.ParamType))
	}
	fn := c.cur.module.NewFunc(f.Name, llType(f.ReturnType), irParams...)

	switch {
	case f.Name == "main", f.Public, f.Body == nil:
		fn.Linkage = enum.LinkageExternal
	default:
		fn.Linkage = enum.LinkageInternal
	}
	c.cur.symbols.add(f.Name, fn, sig, true)
	return fn
}

// lowerFuncBody implements spec.md §4.7's function-body emission: a
// single entry block holding parameter/return-value allocas, and LIFO
// defer unwinding inlined at every return point rather than routed
// through a shared cleanup block -- simpler than a cleanup-block scheme
// and sufficient since Lux has no exceptions/panics for a cleanup block
// to also catch.
func (c *Context) lowerFuncBody(fn *ir.Func, f *ast.FuncDecl) {
	savedFunc, savedBlock := c.curFunc, c.curBlock
	savedRetSlot, savedRetType, savedDefers := c.retSlot, c.retType, c.deferStack
	c.curFunc = fn
	c.retType = f.ReturnType
	c.deferStack = nil
	c.pushScope()

	entry := fn.NewBlock("entry")
	c.curBlock = entry
	for i, p := range f.Params {
		slot := entry.NewAlloca(llType(p.ParamType))
		entry.NewStore(fn.Params[i], slot)
		c.bindLocal(p.Name, slot, p.ParamType)
	}
	if isVoidType(f.ReturnType) {
		c.retSlot = nil
	} else {
		c.retSlot = entry.NewAlloca(llType(f.ReturnType))
	}

	c.lowerStmt(f.Body)

	if !terminated(c.curBlock) {
		c.runDefers()
		if !terminated(c.curBlock) {
			c.emitReturnFromSlot()
		}
	}

	c.popScope()
	c.curFunc, c.curBlock = savedFunc, savedBlock
	c.retSlot, c.retType, c.deferStack = savedRetSlot, savedRetType, savedDefers
}

func (c *Context) emitReturnFromSlot() {
	if c.retSlot == nil {
		c.curBlock.NewRet(nil)
		return
	}
	v := c.curBlock.NewLoad(llType(c.retType), c.retSlot)
	c.curBlock.NewRet(v)
}

func isVoidType(t ast.Type) bool {
	bt, ok := t.(*ast.BasicType)
	return ok && bt.Name == "void"
}
