package irgen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"

	"github.com/luxlang/luxc/internal/ast"
)

// lowerStmt is the statement half of spec.md §4.7's lowering dispatch,
// mirroring internal/checker's checkStmt switch shape one level down
// (IR values instead of diagnostics).
func (c *Context) lowerStmt(stmt ast.Stmt) {
	if stmt == nil || terminated(c.curBlock) {
		return
	}
	switch st := stmt.(type) {
	case *ast.ExprStmt:
		if st.X != nil {
			c.lowerExpr(st.X)
		}
	case *ast.VarDecl:
		c.lowerLocalVarDecl(st)
	case *ast.BlockStmt:
		c.lowerBlock(st)
	case *ast.IfStmt:
		c.lowerIf(st)
	case *ast.LoopStmt:
		c.lowerLoop(st)
	case *ast.ReturnStmt:
		c.lowerReturn(st)
	case *ast.PrintStmt:
		c.lowerPrint(st)
	case *ast.LoopControlStmt:
		c.lowerLoopControl(st)
	case *ast.DeferStmt:
		if st.Inner != nil {
			c.pushDefer(st.Inner)
		}
	case *ast.FuncDecl, *ast.StructDecl, *ast.EnumDecl:
		// Not reachable from inside a function body; top-level-only
		// declarations are handled by declareItems/collectDecls.
	}
}

// lowerBlock lowers a `{ ... }` statement list in place; unlike
// internal/checker's checkBlock it does not open a new lexical scope of
// its own here -- pushScope/popScope happen around the constructs that
// actually need fresh bindings (function bodies, loop bodies), matching
// the same "scope-opening is the caller's job" split the checker uses.
func (c *Context) lowerBlock(b *ast.BlockStmt) {
	for _, st := range b.Stmts {
		c.lowerStmt(st)
		if terminated(c.curBlock) {
			return
		}
	}
}

func (c *Context) lowerLocalVarDecl(v *ast.VarDecl) {
	declType := v.Annotation
	if declType == nil {
		declType = c.exprType(v.Init)
	}
	llt := llType(declType)
	slot := c.curBlock.NewAlloca(llt)
	if v.Init != nil {
		val := c.lowerExpr(v.Init)
		c.curBlock.NewStore(c.coerce(val, c.exprType(v.Init), declType), slot)
	} else {
		c.curBlock.NewStore(constant.NewZeroInitializer(llt), slot)
	}
	c.bindLocal(v.Name, slot, declType)
}

// lowerReturn implements spec.md §4.7/§9's "unwind the deferred stack,
// then return": the value (if any) is evaluated and stashed in the
// function's return slot before defers run, so a deferred statement can
// observe side effects made right before the return without being able
// to change which value is actually returned (Lux has no named return
// values for a defer to rebind).
func (c *Context) lowerReturn(r *ast.ReturnStmt) {
	if r.Value != nil && c.retSlot != nil {
		val := c.lowerExpr(r.Value)
		c.curBlock.NewStore(c.coerce(val, c.exprType(r.Value), c.retType), c.retSlot)
	}
	c.runDefers()
	if terminated(c.curBlock) {
		return
	}
	c.emitReturnFromSlot()
}

func (c *Context) lowerIf(ifs *ast.IfStmt) {
	cond := c.lowerExpr(ifs.Cond)
	merge := c.curFunc.NewBlock("if-merge")

	thenBlock := c.curFunc.NewBlock("if-then")
	elseBlock := merge
	if len(ifs.Elifs) > 0 || ifs.Else != nil {
		elseBlock = c.curFunc.NewBlock("if-else")
	}
	c.curBlock.NewCondBr(cond, thenBlock, elseBlock)

	c.curBlock = thenBlock
	c.lowerStmt(ifs.Then)
	if !terminated(c.curBlock) {
		c.curBlock.NewBr(merge)
	}

	cur := elseBlock
	for i, arm := range ifs.Elifs {
		c.curBlock = cur
		armCond := c.lowerExpr(arm.Cond)
		armThen := c.curFunc.NewBlock(fmt.Sprintf("elif-then-%d", i))
		var next *ast.ElifArm
		if i+1 < len(ifs.Elifs) {
			next = &ifs.Elifs[i+1]
		}
		var nextBlock = merge
		if next != nil || ifs.Else != nil {
			nextBlock = c.curFunc.NewBlock(fmt.Sprintf("elif-else-%d", i))
		}
		c.curBlock.NewCondBr(armCond, armThen, nextBlock)

		c.curBlock = armThen
		c.lowerStmt(arm.Then)
		if !terminated(c.curBlock) {
			c.curBlock.NewBr(merge)
		}
		cur = nextBlock
	}

	if ifs.Else != nil {
		c.curBlock = cur
		c.lowerStmt(ifs.Else)
		if !terminated(c.curBlock) {
			c.curBlock.NewBr(merge)
		}
	}

	c.curBlock = merge
}

// lowerLoop implements the single three-shape loop node (spec.md
// §4.5/§9): an infinite loop has no cond block at all, a while-like loop
// checks its condition every iteration, and a for-like loop additionally
// runs its inits once before entry and its increment at the top of every
// iteration after the first.
//
// The for-like shape (non-empty Inits) gets its own loop-increment block
// and routes continue there instead of to the header: the increment is
// what advances the loop's own counter, so a continue that skipped it
// would spin forever. The while-like shape has no counter of its own --
// any increment clause it carries is just an ordinary action run on
// normal fall-through -- so continue there still targets header.
func (c *Context) lowerLoop(l *ast.LoopStmt) {
	c.pushScope()
	defer c.popScope()

	for _, init := range l.Inits {
		c.lowerStmt(init)
	}
	forLike := len(l.Inits) > 0

	header := c.curFunc.NewBlock("loop-header")
	body := c.curFunc.NewBlock("loop-body")
	exit := c.curFunc.NewBlock("loop-exit")

	continueDest := header
	var incr *ir.Block
	if forLike {
		incr = c.curFunc.NewBlock("loop-increment")
		continueDest = incr
	}

	if !terminated(c.curBlock) {
		c.curBlock.NewBr(header)
	}

	c.curBlock = header
	if l.Cond != nil {
		cond := c.lowerExpr(l.Cond)
		c.curBlock.NewCondBr(cond, body, exit)
	} else {
		c.curBlock.NewBr(body)
	}

	c.curBlock = body
	c.pushLoop(continueDest, exit)
	c.lowerStmt(l.Body)
	c.popLoop()
	if !terminated(c.curBlock) {
		if forLike {
			c.curBlock.NewBr(incr)
		} else {
			if l.Increment != nil {
				c.lowerExpr(l.Increment)
			}
			c.curBlock.NewBr(header)
		}
	}

	if forLike {
		c.curBlock = incr
		if l.Increment != nil {
			c.lowerExpr(l.Increment)
		}
		c.curBlock.NewBr(header)
	}

	c.curBlock = exit
}

func (c *Context) lowerLoopControl(lc *ast.LoopControlStmt) {
	dest, ok := c.currentLoop()
	if !ok {
		c.errorf(lc.Position(), "'%s' outside a loop", loopControlKeyword(lc))
		return
	}
	if lc.IsBreak {
		c.curBlock.NewBr(dest.breakBlock)
	} else {
		c.curBlock.NewBr(dest.continueBlock)
	}
}

func loopControlKeyword(lc *ast.LoopControlStmt) string {
	if lc.IsBreak {
		return "break"
	}
	return "continue"
}
