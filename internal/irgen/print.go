package irgen

import (
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"github.com/luxlang/luxc/internal/ast"
)

// lowerPrint implements `output(...)`/`outputln(...)` (spec.md §3) as a
// single printf call: a format string is assembled at lowering time from
// each argument's statically-known type (the only place luxc builds a C
// varargs call, so the usual varargs integer/float promotion rules are
// applied by hand -- char and bool widen to i32, float widens to
// double).
func (c *Context) lowerPrint(p *ast.PrintStmt) {
	var format strings.Builder
	args := make([]ir.Value, 0, len(p.Args))
	for _, a := range p.Args {
		t := c.exprType(a)
		v := c.lowerExpr(a)
		spec, promoted := c.printfArg(v, t)
		format.WriteString(spec)
		args = append(args, promoted)
	}
	if p.Newline {
		format.WriteByte('\n')
	}

	fmtPtr := c.globalStringPtr(format.String())
	callArgs := append([]ir.Value{fmtPtr}, args...)
	c.curBlock.NewCall(c.printfFunc(), callArgs...)
}

func (c *Context) printfArg(v ir.Value, t ast.Type) (string, ir.Value) {
	bt, ok := t.(*ast.BasicType)
	if !ok {
		return "%p", v
	}
	switch bt.Name {
	case "int":
		return "%lld", v
	case "float":
		return "%f", c.curBlock.NewFPExt(v, types.Double)
	case "double":
		return "%f", v
	case "str":
		return "%s", v
	case "char":
		return "%c", c.curBlock.NewZExt(v, types.I32)
	case "bool":
		return "%d", c.curBlock.NewZExt(v, types.I32)
	default:
		return "%p", v
	}
}
