package irgen

import "github.com/luxlang/luxc/internal/ast"

// exprType re-derives an expression's type during lowering. internal/
// checker's scope forest (and the type it computed for every expression)
// is discarded once Check returns -- spec.md's IR-lowering input is the
// type-checked AST root itself, not an annotated tree -- so lowering
// recomputes types the same way internal/checker's checkExpr did, minus
// the diagnostics: a program that reached irgen already passed Check,
// so every lookup here is assumed to succeed.
func (c *Context) exprType(e ast.Expr) ast.Type {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *ast.LiteralExpr:
		return c.literalType(ex)
	case *ast.IdentifierExpr:
		return c.identifierType(ex.Name)
	case *ast.BinaryExpr:
		return c.binaryType(ex)
	case *ast.UnaryExpr:
		switch ex.Op {
		case ast.UnaryLNot:
			return c.boolType(ex.Position())
		default:
			return c.exprType(ex.Operand)
		}
	case *ast.CallExpr:
		return c.callReturnType(ex)
	case *ast.AssignExpr:
		return c.exprType(ex.Target)
	case *ast.TernaryExpr:
		if t := c.exprType(ex.Then); t != nil {
			return t
		}
		return c.exprType(ex.Else)
	case *ast.MemberExpr:
		return c.memberType(ex)
	case *ast.IndexExpr:
		switch at := c.exprType(ex.Array).(type) {
		case *ast.ArrayType:
			return at.Elem
		case *ast.PointerType:
			return at.Pointee
		}
		return nil
	case *ast.GroupingExpr:
		return c.exprType(ex.Inner)
	case *ast.ArrayLiteralExpr:
		var elem ast.Type = c.voidType(ex.Position())
		if len(ex.Elems) > 0 {
			elem = c.exprType(ex.Elems[0])
		}
		return ast.NewArrayType(c.arena, ex.Position(), elem, ast.NewIntLiteral(c.arena, ex.Position(), int64(len(ex.Elems))))
	case *ast.StructLiteralExpr:
		return ast.NewNamedType(c.arena, ex.Position(), ex.StructName)
	case *ast.CastExpr:
		return ex.TargetType
	case *ast.SizeofExpr:
		return c.intType(ex.Position())
	case *ast.AllocExpr:
		return ast.NewPointerType(c.arena, ex.Position(), c.charType(ex.Position()))
	case *ast.ReleaseExpr, *ast.CopyExpr:
		return c.voidType(e.Position())
	case *ast.AddressExpr:
		return ast.NewPointerType(c.arena, ex.Position(), c.exprType(ex.Operand))
	case *ast.DereferenceExpr:
		if pt, ok := c.exprType(ex.Operand).(*ast.PointerType); ok {
			return pt.Pointee
		}
		return nil
	}
	return nil
}

func (c *Context) literalType(lit *ast.LiteralExpr) ast.Type {
	switch lit.LitKind {
	case ast.LitInt:
		return c.intType(lit.Position())
	case ast.LitFloat:
		return c.floatType(lit.Position())
	case ast.LitString:
		return c.strType(lit.Position())
	case ast.LitChar:
		return c.charType(lit.Position())
	case ast.LitBool:
		return c.boolType(lit.Position())
	case ast.LitNull:
		return ast.NewPointerType(c.arena, lit.Position(), c.voidType(lit.Position()))
	}
	return nil
}

func (c *Context) identifierType(name string) ast.Type {
	if v, ok := c.lookupLocal(name); ok {
		return v.typ
	}
	if rec, _, ok := c.lookupGlobal(name); ok {
		return rec.typ
	}
	return nil
}

func (c *Context) binaryType(b *ast.BinaryExpr) ast.Type {
	switch b.Op {
	case ast.OpEqEq, ast.OpNotEq, ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq, ast.OpLAnd, ast.OpLOr:
		return c.boolType(b.Position())
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		return c.exprType(b.Left)
	default: // arithmetic
		leftName, _ := numericName(c.exprType(b.Left))
		rightName, _ := numericName(c.exprType(b.Right))
		name := leftName
		if numericRank[rightName] > numericRank[leftName] {
			name = rightName
		}
		return ast.NewBasicType(c.arena, b.Position(), name)
	}
}

func (c *Context) callReturnType(call *ast.CallExpr) ast.Type {
	if m, ok := call.Callee.(*ast.MemberExpr); ok {
		if rec, _, ok := c.lookupGlobal(m.Field); ok {
			if fnType, ok := rec.typ.(*ast.FunctionType); ok {
				return fnType.Return
			}
		}
		return nil
	}
	calleeType := c.exprType(call.Callee)
	if fnType, ok := calleeType.(*ast.FunctionType); ok {
		return fnType.Return
	}
	return nil
}

func (c *Context) memberType(m *ast.MemberExpr) ast.Type {
	if id, ok := m.Object.(*ast.IdentifierExpr); ok {
		if _, ok := c.enumMembers[id.Name+"."+m.Field]; ok {
			return c.intType(m.Position())
		}
	}
	named, ok := c.exprType(m.Object).(*ast.NamedType)
	if !ok {
		return nil
	}
	layout, ok := c.structs[named.Name]
	if !ok {
		return nil
	}
	_, typ, ok := layout.indexOf(m.Field)
	if !ok {
		return nil
	}
	return typ
}

func (c *Context) intType(pos ast.Pos) ast.Type   { return ast.NewBasicType(c.arena, pos, "int") }
func (c *Context) floatType(pos ast.Pos) ast.Type  { return ast.NewBasicType(c.arena, pos, "float") }
func (c *Context) boolType(pos ast.Pos) ast.Type   { return ast.NewBasicType(c.arena, pos, "bool") }
func (c *Context) charType(pos ast.Pos) ast.Type   { return ast.NewBasicType(c.arena, pos, "char") }
func (c *Context) strType(pos ast.Pos) ast.Type    { return ast.NewBasicType(c.arena, pos, "str") }
func (c *Context) voidType(pos ast.Pos) ast.Type   { return ast.NewBasicType(c.arena, pos, "void") }

var numericRank = map[string]int{"int": 1, "float": 2, "double": 3}

func numericName(t ast.Type) (string, bool) {
	bt, ok := t.(*ast.BasicType)
	if !ok {
		return "", false
	}
	_, numeric := numericRank[bt.Name]
	return bt.Name, numeric
}

func isIntType(t ast.Type) bool {
	bt, ok := t.(*ast.BasicType)
	return ok && bt.Name == "int"
}
