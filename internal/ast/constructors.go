package ast

import "github.com/luxlang/luxc/internal/arena"

// This file holds the factory operations spec.md §4.4 describes: each
// takes the arena and the variant-specific fields, allocates a node,
// stamps its category/kind and position, and returns it. Identifier
// names and string literal bodies are duplicated into the arena here,
// not left referencing lexer/source buffers, since AST nodes must
// outlive the token stream they were built from.

// --- Expressions ---

func NewIntLiteral(a *arena.Arena, pos Pos, v int64) *LiteralExpr {
	n := arena.New[LiteralExpr](a)
	n.kind, n.pos = LiteralExprKind, pos
	n.LitKind, n.IntVal = LitInt, v
	return n
}

func NewFloatLiteral(a *arena.Arena, pos Pos, v float64) *LiteralExpr {
	n := arena.New[LiteralExpr](a)
	n.kind, n.pos = LiteralExprKind, pos
	n.LitKind, n.FloatVal = LitFloat, v
	return n
}

func NewStringLiteral(a *arena.Arena, pos Pos, v string) *LiteralExpr {
	n := arena.New[LiteralExpr](a)
	n.kind, n.pos = LiteralExprKind, pos
	n.LitKind, n.StrVal = LitString, a.DupString(v)
	return n
}

func NewCharLiteral(a *arena.Arena, pos Pos, v byte) *LiteralExpr {
	n := arena.New[LiteralExpr](a)
	n.kind, n.pos = LiteralExprKind, pos
	n.LitKind, n.CharVal = LitChar, v
	return n
}

func NewBoolLiteral(a *arena.Arena, pos Pos, v bool) *LiteralExpr {
	n := arena.New[LiteralExpr](a)
	n.kind, n.pos = LiteralExprKind, pos
	n.LitKind, n.BoolVal = LitBool, v
	return n
}

func NewNullLiteral(a *arena.Arena, pos Pos) *LiteralExpr {
	n := arena.New[LiteralExpr](a)
	n.kind, n.pos = LiteralExprKind, pos
	n.LitKind = LitNull
	return n
}

func NewIdentifier(a *arena.Arena, pos Pos, name string) *IdentifierExpr {
	n := arena.New[IdentifierExpr](a)
	n.kind, n.pos = IdentifierExprKind, pos
	n.Name = a.DupString(name)
	return n
}

func NewBinary(a *arena.Arena, pos Pos, op BinaryOp, left, right Expr) *BinaryExpr {
	n := arena.New[BinaryExpr](a)
	n.kind, n.pos = BinaryExprKind, pos
	n.Op, n.Left, n.Right = op, left, right
	return n
}

func NewUnary(a *arena.Arena, pos Pos, op UnaryOp, operand Expr) *UnaryExpr {
	n := arena.New[UnaryExpr](a)
	n.kind, n.pos = UnaryExprKind, pos
	n.Op, n.Operand = op, operand
	return n
}

func NewCall(a *arena.Arena, pos Pos, callee Expr, args []Expr) *CallExpr {
	n := arena.New[CallExpr](a)
	n.kind, n.pos = CallExprKind, pos
	n.Callee, n.Args = callee, args
	return n
}

func NewAssign(a *arena.Arena, pos Pos, target, value Expr) *AssignExpr {
	n := arena.New[AssignExpr](a)
	n.kind, n.pos = AssignExprKind, pos
	n.Target, n.Value = target, value
	return n
}

func NewTernary(a *arena.Arena, pos Pos, cond, then, els Expr) *TernaryExpr {
	n := arena.New[TernaryExpr](a)
	n.kind, n.pos = TernaryExprKind, pos
	n.Cond, n.Then, n.Else = cond, then, els
	return n
}

func NewMember(a *arena.Arena, pos Pos, object Expr, field string) *MemberExpr {
	n := arena.New[MemberExpr](a)
	n.kind, n.pos = MemberExprKind, pos
	n.Object, n.Field = object, a.DupString(field)
	return n
}

func NewIndex(a *arena.Arena, pos Pos, arr, idx Expr) *IndexExpr {
	n := arena.New[IndexExpr](a)
	n.kind, n.pos = IndexExprKind, pos
	n.Array, n.Index = arr, idx
	return n
}

func NewGrouping(a *arena.Arena, pos Pos, inner Expr) *GroupingExpr {
	n := arena.New[GroupingExpr](a)
	n.kind, n.pos = GroupingExprKind, pos
	n.Inner = inner
	return n
}

func NewArrayLiteral(a *arena.Arena, pos Pos, elems []Expr) *ArrayLiteralExpr {
	n := arena.New[ArrayLiteralExpr](a)
	n.kind, n.pos = ArrayLiteralExprKind, pos
	n.Elems = elems
	return n
}

func NewStructLiteral(a *arena.Arena, pos Pos, structName string, fields []StructFieldInit) *StructLiteralExpr {
	n := arena.New[StructLiteralExpr](a)
	n.kind, n.pos = StructLiteralExprKind, pos
	n.StructName, n.Fields = a.DupString(structName), fields
	return n
}

func NewCast(a *arena.Arena, pos Pos, target Type, operand Expr) *CastExpr {
	n := arena.New[CastExpr](a)
	n.kind, n.pos = CastExprKind, pos
	n.TargetType, n.Operand = target, operand
	return n
}

func NewSizeofType(a *arena.Arena, pos Pos, target Type) *SizeofExpr {
	n := arena.New[SizeofExpr](a)
	n.kind, n.pos = SizeofExprKind, pos
	n.TargetType = target
	return n
}

func NewSizeofExpr(a *arena.Arena, pos Pos, operand Expr) *SizeofExpr {
	n := arena.New[SizeofExpr](a)
	n.kind, n.pos = SizeofExprKind, pos
	n.Operand = operand
	return n
}

func NewAlloc(a *arena.Arena, pos Pos, size Expr) *AllocExpr {
	n := arena.New[AllocExpr](a)
	n.kind, n.pos = AllocExprKind, pos
	n.Size = size
	return n
}

func NewRelease(a *arena.Arena, pos Pos, operand Expr) *ReleaseExpr {
	n := arena.New[ReleaseExpr](a)
	n.kind, n.pos = ReleaseExprKind, pos
	n.Operand = operand
	return n
}

func NewCopy(a *arena.Arena, pos Pos, dest, src, size Expr) *CopyExpr {
	n := arena.New[CopyExpr](a)
	n.kind, n.pos = CopyExprKind, pos
	n.Dest, n.Src, n.Size = dest, src, size
	return n
}

func NewAddress(a *arena.Arena, pos Pos, operand Expr) *AddressExpr {
	n := arena.New[AddressExpr](a)
	n.kind, n.pos = AddressExprKind, pos
	n.Operand = operand
	return n
}

func NewDereference(a *arena.Arena, pos Pos, operand Expr) *DereferenceExpr {
	n := arena.New[DereferenceExpr](a)
	n.kind, n.pos = DereferenceExprKind, pos
	n.Operand = operand
	return n
}

// --- Statements ---

func NewProgram(a *arena.Arena, items []Node) *ProgramStmt {
	n := arena.New[ProgramStmt](a)
	n.kind = ProgramStmtKind
	n.Items = items
	return n
}

func NewExprStmt(a *arena.Arena, pos Pos, x Expr) *ExprStmt {
	n := arena.New[ExprStmt](a)
	n.kind, n.pos = ExprStmtKind, pos
	n.X = x
	return n
}

func NewVarDecl(a *arena.Arena, pos Pos, name string, mutable, public bool, annotation Type, init Expr) *VarDecl {
	n := arena.New[VarDecl](a)
	n.kind, n.pos = VarDeclStmtKind, pos
	n.Name, n.Mutable, n.Public = a.DupString(name), mutable, public
	n.Annotation, n.Init = annotation, init
	return n
}

func NewFuncDecl(a *arena.Arena, pos Pos, name string, public bool, params []Param, ret Type, body *BlockStmt) *FuncDecl {
	n := arena.New[FuncDecl](a)
	n.kind, n.pos = FuncDeclStmtKind, pos
	n.Name, n.Public, n.Params, n.ReturnType, n.Body = a.DupString(name), public, params, ret, body
	return n
}

func NewStructDecl(a *arena.Arena, pos Pos, name string, public, private []FieldDecl) *StructDecl {
	n := arena.New[StructDecl](a)
	n.kind, n.pos = StructDeclStmtKind, pos
	n.Name, n.PublicFields, n.PrivateFields = a.DupString(name), public, private
	return n
}

func NewEnumDecl(a *arena.Arena, pos Pos, name string, public bool, members []string) *EnumDecl {
	n := arena.New[EnumDecl](a)
	n.kind, n.pos = EnumDeclStmtKind, pos
	n.Name, n.Public, n.Members = a.DupString(name), public, members
	return n
}

func NewIf(a *arena.Arena, pos Pos, cond Expr, then Stmt, elifs []ElifArm, els Stmt) *IfStmt {
	n := arena.New[IfStmt](a)
	n.kind, n.pos = IfStmtKind, pos
	n.Cond, n.Then, n.Elifs, n.Else = cond, then, elifs, els
	return n
}

func NewLoop(a *arena.Arena, pos Pos, inits []Stmt, cond, increment Expr, body Stmt) *LoopStmt {
	n := arena.New[LoopStmt](a)
	n.kind, n.pos = LoopStmtKind, pos
	n.Inits, n.Cond, n.Increment, n.Body = inits, cond, increment, body
	return n
}

func NewReturn(a *arena.Arena, pos Pos, value Expr) *ReturnStmt {
	n := arena.New[ReturnStmt](a)
	n.kind, n.pos = ReturnStmtKind, pos
	n.Value = value
	return n
}

func NewBlock(a *arena.Arena, pos Pos, stmts []Stmt) *BlockStmt {
	n := arena.New[BlockStmt](a)
	n.kind, n.pos = BlockStmtKind, pos
	n.Stmts = stmts
	return n
}

func NewPrint(a *arena.Arena, pos Pos, args []Expr, newline bool) *PrintStmt {
	n := arena.New[PrintStmt](a)
	n.kind, n.pos = PrintStmtKind, pos
	n.Args, n.Newline = args, newline
	return n
}

func NewLoopControl(a *arena.Arena, pos Pos, isBreak bool) *LoopControlStmt {
	n := arena.New[LoopControlStmt](a)
	n.kind, n.pos = LoopControlStmtKind, pos
	n.IsBreak = isBreak
	return n
}

func NewDefer(a *arena.Arena, pos Pos, inner Stmt) *DeferStmt {
	n := arena.New[DeferStmt](a)
	n.kind, n.pos = DeferStmtKind, pos
	n.Inner = inner
	return n
}

// --- Types ---

func NewBasicType(a *arena.Arena, pos Pos, name string) *BasicType {
	n := arena.New[BasicType](a)
	n.kind, n.pos = BasicTypeKind, pos
	n.Name = a.DupString(name)
	return n
}

func NewPointerType(a *arena.Arena, pos Pos, pointee Type) *PointerType {
	n := arena.New[PointerType](a)
	n.kind, n.pos = PointerTypeKind, pos
	n.Pointee = pointee
	return n
}

func NewArrayType(a *arena.Arena, pos Pos, elem Type, size Expr) *ArrayType {
	n := arena.New[ArrayType](a)
	n.kind, n.pos = ArrayTypeKind, pos
	n.Elem, n.Size = elem, size
	return n
}

func NewFunctionType(a *arena.Arena, pos Pos, params []Type, ret Type) *FunctionType {
	n := arena.New[FunctionType](a)
	n.kind, n.pos = FunctionTypeKind, pos
	n.Params, n.Return = params, ret
	return n
}

func NewNamedType(a *arena.Arena, pos Pos, name string) *NamedType {
	n := arena.New[NamedType](a)
	n.kind, n.pos = NamedTypeKind, pos
	n.Name = a.DupString(name)
	return n
}

// --- Directives ---

func NewModuleDirective(a *arena.Arena, pos Pos, name string, body []Node) *ModuleDirective {
	n := arena.New[ModuleDirective](a)
	n.kind, n.pos = ModuleDirectiveKind, pos
	n.Name, n.Body = a.DupString(name), body
	return n
}

func NewUseDirective(a *arena.Arena, pos Pos, moduleName, alias string) *UseDirective {
	n := arena.New[UseDirective](a)
	n.kind, n.pos = UseDirectiveKind, pos
	n.ModuleName, n.Alias = a.DupString(moduleName), a.DupString(alias)
	return n
}
