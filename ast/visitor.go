package ast

// Visitor has one method per node kind. The node set is closed, so unlike
// a typical OO visitor this exists purely as the external double-dispatch
// facade; internal traversal (Walk, DebugString) uses plain type switches.
type Visitor interface {
	VisitBinaryExpr(*BinaryExpr)
	VisitUnaryExpr(*UnaryExpr)
	VisitVariableReference(*VariableReference)
	VisitIntLiteral(*IntLiteral)
	VisitFloatLiteral(*FloatLiteral)
	VisitBooleanLiteral(*BooleanLiteral)
	VisitStringLiteral(*StringLiteral)
	VisitFieldAccess(*FieldAccess)
	VisitFunctionCall(*FunctionCall)
	VisitDeclStat(*DeclStat)
	VisitExprStat(*ExprStat)
	VisitReturnStat(*ReturnStat)
	VisitPropertyDecl(*PropertyDecl)
	VisitSharedDecl(*SharedDecl)
	VisitFeatureBlock(*FeatureBlock)
	VisitShaderBlock(*ShaderBlock)
	VisitRequireBlock(*RequireBlock)
	VisitProgram(*Program)
}

// NoopVisitor implements Visitor with every method doing nothing. Embed it
// to build a Visitor that only overrides the node kinds it cares about.
type NoopVisitor struct{}

func (NoopVisitor) VisitBinaryExpr(*BinaryExpr)                 {}
func (NoopVisitor) VisitUnaryExpr(*UnaryExpr)                   {}
func (NoopVisitor) VisitVariableReference(*VariableReference)   {}
func (NoopVisitor) VisitIntLiteral(*IntLiteral)                 {}
func (NoopVisitor) VisitFloatLiteral(*FloatLiteral)             {}
func (NoopVisitor) VisitBooleanLiteral(*BooleanLiteral)         {}
func (NoopVisitor) VisitStringLiteral(*StringLiteral)           {}
func (NoopVisitor) VisitFieldAccess(*FieldAccess)               {}
func (NoopVisitor) VisitFunctionCall(*FunctionCall)             {}
func (NoopVisitor) VisitDeclStat(*DeclStat)                     {}
func (NoopVisitor) VisitExprStat(*ExprStat)                     {}
func (NoopVisitor) VisitReturnStat(*ReturnStat)                 {}
func (NoopVisitor) VisitPropertyDecl(*PropertyDecl)             {}
func (NoopVisitor) VisitSharedDecl(*SharedDecl)                 {}
func (NoopVisitor) VisitFeatureBlock(*FeatureBlock)             {}
func (NoopVisitor) VisitShaderBlock(*ShaderBlock)               {}
func (NoopVisitor) VisitRequireBlock(*RequireBlock)             {}
func (NoopVisitor) VisitProgram(*Program)                       {}

// Traverser receives pre-order and post-order callbacks as Walk descends
// an AST. The type checker pushes scopes in Pre at ShaderBlock/RequireBlock
// and pops them, and annotates expression types, in Post.
type Traverser interface {
	Pre(n Node)
	Post(n Node)
}

// Walk visits n and every descendant in depth-first order, calling
// t.Pre before descending into a node's children and t.Post after.
func Walk(n Node, t Traverser) {
	if n == nil {
		return
	}
	t.Pre(n)
	for _, c := range children(n) {
		Walk(c, t)
	}
	t.Post(n)
}

// children enumerates n's direct child nodes, skipping any nil slots.
func children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch v := n.(type) {
	case *BinaryExpr:
		add(v.Left)
		add(v.Right)
	case *UnaryExpr:
		add(v.Operand)
	case *FieldAccess:
		add(v.Target)
	case *FunctionCall:
		for _, a := range v.Args {
			add(a)
		}
	case *DeclStat:
		add(v.Init)
	case *ExprStat:
		add(v.Expr)
	case *ReturnStat:
		add(v.Expr)
	case *PropertyDecl:
		add(v.Init)
	case *SharedDecl:
		add(v.Init)
	case *FeatureBlock:
		for _, d := range v.Decls {
			add(d)
		}
	case *ShaderBlock:
		for _, s := range v.Stats {
			add(s)
		}
	case *RequireBlock:
		for _, s := range v.Stats {
			add(s)
		}
	case *Program:
		for _, c := range v.Children {
			add(c)
		}
	}
	return out
}
