// Package ast defines the typed AST the language parser produces: a fixed
// set of node kinds, each carrying an ordinal unique within the Builder that
// created it and the Token
// it was parsed from, plus a Visitor/Traverser pair for double-dispatch
// over the (closed) node set.
package ast

import (
	"github.com/coregx/slimlang/lexer"
	"github.com/coregx/slimlang/operators"
)

// Builder assigns ordinals. Replaces what the source implementation did
// with a process-wide global counter: callers own one Builder per parse
// so ordinals stay reproducible across runs instead of depending on
// whatever else shared the process.
type Builder struct {
	next int
}

// NewBuilder returns a Builder whose first assigned ordinal is 0.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) ordinal() int {
	o := b.next
	b.next++
	return o
}

// Node is implemented by every AST node kind. Ordinal and Token are
// assigned once at construction and never change.
type Node interface {
	Ordinal() int
	Token() lexer.Token
	Accept(v Visitor)
}

type base struct {
	ordinal int
	tok     lexer.Token
}

func (b *base) Ordinal() int       { return b.ordinal }
func (b *base) Token() lexer.Token { return b.tok }

// --- Expressions ---

type BinaryExpr struct {
	base
	Op          operators.Operator
	Left, Right Node
}

func (b *Builder) NewBinaryExpr(tok lexer.Token, op operators.Operator, left, right Node) *BinaryExpr {
	return &BinaryExpr{base{b.ordinal(), tok}, op, left, right}
}
func (n *BinaryExpr) Accept(v Visitor) { v.VisitBinaryExpr(n) }

type UnaryExpr struct {
	base
	Op      operators.Operator
	Operand Node
}

func (b *Builder) NewUnaryExpr(tok lexer.Token, op operators.Operator, operand Node) *UnaryExpr {
	return &UnaryExpr{base{b.ordinal(), tok}, op, operand}
}
func (n *UnaryExpr) Accept(v Visitor) { v.VisitUnaryExpr(n) }

type VariableReference struct {
	base
	Name string
}

func (b *Builder) NewVariableReference(tok lexer.Token, name string) *VariableReference {
	return &VariableReference{base{b.ordinal(), tok}, name}
}
func (n *VariableReference) Accept(v Visitor) { v.VisitVariableReference(n) }

type IntLiteral struct {
	base
	Value int64
}

func (b *Builder) NewIntLiteral(tok lexer.Token, value int64) *IntLiteral {
	return &IntLiteral{base{b.ordinal(), tok}, value}
}
func (n *IntLiteral) Accept(v Visitor) { v.VisitIntLiteral(n) }

type FloatLiteral struct {
	base
	Value float64
}

func (b *Builder) NewFloatLiteral(tok lexer.Token, value float64) *FloatLiteral {
	return &FloatLiteral{base{b.ordinal(), tok}, value}
}
func (n *FloatLiteral) Accept(v Visitor) { v.VisitFloatLiteral(n) }

type BooleanLiteral struct {
	base
	Value bool
}

func (b *Builder) NewBooleanLiteral(tok lexer.Token, value bool) *BooleanLiteral {
	return &BooleanLiteral{base{b.ordinal(), tok}, value}
}
func (n *BooleanLiteral) Accept(v Visitor) { v.VisitBooleanLiteral(n) }

type StringLiteral struct {
	base
	Value string
}

func (b *Builder) NewStringLiteral(tok lexer.Token, value string) *StringLiteral {
	return &StringLiteral{base{b.ordinal(), tok}, value}
}
func (n *StringLiteral) Accept(v Visitor) { v.VisitStringLiteral(n) }

type FieldAccess struct {
	base
	Target Node
	Field  string
}

func (b *Builder) NewFieldAccess(tok lexer.Token, target Node, field string) *FieldAccess {
	return &FieldAccess{base{b.ordinal(), tok}, target, field}
}
func (n *FieldAccess) Accept(v Visitor) { v.VisitFieldAccess(n) }

type FunctionCall struct {
	base
	Callee string
	Args   []Node
}

func (b *Builder) NewFunctionCall(tok lexer.Token, callee string, args []Node) *FunctionCall {
	return &FunctionCall{base{b.ordinal(), tok}, callee, args}
}
func (n *FunctionCall) Accept(v Visitor) { v.VisitFunctionCall(n) }

// --- Statements ---

type DeclStat struct {
	base
	TypeName string
	Name     string
	Init     Node // nil if there is no initializer
}

func (b *Builder) NewDeclStat(tok lexer.Token, typeName, name string, init Node) *DeclStat {
	return &DeclStat{base{b.ordinal(), tok}, typeName, name, init}
}
func (n *DeclStat) Accept(v Visitor) { v.VisitDeclStat(n) }

type ExprStat struct {
	base
	Expr Node
}

func (b *Builder) NewExprStat(tok lexer.Token, expr Node) *ExprStat {
	return &ExprStat{base{b.ordinal(), tok}, expr}
}
func (n *ExprStat) Accept(v Visitor) { v.VisitExprStat(n) }

type ReturnStat struct {
	base
	Expr Node // nil for a bare `return;`
}

func (b *Builder) NewReturnStat(tok lexer.Token, expr Node) *ReturnStat {
	return &ReturnStat{base{b.ordinal(), tok}, expr}
}
func (n *ReturnStat) Accept(v Visitor) { v.VisitReturnStat(n) }

// --- Top-level ---

type PropertyDecl struct {
	base
	Tags     []string
	TypeName string
	Name     string
	Init     Node
}

func (b *Builder) NewPropertyDecl(tok lexer.Token, tags []string, typeName, name string, init Node) *PropertyDecl {
	return &PropertyDecl{base{b.ordinal(), tok}, tags, typeName, name, init}
}
func (n *PropertyDecl) Accept(v Visitor) { v.VisitPropertyDecl(n) }

type SharedDecl struct {
	base
	TypeName string
	Name     string
	Init     Node
}

func (b *Builder) NewSharedDecl(tok lexer.Token, typeName, name string, init Node) *SharedDecl {
	return &SharedDecl{base{b.ordinal(), tok}, typeName, name, init}
}
func (n *SharedDecl) Accept(v Visitor) { v.VisitSharedDecl(n) }

type FeatureBlock struct {
	base
	Name  string
	Decls []Node
}

func (b *Builder) NewFeatureBlock(tok lexer.Token, name string, decls []Node) *FeatureBlock {
	return &FeatureBlock{base{b.ordinal(), tok}, name, decls}
}
func (n *FeatureBlock) Accept(v Visitor) { v.VisitFeatureBlock(n) }

// ShaderKind distinguishes the two pipeline stages a ShaderBlock can target.
type ShaderKind int

const (
	Vertex ShaderKind = iota
	Fragment
)

func (k ShaderKind) String() string {
	if k == Vertex {
		return "vertex"
	}
	return "fragment"
}

type ShaderBlock struct {
	base
	Kind  ShaderKind
	Stats []Node
}

func (b *Builder) NewShaderBlock(tok lexer.Token, kind ShaderKind, stats []Node) *ShaderBlock {
	return &ShaderBlock{base{b.ordinal(), tok}, kind, stats}
}
func (n *ShaderBlock) Accept(v Visitor) { v.VisitShaderBlock(n) }

type RequireBlock struct {
	base
	Feature string
	Stats   []Node
}

func (b *Builder) NewRequireBlock(tok lexer.Token, feature string, stats []Node) *RequireBlock {
	return &RequireBlock{base{b.ordinal(), tok}, feature, stats}
}
func (n *RequireBlock) Accept(v Visitor) { v.VisitRequireBlock(n) }

type Program struct {
	base
	Children []Node
}

func (b *Builder) NewProgram(tok lexer.Token, children []Node) *Program {
	return &Program{base{b.ordinal(), tok}, children}
}
func (n *Program) Accept(v Visitor) { v.VisitProgram(n) }
