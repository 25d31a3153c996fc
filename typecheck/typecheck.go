// Package typecheck walks a parsed ast.Program with ast.Walk, declaring
// property/shared names and annotating every expression node with its
// resolved type. It is a single pre/post-order pass: scopes open in Pre at
// each block that introduces one and close in Post; every expression's
// type is computed in Post, once its children are already annotated.
package typecheck

import (
	"github.com/coregx/slimlang/ast"
	"github.com/coregx/slimlang/operators"
	"github.com/coregx/slimlang/symtab"
	"github.com/coregx/slimlang/types"
)

// Checker implements ast.Traverser. Construct one with New, then call
// Check, which walks an ast.Program through it and returns the errors found.
type Checker struct {
	Registry *types.Registry
	Symbols  *symtab.SymbolTable

	errs []error
}

// New returns a Checker with a fresh built-in type registry and a symbol
// table containing only the global (root) scope.
func New() *Checker {
	return &Checker{
		Registry: types.NewRegistry(),
		Symbols:  symtab.New(),
	}
}

// Check walks prog and returns every type error found. A nil/empty result
// means prog typechecks cleanly.
func (c *Checker) Check(prog *ast.Program) []error {
	ast.Walk(prog, c)
	return c.errs
}

func (c *Checker) fail(n ast.Node, err error) {
	c.errs = append(c.errs, &NodeError{Node: n, Err: err})
}

// Pre opens a new lexical scope for the block kinds that introduce one. A
// FeatureBlock does not: its property/shared declarations are gated by
// "require", not lexically scoped, so they declare directly into whatever
// scope encloses the feature block (normally the global one) and stay
// visible to any later require-block that activates the feature.
// Expression and declaration nodes need no pre-order action: they are
// handled entirely in Post, once their children are typed.
func (c *Checker) Pre(n ast.Node) {
	switch n.(type) {
	case *ast.ShaderBlock:
		// A shader body behaves like a function returning the stage's
		// output value, which is a vec4 for both stages.
		vec4, _ := c.Registry.Lookup("vec4")
		c.Symbols.BeginScope(vec4)
	case *ast.RequireBlock:
		c.Symbols.BeginScope(nil)
	}
}

// Post computes and annotates types bottom-up, and closes the scopes Pre
// opened.
func (c *Checker) Post(n ast.Node) {
	switch v := n.(type) {
	case *ast.IntLiteral:
		c.annotate(v, "int")
	case *ast.FloatLiteral:
		c.annotate(v, "float")
	case *ast.BooleanLiteral:
		c.annotate(v, "bool")
	case *ast.StringLiteral:
		// String literals name assets (textures, etc.) and carry no type
		// in this type system; nothing to annotate.
	case *ast.VariableReference:
		t, err := c.Symbols.Lookup(v.Name)
		if err != nil {
			c.fail(n, err)
			return
		}
		c.Symbols.Annotate(v.Ordinal(), t)
	case *ast.FieldAccess:
		c.checkFieldAccess(v)
	case *ast.FunctionCall:
		c.checkFunctionCall(v)
	case *ast.BinaryExpr:
		c.checkBinaryExpr(v)
	case *ast.UnaryExpr:
		c.checkUnaryExpr(v)
	case *ast.DeclStat:
		c.declare(n, v.TypeName, v.Name, v.Init)
	case *ast.PropertyDecl:
		c.declare(n, v.TypeName, v.Name, v.Init)
	case *ast.SharedDecl:
		c.declare(n, v.TypeName, v.Name, v.Init)
	case *ast.ReturnStat:
		c.checkReturnStat(v)
	case *ast.ShaderBlock:
		c.Symbols.EndScope()
	case *ast.RequireBlock:
		c.Symbols.EndScope()
	}
}

func (c *Checker) annotate(n ast.Node, typeName string) {
	t, ok := c.Registry.Lookup(typeName)
	if !ok {
		c.fail(n, &UnknownTypeError{Name: typeName})
		return
	}
	if err := c.Symbols.Annotate(n.Ordinal(), t); err != nil {
		c.fail(n, err)
	}
}

// typeOf returns the already-computed type of a child expression, which
// Post-order traversal guarantees is annotated by the time the parent is
// visited.
func (c *Checker) typeOf(n ast.Node) (*types.Type, bool) {
	if n == nil {
		return nil, false
	}
	return c.Symbols.LookupOrdinal(n.Ordinal())
}

func (c *Checker) checkBinaryExpr(n *ast.BinaryExpr) {
	left, leftOk := c.typeOf(n.Left)
	right, rightOk := c.typeOf(n.Right)
	if !leftOk || !rightOk {
		return // an operand already failed; don't cascade a second error
	}
	result, ok := operators.ResultType(c.Registry, n.Op, left, right)
	if !ok {
		c.fail(n, &UnsupportedOperatorError{Op: n.Op.Symbol(), Left: left.String(), Right: right.String()})
		return
	}
	if err := c.Symbols.Annotate(n.Ordinal(), result); err != nil {
		c.fail(n, err)
	}
}

func (c *Checker) checkUnaryExpr(n *ast.UnaryExpr) {
	operand, ok := c.typeOf(n.Operand)
	if !ok {
		return
	}
	result, ok := operators.UnaryResultType(c.Registry, n.Op, operand)
	if !ok {
		c.fail(n, &UnsupportedOperatorError{Op: n.Op.Symbol(), Left: operand.String()})
		return
	}
	if err := c.Symbols.Annotate(n.Ordinal(), result); err != nil {
		c.fail(n, err)
	}
}

func (c *Checker) checkFieldAccess(n *ast.FieldAccess) {
	target, ok := c.typeOf(n.Target)
	if !ok {
		return
	}
	result, ok := c.Registry.Swizzle(target, n.Field)
	if !ok {
		c.fail(n, &InvalidSwizzleError{Type: target.String(), Field: n.Field})
		return
	}
	if err := c.Symbols.Annotate(n.Ordinal(), result); err != nil {
		c.fail(n, err)
	}
}

func (c *Checker) checkFunctionCall(n *ast.FunctionCall) {
	fn, ok := c.Registry.LookupFunction(n.Callee)
	if !ok {
		c.fail(n, &UndefinedFunctionError{Name: n.Callee})
		return
	}

	argTypes := make([]*types.Type, len(n.Args))
	for i, a := range n.Args {
		t, ok := c.typeOf(a)
		if !ok {
			return
		}
		argTypes[i] = t
	}

	if !matchesSignature(fn.Params, argTypes) && !matchesOverload(fn.Overloads, argTypes) {
		c.fail(n, &ArgumentMismatchError{Name: n.Callee})
		return
	}
	if err := c.Symbols.Annotate(n.Ordinal(), fn.ReturnType); err != nil {
		c.fail(n, err)
	}
}

func matchesSignature(params, args []*types.Type) bool {
	if len(params) != len(args) {
		return false
	}
	for i, p := range params {
		if p != args[i] {
			return false
		}
	}
	return true
}

// matchesOverload accepts args that match one alternative parameter list
// exactly (same length, identical types), e.g. vec3(floatValue), whose
// constructor has a lone float scalar as its only overload.
func matchesOverload(overloads [][]*types.Type, args []*types.Type) bool {
	for _, alt := range overloads {
		if matchesSignature(alt, args) {
			return true
		}
	}
	return false
}

// declare binds a declaration's name before validating its initializer,
// in that order, so the name is already resolvable when the initializer
// check runs.
func (c *Checker) declare(n ast.Node, typeName, name string, init ast.Node) {
	declared, ok := c.Registry.Lookup(typeName)
	if !ok {
		c.fail(n, &UnknownTypeError{Name: typeName})
		return
	}
	if err := c.Symbols.Declare(n.Ordinal(), name, declared); err != nil {
		c.fail(n, err)
	}
	if init != nil {
		initType, ok := c.typeOf(init)
		if ok && initType != declared {
			c.fail(n, &InitializerMismatchError{Name: name, Declared: declared.String(), Got: initType.String()})
		}
	}
}

func (c *Checker) checkReturnStat(n *ast.ReturnStat) {
	want := c.Symbols.ReturnType()
	if want == nil {
		c.fail(n, &ReturnOutsideFunctionError{})
		return
	}
	if n.Expr == nil {
		return
	}
	got, ok := c.typeOf(n.Expr)
	if !ok {
		return
	}
	if got != want {
		c.fail(n, &ReturnTypeMismatchError{Declared: want.String(), Got: got.String()})
	}
}
