package typecheck

import (
	"fmt"

	"github.com/coregx/slimlang/ast"
)

// NodeError wraps any typecheck failure with the token the offending node
// was parsed from, so callers can report a source location without every
// error type needing to carry one itself.
type NodeError struct {
	Node ast.Node
	Err  error
}

func (e *NodeError) Error() string {
	tok := e.Node.Token()
	return fmt.Sprintf("line %d, col %d: %s", tok.Line, tok.Col, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// UnknownTypeError reports a type name (in a declaration) that the
// registry has no built-in for.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.Name)
}

// UnsupportedOperatorError reports an operator applied to operand types
// the support tables don't list.
type UnsupportedOperatorError struct {
	Op          string
	Left, Right string
}

func (e *UnsupportedOperatorError) Error() string {
	if e.Right == "" {
		return fmt.Sprintf("operator %s not supported for %s", e.Op, e.Left)
	}
	return fmt.Sprintf("operator %s not supported for %s and %s", e.Op, e.Left, e.Right)
}

// InvalidSwizzleError reports a field-access expression that Registry.Swizzle
// rejected.
type InvalidSwizzleError struct {
	Type  string
	Field string
}

func (e *InvalidSwizzleError) Error() string {
	return fmt.Sprintf("invalid swizzle %q on %s", e.Field, e.Type)
}

// UndefinedFunctionError reports a call to a name with no registered
// built-in constructor.
type UndefinedFunctionError struct {
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("undefined function %q", e.Name)
}

// ArgumentMismatchError reports a call whose argument types match neither
// the function's primary signature nor any of its overloads.
type ArgumentMismatchError struct {
	Name string
}

func (e *ArgumentMismatchError) Error() string {
	return fmt.Sprintf("arguments do not match any signature of %q", e.Name)
}

// InitializerMismatchError reports a declaration whose initializer type
// does not match its declared type.
type InitializerMismatchError struct {
	Name     string
	Declared string
	Got      string
}

func (e *InitializerMismatchError) Error() string {
	return fmt.Sprintf("cannot initialize %q of type %s with value of type %s", e.Name, e.Declared, e.Got)
}

// ReturnTypeMismatchError reports a return statement whose expression type
// does not match the enclosing function's declared return type.
type ReturnTypeMismatchError struct {
	Declared, Got string
}

func (e *ReturnTypeMismatchError) Error() string {
	return fmt.Sprintf("return type mismatch: declared %s, got %s", e.Declared, e.Got)
}

// ReturnOutsideFunctionError reports a return statement with no enclosing
// scope that declares a return type.
type ReturnOutsideFunctionError struct{}

func (e *ReturnOutsideFunctionError) Error() string {
	return "return statement outside of a function body"
}
