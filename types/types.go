// Package types implements the language's small numeric/linear-algebra
// type system as an interned registry: every built-in type is constructed
// exactly once, and type equality throughout the rest of the front end is
// reference equality on the interned *Type values this package hands out.
package types

import "fmt"

// Kind tags which variant of Type a value is.
type Kind int

const (
	ScalarKind Kind = iota
	VectorKind
	MatrixKind
	Sampler2DKind
	FunctionKind
)

// ScalarName distinguishes the four built-in scalar types.
type ScalarName int

const (
	Bool ScalarName = iota
	Int
	UInt
	Float
)

func (s ScalarName) String() string {
	switch s {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Float:
		return "float"
	default:
		return "?"
	}
}

// Type is a tagged, interned variant. Two Types are the same type iff they
// are the same pointer; Registry guarantees this by building every built-in
// type and constructor function exactly once.
type Type struct {
	Kind Kind

	Scalar ScalarName // valid when Kind == ScalarKind, or the element kind when Kind == VectorKind

	Element *Type // valid when Kind == VectorKind
	Length  int   // valid when Kind == VectorKind: 2, 3, or 4

	Size int // valid when Kind == MatrixKind: 2, 3, or 4 (square, float)

	Params     []*Type   // valid when Kind == FunctionKind
	Overloads  [][]*Type // valid when Kind == FunctionKind
	ReturnType *Type     // valid when Kind == FunctionKind

	name string // display name, also the Registry lookup key for built-ins
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

// IsVector reports whether t is a Vector of the given element scalar kind.
func (t *Type) IsVector(elem ScalarName) bool {
	return t.Kind == VectorKind && t.Scalar == elem
}

// Registry holds every built-in Type, constructed once, plus the built-in
// constructor Function types. It creates no other Types after NewRegistry
// returns.
type Registry struct {
	byName map[string]*Type
	funcs  map[string]*Type
}

// NewRegistry builds the full set of built-in types: four scalars, their
// length-2/3/4 vectors, square float matrices of order 2/3/4, and
// Sampler2D.
func NewRegistry() *Registry {
	r := &Registry{byName: map[string]*Type{}, funcs: map[string]*Type{}}

	scalars := map[ScalarName]string{Bool: "bool", Int: "int", UInt: "uint", Float: "float"}
	scalarTypes := map[ScalarName]*Type{}
	for kind, name := range scalars {
		st := &Type{Kind: ScalarKind, Scalar: kind, name: name}
		scalarTypes[kind] = st
		r.byName[name] = st
	}

	vecPrefix := map[ScalarName]string{Bool: "bvec", Int: "ivec", UInt: "uvec", Float: "vec"}
	for kind, prefix := range vecPrefix {
		for _, length := range []int{2, 3, 4} {
			name := fmt.Sprintf("%s%d", prefix, length)
			r.byName[name] = &Type{
				Kind:    VectorKind,
				Scalar:  kind,
				Element: scalarTypes[kind],
				Length:  length,
				name:    name,
			}
		}
	}

	for _, size := range []int{2, 3, 4} {
		name := fmt.Sprintf("mat%d", size)
		r.byName[name] = &Type{Kind: MatrixKind, Size: size, name: name}
	}

	r.byName["sampler2D"] = &Type{Kind: Sampler2DKind, name: "sampler2D"}

	r.registerConstructors()
	return r
}

// Lookup returns the built-in Type registered under name, if any. name is
// exactly the spelling recognized by the DataType lexer pattern (bool,
// int, uint, float, bvec2.. ivec2.. uvec2.. vec2.., mat2.. , sampler2D).
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// LookupFunction returns the built-in function Type registered under
// name, if any (the vector/matrix constructor functions).
func (r *Registry) LookupFunction(name string) (*Type, bool) {
	t, ok := r.funcs[name]
	return t, ok
}

// registerConstructors populates the built-in constructor functions:
// vecN called with N float arguments (or a single float), matN called with
// N*N float arguments, mirroring the
// language's only source of Function-typed call targets since there is no
// user function declaration syntax.
func (r *Registry) registerConstructors() {
	float := r.byName["float"]
	for _, size := range []int{2, 3, 4} {
		vecName := fmt.Sprintf("vec%d", size)
		vec := r.byName[vecName]
		params := make([]*Type, size)
		for i := range params {
			params[i] = float
		}
		r.funcs[vecName] = &Type{
			Kind:       FunctionKind,
			Params:     params,
			Overloads:  [][]*Type{{vec.Element}},
			ReturnType: vec,
			name:       vecName,
		}

		matName := fmt.Sprintf("mat%d", size)
		mat := r.byName[matName]
		matParams := make([]*Type, size*size)
		for i := range matParams {
			matParams[i] = float
		}
		r.funcs[matName] = &Type{
			Kind:       FunctionKind,
			Params:     matParams,
			ReturnType: mat,
			name:       matName,
		}
	}
}
