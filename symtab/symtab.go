// Package symtab implements the lexically scoped symbol table the type
// checker declares variables into and annotates expression types onto.
package symtab

import (
	"errors"
	"fmt"

	"github.com/coregx/slimlang/types"
)

// ErrRootScopeClosed is returned by EndScope when called with only the
// root scope left on the stack.
var ErrRootScopeClosed = errors.New("symtab: cannot end the root scope")

// RedeclaredError reports a Declare call for a name already bound in the
// current scope.
type RedeclaredError struct {
	Name string
}

func (e *RedeclaredError) Error() string {
	return fmt.Sprintf("symtab: %q redeclared in the same scope", e.Name)
}

// UndefinedError reports a Lookup call for a name bound in no enclosing
// scope.
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("symtab: undefined symbol %q", e.Name)
}

// DuplicateAnnotationError reports an Annotate call for an ordinal already
// annotated — a programmer error, since a typecheck traversal never
// revisits a node.
type DuplicateAnnotationError struct {
	Ordinal int
}

func (e *DuplicateAnnotationError) Error() string {
	return fmt.Sprintf("symtab: ordinal %d annotated twice", e.Ordinal)
}

// Scope holds one lexical level as two mappings: ordinal→type (the
// annotation for every typed node checked in this scope) and
// name→ordinal (the declarations). A declared name resolves to a type
// through its declaring node's annotation, so names are just a second
// way in to the same table. A Scope also carries an optional parent and
// an optional return type for the function body it belongs to.
type Scope struct {
	annotations map[int]*types.Type
	names       map[string]int
	parent      *Scope
	returnType  *types.Type
}

func newScope(parent *Scope, returnType *types.Type) *Scope {
	return &Scope{
		annotations: map[int]*types.Type{},
		names:       map[string]int{},
		parent:      parent,
		returnType:  returnType,
	}
}

// SymbolTable is an explicit stack of scopes rooted at a global scope that
// a caller populates with built-ins before typechecking begins.
type SymbolTable struct {
	stack []*Scope
}

// New returns a SymbolTable with a single, empty root scope.
func New() *SymbolTable {
	return &SymbolTable{stack: []*Scope{newScope(nil, nil)}}
}

func (st *SymbolTable) top() *Scope {
	return st.stack[len(st.stack)-1]
}

// BeginScope pushes a child of the current scope. returnType may be nil to
// mean "no function body starts here" — ReturnType() then falls through
// to the parent's.
func (st *SymbolTable) BeginScope(returnType *types.Type) {
	st.stack = append(st.stack, newScope(st.top(), returnType))
}

// EndScope pops the current scope. It refuses to pop the root.
func (st *SymbolTable) EndScope() error {
	if len(st.stack) == 1 {
		return ErrRootScopeClosed
	}
	st.stack = st.stack[:len(st.stack)-1]
	return nil
}

// Declare binds name to t in the current scope, annotating the
// declaring node's ordinal along the way. It fails if name is already
// declared in this same scope; shadowing a parent's binding is allowed.
func (st *SymbolTable) Declare(ordinal int, name string, t *types.Type) error {
	cur := st.top()
	if _, exists := cur.names[name]; exists {
		return &RedeclaredError{Name: name}
	}
	if err := st.Annotate(ordinal, t); err != nil {
		return err
	}
	cur.names[name] = ordinal
	return nil
}

// Annotate records the resolved type of the AST node with the given
// ordinal in the current scope. Annotating the same ordinal twice is a
// programmer error.
func (st *SymbolTable) Annotate(ordinal int, t *types.Type) error {
	cur := st.top()
	if _, exists := cur.annotations[ordinal]; exists {
		return &DuplicateAnnotationError{Ordinal: ordinal}
	}
	cur.annotations[ordinal] = t
	return nil
}

// Lookup resolves name by walking from the current scope up through its
// parents, then reading the declaring node's annotation in the scope
// that declared it.
func (st *SymbolTable) Lookup(name string) (*types.Type, error) {
	for s := st.top(); s != nil; s = s.parent {
		if ord, ok := s.names[name]; ok {
			return s.annotations[ord], nil
		}
	}
	return nil, &UndefinedError{Name: name}
}

// LookupOrdinal resolves a previously annotated node's type. Unlike
// Lookup(name), it does not walk parent scopes: an ordinal is only ever
// annotated in the scope active while that node was typechecked.
func (st *SymbolTable) LookupOrdinal(ordinal int) (*types.Type, bool) {
	t, ok := st.top().annotations[ordinal]
	return t, ok
}

// ReturnType returns the innermost enclosing declared return type, or nil
// if no enclosing scope declared one (e.g. a `return` outside any
// function body).
func (st *SymbolTable) ReturnType() *types.Type {
	for s := st.top(); s != nil; s = s.parent {
		if s.returnType != nil {
			return s.returnType
		}
	}
	return nil
}
