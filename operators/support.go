package operators

import "github.com/coregx/slimlang/types"

// ResultType decides whether op is legal for the given operand types and,
// if so, the type the expression produces. r supplies the interned
// built-ins so the returned type is never a fresh allocation: every type
// this function can hand back already exists in r.
//
// This is the entire "support table": there is no implicit conversion
// anywhere in it, so every accepted (op, left, right) triple below is
// exactly the set the type checker is allowed to accept.
func ResultType(r *types.Registry, op Operator, left, right *types.Type) (*types.Type, bool) {
	switch {
	case op.IsArithmetic():
		return arithmeticResult(r, op, left, right)
	case op.IsComparison():
		if left == right && left.Kind == types.ScalarKind {
			b, _ := r.Lookup("bool")
			return b, true
		}
		return nil, false
	case op.IsLogical():
		b, _ := r.Lookup("bool")
		if left == b && right == b {
			return b, true
		}
		return nil, false
	case op == Assign:
		if left == right {
			return left, true
		}
		return nil, false
	case op == Index:
		return indexResult(r, left, right)
	default:
		return nil, false
	}
}

// UnaryResultType is ResultType's counterpart for the prefix '-' and '!'
// operators.
func UnaryResultType(r *types.Registry, op Operator, operand *types.Type) (*types.Type, bool) {
	switch op {
	case Sub:
		if operand.Kind == types.ScalarKind && operand.Scalar != types.Bool {
			return operand, true
		}
		return nil, false
	case Not:
		b, _ := r.Lookup("bool")
		if operand == b {
			return b, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func arithmeticResult(r *types.Registry, op Operator, left, right *types.Type) (*types.Type, bool) {
	if op == Mul {
		if t, ok := matrixMulResult(left, right); ok {
			return t, true
		}
	}
	if left == right && left.Kind == types.ScalarKind && left.Scalar != types.Bool {
		return left, true
	}
	return nil, false
}

// matrixMulResult covers the three non-scalar '*' shapes the language
// allows: matrix*matrix of equal size, matrix*vector, and vector*matrix
// (the row-vector interpretation). Only the dimensions are constrained,
// not the vector's element kind.
func matrixMulResult(left, right *types.Type) (*types.Type, bool) {
	switch {
	case left.Kind == types.MatrixKind && right.Kind == types.MatrixKind:
		if left.Size == right.Size {
			return left, true
		}
	case left.Kind == types.MatrixKind && right.Kind == types.VectorKind:
		if left.Size == right.Length {
			return right, true
		}
	case left.Kind == types.VectorKind && right.Kind == types.MatrixKind:
		if left.Length == right.Size {
			return left, true
		}
	}
	return nil, false
}

// indexResult covers '[]' on a vector (returns the element type) or a
// float matrix (returns a row/column vector of that size).
func indexResult(r *types.Registry, target, index *types.Type) (*types.Type, bool) {
	i, _ := r.Lookup("int")
	u, _ := r.Lookup("uint")
	if index != i && index != u {
		return nil, false
	}
	switch target.Kind {
	case types.VectorKind:
		return target.Element, true
	case types.MatrixKind:
		name := "vec"
		switch target.Size {
		case 2, 3, 4:
			return r.Lookup(name + string(rune('0'+target.Size)))
		}
	}
	return nil, false
}
