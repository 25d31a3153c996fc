package types

// aliasSets lists the three equivalent naming schemes for vector
// components. A swizzle field must draw every character from exactly one
// set; mixing sets (e.g. "xg") is invalid even though both letters name
// valid components individually.
var aliasSets = [][]byte{
	[]byte("xyzw"),
	[]byte("rgba"),
	[]byte("stpq"),
}

// Swizzle resolves a field-access string against a vector type, returning
// the scalar element type for a single-character field or a vector of the
// same element kind and length equal to len(field) for a longer one.
// It reports false if vec is not a vector, field is empty or longer than
// four characters, its characters are not drawn from a single alias set,
// or any referenced component index is out of range for vec's length.
func (r *Registry) Swizzle(vec *Type, field string) (*Type, bool) {
	if vec == nil || vec.Kind != VectorKind {
		return nil, false
	}
	if len(field) == 0 || len(field) > 4 {
		return nil, false
	}

	set := aliasSetFor(field[0])
	if set == nil {
		return nil, false
	}

	for i := 0; i < len(field); i++ {
		idx := indexIn(set, field[i])
		if idx < 0 || idx >= vec.Length {
			return nil, false
		}
	}

	if len(field) == 1 {
		return vec.Element, true
	}

	prefix := vectorPrefix(vec.Scalar)
	return r.Lookup(prefix + lengthDigit(len(field)))
}

func aliasSetFor(c byte) []byte {
	for _, set := range aliasSets {
		if indexIn(set, c) >= 0 {
			return set
		}
	}
	return nil
}

func indexIn(set []byte, c byte) int {
	for i, s := range set {
		if s == c {
			return i
		}
	}
	return -1
}

func vectorPrefix(s ScalarName) string {
	switch s {
	case Bool:
		return "bvec"
	case Int:
		return "ivec"
	case UInt:
		return "uvec"
	default:
		return "vec"
	}
}

func lengthDigit(n int) string {
	return string(rune('0' + n))
}
