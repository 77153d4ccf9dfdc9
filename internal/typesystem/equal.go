package typesystem

// Equal reports whether two descriptors denote the same type. Raw classes are
// compared by identity, variables by declaration site and name, captures by ID.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Class:
		y, ok := b.(*Class)
		return ok && x == y
	case TVar:
		y, ok := b.(TVar)
		return ok && x.Key() == y.Key()
	case TCapture:
		y, ok := b.(TCapture)
		return ok && x.ID == y.ID
	case TApp:
		y, ok := b.(TApp)
		return ok && x.Raw == y.Raw && equalAll(x.Args, y.Args)
	case TArray:
		y, ok := b.(TArray)
		return ok && x.Dims == y.Dims && Equal(x.Elem, y.Elem)
	case TWildcard:
		y, ok := b.(TWildcard)
		return ok && equalAll(x.UpperBounds(), y.UpperBounds()) && Equal(x.Lower, y.Lower)
	}
	return false
}

func equalAll(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
