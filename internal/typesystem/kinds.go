package typesystem

import "fmt"

// Kind represents the "type of a type".
// * (Star) is the kind of proper types (int, lang.String, util.List<lang.String>).
// * -> * is the kind of a class with one type parameter (util.List).
type Kind interface {
	String() string
	Equal(Kind) bool
}

// KStar represents the kind of a value type (*).
type KStar struct{}

func (k KStar) String() string { return "*" }
func (k KStar) Equal(other Kind) bool {
	_, ok := other.(KStar)
	return ok
}

// KArrow represents a type constructor (k1 -> k2).
type KArrow struct {
	Left  Kind
	Right Kind
}

func (k KArrow) String() string {
	return fmt.Sprintf("(%s -> %s)", k.Left.String(), k.Right.String())
}

func (k KArrow) Equal(other Kind) bool {
	o, ok := other.(KArrow)
	if !ok {
		return false
	}
	return k.Left.Equal(o.Left) && k.Right.Equal(o.Right)
}

var Star Kind = KStar{}

// MakeArrow builds an N-ary arrow, e.g. MakeArrow(Star, Star, Star) is * -> * -> *.
func MakeArrow(args ...Kind) Kind {
	if len(args) == 0 {
		return Star
	}
	if len(args) == 1 {
		return args[0]
	}
	return KArrow{Left: args[0], Right: MakeArrow(args[1:]...)}
}

// KindOfArity is the kind of a class declaring n type parameters.
func KindOfArity(n int) Kind {
	args := make([]Kind, n+1)
	for i := range args {
		args[i] = Star
	}
	return MakeArrow(args...)
}

// applyKind applies n proper-type arguments to k and returns the resulting kind.
func applyKind(k Kind, n int) (Kind, error) {
	curr := k
	for i := 0; i < n; i++ {
		arrow, ok := curr.(KArrow)
		if !ok {
			return nil, fmt.Errorf("cannot apply type argument %d to kind %s", i+1, curr)
		}
		if !arrow.Left.Equal(Star) {
			return nil, fmt.Errorf("kind mismatch in application: expected argument of kind %s", arrow.Left)
		}
		curr = arrow.Right
	}
	return curr, nil
}

// KindCheck validates that t is a proper type. Parameterized descriptors must
// saturate their raw class exactly.
func KindCheck(t Type) error {
	switch typ := t.(type) {
	case nil:
		return fmt.Errorf("cannot check kind of nil type")
	case TApp:
		k, err := applyKind(typ.Raw.Kind(), len(typ.Args))
		if err != nil || !k.Equal(Star) {
			return NewArityError(typ.Raw, len(typ.Args))
		}
		for _, arg := range typ.Args {
			if err := KindCheck(arg); err != nil {
				return err
			}
		}
	case TArray:
		return KindCheck(typ.Elem)
	case TWildcard:
		for _, b := range typ.Upper {
			if err := KindCheck(b); err != nil {
				return err
			}
		}
		if typ.Lower != nil {
			return KindCheck(typ.Lower)
		}
	}
	return nil
}
