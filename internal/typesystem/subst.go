package typesystem

// Subst is a binding context: a mapping from type variables to the types bound
// to them while walking from a leaf type up to a declaring class.
type Subst map[VarKey]Type

// Bind returns a copy of s extended with v := t.
func (s Subst) Bind(v TVar, t Type) Subst {
	out := make(Subst, len(s)+1)
	for k, val := range s {
		out[k] = val
	}
	out[v.Key()] = t
	return out
}

// Compose combines two substitutions: applying the result equals applying s1
// and then s2.
func (s1 Subst) Compose(s2 Subst) Subst {
	subst := Subst{}
	for k, v := range s2 {
		subst[k] = v
	}
	for k, v := range s1 {
		subst[k] = v.Apply(s2)
	}
	return subst
}

// Frame builds the substitution contributed by one supertype edge: each
// formal parameter of raw is bound to the matching argument of super, with
// the current context applied to that argument first.
func Frame(raw *Class, args []Type, ctx Subst) Subst {
	frame := make(Subst, len(raw.Params))
	for i, p := range raw.Params {
		if i >= len(args) {
			break
		}
		frame[p.Key()] = args[i].Apply(ctx)
	}
	return frame
}

// Merge returns a copy of s with every binding of other added.
func (s Subst) Merge(other Subst) Subst {
	out := make(Subst, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Lookup returns the binding of v, if any.
func (s Subst) Lookup(v TVar) (Type, bool) {
	t, ok := s[v.Key()]
	return t, ok
}
