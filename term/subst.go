package term

import (
	"slices"
)

// Binding pairs a variable with the term it maps to.
type Binding struct {
	Var  Variable
	Term *Term
}

// Subst is a finite mapping from variables to terms. The zero value is the
// empty substitution. Substitutions are immutable: Bind returns a new value
// and never affects the receiver, so substitutions may be shared freely.
type Subst struct {
	m map[Variable]*Term
}

// SubstOf builds a substitution from bindings; a later binding for the same
// variable overwrites an earlier one.
func SubstOf(bindings ...Binding) Subst {
	if len(bindings) == 0 {
		return Subst{}
	}
	m := make(map[Variable]*Term, len(bindings))
	for _, b := range bindings {
		m[b.Var] = b.Term
	}
	return Subst{m: m}
}

// Get returns the term bound to v, if any.
func (s Subst) Get(v Variable) (*Term, bool) {
	t, ok := s.m[v]
	return t, ok
}

// Bind returns a substitution identical to s except that v maps to t.
func (s Subst) Bind(v Variable, t *Term) Subst {
	m := make(map[Variable]*Term, len(s.m)+1)
	for k, old := range s.m {
		m[k] = old
	}
	m[v] = t
	return Subst{m: m}
}

// Len returns the number of bound variables.
func (s Subst) Len() int { return len(s.m) }

// Domain returns the bound variables in ascending order.
func (s Subst) Domain() []Variable {
	vars := make([]Variable, 0, len(s.m))
	for v := range s.m {
		vars = append(vars, v)
	}
	slices.Sort(vars)
	return vars
}

// Equal reports whether s and o bind the same variables to the same terms.
// Term images compare by identity, which hash-consing makes structural.
func (s Subst) Equal(o Subst) bool {
	if len(s.m) != len(o.m) {
		return false
	}
	for v, t := range s.m {
		if o.m[v] != t {
			return false
		}
	}
	return true
}

// Compare imposes a total order on substitutions, consistent with Equal:
// lexicographic over the sorted (variable, term) pairs, shorter first.
func (s Subst) Compare(o Subst) int {
	sd, od := s.Domain(), o.Domain()
	for i := 0; i < len(sd) && i < len(od); i++ {
		if sd[i] != od[i] {
			if sd[i] < od[i] {
				return -1
			}
			return 1
		}
		if c := s.m[sd[i]].Compare(o.m[od[i]]); c != 0 {
			return c
		}
	}
	return len(sd) - len(od)
}

// Lift rebuilds t with every bound variable replaced by its image, through
// the canonicalizing constructor. Unbound variables are left in place, and
// images are inserted as-is (one pass; Lift does not chase bindings inside
// the images). Ground subtrees are returned unchanged.
func (s Subst) Lift(t *Term) *Term {
	if len(s.m) == 0 || t.ground {
		return t
	}
	if t.sym == nil {
		if img, ok := s.m[t.v]; ok {
			return img
		}
		return t
	}
	kids := make([]*Term, len(t.kids))
	changed := false
	for i, k := range t.kids {
		kids[i] = s.Lift(k)
		changed = changed || kids[i] != k
	}
	if !changed {
		return t
	}
	lifted, err := t.bank.App(t.sym, kids...)
	if err != nil {
		// Arity is preserved by construction, so only a foreign-bank
		// image can land here; that is caller misuse.
		panic(err)
	}
	return lifted
}
