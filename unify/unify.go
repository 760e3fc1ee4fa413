// Package unify implements syntactic first-order unification over
// hash-consed terms. It is a pure client of the term core: shapes are
// inspected with term.Destruct, bindings live in a term.Subst, and the
// identity guarantee of hash-consing supplies the fast paths.
//
// The substitutions it produces are triangular: a binding's image may
// itself contain bound variables. Resolve chases them out when a fully
// substituted term is wanted.
package unify

import (
	"termzip/signature"
	"termzip/term"
)

// Unify returns a most general unifier of a and b extending s, or false
// when none exists. Bindings are added with an occurs check, so the
// resulting substitution never binds a variable to a term containing it.
func Unify(a, b *term.Term, s term.Subst) (term.Subst, bool) {
	a, b = walk(a, s), walk(b, s)
	if a == b {
		return s, true
	}
	if v, ok := varOf(a); ok {
		return bind(v, b, s)
	}
	if v, ok := varOf(b); ok {
		return bind(v, a, s)
	}
	type kidsPair struct {
		sym  signature.Symbol
		kids []*term.Term
	}
	da := term.Destruct(a,
		func(sym signature.Symbol, kids []*term.Term) kidsPair { return kidsPair{sym, kids} },
		func(term.Variable) kidsPair { return kidsPair{} })
	db := term.Destruct(b,
		func(sym signature.Symbol, kids []*term.Term) kidsPair { return kidsPair{sym, kids} },
		func(term.Variable) kidsPair { return kidsPair{} })
	if !signature.Equal(da.sym, db.sym) || len(da.kids) != len(db.kids) {
		return s, false
	}
	for i := range da.kids {
		next, ok := Unify(da.kids[i], db.kids[i], s)
		if !ok {
			return s, false
		}
		s = next
	}
	return s, true
}

// Unifiable reports whether a and b unify under the empty substitution.
func Unifiable(a, b *term.Term) bool {
	_, ok := Unify(a, b, term.Subst{})
	return ok
}

// Resolve applies s to t exhaustively, chasing triangular bindings until
// nothing changes. For substitutions built by Unify this terminates, since
// the occurs check rules out cyclic binding chains. Identity comparison of
// successive passes is exact thanks to hash-consing.
func Resolve(t *term.Term, s term.Subst) *term.Term {
	for {
		next := s.Lift(t)
		if next == t {
			return t
		}
		t = next
	}
}

// walk resolves t through s while it is a bound variable.
func walk(t *term.Term, s term.Subst) *term.Term {
	for {
		v, ok := varOf(t)
		if !ok {
			return t
		}
		img, ok := s.Get(v)
		if !ok {
			return t
		}
		t = img
	}
}

func bind(v term.Variable, t *term.Term, s term.Subst) (term.Subst, bool) {
	if occurs(v, t, s) {
		return s, false
	}
	return s.Bind(v, t), true
}

// occurs reports whether v occurs in t under s. Ground subtrees are skipped
// outright; they cannot contain any variable.
func occurs(v term.Variable, t *term.Term, s term.Subst) bool {
	t = walk(t, s)
	if w, ok := varOf(t); ok {
		return w == v
	}
	if t.Ground() {
		return false
	}
	kids := term.Destruct(t,
		func(_ signature.Symbol, kids []*term.Term) []*term.Term { return kids },
		func(term.Variable) []*term.Term { return nil })
	for _, k := range kids {
		if occurs(v, k, s) {
			return true
		}
	}
	return false
}

func varOf(t *term.Term) (term.Variable, bool) {
	type result struct {
		v  term.Variable
		ok bool
	}
	r := term.Destruct(t,
		func(signature.Symbol, []*term.Term) result { return result{} },
		func(v term.Variable) result { return result{v, true} })
	return r.v, r.ok
}
