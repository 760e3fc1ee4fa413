// Package term implements hash-consed first-order terms and the zipper
// family used to navigate and rewrite them.
//
// Terms are interned in a Bank: constructing a term that is structurally
// equal to one already live returns the identical *Term, so structural
// equality across the whole package is pointer identity. Terms are immutable
// after construction and may be shared freely between goroutines.
//
// Navigation and editing go through Zipper (plain trees) and GraphZipper
// (trees embedded in a variable-binding Subst, where edits made after
// dereferencing a variable are written back into the binding rather than the
// tree). Both are immutable values: every move returns a new position.
package term

import (
	"termzip/signature"
)

// Variable identifies a term variable. Identifiers are ordered and hashable;
// by convention they are non-negative, but nothing in this package depends
// on that.
type Variable int

// Term is a variable or an application of a symbol to exactly
// Arity(symbol) children. Terms are created through a Bank and are
// canonical: two structurally equal terms are the same pointer.
type Term struct {
	sym  signature.Symbol // nil for variables
	v    Variable         // valid when sym == nil
	kids []*Term

	bank   *Bank
	hash   uint64
	ord    uint64 // interning sequence, total order within a bank
	ground bool
}

// Equal reports whether a and b are the same term. Because terms are
// hash-consed this is exactly structural equality.
func Equal(a, b *Term) bool { return a == b }

// Compare imposes a total order on terms, consistent with Equal. The order
// is the interning order of the owning bank (bank identity breaks ties
// across banks); it carries no semantic meaning beyond totality.
func (t *Term) Compare(o *Term) int {
	if t == o {
		return 0
	}
	if t.bank != o.bank {
		switch {
		case t.bank.id < o.bank.id:
			return -1
		default:
			return 1
		}
	}
	switch {
	case t.ord < o.ord:
		return -1
	default:
		return 1
	}
}

// Ground reports whether the term contains no variables. The flag is
// computed once at construction from the children's flags.
func (t *Term) Ground() bool { return t.ground }

// Destruct is the sanctioned case analysis over a term's shape: it invokes
// onApp with the symbol and a copy of the children, or onVar with the
// variable identifier. The children slice is the caller's to keep or
// mutate; the term itself is never affected.
func Destruct[R any](t *Term, onApp func(signature.Symbol, []*Term) R, onVar func(Variable) R) R {
	if t.sym == nil {
		return onVar(t.v)
	}
	kids := make([]*Term, len(t.kids))
	copy(kids, t.kids)
	return onApp(t.sym, kids)
}

// Fold combines f over every node of the value tree rooted at t, in
// preorder, depth-first, left-to-right. It traverses values, not positions;
// see FoldPositions for the position-level counterpart.
func Fold[A any](t *Term, acc A, f func(A, *Term) A) A {
	acc = f(acc, t)
	for _, k := range t.kids {
		acc = Fold(k, acc, f)
	}
	return acc
}

// Size returns the number of nodes in t.
func Size(t *Term) int {
	return Fold(t, 0, func(n int, _ *Term) int { return n + 1 })
}
