package term

import (
	"termzip/signature"
)

// Zipper is a position inside a term: a focus plus the context needed to
// rebuild everything above it. Zippers are immutable values; Down, Up, and
// Replace return new positions and never affect the one they were called
// on, so any number of positions over the same term may coexist.
//
// A replacement made with Replace only becomes visible in the whole term
// once Up (or Term) rebuilds the enclosing applications through the
// canonicalizing constructor.
type Zipper struct {
	focus  *Term
	parent *Zipper // nil at the root
	idx    int     // index of focus among parent's children
}

// FromTerm returns the root position of t.
func FromTerm(t *Term) Zipper { return Zipper{focus: t} }

// Focus returns the term at the current position.
func (z Zipper) Focus() *Term { return z.focus }

// Depth returns the number of frames between the position and the root.
func (z Zipper) Depth() int {
	d := 0
	for p := z.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Down descends to child i of the focus. The move is rejected (not an
// error) when the focus is a variable or i is out of range.
func (z Zipper) Down(i int) (Zipper, bool) {
	t := z.focus
	if t.sym == nil || i < 0 || i >= len(t.kids) {
		return Zipper{}, false
	}
	parent := z
	return Zipper{focus: t.kids[i], parent: &parent, idx: i}, true
}

// Up ascends one level, rebuilding the parent application around the
// (possibly replaced) focus. Rejected at the root.
//
// Up panics if a replaced focus came from a different bank; replacements
// must be interned where the surrounding term was.
func (z Zipper) Up() (Zipper, bool) {
	if z.parent == nil {
		return Zipper{}, false
	}
	p := *z.parent
	old := p.focus
	if z.focus != old.kids[z.idx] {
		kids := make([]*Term, len(old.kids))
		copy(kids, old.kids)
		kids[z.idx] = z.focus
		rebuilt, err := old.bank.App(old.sym, kids...)
		if err != nil {
			panic(err)
		}
		p.focus = rebuilt
	}
	return p, true
}

// Replace returns the same position with the focus swapped for t. The
// context is untouched.
func (z Zipper) Replace(t *Term) Zipper {
	z.focus = t
	return z
}

// Term ascends to the root and returns the whole term, with every
// replacement made along the way substituted into place. For a freshly
// created position, Term returns the original term unchanged.
func (z Zipper) Term() *Term {
	for {
		up, ok := z.Up()
		if !ok {
			return z.focus
		}
		z = up
	}
}

// Equal reports whether two positions have the same focus and the same
// full context. Structurally identical subterms at different locations
// compare unequal, because their contexts differ.
func (z Zipper) Equal(o Zipper) bool {
	if z.focus != o.focus {
		return false
	}
	a, b := &z, &o
	for a.parent != nil && b.parent != nil {
		if a.idx != b.idx || !frameEqual(a.parent.focus, b.parent.focus, a.idx) {
			return false
		}
		a, b = a.parent, b.parent
	}
	return a.parent == nil && b.parent == nil
}

// frameEqual reports whether two parent terms induce the same context frame
// around child index idx: same symbol and identical siblings. The child at
// idx itself is not part of the frame.
func frameEqual(pa, pb *Term, idx int) bool {
	if pa == pb {
		return true
	}
	if !signature.Equal(pa.sym, pb.sym) || len(pa.kids) != len(pb.kids) {
		return false
	}
	for i := range pa.kids {
		if i != idx && pa.kids[i] != pb.kids[i] {
			return false
		}
	}
	return true
}

// Compare imposes a total order on positions, consistent with Equal: focus
// first, then depth, then the context frames from the focus upward.
func (z Zipper) Compare(o Zipper) int {
	if c := z.focus.Compare(o.focus); c != 0 {
		return c
	}
	if d := z.Depth() - o.Depth(); d != 0 {
		return d
	}
	a, b := &z, &o
	for a.parent != nil {
		if a.idx != b.idx {
			return a.idx - b.idx
		}
		if c := frameCompare(a.parent.focus, b.parent.focus, a.idx); c != 0 {
			return c
		}
		a, b = a.parent, b.parent
	}
	return 0
}

func frameCompare(pa, pb *Term, idx int) int {
	if pa == pb {
		return 0
	}
	if c := pa.sym.Compare(pb.sym); c != 0 {
		return c
	}
	// Equal symbols have equal arity, so the child counts agree.
	for i := range pa.kids {
		if i == idx {
			continue
		}
		if c := pa.kids[i].Compare(pb.kids[i]); c != 0 {
			return c
		}
	}
	return 0
}

// FoldPositions combines f over every position reachable from z by
// descents, in preorder, depth-first, left-to-right: the position itself
// first, then each child position recursively. It enumerates positions of
// the subtree under z, not of the whole term, unless z is the root.
func FoldPositions[A any](z Zipper, acc A, f func(A, Zipper) A) A {
	acc = f(acc, z)
	for i := 0; ; i++ {
		kid, ok := z.Down(i)
		if !ok {
			break
		}
		acc = FoldPositions(kid, acc, f)
	}
	return acc
}

// FoldVariables combines f over the variable positions reachable from z, in
// the same order FoldPositions would visit them, without descending into
// ground subtrees (which cannot contain a variable). Behaviorally this is
// FoldPositions filtered to variable cursors.
func FoldVariables[A any](z Zipper, acc A, f func(A, Zipper) A) A {
	if z.focus.ground {
		return acc
	}
	if z.focus.sym == nil {
		return f(acc, z)
	}
	for i := 0; ; i++ {
		kid, ok := z.Down(i)
		if !ok {
			break
		}
		acc = FoldVariables(kid, acc, f)
	}
	return acc
}
