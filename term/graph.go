package term

// GraphZipper is a position inside a term graph: a term whose variables act
// as back-references into a carried substitution. It navigates like a
// Zipper, with one extra move: Deref follows the binding of the variable at
// the focus, as if the bound term were inlined there, while remembering that
// the location is really a back-reference.
//
// Ascending out of a dereference never writes the edited subterm into the
// tree. It restores the variable at the focus and rebinds it in the carried
// substitution instead, so every other occurrence of the variable keeps
// denoting "look it up" and observes the edit too. Ascending out of an
// ordinary descent rebuilds the parent application exactly like Zipper.Up.
//
// Like Zipper, GraphZipper values are immutable; neither the term nor the
// substitution a position was built from is ever mutated.
type GraphZipper struct {
	focus  *Term
	parent *GraphZipper // nil at the root

	// Exactly one of the frame shapes is meaningful when parent != nil,
	// selected by isDeref: a descent frame records the child index, a
	// dereference frame records the variable that was followed.
	idx     int
	viaVar  Variable
	isDeref bool

	sub Subst
}

// FromTermGraph returns the root position of t with carried substitution s.
func FromTermGraph(t *Term, s Subst) GraphZipper {
	return GraphZipper{focus: t, sub: s}
}

// Focus returns the term at the current position.
func (z GraphZipper) Focus() *Term { return z.focus }

// Subst returns the substitution as updated by the dereference write-backs
// performed on the way to this position.
func (z GraphZipper) Subst() Subst { return z.sub }

// Depth returns the number of frames, descent and dereference alike,
// between the position and the root.
func (z GraphZipper) Depth() int {
	d := 0
	for p := z.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Down descends to child i of the focus, threading the substitution through
// unchanged. Rejected when the focus is a variable or i is out of range.
func (z GraphZipper) Down(i int) (GraphZipper, bool) {
	t := z.focus
	if t.sym == nil || i < 0 || i >= len(t.kids) {
		return GraphZipper{}, false
	}
	parent := z
	return GraphZipper{focus: t.kids[i], parent: &parent, idx: i, sub: z.sub}, true
}

// Deref follows the binding of the variable at the focus, making the bound
// term the new focus. Rejected when the focus is not a variable or the
// variable is unbound. Deref is never applied implicitly: folds and moves
// stay within the literal tree unless the caller dereferences.
func (z GraphZipper) Deref() (GraphZipper, bool) {
	if z.focus.sym != nil {
		return GraphZipper{}, false
	}
	img, ok := z.sub.Get(z.focus.v)
	if !ok {
		return GraphZipper{}, false
	}
	parent := z
	return GraphZipper{focus: img, parent: &parent, viaVar: z.focus.v, isDeref: true, sub: z.sub}, true
}

// Replace returns the same position with the focus swapped for t. Whether
// the edit lands in the tree or in the substitution is decided by the
// frames Up pops on the way back, not by Replace.
func (z GraphZipper) Replace(t *Term) GraphZipper {
	z.focus = t
	return z
}

// Up ascends one level. Out of a descent frame it rebuilds the parent
// application around the focus; out of a dereference frame it restores the
// followed variable as the focus and rebinds that variable to the current
// focus in the carried substitution, leaving every other binding untouched.
// Rejected at the root.
func (z GraphZipper) Up() (GraphZipper, bool) {
	if z.parent == nil {
		return GraphZipper{}, false
	}
	p := *z.parent
	if z.isDeref {
		p.sub = z.sub
		if img, ok := z.sub.Get(z.viaVar); !ok || img != z.focus {
			p.sub = z.sub.Bind(z.viaVar, z.focus)
		}
		return p, true
	}
	p.sub = z.sub
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

// TermGraph ascends to the root and returns the whole term together with
// the substitution, reflecting every edit made along the path: tree-local
// edits in the term, post-dereference edits in the substitution.
func (z GraphZipper) TermGraph() (*Term, Subst) {
	for {
		up, ok := z.Up()
		if !ok {
			return z.focus, z.sub
		}
		z = up
	}
}

// Equal reports whether two positions have the same focus, the same tagged
// context, and equal carried substitutions.
func (z GraphZipper) Equal(o GraphZipper) bool {
	if z.focus != o.focus || !z.sub.Equal(o.sub) {
		return false
	}
	a, b := &z, &o
	for a.parent != nil && b.parent != nil {
		if a.isDeref != b.isDeref {
			return false
		}
		if a.isDeref {
			if a.viaVar != b.viaVar {
				return false
			}
		} else if a.idx != b.idx || !frameEqual(a.parent.focus, b.parent.focus, a.idx) {
			return false
		}
		a, b = a.parent, b.parent
	}
	return a.parent == nil && b.parent == nil
}

// Compare imposes a total order on positions, consistent with Equal: focus,
// then substitution, then depth, then the tagged frames from the focus
// upward (descent frames order before dereference frames).
func (z GraphZipper) Compare(o GraphZipper) int {
	if c := z.focus.Compare(o.focus); c != 0 {
		return c
	}
	if c := z.sub.Compare(o.sub); c != 0 {
		return c
	}
	if d := z.Depth() - o.Depth(); d != 0 {
		return d
	}
	a, b := &z, &o
	for a.parent != nil {
		switch {
		case a.isDeref != b.isDeref:
			if b.isDeref {
				return -1
			}
			return 1
		case a.isDeref:
			if a.viaVar != b.viaVar {
				return int(a.viaVar - b.viaVar)
			}
		default:
			if a.idx != b.idx {
				return a.idx - b.idx
			}
			if c := frameCompare(a.parent.focus, b.parent.focus, a.idx); c != 0 {
				return c
			}
		}
		a, b = a.parent, b.parent
	}
	return 0
}

// FoldGraphPositions combines f over every position reachable from z by
// descents, in preorder, depth-first, left-to-right. Dereference is never
// taken implicitly, so the traversal covers the literal tree under z even
// when variables in it are bound.
func FoldGraphPositions[A any](z GraphZipper, acc A, f func(A, GraphZipper) A) A {
	acc = f(acc, z)
	for i := 0; ; i++ {
		kid, ok := z.Down(i)
		if !ok {
			break
		}
		acc = FoldGraphPositions(kid, acc, f)
	}
	return acc
}
