// Package match implements first-order pattern matching over hash-consed
// terms. A pattern is itself a term; its variables are holes that capture
// subject subterms. The package is a pure client of the term core: it
// inspects shapes with term.Destruct, enumerates candidate positions with
// the zipper, and rewrites through Replace plus reconstruction.
package match

import (
	"termzip/signature"
	"termzip/term"
)

// Match is one occurrence of a pattern in a subject: the position it
// matched at and the bindings its variables captured.
type Match struct {
	Pos      term.Zipper
	Bindings term.Subst
}

type outcome struct {
	s  term.Subst
	ok bool
}

// Against matches pat against subject at the root, extending s with the
// captured bindings. A variable already bound, in s or earlier in the same
// match, only matches the identical subterm, so non-linear patterns work.
func Against(pat, subject *term.Term, s term.Subst) (term.Subst, bool) {
	r := term.Destruct(pat,
		func(psym signature.Symbol, pkids []*term.Term) outcome {
			return term.Destruct(subject,
				func(ssym signature.Symbol, skids []*term.Term) outcome {
					if !signature.Equal(psym, ssym) || len(pkids) != len(skids) {
						return outcome{}
					}
					cur := s
					for i := range pkids {
						next, ok := Against(pkids[i], skids[i], cur)
						if !ok {
							return outcome{}
						}
						cur = next
					}
					return outcome{cur, true}
				},
				func(term.Variable) outcome { return outcome{} })
		},
		func(v term.Variable) outcome {
			if bound, ok := s.Get(v); ok {
				if bound == subject {
					return outcome{s, true}
				}
				return outcome{}
			}
			return outcome{s.Bind(v, subject), true}
		})
	return r.s, r.ok
}

// All returns every position of subject where pat matches, in the preorder
// traversal order of term.FoldPositions, each with its bindings.
func All(pat, subject *term.Term) []Match {
	return term.FoldPositions(term.FromTerm(subject), nil,
		func(acc []Match, pos term.Zipper) []Match {
			if s, ok := Against(pat, pos.Focus(), term.Subst{}); ok {
				acc = append(acc, Match{Pos: pos, Bindings: s})
			}
			return acc
		})
}

// First returns the earliest match of pat in subject, in the same order All
// uses, without visiting positions past it.
func First(pat, subject *term.Term) (Match, bool) {
	return firstAt([]*term.Term{pat}, term.FromTerm(subject), func(m Match, _ int) Match { return m })
}

// FirstOf tries several candidate patterns and returns the winning match
// and the index of its pattern. The order is position-major: the earliest
// matching position in preorder wins, and at that position the earliest
// pattern in pats wins.
func FirstOf(pats []*term.Term, subject *term.Term) (Match, int, bool) {
	which := -1
	m, ok := firstAt(pats, term.FromTerm(subject), func(m Match, i int) Match {
		which = i
		return m
	})
	return m, which, ok
}

func firstAt(pats []*term.Term, z term.Zipper, hit func(Match, int) Match) (Match, bool) {
	for i, pat := range pats {
		if s, ok := Against(pat, z.Focus(), term.Subst{}); ok {
			return hit(Match{Pos: z, Bindings: s}, i), true
		}
	}
	for i := 0; ; i++ {
		kid, ok := z.Down(i)
		if !ok {
			return Match{}, false
		}
		if m, ok := firstAt(pats, kid, hit); ok {
			return m, true
		}
	}
}

// Rewrite replaces the first match of pat in subject with tmpl lifted by
// the match bindings and returns the rebuilt subject. The second result is
// false, and subject is returned unchanged, when pat does not occur.
func Rewrite(subject, pat, tmpl *term.Term) (*term.Term, bool) {
	m, ok := First(pat, subject)
	if !ok {
		return subject, false
	}
	return m.Pos.Replace(m.Bindings.Lift(tmpl)).Term(), true
}

// RewriteAll replaces every match of pat in subject in one preorder pass,
// outermost first, and returns the rebuilt subject with the number of
// replacements. Replacements are not re-examined, so the pass terminates
// even when tmpl matches pat.
func RewriteAll(subject, pat, tmpl *term.Term) (*term.Term, int) {
	if s, ok := Against(pat, subject, term.Subst{}); ok {
		return s.Lift(tmpl), 1
	}
	z := term.FromTerm(subject)
	n := 0
	for i := 0; ; i++ {
		kid, ok := z.Down(i)
		if !ok {
			break
		}
		rewritten, k := RewriteAll(kid.Focus(), pat, tmpl)
		n += k
		z, ok = kid.Replace(rewritten).Up()
		if !ok {
			break
		}
	}
	return z.Focus(), n
}
