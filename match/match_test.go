package match_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termzip/match"
	"termzip/signature"
	"termzip/term"
)

var (
	symZero = signature.New("zero", 0)
	symOne  = signature.New("one", 1)
	symTwo  = signature.New("two", 2)
)

func TestAgainst(t *testing.T) {
	b := term.NewBank()
	z := b.MustApp(symZero)

	t.Run("variable captures any subterm", func(t *testing.T) {
		s, ok := match.Against(b.Var(0), b.MustApp(symOne, z), term.Subst{})
		require.True(t, ok)
		img, bound := s.Get(0)
		require.True(t, bound)
		assert.Same(t, b.MustApp(symOne, z), img)
	})

	t.Run("structure must agree", func(t *testing.T) {
		_, ok := match.Against(b.MustApp(symOne, b.Var(0)), z, term.Subst{})
		assert.False(t, ok)
		_, ok = match.Against(b.MustApp(symOne, b.Var(0)), b.Var(3), term.Subst{})
		assert.False(t, ok)
	})

	t.Run("non-linear patterns", func(t *testing.T) {
		pat := b.MustApp(symTwo, b.Var(5), b.Var(5))
		_, ok := match.Against(pat, b.MustApp(symTwo, z, z), term.Subst{})
		assert.True(t, ok)
		_, ok = match.Against(pat, b.MustApp(symTwo, z, b.MustApp(symOne, z)), term.Subst{})
		assert.False(t, ok)
	})

	t.Run("pre-existing bindings constrain", func(t *testing.T) {
		s := term.SubstOf(term.Binding{Var: 0, Term: z})
		_, ok := match.Against(b.Var(0), b.MustApp(symOne, z), s)
		assert.False(t, ok)
		out, ok := match.Against(b.Var(0), z, s)
		require.True(t, ok)
		assert.True(t, out.Equal(s))
	})
}

func TestAllOrder(t *testing.T) {
	b := term.NewBank()
	z := b.MustApp(symZero)
	// one(?9) occurs at the root path 0, nested at 1,0 (twice: outer and
	// inner), in preorder.
	subject := b.MustApp(symTwo,
		b.MustApp(symOne, z),
		b.MustApp(symTwo, b.MustApp(symOne, b.MustApp(symOne, z)), z))
	pat := b.MustApp(symOne, b.Var(9))

	ms := match.All(pat, subject)
	require.Len(t, ms, 3)

	var captured []string
	for _, m := range ms {
		img, ok := m.Bindings.Get(9)
		require.True(t, ok)
		captured = append(captured, img.String())
	}
	want := []string{"zero", "one(zero)", "zero"}
	if diff := cmp.Diff(want, captured); diff != "" {
		t.Errorf("capture order (-want +got):\n%s", diff)
	}

	t.Run("first is the earliest", func(t *testing.T) {
		m, ok := match.First(pat, subject)
		require.True(t, ok)
		assert.True(t, m.Pos.Equal(ms[0].Pos))
		assert.True(t, m.Bindings.Equal(ms[0].Bindings))
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := match.First(b.MustApp(symTwo, z, z), subject)
		assert.False(t, ok)
		assert.Empty(t, match.All(b.MustApp(symTwo, z, z), subject))
	})
}

// Pins the precedence rule for competing patterns: the earliest position in
// preorder wins, and at the same position the earliest pattern wins.
func TestFirstOfPrecedence(t *testing.T) {
	b := term.NewBank()
	z := b.MustApp(symZero)
	subject := b.MustApp(symTwo, b.MustApp(symOne, z), z)

	t.Run("position-major", func(t *testing.T) {
		// Pattern 0 matches at path 1, pattern 1 matches at path 0;
		// path 0 comes first in preorder, so pattern 1 wins.
		pats := []*term.Term{z, b.MustApp(symOne, b.Var(0))}
		m, which, ok := match.FirstOf(pats, subject)
		require.True(t, ok)
		assert.Equal(t, 1, which)
		assert.Same(t, b.MustApp(symOne, z), m.Pos.Focus())
	})

	t.Run("pattern-minor at the same position", func(t *testing.T) {
		pats := []*term.Term{b.Var(0), b.MustApp(symTwo, b.Var(1), b.Var(2))}
		_, which, ok := match.FirstOf(pats, subject)
		require.True(t, ok)
		assert.Equal(t, 0, which, "both match at the root; the earlier pattern wins")
	})

	t.Run("none match", func(t *testing.T) {
		_, which, ok := match.FirstOf([]*term.Term{b.MustApp(symOne, b.MustApp(symOne, z))}, z)
		assert.False(t, ok)
		assert.Equal(t, -1, which)
	})
}

func TestRewrite(t *testing.T) {
	b := term.NewBank()
	z := b.MustApp(symZero)

	t.Run("swap arguments at the first occurrence", func(t *testing.T) {
		pat := b.MustApp(symTwo, b.Var(0), b.Var(1))
		tmpl := b.MustApp(symTwo, b.Var(1), b.Var(0))
		subject := b.MustApp(symOne, b.MustApp(symTwo, z, b.MustApp(symOne, z)))

		got, ok := match.Rewrite(subject, pat, tmpl)
		require.True(t, ok)
		assert.Same(t, b.MustApp(symOne, b.MustApp(symTwo, b.MustApp(symOne, z), z)), got)
	})

	t.Run("no occurrence returns the subject", func(t *testing.T) {
		got, ok := match.Rewrite(z, b.MustApp(symOne, b.Var(0)), z)
		assert.False(t, ok)
		assert.Same(t, z, got)
	})
}

func TestRewriteAll(t *testing.T) {
	b := term.NewBank()
	z := b.MustApp(symZero)
	pat := b.MustApp(symOne, b.Var(0))

	t.Run("every occurrence in one pass", func(t *testing.T) {
		subject := b.MustApp(symTwo, b.MustApp(symOne, z), b.MustApp(symTwo, z, b.MustApp(symOne, z)))
		got, n := match.RewriteAll(subject, pat, b.Var(0))
		assert.Equal(t, 2, n)
		assert.Same(t, b.MustApp(symTwo, z, b.MustApp(symTwo, z, z)), got)
	})

	t.Run("outermost wins, replacements not revisited", func(t *testing.T) {
		subject := b.MustApp(symOne, b.MustApp(symOne, z))
		got, n := match.RewriteAll(subject, pat, z)
		assert.Equal(t, 1, n)
		assert.Same(t, z, got)
	})

	t.Run("no occurrences", func(t *testing.T) {
		got, n := match.RewriteAll(z, pat, z)
		assert.Zero(t, n)
		assert.Same(t, z, got)
	})
}
