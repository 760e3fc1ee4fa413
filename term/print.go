package term

import (
	"fmt"
	"strings"
)

// Variables print as ?N.
func (v Variable) String() string { return fmt.Sprintf("?%d", int(v)) }

// String renders the term: variables as ?N, applications as sym or
// sym(child, ...). The layout is for diagnostics; nothing parses it back.
func (t *Term) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Term) write(sb *strings.Builder) {
	if t.sym == nil {
		fmt.Fprintf(sb, "?%d", int(t.v))
		return
	}
	sb.WriteString(t.sym.String())
	if len(t.kids) == 0 {
		return
	}
	sb.WriteByte('(')
	for i, k := range t.kids {
		if i > 0 {
			sb.WriteString(", ")
		}
		k.write(sb)
	}
	sb.WriteByte(')')
}

// String renders the whole term with the focus highlighted, e.g.
// two(one(?0), «?1») for a position focused on ?1.
func (z Zipper) String() string {
	s := "«" + z.focus.String() + "»"
	for cur := &z; cur.parent != nil; cur = cur.parent {
		s = wrapFrame(cur.parent.focus, cur.idx, s)
	}
	return s
}

// String renders the focus highlighted within its context, dereference
// steps shown as {?N => ...}, followed by the carried bindings.
func (z GraphZipper) String() string {
	s := "«" + z.focus.String() + "»"
	for cur := &z; cur.parent != nil; cur = cur.parent {
		if cur.isDeref {
			s = fmt.Sprintf("{%s => %s}", cur.viaVar, s)
			continue
		}
		s = wrapFrame(cur.parent.focus, cur.idx, s)
	}
	return s + " with " + z.sub.String()
}

// wrapFrame renders the application that parent's focus stands for, with
// the child at idx replaced by the already-rendered inner string.
func wrapFrame(parent *Term, idx int, inner string) string {
	var sb strings.Builder
	sb.WriteString(parent.sym.String())
	sb.WriteByte('(')
	for i, k := range parent.kids {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i == idx {
			sb.WriteString(inner)
		} else {
			k.write(&sb)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// String renders the bindings in ascending variable order, e.g.
// {?0 -> zero, ?1 -> one(zero)}.
func (s Subst) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range s.Domain() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s -> %s", v, s.m[v])
	}
	sb.WriteByte('}')
	return sb.String()
}
