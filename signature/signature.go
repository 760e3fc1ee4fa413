// Package signature defines the capability contract a caller supplies for a
// symbol alphabet: arity, hashing, total ordering, and printing. The term
// package is parameterized over this contract and never inspects symbols in
// any other way.
package signature

import "hash/fnv"

// Symbol is one letter of a term alphabet. Implementations must be immutable
// values: Arity, Hash, and Compare results may be cached by the term layer
// and are never recomputed for the same symbol.
//
// Compare must be a total order over all symbols a program mixes in one
// term bank; two symbols are equal iff Compare returns 0, and equal symbols
// must return the same Hash and Arity.
type Symbol interface {
	// Arity is the exact number of children an application of this
	// symbol carries. Non-negative.
	Arity() int

	// Hash returns a well-distributed hash of the symbol's identity.
	Hash() uint64

	// Compare orders this symbol against another from the same alphabet.
	// Negative, zero, or positive, in the usual way.
	Compare(other Symbol) int

	// String renders the symbol for diagnostics and term printing.
	String() string
}

// Equal reports whether two symbols denote the same alphabet letter.
func Equal(a, b Symbol) bool {
	return a.Compare(b) == 0
}

// Named is a ready-made Symbol keyed by name and arity. Two Named symbols
// are equal iff both name and arity coincide, so the same name may be
// overloaded at different arities.
type Named struct {
	name  string
	arity int
}

// New returns a Named symbol. It panics on negative arity, which is a
// programming error in the alphabet itself rather than a runtime condition.
func New(name string, arity int) Named {
	if arity < 0 {
		panic("signature: negative arity for symbol " + name)
	}
	return Named{name: name, arity: arity}
}

// Arity returns the declared number of children.
func (s Named) Arity() int { return s.arity }

// Hash mixes the name and arity with FNV-1a.
func (s Named) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(s.name))
	var buf [4]byte
	buf[0] = byte(s.arity)
	buf[1] = byte(s.arity >> 8)
	buf[2] = byte(s.arity >> 16)
	buf[3] = byte(s.arity >> 24)
	h.Write(buf[:])
	return h.Sum64()
}

// Compare orders Named symbols by name, then arity. Comparing a Named
// against a foreign Symbol implementation falls back to ordering by the
// rendered name; mixing implementations in one alphabet is the caller's
// responsibility.
func (s Named) Compare(other Symbol) int {
	o, ok := other.(Named)
	if !ok {
		switch {
		case s.name < other.String():
			return -1
		case s.name > other.String():
			return 1
		default:
			return 0
		}
	}
	switch {
	case s.name < o.name:
		return -1
	case s.name > o.name:
		return 1
	case s.arity < o.arity:
		return -1
	case s.arity > o.arity:
		return 1
	default:
		return 0
	}
}

func (s Named) String() string { return s.name }
