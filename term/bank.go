package term

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"weak"

	"go.uber.org/zap"

	"termzip/signature"
)

// ErrForeignTerm is returned by App when a child was interned in a
// different bank. Mixing banks would break the canonical-representative
// invariant, so it is rejected at construction.
var ErrForeignTerm = errors.New("term: child belongs to a different bank")

// ArityError reports a mismatch between a symbol's declared arity and the
// number of children supplied to App.
type ArityError struct {
	Sym  signature.Symbol
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("term: symbol %s has arity %d, got %d children", e.Sym, e.Want, e.Got)
}

var bankSeq atomic.Uint64

// Bank is an interning table for terms. All terms that should be comparable
// by identity must be built through the same bank; the package-level
// constructors share one process-wide default bank.
//
// The table holds weak references, so a representative no longer reachable
// from anywhere else may be reclaimed by the garbage collector; a later
// structurally equal construction then creates a fresh representative.
//
// Lookup-or-insert is serialized by a single mutex. This is the only
// critical section in the package: everything a bank hands out is immutable.
type Bank struct {
	id  uint64
	log *zap.Logger

	mu     sync.Mutex
	table  map[uint64][]weak.Pointer[Term]
	seq    uint64
	hits   uint64
	misses uint64
}

// Option configures a Bank.
type Option func(*Bank)

// WithLogger attaches a structured logger for interning diagnostics. The
// bank logs at Debug level only; the default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Bank) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBank creates an empty interning table, isolated from every other bank.
func NewBank(opts ...Option) *Bank {
	b := &Bank{
		id:    bankSeq.Add(1),
		log:   zap.NewNop(),
		table: make(map[uint64][]weak.Pointer[Term]),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBank = NewBank()

// Var returns the canonical term for variable v.
func (b *Bank) Var(v Variable) *Term {
	key := mix(varSeed, uint64(v))
	return b.intern(key,
		func(t *Term) bool { return t.sym == nil && t.v == v },
		func() *Term { return &Term{v: v, ground: false} })
}

// App returns the canonical term applying sym to kids. It fails with an
// *ArityError when len(kids) differs from sym.Arity(), and with
// ErrForeignTerm when a child was interned in a different bank; children
// are never truncated or padded.
func (b *Bank) App(sym signature.Symbol, kids ...*Term) (*Term, error) {
	if len(kids) != sym.Arity() {
		return nil, &ArityError{Sym: sym, Want: sym.Arity(), Got: len(kids)}
	}
	key := mix(appSeed, sym.Hash())
	ground := true
	for _, k := range kids {
		if k.bank != b {
			return nil, fmt.Errorf("%w: under symbol %s", ErrForeignTerm, sym)
		}
		key = mix(key, k.hash)
		ground = ground && k.ground
	}
	return b.intern(key,
		func(t *Term) bool {
			if t.sym == nil || !signature.Equal(t.sym, sym) || len(t.kids) != len(kids) {
				return false
			}
			for i := range kids {
				if t.kids[i] != kids[i] {
					return false
				}
			}
			return true
		},
		func() *Term {
			held := make([]*Term, len(kids))
			copy(held, kids)
			return &Term{sym: sym, kids: held, ground: ground}
		}), nil
}

// MustApp is App for shapes known statically to be well-formed; it panics
// on construction errors.
func (b *Bank) MustApp(sym signature.Symbol, kids ...*Term) *Term {
	t, err := b.App(sym, kids...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of live interned terms, pruning entries whose
// referents have been collected.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for key := range b.table {
		b.sweepLocked(key)
		n += len(b.table[key])
	}
	return n
}

// Stats returns the number of interning lookups that found an existing
// representative and the number that created a fresh one.
func (b *Bank) Stats() (hits, misses uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits, b.misses
}

// intern is the single lookup-or-insert critical section. probe decides
// whether a live candidate has the wanted shape; fresh builds the term when
// none does. Dead weak pointers encountered on the way are pruned.
func (b *Bank) intern(key uint64, probe func(*Term) bool, fresh func() *Term) *Term {
	b.mu.Lock()
	defer b.mu.Unlock()

	bucket := b.table[key]
	live := bucket[:0]
	var found *Term
	for _, wp := range bucket {
		t := wp.Value()
		if t == nil {
			continue
		}
		live = append(live, wp)
		if found == nil && probe(t) {
			found = t
		}
	}
	if found != nil {
		if len(live) != len(bucket) {
			b.table[key] = live
		}
		b.hits++
		return found
	}

	t := fresh()
	t.bank = b
	t.hash = key
	b.seq++
	t.ord = b.seq
	b.table[key] = append(live, weak.Make(t))
	b.misses++
	b.log.Debug("term interned",
		zap.Uint64("ord", t.ord),
		zap.Int("bucket", len(b.table[key])),
		zap.Bool("ground", t.ground))

	// Prune the bucket once this representative is collected, so buckets
	// that are never probed again do not accumulate dead entries.
	runtime.AddCleanup(t, func(k uint64) { b.sweep(k) }, key)
	return t
}

func (b *Bank) sweep(key uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sweepLocked(key)
}

func (b *Bank) sweepLocked(key uint64) {
	bucket, ok := b.table[key]
	if !ok {
		return
	}
	live := bucket[:0]
	for _, wp := range bucket {
		if wp.Value() != nil {
			live = append(live, wp)
		}
	}
	switch {
	case len(live) == 0:
		delete(b.table, key)
	case len(live) != len(bucket):
		b.table[key] = live
	}
}

// Var returns the canonical term for v in the default bank.
func Var(v Variable) *Term { return defaultBank.Var(v) }

// App builds an application in the default bank. See Bank.App.
func App(sym signature.Symbol, kids ...*Term) (*Term, error) {
	return defaultBank.App(sym, kids...)
}

// MustApp builds an application in the default bank, panicking on
// construction errors. See Bank.MustApp.
func MustApp(sym signature.Symbol, kids ...*Term) *Term {
	return defaultBank.MustApp(sym, kids...)
}

const (
	varSeed = 0x9ae16a3b2f90404f
	appSeed = 0xc949d7c7509e6557
)

// mix folds x into h; the constant and shifts follow the usual
// boost-style hash combiner.
func mix(h, x uint64) uint64 {
	return h ^ (x + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2))
}
