package goap

import (
	"crypto/sha1"
	"fmt"
	"sort"
	"strings"

	"github.com/wbrown/goap-planner/goap/codec"
)

// Winner selects which side wins a conflicting predicate during a
// force-merge: the receiver (Left) or the argument (Right).
type Winner uint8

const (
	WinLeft Winner = iota
	WinRight
)

// Clause is a conjunction of Literals with the invariant that for every
// Predicate at most one of (P,true)/(P,false) is present. It is
// immutable; every operation below returns a new Clause. The empty
// Clause is the trivially-true clause: the identity for Merge and
// ForceMerge, validated by every clause, and itself validating no
// non-trivial clause.
type Clause struct {
	lits map[string]Literal // keyed by Literal.key() == predicate FullName
}

// ClauseOf builds a Clause from a set of literals, failing with
// ErrInconsistentClause if the same predicate is bound both true and
// false. Repeating an identical literal is harmless.
func ClauseOf(lits ...Literal) (Clause, error) {
	m := make(map[string]Literal, len(lits))
	for _, l := range lits {
		k := l.key()
		if existing, ok := m[k]; ok {
			if existing.Value != l.Value {
				return Clause{}, fmt.Errorf("%w: %s bound both true and false", ErrInconsistentClause, k)
			}
			continue
		}
		m[k] = l
	}
	return Clause{lits: m}, nil
}

// IsConsistent verifies the no-predicate-bound-both-ways invariant.
// Every Clause produced by this package's own constructors and
// operators already satisfies it by construction; this method exists
// so callers who build a Clause value by other means (tests, decoders)
// can check it explicitly.
func (c Clause) IsConsistent() bool {
	// The internal representation is a map keyed by predicate name, so
	// it cannot itself hold two conflicting entries; this is a linear
	// pass only to validate that assumption for defensively-constructed
	// values.
	seen := make(map[string]bool, len(c.lits))
	for k, l := range c.lits {
		if k != l.key() {
			return false
		}
		seen[k] = true
	}
	return true
}

// Len returns the number of literals in the clause.
func (c Clause) Len() int { return len(c.lits) }

// Contains reports whether the exact literal (same predicate, same
// value) is present.
func (c Clause) Contains(l Literal) bool {
	existing, ok := c.lits[l.key()]
	return ok && existing.Value == l.Value
}

// Literals returns the clause's literals in deterministic (sorted by
// predicate FullName) order.
func (c Clause) Literals() []Literal {
	out := make([]Literal, 0, len(c.lits))
	for _, l := range c.lits {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key() < out[j].key() })
	return out
}

// ConflictsWith returns every Predicate bound to both true and false
// across self and other.
func (c Clause) ConflictsWith(other Clause) (bool, []*Predicate) {
	var conflicts []*Predicate
	for k, l := range c.lits {
		if ol, ok := other.lits[k]; ok && ol.Value != l.Value {
			conflicts = append(conflicts, l.Pred)
		}
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].FullName() < conflicts[j].FullName() })
	return len(conflicts) > 0, conflicts
}

// Falsifies reports whether some literal (P,v) in self and (P,¬v) in
// other contradict each other. Symmetric: c.Falsifies(other) ==
// other.Falsifies(c).
func (c Clause) Falsifies(other Clause) bool {
	conflicts, _ := c.ConflictsWith(other)
	return conflicts
}

// Validates reports whether every literal of other also appears,
// unchanged, in self. Reflexive; the trivially-true clause validates
// only itself and the trivially-true clause; every clause validates
// the trivially-true clause.
func (c Clause) Validates(other Clause) bool {
	for k, l := range other.lits {
		existing, ok := c.lits[k]
		if !ok || existing.Value != l.Value {
			return false
		}
	}
	return true
}

// Intersection returns the literals identical (same predicate, same
// value) in both self and other.
func (c Clause) Intersection(other Clause) Clause {
	m := make(map[string]Literal)
	for k, l := range c.lits {
		if ol, ok := other.lits[k]; ok && ol.Value == l.Value {
			m[k] = l
		}
	}
	return Clause{lits: m}
}

// RemoveIntersection removes from self every literal that is also
// present, identically, in other. A.RemoveIntersection(A) is always
// empty. Literals present in both but at conflicting values are not
// touched by this operation — that is a conflict, not an intersection.
func (c Clause) RemoveIntersection(other Clause) Clause {
	m := make(map[string]Literal, len(c.lits))
	for k, l := range c.lits {
		if ol, ok := other.lits[k]; ok && ol.Value == l.Value {
			continue
		}
		m[k] = l
	}
	return Clause{lits: m}
}

// Merge is the safe union: it fails with ErrMergeConflict if the two
// clauses disagree on any predicate's truth value.
func (c Clause) Merge(other Clause) (Clause, error) {
	m := make(map[string]Literal, len(c.lits)+len(other.lits))
	for k, l := range c.lits {
		m[k] = l
	}
	var conflicts []string
	for k, l := range other.lits {
		if existing, ok := m[k]; ok && existing.Value != l.Value {
			conflicts = append(conflicts, k)
			continue
		}
		m[k] = l
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return Clause{}, fmt.Errorf("%w: %s", ErrMergeConflict, strings.Join(conflicts, ", "))
	}
	return Clause{lits: m}, nil
}

// ForceMerge is the biased union: for every predicate bound in both
// clauses to conflicting values, the winner's literal wins; every other
// predicate is simply unioned in. It never fails. Not commutative:
// ForceMerge(other, WinLeft) keeps self's conflicting literals,
// ForceMerge(other, WinRight) takes other's.
func (c Clause) ForceMerge(other Clause, winner Winner) Clause {
	m := make(map[string]Literal, len(c.lits)+len(other.lits))
	for k, l := range c.lits {
		m[k] = l
	}
	for k, l := range other.lits {
		if existing, ok := m[k]; ok && existing.Value != l.Value {
			if winner == WinRight {
				m[k] = l
			}
			continue
		}
		m[k] = l
	}
	return Clause{lits: m}
}

// Equal reports set equality: same literals, order-insensitive.
func (c Clause) Equal(other Clause) bool {
	if len(c.lits) != len(other.lits) {
		return false
	}
	for k, l := range c.lits {
		ol, ok := other.lits[k]
		if !ok || ol.Value != l.Value {
			return false
		}
	}
	return true
}

// Diff describes how other differs from self: added is what other has
// that self lacks, removed is what self has that other lacks, and
// changed holds other's literal for every predicate both bind to
// different values (self's literal is its negation). A changed
// predicate appears in neither added nor removed.
func (c Clause) Diff(other Clause) (added, removed, changed []Literal) {
	for k, l := range other.lits {
		if existing, ok := c.lits[k]; !ok {
			added = append(added, l)
		} else if existing.Value != l.Value {
			changed = append(changed, l)
		}
	}
	for k, l := range c.lits {
		if _, ok := other.lits[k]; !ok {
			removed = append(removed, l)
		}
	}
	sortLiterals(added)
	sortLiterals(removed)
	sortLiterals(changed)
	return added, removed, changed
}

func sortLiterals(lits []Literal) {
	sort.Slice(lits, func(i, j int) bool { return lits[i].key() < lits[j].key() })
}

// Name derives a deterministic, order-independent identifier for the
// clause: the SHA1 of its sorted literal strings, L85-encoded.
func (c Clause) Name() string {
	lits := c.Literals()
	parts := make([]string, len(lits))
	for i, l := range lits {
		parts[i] = l.String()
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return codec.EncodeFixed20(sum)
}

func (c Clause) String() string {
	if len(c.lits) == 0 {
		return "{}"
	}
	lits := c.Literals()
	parts := make([]string, len(lits))
	for i, l := range lits {
		parts[i] = l.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}
