package goap

import "fmt"

// Literal is an ordered pair (Predicate, expected truth value). It is
// the atom of the symbolic algebra; equality and hashing are structural
// (by the predicate's FullName and the truth value), never by pointer.
type Literal struct {
	Pred  *Predicate
	Value bool
}

// NewLiteral builds a Literal. It never fails — consistency is a
// Clause-level concern, not a Literal-level one.
func NewLiteral(p *Predicate, value bool) Literal {
	return Literal{Pred: p, Value: value}
}

// Negate returns (P, ¬v).
func (l Literal) Negate() Literal {
	return Literal{Pred: l.Pred, Value: !l.Value}
}

// Equal reports structural equality: same predicate identity, same value.
func (l Literal) Equal(other Literal) bool {
	return l.Pred.Equal(other.Pred) && l.Value == other.Value
}

// key is the map key used to group literals by predicate across Clause
// and WorldStatement, independent of truth value.
func (l Literal) key() string {
	return l.Pred.FullName()
}

func (l Literal) String() string {
	return fmt.Sprintf("(%s %v)", l.Pred.FullName(), l.Value)
}
