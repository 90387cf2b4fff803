package goap

import "fmt"

// Evaluator is the opaque, pure boolean test a Predicate wraps. The
// planner never invokes it; only Predicate.Evaluate does, and only to
// ground an initial world or check whether a world still holds against
// live entities. target is nil when the predicate's Usage is Source.
type Evaluator func(source, target Entity) bool

// Predicate is a named, pure, boolean-valued test over one or two
// entities, tagged with the Usage role it reads. Two Predicates are
// the same predicate iff their (base_name, usage) pair matches; the
// callable itself plays no part in equality.
type Predicate struct {
	baseName            string
	usage               Usage
	description         string
	eval                Evaluator
	requiredSourceAttrs []string
	requiredTargetAttrs []string
}

// FullName is the canonical name used everywhere comparison or hashing
// occurs: base_name + "_" + usage.
func (p *Predicate) FullName() string {
	return p.baseName + "_" + p.usage.String()
}

// BaseName returns the predicate's unqualified name.
func (p *Predicate) BaseName() string { return p.baseName }

// Usage returns the role this predicate reads.
func (p *Predicate) Usage() Usage { return p.usage }

// Description returns the predicate's human-readable description.
func (p *Predicate) Description() string { return p.description }

// Equal reports whether two predicates share the same (base_name, usage)
// identity. This is the only notion of predicate equality in the system.
func (p *Predicate) Equal(other *Predicate) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.FullName() == other.FullName()
}

func (p *Predicate) String() string { return p.FullName() }

// Evaluate runs the predicate's callable against live entities. It
// never panics on a false result; it returns an error only when a
// required attribute is absent from the entity of the role that
// declares it, or when the predicate has no evaluator at all (expected
// for synthetic predicates used only inside Action clauses).
func (p *Predicate) Evaluate(source, target Entity) (bool, error) {
	if err := p.checkRequiredAttrs(source, target); err != nil {
		return false, err
	}
	if p.eval == nil {
		return false, fmt.Errorf("%w: %s", ErrNoEvaluator, p.FullName())
	}
	return p.eval(source, target), nil
}

func (p *Predicate) checkRequiredAttrs(source, target Entity) error {
	if p.usage != Target {
		if err := requireAttrs(source, p.requiredSourceAttrs); err != nil {
			return err
		}
	}
	if p.usage != Source {
		if err := requireAttrs(target, p.requiredTargetAttrs); err != nil {
			return err
		}
	}
	return nil
}

func requireAttrs(e Entity, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if e == nil {
		return fmt.Errorf("%w: entity missing for required attributes %v", ErrMissingAttribute, names)
	}
	for _, name := range names {
		if _, ok := e.Attr(name); !ok {
			return fmt.Errorf("%w: entity %q has no attribute %q", ErrMissingAttribute, e.ID(), name)
		}
	}
	return nil
}
