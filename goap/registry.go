package goap

import (
	"fmt"
	"sort"
	"sync"
)

// PredicateSpec is the serializable description of a Predicate: every
// field but the Evaluator callable, which is a Go-level extension point
// that cannot round-trip through a file or a persistent store (see
// goap/planfile and goap/schema).
type PredicateSpec struct {
	BaseName            string
	Usage               Usage
	Description         string
	RequiredSourceAttrs []string
	RequiredTargetAttrs []string
}

func (s PredicateSpec) fullName() string {
	return s.BaseName + "_" + s.Usage.String()
}

// Registry is a scoped predicate namespace, owned explicitly by its
// caller rather than shared process-wide — a process-wide registry
// invites test pollution and cross-planner interference. The
// persistent counterpart, goap/schema.Store, enforces the same
// (base_name, usage) uniqueness invariant at the storage layer.
type Registry struct {
	mu   sync.Mutex
	byFN map[string]*Predicate
}

// NewRegistry creates an empty, ready-to-use predicate registry.
func NewRegistry() *Registry {
	return &Registry{byFN: make(map[string]*Predicate)}
}

// BuildPredicate registers a new Predicate under (base_name, usage),
// failing with ErrDuplicatePredicate if that pair is already taken.
func (r *Registry) BuildPredicate(spec PredicateSpec, eval Evaluator) (*Predicate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	full := spec.fullName()
	if _, exists := r.byFN[full]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePredicate, full)
	}

	p := &Predicate{
		baseName:            spec.BaseName,
		usage:               spec.Usage,
		description:         spec.Description,
		eval:                eval,
		requiredSourceAttrs: append([]string(nil), spec.RequiredSourceAttrs...),
		requiredTargetAttrs: append([]string(nil), spec.RequiredTargetAttrs...),
	}
	r.byFN[full] = p
	return p, nil
}

// Lookup finds a registered predicate by its base name and usage.
func (r *Registry) Lookup(baseName string, usage Usage) (*Predicate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byFN[baseName+"_"+usage.String()]
	return p, ok
}

// All returns every registered predicate, sorted by FullName for
// deterministic iteration.
func (r *Registry) All() []*Predicate {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Predicate, 0, len(r.byFN))
	for _, p := range r.byFN {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out
}

// Lit is a convenience builder: look up baseName/usage in the registry
// and build a Literal for it, saving callers from carrying *Predicate
// pointers around by hand.
func (r *Registry) Lit(baseName string, usage Usage, value bool) (Literal, error) {
	p, ok := r.Lookup(baseName, usage)
	if !ok {
		return Literal{}, fmt.Errorf("%w: %s_%s", ErrUnknownPredicate, baseName, usage)
	}
	return NewLiteral(p, value), nil
}
