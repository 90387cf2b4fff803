package goap

// EntityID is an opaque entity identifier. The planner and the algebra
// types in this package never interpret it beyond equality and use in
// map/set keys; it is the caller's external identity scheme (database
// key, UUID, in-memory pointer stringified, anything stable).
type EntityID string

// Entity is the external, attribute-bearing collaborator a Predicate's
// Evaluator inspects. Nothing in goap/planner calls Attr or ID; in goap
// only Predicate.Evaluate does (checking the predicate's required
// attributes before calling its Evaluator), and only when a caller
// explicitly grounds a world. Modeling
// the attribute bag itself is out of scope for this module; callers
// supply their own implementation.
type Entity interface {
	ID() EntityID
	Attr(name string) (any, bool)
}
