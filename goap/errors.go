package goap

import "errors"

// Error taxonomy for the predicate algebra and the planner. The first
// group covers Predicate/Literal/Clause/WorldStatement/Action
// construction and evaluation; the planner-level rejection reasons
// (CONFLICT, UNCOVERED_PRE, UNSATISFIED_PRE, NoPlan) are also declared
// here, and goap/planner wraps them in its own errors.
var (
	// ErrDuplicatePredicate is returned when a Registry already holds a
	// predicate with the same (base_name, usage) pair.
	ErrDuplicatePredicate = errors.New("goap: duplicate predicate")

	// ErrMissingAttribute is returned by Predicate.Evaluate when a
	// required attribute is absent from the entity of the role that
	// declares it. It is never returned during search, only when a
	// caller grounds a world from live entities.
	ErrMissingAttribute = errors.New("goap: missing attribute")

	// ErrNoEvaluator is returned by Predicate.Evaluate when the
	// predicate has no callable attached — expected for synthetic
	// predicates used only inside Action pre/con clauses.
	ErrNoEvaluator = errors.New("goap: predicate has no evaluator")

	// ErrInconsistentClause is returned when a Clause would bind the
	// same Predicate both true and false.
	ErrInconsistentClause = errors.New("goap: inconsistent clause")

	// ErrMergeConflict is returned by Clause.Merge/WorldStatement.Merge
	// when the two operands disagree on some Predicate's truth value.
	ErrMergeConflict = errors.New("goap: merge conflict")

	// ErrUsageMismatch is returned when an Action is constructed with a
	// Target- or Both-scoped literal but no target entity, or when a
	// WorldStatement key cannot be formed from a literal's Usage.
	ErrUsageMismatch = errors.New("goap: usage mismatch")

	// ErrUnknownPredicate is returned when a lookup by base name/usage
	// finds nothing registered.
	ErrUnknownPredicate = errors.New("goap: unknown predicate")

	// ErrConflict is the CONFLICT sub-reason: an append/prepend or an
	// Action.ApplyBackward was rejected because one side's consequences
	// falsify the other side's demands.
	ErrConflict = errors.New("goap: conflict")

	// ErrUncoveredPrerequisite is the UNCOVERED_PRE sub-reason: append
	// was rejected because the action demands a literal global_con does
	// not already guarantee, and the caller disallowed extra prerequisites.
	ErrUncoveredPrerequisite = errors.New("goap: uncovered prerequisite")

	// ErrUnsatisfiedPrerequisite is the UNSATISFIED_PRE sub-reason:
	// prepend (or Action.ApplyBackward under RequireCovered) was
	// rejected because the action's consequences do not cover every
	// literal the frontier (the world being regressed through) demands.
	ErrUnsatisfiedPrerequisite = errors.New("goap: unsatisfied prerequisite")

	// ErrNoPlan is the terminal outcome of a solve call that exhausted
	// its search (depth bound or candidate set) without reaching the goal.
	ErrNoPlan = errors.New("goap: no plan found")
)
