// Package goap implements a symbolic world-model and the predicate
// algebra a Goal-Oriented Action Planner searches over: Predicate,
// Literal, Clause, WorldStatement, and Action. The search procedures
// themselves live in the sibling package goap/planner.
//
// Entities are opaque identifiers (EntityID). Entity attributes are
// touched only by Predicate.Evaluate (its required-attribute check and
// the Predicate's Evaluator), and only when a caller explicitly grounds
// a world from live entities —
// never during planner search, which reasons over Literals alone.
package goap
