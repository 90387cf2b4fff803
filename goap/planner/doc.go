// Package planner implements the two DFS search procedures the symbolic
// algebra in package goap is built to support: SolveForward (state-space
// search, extending a PlanFragment by Append) and SolveBackward
// (regression search, extending a PlanFragment by Prepend). PlanFragment
// itself — the mutable, fallible workspace the two searches share — also
// lives here rather than in package goap, since it is a search artifact,
// not part of the closed predicate algebra.
package planner
