package planner

import "github.com/wbrown/goap-planner/goap"

// visitedSet is the path-scoped memo DFS pruning uses on both searches.
// It is not a map keyed by an exact WorldStatement, because "already
// explored" is a Validates relation, not equality: a world already seen
// at least as strong as the candidate makes the candidate redundant to
// explore. It holds only the worlds along the current DFS branch, never
// shared across siblings.
type visitedSet struct {
	states []goap.WorldStatement
}

// extended returns a new visitedSet extended by state, leaving the
// receiver's backing array untouched — required so sibling DFS branches
// never see each other's additions (see PlanFragment.Clone's rationale).
func (v visitedSet) extended(state goap.WorldStatement) visitedSet {
	states := make([]goap.WorldStatement, len(v.states)+1)
	copy(states, v.states)
	states[len(v.states)] = state
	return visitedSet{states: states}
}

// seenStronger reports whether some already-visited state validates
// candidate — i.e. we have already explored from a world at least as
// strong as candidate, so recursing into it again cannot discover
// anything new.
func (v visitedSet) seenStronger(candidate goap.WorldStatement) bool {
	for _, s := range v.states {
		if s.Validates(candidate) {
			return true
		}
	}
	return false
}
