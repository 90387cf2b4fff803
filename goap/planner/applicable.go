package planner

import (
	"sort"

	"github.com/wbrown/goap-planner/goap"
)

// Applicable answers "what actions could fire here" as a pure helper,
// factoring the candidate-filtering step out of the two search loops so
// the CLI and tests can inspect it without running a full search. world is the
// GlobalCon of the current fragment for Forward, the GlobalPre for
// Backward — matching what SolveForward/SolveBackward each pass to
// Action.AllowedIn.
func Applicable(world goap.WorldStatement, actions []*goap.Action, direction goap.Direction) []*goap.Action {
	out := make([]*goap.Action, 0, len(actions))
	for _, a := range actions {
		if a.AllowedIn(world, direction) {
			out = append(out, a)
		}
	}
	return out
}

// sortedActions returns actions in a deterministic order: by Name, then
// by SourceID/TargetID to break ties between same-named actions bound to
// different entities. Iteration order decides which plan is found
// first; sorting pins it so two runs over the same action set always
// produce the same plan.
func sortedActions(actions []*goap.Action) []*goap.Action {
	out := make([]*goap.Action, len(actions))
	copy(out, actions)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.SourceID != b.SourceID {
			return a.SourceID < b.SourceID
		}
		return targetOf(a) < targetOf(b)
	})
	return out
}

func targetOf(a *goap.Action) goap.EntityID {
	if a.TargetID == nil {
		return ""
	}
	return *a.TargetID
}
