package planner

import (
	"fmt"

	"github.com/wbrown/goap-planner/goap"
)

// PlanFragment is an ordered sequence of Actions plus two running
// WorldStatements: GlobalPre, what the fragment demands of the initial
// world, and GlobalCon, what it guarantees on exit. Both mutators below
// (Append, Prepend) are all-or-nothing — every new value is computed
// and validated before anything is committed, so on rejection the
// receiver comes back unchanged.
type PlanFragment struct {
	Actions   []*goap.Action
	GlobalPre goap.WorldStatement
	GlobalCon goap.WorldStatement
}

// Empty returns the fragment with no actions and both global statements
// equal to the trivially-true WorldStatement.
func Empty() PlanFragment {
	return PlanFragment{}
}

// Seeded returns a fragment with both global statements set to seed and
// no actions — the starting point for forward search (seed = initial
// world) and backward search (seed = goal).
func Seeded(seed goap.WorldStatement) PlanFragment {
	return PlanFragment{GlobalPre: seed, GlobalCon: seed}
}

// Clone returns an independent copy safe to mutate along a different DFS
// branch. WorldStatement and Action values are immutable and shared
// freely; only the Actions slice header needs its own backing array so
// sibling branches never alias each other's appends.
func (f PlanFragment) Clone() PlanFragment {
	actions := make([]*goap.Action, len(f.Actions))
	copy(actions, f.Actions)
	return PlanFragment{Actions: actions, GlobalPre: f.GlobalPre, GlobalCon: f.GlobalCon}
}

// Append extends the fragment with action firing last, in four steps:
//  1. reject (CONFLICT) if global_con already falsifies action.pre.
//  2. compute unmet = action.pre minus what global_con already covers;
//     reject (UNCOVERED_PRE) if non-empty and allowExtraPre is false,
//     otherwise fold it into global_pre.
//  3. fold action.con into global_con, action's consequences winning.
//  4. append action to the sequence.
//
// On any rejection the receiver is returned unmodified alongside the
// error.
func (f PlanFragment) Append(action *goap.Action, allowExtraPre bool) (PlanFragment, error) {
	if f.GlobalCon.Falsifies(action.Pre) {
		return f, rejection(goap.ErrConflict, action, f.GlobalCon.ConflictingPredicates(action.Pre))
	}

	unmet := action.Pre.RemoveIntersection(f.GlobalCon)
	if !unmet.IsEmpty() && !allowExtraPre {
		return f, rejection(goap.ErrUncoveredPrerequisite, action, nil)
	}

	newPre, err := f.GlobalPre.Merge(unmet)
	if err != nil {
		// unmet is, by construction, the residue after removing what
		// global_con already binds, and global_pre is already
		// consistent with global_con by I1 — this merge cannot fail.
		return f, fmt.Errorf("append %q: invariant violation: %w", action.Name, err)
	}

	newCon := f.GlobalCon.ForceMerge(action.Con, goap.WinRight)

	actions := make([]*goap.Action, len(f.Actions)+1)
	copy(actions, f.Actions)
	actions[len(f.Actions)] = action

	return PlanFragment{Actions: actions, GlobalPre: newPre, GlobalCon: newCon}, nil
}

// Prepend extends the fragment with action firing first, the mirror of
// Append for backward construction. The frontier an action must land in is
// global_pre once the sequence is non-empty, global_con while it is
// still empty (both are the seed value at that point, so either read is
// equivalent — global_pre is used once the first action has narrowed it).
func (f PlanFragment) Prepend(action *goap.Action, mustSatisfyPre bool) (PlanFragment, error) {
	frontier := f.GlobalCon
	if len(f.Actions) > 0 {
		frontier = f.GlobalPre
	}

	if action.Con.Falsifies(frontier) {
		return f, rejection(goap.ErrConflict, action, action.Con.ConflictingPredicates(frontier))
	}

	unmet := frontier.RemoveIntersection(action.Con)
	if !unmet.IsEmpty() && mustSatisfyPre {
		return f, rejection(goap.ErrUnsatisfiedPrerequisite, action, nil)
	}

	var newPre goap.WorldStatement
	var err error
	if len(f.Actions) > 0 {
		newPre, err = unmet.Merge(action.Pre)
	} else {
		newPre = action.Pre
	}
	if err != nil {
		// Any pre that would conflict with unmet has either been
		// rendered moot by action.con (removed during the
		// intersection above) or is a transitive conflict step 1
		// would already have caught.
		return f, fmt.Errorf("prepend %q: invariant violation: %w", action.Name, err)
	}

	newCon := f.GlobalCon.ForceMerge(action.Con, goap.WinLeft)

	actions := make([]*goap.Action, len(f.Actions)+1)
	actions[0] = action
	copy(actions[1:], f.Actions)

	return PlanFragment{Actions: actions, GlobalPre: newPre, GlobalCon: newCon}, nil
}

// rejection wraps a sub-reason sentinel with the action name and, when
// available, the conflicting predicates — giving the trace layer and
// NoPlan reason summaries something concrete to report without
// re-deriving the conflict themselves.
func rejection(sentinel error, action *goap.Action, conflicts []*goap.Predicate) error {
	if len(conflicts) == 0 {
		return fmt.Errorf("%w: action %q", sentinel, action.Name)
	}
	return fmt.Errorf("%w: action %q conflicts on %v", sentinel, action.Name, conflicts)
}
