package goap

import "fmt"

// Direction selects which applicability test AllowedIn runs: the
// forward (state-space) reading or the backward (regression) reading.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

// PrereqPolicy governs ApplyBackward's handling of prerequisites the
// target world doesn't already satisfy: Absorb folds them in
// unconditionally, RequireCovered rejects with
// ErrUnsatisfiedPrerequisite instead.
type PrereqPolicy uint8

const (
	Absorb PrereqPolicy = iota
	RequireCovered
)

// Action is a named transition: firing it on an entity (and, for
// Target/Both-usage literals, a second entity) demands Pre of the
// world and guarantees Con afterward.
//
// Construction normalizes Con so that every literal in Pre not
// actively overridden by Con is copied into it — "pre ∪ con with con
// winning conflicts" — closing the bug class where an action tacitly
// assumes its own prerequisites still hold after it fires.
type Action struct {
	Name     string
	SourceID EntityID
	TargetID *EntityID
	Pre      WorldStatement
	Con      WorldStatement
}

// NewAction builds an Action from raw pre/con literals, partitioning
// each by its predicate's Usage into the WorldStatement key that usage
// scopes to (Source lives under (sourceID,""), Target under
// ("",targetID), Both under (sourceID,targetID)). A Target- or
// Both-usage literal with no targetID fails with ErrUsageMismatch.
func NewAction(name string, sourceID EntityID, targetID *EntityID, preLiterals, conLiterals []Literal) (*Action, error) {
	pre, err := worldFromLiterals(preLiterals, sourceID, targetID)
	if err != nil {
		return nil, fmt.Errorf("action %q: prerequisites: %w", name, err)
	}
	rawCon, err := worldFromLiterals(conLiterals, sourceID, targetID)
	if err != nil {
		return nil, fmt.Errorf("action %q: consequences: %w", name, err)
	}

	con := pre.ForceMerge(rawCon, WinRight)

	return &Action{
		Name:     name,
		SourceID: sourceID,
		TargetID: targetID,
		Pre:      pre,
		Con:      con,
	}, nil
}

func worldFromLiterals(lits []Literal, sourceID EntityID, targetID *EntityID) (WorldStatement, error) {
	byKey := make(map[WorldKey][]Literal)
	for _, l := range lits {
		k, err := KeyFor(l, sourceID, targetID)
		if err != nil {
			return WorldStatement{}, err
		}
		byKey[k] = append(byKey[k], l)
	}
	clauses := make(map[WorldKey]Clause, len(byKey))
	for k, ls := range byKey {
		c, err := ClauseOf(ls...)
		if err != nil {
			return WorldStatement{}, err
		}
		clauses[k] = c
	}
	return WorldStatement{clauses: clauses}, nil
}

// AllowedIn reports whether this action may fire from (forward) or
// into (backward) the given world:
//   - forward: not world.falsifies(pre) — pre is either already true in
//     world or at least not contradicted.
//   - backward: not con.falsifies(world) — the action's consequences
//     must be compatible with the world we want to land in.
func (a *Action) AllowedIn(world WorldStatement, direction Direction) bool {
	switch direction {
	case Forward:
		return !world.Falsifies(a.Pre)
	case Backward:
		return !a.Con.Falsifies(world)
	default:
		return false
	}
}

// ApplyForward returns the world reached after firing this action:
// world.force_merge(con, winner=right). Later consequences win.
func (a *Action) ApplyForward(world WorldStatement) WorldStatement {
	return world.ForceMerge(a.Con, WinRight)
}

// ApplyBackward returns the regressed prerequisite world: whatever of
// `world` this action's consequences don't already cover, merged with
// the action's own prerequisites. It fails with ErrConflict when the
// action's consequences falsify the world being regressed through —
// the same rejection Prepend applies before touching a fragment. Under
// RequireCovered, any part of world left uncovered by con fails with
// ErrUnsatisfiedPrerequisite instead of being absorbed.
func (a *Action) ApplyBackward(world WorldStatement, policy PrereqPolicy) (WorldStatement, error) {
	if a.Con.Falsifies(world) {
		return WorldStatement{}, fmt.Errorf("%w: %s", ErrConflict, a.Name)
	}
	unmet := world.RemoveIntersection(a.Con)
	if policy == RequireCovered && !unmet.IsEmpty() {
		return WorldStatement{}, fmt.Errorf("%w: %s", ErrUnsatisfiedPrerequisite, a.Name)
	}
	merged, err := unmet.Merge(a.Pre)
	if err != nil {
		return WorldStatement{}, err
	}
	return merged, nil
}

func (a *Action) String() string {
	if a.TargetID != nil {
		return fmt.Sprintf("%s(%s,%s)", a.Name, a.SourceID, *a.TargetID)
	}
	return fmt.Sprintf("%s(%s)", a.Name, a.SourceID)
}
