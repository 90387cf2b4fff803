package planner

import (
	"errors"
	"testing"

	"github.com/wbrown/goap-planner/goap"
)

// lockAndKey builds the lock-and-key scenario: a char, a door, and a
// key, with pick_key/unlock/open actions. Passing includePickKey=false
// removes the only producer of HasKey=true, leaving the goal
// unreachable.
func lockAndKey(t *testing.T, includePickKey bool) (actions []*goap.Action, initial, goal goap.WorldStatement) {
	t.Helper()
	r := goap.NewRegistry()

	hasKey := mustPredicate(t, r, "HasKey", goap.Source)
	hasInvSpace := mustPredicate(t, r, "HasInventorySpace", goap.Source)
	isOpen := mustPredicate(t, r, "IsOpen", goap.Target)
	isLocked := mustPredicate(t, r, "IsLocked", goap.Target)
	isPickable := mustPredicate(t, r, "IsPickable", goap.Target)

	char := goap.EntityID("char")
	door := goap.EntityID("door")
	key := goap.EntityID("key")

	unlock, err := goap.NewAction("unlock", char, &door,
		[]goap.Literal{goap.NewLiteral(hasKey, true), goap.NewLiteral(isLocked, true)},
		[]goap.Literal{goap.NewLiteral(isLocked, false)},
	)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}

	open, err := goap.NewAction("open", char, &door,
		[]goap.Literal{goap.NewLiteral(isLocked, false), goap.NewLiteral(isOpen, false)},
		[]goap.Literal{goap.NewLiteral(isOpen, true)},
	)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	actions = []*goap.Action{unlock, open}

	if includePickKey {
		pickKey, err := goap.NewAction("pick_key", char, &key,
			[]goap.Literal{goap.NewLiteral(hasKey, false), goap.NewLiteral(isPickable, true), goap.NewLiteral(hasInvSpace, true)},
			[]goap.Literal{goap.NewLiteral(hasKey, true), goap.NewLiteral(isPickable, false)},
		)
		if err != nil {
			t.Fatalf("pick_key: %v", err)
		}
		actions = append(actions, pickKey)
	}

	initial, err = goap.WorldOf(
		goap.WorldEntry{Key: goap.SourceKey(char), Clause: mustClause(t, goap.NewLiteral(hasKey, false), goap.NewLiteral(hasInvSpace, true))},
		goap.WorldEntry{Key: goap.TargetKey(door), Clause: mustClause(t, goap.NewLiteral(isOpen, false), goap.NewLiteral(isLocked, true))},
		goap.WorldEntry{Key: goap.TargetKey(key), Clause: mustClause(t, goap.NewLiteral(isPickable, true))},
	)
	if err != nil {
		t.Fatalf("initial world: %v", err)
	}

	goal, err = goap.WorldOf(goap.WorldEntry{Key: goap.TargetKey(door), Clause: mustClause(t, goap.NewLiteral(isOpen, true))})
	if err != nil {
		t.Fatalf("goal world: %v", err)
	}

	return actions, initial, goal
}

func mustClause(t *testing.T, lits ...goap.Literal) goap.Clause {
	t.Helper()
	c, err := goap.ClauseOf(lits...)
	if err != nil {
		t.Fatalf("ClauseOf: %v", err)
	}
	return c
}

func mustPredicate(t *testing.T, r *goap.Registry, name string, usage goap.Usage) *goap.Predicate {
	t.Helper()
	p, err := r.BuildPredicate(goap.PredicateSpec{BaseName: name, Usage: usage}, nil)
	if err != nil {
		t.Fatalf("BuildPredicate(%s): %v", name, err)
	}
	return p
}

func actionNames(actions []*goap.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Name
	}
	return out
}

func TestSolveForwardLockAndKey(t *testing.T) {
	actions, initial, goal := lockAndKey(t, true)

	plan, err := SolveForward(initial, goal, actions, 5, Options{})
	if err != nil {
		t.Fatalf("SolveForward: %v", err)
	}

	got := actionNames(plan)
	want := []string{"pick_key", "unlock", "open"}
	if len(got) != len(want) {
		t.Fatalf("plan = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("plan = %v, want %v", got, want)
		}
	}
}

func TestSolveBackwardLockAndKey(t *testing.T) {
	actions, initial, goal := lockAndKey(t, true)

	plan, err := SolveBackward(initial, goal, actions, 5, Options{})
	if err != nil {
		t.Fatalf("SolveBackward: %v", err)
	}

	got := actionNames(plan)
	want := []string{"pick_key", "unlock", "open"}
	if len(got) != len(want) {
		t.Fatalf("plan = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("plan = %v, want %v", got, want)
		}
	}
}

// The goal already holds in the initial world, so both searches return
// an empty plan, not NoPlan.
func TestAlreadySatisfied(t *testing.T) {
	r := goap.NewRegistry()
	isOpen := mustPredicate(t, r, "IsOpen", goap.Target)
	door := goap.EntityID("door")

	world, err := goap.WorldOf(goap.WorldEntry{Key: goap.TargetKey(door), Clause: mustClause(t, goap.NewLiteral(isOpen, true))})
	if err != nil {
		t.Fatalf("world: %v", err)
	}

	forwardPlan, err := SolveForward(world, world, nil, 5, Options{})
	if err != nil {
		t.Fatalf("SolveForward: %v", err)
	}
	if len(forwardPlan) != 0 {
		t.Errorf("SolveForward plan = %v, want empty", actionNames(forwardPlan))
	}

	backwardPlan, err := SolveBackward(world, world, nil, 5, Options{})
	if err != nil {
		t.Fatalf("SolveBackward: %v", err)
	}
	if len(backwardPlan) != 0 {
		t.Errorf("SolveBackward plan = %v, want empty", actionNames(backwardPlan))
	}
}

// Without pick_key in the action pool, HasKey can never become true, so
// unlock can never fire and no plan exists.
func TestUnreachable(t *testing.T) {
	actions, initial, goal := lockAndKey(t, false)

	_, err := SolveForward(initial, goal, actions, 5, Options{})
	if err == nil {
		t.Fatal("SolveForward: expected NoPlan, got a plan")
	}
	if !errors.Is(err, goap.ErrNoPlan) {
		t.Errorf("SolveForward error = %v, want wrapping goap.ErrNoPlan", err)
	}
}

func TestSolveForwardRecordsTrace(t *testing.T) {
	actions, initial, goal := lockAndKey(t, true)

	var events int
	collector := newTestCollector(&events)

	_, err := SolveForward(initial, goal, actions, 5, Options{Trace: collector})
	if err != nil {
		t.Fatalf("SolveForward: %v", err)
	}
	if events == 0 {
		t.Error("expected at least one trace event to be recorded")
	}
}
