package planner

import (
	"errors"
	"testing"

	"github.com/wbrown/goap-planner/goap"
)

// After any rejected append/prepend, field values must be identical to
// the pre-call values.
func TestAppendRejectionLeavesFragmentUnchanged(t *testing.T) {
	r := goap.NewRegistry()
	isLocked := mustPredicate(t, r, "IsLocked", goap.Target)
	door := goap.EntityID("door")

	unlockDoor, err := goap.NewAction("unlock_door", "char", &door,
		[]goap.Literal{goap.NewLiteral(isLocked, true)},
		[]goap.Literal{goap.NewLiteral(isLocked, false)},
	)
	if err != nil {
		t.Fatalf("unlock_door: %v", err)
	}

	frag, err := Empty().Append(unlockDoor, true)
	if err != nil {
		t.Fatalf("Append(unlockDoor): %v", err)
	}
	before := frag

	// The door is already unlocked (GlobalCon IsLocked=false), which
	// falsifies unlock_door's own prerequisite IsLocked=true.
	_, err = frag.Append(unlockDoor, true)
	if !errors.Is(err, goap.ErrConflict) {
		t.Fatalf("second Append(unlockDoor) error = %v, want ErrConflict", err)
	}

	if !frag.GlobalPre.Equal(before.GlobalPre) || !frag.GlobalCon.Equal(before.GlobalCon) || len(frag.Actions) != len(before.Actions) {
		t.Error("rejected Append mutated the receiver")
	}
}

// Append `open` to an empty fragment, then try to prepend `lock_door`
// (whose consequence makes IsLocked=true) — it must reject with a
// conflict, because its consequence falsifies the GlobalPre `open`
// already established (IsLocked=false), and the fragment must be
// unchanged.
func TestPrependIdempotentRejection(t *testing.T) {
	r := goap.NewRegistry()
	isOpen := mustPredicate(t, r, "IsOpen", goap.Target)
	isLocked := mustPredicate(t, r, "IsLocked", goap.Target)
	door := goap.EntityID("door")

	open, err := goap.NewAction("open", "char", &door,
		[]goap.Literal{goap.NewLiteral(isLocked, false), goap.NewLiteral(isOpen, false)},
		[]goap.Literal{goap.NewLiteral(isOpen, true)},
	)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	lockDoor, err := goap.NewAction("lock_door", "char", &door, nil,
		[]goap.Literal{goap.NewLiteral(isLocked, true)},
	)
	if err != nil {
		t.Fatalf("lock_door: %v", err)
	}

	frag, err := Empty().Append(open, true)
	if err != nil {
		t.Fatalf("Append(open): %v", err)
	}
	before := frag

	_, err = frag.Prepend(lockDoor, false)
	if !errors.Is(err, goap.ErrConflict) {
		t.Fatalf("Prepend(lockDoor) error = %v, want ErrConflict", err)
	}

	if !frag.GlobalPre.Equal(before.GlobalPre) || !frag.GlobalCon.Equal(before.GlobalCon) || len(frag.Actions) != len(before.Actions) {
		t.Error("rejected Prepend mutated the receiver")
	}
}

// TestFragmentReplayMatchesGlobalCon is the PlanFragment "replay"
// invariant: folding A1..An left-to-right from global_pre via
// ApplyForward must reach global_con.
func TestFragmentReplayMatchesGlobalCon(t *testing.T) {
	actions, initial, goal := lockAndKey(t, true)

	plan, err := SolveForward(initial, goal, actions, 5, Options{})
	if err != nil {
		t.Fatalf("SolveForward: %v", err)
	}

	frag := Empty()
	for _, a := range plan {
		frag, err = frag.Append(a, true)
		if err != nil {
			t.Fatalf("Append(%s): %v", a.Name, err)
		}
	}

	replayed := initial
	for _, a := range plan {
		replayed = a.ApplyForward(replayed)
	}

	if !replayed.Validates(goal) {
		t.Error("replaying the plan from initial should validate goal")
	}
	if !replayed.Equal(frag.GlobalCon) {
		t.Error("replayed world should match the fragment's recorded global_con")
	}
}
