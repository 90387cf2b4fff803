package goap

import "testing"

func TestNewActionNormalizesConsequences(t *testing.T) {
	// act has pre=(A,true), con=(B,true). After construction, con must
	// contain both (A,true) and (B,true), and con.Validates(pre) must
	// hold.
	r := NewRegistry()
	a := mustPredicate(t, r, "A", Source)
	b := mustPredicate(t, r, "B", Source)

	act, err := NewAction("act", "char", nil,
		[]Literal{NewLiteral(a, true)},
		[]Literal{NewLiteral(b, true)},
	)
	if err != nil {
		t.Fatalf("NewAction: %v", err)
	}

	if !act.Con.At(SourceKey("char")).Contains(NewLiteral(a, true)) {
		t.Error("normalized con should still contain the pre literal it didn't override")
	}
	if !act.Con.At(SourceKey("char")).Contains(NewLiteral(b, true)) {
		t.Error("normalized con should contain its own literal")
	}
	if !act.Con.Validates(act.Pre) {
		t.Error("act.con.validates(act.pre) must hold after normalization")
	}
}

func TestNewActionConRetainsOwnOverride(t *testing.T) {
	r := NewRegistry()
	locked := mustPredicate(t, r, "IsLocked", Target)

	act, err := NewAction("unlock", "char", entityPtr("door"),
		[]Literal{NewLiteral(locked, true)},
		[]Literal{NewLiteral(locked, false)},
	)
	if err != nil {
		t.Fatalf("NewAction: %v", err)
	}

	con := act.Con.At(TargetKey("door"))
	if !con.Contains(NewLiteral(locked, false)) {
		t.Error("con's own override must win over the unchanged pre literal")
	}
	if con.Contains(NewLiteral(locked, true)) {
		t.Error("con should not also contain pre's overridden value")
	}
}

func TestNewActionRejectsTargetLiteralWithoutTarget(t *testing.T) {
	r := NewRegistry()
	locked := mustPredicate(t, r, "IsLocked", Target)

	_, err := NewAction("unlock", "char", nil,
		[]Literal{NewLiteral(locked, true)},
		nil,
	)
	if err == nil {
		t.Fatal("expected ErrUsageMismatch for a Target literal with no target entity")
	}
}

func TestActionAllowedInForwardAndBackward(t *testing.T) {
	r := NewRegistry()
	locked := mustPredicate(t, r, "IsLocked", Target)
	hasKey := mustPredicate(t, r, "HasKey", Source)

	unlock, err := NewAction("unlock", "char", entityPtr("door"),
		[]Literal{NewLiteral(hasKey, true), NewLiteral(locked, true)},
		[]Literal{NewLiteral(locked, false)},
	)
	if err != nil {
		t.Fatalf("NewAction: %v", err)
	}

	lockedTrue, _ := ClauseOf(NewLiteral(locked, true))
	world, _ := WorldOf(WorldEntry{Key: TargetKey("door"), Clause: lockedTrue})
	if !unlock.AllowedIn(world, Forward) {
		t.Error("unlock should be allowed where IsLocked=true, matching its pre")
	}

	lockedFalse, _ := ClauseOf(NewLiteral(locked, false))
	contradicting, _ := WorldOf(WorldEntry{Key: TargetKey("door"), Clause: lockedFalse})
	if unlock.AllowedIn(contradicting, Forward) {
		t.Error("unlock should not be allowed where IsLocked=false falsifies its pre")
	}

	goalOpen, _ := WorldOf(WorldEntry{Key: TargetKey("door"), Clause: lockedFalse})
	if !unlock.AllowedIn(goalOpen, Backward) {
		t.Error("unlock's consequence IsLocked=false should be compatible with a goal of IsLocked=false")
	}
}

func TestActionApplyForward(t *testing.T) {
	r := NewRegistry()
	locked := mustPredicate(t, r, "IsLocked", Target)

	unlock, _ := NewAction("unlock", "char", entityPtr("door"),
		nil,
		[]Literal{NewLiteral(locked, false)},
	)

	lockedTrue, _ := ClauseOf(NewLiteral(locked, true))
	world, _ := WorldOf(WorldEntry{Key: TargetKey("door"), Clause: lockedTrue})

	after := unlock.ApplyForward(world)
	if !after.At(TargetKey("door")).Contains(NewLiteral(locked, false)) {
		t.Errorf("ApplyForward should overwrite IsLocked to false, got %v", after)
	}
}

func TestActionApplyBackward(t *testing.T) {
	r := NewRegistry()
	locked := mustPredicate(t, r, "IsLocked", Target)
	isOpen := mustPredicate(t, r, "IsOpen", Target)
	hasKey := mustPredicate(t, r, "HasKey", Source)

	open, err := NewAction("open", "char", entityPtr("door"),
		[]Literal{NewLiteral(locked, false), NewLiteral(isOpen, false)},
		[]Literal{NewLiteral(isOpen, true)},
	)
	if err != nil {
		t.Fatalf("NewAction: %v", err)
	}

	openTrue, _ := ClauseOf(NewLiteral(isOpen, true))
	keyTrue, _ := ClauseOf(NewLiteral(hasKey, true))

	t.Run("absorbs uncovered demands", func(t *testing.T) {
		world, _ := WorldOf(
			WorldEntry{Key: TargetKey("door"), Clause: openTrue},
			WorldEntry{Key: SourceKey("char"), Clause: keyTrue},
		)

		regressed, err := open.ApplyBackward(world, Absorb)
		if err != nil {
			t.Fatalf("ApplyBackward: %v", err)
		}
		// IsOpen=true is covered by open's consequence and drops out;
		// HasKey=true is uncovered and absorbed; open's own pre joins.
		if !regressed.At(SourceKey("char")).Contains(NewLiteral(hasKey, true)) {
			t.Errorf("uncovered demand should be absorbed, got %v", regressed)
		}
		if !regressed.At(TargetKey("door")).Contains(NewLiteral(locked, false)) ||
			!regressed.At(TargetKey("door")).Contains(NewLiteral(isOpen, false)) {
			t.Errorf("regressed world should carry the action's own pre, got %v", regressed)
		}
	})

	t.Run("require-covered rejects uncovered demands", func(t *testing.T) {
		world, _ := WorldOf(
			WorldEntry{Key: TargetKey("door"), Clause: openTrue},
			WorldEntry{Key: SourceKey("char"), Clause: keyTrue},
		)

		if _, err := open.ApplyBackward(world, RequireCovered); err == nil {
			t.Fatal("expected ErrUnsatisfiedPrerequisite for a demand con does not cover")
		}
	})

	t.Run("require-covered accepts a fully covered world", func(t *testing.T) {
		world, _ := WorldOf(WorldEntry{Key: TargetKey("door"), Clause: openTrue})

		regressed, err := open.ApplyBackward(world, RequireCovered)
		if err != nil {
			t.Fatalf("ApplyBackward: %v", err)
		}
		if !regressed.Equal(open.Pre) {
			t.Errorf("regressed world = %v, want the action's pre %v", regressed, open.Pre)
		}
	})

	t.Run("rejects a consequence that falsifies the world", func(t *testing.T) {
		openFalse, _ := ClauseOf(NewLiteral(isOpen, false))
		world, _ := WorldOf(WorldEntry{Key: TargetKey("door"), Clause: openFalse})

		if _, err := open.ApplyBackward(world, Absorb); err == nil {
			t.Fatal("expected ErrConflict when con contradicts the regressed world")
		}
	})
}

func entityPtr(id EntityID) *EntityID { return &id }
